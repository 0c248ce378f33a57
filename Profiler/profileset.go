package Profiler

import (
	"encoding/gob"
	"fmt"
	"math"
	"os"
	"strconv"
)

// ProfileSet 一次剖面提取会话：目录对照结果、提取产物和LOD数据
type ProfileSet struct {
	DSMDir       string
	OrthoDir     string
	TransectDir  string
	CheckMode    string
	Specs        []LocationSpec
	AddXY        bool
	Check        []MatchRow
	Counts       map[string]int
	Profiles     []SamplePoint
	LODProfiles  []SamplePoint
	LODThreshold float64
	HasThreshold bool
	Diag         Diagnostics
}

// NewProfileSet 建立会话并按checkMode(dsm/ortho/all)对相应目录做对照检查
func NewProfileSet(dsmDir string, orthoDir string, transectDir string, checkMode string, specs []LocationSpec) (*ProfileSet, error) {
	var rasterDirs []string
	switch checkMode {
	case "dsm":
		rasterDirs = []string{dsmDir}
	case "ortho":
		rasterDirs = []string{orthoDir}
	case "all":
		rasterDirs = []string{dsmDir, orthoDir}
	default:
		return nil, &ConfigError{Msg: "check mode must be dsm, ortho or all, got " + checkMode}
	}

	p := &ProfileSet{
		DSMDir:      dsmDir,
		OrthoDir:    orthoDir,
		TransectDir: transectDir,
		CheckMode:   checkMode,
		Specs:       specs,
	}
	p.Check, p.Counts = CrossRef(rasterDirs, transectDir, specs, []string{"tif", "tiff"})
	return p, nil
}

// MergeProfiles 按PointID把dsm表与ortho表一对一合并
// 两表行数不等、键重复或缺失都视为表结构错误
func MergeProfiles(dsmRows []SamplePoint, orthoRows []SamplePoint) ([]SamplePoint, error) {
	if len(dsmRows) != len(orthoRows) {
		return nil, &SchemaError{Msg: fmt.Sprintf("dsm and ortho tables differ in length: %d vs %d", len(dsmRows), len(orthoRows))}
	}
	index := make(map[string]SamplePoint, len(orthoRows))
	for _, r := range orthoRows {
		if _, dup := index[r.PointID]; dup {
			return nil, &SchemaError{Msg: "duplicate point_id in ortho table: " + r.PointID}
		}
		index[r.PointID] = r
	}

	merged := make([]SamplePoint, 0, len(dsmRows))
	consumed := make(map[string]bool, len(dsmRows))
	for _, r := range dsmRows {
		o, ok := index[r.PointID]
		if !ok {
			return nil, &SchemaError{Msg: "point_id missing from ortho table: " + r.PointID}
		}
		if consumed[r.PointID] {
			return nil, &SchemaError{Msg: "duplicate point_id in dsm table: " + r.PointID}
		}
		consumed[r.PointID] = true
		r.Band1 = o.Band1
		r.Band2 = o.Band2
		r.Band3 = o.Band3
		merged = append(merged, r)
	}
	return merged, nil
}

// ExtractProfiles 执行剖面提取并填充Profiles
// lodMode取值：空串不启用；数字为固定检测阈值；目录路径则对该目录再跑一次dsm提取
// addXY控制成果表是否单列输出坐标
func (p *ProfileSet) ExtractProfiles(mode string, trIDField string, step float64, lodMode string, addXY bool, addSlope bool, defaultNoData float64) error {
	p.AddXY = addXY
	dsmOpt := ExtractOptions{
		DatasetFolder: p.DSMDir,
		TransectPath:  p.TransectDir,
		TrIDField:     trIDField,
		Mode:          "dsm",
		Step:          step,
		AddSlope:      addSlope,
		DefaultNoData: defaultNoData,
		Specs:         p.Specs,
	}

	switch mode {
	case "dsm":
		rows, diag, err := ExtractFromFolder(dsmOpt)
		if err != nil {
			return err
		}
		p.Profiles, p.Diag = rows, diag
	case "ortho":
		opt := dsmOpt
		opt.DatasetFolder = p.OrthoDir
		opt.Mode = "ortho"
		opt.AddSlope = false
		rows, diag, err := ExtractFromFolder(opt)
		if err != nil {
			return err
		}
		p.Profiles, p.Diag = rows, diag
	case "all":
		dsmRows, dsmDiag, err := ExtractFromFolder(dsmOpt)
		if err != nil {
			return err
		}
		orthoOpt := dsmOpt
		orthoOpt.DatasetFolder = p.OrthoDir
		orthoOpt.Mode = "ortho"
		orthoOpt.AddSlope = false
		orthoRows, orthoDiag, err := ExtractFromFolder(orthoOpt)
		if err != nil {
			return err
		}
		merged, err := MergeProfiles(dsmRows, orthoRows)
		if err != nil {
			return err
		}
		p.Profiles = merged
		p.Diag = Diagnostics{
			Rasters:   dsmDiag.Rasters + orthoDiag.Rasters,
			Skipped:   dsmDiag.Skipped + orthoDiag.Skipped,
			Transects: dsmDiag.Transects + orthoDiag.Transects,
			Points:    len(merged),
			Outside:   dsmDiag.Outside + orthoDiag.Outside,
			NoData:    dsmDiag.NoData + orthoDiag.NoData,
		}
	default:
		return &ConfigError{Msg: "extraction mode must be dsm, ortho or all, got " + mode}
	}

	return p.applyLOD(lodMode, dsmOpt)
}

func (p *ProfileSet) applyLOD(lodMode string, dsmOpt ExtractOptions) error {
	p.LODProfiles = nil
	p.LODThreshold = math.NaN()
	p.HasThreshold = false

	if lodMode == "" {
		return nil
	}
	if v, err := strconv.ParseFloat(lodMode, 64); err == nil {
		p.LODThreshold = v
		p.HasThreshold = true
		return nil
	}
	if info, err := os.Stat(lodMode); err == nil && info.IsDir() {
		rows, _, err := ExtractFromFolder(lodOptions(dsmOpt, lodMode))
		if err != nil {
			return err
		}
		p.LODProfiles = rows
		return nil
	}
	return &ConfigError{Msg: "lod mode must be empty, a number or a directory, got " + lodMode}
}

// lodOptions LOD检测的提取参数：栅格仍取DSM目录，断面换成LOD断面集
func lodOptions(dsmOpt ExtractOptions, lodDir string) ExtractOptions {
	opt := dsmOpt
	opt.TransectPath = lodDir
	opt.AddSlope = false
	return opt
}

// Save 把整个会话序列化到文件
func (p *ProfileSet) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("创建会话文件失败: %w", err)
	}
	defer f.Close()
	if err := gob.NewEncoder(f).Encode(p); err != nil {
		return fmt.Errorf("序列化会话失败: %w", err)
	}
	return nil
}

// LoadProfileSet 从文件恢复会话
func LoadProfileSet(path string) (*ProfileSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("打开会话文件失败: %w", err)
	}
	defer f.Close()
	var p ProfileSet
	if err := gob.NewDecoder(f).Decode(&p); err != nil {
		return nil, fmt.Errorf("读取会话文件失败: %w", err)
	}
	return &p, nil
}
