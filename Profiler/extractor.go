package Profiler

import (
	"log"
	"math"
	"os"

	"github.com/GrainArc/Gogeo"
	"github.com/GrainArc/ShoreProfile/methods"
)

// ExtractOptions 目录级剖面提取参数
type ExtractOptions struct {
	DatasetFolder string
	TransectPath  string // 断面文件或其所在目录
	TrIDField     string // 断面号字段名，"reset"表示按顺序编号
	Mode          string // dsm 或 ortho
	Step          float64
	AddSlope      bool // 仅dsm模式有效
	DefaultNoData float64
	Specs         []LocationSpec
}

// Diagnostics 提取过程统计
type Diagnostics struct {
	Rasters   int // 参与提取的栅格数
	Skipped   int // 解析或读取失败被跳过的栅格数
	Transects int // 采样的断面总数
	Points    int // 产出的采样点总数
	Outside   int // 落在栅格范围外的点数
	NoData    int // 栅格内命中空值的点数
}

// ExtractFromFolder 对目录下全部栅格逐个提取剖面，单个文件失败不中断
func ExtractFromFolder(opt ExtractOptions) ([]SamplePoint, Diagnostics, error) {
	var diag Diagnostics
	if opt.Mode != "dsm" && opt.Mode != "ortho" {
		return nil, diag, &ConfigError{Msg: "mode must be dsm or ortho, got " + opt.Mode}
	}
	if opt.Step <= 0 {
		return nil, diag, &ConfigError{Msg: "sampling step must be positive"}
	}

	transects := []string{opt.TransectPath}
	if info, err := os.Stat(opt.TransectPath); err == nil && info.IsDir() {
		transects = methods.FindFiles(opt.TransectPath, "shp", "geojson", "json")
	}

	var rows []SamplePoint
	for _, rasterPath := range methods.FindFiles(opt.DatasetFolder, "tif", "tiff") {
		loc, rawDate, err := ExtractLocDate(rasterPath, opt.Specs)
		if err != nil {
			log.Printf("skip %s: %v", rasterPath, err)
			diag.Skipped++
			continue
		}

		transectFile, ok := MatchTransect(transects, loc.Code)
		if !ok {
			log.Printf("skip %s: no transect file for location %s", rasterPath, loc.Code)
			diag.Skipped++
			continue
		}
		lines, err := ReadTransectFile(transectFile, opt.TrIDField)
		if err != nil {
			log.Printf("skip %s: %v", rasterPath, err)
			diag.Skipped++
			continue
		}

		rasterRows, outside, err := extractRaster(rasterPath, lines, loc.Code, rawDate, opt)
		if err != nil {
			log.Printf("skip %s: %v", rasterPath, err)
			diag.Skipped++
			continue
		}

		diag.Rasters++
		diag.Transects += len(lines)
		diag.Outside += outside
		for _, r := range rasterRows {
			if r.nodataHit {
				diag.NoData++
			}
			rows = append(rows, r.SamplePoint)
		}
		log.Printf("extracted %s: %d transects, %d points", rasterPath, len(lines), len(rasterRows))
	}
	diag.Points = len(rows)
	log.Printf("extraction done: %d rasters, %d skipped, %d points (%d outside, %d nodata)",
		diag.Rasters, diag.Skipped, diag.Points, diag.Outside, diag.NoData)
	return rows, diag, nil
}

type taggedPoint struct {
	SamplePoint
	nodataHit bool
}

// extractRaster 提取单幅栅格的全部断面，空值像元改记NaN
func extractRaster(path string, lines []TransectLine, location string, rawDate string, opt ExtractOptions) ([]taggedPoint, int, error) {
	rd, err := Gogeo.OpenRasterDataset(path, false)
	if err != nil {
		return nil, 0, err
	}
	defer rd.Close()

	outside := 0
	var out []taggedPoint

	if opt.Mode == "dsm" {
		grid, err := NewBandGrid(rd, 1)
		if err != nil {
			return nil, 0, err
		}
		nodata := opt.DefaultNoData
		if info, err := rd.GetBandInfo(1); err == nil && info.HasNoData {
			nodata = info.NoDataValue
		}
		var slope PointSampler
		if opt.AddSlope {
			slope = NewSlopeGrid(grid, nodata)
		}

		for _, line := range lines {
			rows, n, err := GetProfiles(line, grid, slope, opt.Step, location, rawDate)
			if err != nil {
				return nil, 0, err
			}
			outside += n
			for _, r := range rows {
				tagged := taggedPoint{SamplePoint: r}
				if r.Z == nodata {
					tagged.Z = math.NaN()
					tagged.nodataHit = true
				}
				out = append(out, tagged)
			}
		}
		return out, outside, nil
	}

	// ortho：前三个波段，0.0视为空值
	if rd.GetBandCount() < 3 {
		return nil, 0, &ConfigError{Msg: "ortho raster has fewer than 3 bands: " + path}
	}
	var bands [3]PointSampler
	for i := 0; i < 3; i++ {
		grid, err := NewBandGrid(rd, i+1)
		if err != nil {
			return nil, 0, err
		}
		bands[i] = grid
	}

	for _, line := range lines {
		rows, n, err := GetProfileDN(line, bands, opt.Step, location, rawDate)
		if err != nil {
			return nil, 0, err
		}
		outside += n
		for _, r := range rows {
			tagged := taggedPoint{SamplePoint: r}
			if r.Band1 == 0.0 {
				tagged.Band1 = math.NaN()
				tagged.nodataHit = true
			}
			if r.Band2 == 0.0 {
				tagged.Band2 = math.NaN()
				tagged.nodataHit = true
			}
			if r.Band3 == 0.0 {
				tagged.Band3 = math.NaN()
				tagged.nodataHit = true
			}
			out = append(out, tagged)
		}
	}
	return out, outside, nil
}
