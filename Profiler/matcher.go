package Profiler

import (
	"log"
	"path/filepath"
	"strings"

	"github.com/GrainArc/Gogeo"
	"github.com/GrainArc/ShoreProfile/methods"
)

// SurveyFile 已解析出位置与日期的测量数据文件
type SurveyFile struct {
	Path     string
	Location string
	Fuzzy    bool
	RawDate  string
	EPSG     int
}

// MatchRow 栅格与断面文件的一条对照记录
type MatchRow struct {
	RasterPath   string
	Location     string
	Fuzzy        bool
	RawDate      string
	RasterEPSG   int
	TransectPath string
	TransectEPSG int
	CRSMatch     bool
}

// MatchedPair 两个目录中位置和日期都一致的一对文件
type MatchedPair struct {
	Path1    string
	Path2    string
	Location string
	RawDate  string
}

// ResolveFolder 遍历目录并解析每个文件的位置与日期，解析失败的文件记日志后跳过
func ResolveFolder(dir string, exts []string, specs []LocationSpec) []SurveyFile {
	var out []SurveyFile
	for _, path := range methods.FindFiles(dir, exts...) {
		loc, date, err := ExtractLocDate(path, specs)
		if err != nil {
			log.Printf("skip %s: %v", path, err)
			continue
		}
		out = append(out, SurveyFile{
			Path:     path,
			Location: loc.Code,
			Fuzzy:    loc.Fuzzy,
			RawDate:  date,
		})
	}
	return out
}

// MatchTransect 在断面文件列表中找第一个文件名含位置代码的
func MatchTransect(transects []string, location string) (string, bool) {
	for _, path := range transects {
		base := strings.ToLower(filepath.Base(path))
		if strings.Contains(base, strings.ToLower(location)) {
			return path, true
		}
	}
	return "", false
}

// TransectEPSG 断面文件坐标系：.prj可解析时用.prj，否则用配置的测区EPSG
func TransectEPSG(path string, specs []LocationSpec, location string) int {
	if strings.EqualFold(filepath.Ext(path), ".shp") {
		if code := ParsePrjEPSG(path); code != 0 {
			return code
		}
	}
	for _, spec := range specs {
		if spec.Code == location {
			return spec.EPSG
		}
	}
	return 0
}

// CrossRef 把各目录下的栅格和断面目录做对照
// 每个栅格一行，找不到断面或坐标系不一致只做标记，不中断
func CrossRef(rasterDirs []string, transectDir string, specs []LocationSpec, rasterExts []string) ([]MatchRow, map[string]int) {
	transects := methods.FindFiles(transectDir, "shp", "geojson", "json")

	var rows []MatchRow
	counts := make(map[string]int)
	for _, dir := range rasterDirs {
		for _, file := range ResolveFolder(dir, rasterExts, specs) {
			row := MatchRow{
				RasterPath: file.Path,
				Location:   file.Location,
				Fuzzy:      file.Fuzzy,
				RawDate:    file.RawDate,
			}

			rd, err := Gogeo.OpenRasterDataset(file.Path, false)
			if err != nil {
				log.Printf("cannot open raster %s: %v", file.Path, err)
			} else {
				row.RasterEPSG = rd.GetEPSGCode()
				rd.Close()
			}

			if path, ok := MatchTransect(transects, file.Location); ok {
				row.TransectPath = path
				row.TransectEPSG = TransectEPSG(path, specs, file.Location)
			} else {
				log.Printf("no transect file for location %s (raster %s)", file.Location, file.Path)
			}
			row.CRSMatch = row.RasterEPSG != 0 && row.RasterEPSG == row.TransectEPSG

			rows = append(rows, row)
			counts[file.Location]++
		}
	}

	for loc, n := range counts {
		log.Printf("location %s: %d rasters", loc, n)
	}
	return rows, counts
}

// PairByLocDate 按(位置,日期)做内连接
func PairByLocDate(files1 []SurveyFile, files2 []SurveyFile) []MatchedPair {
	type key struct {
		loc  string
		date string
	}
	index := make(map[key][]SurveyFile)
	for _, f := range files2 {
		k := key{f.Location, f.RawDate}
		index[k] = append(index[k], f)
	}

	var pairs []MatchedPair
	for _, f1 := range files1 {
		for _, f2 := range index[key{f1.Location, f1.RawDate}] {
			pairs = append(pairs, MatchedPair{
				Path1:    f1.Path,
				Path2:    f2.Path,
				Location: f1.Location,
				RawDate:  f1.RawDate,
			})
		}
	}
	return pairs
}

// MatchupFolders 把两个目录中位置和日期都一致的文件配对，返回配对结果及两侧输入数
func MatchupFolders(dir1 string, dir2 string, exts1 []string, exts2 []string, specs []LocationSpec) ([]MatchedPair, int, int) {
	files1 := ResolveFolder(dir1, exts1, specs)
	files2 := ResolveFolder(dir2, exts2, specs)
	pairs := PairByLocDate(files1, files2)
	log.Printf("matched %d pairs from %d and %d inputs", len(pairs), len(files1), len(files2))
	return pairs, len(files1), len(files2)
}
