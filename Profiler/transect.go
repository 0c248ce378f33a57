package Profiler

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	shp "gitee.com/LJ_COOL/go-shp"
	"github.com/GrainArc/ShoreProfile/methods"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// TransectLine 一条采样断面线
type TransectLine struct {
	ID   int
	Line orb.LineString
}

// TrIDReset 表示断面号按要素顺序重新编号
const TrIDReset = "reset"

var prjAuthority = regexp.MustCompile(`AUTHORITY\["EPSG","(\d+)"\]`)

// ParsePrjEPSG 从同名.prj文件中解析EPSG代码，取最外层AUTHORITY，解析失败返回0
func ParsePrjEPSG(shpPath string) int {
	prjPath := strings.TrimSuffix(shpPath, filepath.Ext(shpPath)) + ".prj"
	content, err := os.ReadFile(prjPath)
	if err != nil {
		return 0
	}
	matches := prjAuthority.FindAllStringSubmatch(string(content), -1)
	if len(matches) == 0 {
		return 0
	}
	// WKT中最后一个AUTHORITY是整体坐标系的
	code, err := strconv.Atoi(matches[len(matches)-1][1])
	if err != nil {
		return 0
	}
	return code
}

// ReadTransectFile 读取断面文件(.shp或.geojson)
// trIDField为"reset"时按要素顺序编号，否则从属性列取断面号
func ReadTransectFile(path string, trIDField string) ([]TransectLine, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".shp":
		return readTransectShp(path, trIDField)
	case ".geojson", ".json":
		return readTransectGeoJSON(path, trIDField)
	default:
		return nil, &ConfigError{Msg: fmt.Sprintf("unsupported transect format: %s", path)}
	}
}

func readTransectShp(path string, trIDField string) ([]TransectLine, error) {
	shape, err := shp.Open(path)
	if err != nil {
		return nil, fmt.Errorf("打开断面文件失败: %w", err)
	}
	defer shape.Close()

	fields := shape.Fields()
	idCol := -1
	if trIDField != TrIDReset {
		for k, f := range fields {
			if strings.EqualFold(strings.TrimRight(f.String(), "\x00"), trIDField) {
				idCol = k
				break
			}
		}
		if idCol < 0 {
			return nil, &ConfigError{Msg: fmt.Sprintf("tr_id field %s not found in %s", trIDField, path)}
		}
	}

	var lines []TransectLine
	seq := 0
	for shape.Next() {
		n, p := shape.Shape()

		var pts []shp.Point
		switch s := p.(type) {
		case *shp.PolyLine:
			pts = s.Points
		case *shp.PolyLineZ:
			pts = s.Points
		case *shp.PolyLineM:
			pts = s.Points
		default:
			continue // 非线要素跳过
		}
		if len(pts) < 2 {
			continue
		}

		line := make(orb.LineString, 0, len(pts))
		for _, pt := range pts {
			line = append(line, orb.Point{pt.X, pt.Y})
		}

		id := seq
		if idCol >= 0 {
			raw := strings.Trim(methods.GbkToUtf8(shape.ReadAttribute(n, idCol)), "\x00 \t")
			v, err := strconv.Atoi(raw)
			if err != nil {
				f, ferr := strconv.ParseFloat(raw, 64)
				if ferr != nil {
					return nil, &ParseError{Name: path, Reason: fmt.Sprintf("tr_id value %q is not numeric", raw)}
				}
				v = int(f)
			}
			id = v
		}
		lines = append(lines, TransectLine{ID: id, Line: line})
		seq++
	}
	return lines, nil
}

func readTransectGeoJSON(path string, trIDField string) ([]TransectLine, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取断面文件失败: %w", err)
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("解析断面GeoJSON失败: %w", err)
	}

	var lines []TransectLine
	seq := 0
	for _, feature := range fc.Features {
		var line orb.LineString
		switch g := feature.Geometry.(type) {
		case orb.LineString:
			line = g
		case orb.MultiLineString:
			if len(g) == 0 {
				continue
			}
			line = g[0]
		default:
			continue
		}
		if len(line) < 2 {
			continue
		}

		id := seq
		if trIDField != TrIDReset {
			v, ok := feature.Properties[trIDField]
			if !ok {
				return nil, &ConfigError{Msg: fmt.Sprintf("tr_id property %s not found in %s", trIDField, path)}
			}
			switch t := v.(type) {
			case float64:
				id = int(t)
			case string:
				parsed, err := strconv.Atoi(strings.TrimSpace(t))
				if err != nil {
					return nil, &ParseError{Name: path, Reason: fmt.Sprintf("tr_id value %q is not numeric", t)}
				}
				id = parsed
			default:
				return nil, &ParseError{Name: path, Reason: "tr_id property has unsupported type"}
			}
		}
		lines = append(lines, TransectLine{ID: id, Line: line})
		seq++
	}
	return lines, nil
}
