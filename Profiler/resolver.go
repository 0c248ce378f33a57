package Profiler

import (
	"log"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/GrainArc/ShoreProfile/methods"
	"github.com/agext/levenshtein"
)

var digitRuns = regexp.MustCompile(`\d+`)
var textualDate = regexp.MustCompile(`(?i)_(\d{2})_(jan|feb|mar|apr|may|jun|jul|aug|sept|oct|nov|dec)_(\d{4})_`)

var monthNums = map[string]string{
	"jan": "01", "feb": "02", "mar": "03", "apr": "04",
	"may": "05", "jun": "06", "jul": "07", "aug": "08",
	"sept": "09", "oct": "10", "nov": "11", "dec": "12",
}

// LocationSpec 测区代码及其文件名检索词
type LocationSpec struct {
	Code   string
	Search []string
	EPSG   int
}

// LocationMatch 位置识别结果，Fuzzy为true时Score是模糊匹配得分(0-100)
type LocationMatch struct {
	Code  string
	Fuzzy bool
	Score int
}

// ExtractDate 从文件名中提取8位原始日期(YYYYMMDD)
// 先取文件名中数值最大的数字串，非8位时退回 _DD_mon_YYYY_ 形式的文字日期
func ExtractDate(name string) (string, error) {
	runs := digitRuns.FindAllString(filepath.Base(name), -1)
	best := ""
	for _, r := range runs {
		v := strings.TrimLeft(r, "0")
		if v == "" {
			v = "0"
		}
		if len(v) > len(best) || (len(v) == len(best) && v > best) {
			best = v
		}
	}
	if len(best) == 8 {
		return best, nil
	}

	if m := textualDate.FindStringSubmatch(filepath.Base(name)); m != nil {
		return m[3] + monthNums[strings.ToLower(m[2])] + m[1], nil
	}
	return "", &ParseError{Name: name, Reason: "no 8-digit or textual date found"}
}

// ResolveLocation 按配置顺序用检索词精确匹配文件名分段，全部失败时做模糊匹配
func ResolveLocation(name string, specs []LocationSpec) (LocationMatch, error) {
	tokens := strings.Split(filepath.Base(name), "_")
	for _, spec := range specs {
		if methods.HasCommonString(spec.Search, tokens) {
			return LocationMatch{Code: spec.Code}, nil
		}
	}

	if len(specs) == 0 {
		return LocationMatch{}, &ParseError{Name: name, Reason: "no location specs configured"}
	}

	// 精确匹配失败，改用编辑距离找最接近的检索词
	aggregate := strings.Join(tokens, " ")
	best := LocationMatch{Score: -1}
	bestWord := ""
	for _, spec := range specs {
		for _, word := range spec.Search {
			score := int(levenshtein.Match(word, aggregate, nil) * 100)
			if score > best.Score {
				best = LocationMatch{Code: spec.Code, Fuzzy: true, Score: score}
				bestWord = word
			}
		}
	}
	log.Printf("location not understood in %s, fuzzy matching found %s (code %s, score %d)", name, bestWord, best.Code, best.Score)
	return best, nil
}

// ExtractLocDate 从文件名中同时提取位置与原始日期
func ExtractLocDate(name string, specs []LocationSpec) (LocationMatch, string, error) {
	date, err := ExtractDate(name)
	if err != nil {
		return LocationMatch{}, "", err
	}
	loc, err := ResolveLocation(name, specs)
	if err != nil {
		return LocationMatch{}, "", err
	}
	return loc, date, nil
}
