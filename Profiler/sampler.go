package Profiler

import (
	"fmt"
	"math"
	"time"

	"github.com/paulmach/orb"
)

// SamplePoint 剖面表中的一行，未采样的字段为NaN
type SamplePoint struct {
	PointID     string
	Location    string
	SurveyDate  time.Time
	RawDate     string
	TrID        int
	Distance    float64
	Coordinates orb.Point
	Z           float64
	Slope       float64
	Band1       float64
	Band2       float64
	Band3       float64
}

// LineLength 折线平面长度
func LineLength(line orb.LineString) float64 {
	total := 0.0
	for i := 1; i < len(line); i++ {
		dx := line[i][0] - line[i-1][0]
		dy := line[i][1] - line[i-1][1]
		total += math.Sqrt(dx*dx + dy*dy)
	}
	return total
}

// PointAtDistance 沿折线取指定距离处的插值点，超出线长时返回终点
func PointAtDistance(line orb.LineString, d float64) orb.Point {
	if d <= 0 {
		return line[0]
	}
	walked := 0.0
	for i := 1; i < len(line); i++ {
		dx := line[i][0] - line[i-1][0]
		dy := line[i][1] - line[i-1][1]
		seg := math.Sqrt(dx*dx + dy*dy)
		if walked+seg >= d && seg > 0 {
			t := (d - walked) / seg
			return orb.Point{line[i-1][0] + t*dx, line[i-1][1] + t*dy}
		}
		walked += seg
	}
	return line[len(line)-1]
}

func parseRawDate(rawDate string) (time.Time, error) {
	dt, err := time.Parse("20060102", rawDate)
	if err != nil {
		return time.Time{}, &ParseError{Name: rawDate, Reason: "raw date is not YYYYMMDD"}
	}
	return dt, nil
}

// GetProfiles 沿断面按固定步长采集高程剖面
// 采样点距离为 0, step, 2*step … 小于线长取整值；slope可为nil
// 返回剖面行和落在栅格范围外的点数
func GetProfiles(t TransectLine, elev PointSampler, slope PointSampler, step float64, location string, rawDate string) ([]SamplePoint, int, error) {
	if step <= 0 {
		return nil, 0, &ConfigError{Msg: fmt.Sprintf("sampling step must be positive, got %v", step)}
	}
	surveyDate, err := parseRawDate(rawDate)
	if err != nil {
		return nil, 0, err
	}
	dateText := surveyDate.Format("2006-01-02")

	limit := math.Floor(LineLength(t.Line))
	var rows []SamplePoint
	outside := 0
	for i := 0; ; i++ {
		// 逐步累加会漂移，距离按步数乘步长算
		d := float64(i) * step
		if d >= limit {
			break
		}
		pt := PointAtDistance(t.Line, d)

		z, ok := elev.SampleAt(pt[0], pt[1])
		if !ok {
			outside++
		}
		sl := math.NaN()
		if slope != nil {
			sl, _ = slope.SampleAt(pt[0], pt[1])
		}

		rows = append(rows, SamplePoint{
			PointID:     CreateID(d, t.ID, location, pt[0], dateText),
			Location:    location,
			SurveyDate:  surveyDate,
			RawDate:     rawDate,
			TrID:        t.ID,
			Distance:    round2(d),
			Coordinates: pt,
			Z:           z,
			Slope:       sl,
			Band1:       math.NaN(),
			Band2:       math.NaN(),
			Band3:       math.NaN(),
		})
	}
	return rows, outside, nil
}

// GetProfileDN 沿断面采集正射影像前三个波段的DN值
func GetProfileDN(t TransectLine, bands [3]PointSampler, step float64, location string, rawDate string) ([]SamplePoint, int, error) {
	if step <= 0 {
		return nil, 0, &ConfigError{Msg: fmt.Sprintf("sampling step must be positive, got %v", step)}
	}
	surveyDate, err := parseRawDate(rawDate)
	if err != nil {
		return nil, 0, err
	}
	dateText := surveyDate.Format("2006-01-02")

	limit := math.Floor(LineLength(t.Line))
	var rows []SamplePoint
	outside := 0
	for i := 0; ; i++ {
		d := float64(i) * step
		if d >= limit {
			break
		}
		pt := PointAtDistance(t.Line, d)

		var dn [3]float64
		hit := false
		for i, b := range bands {
			v, ok := b.SampleAt(pt[0], pt[1])
			dn[i] = v
			if ok {
				hit = true
			}
		}
		if !hit {
			outside++
		}

		rows = append(rows, SamplePoint{
			PointID:     CreateID(d, t.ID, location, pt[0], dateText),
			Location:    location,
			SurveyDate:  surveyDate,
			RawDate:     rawDate,
			TrID:        t.ID,
			Distance:    round2(d),
			Coordinates: pt,
			Z:           math.NaN(),
			Slope:       math.NaN(),
			Band1:       dn[0],
			Band2:       dn[1],
			Band3:       dn[2],
		})
	}
	return rows, outside, nil
}
