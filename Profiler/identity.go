package Profiler

import (
	"math"
	"math/rand"
	"strconv"
	"strings"
)

const idShuffleSeed = 42

func shuffleID(ids string) string {
	ids = strings.ReplaceAll(ids, ".", "0")
	ids = strings.ReplaceAll(ids, "-", "")
	chars := []byte(ids)
	r := rand.New(rand.NewSource(idShuffleSeed))
	r.Shuffle(len(chars), func(i, j int) {
		chars[i], chars[j] = chars[j], chars[i]
	})
	return string(chars)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// CreateID 由距离、断面号、测区、X坐标末三位和测量日期生成点位ID
// 同一属性组合始终得到同一ID，dsm与ortho两表靠它一对一合并
func CreateID(distance float64, trID int, location string, x float64, surveyDate string) string {
	distC := strconv.FormatFloat(round2(distance), 'f', -1, 64)
	coordText := strconv.FormatFloat(x, 'f', -1, 64)
	coordC := coordText
	if len(coordText) > 3 {
		coordC = coordText[len(coordText)-3:]
	}
	ids := distC + "0" + strconv.Itoa(trID) + location + coordC + surveyDate
	return shuffleID(ids)
}

// CreateSpatialID 与日期无关的点位ID，只由距离、断面号和测区决定
func CreateSpatialID(distance float64, trID int, location string) string {
	ids := strconv.FormatFloat(round2(distance), 'f', -1, 64) + "0" + strconv.Itoa(trID) + location
	return shuffleID(ids)
}
