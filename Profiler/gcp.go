package Profiler

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
)

// GCPTable 地面控制点表
type GCPTable struct {
	EPSG   int
	Points []orb.Point
}

// FindSkipRows 返回表头前需要跳过的行数，表头行靠关键字(如"Easting")定位
func FindSkipRows(path string, keyword string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("打开控制点文件失败: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	n := 0
	for scanner.Scan() {
		if strings.Contains(scanner.Text(), keyword) {
			return n, nil
		}
		n++
	}
	return 0, &ParseError{Name: path, Reason: fmt.Sprintf("keyword %q not found", keyword)}
}

// OpenGCPFile 读取控制点CSV，取Easting/Northing两列
func OpenGCPFile(path string, epsg int) (*GCPTable, error) {
	skip, err := FindSkipRows(path, "Easting")
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("打开控制点文件失败: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("读取控制点CSV失败: %w", err)
	}
	if skip >= len(records) {
		return nil, &ParseError{Name: path, Reason: "no header row"}
	}

	header := records[skip]
	eastCol, northCol := -1, -1
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case "Easting":
			eastCol = i
		case "Northing":
			northCol = i
		}
	}
	if eastCol < 0 || northCol < 0 {
		return nil, &ParseError{Name: path, Reason: "Easting/Northing columns not found"}
	}

	table := &GCPTable{EPSG: epsg}
	for _, rec := range records[skip+1:] {
		if len(rec) <= eastCol || len(rec) <= northCol {
			continue
		}
		x, errX := strconv.ParseFloat(strings.TrimSpace(rec[eastCol]), 64)
		y, errY := strconv.ParseFloat(strings.TrimSpace(rec[northCol]), 64)
		if errX != nil || errY != nil {
			log.Printf("skip gcp row in %s: non-numeric coordinates", path)
			continue
		}
		table.Points = append(table.Points, orb.Point{x, y})
	}
	return table, nil
}
