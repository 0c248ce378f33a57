package Profiler

import (
	"fmt"
	"math"

	"github.com/GrainArc/Gogeo"
)

// PointSampler 按地理坐标取像元值，坐标落在栅格外时第二个返回值为false
type PointSampler interface {
	SampleAt(x, y float64) (float64, bool)
}

// BandGrid 一个波段的完整像元数组及其仿射变换
// 整幅读出后逐点索引，避免对每个采样点做窗口读取
type BandGrid struct {
	Data   []float64
	Width  int
	Height int
	GT     [6]float64
}

// NewBandGrid 读出指定波段的全部像元值
func NewBandGrid(rd *Gogeo.RasterDataset, band int) (*BandGrid, error) {
	info := rd.GetInfo()
	if !info.HasGeoInfo {
		return nil, fmt.Errorf("raster has no geotransform")
	}
	// 加0原值读出
	data, err := rd.BandMathScalar(band, 0, Gogeo.BandMathOp(0))
	if err != nil {
		return nil, fmt.Errorf("读取波段%d失败: %w", band, err)
	}
	return &BandGrid{
		Data:   data,
		Width:  info.Width,
		Height: info.Height,
		GT:     info.GeoTransform,
	}, nil
}

// colRow 仿射逆变换，北向上栅格
func colRow(gt [6]float64, x, y float64) (float64, float64) {
	col := (x - gt[0]) / gt[1]
	row := (y - gt[3]) / gt[5]
	return col, row
}

func (g *BandGrid) SampleAt(x, y float64) (float64, bool) {
	colF, rowF := colRow(g.GT, x, y)
	col := int(math.Round(colF))
	row := int(math.Round(rowF))
	if col < 0 || row < 0 || col >= g.Width || row >= g.Height {
		return math.NaN(), false
	}
	return g.Data[row*g.Width+col], true
}

// SlopeGrid 由高程格网一次性算出的坡度(度)，Horn三阶差分
type SlopeGrid struct {
	Data   []float64
	Width  int
	Height int
	GT     [6]float64
}

// NewSlopeGrid 从高程格网计算坡度，边缘像元与含空值邻域记为NaN
func NewSlopeGrid(elev *BandGrid, nodata float64) *SlopeGrid {
	w, h := elev.Width, elev.Height
	data := make([]float64, w*h)
	for i := range data {
		data[i] = math.NaN()
	}

	cellX := math.Abs(elev.GT[1])
	cellY := math.Abs(elev.GT[5])

	at := func(row, col int) float64 {
		v := elev.Data[row*w+col]
		if v == nodata {
			return math.NaN()
		}
		return v
	}

	for row := 1; row < h-1; row++ {
		for col := 1; col < w-1; col++ {
			a := at(row-1, col-1)
			b := at(row-1, col)
			c := at(row-1, col+1)
			d := at(row, col-1)
			f := at(row, col+1)
			g := at(row+1, col-1)
			hh := at(row+1, col)
			i := at(row+1, col+1)

			dzdx := ((c + 2*f + i) - (a + 2*d + g)) / (8 * cellX)
			dzdy := ((g + 2*hh + i) - (a + 2*b + c)) / (8 * cellY)
			data[row*w+col] = math.Atan(math.Sqrt(dzdx*dzdx+dzdy*dzdy)) * 180 / math.Pi
		}
	}

	return &SlopeGrid{Data: data, Width: w, Height: h, GT: elev.GT}
}

func (g *SlopeGrid) SampleAt(x, y float64) (float64, bool) {
	colF, rowF := colRow(g.GT, x, y)
	col := int(math.Floor(colF))
	row := int(math.Floor(rowF))
	if col < 0 || row < 0 || col >= g.Width || row >= g.Height {
		return math.NaN(), false
	}
	return g.Data[row*g.Width+col], true
}
