package config

import (
	"encoding/xml"
	"fmt"
	"os"
	"strings"
)

var MainRouter string
var DSN string
var DSMDir string
var OrthoDir string
var TransDir string
var Download string
var DeviceName string
var MainConfig Config

// Location 测区配置：code为测区代码，epsg为该测区的坐标系，正文为文件名检索词（空格分隔）
type Location struct {
	Code   string `xml:"code,attr"`
	EPSG   int    `xml:"epsg,attr"`
	Search string `xml:",chardata"`
}

// SearchWords 检索词按空白拆分
func (l Location) SearchWords() []string {
	return strings.Fields(l.Search)
}

type Config struct {
	XMLName       xml.Name   `xml:"config"`
	MainRouter    string     `xml:"MainRouter"`
	Dbname        string     `xml:"dbname"`
	Host          string     `xml:"host"`
	Port          string     `xml:"port"`
	Username      string     `xml:"user"`
	Password      string     `xml:"password"`
	DSMDir        string     `xml:"dsm"`
	OrthoDir      string     `xml:"ortho"`
	TransDir      string     `xml:"transects"`
	Download      string     `xml:"download"`
	DeviceName    string     `xml:"DeviceName"`
	SamplingStep  float64    `xml:"SamplingStep"`
	DefaultNoData float64    `xml:"DefaultNoData"`
	Locations     []Location `xml:"locations>location"`
}

func init() {

	xmlFile, err := os.Open("config.xml")
	if err != nil {
		fmt.Println("Error  opening  file:", err)
		return
	}
	defer xmlFile.Close()

	xmlDecoder := xml.NewDecoder(xmlFile)
	err = xmlDecoder.Decode(&MainConfig)
	if err != nil {
		fmt.Println("Error  decoding  XML:", err)
		return
	}
	MainRouter = MainConfig.MainRouter
	DSMDir = MainConfig.DSMDir
	OrthoDir = MainConfig.OrthoDir
	TransDir = MainConfig.TransDir
	Download = MainConfig.Download
	DeviceName = MainConfig.DeviceName
	if MainConfig.SamplingStep == 0 {
		MainConfig.SamplingStep = 1.0
	}
	if MainConfig.DefaultNoData == 0 {
		MainConfig.DefaultNoData = -10000
	}

	DSN = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC", MainConfig.Host, MainConfig.Username, MainConfig.Password, MainConfig.Dbname, MainConfig.Port)

}
