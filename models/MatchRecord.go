package models

type MatchRecord struct {
	ID           int64  `gorm:"primary_key;autoIncrement"`
	TaskID       string `gorm:"type:varchar(255);index"`
	Location     string `gorm:"type:varchar(32)"`
	RawDate      string `gorm:"type:varchar(16)"`
	RasterPath   string `gorm:"type:varchar(255)"` //栅格文件路径
	TransectPath string `gorm:"type:varchar(255)"` //断面文件路径
	RasterEPSG   int    //栅格坐标系
	TransectEPSG int    //断面坐标系
	CRSMatch     bool   //两侧坐标系是否一致
}

func (MatchRecord) TableName() string {
	return "match_record"
}
