package models

// ProfilePoint 剖面表导出行，写入每个任务的SQLite成果库
type ProfilePoint struct {
	ID         int64  `gorm:"primary_key;autoIncrement"`
	PointID    string `gorm:"type:varchar(64);index"`
	Location   string `gorm:"type:varchar(32)"`
	SurveyDate string `gorm:"type:varchar(16)"`
	RawDate    string `gorm:"type:varchar(16)"`
	TrID       int
	Distance   float64
	X          float64
	Y          float64
	Z          float64
	Slope      float64
	Band1      float64
	Band2      float64
	Band3      float64
}

func (ProfilePoint) TableName() string {
	return "profile_point"
}
