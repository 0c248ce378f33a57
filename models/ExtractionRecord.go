package models

import "gorm.io/datatypes"

type ExtractionRecord struct {
	ID         int64          `gorm:"primary_key;autoIncrement"`
	TaskID     string         `gorm:"type:varchar(255);index"`
	Mode       string         `gorm:"type:varchar(32)"`  //提取模式 dsm ortho all
	OutputPath string         `gorm:"type:varchar(255)"` //剖面表导出路径
	Status     int            //提取任务运行状态 0 运行中 1 执行完成  2 执行失败
	Points     int64          //提取的采样点总数
	Args       datatypes.JSON `gorm:"type:jsonb"` //提取任务的输入参数
}

func (ExtractionRecord) TableName() string {
	return "extraction_record"
}
