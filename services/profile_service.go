package services

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/GrainArc/ShoreProfile/Profiler"
	"github.com/GrainArc/ShoreProfile/config"
	"github.com/GrainArc/ShoreProfile/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ProfileService struct{}

// ExtractRequest 剖面提取请求参数
type ExtractRequest struct {
	Mode      string  `json:"mode" binding:"required"` // 提取模式: dsm, ortho, all
	CheckMode string  `json:"check_mode"`              // 对照检查模式，默认与mode一致
	TrIDField string  `json:"tr_id_field"`             // 断面号字段，默认reset
	Step      float64 `json:"sampling_step"`           // 采样步长(米)
	LodMode   string  `json:"lod_mode"`                // LOD: 空、数字或目录
	AddXY     bool    `json:"add_xy"`                  // 是否单列输出坐标
	AddSlope  bool    `json:"add_slope"`               // 是否输出坡度
	NoData    float64 `json:"nodata_value"`            // 默认空值
	HasNoData bool    `json:"has_nodata"`
}

// ExtractResponse 剖面提取响应
type ExtractResponse struct {
	TaskID     string `json:"task_id"`
	OutputPath string `json:"output_path"`
	Message    string `json:"message"`
}

// LocationSpecs 从配置生成测区检索表
func LocationSpecs() []Profiler.LocationSpec {
	var specs []Profiler.LocationSpec
	for _, loc := range config.MainConfig.Locations {
		specs = append(specs, Profiler.LocationSpec{
			Code:   loc.Code,
			Search: loc.SearchWords(),
			EPSG:   loc.EPSG,
		})
	}
	return specs
}

// StartExtractionTask 启动异步剖面提取任务
func (s *ProfileService) StartExtractionTask(req *ExtractRequest) (*ExtractResponse, error) {
	if req.Mode != "dsm" && req.Mode != "ortho" && req.Mode != "all" {
		return nil, fmt.Errorf("无效的提取模式: %s", req.Mode)
	}
	// 设置默认值
	if req.CheckMode == "" {
		req.CheckMode = req.Mode
	}
	if req.TrIDField == "" {
		req.TrIDField = Profiler.TrIDReset
	}
	if req.Step <= 0 {
		req.Step = config.MainConfig.SamplingStep
	}
	if !req.HasNoData {
		req.NoData = config.MainConfig.DefaultNoData
	}
	// 生成TaskID
	taskID := uuid.New().String()
	// 构建输出路径
	outputDir := filepath.Join(config.MainConfig.Download, taskID)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("创建输出目录失败: %w", err)
	}
	outputPath := filepath.Join(outputDir, "profiles.db")
	// 序列化参数
	argsJSON, _ := json.Marshal(req)
	// 创建记录
	record := &models.ExtractionRecord{
		TaskID:     taskID,
		Mode:       req.Mode,
		OutputPath: outputPath,
		Status:     0, // 运行中
		Args:       datatypes.JSON(argsJSON),
	}
	if err := models.DB.Create(record).Error; err != nil {
		return nil, fmt.Errorf("创建任务记录失败: %w", err)
	}
	// 启动异步任务
	go s.executeExtractionTask(taskID, req, outputDir, outputPath)
	return &ExtractResponse{
		TaskID:     taskID,
		OutputPath: outputPath,
		Message:    "任务已提交",
	}, nil
}

// executeExtractionTask 执行剖面提取任务
func (s *ProfileService) executeExtractionTask(taskID string, req *ExtractRequest, outputDir string, outputPath string) {
	var finalStatus int = 1 // 默认成功
	defer func() {
		if r := recover(); r != nil {
			finalStatus = 2 // 执行失败
		}
		// 更新任务状态
		models.DB.Model(&models.ExtractionRecord{}).Where("task_id = ?", taskID).Update("status", finalStatus)
	}()

	specs := LocationSpecs()
	ps, err := Profiler.NewProfileSet(
		config.MainConfig.DSMDir,
		config.MainConfig.OrthoDir,
		config.MainConfig.TransDir,
		req.CheckMode,
		specs,
	)
	if err != nil {
		finalStatus = 2
		return
	}
	// 留存对照检查结果
	for _, row := range ps.Check {
		models.DB.Create(&models.MatchRecord{
			TaskID:       taskID,
			Location:     row.Location,
			RawDate:      row.RawDate,
			RasterPath:   row.RasterPath,
			TransectPath: row.TransectPath,
			RasterEPSG:   row.RasterEPSG,
			TransectEPSG: row.TransectEPSG,
			CRSMatch:     row.CRSMatch,
		})
	}

	if err := ps.ExtractProfiles(req.Mode, req.TrIDField, req.Step, req.LodMode, req.AddXY, req.AddSlope, req.NoData); err != nil {
		finalStatus = 2
		return
	}

	if err := exportProfiles(outputPath, ps.Profiles, req.AddXY); err != nil {
		finalStatus = 2
		return
	}
	// 会话落盘，后续可恢复
	if err := ps.Save(filepath.Join(outputDir, "session.bin")); err != nil {
		finalStatus = 2
		return
	}
	models.DB.Model(&models.ExtractionRecord{}).Where("task_id = ?", taskID).Update("points", int64(len(ps.Profiles)))
}

// exportProfiles 把剖面表写入SQLite成果库，addXY为false时不落坐标列
func exportProfiles(dbPath string, rows []Profiler.SamplePoint, addXY bool) error {
	db, err := models.InitDatabase(dbPath)
	if err != nil {
		return fmt.Errorf("初始化成果库失败: %w", err)
	}
	sqlDB, _ := db.DB()
	defer sqlDB.Close()

	points := make([]models.ProfilePoint, 0, len(rows))
	for _, r := range rows {
		x, y := r.Coordinates[0], r.Coordinates[1]
		if !addXY {
			x, y = math.NaN(), math.NaN()
		}
		points = append(points, models.ProfilePoint{
			PointID:    r.PointID,
			Location:   r.Location,
			SurveyDate: r.SurveyDate.Format("2006-01-02"),
			RawDate:    r.RawDate,
			TrID:       r.TrID,
			Distance:   r.Distance,
			X:          x,
			Y:          y,
			Z:          r.Z,
			Slope:      r.Slope,
			Band1:      r.Band1,
			Band2:      r.Band2,
			Band3:      r.Band3,
		})
	}
	if len(points) == 0 {
		return nil
	}
	return db.CreateInBatches(points, 500).Error
}

// GetTaskStatus 查询任务状态
func (s *ProfileService) GetTaskStatus(taskID string) (*models.ExtractionRecord, error) {
	var record models.ExtractionRecord
	if err := models.DB.Where("task_id = ?", taskID).First(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// TaskListResponse 任务列表响应
type TaskListResponse struct {
	Total   int64                     `json:"total"`
	Records []models.ExtractionRecord `json:"records"`
}

// GetTaskList 分页查询任务列表
func (s *ProfileService) GetTaskList(page, pageSize int, status *int, taskID string) (*TaskListResponse, error) {
	var total int64
	var records []models.ExtractionRecord
	query := models.DB.Model(&models.ExtractionRecord{})

	// 条件筛选
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	if taskID != "" {
		query = query.Where("task_id LIKE ?", "%"+taskID+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	// 分页查询
	offset := (page - 1) * pageSize
	if err := query.Offset(offset).Limit(pageSize).
		Order("id DESC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return &TaskListResponse{Total: total, Records: records}, nil
}

// CheckResponse 目录对照检查响应
type CheckResponse struct {
	Rows   []Profiler.MatchRow `json:"rows"`
	Counts map[string]int      `json:"counts"`
}

// CheckSurveyFolders 同步执行目录对照检查
func (s *ProfileService) CheckSurveyFolders(checkMode string) (*CheckResponse, error) {
	ps, err := Profiler.NewProfileSet(
		config.MainConfig.DSMDir,
		config.MainConfig.OrthoDir,
		config.MainConfig.TransDir,
		checkMode,
		LocationSpecs(),
	)
	if err != nil {
		return nil, err
	}
	return &CheckResponse{Rows: ps.Check, Counts: ps.Counts}, nil
}
