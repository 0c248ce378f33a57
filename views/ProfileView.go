package views

import (
	"net/http"
	"strconv"

	"github.com/GrainArc/ShoreProfile/services"
	"github.com/gin-gonic/gin"
)

type UserController struct{}

var profileService = &services.ProfileService{}

// StartExtraction 启动剖面提取任务
func (uc *UserController) StartExtraction(c *gin.Context) {
	var req services.ExtractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid request parameters",
			"error":   err.Error(),
		})
		return
	}

	resp, err := profileService.StartExtractionTask(&req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    resp,
	})
}

// GetExtractionStatus 查询提取任务状态
func (uc *UserController) GetExtractionStatus(c *gin.Context) {
	taskID := c.Param("taskId")

	record, err := profileService.GetTaskStatus(taskID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "Task not found",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    record,
	})
}

// GetExtractionList 分页查询任务列表
func (uc *UserController) GetExtractionList(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	taskID := c.Query("task_id")

	var status *int
	if s := c.Query("status"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "Invalid status value",
			})
			return
		}
		status = &v
	}

	resp, err := profileService.GetTaskList(page, pageSize, status, taskID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    resp,
	})
}

// CheckFolders 同步对照检查测量数据目录
func (uc *UserController) CheckFolders(c *gin.Context) {
	checkMode := c.DefaultQuery("check_mode", "all")

	resp, err := profileService.CheckSurveyFolders(checkMode)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    resp,
	})
}
