package routers

import (
	"github.com/GrainArc/ShoreProfile/views"
	"github.com/gin-gonic/gin"
)

func ProfileRouters(r *gin.Engine) {
	UserController := &views.UserController{}
	mapRouter := r.Group("/profiler")
	{
		// POST用于提交剖面提取任务配置
		mapRouter.POST("/Extraction/start", UserController.StartExtraction)
		// GET用于查询任务状态
		mapRouter.GET("/Extraction/status/:taskId", UserController.GetExtractionStatus)
		// GET用于分页查询任务列表
		mapRouter.GET("/Extraction/list", UserController.GetExtractionList)
	}
	{
		// 测量数据目录对照检查
		mapRouter.GET("/Check", UserController.CheckFolders)
	}
}
