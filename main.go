package main

import (
	"log"

	"github.com/GrainArc/ShoreProfile/config"
	"github.com/GrainArc/ShoreProfile/models"
	"github.com/GrainArc/ShoreProfile/routers"
	"github.com/gin-gonic/gin"
)

func main() {
	models.InitDB()

	r := gin.Default()
	routers.ProfileRouters(r)

	log.Printf("listening on %s", config.MainRouter)
	if err := r.Run(config.MainRouter); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
