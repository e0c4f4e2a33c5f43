package handler

import (
	"github.com/gin-gonic/gin"
)

type RouterDeps struct {
	Ask    *AskHandler
	Videos *VideoHandler
}

func RegisterRoutes(api *gin.RouterGroup, deps RouterDeps) {
	api.POST("/ask", deps.Ask.Ask)
	api.GET("/videos", deps.Videos.List)
	api.POST("/videos", deps.Videos.Ingest)
	api.DELETE("/videos/:id", deps.Videos.Remove)
}
