package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Brendonk13/youtube-highlight-generator-api/internal/model"
	"github.com/Brendonk13/youtube-highlight-generator-api/internal/pkg/errcode"
	"github.com/Brendonk13/youtube-highlight-generator-api/internal/pkg/response"
	"github.com/Brendonk13/youtube-highlight-generator-api/internal/service"
)

type VideoHandler struct {
	ingest     *service.IngestService
	configured []model.VideoRef
}

func NewVideoHandler(ingest *service.IngestService, configured []model.VideoRef) *VideoHandler {
	return &VideoHandler{ingest: ingest, configured: configured}
}

type ingestRequest struct {
	VideoID string `json:"video_id"`
	Title   string `json:"title"`
}

func (h *VideoHandler) Ingest(c *gin.Context) {
	var req ingestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errcode.ErrInvalid, "invalid request")
		return
	}
	units, err := h.ingest.Ingest(c.Request.Context(), model.VideoRef{ID: req.VideoID, Title: req.Title})
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"video_id": req.VideoID, "units": units})
}

func (h *VideoHandler) List(c *gin.Context) {
	response.Success(c, gin.H{"videos": h.configured})
}

func (h *VideoHandler) Remove(c *gin.Context) {
	videoID := c.Param("id")
	if err := h.ingest.Remove(c.Request.Context(), videoID); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"video_id": videoID})
}
