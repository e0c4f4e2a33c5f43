package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Brendonk13/youtube-highlight-generator-api/internal/pkg/errcode"
	"github.com/Brendonk13/youtube-highlight-generator-api/internal/pkg/response"
	"github.com/Brendonk13/youtube-highlight-generator-api/internal/service"
)

type AskHandler struct {
	answers *service.AnswerService
}

func NewAskHandler(answers *service.AnswerService) *AskHandler {
	return &AskHandler{answers: answers}
}

type askRequest struct {
	Question string `json:"question"`
}

func (h *AskHandler) Ask(c *gin.Context) {
	var req askRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errcode.ErrInvalid, "invalid request")
		return
	}
	answer, err := h.answers.Ask(c.Request.Context(), req.Question)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, answer)
}
