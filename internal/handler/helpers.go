package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/Brendonk13/youtube-highlight-generator-api/internal/pkg/errcode"
	apperr "github.com/Brendonk13/youtube-highlight-generator-api/internal/pkg/errors"
	"github.com/Brendonk13/youtube-highlight-generator-api/internal/pkg/response"
)

func handleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	requestID, _ := c.Get("request_id")
	logutil.GetLogger(c.Request.Context()).Error("request failed",
		zap.Any("request_id", requestID),
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.Error(err),
	)
	switch {
	case errors.Is(err, apperr.ErrInvalid):
		response.Error(c, errcode.ErrInvalid, "invalid request")
	case apperr.IsTranscriptNotFound(err):
		response.Error(c, errcode.ErrNotFound, "transcript not found")
	case apperr.IsFetchFailure(err):
		response.Error(c, errcode.ErrFetchFailed, "transcript fetch failed")
	case apperr.IsIndexFailure(err):
		response.Error(c, errcode.ErrIndexUnavailable, "similarity index unavailable")
	case apperr.IsChatFailure(err):
		response.Error(c, errcode.ErrChatUnavailable, "chat capability unavailable")
	default:
		response.Error(c, errcode.ErrInternal, "internal error")
	}
}
