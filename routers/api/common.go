package api

import (
	"errors"
	"net/http"

	"StorylineStudio-server/service"

	"github.com/gin-gonic/gin"
)

// Studio 全局编辑器服务，main 启动时注入
var Studio *service.Manager

// fail 把服务层错误映射为 HTTP 状态码和统一的错误响应
func fail(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrBusy):
		return http.StatusConflict
	case errors.Is(err, service.ErrStoryNotFound),
		errors.Is(err, service.ErrSceneNotFound),
		errors.Is(err, service.ErrTrackNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrTextRequired),
		errors.Is(err, service.ErrPromptRequired),
		errors.Is(err, service.ErrImageRequired),
		errors.Is(err, service.ErrNoPreview),
		errors.Is(err, service.ErrNoNarration),
		errors.Is(err, service.ErrNoTracks),
		errors.Is(err, service.ErrNoCompletedScenes):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
