package models

import (
	"strconv"
	"time"
)

// Scene 一个故事单元：旁白文本 + 图片 + 生成的语音与视频
type Scene struct {
	ID            string             `json:"id"`
	StoryID       string             `json:"storyId"`
	Text          string             `json:"text"`
	Image         string             `json:"image,omitempty"` // data-URI 上传或后端返回的 URL
	HasAudio      bool               `json:"hasAudio"`
	HasVideo      bool               `json:"hasVideo"`
	AudioURL      string             `json:"audioUrl,omitempty"`
	VideoURL      string             `json:"videoUrl,omitempty"`
	AudioDuration float64            `json:"audioDuration,omitempty"`
	VideoDuration float64            `json:"videoDuration,omitempty"`
	Animation     *AnimationSettings `json:"animationSettings,omitempty"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt"`
}

// NewScene 创建空场景，ID 为毫秒时间戳（同一故事内唯一，调用方负责去重）
func NewScene(storyID string) *Scene {
	now := time.Now()
	return &Scene{
		ID:        strconv.FormatInt(now.UnixMilli(), 10),
		StoryID:   storyID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
