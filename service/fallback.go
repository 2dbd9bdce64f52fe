package service

import (
	"fmt"
	"strings"
	"time"
)

// LocalProvider 后端不可用时的本地确定性兜底（demo 模式）。
// 只有图片预览、自动提示词和混音走兜底；音频、视频、合并始终直接报错。
type LocalProvider struct{}

const promptStyleSuffix = ". High quality, detailed, professional photography style."

// VisualPrompt 根据场景文本拼一个确定性的提示词：
// 嗅探 night/day 关键词、正文截断 100 字符、上一场景截断 50 字符、固定风格后缀
func (LocalProvider) VisualPrompt(text, previousReference string) string {
	sceneType := "scene"
	lower := strings.ToLower(text)
	if strings.Contains(lower, "night") {
		sceneType = "night scene"
	} else if strings.Contains(lower, "day") {
		sceneType = "daytime scene"
	}

	prompt := fmt.Sprintf("A cinematic %s depicting: %s", sceneType, truncate(text, 100))
	if previousReference != "" {
		prompt += fmt.Sprintf(". Continuing from previous context: %s...", truncate(previousReference, 50))
	}
	return prompt + promptStyleSuffix
}

// ImageURL 模拟生成的占位图
func (LocalProvider) ImageURL(width, height int) string {
	return fmt.Sprintf("https://picsum.photos/%d/%d?random=%d", width, height, time.Now().UnixMilli())
}

// MixedAudioURL 模拟混音结果：原始旁白加时间戳参数
func (LocalProvider) MixedAudioURL(baseAudioURL string) string {
	return fmt.Sprintf("%s?mixed=%d", baseAudioURL, time.Now().UnixMilli())
}

// truncate 按字符数截断，不在多字节字符中间切开
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
