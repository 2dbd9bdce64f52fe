package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"StorylineStudio-server/models"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"
)

// Client 封装对生成后端（TTS / 生图 / 视频渲染 / 混音 / 合并）的全部 HTTP 调用。
// 客户端不设超时也不做自动重试：一次生成调用一直等到后端返回或出错，
// 期间忙碌标记保持置位。唯一例外是 /init（非用户操作，带退避重试）。
type Client struct {
	addr string
	http *http.Client
}

func NewClient(addr string) *Client {
	return &Client{
		addr: addr,
		http: &http.Client{},
	}
}

type statusResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func (r statusResponse) err(operation string) error {
	if r.Error != "" {
		return fmt.Errorf("%s failed: %s", operation, r.Error)
	}
	return fmt.Errorf("%s failed", operation)
}

// InitStory 通知后端新故事开始。会话启动时异步触发，失败只记日志。
func (c *Client) InitStory(ctx context.Context, storyID string) error {
	operation := func() error {
		return c.postJSON(ctx, "/init", map[string]string{"story_id": storyID}, nil)
	}
	notify := func(err error, next time.Duration) {
		log.Warn().Err(err).Str("story_id", storyID).
			Msgf("story init failed, retrying in %s", next.Round(time.Millisecond))
	}
	bo := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 3), ctx)
	return backoff.RetryNotify(operation, bo, notify)
}

// ImageRequest 生图请求载荷
type ImageRequest struct {
	StoryID          string  `json:"story_id"`
	SceneID          string  `json:"scene_id"`
	VisualPrompt     string  `json:"visual_prompt"`
	NegativePrompt   string  `json:"negative_prompt"`
	Model            string  `json:"model"`
	Width            int     `json:"width"`
	Height           int     `json:"height"`
	ReferenceSceneID *string `json:"reference_scene_id"`
}

// GenerateImage 返回图片引用：后端给 URL 或 base64，统一转成可直接展示的引用
func (c *Client) GenerateImage(ctx context.Context, req ImageRequest) (string, error) {
	var resp struct {
		statusResponse
		ImageURL string `json:"image_url"`
		Image    string `json:"image"`
	}
	if err := c.postJSON(ctx, "/generate/image", req, &resp); err != nil {
		return "", err
	}
	if !resp.Success {
		return "", resp.err("image generation")
	}
	if resp.ImageURL != "" {
		return resp.ImageURL, nil
	}
	return "data:image/png;base64," + resp.Image, nil
}

// GenerateVisualPrompt 根据场景文本（和上一场景文本作为衔接上下文）生成提示词
func (c *Client) GenerateVisualPrompt(ctx context.Context, text, previousReference string) (string, error) {
	payload := map[string]string{
		"text":               text,
		"previous_reference": previousReference,
	}
	var resp struct {
		statusResponse
		VisualPrompt string `json:"visual_prompt"`
	}
	if err := c.postJSON(ctx, "/generate/visual/prompt", payload, &resp); err != nil {
		return "", err
	}
	if !resp.Success || resp.VisualPrompt == "" {
		return "", resp.err("visual prompt generation")
	}
	return resp.VisualPrompt, nil
}

// GenerateAudio 旁白 TTS，返回音频引用和时长（秒）
func (c *Client) GenerateAudio(ctx context.Context, storyID, sceneID, text, instruction string) (string, float64, error) {
	payload := map[string]interface{}{
		"story_id": storyID,
		"scene_id": sceneID,
		"text":     text,
		"voice_settings": map[string]string{
			"instruction": instruction,
		},
	}
	var resp struct {
		statusResponse
		AudioURL  string  `json:"audio_url"`
		AudioData string  `json:"audio_data"`
		Duration  float64 `json:"duration"`
	}
	if err := c.postJSON(ctx, "/generate/audio", payload, &resp); err != nil {
		return "", 0, err
	}
	if !resp.Success {
		return "", 0, resp.err("audio generation")
	}
	audioURL := resp.AudioURL
	if audioURL == "" {
		audioURL = "data:audio/mp3;base64," + resp.AudioData
	}
	return audioURL, resp.Duration, nil
}

// GenerateVideo 由场景图片和滤镜链渲染视频；animation 为 nil 表示静态（无滤镜）
func (c *Client) GenerateVideo(ctx context.Context, storyID, sceneID, image string, animation *string) (string, float64, error) {
	payload := map[string]interface{}{
		"story_id":  storyID,
		"scene_id":  sceneID,
		"image":     image,
		"animation": animation,
	}
	var resp struct {
		statusResponse
		VideoURL  string  `json:"video_url"`
		VideoData string  `json:"video_data"`
		Duration  float64 `json:"duration"`
	}
	if err := c.postJSON(ctx, "/generate/video", payload, &resp); err != nil {
		return "", 0, err
	}
	if !resp.Success {
		return "", 0, resp.err("video generation")
	}
	videoURL := resp.VideoURL
	if videoURL == "" {
		videoURL = "data:video/mp4;base64," + resp.VideoData
	}
	return videoURL, resp.Duration, nil
}

// MixMetadata 混音请求的 metadata 字段
type MixMetadata struct {
	StoryID       string       `json:"story_id"`
	SceneID       string       `json:"scene_id"`
	BaseAudio     MixBaseAudio `json:"base_audio"`
	OutputFormat  string       `json:"output_format"`
	Normalize     bool         `json:"normalize"`
	ExportQuality string       `json:"export_quality"`
}

type MixBaseAudio struct {
	URL    string `json:"url"`
	Format string `json:"format"`
}

// MixAudio multipart 上传：metadata + 每条音轨的文件和配置。
// 调用方只传已上传文件的音轨。
func (c *Client) MixAudio(ctx context.Context, meta MixMetadata, tracks []*models.AudioTrack) (string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	metaJSON, err := json.Marshal(meta)
	if err != nil {
		return "", fmt.Errorf("marshal mix metadata failed: %w", err)
	}
	if err := writer.WriteField("metadata", string(metaJSON)); err != nil {
		return "", err
	}

	for i, track := range tracks {
		part, err := writer.CreateFormFile(fmt.Sprintf("overlay_file_%d", i), track.FileName)
		if err != nil {
			return "", err
		}
		if _, err := part.Write(track.Data); err != nil {
			return "", err
		}

		cfgJSON, err := json.Marshal(track.Config())
		if err != nil {
			return "", fmt.Errorf("marshal track config failed: %w", err)
		}
		if err := writer.WriteField(fmt.Sprintf("track_config_%d", i), string(cfgJSON)); err != nil {
			return "", err
		}
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.addr+"/generate/audio/mix", &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	var result struct {
		statusResponse
		MixedAudioURL string `json:"mixed_audio_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode mix response failed: %w", err)
	}
	if !result.Success {
		return "", result.err("audio mixing")
	}
	return result.MixedAudioURL, nil
}

// Accumulate 合并所有已完成场景的视频，返回最终视频的二进制流。
// 调用方负责 Close。
func (c *Client) Accumulate(ctx context.Context, storyID string, sceneIDs []string) (io.ReadCloser, error) {
	payload := map[string]interface{}{
		"story_id": storyID,
		"scenes":   sceneIDs,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.addr+"/accumulate", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}
	return resp.Body, nil
}

func (c *Client) postJSON(ctx context.Context, path string, payload interface{}, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request failed: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.addr+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response failed: %w", err)
	}
	return nil
}
