package models

import (
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"time"
)

// MutedVolumeDB 线性音量为 0 时写入请求的下限分贝值。
// 20*log10(0) 无定义，这里按“静音”处理而不是传出 -Inf。
const MutedVolumeDB = -60

// AudioTrack 混音器中的一条叠加音轨。
// 内存模型始终保存线性音量（0..1），分贝换算只发生在请求序列化时。
type AudioTrack struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	FileName  string  `json:"fileName,omitempty"`
	Data      []byte  `json:"-"` // 上传的音频文件内容，仅用于混音请求
	URL       string  `json:"url,omitempty"`
	StartTime float64 `json:"startTime"` // 相对旁白起点的偏移（秒）
	Duration  float64 `json:"duration"`
	Volume    float64 `json:"volume"` // 线性 0..1
	Loop      bool    `json:"loop"`
	FadeIn    float64 `json:"fadeIn"`
	FadeOut   float64 `json:"fadeOut"`
	Color     string  `json:"color"`
}

// NewAudioTrack 新音轨默认值；Duration 在文件上传前保持 5 秒占位
func NewAudioTrack() *AudioTrack {
	return &AudioTrack{
		ID:        strconv.FormatInt(time.Now().UnixMilli(), 10),
		StartTime: 0,
		Duration:  5,
		Volume:    0.8,
		FadeIn:    0.5,
		FadeOut:   0.5,
		Color:     fmt.Sprintf("hsl(%d, 70%%, 60%%)", rand.Intn(360)),
	}
}

// HasFile 是否已上传音频文件；未上传的音轨不参与混音请求
func (t *AudioTrack) HasFile() bool {
	return len(t.Data) > 0
}

// VolumeDB 线性音量转分贝（四舍五入），0 音量钳到静音下限
func (t *AudioTrack) VolumeDB() int {
	if t.Volume <= 0 {
		return MutedVolumeDB
	}
	return int(math.Round(20 * math.Log10(t.Volume)))
}

// TrackConfig 混音请求中 track_config_N 字段的载荷
type TrackConfig struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	StartTimeMs int    `json:"start_time_ms"`
	DurationMs  int    `json:"duration_ms"`
	VolumeDB    int    `json:"volume_db"`
	FadeInMs    int    `json:"fade_in_ms"`
	FadeOutMs   int    `json:"fade_out_ms"`
	Loop        bool   `json:"loop"`
	Format      string `json:"format"`
}

// Config 序列化为后端混音契约：秒转毫秒、线性音量转分贝
func (t *AudioTrack) Config() TrackConfig {
	return TrackConfig{
		ID:          t.ID,
		Name:        t.Name,
		StartTimeMs: int(math.Round(t.StartTime * 1000)),
		DurationMs:  int(math.Round(t.Duration * 1000)),
		VolumeDB:    t.VolumeDB(),
		FadeInMs:    int(math.Round(t.FadeIn * 1000)),
		FadeOutMs:   int(math.Round(t.FadeOut * 1000)),
		Loop:        t.Loop,
		Format:      "mp3",
	}
}
