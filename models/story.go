package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DefaultVoiceInstructions 重置后恢复的默认旁白风格说明
const DefaultVoiceInstructions = `🎙️ Narration Instruction (Adaptive Delivery)

Accent: Neutral Indian English, clear and grounded.

Tone: Serious, but with subtle shifts — reflective at the start, energetic in the middle, then darker toward the end.

Mood: Gloomy undertone throughout, but with sparks of energy that echo his fleeting highs.

Delivery Flow (per story beat):

Opening (reflective, steady pace)
"Interviews, fan messages, and public appearances filled his days."
→ Calm, matter-of-fact, almost weary.

"Initially, he responded to fans, humble and grateful."
→ Gentle, softened voice, slower.

Rising Admiration (quicker, more engaged)
"He felt alive, powerful, adored. He reveled in praise, each view and comment inflating his pride. Even small compliments felt like treasures."
→ Increase pacing slightly, add a touch of brightness in tone — but not joyous, rather intoxicated.

The High (confident, energetic rhythm)
"The world seemed to obey him. Music flowed effortlessly. The feeling was intoxicating."
→ Crisp delivery, medium-fast pace, a hint of wonder — but with a shadow underneath.

The Shift (slower, darker again)
"He started imagining bigger dreams, larger stages, more recognition."
→ Slight pause between phrases, like ambition swelling.

"For a while, life felt perfect, magical, unstoppable."
→ Deliver with restrained intensity — the pace slows, voice lowers at "unstoppable," foreshadowing collapse.

⚖️ Overall rhythm: Not monotone slow — instead, it rises with his pride and falls back into gloom, mirroring the story arc.`

// Story 一次会话内的完整故事：有序场景序列 + 全局旁白说明
// 不做持久化，进程退出或重置即丢弃
type Story struct {
	ID                string    `json:"id"`
	VoiceInstructions string    `json:"voiceInstructions"`
	Scenes            []*Scene  `json:"scenes"`
	CreatedAt         time.Time `json:"createdAt"`
}

func NewStory() *Story {
	return &Story{
		ID:                NewStoryID(),
		VoiceInstructions: DefaultVoiceInstructions,
		Scenes:            []*Scene{},
		CreatedAt:         time.Now(),
	}
}

// NewStoryID 生成会话级故事标识，重置时重新生成
func NewStoryID() string {
	return fmt.Sprintf("story_%d_%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}

// FinalVideoName 合并导出的文件名
func (s *Story) FinalVideoName() string {
	return fmt.Sprintf("story_%s_final_video.mp4", s.ID)
}
