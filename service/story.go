package service

import (
	"context"
	"io"
	"sync"
	"time"

	"StorylineStudio-server/config"
	"StorylineStudio-server/models"

	"github.com/rs/zerolog/log"
)

// Manager 持有所有活动会话，并把生成工作流路由到后端。
// DemoFallback 打开时，图片预览、自动提示词和混音在后端失败后走本地兜底；
// 音频、视频、合并不兜底，失败直接上报。
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	backend      *Client
	local        LocalProvider
	DemoFallback bool
}

func NewManager(backend *Client) *Manager {
	m := &Manager{
		sessions: make(map[string]*Session),
		backend:  backend,
	}
	if config.AppConfig != nil {
		m.DemoFallback = config.AppConfig.Backend.DemoFallback
	}
	return m
}

// CreateStory 新建故事会话并异步通知后端初始化。
// 初始化失败不阻塞编辑，只记日志，后端会在首次生成请求时按 story_id 懒建目录。
func (m *Manager) CreateStory() *Session {
	story := models.NewStory()
	sess := newSession(story)

	m.mu.Lock()
	m.sessions[story.ID] = sess
	m.mu.Unlock()

	go m.initStory(story.ID)

	log.Info().Str("story_id", story.ID).Msg("story session created")
	return sess
}

func (m *Manager) initStory(storyID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := m.backend.InitStory(ctx, storyID); err != nil {
		log.Warn().Err(err).Str("story_id", storyID).Msg("story init skipped, backend unreachable")
	}
}

// Session 按故事 ID 取会话
func (m *Manager) Session(storyID string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sess, ok := m.sessions[storyID]
	if !ok {
		return nil, ErrStoryNotFound
	}
	return sess, nil
}

// ResetStory 丢弃当前故事的全部状态，换一个全新的故事 ID。
// 生成期间拒绝，避免孤儿操作往已删除的会话里写结果。
func (m *Manager) ResetStory(storyID string) (*Session, error) {
	sess, err := m.Session(storyID)
	if err != nil {
		return nil, err
	}
	if sess.Busy() {
		return nil, ErrBusy
	}

	fresh := m.CreateStory()

	m.mu.Lock()
	delete(m.sessions, storyID)
	m.mu.Unlock()

	log.Info().Str("old_story_id", storyID).Str("story_id", fresh.ID()).Msg("story reset")
	return fresh, nil
}

// MergeFinalVideo 把所有已生成视频的场景拼成最终视频并流式下发。
// send 在后端返回成功后才被调用，调用方在其中写响应头和正文。
// 整个流式传输期间忙碌标记保持置位。
func (m *Manager) MergeFinalVideo(ctx context.Context, storyID string, send func(filename string, body io.Reader) error) error {
	sess, err := m.Session(storyID)
	if err != nil {
		return err
	}

	// 前置校验在置位忙碌标记之前：没有可合并场景时不进入忙碌状态
	sceneIDs := sess.MergeSceneIDs()
	if len(sceneIDs) == 0 {
		return ErrNoCompletedScenes
	}

	if err := sess.beginOp(OpMerge, ""); err != nil {
		return err
	}
	status := "failed"
	defer func() { sess.endOp(OpMerge, "", status) }()

	log.Info().Str("story_id", storyID).Int("scenes", len(sceneIDs)).Msg("merging final video")

	body, err := m.backend.Accumulate(ctx, storyID, sceneIDs)
	if err != nil {
		log.Error().Err(err).Str("story_id", storyID).Msg("final video merge failed")
		return err
	}
	defer body.Close()

	if err := send(sess.FinalVideoName(), body); err != nil {
		log.Error().Err(err).Str("story_id", storyID).Msg("final video streaming failed")
		return err
	}

	status = "success"
	log.Info().Str("story_id", storyID).Msg("final video merged")
	return nil
}
