package service

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	"StorylineStudio-server/models"

	"github.com/gorilla/websocket"
)

// 会话内互斥的生成操作名，通过进度通道推给浏览器
const (
	OpGenerateAudio = "generate_audio"
	OpGenerateVideo = "generate_video"
	OpMerge         = "merge_final_video"
)

// ProgressEvent 忙碌标记变化的推送载荷
type ProgressEvent struct {
	Type      string `json:"type"` // busy / idle
	Busy      bool   `json:"busy"`
	Operation string `json:"operation,omitempty"`
	SceneID   string `json:"sceneId,omitempty"`
	Status    string `json:"status,omitempty"` // success / failed，仅 idle 事件携带
}

// Session 持有一个故事的全部编辑器状态。
// 场景序列、忙碌标记、每场景的图片生成状态和混音器都只通过 Session 的方法修改，
// 保持单写者纪律；子状态从不被外部直接改写。
type Session struct {
	mu       sync.Mutex
	story    *models.Story
	busy     bool
	busyOp   string
	imageGen map[string]*models.ImageGenSettings
	mixers   map[string]*Mixer

	subsMu sync.Mutex
	subs   map[*websocket.Conn]struct{}
}

func newSession(story *models.Story) *Session {
	return &Session{
		story:    story,
		imageGen: make(map[string]*models.ImageGenSettings),
		mixers:   make(map[string]*Mixer),
		subs:     make(map[*websocket.Conn]struct{}),
	}
}

func (s *Session) ID() string {
	return s.story.ID
}

// Busy 当前是否有生成操作或合并在进行
func (s *Session) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

// beginOp 置位跨场景忙碌标记；已有操作在进行时拒绝。
// 标记在异步调用发出之前同步置位，保证全局同一时刻至多一个生成操作。
func (s *Session) beginOp(op, sceneID string) error {
	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return ErrBusy
	}
	s.busy = true
	s.busyOp = op
	s.mu.Unlock()

	s.broadcast(ProgressEvent{Type: "busy", Busy: true, Operation: op, SceneID: sceneID})
	return nil
}

// endOp 清除忙碌标记；成功和失败路径都必须走到这里
func (s *Session) endOp(op, sceneID, status string) {
	s.mu.Lock()
	s.busy = false
	s.busyOp = ""
	s.mu.Unlock()

	s.broadcast(ProgressEvent{Type: "idle", Busy: false, Operation: op, SceneID: sceneID, Status: status})
}

// StorySnapshot 返回故事状态的拷贝（场景按播放顺序）
func (s *Session) StorySnapshot() models.Story {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := *s.story
	snapshot.Scenes = make([]*models.Scene, len(s.story.Scenes))
	for i, sc := range s.story.Scenes {
		copied := *sc
		snapshot.Scenes[i] = &copied
	}
	return snapshot
}

func (s *Session) VoiceInstructions() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.story.VoiceInstructions
}

// SetVoiceInstructions 更新全局旁白说明，生成期间拒绝
func (s *Session) SetVoiceInstructions(v string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy {
		return ErrBusy
	}
	s.story.VoiceInstructions = v
	return nil
}

// AddScene 追加一个空场景；顺序即播放顺序
func (s *Session) AddScene() (models.Scene, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy {
		return models.Scene{}, ErrBusy
	}

	sc := models.NewScene(s.story.ID)
	// 毫秒时间戳在连续点击时可能撞 ID，顺延到唯一为止
	for s.sceneIndexLocked(sc.ID) >= 0 {
		n, _ := strconv.ParseInt(sc.ID, 10, 64)
		sc.ID = strconv.FormatInt(n+1, 10)
	}
	s.story.Scenes = append(s.story.Scenes, sc)
	return *sc, nil
}

// RemoveScene 删除场景并回收其对话框/混音器状态，后续场景前移一位
func (s *Session) RemoveScene(sceneID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy {
		return ErrBusy
	}

	idx := s.sceneIndexLocked(sceneID)
	if idx < 0 {
		return ErrSceneNotFound
	}
	s.story.Scenes = append(s.story.Scenes[:idx], s.story.Scenes[idx+1:]...)
	delete(s.imageGen, sceneID)
	delete(s.mixers, sceneID)
	return nil
}

// UpdateSceneText 编辑旁白文本（生成期间界面禁用，这里同样拒绝）
func (s *Session) UpdateSceneText(sceneID, text string) (models.Scene, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy {
		return models.Scene{}, ErrBusy
	}

	sc := s.sceneLocked(sceneID)
	if sc == nil {
		return models.Scene{}, ErrSceneNotFound
	}
	updated := *sc
	updated.Text = text
	s.replaceSceneLocked(updated)
	return updated, nil
}

// SetSceneImage 上传图片（data-URI）或直接采用某个引用
func (s *Session) SetSceneImage(sceneID, image string) (models.Scene, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy {
		return models.Scene{}, ErrBusy
	}

	sc := s.sceneLocked(sceneID)
	if sc == nil {
		return models.Scene{}, ErrSceneNotFound
	}
	updated := *sc
	updated.Image = image
	s.replaceSceneLocked(updated)
	return updated, nil
}

// UseSceneImage 直接套用另一个场景已有的图片
func (s *Session) UseSceneImage(sceneID, fromSceneID string) (models.Scene, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy {
		return models.Scene{}, ErrBusy
	}

	sc := s.sceneLocked(sceneID)
	from := s.sceneLocked(fromSceneID)
	if sc == nil || from == nil {
		return models.Scene{}, ErrSceneNotFound
	}
	if from.Image == "" || from.ID == sc.ID {
		return models.Scene{}, fmt.Errorf("scene %s has no image to use", fromSceneID)
	}
	updated := *sc
	updated.Image = from.Image
	s.replaceSceneLocked(updated)
	return updated, nil
}

// SceneSnapshot 按 ID 取场景拷贝及其序号
func (s *Session) SceneSnapshot(sceneID string) (models.Scene, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.sceneIndexLocked(sceneID)
	if idx < 0 {
		return models.Scene{}, -1, ErrSceneNotFound
	}
	return *s.story.Scenes[idx], idx, nil
}

// PreviousSceneText 上一个场景的文本，作为提示词衔接上下文
func (s *Session) PreviousSceneText(sceneID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.sceneIndexLocked(sceneID)
	if idx <= 0 {
		return ""
	}
	return s.story.Scenes[idx-1].Text
}

// replaceScene 唯一的场景更新入口：整条记录原子替换，不做局部字段修改
func (s *Session) replaceScene(updated models.Scene) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replaceSceneLocked(updated)
}

func (s *Session) replaceSceneLocked(updated models.Scene) {
	idx := s.sceneIndexLocked(updated.ID)
	if idx < 0 {
		return
	}
	updated.UpdatedAt = time.Now()
	s.story.Scenes[idx] = &updated
}

func (s *Session) sceneLocked(sceneID string) *models.Scene {
	idx := s.sceneIndexLocked(sceneID)
	if idx < 0 {
		return nil
	}
	return s.story.Scenes[idx]
}

func (s *Session) sceneIndexLocked(sceneID string) int {
	for i, sc := range s.story.Scenes {
		if sc.ID == sceneID {
			return i
		}
	}
	return -1
}

// MergeSceneIDs 收集所有已生成视频的场景（跳过未完成的），按播放顺序
func (s *Session) MergeSceneIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, 0, len(s.story.Scenes))
	for _, sc := range s.story.Scenes {
		if sc.HasVideo {
			ids = append(ids, sc.ID)
		}
	}
	return ids
}

func (s *Session) FinalVideoName() string {
	return s.story.FinalVideoName()
}

// ---------------------------------------------------------------------------
// 图片生成对话框状态
// ---------------------------------------------------------------------------

// ImageGenState 取场景的对话框状态拷贝；打开时若提示词为空则用场景文本预填
func (s *Session) ImageGenState(sceneID string) (models.ImageGenSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sc := s.sceneLocked(sceneID)
	if sc == nil {
		return models.ImageGenSettings{}, ErrSceneNotFound
	}
	state := s.imageGenLocked(sceneID)
	if state.VisualPrompt == "" && sc.Text != "" {
		state.VisualPrompt = sc.Text
	}
	return *state, nil
}

// ImageGenUpdate 对话框字段的局部更新，nil 字段保持不变
type ImageGenUpdate struct {
	VisualPrompt     *string `json:"visualPrompt"`
	NegativePrompt   *string `json:"negativePrompt"`
	Model            *string `json:"model"`
	Width            *int    `json:"width"`
	Height           *int    `json:"height"`
	ReferenceSceneID *string `json:"referenceSceneId"`
}

func (s *Session) UpdateImageGen(sceneID string, upd ImageGenUpdate) (models.ImageGenSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sceneLocked(sceneID) == nil {
		return models.ImageGenSettings{}, ErrSceneNotFound
	}
	state := s.imageGenLocked(sceneID)
	if upd.VisualPrompt != nil {
		state.VisualPrompt = *upd.VisualPrompt
	}
	if upd.NegativePrompt != nil {
		state.NegativePrompt = *upd.NegativePrompt
	}
	if upd.Model != nil {
		state.Model = *upd.Model
	}
	if upd.Width != nil {
		state.Width = *upd.Width
	}
	if upd.Height != nil {
		state.Height = *upd.Height
	}
	if upd.ReferenceSceneID != nil {
		state.ReferenceSceneID = *upd.ReferenceSceneID
	}
	return *state, nil
}

// AcceptImage 把预览图确认为场景图片，并重置对话框的一次性状态
func (s *Session) AcceptImage(sceneID string) (models.Scene, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sc := s.sceneLocked(sceneID)
	if sc == nil {
		return models.Scene{}, ErrSceneNotFound
	}
	state := s.imageGenLocked(sceneID)
	if state.GeneratedPreview == "" {
		return models.Scene{}, ErrNoPreview
	}

	updated := *sc
	updated.Image = state.GeneratedPreview
	s.replaceSceneLocked(updated)
	state.ResetAfterAccept()
	return updated, nil
}

func (s *Session) setImageGenGenerating(sceneID string, generating bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state := s.imageGenLocked(sceneID)
	state.IsGenerating = generating
	if generating {
		state.GeneratedPreview = ""
	}
}

func (s *Session) setImageGenPreview(sceneID, preview string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.imageGenLocked(sceneID).GeneratedPreview = preview
}

func (s *Session) setImageGenPromptBusy(sceneID string, busy bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.imageGenLocked(sceneID).IsGeneratingPrompt = busy
}

func (s *Session) setImageGenPrompt(sceneID, prompt string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.imageGenLocked(sceneID).VisualPrompt = prompt
}

// resolveReferenceScene 校验参考场景：必须是另一个已有图片的场景
func (s *Session) resolveReferenceScene(sceneID, referenceID string) *string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if referenceID == "" || referenceID == sceneID {
		return nil
	}
	ref := s.sceneLocked(referenceID)
	if ref == nil || ref.Image == "" {
		return nil
	}
	id := ref.ID
	return &id
}

func (s *Session) imageGenLocked(sceneID string) *models.ImageGenSettings {
	state, ok := s.imageGen[sceneID]
	if !ok {
		state = models.NewImageGenSettings()
		s.imageGen[sceneID] = state
	}
	return state
}

// ---------------------------------------------------------------------------
// 进度推送
// ---------------------------------------------------------------------------

// Subscribe 注册进度订阅并推送当前状态。
// 首次推送和注册在同一把锁内完成：broadcast 持同一把锁写连接，
// 保证任何时刻同一连接只有一个写者，初始状态也不会和后续事件乱序。
func (s *Session) Subscribe(conn *websocket.Conn) error {
	s.mu.Lock()
	state := ProgressEvent{Type: "idle", Busy: s.busy, Operation: s.busyOp}
	if s.busy {
		state.Type = "busy"
	}
	s.mu.Unlock()

	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	if err := conn.WriteJSON(state); err != nil {
		return err
	}
	s.subs[conn] = struct{}{}
	return nil
}

func (s *Session) Unsubscribe(conn *websocket.Conn) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	delete(s.subs, conn)
}

func (s *Session) broadcast(ev ProgressEvent) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	for conn := range s.subs {
		if err := conn.WriteJSON(ev); err != nil {
			conn.Close()
			delete(s.subs, conn)
		}
	}
}
