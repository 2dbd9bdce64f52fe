package service

import (
	"fmt"

	"StorylineStudio-server/models"
)

// Mixer 单个场景的混音台状态：叠加音轨列表和最近一次混音结果。
// 音轨顺序即添加顺序，界面按此排列。
type Mixer struct {
	SceneID    string               `json:"sceneId"`
	Tracks     []*models.AudioTrack `json:"tracks"`
	MixedURL   string               `json:"mixedUrl,omitempty"`
	Processing bool                 `json:"processing"`
}

func (s *Session) mixerLocked(sceneID string) *Mixer {
	m, ok := s.mixers[sceneID]
	if !ok {
		m = &Mixer{SceneID: sceneID}
		s.mixers[sceneID] = m
	}
	return m
}

// MixerSnapshot 场景混音台状态的拷贝
func (s *Session) MixerSnapshot(sceneID string) (Mixer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sceneLocked(sceneID) == nil {
		return Mixer{}, ErrSceneNotFound
	}
	m := s.mixerLocked(sceneID)
	snapshot := *m
	snapshot.Tracks = make([]*models.AudioTrack, len(m.Tracks))
	for i, t := range m.Tracks {
		copied := *t
		snapshot.Tracks[i] = &copied
	}
	return snapshot, nil
}

// AddTrack 新建一条空音轨（默认时长 5 秒、音量 0.8、淡入淡出 0.5 秒）
func (s *Session) AddTrack(sceneID string) (models.AudioTrack, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sceneLocked(sceneID) == nil {
		return models.AudioTrack{}, ErrSceneNotFound
	}
	m := s.mixerLocked(sceneID)
	track := models.NewAudioTrack()
	// 同一毫秒内连续添加会撞 ID
	for m.trackIndex(track.ID) >= 0 {
		track.ID = fmt.Sprintf("%s_1", track.ID)
	}
	m.Tracks = append(m.Tracks, track)
	return *track, nil
}

// TrackUpdate 音轨字段的局部更新，nil 字段保持不变
type TrackUpdate struct {
	Name      *string  `json:"name"`
	StartTime *float64 `json:"startTime"`
	Duration  *float64 `json:"duration"`
	Volume    *float64 `json:"volume"`
	Loop      *bool    `json:"loop"`
	FadeIn    *float64 `json:"fadeIn"`
	FadeOut   *float64 `json:"fadeOut"`
}

func (s *Session) UpdateTrack(sceneID, trackID string, upd TrackUpdate) (models.AudioTrack, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, track, err := s.trackLocked(sceneID, trackID)
	if err != nil {
		return models.AudioTrack{}, err
	}
	if upd.Name != nil {
		track.Name = *upd.Name
	}
	if upd.StartTime != nil {
		track.StartTime = *upd.StartTime
	}
	if upd.Duration != nil {
		track.Duration = *upd.Duration
	}
	if upd.Volume != nil {
		track.Volume = *upd.Volume
	}
	if upd.Loop != nil {
		track.Loop = *upd.Loop
	}
	if upd.FadeIn != nil {
		track.FadeIn = *upd.FadeIn
	}
	if upd.FadeOut != nil {
		track.FadeOut = *upd.FadeOut
	}
	return *track, nil
}

// RemoveTrack 删除音轨，后续音轨前移
func (s *Session) RemoveTrack(sceneID, trackID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sceneLocked(sceneID) == nil {
		return ErrSceneNotFound
	}
	m := s.mixerLocked(sceneID)
	idx := m.trackIndex(trackID)
	if idx < 0 {
		return ErrTrackNotFound
	}
	m.Tracks = append(m.Tracks[:idx], m.Tracks[idx+1:]...)
	return nil
}

// AttachTrackFile 把上传的音频文件挂到音轨上。
// duration 由上传方探测（浏览器解码取时长），<=0 时保留现值。
func (s *Session) AttachTrackFile(sceneID, trackID, name string, data []byte, duration float64) (models.AudioTrack, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, track, err := s.trackLocked(sceneID, trackID)
	if err != nil {
		return models.AudioTrack{}, err
	}
	track.FileName = name
	track.Data = data
	track.URL = fmt.Sprintf("/v1/api/stories/%s/scenes/%s/mixer/tracks/%s/audio",
		s.story.ID, sceneID, trackID)
	if track.Name == "" || track.Name == "New Track" {
		track.Name = name
	}
	if duration > 0 {
		track.Duration = duration
	}
	return *track, nil
}

// TrackData 取音轨文件内容，供回放接口下发
func (s *Session) TrackData(sceneID, trackID string) (string, []byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, track, err := s.trackLocked(sceneID, trackID)
	if err != nil {
		return "", nil, err
	}
	if !track.HasFile() {
		return "", nil, ErrTrackNotFound
	}
	return track.FileName, track.Data, nil
}

// ClearMixer 清空场景的全部音轨和混音结果
func (s *Session) ClearMixer(sceneID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sceneLocked(sceneID) == nil {
		return ErrSceneNotFound
	}
	delete(s.mixers, sceneID)
	return nil
}

// mixableTracks 混音请求只带已上传文件的音轨，顺序保持添加顺序
func (s *Session) mixableTracks(sceneID string) []*models.AudioTrack {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := s.mixerLocked(sceneID)
	tracks := make([]*models.AudioTrack, 0, len(m.Tracks))
	for _, t := range m.Tracks {
		if t.HasFile() {
			copied := *t
			tracks = append(tracks, &copied)
		}
	}
	return tracks
}

func (s *Session) trackCount(sceneID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.mixerLocked(sceneID).Tracks)
}

func (s *Session) setMixerProcessing(sceneID string, processing bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mixerLocked(sceneID).Processing = processing
}

func (s *Session) setMixedURL(sceneID, url string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mixerLocked(sceneID).MixedURL = url
}

func (s *Session) trackLocked(sceneID, trackID string) (*Mixer, *models.AudioTrack, error) {
	if s.sceneLocked(sceneID) == nil {
		return nil, nil, ErrSceneNotFound
	}
	m := s.mixerLocked(sceneID)
	idx := m.trackIndex(trackID)
	if idx < 0 {
		return nil, nil, ErrTrackNotFound
	}
	return m, m.Tracks[idx], nil
}

func (m *Mixer) trackIndex(trackID string) int {
	for i, t := range m.Tracks {
		if t.ID == trackID {
			return i
		}
	}
	return -1
}
