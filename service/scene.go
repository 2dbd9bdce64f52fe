package service

import (
	"context"

	"StorylineStudio-server/models"

	"github.com/rs/zerolog/log"
)

// GenerateScenePrompt 让后端根据场景文本（和上一场景文本作为衔接）生成视觉提示词。
// 只占用对话框内的局部标记，不置位全局忙碌标记，其他场景可以继续编辑。
func (m *Manager) GenerateScenePrompt(ctx context.Context, storyID, sceneID string) (models.ImageGenSettings, error) {
	sess, err := m.Session(storyID)
	if err != nil {
		return models.ImageGenSettings{}, err
	}
	sc, _, err := sess.SceneSnapshot(sceneID)
	if err != nil {
		return models.ImageGenSettings{}, err
	}
	if sc.Text == "" {
		return models.ImageGenSettings{}, ErrTextRequired
	}

	previous := sess.PreviousSceneText(sceneID)
	sess.setImageGenPromptBusy(sceneID, true)
	defer sess.setImageGenPromptBusy(sceneID, false)

	prompt, err := m.backend.GenerateVisualPrompt(ctx, sc.Text, previous)
	if err != nil {
		if !m.DemoFallback {
			return models.ImageGenSettings{}, err
		}
		log.Warn().Err(err).Str("scene_id", sceneID).Msg("prompt generation falling back to local template")
		prompt = m.local.VisualPrompt(sc.Text, previous)
	}

	sess.setImageGenPrompt(sceneID, prompt)
	return sess.ImageGenState(sceneID)
}

// GenerateImagePreview 按对话框当前参数生成预览图。
// 结果进 GeneratedPreview，需调用方 AcceptImage 确认后才写入场景。
func (m *Manager) GenerateImagePreview(ctx context.Context, storyID, sceneID string) (models.ImageGenSettings, error) {
	sess, err := m.Session(storyID)
	if err != nil {
		return models.ImageGenSettings{}, err
	}
	state, err := sess.ImageGenState(sceneID)
	if err != nil {
		return models.ImageGenSettings{}, err
	}
	if state.VisualPrompt == "" {
		return models.ImageGenSettings{}, ErrPromptRequired
	}

	sess.setImageGenGenerating(sceneID, true)
	defer sess.setImageGenGenerating(sceneID, false)

	req := ImageRequest{
		StoryID:          storyID,
		SceneID:          sceneID,
		VisualPrompt:     state.VisualPrompt,
		NegativePrompt:   state.NegativePrompt,
		Model:            state.Model,
		Width:            state.Width,
		Height:           state.Height,
		ReferenceSceneID: sess.resolveReferenceScene(sceneID, state.ReferenceSceneID),
	}

	image, err := m.backend.GenerateImage(ctx, req)
	if err != nil {
		if !m.DemoFallback {
			return models.ImageGenSettings{}, err
		}
		log.Warn().Err(err).Str("scene_id", sceneID).Msg("image generation falling back to placeholder")
		image = m.local.ImageURL(state.Width, state.Height)
	}

	sess.setImageGenPreview(sceneID, image)
	return sess.ImageGenState(sceneID)
}

// GenerateAudio 为场景旁白做 TTS。会话级互斥：期间其他生成、合并和结构编辑全部拒绝。
func (m *Manager) GenerateAudio(ctx context.Context, storyID, sceneID string) (models.Scene, error) {
	sess, err := m.Session(storyID)
	if err != nil {
		return models.Scene{}, err
	}
	sc, _, err := sess.SceneSnapshot(sceneID)
	if err != nil {
		return models.Scene{}, err
	}
	if sc.Text == "" {
		return models.Scene{}, ErrTextRequired
	}

	if err := sess.beginOp(OpGenerateAudio, sceneID); err != nil {
		return models.Scene{}, err
	}
	status := "failed"
	defer func() { sess.endOp(OpGenerateAudio, sceneID, status) }()

	audioURL, duration, err := m.backend.GenerateAudio(ctx, storyID, sceneID, sc.Text, sess.VoiceInstructions())
	if err != nil {
		log.Error().Err(err).Str("scene_id", sceneID).Msg("audio generation failed")
		return models.Scene{}, err
	}

	sc.HasAudio = true
	sc.AudioURL = audioURL
	sc.AudioDuration = duration
	sess.replaceScene(sc)

	status = "success"
	log.Info().Str("scene_id", sceneID).Float64("duration", duration).Msg("audio generated")
	return sc, nil
}

// GenerateVideo 用场景图片和动画滤镜渲染视频。
// custom 非 nil 时覆盖场景已保存的动画配置，并在成功后随场景一起保存。
func (m *Manager) GenerateVideo(ctx context.Context, storyID, sceneID string, custom *models.AnimationSettings) (models.Scene, error) {
	sess, err := m.Session(storyID)
	if err != nil {
		return models.Scene{}, err
	}
	sc, _, err := sess.SceneSnapshot(sceneID)
	if err != nil {
		return models.Scene{}, err
	}
	if sc.Text == "" || sc.Image == "" {
		return models.Scene{}, ErrImageRequired
	}

	settings := custom
	if settings == nil {
		settings = sc.Animation
	}
	if settings == nil {
		def := models.DefaultAnimation()
		settings = &def
	}

	if err := sess.beginOp(OpGenerateVideo, sceneID); err != nil {
		return models.Scene{}, err
	}
	status := "failed"
	defer func() { sess.endOp(OpGenerateVideo, sceneID, status) }()

	result := BuildFilter(*settings, sc.AudioDuration)
	if result.Unsupported {
		log.Warn().Str("scene_id", sceneID).Str("type", string(settings.Type)).
			Msg("animation option has no filter mapping, rendering without motion")
	}
	var animation *string
	if !result.None {
		animation = &result.Filter
	}

	videoURL, duration, err := m.backend.GenerateVideo(ctx, storyID, sceneID, sc.Image, animation)
	if err != nil {
		log.Error().Err(err).Str("scene_id", sceneID).Msg("video generation failed")
		return models.Scene{}, err
	}

	sc.HasVideo = true
	sc.VideoURL = videoURL
	sc.VideoDuration = duration
	sc.Animation = settings
	sess.replaceScene(sc)

	status = "success"
	log.Info().Str("scene_id", sceneID).Float64("duration", duration).Msg("video generated")
	return sc, nil
}

// MixSceneAudio 把场景旁白和全部已上传的叠加音轨送后端混音。
// 占用混音台的局部 processing 标记而非全局忙碌标记，混音期间仍可编辑其他场景。
func (m *Manager) MixSceneAudio(ctx context.Context, storyID, sceneID string) (Mixer, error) {
	sess, err := m.Session(storyID)
	if err != nil {
		return Mixer{}, err
	}
	sc, _, err := sess.SceneSnapshot(sceneID)
	if err != nil {
		return Mixer{}, err
	}
	if !sc.HasAudio {
		return Mixer{}, ErrNoNarration
	}
	if sess.trackCount(sceneID) == 0 {
		return Mixer{}, ErrNoTracks
	}

	sess.setMixerProcessing(sceneID, true)
	defer sess.setMixerProcessing(sceneID, false)

	meta := MixMetadata{
		StoryID: storyID,
		SceneID: sceneID,
		BaseAudio: MixBaseAudio{
			URL:    sc.AudioURL,
			Format: "mp3",
		},
		OutputFormat:  "mp3",
		Normalize:     true,
		ExportQuality: "high",
	}
	tracks := sess.mixableTracks(sceneID)

	mixedURL, err := m.backend.MixAudio(ctx, meta, tracks)
	if err != nil {
		if !m.DemoFallback {
			return Mixer{}, err
		}
		log.Warn().Err(err).Str("scene_id", sceneID).Msg("audio mix falling back to original narration")
		mixedURL = m.local.MixedAudioURL(sc.AudioURL)
	}

	sess.setMixedURL(sceneID, mixedURL)
	return sess.MixerSnapshot(sceneID)
}
