package service

import "errors"

// 校验类错误在发请求之前返回，处理层转成用户可读的提示
var (
	ErrBusy              = errors.New("another generation is already in progress, please wait for it to complete")
	ErrStoryNotFound     = errors.New("story not found")
	ErrSceneNotFound     = errors.New("scene not found")
	ErrTrackNotFound     = errors.New("audio track not found")
	ErrTextRequired      = errors.New("please add scene text first")
	ErrPromptRequired    = errors.New("please enter a visual prompt first")
	ErrImageRequired     = errors.New("please add both text and image before generating video")
	ErrNoPreview         = errors.New("no generated preview to accept")
	ErrNoNarration       = errors.New("please generate audio for this scene first")
	ErrNoTracks          = errors.New("please add at least one audio track to mix")
	ErrNoCompletedScenes = errors.New("please generate videos for at least one scene first")
)
