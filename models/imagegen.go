package models

const (
	DefaultNegativePrompt = "blurry, low quality, distorted, watermark, text, signature"
	DefaultImageModel     = "gemini-2.5-flash-image-preview"
	DefaultImageWidth     = 1280
	DefaultImageHeight    = 720
)

type ImageModel struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func ImageModels() []ImageModel {
	return []ImageModel{
		{ID: "gemini-2.5-flash-image-preview", Name: "Gemini 2.5 Flash Image Preview", Description: "Quality image generation"},
	}
}

type ImageDimension struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Label  string `json:"label"`
}

func ImageDimensions() []ImageDimension {
	return []ImageDimension{
		{Width: 1024, Height: 768, Label: "1024x768 (4:3)"},
		{Width: 1280, Height: 720, Label: "1280x720 (16:9)"},
		{Width: 1024, Height: 1024, Label: "1024x1024 (1:1)"},
		{Width: 768, Height: 1024, Label: "768x1024 (3:4 Portrait)"},
		{Width: 1920, Height: 1080, Label: "1920x1080 (Full HD)"},
	}
}

// ImageGenSettings 每个场景的图片生成对话框状态，接受预览后重置
type ImageGenSettings struct {
	VisualPrompt       string `json:"visualPrompt"`
	NegativePrompt     string `json:"negativePrompt"`
	Model              string `json:"model"`
	Width              int    `json:"width"`
	Height             int    `json:"height"`
	ReferenceSceneID   string `json:"referenceSceneId,omitempty"`
	GeneratedPreview   string `json:"generatedPreview,omitempty"`
	IsGenerating       bool   `json:"isGenerating"`
	IsGeneratingPrompt bool   `json:"isGeneratingPrompt"`
}

func NewImageGenSettings() *ImageGenSettings {
	return &ImageGenSettings{
		NegativePrompt: DefaultNegativePrompt,
		Model:          DefaultImageModel,
		Width:          DefaultImageWidth,
		Height:         DefaultImageHeight,
	}
}

// ResetAfterAccept 预览被接受后清掉一次性状态，方便对话框复用
func (s *ImageGenSettings) ResetAfterAccept() {
	s.GeneratedPreview = ""
	s.VisualPrompt = ""
	s.ReferenceSceneID = ""
	s.IsGeneratingPrompt = false
}
