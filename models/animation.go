package models

type AnimationType string

const (
	AnimationKenBurns    AnimationType = "Ken Burns"
	AnimationParallax    AnimationType = "Parallax"
	AnimationCinemagraph AnimationType = "Cinemagraph"
	AnimationDollyZoom   AnimationType = "Dolly Zoom"
	AnimationStatic      AnimationType = "Static"
)

type KenBurnsSettings struct {
	Intensity  float64 `json:"intensity"`
	Duration   float64 `json:"duration"`
	Direction  string  `json:"direction"` // zoom-in / zoom-out / pan-left / pan-right / pan-up / pan-down
	StartScale float64 `json:"startScale"`
	EndScale   float64 `json:"endScale"`
	XOffset    float64 `json:"xOffset"`
	YOffset    float64 `json:"yOffset"`
}

type ParallaxSettings struct {
	Intensity float64 `json:"intensity"`
	Duration  float64 `json:"duration"`
	Direction string  `json:"direction"` // left-to-right / right-to-left / top-to-bottom / bottom-to-top
	Speed     float64 `json:"speed"`
	Layers    int     `json:"layers"`
}

type CinemagraphSettings struct {
	Intensity    float64 `json:"intensity"`
	Duration     float64 `json:"duration"`
	Mask         string  `json:"mask"`
	MotionType   string  `json:"motionType"` // wave / breathe; subtle-zoom 目前无对应滤镜
	LoopDuration float64 `json:"loopDuration"`
}

type DollyZoomSettings struct {
	Intensity  float64 `json:"intensity"`
	Duration   float64 `json:"duration"`
	StartFov   int     `json:"startFov"`
	EndFov     int     `json:"endFov"`
	FocusPoint string  `json:"focusPoint"`
}

type StaticSettings struct {
	Intensity float64 `json:"intensity"`
	Duration  float64 `json:"duration"`
}

// AnimationSettings 动画参数的带标签变体：每种类型只携带自己的字段。
// 切换类型时必须用 DefaultAnimationSettings 整体替换，禁止跨类型保留旧字段。
type AnimationSettings struct {
	Type        AnimationType        `json:"type"`
	KenBurns    *KenBurnsSettings    `json:"kenBurns,omitempty"`
	Parallax    *ParallaxSettings    `json:"parallax,omitempty"`
	Cinemagraph *CinemagraphSettings `json:"cinemagraph,omitempty"`
	DollyZoom   *DollyZoomSettings   `json:"dollyZoom,omitempty"`
	Static      *StaticSettings      `json:"static,omitempty"`
}

// DefaultAnimationSettings 返回某个动画类型的全新默认值
func DefaultAnimationSettings(t AnimationType) AnimationSettings {
	switch t {
	case AnimationKenBurns:
		return AnimationSettings{Type: t, KenBurns: &KenBurnsSettings{
			Intensity:  1.0,
			Duration:   5,
			Direction:  "zoom-in",
			StartScale: 1.0,
			EndScale:   1.1,
		}}
	case AnimationParallax:
		return AnimationSettings{Type: t, Parallax: &ParallaxSettings{
			Intensity: 1.0,
			Duration:  5,
			Direction: "left-to-right",
			Speed:     0.5,
			Layers:    2,
		}}
	case AnimationCinemagraph:
		return AnimationSettings{Type: t, Cinemagraph: &CinemagraphSettings{
			Intensity:    1.0,
			Duration:     5,
			Mask:         "center",
			MotionType:   "subtle-zoom",
			LoopDuration: 3,
		}}
	case AnimationDollyZoom:
		return AnimationSettings{Type: t, DollyZoom: &DollyZoomSettings{
			Intensity:  1.0,
			Duration:   5,
			StartFov:   50,
			EndFov:     80,
			FocusPoint: "center",
		}}
	default:
		return AnimationSettings{Type: AnimationStatic, Static: &StaticSettings{
			Intensity: 1.0,
			Duration:  5,
		}}
	}
}

// DefaultAnimation 场景的初始动画配置
func DefaultAnimation() AnimationSettings {
	return DefaultAnimationSettings(AnimationKenBurns)
}
