package service

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"StorylineStudio-server/models"
)

const (
	// FilterFPS 视频生成固定帧率
	FilterFPS = 25

	// RescaleSuffix 所有滤镜链末尾强制偶数缩放，避免编码器 "width/height not divisible by 2" 报错
	RescaleSuffix = ",scale=trunc(iw/2)*2:trunc(ih/2)*2"

	// 旁白时长未知时的兜底秒数
	fallbackFilterDuration = 5
)

// FilterResult 动画参数映射的结果。
// None 表示完全不需要滤镜（Static 或未知类型），视频请求中 animation 传 null。
// Unsupported 表示类型可识别但该子选项没有对应滤镜（如 cinemagraph 的 subtle-zoom），
// 此时 Filter 为纯 fps 转换，不含任何运动。
type FilterResult struct {
	Filter      string
	None        bool
	Unsupported bool
}

// BuildFilter 把动画配置和场景旁白时长映射为 FFmpeg 滤镜链表达式。
// 纯函数：视频生成请求和界面上的命令预览必须走同一份逻辑。
func BuildFilter(s models.AnimationSettings, audioDuration float64) FilterResult {
	fps := FilterFPS
	duration := audioDuration
	if duration <= 0 {
		duration = fallbackFilterDuration
	}
	frames := int(math.Floor(duration * float64(fps)))

	filter := fmt.Sprintf("fps=%d", fps)
	unsupported := false

	switch s.Type {
	case models.AnimationKenBurns:
		kb := s.KenBurns
		if kb == nil {
			kb = models.DefaultAnimationSettings(models.AnimationKenBurns).KenBurns
		}
		switch {
		case strings.Contains(kb.Direction, "zoom"):
			filter = fmt.Sprintf("zoompan=z='%s+(%s-%s)*in/%d':d=%d:fps=%d:x='iw/2-(iw/zoom/2)':y='ih/2-(ih/zoom/2)'",
				num(kb.StartScale), num(kb.EndScale), num(kb.StartScale), frames, frames, fps)
		case strings.Contains(kb.Direction, "pan"):
			direction := strings.TrimPrefix(kb.Direction, "pan-")
			intensity := num(kb.Intensity * 50)
			xExpr := "iw/2-(iw/zoom/2)"
			yExpr := "ih/2-(ih/zoom/2)"

			// 无法识别的平移方向保持居中裁切，不产生运动
			switch direction {
			case "left":
				xExpr = fmt.Sprintf("iw/2-(iw/zoom/2)-%s*in/%d", intensity, frames)
			case "right":
				xExpr = fmt.Sprintf("iw/2-(iw/zoom/2)+%s*in/%d", intensity, frames)
			case "up":
				yExpr = fmt.Sprintf("ih/2-(ih/zoom/2)-%s*in/%d", intensity, frames)
			case "down":
				yExpr = fmt.Sprintf("ih/2-(ih/zoom/2)+%s*in/%d", intensity, frames)
			}

			filter = fmt.Sprintf("zoompan=z=%s:x='%s':y='%s':d=%d:fps=%d", num(kb.StartScale), xExpr, yExpr, frames, fps)
		default:
			unsupported = true
		}

	case models.AnimationParallax:
		p := s.Parallax
		if p == nil {
			p = models.DefaultAnimationSettings(models.AnimationParallax).Parallax
		}
		switch p.Direction {
		case "left-to-right":
			filter = fmt.Sprintf("crop=iw*0.8:ih:x=(iw-ow)*t/%s:y=0", num(duration))
		case "right-to-left":
			filter = fmt.Sprintf("crop=iw*0.8:ih:x=(iw-ow)*(1-t/%s):y=0", num(duration))
		case "top-to-bottom":
			filter = fmt.Sprintf("crop=iw:ih*0.8:x=0:y=(ih-oh)*t/%s", num(duration))
		case "bottom-to-top":
			filter = fmt.Sprintf("crop=iw:ih*0.8:x=0:y=(ih-oh)*(1-t/%s)", num(duration))
		default:
			unsupported = true
		}

	case models.AnimationCinemagraph:
		cg := s.Cinemagraph
		if cg == nil {
			cg = models.DefaultAnimationSettings(models.AnimationCinemagraph).Cinemagraph
		}
		motionIntensity := num(cg.Intensity * 5)
		loopDuration := cg.LoopDuration
		if loopDuration <= 0 {
			loopDuration = duration
		}
		switch cg.MotionType {
		case "wave":
			filter = fmt.Sprintf("crop=iw:ih:x='%s*sin(2*PI*(t/%s))':y=0", motionIntensity, num(loopDuration))
		case "breathe":
			filter = fmt.Sprintf("scale=iw*(1+%s/100*sin(2*PI*(t/%s))):ih*(1+%s/100*sin(2*PI*(t/%s)))",
				motionIntensity, num(loopDuration), motionIntensity, num(loopDuration))
		default:
			// subtle-zoom 等选项没有确定的运动公式，明确按“无动画”处理
			unsupported = true
		}

	case models.AnimationDollyZoom:
		dz := s.DollyZoom
		if dz == nil {
			dz = models.DefaultAnimationSettings(models.AnimationDollyZoom).DollyZoom
		}
		// 非正 fov 无法换算缩放倍率，按默认视场处理
		startFov, endFov := dz.StartFov, dz.EndFov
		if startFov <= 0 {
			startFov = 50
		}
		if endFov <= 0 {
			endFov = 80
		}
		scaleStart := 50 / float64(startFov)
		scaleEnd := 50 / float64(endFov)
		filter = fmt.Sprintf("zoompan=z='%s+(%s-%s)*in/%d':d=%d:fps=%d:x='iw/2-(iw/zoom/2)':y='ih/2-(ih/zoom/2)'",
			num(scaleStart), num(scaleEnd), num(scaleStart), frames, frames, fps)

	case models.AnimationStatic:
		return FilterResult{None: true}

	default:
		return FilterResult{None: true}
	}

	return FilterResult{Filter: filter + RescaleSuffix, Unsupported: unsupported}
}

// num 按最短往返表示格式化数字，与前端模板字符串的输出一致（1 -> "1"，1.1 -> "1.1"）
func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
