package service

import (
	"strings"
	"testing"

	"StorylineStudio-server/models"
)

func kenBurns(direction string) models.AnimationSettings {
	s := models.DefaultAnimationSettings(models.AnimationKenBurns)
	s.KenBurns.Direction = direction
	return s
}

func TestBuildFilterKenBurns(t *testing.T) {
	cases := []struct {
		name     string
		settings models.AnimationSettings
		duration float64
		want     string
	}{
		{
			name:     "zoom in with default scales",
			settings: kenBurns("zoom-in"),
			duration: 5,
			want:     "zoompan=z='1+(1.1-1)*in/125':d=125:fps=25:x='iw/2-(iw/zoom/2)':y='ih/2-(ih/zoom/2)'",
		},
		{
			name:     "pan left moves x against frame index",
			settings: kenBurns("pan-left"),
			duration: 5,
			want:     "zoompan=z=1:x='iw/2-(iw/zoom/2)-50*in/125':y='ih/2-(ih/zoom/2)':d=125:fps=25",
		},
		{
			name:     "pan down moves y with frame index",
			settings: kenBurns("pan-down"),
			duration: 5,
			want:     "zoompan=z=1:x='iw/2-(iw/zoom/2)':y='ih/2-(ih/zoom/2)+50*in/125':d=125:fps=25",
		},
		{
			name:     "fractional duration floors frame count",
			settings: kenBurns("zoom-in"),
			duration: 4.2,
			want:     "zoompan=z='1+(1.1-1)*in/105':d=105:fps=25:x='iw/2-(iw/zoom/2)':y='ih/2-(ih/zoom/2)'",
		},
		{
			name:     "zero duration falls back to five seconds",
			settings: kenBurns("zoom-out"),
			duration: 0,
			want:     "zoompan=z='1+(1.1-1)*in/125':d=125:fps=25:x='iw/2-(iw/zoom/2)':y='ih/2-(ih/zoom/2)'",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := BuildFilter(tc.settings, tc.duration)
			if got.None {
				t.Fatal("expected a filter, got none")
			}
			if got.Filter != tc.want+RescaleSuffix {
				t.Errorf("filter mismatch:\n got  %s\n want %s", got.Filter, tc.want+RescaleSuffix)
			}
		})
	}
}

func TestBuildFilterParallax(t *testing.T) {
	cases := []struct {
		direction string
		want      string
	}{
		{"left-to-right", "crop=iw*0.8:ih:x=(iw-ow)*t/5:y=0"},
		{"right-to-left", "crop=iw*0.8:ih:x=(iw-ow)*(1-t/5):y=0"},
		{"top-to-bottom", "crop=iw:ih*0.8:x=0:y=(ih-oh)*t/5"},
		{"bottom-to-top", "crop=iw:ih*0.8:x=0:y=(ih-oh)*(1-t/5)"},
	}
	for _, tc := range cases {
		t.Run(tc.direction, func(t *testing.T) {
			s := models.DefaultAnimationSettings(models.AnimationParallax)
			s.Parallax.Direction = tc.direction
			got := BuildFilter(s, 5)
			if got.Filter != tc.want+RescaleSuffix {
				t.Errorf("filter mismatch:\n got  %s\n want %s", got.Filter, tc.want+RescaleSuffix)
			}
		})
	}
}

func TestBuildFilterCinemagraph(t *testing.T) {
	s := models.DefaultAnimationSettings(models.AnimationCinemagraph)
	s.Cinemagraph.MotionType = "wave"
	got := BuildFilter(s, 5)
	want := "crop=iw:ih:x='5*sin(2*PI*(t/3))':y=0" + RescaleSuffix
	if got.Filter != want {
		t.Errorf("wave filter mismatch:\n got  %s\n want %s", got.Filter, want)
	}

	// loopDuration 为 0 时退回旁白时长
	s.Cinemagraph.LoopDuration = 0
	got = BuildFilter(s, 4)
	if !strings.Contains(got.Filter, "t/4") {
		t.Errorf("expected loop duration to fall back to audio duration, got %s", got.Filter)
	}
}

func TestBuildFilterDollyZoom(t *testing.T) {
	s := models.DefaultAnimationSettings(models.AnimationDollyZoom)
	got := BuildFilter(s, 5)
	want := "zoompan=z='1+(0.625-1)*in/125':d=125:fps=25:x='iw/2-(iw/zoom/2)':y='ih/2-(ih/zoom/2)'" + RescaleSuffix
	if got.Filter != want {
		t.Errorf("dolly zoom filter mismatch:\n got  %s\n want %s", got.Filter, want)
	}
}

func TestBuildFilterDollyZoomClampsFov(t *testing.T) {
	s := models.DefaultAnimationSettings(models.AnimationDollyZoom)
	s.DollyZoom.StartFov = 0
	s.DollyZoom.EndFov = -10

	got := BuildFilter(s, 5)
	if strings.Contains(got.Filter, "Inf") || strings.Contains(got.Filter, "NaN") {
		t.Fatalf("non-positive fov leaked into filter: %q", got.Filter)
	}
	want := "zoompan=z='1+(0.625-1)*in/125':d=125:fps=25:x='iw/2-(iw/zoom/2)':y='ih/2-(ih/zoom/2)'" + RescaleSuffix
	if got.Filter != want {
		t.Errorf("clamped filter mismatch:\n got  %s\n want %s", got.Filter, want)
	}
}

func TestBuildFilterStatic(t *testing.T) {
	got := BuildFilter(models.DefaultAnimationSettings(models.AnimationStatic), 5)
	if !got.None {
		t.Errorf("static animation should produce no filter, got %q", got.Filter)
	}

	got = BuildFilter(models.AnimationSettings{Type: "Unknown"}, 5)
	if !got.None {
		t.Errorf("unknown animation type should produce no filter, got %q", got.Filter)
	}
}

func TestBuildFilterUnsupportedOptions(t *testing.T) {
	cases := []struct {
		name     string
		settings models.AnimationSettings
	}{
		{"cinemagraph subtle-zoom", models.DefaultAnimationSettings(models.AnimationCinemagraph)},
		{"kenburns unknown direction", kenBurns("spiral")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := BuildFilter(tc.settings, 5)
			if !got.Unsupported {
				t.Fatalf("expected unsupported, got filter %q", got.Filter)
			}
			if got.Filter != "fps=25"+RescaleSuffix {
				t.Errorf("unsupported options must render motionless, got %q", got.Filter)
			}
		})
	}

	// 未知的视差方向同样按无动画处理
	p := models.DefaultAnimationSettings(models.AnimationParallax)
	p.Parallax.Direction = "diagonal"
	got := BuildFilter(p, 5)
	if !got.Unsupported || got.Filter != "fps=25"+RescaleSuffix {
		t.Errorf("unknown parallax direction must render motionless, got %+v", got)
	}
}

func TestBuildFilterAlwaysRescales(t *testing.T) {
	all := []models.AnimationSettings{
		kenBurns("zoom-in"),
		kenBurns("pan-right"),
		models.DefaultAnimationSettings(models.AnimationParallax),
		models.DefaultAnimationSettings(models.AnimationDollyZoom),
	}
	for _, s := range all {
		got := BuildFilter(s, 5)
		if !strings.HasSuffix(got.Filter, RescaleSuffix) {
			t.Errorf("%s: filter missing rescale suffix: %s", s.Type, got.Filter)
		}
	}
}

func TestBuildFilterMissingKindDefaults(t *testing.T) {
	// 只有类型没有参数时使用该类型的默认值
	got := BuildFilter(models.AnimationSettings{Type: models.AnimationKenBurns}, 5)
	want := "zoompan=z='1+(1.1-1)*in/125':d=125:fps=25:x='iw/2-(iw/zoom/2)':y='ih/2-(ih/zoom/2)'" + RescaleSuffix
	if got.Filter != want {
		t.Errorf("default kenburns mismatch:\n got  %s\n want %s", got.Filter, want)
	}
}
