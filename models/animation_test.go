package models

import "testing"

func TestDefaultAnimationSettingsPerType(t *testing.T) {
	cases := []struct {
		animType AnimationType
		check    func(t *testing.T, s AnimationSettings)
	}{
		{AnimationKenBurns, func(t *testing.T, s AnimationSettings) {
			if s.KenBurns == nil {
				t.Fatal("kenburns settings missing")
			}
			if s.KenBurns.Direction != "zoom-in" || s.KenBurns.StartScale != 1.0 || s.KenBurns.EndScale != 1.1 {
				t.Errorf("unexpected kenburns defaults: %+v", s.KenBurns)
			}
			if s.Parallax != nil || s.Cinemagraph != nil || s.DollyZoom != nil || s.Static != nil {
				t.Error("kenburns settings must not carry other variants")
			}
		}},
		{AnimationParallax, func(t *testing.T, s AnimationSettings) {
			if s.Parallax == nil {
				t.Fatal("parallax settings missing")
			}
			if s.Parallax.Direction != "left-to-right" || s.Parallax.Speed != 0.5 || s.Parallax.Layers != 2 {
				t.Errorf("unexpected parallax defaults: %+v", s.Parallax)
			}
		}},
		{AnimationCinemagraph, func(t *testing.T, s AnimationSettings) {
			if s.Cinemagraph == nil {
				t.Fatal("cinemagraph settings missing")
			}
			if s.Cinemagraph.MotionType != "subtle-zoom" || s.Cinemagraph.LoopDuration != 3 {
				t.Errorf("unexpected cinemagraph defaults: %+v", s.Cinemagraph)
			}
		}},
		{AnimationDollyZoom, func(t *testing.T, s AnimationSettings) {
			if s.DollyZoom == nil {
				t.Fatal("dolly zoom settings missing")
			}
			if s.DollyZoom.StartFov != 50 || s.DollyZoom.EndFov != 80 {
				t.Errorf("unexpected dolly zoom defaults: %+v", s.DollyZoom)
			}
		}},
		{AnimationStatic, func(t *testing.T, s AnimationSettings) {
			if s.Static == nil {
				t.Fatal("static settings missing")
			}
		}},
	}

	for _, tc := range cases {
		t.Run(string(tc.animType), func(t *testing.T) {
			s := DefaultAnimationSettings(tc.animType)
			if s.Type != tc.animType {
				t.Errorf("type = %q, want %q", s.Type, tc.animType)
			}
			tc.check(t, s)
		})
	}
}

func TestDefaultAnimationSettingsUnknownType(t *testing.T) {
	s := DefaultAnimationSettings("Vortex")
	if s.Type != AnimationStatic || s.Static == nil {
		t.Errorf("unknown type should resolve to static defaults, got %+v", s)
	}
}

func TestSwitchingTypeDropsOldVariant(t *testing.T) {
	// 切换动画类型必须整体替换，旧类型的参数不能残留
	s := DefaultAnimationSettings(AnimationKenBurns)
	s.KenBurns.Intensity = 2.5

	s = DefaultAnimationSettings(AnimationParallax)
	if s.KenBurns != nil {
		t.Error("kenburns variant leaked into parallax settings")
	}
	if s.Parallax.Intensity != 1.0 {
		t.Errorf("parallax intensity = %v, want fresh default 1.0", s.Parallax.Intensity)
	}
}
