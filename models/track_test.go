package models

import "testing"

func TestVolumeDB(t *testing.T) {
	cases := []struct {
		name   string
		volume float64
		want   int
	}{
		{"full volume", 1.0, 0},
		{"half volume", 0.5, -6},
		{"default volume", 0.8, -2},
		{"tenth volume", 0.1, -20},
		{"muted clamps to floor", 0, MutedVolumeDB},
		{"negative clamps to floor", -0.2, MutedVolumeDB},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			track := AudioTrack{Volume: tc.volume}
			if got := track.VolumeDB(); got != tc.want {
				t.Errorf("VolumeDB(%v) = %d, want %d", tc.volume, got, tc.want)
			}
		})
	}
}

func TestTrackConfigMillisecondRounding(t *testing.T) {
	track := AudioTrack{
		ID:        "t1",
		Name:      "rain",
		StartTime: 1.2345,
		Duration:  5.5,
		Volume:    0.5,
		FadeIn:    0.5,
		FadeOut:   0.0004,
		Loop:      true,
	}
	cfg := track.Config()

	if cfg.StartTimeMs != 1235 {
		t.Errorf("StartTimeMs = %d, want 1235", cfg.StartTimeMs)
	}
	if cfg.DurationMs != 5500 {
		t.Errorf("DurationMs = %d, want 5500", cfg.DurationMs)
	}
	if cfg.FadeInMs != 500 {
		t.Errorf("FadeInMs = %d, want 500", cfg.FadeInMs)
	}
	if cfg.FadeOutMs != 0 {
		t.Errorf("FadeOutMs = %d, want 0", cfg.FadeOutMs)
	}
	if cfg.VolumeDB != -6 {
		t.Errorf("VolumeDB = %d, want -6", cfg.VolumeDB)
	}
	if !cfg.Loop {
		t.Error("Loop flag lost in config")
	}
	if cfg.Format != "mp3" {
		t.Errorf("Format = %q, want mp3", cfg.Format)
	}
}

func TestNewAudioTrackDefaults(t *testing.T) {
	track := NewAudioTrack()
	if track.Duration != 5 || track.Volume != 0.8 || track.FadeIn != 0.5 || track.FadeOut != 0.5 {
		t.Errorf("unexpected defaults: %+v", track)
	}
	if track.HasFile() {
		t.Error("new track must not report a file before upload")
	}
}
