package service

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestLocalVisualPrompt(t *testing.T) {
	var local LocalProvider

	cases := []struct {
		name     string
		text     string
		previous string
		contains []string
	}{
		{
			name:     "night keyword selects night scene",
			text:     "A quiet night in the old town",
			contains: []string{"A cinematic night scene depicting: A quiet night in the old town"},
		},
		{
			name:     "day keyword selects daytime scene",
			text:     "Market stalls open at daybreak",
			contains: []string{"A cinematic daytime scene depicting:"},
		},
		{
			name:     "no keyword falls back to plain scene",
			text:     "The letter arrives",
			contains: []string{"A cinematic scene depicting: The letter arrives"},
		},
		{
			name:     "previous text appended as context",
			text:     "He opens the door",
			previous: "She knocked three times",
			contains: []string{"Continuing from previous context: She knocked three times..."},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := local.VisualPrompt(tc.text, tc.previous)
			for _, want := range tc.contains {
				if !strings.Contains(got, want) {
					t.Errorf("prompt %q missing %q", got, want)
				}
			}
			if !strings.HasSuffix(got, "professional photography style.") {
				t.Errorf("prompt missing style suffix: %q", got)
			}
		})
	}
}

func TestLocalVisualPromptTruncation(t *testing.T) {
	var local LocalProvider

	longText := strings.Repeat("a", 150)
	longPrev := strings.Repeat("b", 90)
	got := local.VisualPrompt(longText, longPrev)

	if strings.Contains(got, strings.Repeat("a", 101)) {
		t.Error("scene text not truncated to 100 characters")
	}
	if !strings.Contains(got, strings.Repeat("a", 100)) {
		t.Error("truncated scene text missing")
	}
	if strings.Contains(got, strings.Repeat("b", 51)) {
		t.Error("previous text not truncated to 50 characters")
	}
}

func TestLocalVisualPromptTruncatesOnRuneBoundary(t *testing.T) {
	var local LocalProvider

	got := local.VisualPrompt(strings.Repeat("夜", 120), strings.Repeat("雨", 60))
	if !utf8.ValidString(got) {
		t.Errorf("prompt contains invalid UTF-8: %q", got)
	}
	if strings.Contains(got, strings.Repeat("夜", 101)) {
		t.Error("scene text not truncated to 100 characters")
	}
	if !strings.Contains(got, strings.Repeat("夜", 100)) {
		t.Error("truncated scene text missing or cut mid-character")
	}
	if !strings.Contains(got, strings.Repeat("雨", 50)+"...") {
		t.Error("previous text not truncated to 50 whole characters")
	}
}

func TestLocalImageURL(t *testing.T) {
	var local LocalProvider
	got := local.ImageURL(1280, 720)
	if !strings.HasPrefix(got, "https://picsum.photos/1280/720?random=") {
		t.Errorf("unexpected placeholder url: %q", got)
	}
}

func TestLocalMixedAudioURL(t *testing.T) {
	var local LocalProvider
	got := local.MixedAudioURL("http://localhost:8000/audio/scene1.mp3")
	if !strings.HasPrefix(got, "http://localhost:8000/audio/scene1.mp3?mixed=") {
		t.Errorf("unexpected mixed url: %q", got)
	}
}
