package service

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"StorylineStudio-server/models"
)

func TestCreateStoryDefaults(t *testing.T) {
	_, sess := testManager(t, http.NewServeMux())

	if !strings.HasPrefix(sess.ID(), "story_") {
		t.Errorf("story id = %q, want story_ prefix", sess.ID())
	}
	story := sess.StorySnapshot()
	if len(story.Scenes) != 0 {
		t.Errorf("new story has %d scenes, want 0", len(story.Scenes))
	}
	if story.VoiceInstructions != models.DefaultVoiceInstructions {
		t.Error("new story missing default voice instructions")
	}
}

func TestSessionLookup(t *testing.T) {
	m, sess := testManager(t, http.NewServeMux())

	got, err := m.Session(sess.ID())
	if err != nil {
		t.Fatalf("Session: %v", err)
	}
	if got.ID() != sess.ID() {
		t.Errorf("looked up wrong session: %s", got.ID())
	}

	if _, err := m.Session("story_unknown"); !errors.Is(err, ErrStoryNotFound) {
		t.Errorf("unknown story: err = %v, want ErrStoryNotFound", err)
	}
}

func TestResetStoryReplacesEverything(t *testing.T) {
	m, sess := testManager(t, http.NewServeMux())
	sceneID := addSceneWithText(t, sess, "old content")
	if err := sess.SetVoiceInstructions("custom instructions"); err != nil {
		t.Fatal(err)
	}

	fresh, err := m.ResetStory(sess.ID())
	if err != nil {
		t.Fatalf("ResetStory: %v", err)
	}
	if fresh.ID() == sess.ID() {
		t.Error("reset must produce a new story id")
	}
	story := fresh.StorySnapshot()
	if len(story.Scenes) != 0 {
		t.Errorf("fresh story has %d scenes, want 0", len(story.Scenes))
	}
	if story.VoiceInstructions != models.DefaultVoiceInstructions {
		t.Error("voice instructions not restored to default")
	}

	// 旧会话已不可寻址
	if _, err := m.Session(sess.ID()); !errors.Is(err, ErrStoryNotFound) {
		t.Errorf("old session still reachable: err = %v", err)
	}
	_ = sceneID
}

func TestResetStoryBlockedWhileBusy(t *testing.T) {
	m, sess := testManager(t, http.NewServeMux())
	sc, _ := sess.AddScene()
	if err := sess.beginOp(OpGenerateAudio, sc.ID); err != nil {
		t.Fatal(err)
	}
	defer sess.endOp(OpGenerateAudio, sc.ID, "failed")

	if _, err := m.ResetStory(sess.ID()); !errors.Is(err, ErrBusy) {
		t.Errorf("reset during generation: err = %v, want ErrBusy", err)
	}
	if _, err := m.Session(sess.ID()); err != nil {
		t.Error("busy session must survive a refused reset")
	}
}
