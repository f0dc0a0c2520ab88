package stores

import (
	"context"
	"testing"

	"go.uber.org/zap"
)

func newTestTranscription(kv KV) *TranscriptionStore {
	return NewTranscriptionStore(kv, zap.NewNop().Sugar())
}

func TestTranscriptionDefaultsOn(t *testing.T) {
	s := newTestTranscription(NewMemoryKV())

	if !s.Enabled() {
		t.Error("transcriptions should default to enabled")
	}
	if !s.Loading() {
		t.Error("store should report loading before the initial read")
	}

	s.Load(context.Background())

	if s.Loading() {
		t.Error("load should clear the loading flag")
	}
	if !s.Enabled() {
		t.Error("empty storage keeps the default")
	}
}

func TestTranscriptionTogglePersists(t *testing.T) {
	kv := NewMemoryKV()

	first := newTestTranscription(kv)
	first.Load(context.Background())
	if got := first.Toggle(); got {
		t.Fatal("toggle from the default should report disabled")
	}

	second := newTestTranscription(kv)
	second.Load(context.Background())
	if second.Enabled() {
		t.Error("disabled preference should survive a reload")
	}

	if got := second.Toggle(); !got {
		t.Error("second toggle should report enabled again")
	}
}

func TestTranscriptionLoadToleratesMalformedValue(t *testing.T) {
	kv := NewMemoryKV()
	_ = kv.Set(context.Background(), keyTranscription, "not-json")

	s := newTestTranscription(kv)
	s.Load(context.Background())

	if !s.Enabled() {
		t.Error("malformed value should keep the default")
	}
	if s.Loading() {
		t.Error("load should clear the loading flag even on failure")
	}
}
