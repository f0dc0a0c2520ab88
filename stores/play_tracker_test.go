package stores

import (
	"context"
	"testing"

	"go.uber.org/zap"
)

func newTestTracker(kv KV) *PlayTracker {
	return NewPlayTracker(kv, "user_123", zap.NewNop().Sugar())
}

func TestIncrementPlayCountAtMostOnce(t *testing.T) {
	tr := newTestTracker(NewMemoryKV())

	for i := 0; i < 5; i++ {
		tr.IncrementPlayCount("post_1")
	}

	if got := tr.GetPlayCount("post_1"); got != 1 {
		t.Errorf("play count = %d, want 1", got)
	}
	if got := len(tr.History()); got != 1 {
		t.Errorf("history length = %d, want 1", got)
	}
	if !tr.HasPlayed("post_1") {
		t.Error("post_1 should be marked played")
	}
}

func TestQueriesDefaultToZero(t *testing.T) {
	tr := newTestTracker(NewMemoryKV())

	if tr.GetPlayCount("missing") != 0 {
		t.Error("unknown post should have play count 0")
	}
	if tr.HasPlayed("missing") {
		t.Error("unknown post should not be played")
	}
	if tr.GetTotalPlayTime() != 0 {
		t.Error("fresh tracker should have no play time")
	}
	if tr.GetUniqueListeners("missing") != 0 {
		t.Error("unknown post should have no listeners")
	}
}

func TestTotalPlayTimeIsPlayCountProxy(t *testing.T) {
	tr := newTestTracker(NewMemoryKV())

	tr.IncrementPlayCount("post_1")
	tr.IncrementPlayCount("post_2")
	tr.IncrementPlayCount("post_3")

	if got := tr.GetTotalPlayTime(); got != 3*playCreditSeconds {
		t.Errorf("total play time = %d, want %d", got, 3*playCreditSeconds)
	}
}

func TestUniqueListenersSingleUser(t *testing.T) {
	tr := newTestTracker(NewMemoryKV())

	tr.IncrementPlayCount("post_1")
	tr.IncrementPlayCount("post_1")

	if got := tr.GetUniqueListeners("post_1"); got != 1 {
		t.Errorf("unique listeners = %d, want 1", got)
	}
	if got := tr.GetUniqueListeners("post_2"); got != 0 {
		t.Errorf("unique listeners for unplayed post = %d, want 0", got)
	}
}

func TestCurrentlyPlayingSingleTarget(t *testing.T) {
	tr := newTestTracker(NewMemoryKV())

	tr.SetCurrentlyPlaying("post_1")
	if tr.CurrentlyPlaying() != "post_1" {
		t.Error("post_1 should be the playback target")
	}

	tr.SetCurrentlyPlaying("post_2")
	if tr.CurrentlyPlaying() != "post_2" {
		t.Error("the playback target should move to post_2")
	}

	tr.SetCurrentlyPlaying("")
	if tr.CurrentlyPlaying() != "" {
		t.Error("playback target should clear")
	}
}

func TestLoadHydratesPersistedState(t *testing.T) {
	kv := NewMemoryKV()

	first := newTestTracker(kv)
	first.IncrementPlayCount("post_1")
	first.IncrementPlayCount("post_2")

	second := newTestTracker(kv)
	second.Load(context.Background())

	if got := second.GetPlayCount("post_1"); got != 1 {
		t.Errorf("hydrated play count = %d, want 1", got)
	}
	if !second.HasPlayed("post_2") {
		t.Error("post_2 should be played after hydration")
	}
	if got := len(second.History()); got != 2 {
		t.Errorf("hydrated history length = %d, want 2", got)
	}

	// Played-set survives, so a replay still does not count
	second.IncrementPlayCount("post_1")
	if got := second.GetPlayCount("post_1"); got != 1 {
		t.Errorf("play count after replay = %d, want 1", got)
	}
}

func TestLoadToleratesMalformedData(t *testing.T) {
	kv := NewMemoryKV()
	_ = kv.Set(context.Background(), keyPlayCounts, "{not json")
	_ = kv.Set(context.Background(), keyPlayHistory, "[broken")

	tr := newTestTracker(kv)
	tr.Load(context.Background())

	if tr.GetPlayCount("post_1") != 0 || len(tr.History()) != 0 {
		t.Error("malformed data should fall back to a fresh-install state")
	}
}
