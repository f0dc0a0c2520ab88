package stores

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/snowcodeer/echo-backend/models"
)

const testDownloadDelay = 20 * time.Millisecond

func newTestManager(kv KV) *SaveManager {
	return NewSaveManager(kv, testDownloadDelay, zap.NewNop().Sugar())
}

func testPost(id string) models.Post {
	return models.Post{
		ID:          id,
		Username:    "@alex_voice",
		DisplayName: "Alex Chen",
		Duration:    42,
		VoiceStyle:  "Chill Narrator",
		Likes:       142,
		Content:     "a post for testing",
		Tags:        []string{"deepthoughts"},
		CreatedAt:   time.Now(),
	}
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func TestSavePostUpsertsIntoTargetCollection(t *testing.T) {
	m := newTestManager(NewMemoryKV())

	m.SavePost(testPost("p1"), true)
	m.SavePost(testPost("p2"), false)

	if len(m.SavedPosts()) != 1 || len(m.CommuteQueue()) != 1 {
		t.Fatalf("saved=%d queue=%d, want 1 and 1", len(m.SavedPosts()), len(m.CommuteQueue()))
	}
	if !m.IsSaved("p1") || !m.IsSaved("p2") {
		t.Error("both posts should report as saved somewhere")
	}

	// Saving again replaces the entry and refreshes SavedAt
	before := m.SavedPosts()[0].SavedAt
	time.Sleep(2 * time.Millisecond)
	m.SavePost(testPost("p1"), true)
	saved := m.SavedPosts()
	if len(saved) != 1 {
		t.Fatalf("upsert should leave a single entry, got %d", len(saved))
	}
	if !saved[0].SavedAt.After(before) {
		t.Error("upsert should refresh SavedAt")
	}
}

func TestUnsaveNeverTouchesTheQueue(t *testing.T) {
	m := newTestManager(NewMemoryKV())
	p := testPost("p1")

	m.DownloadPost(p)
	waitFor(t, "download to complete", func() bool { return m.IsDownloaded("p1") })

	m.SavePost(p, true)
	m.UnsavePost("p1")

	if len(m.SavedPosts()) != 0 {
		t.Error("p1 should be gone from saved posts")
	}
	queue := m.CommuteQueue()
	if len(queue) != 1 || queue[0].ID != "p1" {
		t.Fatalf("p1 must remain in the commute queue, got %+v", queue)
	}
	if !m.IsDownloaded("p1") {
		t.Error("p1 must remain downloaded after unsave")
	}
}

func TestDownloadDedup(t *testing.T) {
	m := newTestManager(NewMemoryKV())
	p := testPost("p1")

	m.DownloadPost(p)
	m.DownloadPost(p)

	if m.IsDownloading("p1") && m.IsDownloaded("p1") {
		t.Error("a post can never be downloading and downloaded at once")
	}

	waitFor(t, "download to complete", func() bool { return m.IsDownloaded("p1") })

	if m.IsDownloading("p1") {
		t.Error("completed download should leave the downloading set")
	}
	if got := len(m.CommuteQueue()); got != 1 {
		t.Errorf("queue entries = %d, want exactly 1", got)
	}

	// Downloading again after completion is also a no-op
	m.DownloadPost(p)
	if m.IsDownloading("p1") {
		t.Error("re-download of a downloaded post should be ignored")
	}
}

func TestRemoveDownloadCancelsPendingTransfer(t *testing.T) {
	m := newTestManager(NewMemoryKV())
	p := testPost("p1")

	m.DownloadPost(p)
	if !m.IsDownloading("p1") {
		t.Fatal("transfer should be in flight")
	}
	m.RemoveDownload("p1")

	time.Sleep(3 * testDownloadDelay)

	if m.IsDownloading("p1") || m.IsDownloaded("p1") {
		t.Error("cancelled transfer must not complete")
	}
	if len(m.CommuteQueue()) != 0 {
		t.Error("cancelled transfer must not enqueue the post")
	}
}

func TestRemoveDownloadLeavesSavedPosts(t *testing.T) {
	m := newTestManager(NewMemoryKV())
	p := testPost("p1")

	m.SavePost(p, true)
	m.DownloadPost(p)
	waitFor(t, "download to complete", func() bool { return m.IsDownloaded("p1") })

	m.RemoveDownload("p1")

	if m.IsDownloaded("p1") || len(m.CommuteQueue()) != 0 {
		t.Error("download state should be fully removed")
	}
	if len(m.SavedPosts()) != 1 {
		t.Error("permanent save must survive download removal")
	}
}

func TestClearQueueCascade(t *testing.T) {
	m := newTestManager(NewMemoryKV())

	m.DownloadPost(testPost("p1"))
	m.DownloadPost(testPost("p2"))
	waitFor(t, "downloads to complete", func() bool {
		return m.IsDownloaded("p1") && m.IsDownloaded("p2")
	})
	m.SavePost(testPost("p3"), true)

	m.ClearQueue()

	if len(m.CommuteQueue()) != 0 {
		t.Error("queue should be empty")
	}
	if m.IsDownloaded("p1") || m.IsDownloaded("p2") {
		t.Error("queued ids must leave the downloaded set")
	}
	if !m.IsSaved("p3") {
		t.Error("saved-only posts are unaffected by a queue clear")
	}
}

func TestMoveToSaved(t *testing.T) {
	m := newTestManager(NewMemoryKV())

	m.SavePost(testPost("p1"), false)
	m.MoveToSaved("p1")

	if len(m.CommuteQueue()) != 0 {
		t.Error("p1 should leave the queue")
	}
	saved := m.SavedPosts()
	if len(saved) != 1 || !saved[0].IsPermanentlySaved {
		t.Fatalf("p1 should be permanently saved, got %+v", saved)
	}
}

func TestMoveToQueueGuardsPermanentSaves(t *testing.T) {
	m := newTestManager(NewMemoryKV())

	m.SavePost(testPost("p1"), true)
	m.MoveToQueue("p1")

	if len(m.SavedPosts()) != 1 || len(m.CommuteQueue()) != 0 {
		t.Error("a permanently saved post is not queue-movable")
	}
}

func TestDownloadThenSaveThenUnsaveScenario(t *testing.T) {
	m := newTestManager(NewMemoryKV())
	p1 := testPost("p1")

	m.DownloadPost(p1)
	waitFor(t, "download to complete", func() bool { return m.IsDownloaded("p1") })

	queue := m.CommuteQueue()
	if len(queue) != 1 || queue[0].ID != "p1" {
		t.Fatalf("queue should hold exactly p1, got %+v", queue)
	}

	m.SavePost(p1, true)
	if !m.IsSaved("p1") || len(m.SavedPosts()) != 1 {
		t.Fatal("p1 should be permanently saved")
	}

	m.UnsavePost("p1")
	if len(m.SavedPosts()) != 0 {
		t.Error("p1 should be gone from saved posts")
	}
	queue = m.CommuteQueue()
	if len(queue) != 1 || queue[0].ID != "p1" {
		t.Errorf("p1 must still be in the commute queue, got %+v", queue)
	}
}

func TestLoadHydratesPersistedCollections(t *testing.T) {
	kv := NewMemoryKV()

	first := newTestManager(kv)
	first.SavePost(testPost("p1"), true)
	first.DownloadPost(testPost("p2"))
	waitFor(t, "download to complete", func() bool { return first.IsDownloaded("p2") })

	second := newTestManager(kv)
	second.Load(context.Background())

	if len(second.SavedPosts()) != 1 {
		t.Error("saved posts should hydrate")
	}
	if len(second.CommuteQueue()) != 1 {
		t.Error("commute queue should hydrate")
	}
	if !second.IsDownloaded("p2") {
		t.Error("downloaded set should hydrate")
	}
	if second.IsDownloading("p2") {
		t.Error("in-flight transfers are volatile and must not hydrate")
	}
}

func TestLoadToleratesMalformedCollections(t *testing.T) {
	kv := NewMemoryKV()
	_ = kv.Set(context.Background(), keySavedPosts, "{broken")

	m := newTestManager(kv)
	m.Load(context.Background())

	if len(m.SavedPosts()) != 0 {
		t.Error("malformed data should fall back to a fresh-install state")
	}
}
