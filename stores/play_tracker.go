package stores

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/snowcodeer/echo-backend/models"
)

const (
	keyPlayCounts  = "echo:play_counts"
	keyPlayedPosts = "echo:played_posts"
	keyPlayHistory = "echo:play_history"

	// Seconds credited per counted play. The listen threshold is enforced by
	// the caller; the tracker only records the flat credit.
	playCreditSeconds = 5
)

// PlayTracker records which single post is playing, per-post play counts, and
// an append-only session history. A play counts once per post ever, no matter
// how often it is replayed.
type PlayTracker struct {
	kv     KV
	log    *zap.SugaredLogger
	userID string

	mu               sync.Mutex
	currentlyPlaying string
	playedPosts      map[string]struct{}
	playCounts       map[string]int
	playHistory      []models.PlaySession
}

// NewPlayTracker creates a tracker for the given device user.
func NewPlayTracker(kv KV, userID string, log *zap.SugaredLogger) *PlayTracker {
	return &PlayTracker{
		kv:          kv,
		log:         log,
		userID:      userID,
		playedPosts: make(map[string]struct{}),
		playCounts:  make(map[string]int),
	}
}

// Load hydrates the persisted collections. Queries return empty defaults until
// it completes; a failed or partial load is equivalent to a fresh install.
func (t *PlayTracker) Load(ctx context.Context) {
	var counts map[string]int
	var played []string
	var history []models.PlaySession

	if raw, ok, err := t.kv.Get(ctx, keyPlayCounts); err != nil {
		t.log.Warnf("load play counts failed: %v", err)
	} else if ok {
		if err := json.Unmarshal([]byte(raw), &counts); err != nil {
			t.log.Warnf("malformed play counts, starting empty: %v", err)
		}
	}
	if raw, ok, err := t.kv.Get(ctx, keyPlayedPosts); err != nil {
		t.log.Warnf("load played posts failed: %v", err)
	} else if ok {
		if err := json.Unmarshal([]byte(raw), &played); err != nil {
			t.log.Warnf("malformed played posts, starting empty: %v", err)
		}
	}
	if raw, ok, err := t.kv.Get(ctx, keyPlayHistory); err != nil {
		t.log.Warnf("load play history failed: %v", err)
	} else if ok {
		if err := json.Unmarshal([]byte(raw), &history); err != nil {
			t.log.Warnf("malformed play history, starting empty: %v", err)
		}
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if counts != nil {
		t.playCounts = counts
	}
	for _, id := range played {
		t.playedPosts[id] = struct{}{}
	}
	if history != nil {
		t.playHistory = history
	}
}

// SetCurrentlyPlaying records the single active playback target. Pass an
// empty id to clear it.
func (t *PlayTracker) SetCurrentlyPlaying(postID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.currentlyPlaying = postID
}

// CurrentlyPlaying returns the active playback target, or empty.
func (t *PlayTracker) CurrentlyPlaying() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.currentlyPlaying
}

// IncrementPlayCount counts a play for the post. Effective only the first
// time per post: later calls are no-ops. The counter bump, played-set entry
// and history session persist as sequential writes with no rollback.
func (t *PlayTracker) IncrementPlayCount(postID string) {
	t.mu.Lock()
	if _, played := t.playedPosts[postID]; played {
		t.mu.Unlock()
		return
	}

	t.playCounts[postID]++
	t.playedPosts[postID] = struct{}{}
	t.playHistory = append(t.playHistory, models.PlaySession{
		PostID:    postID,
		UserID:    t.userID,
		Timestamp: time.Now(),
		Duration:  playCreditSeconds,
	})

	counts := make(map[string]int, len(t.playCounts))
	for k, v := range t.playCounts {
		counts[k] = v
	}
	played := make([]string, 0, len(t.playedPosts))
	for id := range t.playedPosts {
		played = append(played, id)
	}
	history := make([]models.PlaySession, len(t.playHistory))
	copy(history, t.playHistory)
	t.mu.Unlock()

	t.persist(keyPlayCounts, counts)
	t.persist(keyPlayedPosts, played)
	t.persist(keyPlayHistory, history)
}

// GetPlayCount returns the play count for a post, default 0.
func (t *PlayTracker) GetPlayCount(postID string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.playCounts[postID]
}

// HasPlayed reports whether the post has ever been counted.
func (t *PlayTracker) HasPlayed(postID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.playedPosts[postID]
	return ok
}

// GetTotalPlayTime sums the credited seconds across all history entries.
func (t *PlayTracker) GetTotalPlayTime() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	total := 0
	for _, s := range t.playHistory {
		total += s.Duration
	}
	return total
}

// GetUniqueListeners counts distinct user ids in the history for a post.
func (t *PlayTracker) GetUniqueListeners(postID string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	users := make(map[string]struct{})
	for _, s := range t.playHistory {
		if s.PostID == postID {
			users[s.UserID] = struct{}{}
		}
	}
	return len(users)
}

// History returns a copy of the session log.
func (t *PlayTracker) History() []models.PlaySession {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]models.PlaySession, len(t.playHistory))
	copy(out, t.playHistory)
	return out
}

func (t *PlayTracker) persist(key string, v interface{}) {
	b, err := json.Marshal(v)
	if err != nil {
		t.log.Warnf("marshal %s failed: %v", key, err)
		return
	}
	if err := t.kv.Set(context.Background(), key, string(b)); err != nil {
		// In-memory state stays authoritative for the rest of the session
		t.log.Warnf("persist %s failed: %v", key, err)
	}
}
