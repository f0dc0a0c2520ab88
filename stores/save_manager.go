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
	keySavedPosts      = "echo:saved_posts"
	keyCommuteQueue    = "echo:commute_queue"
	keyDownloadedPosts = "echo:downloaded_posts"
)

// SaveManager owns two independent collections: permanently saved posts and
// the commute queue of downloads for offline listening. A post id may sit in
// one, both, or neither. Save status and download status are orthogonal:
// unsaving never touches the queue.
type SaveManager struct {
	kv            KV
	log           *zap.SugaredLogger
	downloadDelay time.Duration

	mu           sync.Mutex
	savedPosts   []models.SavedPost
	commuteQueue []models.SavedPost
	downloading  map[string]*time.Timer
	downloaded   map[string]struct{}
}

// NewSaveManager creates a manager whose simulated transfers take downloadDelay.
func NewSaveManager(kv KV, downloadDelay time.Duration, log *zap.SugaredLogger) *SaveManager {
	return &SaveManager{
		kv:            kv,
		log:           log,
		downloadDelay: downloadDelay,
		downloading:   make(map[string]*time.Timer),
		downloaded:    make(map[string]struct{}),
	}
}

// Load hydrates saved posts, the commute queue and the downloaded-set.
// Downloads in flight are volatile and never persisted.
func (m *SaveManager) Load(ctx context.Context) {
	var saved, queue []models.SavedPost
	var downloaded []string

	if raw, ok, err := m.kv.Get(ctx, keySavedPosts); err != nil {
		m.log.Warnf("load saved posts failed: %v", err)
	} else if ok {
		if err := json.Unmarshal([]byte(raw), &saved); err != nil {
			m.log.Warnf("malformed saved posts, starting empty: %v", err)
		}
	}
	if raw, ok, err := m.kv.Get(ctx, keyCommuteQueue); err != nil {
		m.log.Warnf("load commute queue failed: %v", err)
	} else if ok {
		if err := json.Unmarshal([]byte(raw), &queue); err != nil {
			m.log.Warnf("malformed commute queue, starting empty: %v", err)
		}
	}
	if raw, ok, err := m.kv.Get(ctx, keyDownloadedPosts); err != nil {
		m.log.Warnf("load downloaded posts failed: %v", err)
	} else if ok {
		if err := json.Unmarshal([]byte(raw), &downloaded); err != nil {
			m.log.Warnf("malformed downloaded posts, starting empty: %v", err)
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if saved != nil {
		m.savedPosts = saved
	}
	if queue != nil {
		m.commuteQueue = queue
	}
	for _, id := range downloaded {
		m.downloaded[id] = struct{}{}
	}
}

// SavePost upserts the post into saved posts when isPermanent is true,
// otherwise into the commute queue. An existing entry for the same id in the
// target collection is replaced, refreshing SavedAt.
func (m *SaveManager) SavePost(post models.Post, isPermanent bool) {
	entry := models.SavedPost{
		Post:               post,
		IsPermanentlySaved: isPermanent,
		SavedAt:            time.Now(),
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if isPermanent {
		m.savedPosts = append(removeByID(m.savedPosts, post.ID), entry)
		m.persistLocked(keySavedPosts, m.savedPosts)
	} else {
		m.commuteQueue = append(removeByID(m.commuteQueue, post.ID), entry)
		m.persistLocked(keyCommuteQueue, m.commuteQueue)
	}
}

// UnsavePost removes the post from saved posts only. The commute queue is
// never touched here: it belongs to download/remove-download actions alone.
func (m *SaveManager) UnsavePost(postID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.savedPosts = removeByID(m.savedPosts, postID)
	m.persistLocked(keySavedPosts, m.savedPosts)
}

// MoveToSaved transfers a queue entry into saved posts, marking it permanent.
// No-op when the id is not queued.
func (m *SaveManager) MoveToSaved(postID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, found := findByID(m.commuteQueue, postID)
	if !found {
		return
	}
	entry.IsPermanentlySaved = true

	m.commuteQueue = removeByID(m.commuteQueue, postID)
	m.savedPosts = append(m.savedPosts, entry)
	m.persistLocked(keyCommuteQueue, m.commuteQueue)
	m.persistLocked(keySavedPosts, m.savedPosts)
}

// MoveToQueue transfers a saved entry back into the commute queue. Only
// entries not marked permanently saved are movable through this path; a
// permanent save stays put (policy guard, not an error).
func (m *SaveManager) MoveToQueue(postID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, found := findByID(m.savedPosts, postID)
	if !found || entry.IsPermanentlySaved {
		return
	}
	entry.IsPermanentlySaved = false

	m.savedPosts = removeByID(m.savedPosts, postID)
	m.commuteQueue = append(m.commuteQueue, entry)
	m.persistLocked(keySavedPosts, m.savedPosts)
	m.persistLocked(keyCommuteQueue, m.commuteQueue)
}

// DownloadPost starts a simulated transfer for the post. Already downloading
// or downloaded ids are ignored. When the transfer completes the id moves to
// the downloaded-set and the post is enqueued for the commute. The pending
// transfer is cancellable: RemoveDownload and ClearQueue stop it, so a
// removed download cannot resurrect after its delay elapses.
func (m *SaveManager) DownloadPost(post models.Post) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, busy := m.downloading[post.ID]; busy {
		return
	}
	if _, done := m.downloaded[post.ID]; done {
		return
	}

	m.downloading[post.ID] = time.AfterFunc(m.downloadDelay, func() {
		m.completeDownload(post)
	})
	m.log.Debugf("download started post=%s", post.ID)
}

func (m *SaveManager) completeDownload(post models.Post) {
	m.mu.Lock()
	if _, pending := m.downloading[post.ID]; !pending {
		// Cancelled while the transfer was in flight
		m.mu.Unlock()
		return
	}
	delete(m.downloading, post.ID)
	m.downloaded[post.ID] = struct{}{}
	m.persistLocked(keyDownloadedPosts, m.downloadedIDsLocked())
	m.mu.Unlock()

	m.SavePost(post, false)
	m.log.Debugf("download completed post=%s", post.ID)
}

// RemoveDownload drops the id from the downloaded-set and the commute queue,
// cancelling any transfer still in flight. Saved posts are untouched.
func (m *SaveManager) RemoveDownload(postID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if timer, pending := m.downloading[postID]; pending {
		timer.Stop()
		delete(m.downloading, postID)
	}
	delete(m.downloaded, postID)
	m.commuteQueue = removeByID(m.commuteQueue, postID)
	m.persistLocked(keyDownloadedPosts, m.downloadedIDsLocked())
	m.persistLocked(keyCommuteQueue, m.commuteQueue)
}

// ClearQueue empties the commute queue and removes every queued id from the
// downloaded-set. Ids only present in saved posts are unaffected.
func (m *SaveManager) ClearQueue() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, entry := range m.commuteQueue {
		delete(m.downloaded, entry.ID)
	}
	m.commuteQueue = m.commuteQueue[:0]
	m.persistLocked(keyCommuteQueue, m.commuteQueue)
	m.persistLocked(keyDownloadedPosts, m.downloadedIDsLocked())
}

// IsSaved reports whether the post sits in either collection. This is the
// coarse "bookmarked somewhere" check; per-collection checks are below.
func (m *SaveManager) IsSaved(postID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := findByID(m.savedPosts, postID); ok {
		return true
	}
	_, ok := findByID(m.commuteQueue, postID)
	return ok
}

// IsDownloaded reports whether the transfer has completed.
func (m *SaveManager) IsDownloaded(postID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.downloaded[postID]
	return ok
}

// IsDownloading reports whether a transfer is in flight.
func (m *SaveManager) IsDownloading(postID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.downloading[postID]
	return ok
}

// SavedPosts returns a copy of the permanent saves.
func (m *SaveManager) SavedPosts() []models.SavedPost {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.SavedPost, len(m.savedPosts))
	copy(out, m.savedPosts)
	return out
}

// CommuteQueue returns a copy of the download queue.
func (m *SaveManager) CommuteQueue() []models.SavedPost {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.SavedPost, len(m.commuteQueue))
	copy(out, m.commuteQueue)
	return out
}

func (m *SaveManager) downloadedIDsLocked() []string {
	ids := make([]string, 0, len(m.downloaded))
	for id := range m.downloaded {
		ids = append(ids, id)
	}
	return ids
}

func (m *SaveManager) persistLocked(key string, v interface{}) {
	b, err := json.Marshal(v)
	if err != nil {
		m.log.Warnf("marshal %s failed: %v", key, err)
		return
	}
	if err := m.kv.Set(context.Background(), key, string(b)); err != nil {
		// In-memory state stays authoritative for the rest of the session
		m.log.Warnf("persist %s failed: %v", key, err)
	}
}

func removeByID(list []models.SavedPost, id string) []models.SavedPost {
	out := list[:0]
	for _, p := range list {
		if p.ID != id {
			out = append(out, p)
		}
	}
	return out
}

func findByID(list []models.SavedPost, id string) (models.SavedPost, bool) {
	for _, p := range list {
		if p.ID == id {
			return p, true
		}
	}
	return models.SavedPost{}, false
}
