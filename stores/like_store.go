package stores

import (
	"sync"

	"github.com/snowcodeer/echo-backend/models"
)

// LikeStore tracks which posts the device user has liked, together with a
// denormalized snapshot of each liked post for display. Unlike the other
// stores it is deliberately process-lifetime only.
type LikeStore struct {
	mu        sync.Mutex
	likedIDs  map[string]struct{}
	likedData []models.LikedPost
}

// NewLikeStore creates an empty like store.
func NewLikeStore() *LikeStore {
	return &LikeStore{likedIDs: make(map[string]struct{})}
}

// ToggleLike likes or unlikes a post. On like, the snapshot is recorded as an
// owned copy; identity fields stay the original author's, and the like count
// is whatever the caller observed at toggle time. On unlike, both the id and
// its record are removed.
func (s *LikeStore) ToggleLike(postID string, snapshot models.LikedPost) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, liked := s.likedIDs[postID]; liked {
		delete(s.likedIDs, postID)
		for i, rec := range s.likedData {
			if rec.ID == postID {
				s.likedData = append(s.likedData[:i], s.likedData[i+1:]...)
				break
			}
		}
		return
	}

	snapshot.ID = postID
	s.likedIDs[postID] = struct{}{}
	s.likedData = append(s.likedData, snapshot)
}

// IsLiked reports whether the post is currently liked.
func (s *LikeStore) IsLiked(postID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.likedIDs[postID]
	return ok
}

// LikedPosts returns the liked-post records in like order.
func (s *LikeStore) LikedPosts() []models.LikedPost {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.LikedPost, len(s.likedData))
	copy(out, s.likedData)
	return out
}

// Count returns how many posts are liked.
func (s *LikeStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.likedIDs)
}
