package stores

import (
	"testing"

	"github.com/snowcodeer/echo-backend/models"
)

func snapshotFor(id string) models.LikedPost {
	return models.LikedPost{
		ID:          id,
		Username:    "@alex_voice",
		DisplayName: "Alex Chen",
		Avatar:      "https://example.com/alex.jpg",
		Content:     "coffee shop philosophy",
		Likes:       142,
		Replies:     25,
		Timestamp:   "2h",
		Tags:        []string{"deepthoughts", "philosophy"},
	}
}

func TestToggleLikeAddsRecord(t *testing.T) {
	s := NewLikeStore()

	s.ToggleLike("post_1", snapshotFor("post_1"))

	if !s.IsLiked("post_1") {
		t.Fatal("post_1 should be liked")
	}
	records := s.LikedPosts()
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].Username != "@alex_voice" || records[0].DisplayName != "Alex Chen" {
		t.Errorf("record lost the original author identity: %+v", records[0])
	}
	if records[0].Likes != 142 {
		t.Errorf("like count at toggle time = %d, want 142", records[0].Likes)
	}
}

func TestToggleLikeTwiceRestoresOriginalState(t *testing.T) {
	s := NewLikeStore()

	s.ToggleLike("post_1", snapshotFor("post_1"))
	s.ToggleLike("post_1", snapshotFor("post_1"))

	if s.IsLiked("post_1") {
		t.Error("post_1 should not be liked after a double toggle")
	}
	if got := len(s.LikedPosts()); got != 0 {
		t.Errorf("expected no records after a double toggle, got %d", got)
	}
	if s.Count() != 0 {
		t.Errorf("count = %d, want 0", s.Count())
	}
}

func TestToggleLikeForcesSnapshotID(t *testing.T) {
	s := NewLikeStore()

	snap := snapshotFor("wrong_id")
	s.ToggleLike("post_2", snap)

	records := s.LikedPosts()
	if len(records) != 1 || records[0].ID != "post_2" {
		t.Fatalf("record id should match the toggled post, got %+v", records)
	}
}

func TestUnlikeRemovesOnlyThatRecord(t *testing.T) {
	s := NewLikeStore()

	s.ToggleLike("post_1", snapshotFor("post_1"))
	s.ToggleLike("post_2", snapshotFor("post_2"))
	s.ToggleLike("post_1", snapshotFor("post_1"))

	if s.IsLiked("post_1") {
		t.Error("post_1 should be unliked")
	}
	if !s.IsLiked("post_2") {
		t.Error("post_2 should stay liked")
	}
	records := s.LikedPosts()
	if len(records) != 1 || records[0].ID != "post_2" {
		t.Fatalf("expected only post_2's record, got %+v", records)
	}
}

func TestIsLikedHasNoSideEffects(t *testing.T) {
	s := NewLikeStore()

	if s.IsLiked("missing") {
		t.Error("unknown post should not be liked")
	}
	if s.Count() != 0 || len(s.LikedPosts()) != 0 {
		t.Error("lookup must not mutate the store")
	}
}
