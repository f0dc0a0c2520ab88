package catalog

import (
	"testing"

	"github.com/snowcodeer/echo-backend/models"
)

func TestGetPostByID(t *testing.T) {
	c := New()

	p, ok := c.GetPostByID("post_3")
	if !ok {
		t.Fatal("post_3 should exist")
	}
	if p.Username != "@mike_audio" {
		t.Errorf("post_3 author = %s", p.Username)
	}

	if _, ok := c.GetPostByID("no_such_post"); ok {
		t.Error("unknown id should not resolve")
	}
}

func TestGetPostByIDFindsReplies(t *testing.T) {
	c := New()

	r, ok := c.GetPostByID("reply_1_2")
	if !ok {
		t.Fatal("reply ids should resolve too")
	}
	if r.Username != "@wisdom_voice" {
		t.Errorf("reply_1_2 author = %s", r.Username)
	}
}

func TestFeedSelections(t *testing.T) {
	c := New()

	forYou := c.GetForYouPosts()
	if len(forYou) != 4 || forYou[0].ID != "post_1" {
		t.Errorf("for-you feed = %v", ids(forYou))
	}

	friends := c.GetFriendsPosts()
	if len(friends) != 2 {
		t.Errorf("friends feed = %d posts, want 2", len(friends))
	}

	featured := c.GetFeaturedPosts()
	if len(featured) != 4 || featured[0].ID != "elon_confession" {
		t.Errorf("featured feed = %v", ids(featured))
	}
}

func TestTrendingIsSortedByLikes(t *testing.T) {
	c := New()

	trending := c.GetTrendingPosts()
	if len(trending) != 10 {
		t.Fatalf("trending = %d posts, want 10", len(trending))
	}
	for i := 1; i < len(trending); i++ {
		if trending[i].Likes > trending[i-1].Likes {
			t.Fatalf("trending not sorted at %d: %d > %d", i, trending[i].Likes, trending[i-1].Likes)
		}
	}
	if trending[0].ID != "elon_confession" {
		t.Errorf("most liked post = %s", trending[0].ID)
	}
}

func TestSearchPosts(t *testing.T) {
	c := New()

	byContent := c.SearchPosts("smart contract")
	if len(byContent) != 1 || byContent[0].ID != "post_6" {
		t.Errorf("content search = %+v", ids(byContent))
	}

	byAuthor := c.SearchPosts("sarah")
	if len(byAuthor) == 0 {
		t.Error("author search should match display names and handles")
	}

	if got := c.SearchPosts("zzzzz"); len(got) != 0 {
		t.Errorf("no-match search returned %v", ids(got))
	}
}

func TestGetPostsByTagIsCaseInsensitive(t *testing.T) {
	c := New()

	lower := c.GetPostsByTag("motivation")
	upper := c.GetPostsByTag("MOTIVATION")
	if len(lower) == 0 || len(lower) != len(upper) {
		t.Errorf("tag lookup should ignore case: %d vs %d", len(lower), len(upper))
	}

	// Exact tag match, not substring
	if got := c.GetPostsByTag("motiv"); len(got) != 0 {
		t.Errorf("partial tag matched %v", ids(got))
	}
}

func TestGetUserPosts(t *testing.T) {
	c := New()

	got := c.GetUserPosts("midnight_thinker")
	if len(got) != 1 || got[0].ID != "post_7" {
		t.Errorf("user posts = %v", ids(got))
	}
}

func TestSeedInvariants(t *testing.T) {
	c := New()

	if c.Count() != 11 {
		t.Errorf("top-level posts = %d, want 11", c.Count())
	}
	for _, p := range c.GetTrendingPosts() {
		if p.Duration <= 0 || p.Duration >= 60 {
			t.Errorf("%s duration %d out of range", p.ID, p.Duration)
		}
		if len(p.Tags) == 0 || len(p.Tags) > 3 {
			t.Errorf("%s has %d tags", p.ID, len(p.Tags))
		}
		if p.AudioURL == "" || p.Avatar == "" {
			t.Errorf("%s missing media fields", p.ID)
		}
	}
}

func ids(posts []models.Post) []string {
	out := make([]string, len(posts))
	for i, p := range posts {
		out[i] = p.ID
	}
	return out
}
