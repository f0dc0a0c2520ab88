package models

import "time"

// Post is a catalog entry: a published voice post as shown in the feed.
// Catalog posts are read-only; engagement state lives in the stores.
type Post struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name"`
	Avatar      string    `json:"avatar"`
	AudioURL    string    `json:"audio_url"`
	Duration    int       `json:"duration"` // seconds, always under 60
	VoiceStyle  string    `json:"voice_style"`
	Likes       int       `json:"likes"`
	Replies     int       `json:"replies"`
	Timestamp   string    `json:"timestamp"`
	Tags        []string  `json:"tags"` // maximum 3 tags per post
	Content     string    `json:"content"`
	CreatedAt   time.Time `json:"created_at"`
	HasReplies  bool      `json:"has_replies,omitempty"`
	ReplyPosts  []Post    `json:"reply_posts,omitempty"`
}

// SavedPost is an owned copy of a Post held by the save manager. The copy is
// deliberate: a save must survive the original post leaving the catalog.
type SavedPost struct {
	Post
	IsPermanentlySaved bool      `json:"is_permanently_saved"`
	SavedAt            time.Time `json:"saved_at"`
}

// LikedPost is the denormalized snapshot recorded when a post is liked.
// Identity fields always belong to the original author, never the liker.
type LikedPost struct {
	ID          string   `json:"id"`
	Username    string   `json:"username"`
	DisplayName string   `json:"display_name"`
	Avatar      string   `json:"avatar"`
	Content     string   `json:"content"`
	Likes       int      `json:"likes"` // like count as supplied at toggle time
	Replies     int      `json:"replies"`
	Timestamp   string   `json:"timestamp"`
	Tags        []string `json:"tags"`
	VoiceStyle  string   `json:"voice_style,omitempty"`
	Duration    int      `json:"duration,omitempty"`
}
