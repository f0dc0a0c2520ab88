package models

import "time"

// PlaySession is an append-only history entry, written the first time a post
// crosses the counted-play threshold for a user.
type PlaySession struct {
	PostID    string    `json:"post_id"`
	UserID    string    `json:"user_id"`
	Timestamp time.Time `json:"timestamp"`
	Duration  int       `json:"duration"` // seconds credited for the play
}
