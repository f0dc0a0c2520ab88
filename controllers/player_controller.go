package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/snowcodeer/echo-backend/catalog"
	"github.com/snowcodeer/echo-backend/stores"
	"github.com/snowcodeer/echo-backend/utils"
)

// PlayerController drives the playback state machine. The tracker itself only
// records; the listen threshold that turns progress into a counted play is
// enforced here, at the caller.
type PlayerController struct {
	catalog    *catalog.Catalog
	tracker    *stores.PlayTracker
	minSeconds int
}

// NewPlayerController creates a new PlayerController instance.
func NewPlayerController(cat *catalog.Catalog, tracker *stores.PlayTracker, minSeconds int) *PlayerController {
	if minSeconds <= 0 {
		minSeconds = 5
	}
	return &PlayerController{catalog: cat, tracker: tracker, minSeconds: minSeconds}
}

// Play makes the post the single active playback target.
func (p *PlayerController) Play(ctx *gin.Context) {
	var req struct {
		PostID string `json:"post_id" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, "invalid request payload")
		return
	}
	if _, ok := p.catalog.GetPostByID(req.PostID); !ok {
		utils.Error(ctx, http.StatusNotFound, 40410, "post not found")
		return
	}

	p.tracker.SetCurrentlyPlaying(req.PostID)
	utils.Success(ctx, gin.H{"currently_playing": req.PostID})
}

// Stop clears the active playback target.
func (p *PlayerController) Stop(ctx *gin.Context) {
	p.tracker.SetCurrentlyPlaying("")
	utils.Success(ctx, nil)
}

// Now returns the active playback target, if any.
func (p *PlayerController) Now(ctx *gin.Context) {
	utils.Success(ctx, gin.H{"currently_playing": p.tracker.CurrentlyPlaying()})
}

// Progress reports elapsed listen time for the active post. Crossing the
// minimum threshold counts the play; the tracker keeps it at-most-once.
func (p *PlayerController) Progress(ctx *gin.Context) {
	var req struct {
		PostID  string `json:"post_id" binding:"required"`
		Elapsed int    `json:"elapsed_seconds"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, "invalid request payload")
		return
	}
	if p.tracker.CurrentlyPlaying() != req.PostID {
		utils.Error(ctx, http.StatusConflict, 40910, "post is not the active playback target")
		return
	}

	counted := false
	if req.Elapsed >= p.minSeconds {
		p.tracker.IncrementPlayCount(req.PostID)
		counted = true
	}

	utils.Success(ctx, gin.H{
		"counted":    counted,
		"play_count": p.tracker.GetPlayCount(req.PostID),
	})
}

// PostPlays returns play telemetry for one post.
func (p *PlayerController) PostPlays(ctx *gin.Context) {
	postID := ctx.Param("id")
	utils.Success(ctx, gin.H{
		"play_count":       p.tracker.GetPlayCount(postID),
		"has_played":       p.tracker.HasPlayed(postID),
		"unique_listeners": p.tracker.GetUniqueListeners(postID),
	})
}
