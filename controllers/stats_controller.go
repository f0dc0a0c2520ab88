package controllers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/snowcodeer/echo-backend/catalog"
	"github.com/snowcodeer/echo-backend/models"
	"github.com/snowcodeer/echo-backend/stores"
	"github.com/snowcodeer/echo-backend/utils"
)

// StatsController provides listening and library statistics.
type StatsController struct {
	db      *gorm.DB
	catalog *catalog.Catalog
	likes   *stores.LikeStore
	saves   *stores.SaveManager
	tracker *stores.PlayTracker
}

// NewStatsController creates a new StatsController instance.
func NewStatsController(db *gorm.DB, cat *catalog.Catalog, likes *stores.LikeStore, saves *stores.SaveManager, tracker *stores.PlayTracker) *StatsController {
	return &StatsController{db: db, catalog: cat, likes: likes, saves: saves, tracker: tracker}
}

// GetStats returns aggregate statistics for the device user.
func (s *StatsController) GetStats(ctx *gin.Context) {
	var echoCount int64
	if err := s.db.Model(&models.Echo{}).Count(&echoCount).Error; err != nil {
		// Fallback to 0 instead of failing the whole endpoint
		echoCount = 0
	}

	history := s.tracker.History()

	utils.Success(ctx, gin.H{
		"catalog_post_count": s.catalog.Count(),
		"echo_count":         echoCount,
		"liked_count":        s.likes.Count(),
		"saved_count":        len(s.saves.SavedPosts()),
		"queue_count":        len(s.saves.CommuteQueue()),
		"total_plays":        len(history),
		"total_play_time":    s.tracker.GetTotalPlayTime(),
	})
}

// GetPostStats returns engagement and listening numbers for a given post id.
func (s *StatsController) GetPostStats(ctx *gin.Context) {
	id := ctx.Param("id")
	utils.Success(ctx, gin.H{
		"play_count":       s.tracker.GetPlayCount(id),
		"has_played":       s.tracker.HasPlayed(id),
		"unique_listeners": s.tracker.GetUniqueListeners(id),
		"liked":            s.likes.IsLiked(id),
		"saved":            s.saves.IsSaved(id),
		"downloaded":       s.saves.IsDownloaded(id),
	})
}
