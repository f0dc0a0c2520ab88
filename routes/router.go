package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/snowcodeer/echo-backend/catalog"
	"github.com/snowcodeer/echo-backend/config"
	"github.com/snowcodeer/echo-backend/controllers"
	"github.com/snowcodeer/echo-backend/middleware"
	"github.com/snowcodeer/echo-backend/stores"
	"github.com/snowcodeer/echo-backend/tags"
	"github.com/snowcodeer/echo-backend/utils"
)

// Stores bundles the state containers constructed at application start.
// They are passed in explicitly so the router never reaches for globals.
type Stores struct {
	Likes         *stores.LikeStore
	Saves         *stores.SaveManager
	Tracker       *stores.PlayTracker
	Transcription *stores.TranscriptionStore
}

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(db *gorm.DB, cat *catalog.Catalog, st Stores, tagger *tags.Generator) *gin.Engine {
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	// Replace default console logger with file-based zap logger
	gl, err := utils.NewRollingFileLogger(cfg.GinPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
	if err == nil {
		r.Use(utils.Ginzap(gl, time.RFC3339, true))
		r.Use(utils.RecoveryWithZap(gl, false))
	} else {
		// fallback to default recovery if logger failed to init
		r.Use(gin.Recovery())
	}

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok"})
	})

	feedController := controllers.NewFeedController(cat)
	engagementController := controllers.NewEngagementController(cat, st.Likes, st.Saves)
	playerController := controllers.NewPlayerController(cat, st.Tracker, cfg.PlayCountMinSeconds)
	echoController := controllers.NewEchoController(db, tagger, st.Transcription, cfg.DeviceUserID)
	profileController := controllers.NewProfileController(db, cfg.DeviceUserID)
	settingsController := controllers.NewSettingsController(st.Transcription)
	statsController := controllers.NewStatsController(db, cat, st.Likes, st.Saves, st.Tracker)

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimitMiddleware())

	feed := api.Group("/feed")
	feed.GET("/for-you", feedController.ForYou)
	feed.GET("/friends", feedController.Friends)
	feed.GET("/featured", feedController.Featured)
	feed.GET("/trending", feedController.Trending)

	api.GET("/posts/search", feedController.Search)
	api.GET("/posts/tag/:tag", feedController.ByTag)
	api.GET("/posts/:id", feedController.GetPost)
	api.GET("/posts/:id/engagement", engagementController.Status)
	api.GET("/posts/:id/plays", playerController.PostPlays)
	api.GET("/posts/:id/stats", statsController.GetPostStats)

	api.POST("/posts/:id/like", engagementController.ToggleLike)
	api.POST("/posts/:id/save", engagementController.SavePost)
	api.DELETE("/posts/:id/save", engagementController.UnsavePost)
	api.POST("/posts/:id/move-to-saved", engagementController.MoveToSaved)
	api.POST("/posts/:id/move-to-queue", engagementController.MoveToQueue)
	api.POST("/posts/:id/download", engagementController.DownloadPost)
	api.DELETE("/posts/:id/download", engagementController.RemoveDownload)

	me := api.Group("/me")
	me.GET("/likes", engagementController.ListLiked)
	me.GET("/saved", engagementController.ListSaved)
	me.GET("/queue", engagementController.ListQueue)
	me.DELETE("/queue", engagementController.ClearQueue)

	player := api.Group("/player")
	player.POST("/play", playerController.Play)
	player.POST("/stop", playerController.Stop)
	player.POST("/progress", playerController.Progress)
	player.GET("/now", playerController.Now)

	api.POST("/echoes", echoController.CreateEcho)
	api.GET("/echoes", echoController.ListMyEchoes)
	api.POST("/generate-tags", echoController.GenerateTags)

	api.GET("/profile", profileController.GetProfile)
	api.PATCH("/profile", profileController.UpdateProfile)

	api.GET("/settings/transcription", settingsController.GetTranscription)
	api.POST("/settings/transcription/toggle", settingsController.ToggleTranscription)

	api.GET("/stats", statsController.GetStats)

	if err := profileController.EnsureDefaultProfile(); err != nil {
		utils.Sugar.Warnf("seed default profile failed: %v", err)
	}

	r.NoRoute(func(ctx *gin.Context) {
		utils.Error(ctx, http.StatusNotFound, 40400, "api route not found")
	})

	return r
}
