package main

import (
	"context"
	"time"

	"github.com/snowcodeer/echo-backend/catalog"
	"github.com/snowcodeer/echo-backend/config"
	"github.com/snowcodeer/echo-backend/models"
	"github.com/snowcodeer/echo-backend/routes"
	"github.com/snowcodeer/echo-backend/stores"
	"github.com/snowcodeer/echo-backend/tags"
	"github.com/snowcodeer/echo-backend/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db := config.InitDatabase(&models.Echo{}, &models.UserProfile{})

	kv := stores.NewRedisKV(utils.GetRedis())

	// Each store is constructed once here and handed down explicitly
	st := routes.Stores{
		Likes:         stores.NewLikeStore(),
		Saves:         stores.NewSaveManager(kv, time.Duration(cfg.DownloadDelayMS)*time.Millisecond, utils.Sugar),
		Tracker:       stores.NewPlayTracker(kv, cfg.DeviceUserID, utils.Sugar),
		Transcription: stores.NewTranscriptionStore(kv, utils.Sugar),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	st.Saves.Load(ctx)
	st.Tracker.Load(ctx)
	st.Transcription.Load(ctx)
	cancel()

	cat := catalog.New()
	tagger := tags.NewGenerator(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, utils.Sugar)

	r := routes.SetupRouter(db, cat, st, tagger)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
