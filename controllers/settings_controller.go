package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/snowcodeer/echo-backend/stores"
	"github.com/snowcodeer/echo-backend/utils"
)

// SettingsController exposes the transcription preference.
type SettingsController struct {
	transcription *stores.TranscriptionStore
}

// NewSettingsController creates a new SettingsController instance.
func NewSettingsController(transcription *stores.TranscriptionStore) *SettingsController {
	return &SettingsController{transcription: transcription}
}

// GetTranscription returns the preference and whether it is still loading.
func (s *SettingsController) GetTranscription(ctx *gin.Context) {
	utils.Success(ctx, gin.H{
		"enabled": s.transcription.Enabled(),
		"loading": s.transcription.Loading(),
	})
}

// ToggleTranscription flips the preference. While the initial load is pending
// the toggle is refused so a flip cannot race the load.
func (s *SettingsController) ToggleTranscription(ctx *gin.Context) {
	if s.transcription.Loading() {
		utils.Error(ctx, http.StatusConflict, 40920, "settings still loading")
		return
	}
	utils.Success(ctx, gin.H{"enabled": s.transcription.Toggle()})
}
