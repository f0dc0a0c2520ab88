package controllers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/snowcodeer/echo-backend/models"
	"github.com/snowcodeer/echo-backend/stores"
	"github.com/snowcodeer/echo-backend/tags"
	"github.com/snowcodeer/echo-backend/utils"
)

// EchoController manages echoes composed by the device user.
type EchoController struct {
	db            *gorm.DB
	tagger        *tags.Generator
	transcription *stores.TranscriptionStore
	userID        string
}

// NewEchoController creates a new EchoController instance.
func NewEchoController(db *gorm.DB, tagger *tags.Generator, transcription *stores.TranscriptionStore, userID string) *EchoController {
	return &EchoController{db: db, tagger: tagger, transcription: transcription, userID: userID}
}

var validVoiceStyles = []string{
	"Original", "Chill Narrator", "Energetic Host", "Wise Storyteller",
	"Friendly Guide", "Dramatic Reader", "Whisper",
}

const maxEchoDuration = 60 // seconds, exclusive

// CreateEcho composes a new echo: content is sanitized, the voice style must
// be a known preset, duration stays under a minute, and three discovery tags
// are generated from the text.
func (e *EchoController) CreateEcho(ctx *gin.Context) {
	var req struct {
		Content    string `json:"content" binding:"required"`
		AudioURL   string `json:"audio_url"`
		Duration   int    `json:"duration" binding:"required"`
		VoiceStyle string `json:"voice_style"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, "invalid request payload")
		return
	}

	content := utils.Sanitize(strings.TrimSpace(req.Content))
	if content == "" {
		utils.Error(ctx, http.StatusBadRequest, 40021, "content cannot be empty")
		return
	}

	if req.Duration <= 0 || req.Duration >= maxEchoDuration {
		utils.Error(ctx, http.StatusBadRequest, 40022, "duration must be under 60 seconds")
		return
	}

	voiceStyle := req.VoiceStyle
	if voiceStyle == "" {
		voiceStyle = "Original"
	}
	isValid := false
	for _, s := range validVoiceStyles {
		if voiceStyle == s {
			isValid = true
			break
		}
	}
	if !isValid {
		utils.Error(ctx, http.StatusBadRequest, 40023, "invalid voice style")
		return
	}

	generated := e.tagger.Generate(ctx.Request.Context(), content)
	if len(generated) > 3 {
		generated = generated[:3]
	}
	tagsJSON, _ := json.Marshal(generated)

	echo := models.Echo{
		ID:         uuid.NewString(),
		UserID:     e.userID,
		Content:    content,
		AudioURL:   req.AudioURL,
		Duration:   req.Duration,
		VoiceStyle: voiceStyle,
		Tags:       string(tagsJSON),
	}

	if err := e.db.Create(&echo).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50020, "failed to create echo")
		return
	}

	// Keep the profile's echo counter in step; failure only skews the count
	_ = e.db.Model(&models.UserProfile{}).
		Where("id = ?", e.userID).
		UpdateColumn("echo_count", gorm.Expr("echo_count + 1")).Error

	utils.Success(ctx, gin.H{
		"echo":                   echo,
		"tags":                   generated,
		"transcriptions_enabled": e.transcription.Enabled(),
	})
}

// ListMyEchoes returns the device user's echoes, newest first.
func (e *EchoController) ListMyEchoes(ctx *gin.Context) {
	var echoes []models.Echo
	if err := e.db.Where("user_id = ?", e.userID).Order("created_at DESC").Find(&echoes).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50021, "failed to list echoes")
		return
	}
	utils.Success(ctx, gin.H{"items": echoes, "count": len(echoes)})
}

// GenerateTags produces tags for arbitrary text without composing an echo.
// The client uses it for live preview while recording.
func (e *EchoController) GenerateTags(ctx *gin.Context) {
	var req struct {
		Text string `json:"text" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, "text is required")
		return
	}
	utils.Success(ctx, gin.H{"tags": e.tagger.Generate(ctx.Request.Context(), req.Text)})
}
