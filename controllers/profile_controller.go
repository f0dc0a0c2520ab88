package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/snowcodeer/echo-backend/models"
	"github.com/snowcodeer/echo-backend/utils"
)

// ProfileController manages the device user's profile.
type ProfileController struct {
	db     *gorm.DB
	userID string
}

// NewProfileController creates a new ProfileController instance.
func NewProfileController(db *gorm.DB, userID string) *ProfileController {
	return &ProfileController{db: db, userID: userID}
}

// EnsureDefaultProfile seeds the demo profile on first run.
func (p *ProfileController) EnsureDefaultProfile() error {
	var existing models.UserProfile
	err := p.db.First(&existing, "id = ?", p.userID).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	profile := models.UserProfile{
		ID:             p.userID,
		Username:       "@EchoHQ",
		DisplayName:    "EchoHQ",
		Email:          "hello@echohq.com",
		Avatar:         "https://images.pexels.com/photos/1181686/pexels-photo-1181686.jpeg?auto=compress&cs=tinysrgb&w=150&h=150&fit=crop",
		Bio:            "Sharing thoughts through the power of voice ✨ Building the future of audio social media.",
		Location:       "London, UK",
		Website:        "https://echohq.com",
		IsVerified:     true,
		FollowerCount:  2400,
		FollowingCount: 892,
		EchoCount:      156,
		AllowDMs:       true,
	}
	return p.db.Create(&profile).Error
}

// GetProfile returns the device user's profile.
func (p *ProfileController) GetProfile(ctx *gin.Context) {
	var profile models.UserProfile
	if err := p.db.First(&profile, "id = ?", p.userID).Error; err != nil {
		utils.Error(ctx, http.StatusNotFound, 40420, "profile not found")
		return
	}
	utils.Success(ctx, gin.H{"profile": profile})
}

// UpdateProfile applies a partial update. Unlike the stores, this surface
// reports its outcome to the caller as an explicit result object.
func (p *ProfileController) UpdateProfile(ctx *gin.Context) {
	var req struct {
		DisplayName *string `json:"display_name"`
		Bio         *string `json:"bio"`
		Avatar      *string `json:"avatar"`
		Location    *string `json:"location"`
		Website     *string `json:"website"`
		IsPrivate   *bool   `json:"is_private"`
		AllowDMs    *bool   `json:"allow_direct_messages"`
		ShowEmail   *bool   `json:"show_email"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Success(ctx, gin.H{"success": false, "error": "invalid request payload"})
		return
	}

	updates := map[string]interface{}{}
	if req.DisplayName != nil {
		updates["display_name"] = utils.Sanitize(*req.DisplayName)
	}
	if req.Bio != nil {
		updates["bio"] = utils.Sanitize(*req.Bio)
	}
	if req.Avatar != nil {
		updates["avatar"] = *req.Avatar
	}
	if req.Location != nil {
		updates["location"] = utils.Sanitize(*req.Location)
	}
	if req.Website != nil {
		updates["website"] = *req.Website
	}
	if req.IsPrivate != nil {
		updates["is_private"] = *req.IsPrivate
	}
	if req.AllowDMs != nil {
		updates["allow_dms"] = *req.AllowDMs
	}
	if req.ShowEmail != nil {
		updates["show_email"] = *req.ShowEmail
	}

	if len(updates) == 0 {
		utils.Success(ctx, gin.H{"success": false, "error": "no fields to update"})
		return
	}

	if err := p.db.Model(&models.UserProfile{}).Where("id = ?", p.userID).Updates(updates).Error; err != nil {
		utils.Success(ctx, gin.H{"success": false, "error": "update failed"})
		return
	}

	utils.Success(ctx, gin.H{"success": true})
}
