package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/snowcodeer/echo-backend/catalog"
	"github.com/snowcodeer/echo-backend/models"
	"github.com/snowcodeer/echo-backend/stores"
	"github.com/snowcodeer/echo-backend/utils"
)

// EngagementController exposes likes, saves and downloads for the device user.
type EngagementController struct {
	catalog *catalog.Catalog
	likes   *stores.LikeStore
	saves   *stores.SaveManager
}

// NewEngagementController creates a new EngagementController instance.
func NewEngagementController(cat *catalog.Catalog, likes *stores.LikeStore, saves *stores.SaveManager) *EngagementController {
	return &EngagementController{catalog: cat, likes: likes, saves: saves}
}

// ToggleLike likes or unlikes a post. The like count recorded in the snapshot
// is the one the client observed; when absent the catalog value is used.
func (e *EngagementController) ToggleLike(ctx *gin.Context) {
	postID := ctx.Param("id")
	post, ok := e.catalog.GetPostByID(postID)
	if !ok {
		utils.Error(ctx, http.StatusNotFound, 40410, "post not found")
		return
	}

	var req struct {
		Likes *int `json:"likes"`
	}
	_ = ctx.ShouldBindJSON(&req)

	likeCount := post.Likes
	if req.Likes != nil {
		likeCount = *req.Likes
	}

	e.likes.ToggleLike(postID, models.LikedPost{
		ID:          post.ID,
		Username:    post.Username,
		DisplayName: post.DisplayName,
		Avatar:      post.Avatar,
		Content:     post.Content,
		Likes:       likeCount,
		Replies:     post.Replies,
		Timestamp:   post.Timestamp,
		Tags:        post.Tags,
		VoiceStyle:  post.VoiceStyle,
		Duration:    post.Duration,
	})

	utils.Success(ctx, gin.H{"liked": e.likes.IsLiked(postID)})
}

// ListLiked returns the liked-post records.
func (e *EngagementController) ListLiked(ctx *gin.Context) {
	items := e.likes.LikedPosts()
	utils.Success(ctx, gin.H{"items": items, "count": len(items)})
}

// SavePost saves a post permanently, or into the commute queue when the
// request marks it temporary.
func (e *EngagementController) SavePost(ctx *gin.Context) {
	postID := ctx.Param("id")
	post, ok := e.catalog.GetPostByID(postID)
	if !ok {
		utils.Error(ctx, http.StatusNotFound, 40410, "post not found")
		return
	}

	req := struct {
		Permanent *bool `json:"permanent"`
	}{}
	_ = ctx.ShouldBindJSON(&req)
	permanent := true
	if req.Permanent != nil {
		permanent = *req.Permanent
	}

	e.saves.SavePost(post, permanent)
	utils.Success(ctx, gin.H{"saved": true, "permanent": permanent})
}

// UnsavePost removes a post from the permanent saves. Downloads are not
// affected; the commute queue has its own removal actions.
func (e *EngagementController) UnsavePost(ctx *gin.Context) {
	e.saves.UnsavePost(ctx.Param("id"))
	utils.Success(ctx, gin.H{"saved": false})
}

// MoveToSaved promotes a queue entry into the permanent saves.
func (e *EngagementController) MoveToSaved(ctx *gin.Context) {
	e.saves.MoveToSaved(ctx.Param("id"))
	utils.Success(ctx, nil)
}

// MoveToQueue demotes a non-permanent saved entry back into the queue.
func (e *EngagementController) MoveToQueue(ctx *gin.Context) {
	e.saves.MoveToQueue(ctx.Param("id"))
	utils.Success(ctx, nil)
}

// DownloadPost starts an offline download for the post.
func (e *EngagementController) DownloadPost(ctx *gin.Context) {
	postID := ctx.Param("id")
	post, ok := e.catalog.GetPostByID(postID)
	if !ok {
		utils.Error(ctx, http.StatusNotFound, 40410, "post not found")
		return
	}

	e.saves.DownloadPost(post)
	utils.Success(ctx, gin.H{
		"downloading": e.saves.IsDownloading(postID),
		"downloaded":  e.saves.IsDownloaded(postID),
	})
}

// RemoveDownload drops a download and its queue entry.
func (e *EngagementController) RemoveDownload(ctx *gin.Context) {
	e.saves.RemoveDownload(ctx.Param("id"))
	utils.Success(ctx, nil)
}

// ClearQueue empties the commute queue.
func (e *EngagementController) ClearQueue(ctx *gin.Context) {
	e.saves.ClearQueue()
	utils.Success(ctx, nil)
}

// ListSaved returns the permanent saves.
func (e *EngagementController) ListSaved(ctx *gin.Context) {
	items := e.saves.SavedPosts()
	utils.Success(ctx, gin.H{"items": items, "count": len(items)})
}

// ListQueue returns the commute queue.
func (e *EngagementController) ListQueue(ctx *gin.Context) {
	items := e.saves.CommuteQueue()
	utils.Success(ctx, gin.H{"items": items, "count": len(items)})
}

// Status reports the engagement flags for one post.
func (e *EngagementController) Status(ctx *gin.Context) {
	postID := ctx.Param("id")
	utils.Success(ctx, gin.H{
		"liked":       e.likes.IsLiked(postID),
		"saved":       e.saves.IsSaved(postID),
		"downloaded":  e.saves.IsDownloaded(postID),
		"downloading": e.saves.IsDownloading(postID),
	})
}
