package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/snowcodeer/echo-backend/catalog"
	"github.com/snowcodeer/echo-backend/utils"
)

// FeedController serves the browse surfaces over the post catalog.
type FeedController struct {
	catalog *catalog.Catalog
}

// NewFeedController creates a new FeedController instance.
func NewFeedController(cat *catalog.Catalog) *FeedController {
	return &FeedController{catalog: cat}
}

// ForYou returns the personalized feed.
func (f *FeedController) ForYou(ctx *gin.Context) {
	utils.Success(ctx, gin.H{"items": f.catalog.GetForYouPosts()})
}

// Friends returns posts from friends.
func (f *FeedController) Friends(ctx *gin.Context) {
	utils.Success(ctx, gin.H{"items": f.catalog.GetFriendsPosts()})
}

// Featured returns the editorially featured posts.
func (f *FeedController) Featured(ctx *gin.Context) {
	utils.Success(ctx, gin.H{"items": f.catalog.GetFeaturedPosts()})
}

// Trending returns the most liked posts.
func (f *FeedController) Trending(ctx *gin.Context) {
	utils.Success(ctx, gin.H{"items": f.catalog.GetTrendingPosts()})
}

// Search matches posts against a free-text query.
func (f *FeedController) Search(ctx *gin.Context) {
	query := strings.TrimSpace(ctx.Query("q"))
	if query == "" {
		utils.Error(ctx, http.StatusBadRequest, 40010, "query cannot be empty")
		return
	}
	utils.Success(ctx, gin.H{"items": f.catalog.SearchPosts(query)})
}

// ByTag returns posts carrying the given tag.
func (f *FeedController) ByTag(ctx *gin.Context) {
	tag := ctx.Param("tag")
	utils.Success(ctx, gin.H{"items": f.catalog.GetPostsByTag(tag)})
}

// GetPost returns a single post, replies included.
func (f *FeedController) GetPost(ctx *gin.Context) {
	post, ok := f.catalog.GetPostByID(ctx.Param("id"))
	if !ok {
		utils.Error(ctx, http.StatusNotFound, 40410, "post not found")
		return
	}
	utils.Success(ctx, gin.H{"post": post})
}
