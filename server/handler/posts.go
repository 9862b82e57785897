package handler

import (
	"encoding/json"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/plateful/plateful/model"
	"github.com/plateful/plateful/server/middlewares"
	Logger "github.com/plateful/plateful/utils/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// postPreload attaches the owner (with profile), comments in posting order
// and the raw like rows, which clients reduce to counts and liked flags.
func postPreload(db *gorm.DB) *gorm.DB {
	return db.
		Preload("User.Profile").
		Preload("Comments", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Preload("Comments.User").
		Preload("Likes")
}

// ListPosts returns every community post, newest first.
func (h *Handler) ListPosts(c *gin.Context) {
	posts := []*model.Post{}
	if err := postPreload(h.DB).Order("created_at DESC").Find(&posts).Error; err != nil {
		respondError(c, errInternal("Failed to fetch posts", err))
		return
	}
	c.JSON(http.StatusOK, posts)
}

// MyPosts returns the authenticated user's posts, newest first.
func (h *Handler) MyPosts(c *gin.Context) {
	posts := []*model.Post{}
	if err := postPreload(h.DB).Where("user_id = ?", middlewares.UserID(c)).
		Order("created_at DESC").Find(&posts).Error; err != nil {
		respondError(c, errInternal("Failed to fetch your posts", err))
		return
	}
	c.JSON(http.StatusOK, posts)
}

// CreatePost publishes a community recipe from a multipart form. The
// ingredients field must be a JSON array of {name, measure}; an optional
// image is stored under a randomized filename to avoid collisions.
func (h *Handler) CreatePost(c *gin.Context) {
	title := c.PostForm("title")
	category := c.PostForm("category")
	area := c.PostForm("area")
	ingredients := c.PostForm("ingredients")
	instructions := c.PostForm("instructions")

	if title == "" || category == "" || area == "" || ingredients == "" || instructions == "" {
		respondError(c, errValidation("Title, category, area, ingredients, and instructions are required"))
		return
	}

	var parsed []json.RawMessage
	if err := json.Unmarshal([]byte(ingredients), &parsed); err != nil {
		respondError(c, errValidation("Invalid ingredients format"))
		return
	}

	imageUrl := ""
	if file, err := c.FormFile("image"); err == nil {
		name := uuid.New().String() + filepath.Ext(file.Filename)
		if err := c.SaveUploadedFile(file, filepath.Join(h.UploadDir, name)); err != nil {
			respondError(c, errInternal("Failed to create post", err))
			return
		}
		imageUrl = "/uploads/" + name
	}

	post := model.Post{
		Id:           uuid.New().String(),
		UserID:       middlewares.UserID(c),
		Title:        title,
		Category:     category,
		Area:         area,
		Ingredients:  datatypes.JSON(ingredients),
		Instructions: instructions,
		Content:      c.PostForm("content"),
		ImageUrl:     imageUrl,
	}
	if err := h.DB.Create(&post).Error; err != nil {
		h.removeUpload(imageUrl)
		respondError(c, errInternal("Failed to create post", err))
		return
	}

	c.JSON(http.StatusCreated, post)
}

// DeletePost removes a post the authenticated user owns. Dependents are
// deleted first and the whole cascade runs in one transaction, so a failure
// cannot leave orphaned likes or comments.
func (h *Handler) DeletePost(c *gin.Context) {
	id := c.Param("id")

	var post model.Post
	result := h.DB.First(&post, "id = ?", id)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		respondError(c, errNotFound("Post not found"))
		return
	}
	if result.Error != nil {
		respondError(c, errInternal("Failed to delete post", result.Error))
		return
	}
	if post.UserID != middlewares.UserID(c) {
		respondError(c, errAuthorization("Not allowed"))
		return
	}

	if err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&model.PostLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&model.PostComment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&post).Error
	}); err != nil {
		respondError(c, errInternal("Failed to delete post", err))
		return
	}

	h.removeUpload(post.ImageUrl)

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// removeUpload best-effort deletes the file backing a post image. Failures
// are logged, never surfaced to the caller.
func (h *Handler) removeUpload(imageUrl string) {
	if imageUrl == "" || !strings.HasPrefix(imageUrl, "/uploads/") {
		return
	}
	name := path.Base(imageUrl)
	if err := os.Remove(filepath.Join(h.UploadDir, name)); err != nil && !os.IsNotExist(err) {
		Logger.Log.Warn("failed to remove upload: ", err)
	}
}

// ToggleLike flips the authenticated user's like on a post: present rows are
// removed, absent ones inserted, atomically against concurrent toggles.
// Responds with the new state and the fresh like count.
func (h *Handler) ToggleLike(c *gin.Context) {
	postID := c.Param("postId")
	userID := middlewares.UserID(c)

	var post model.Post
	result := h.DB.First(&post, "id = ?", postID)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		respondError(c, errNotFound("Post not found"))
		return
	}
	if result.Error != nil {
		respondError(c, errInternal("Failed to toggle like", result.Error))
		return
	}

	liked := false
	if err := h.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND post_id = ?", userID, postID).Delete(&model.PostLike{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			liked = true
			return tx.Create(&model.PostLike{UserID: userID, PostID: postID}).Error
		}
		return nil
	}); err != nil {
		respondError(c, errInternal("Failed to toggle like", err))
		return
	}

	var likes int64
	if err := h.DB.Model(&model.PostLike{}).Where("post_id = ?", postID).Count(&likes).Error; err != nil {
		respondError(c, errInternal("Failed to toggle like", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"liked": liked, "likes": likes})
}

// ListComments returns a post's comments in posting order.
func (h *Handler) ListComments(c *gin.Context) {
	comments := []*model.PostComment{}
	if err := h.DB.Where("post_id = ?", c.Param("postId")).Order("created_at ASC").
		Preload("User.Profile").Find(&comments).Error; err != nil {
		respondError(c, errInternal("Failed to fetch comments", err))
		return
	}
	c.JSON(http.StatusOK, comments)
}

type createCommentRequest struct {
	Body string `json:"body"`
}

// CreateComment adds a comment to a post.
func (h *Handler) CreateComment(c *gin.Context) {
	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Body) == "" {
		respondError(c, errValidation("Comment body required"))
		return
	}

	postID := c.Param("postId")
	var post model.Post
	result := h.DB.First(&post, "id = ?", postID)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		respondError(c, errNotFound("Post not found"))
		return
	}
	if result.Error != nil {
		respondError(c, errInternal("Failed to add comment", result.Error))
		return
	}

	comment := model.PostComment{
		Id:     uuid.New().String(),
		PostID: postID,
		UserID: middlewares.UserID(c),
		Body:   req.Body,
	}
	if err := h.DB.Create(&comment).Error; err != nil {
		respondError(c, errInternal("Failed to add comment", err))
		return
	}

	h.DB.Preload("User.Profile").First(&comment, "id = ?", comment.Id)
	c.JSON(http.StatusOK, comment)
}
