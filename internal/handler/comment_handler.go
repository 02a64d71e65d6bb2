package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/qasemB/blog-back-end/internal/middleware"
	"github.com/qasemB/blog-back-end/internal/models"
	"github.com/qasemB/blog-back-end/internal/service"
)

type CommentHandler struct {
	commentService *service.CommentService
}

func NewCommentHandler(commentService *service.CommentService) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
	}
}

type CreateCommentRequest struct {
	Content   string `json:"content" binding:"required"`
	ArticleID string `json:"articleId" binding:"required"`
	Author    string `json:"author"`
}

type UpdateCommentRequest struct {
	Content *string `json:"content"`
	Author  *string `json:"author"`
}

// GetAll handles GET /api/comments
func (h *CommentHandler) GetAll(c *gin.Context) {
	comments, err := h.commentService.GetAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Failed to fetch comments",
			"error":   err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, comments)
}

// GetByID handles GET /api/comments/:id
func (h *CommentHandler) GetByID(c *gin.Context) {
	comment, err := h.commentService.GetByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrCommentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Comment not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Failed to fetch comment",
			"error":   err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, comment)
}

// Create handles POST /api/comments (authenticated)
func (h *CommentHandler) Create(c *gin.Context) {
	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Comment content and article id are required",
			"error":   err.Error(),
		})
		return
	}

	userID := c.GetString(middleware.CtxUserID)
	username := c.GetString(middleware.CtxUsername)

	comment, err := h.commentService.Create(req.Content, req.ArticleID, req.Author, userID, username)
	if err != nil {
		if errors.Is(err, service.ErrArticleNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Referenced article not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Failed to create comment",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, comment)
}

// Update handles PUT /api/comments/:id (owner or admin)
func (h *CommentHandler) Update(c *gin.Context) {
	var req UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
		return
	}

	comment, err := h.commentService.Update(
		c.Param("id"),
		req.Content,
		req.Author,
		c.GetString(middleware.CtxUserID),
		callerRole(c),
	)
	if err != nil {
		h.writeMutationError(c, err, "Failed to update comment")
		return
	}

	c.JSON(http.StatusOK, comment)
}

// Delete handles DELETE /api/comments/:id (owner or admin)
func (h *CommentHandler) Delete(c *gin.Context) {
	err := h.commentService.Delete(
		c.Param("id"),
		c.GetString(middleware.CtxUserID),
		callerRole(c),
	)
	if err != nil {
		h.writeMutationError(c, err, "Failed to delete comment")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Comment deleted successfully",
	})
}

func (h *CommentHandler) writeMutationError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrCommentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Comment not found"})
	case errors.Is(err, service.ErrNotCommentOwner):
		c.JSON(http.StatusForbidden, gin.H{"message": "Only the comment owner or an admin can modify it"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": fallback,
			"error":   err.Error(),
		})
	}
}

func callerRole(c *gin.Context) models.Role {
	if role, exists := c.Get(middleware.CtxUserRole); exists {
		if r, ok := role.(models.Role); ok {
			return r
		}
	}
	return models.RoleUser
}
