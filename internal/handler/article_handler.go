package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/qasemB/blog-back-end/internal/repository"
	"github.com/qasemB/blog-back-end/internal/service"
	"github.com/qasemB/blog-back-end/internal/upload"
)

type ArticleHandler struct {
	articleService *service.ArticleService
	saver          *upload.Saver
}

func NewArticleHandler(articleService *service.ArticleService, saver *upload.Saver) *ArticleHandler {
	return &ArticleHandler{
		articleService: articleService,
		saver:          saver,
	}
}

type CreateArticleRequest struct {
	Title      string  `json:"title" binding:"required"`
	Content    string  `json:"content" binding:"required"`
	Image      *string `json:"image"`
	CategoryID *string `json:"categoryId"`
	Author     string  `json:"author"`
}

// UpdateArticleRequest binds image and categoryId as raw JSON because an
// explicit null clears the stored value while an absent field keeps it, and
// a plain *string cannot tell those apart.
type UpdateArticleRequest struct {
	Title      *string         `json:"title"`
	Content    *string         `json:"content"`
	Image      json.RawMessage `json:"image"`
	CategoryID json.RawMessage `json:"categoryId"`
	Author     *string         `json:"author"`
}

// optionalString decodes a raw field into patch form: absent returns nil
// (keep stored value), null returns an outer pointer to nil (clear), and a
// string returns both pointers set.
func optionalString(raw json.RawMessage) (**string, error) {
	if raw == nil {
		return nil, nil
	}
	var v *string
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// GetAll handles GET /api/articles with an optional categoryId filter.
func (h *ArticleHandler) GetAll(c *gin.Context) {
	articles, err := h.articleService.GetAll(c.Query("categoryId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Failed to fetch articles",
			"error":   err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, articles)
}

// GetByID handles GET /api/articles/:id
func (h *ArticleHandler) GetByID(c *gin.Context) {
	article, err := h.articleService.GetByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrArticleNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Article not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Failed to fetch article",
			"error":   err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, article)
}

// GetComments handles GET /api/articles/:id/comments
func (h *ArticleHandler) GetComments(c *gin.Context) {
	comments, err := h.articleService.GetComments(c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrArticleNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Article not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Failed to fetch article comments",
			"error":   err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, comments)
}

// Create handles POST /api/articles (admin only)
func (h *ArticleHandler) Create(c *gin.Context) {
	var req CreateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Article title and content are required",
			"error":   err.Error(),
		})
		return
	}

	article, err := h.articleService.Create(service.CreateArticleInput{
		Title:      req.Title,
		Content:    req.Content,
		Author:     req.Author,
		CategoryID: req.CategoryID,
		Image:      req.Image,
	})
	if err != nil {
		h.writeCreateError(c, err)
		return
	}

	c.JSON(http.StatusCreated, article)
}

// CreateWithImage handles POST /api/articles/with-image (admin only,
// multipart). The image part is optional, matching the JSON variant.
func (h *ArticleHandler) CreateWithImage(c *gin.Context) {
	title := c.PostForm("title")
	content := c.PostForm("content")
	if title == "" || content == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Article title and content are required",
		})
		return
	}

	var categoryID *string
	if v, ok := c.GetPostForm("categoryId"); ok && v != "" {
		categoryID = &v
	}

	var imagePath *string
	if file, err := c.FormFile("image"); err == nil {
		path, err := h.saver.Save(c, file)
		if err != nil {
			h.writeUploadError(c, err)
			return
		}
		imagePath = &path
	}

	article, err := h.articleService.Create(service.CreateArticleInput{
		Title:      title,
		Content:    content,
		Author:     c.PostForm("author"),
		CategoryID: categoryID,
		Image:      imagePath,
	})
	if err != nil {
		h.writeCreateError(c, err)
		return
	}

	c.JSON(http.StatusCreated, article)
}

// UploadImage handles POST /api/articles/upload (admin only). Stores a
// standalone image and returns its public path for later use.
func (h *ArticleHandler) UploadImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "No image file selected",
		})
		return
	}

	path, err := h.saver.Save(c, file)
	if err != nil {
		h.writeUploadError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Image uploaded successfully",
		"imagePath": path,
	})
}

// Update handles PUT /api/articles/:id (admin only). Absent fields keep
// their stored values.
func (h *ArticleHandler) Update(c *gin.Context) {
	var req UpdateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
		return
	}

	patch := repository.ArticlePatch{
		Title:   req.Title,
		Content: req.Content,
		Author:  req.Author,
	}
	image, err := optionalString(req.Image)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Image must be a string or null",
			"error":   err.Error(),
		})
		return
	}
	patch.Image = image

	categoryID, err := optionalString(req.CategoryID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Category id must be a string or null",
			"error":   err.Error(),
		})
		return
	}
	patch.CategoryID = categoryID

	article, err := h.articleService.Update(c.Param("id"), patch)
	if err != nil {
		h.writeUpdateError(c, err)
		return
	}

	c.JSON(http.StatusOK, article)
}

// UpdateWithImage handles PUT /api/articles/:id/with-image (admin only,
// multipart). A newly uploaded file replaces the stored image; without one
// the old image stays.
func (h *ArticleHandler) UpdateWithImage(c *gin.Context) {
	patch := repository.ArticlePatch{}
	if v, ok := c.GetPostForm("title"); ok {
		patch.Title = &v
	}
	if v, ok := c.GetPostForm("content"); ok {
		patch.Content = &v
	}
	if v, ok := c.GetPostForm("author"); ok {
		patch.Author = &v
	}
	if v, ok := c.GetPostForm("categoryId"); ok && v != "" {
		ptr := &v
		patch.CategoryID = &ptr
	}

	if file, err := c.FormFile("image"); err == nil {
		path, err := h.saver.Save(c, file)
		if err != nil {
			h.writeUploadError(c, err)
			return
		}
		ptr := &path
		patch.Image = &ptr
	}

	article, err := h.articleService.Update(c.Param("id"), patch)
	if err != nil {
		h.writeUpdateError(c, err)
		return
	}

	c.JSON(http.StatusOK, article)
}

// Delete handles DELETE /api/articles/:id (admin only)
func (h *ArticleHandler) Delete(c *gin.Context) {
	if err := h.articleService.Delete(c.Param("id")); err != nil {
		if errors.Is(err, service.ErrArticleNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Article not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Failed to delete article",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Article and its comments deleted successfully",
	})
}

func (h *ArticleHandler) writeCreateError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrCategoryNotFound) {
		// Referential failure on write is a validation error, not a 404.
		c.JSON(http.StatusBadRequest, gin.H{"message": "Referenced category not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{
		"message": "Failed to create article",
		"error":   err.Error(),
	})
}

func (h *ArticleHandler) writeUpdateError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrArticleNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Article not found"})
	case errors.Is(err, service.ErrCategoryNotFound):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Referenced category not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Failed to update article",
			"error":   err.Error(),
		})
	}
}

func (h *ArticleHandler) writeUploadError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, upload.ErrNotAnImage):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Only image files are allowed"})
	case errors.Is(err, upload.ErrTooLarge):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Image exceeds the 5 MB size limit"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Failed to store image",
			"error":   err.Error(),
		})
	}
}
