package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/qasemB/blog-back-end/internal/service"
)

type CategoryHandler struct {
	categoryService *service.CategoryService
}

func NewCategoryHandler(categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
	}
}

type CreateCategoryRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

type UpdateCategoryRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

// GetAll handles GET /api/categories
func (h *CategoryHandler) GetAll(c *gin.Context) {
	categories, err := h.categoryService.GetAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Failed to fetch categories",
			"error":   err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, categories)
}

// GetByID handles GET /api/categories/:id
func (h *CategoryHandler) GetByID(c *gin.Context) {
	category, err := h.categoryService.GetByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Category not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Failed to fetch category",
			"error":   err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, category)
}

// GetArticles handles GET /api/categories/:id/articles
func (h *CategoryHandler) GetArticles(c *gin.Context) {
	articles, err := h.categoryService.GetArticles(c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Category not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Failed to fetch category articles",
			"error":   err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, articles)
}

// Create handles POST /api/categories (admin only)
func (h *CategoryHandler) Create(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Category title is required",
			"error":   err.Error(),
		})
		return
	}

	category, err := h.categoryService.Create(req.Title, req.Description)
	if err != nil {
		if errors.Is(err, service.ErrCategoryTitleTaken) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "A category with this title already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Failed to create category",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, category)
}

// Update handles PUT /api/categories/:id (admin only)
func (h *CategoryHandler) Update(c *gin.Context) {
	var req UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
		return
	}

	category, err := h.categoryService.Update(c.Param("id"), req.Title, req.Description)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCategoryNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Category not found"})
		case errors.Is(err, service.ErrCategoryTitleTaken):
			c.JSON(http.StatusBadRequest, gin.H{"message": "A category with this title already exists"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"message": "Failed to update category",
				"error":   err.Error(),
			})
		}
		return
	}

	c.JSON(http.StatusOK, category)
}

// Delete handles DELETE /api/categories/:id (admin only)
func (h *CategoryHandler) Delete(c *gin.Context) {
	err := h.categoryService.Delete(c.Param("id"))
	if err != nil {
		var inUse *service.CategoryInUseError
		switch {
		case errors.Is(err, service.ErrCategoryNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Category not found"})
		case errors.As(err, &inUse):
			c.JSON(http.StatusBadRequest, gin.H{
				"message":       "Category cannot be deleted because articles depend on it",
				"articlesCount": inUse.Count,
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"message": "Failed to delete category",
				"error":   err.Error(),
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Category deleted successfully",
	})
}
