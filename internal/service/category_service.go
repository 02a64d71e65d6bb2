package service

import (
	"github.com/qasemB/blog-back-end/internal/models"
	"github.com/qasemB/blog-back-end/internal/repository"
	"github.com/qasemB/blog-back-end/internal/utils"
	"github.com/qasemB/blog-back-end/pkg/logger"
	"go.uber.org/zap"
)

type CategoryService struct {
	categoryRepo *repository.CategoryRepository
	articleRepo  *repository.ArticleRepository
}

func NewCategoryService(categoryRepo *repository.CategoryRepository, articleRepo *repository.ArticleRepository) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		articleRepo:  articleRepo,
	}
}

func (s *CategoryService) GetAll() ([]models.Category, error) {
	return s.categoryRepo.GetAll()
}

func (s *CategoryService) GetByID(id string) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	return category, nil
}

// GetArticles lists the articles filed under the category.
func (s *CategoryService) GetArticles(id string) ([]models.Article, error) {
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	return s.articleRepo.GetByCategory(id)
}

func (s *CategoryService) Create(title, description string) (*models.Category, error) {
	existing, err := s.categoryRepo.GetByTitle(title)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		logger.Log.Warn("Category title already taken",
			zap.String("title", title),
		)
		return nil, ErrCategoryTitleTaken
	}

	category := &models.Category{
		ID:          utils.NewID(),
		Title:       title,
		Description: description,
	}

	if err := s.categoryRepo.Create(category); err != nil {
		logger.Log.Error("Failed to persist category",
			zap.String("title", title),
			zap.Error(err),
		)
		return nil, err
	}

	logger.Log.Info("Category created",
		zap.String("category_id", category.ID),
		zap.String("title", title),
	)

	return category, nil
}

func (s *CategoryService) Update(id string, title, description *string) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}

	if title != nil && *title != category.Title {
		existing, err := s.categoryRepo.GetByTitle(*title)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, ErrCategoryTitleTaken
		}
	}

	updated, err := s.categoryRepo.Update(id, title, description)
	if err != nil {
		logger.Log.Error("Failed to update category",
			zap.String("category_id", id),
			zap.Error(err),
		)
		return nil, err
	}
	if updated == nil {
		return nil, ErrCategoryNotFound
	}

	logger.Log.Info("Category updated",
		zap.String("category_id", id),
	)

	return updated, nil
}

// Delete removes a category. Deletion is rejected while any article still
// references it; the error carries the dependent count.
func (s *CategoryService) Delete(id string) error {
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrCategoryNotFound
	}

	dependents, err := s.articleRepo.CountByCategory(id)
	if err != nil {
		return err
	}
	if dependents > 0 {
		logger.Log.Warn("Category deletion blocked by dependent articles",
			zap.String("category_id", id),
			zap.Int("articles", dependents),
		)
		return &CategoryInUseError{Count: dependents}
	}

	if err := s.categoryRepo.Delete(id); err != nil {
		logger.Log.Error("Failed to delete category",
			zap.String("category_id", id),
			zap.Error(err),
		)
		return err
	}

	logger.Log.Info("Category deleted",
		zap.String("category_id", id),
	)

	return nil
}
