package service

import (
	"time"

	"github.com/qasemB/blog-back-end/internal/models"
	"github.com/qasemB/blog-back-end/internal/repository"
	"github.com/qasemB/blog-back-end/internal/utils"
	"github.com/qasemB/blog-back-end/pkg/logger"
	"go.uber.org/zap"
)

// DefaultAuthor is stored when an article arrives without an author field.
const DefaultAuthor = "unknown"

type ArticleService struct {
	articleRepo  *repository.ArticleRepository
	categoryRepo *repository.CategoryRepository
	commentRepo  *repository.CommentRepository
}

func NewArticleService(
	articleRepo *repository.ArticleRepository,
	categoryRepo *repository.CategoryRepository,
	commentRepo *repository.CommentRepository,
) *ArticleService {
	return &ArticleService{
		articleRepo:  articleRepo,
		categoryRepo: categoryRepo,
		commentRepo:  commentRepo,
	}
}

// GetAll lists articles, optionally narrowed to one category.
func (s *ArticleService) GetAll(categoryID string) ([]models.Article, error) {
	if categoryID != "" {
		return s.articleRepo.GetByCategory(categoryID)
	}
	return s.articleRepo.GetAll()
}

func (s *ArticleService) GetByID(id string) (*models.Article, error) {
	article, err := s.articleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, ErrArticleNotFound
	}
	return article, nil
}

// GetComments lists the comments on an article.
func (s *ArticleService) GetComments(id string) ([]models.Comment, error) {
	article, err := s.articleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, ErrArticleNotFound
	}
	return s.commentRepo.GetByArticle(id)
}

// CreateArticleInput carries the validated request fields for creation.
type CreateArticleInput struct {
	Title      string
	Content    string
	Author     string
	CategoryID *string
	Image      *string
}

// Create persists a new article. A non-nil CategoryID must resolve to an
// existing category at the moment of write.
func (s *ArticleService) Create(input CreateArticleInput) (*models.Article, error) {
	if input.CategoryID != nil {
		category, err := s.categoryRepo.GetByID(*input.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			logger.Log.Warn("Article references unknown category",
				zap.String("category_id", *input.CategoryID),
			)
			return nil, ErrCategoryNotFound
		}
	}

	author := input.Author
	if author == "" {
		author = DefaultAuthor
	}

	article := &models.Article{
		ID:         utils.NewID(),
		Title:      input.Title,
		Content:    input.Content,
		Image:      input.Image,
		CategoryID: input.CategoryID,
		Author:     author,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.articleRepo.Create(article); err != nil {
		logger.Log.Error("Failed to persist article",
			zap.String("title", input.Title),
			zap.Error(err),
		)
		return nil, err
	}

	logger.Log.Info("Article created",
		zap.String("article_id", article.ID),
		zap.String("title", article.Title),
	)

	return article, nil
}

// Update patches an article. A category change is checked against the
// categories collection before anything is written.
func (s *ArticleService) Update(id string, patch repository.ArticlePatch) (*models.Article, error) {
	article, err := s.articleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, ErrArticleNotFound
	}

	if patch.CategoryID != nil && *patch.CategoryID != nil {
		newID := **patch.CategoryID
		if article.CategoryID == nil || *article.CategoryID != newID {
			category, err := s.categoryRepo.GetByID(newID)
			if err != nil {
				return nil, err
			}
			if category == nil {
				return nil, ErrCategoryNotFound
			}
		}
	}

	updated, err := s.articleRepo.Update(id, patch)
	if err != nil {
		logger.Log.Error("Failed to update article",
			zap.String("article_id", id),
			zap.Error(err),
		)
		return nil, err
	}
	if updated == nil {
		return nil, ErrArticleNotFound
	}

	logger.Log.Info("Article updated",
		zap.String("article_id", id),
	)

	return updated, nil
}

// Delete removes an article and cascades to every comment referencing it.
func (s *ArticleService) Delete(id string) error {
	article, err := s.articleRepo.GetByID(id)
	if err != nil {
		return err
	}
	if article == nil {
		return ErrArticleNotFound
	}

	removed, err := s.commentRepo.DeleteByArticle(id)
	if err != nil {
		logger.Log.Error("Failed to delete article comments",
			zap.String("article_id", id),
			zap.Error(err),
		)
		return err
	}

	if err := s.articleRepo.Delete(id); err != nil {
		logger.Log.Error("Failed to delete article",
			zap.String("article_id", id),
			zap.Error(err),
		)
		return err
	}

	logger.Log.Info("Article deleted",
		zap.String("article_id", id),
		zap.Int("comments_removed", removed),
	)

	return nil
}
