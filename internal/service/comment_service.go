package service

import (
	"time"

	"github.com/qasemB/blog-back-end/internal/models"
	"github.com/qasemB/blog-back-end/internal/repository"
	"github.com/qasemB/blog-back-end/internal/utils"
	"github.com/qasemB/blog-back-end/pkg/logger"
	"go.uber.org/zap"
)

type CommentService struct {
	commentRepo *repository.CommentRepository
	articleRepo *repository.ArticleRepository
}

func NewCommentService(commentRepo *repository.CommentRepository, articleRepo *repository.ArticleRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		articleRepo: articleRepo,
	}
}

func (s *CommentService) GetAll() ([]models.Comment, error) {
	return s.commentRepo.GetAll()
}

func (s *CommentService) GetByID(id string) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, ErrCommentNotFound
	}
	return comment, nil
}

// Create stores a comment owned by the authenticated caller. The article
// must exist at creation time. An empty author falls back to the caller's
// username.
func (s *CommentService) Create(content, articleID, author, userID, username string) (*models.Comment, error) {
	article, err := s.articleRepo.GetByID(articleID)
	if err != nil {
		return nil, err
	}
	if article == nil {
		logger.Log.Warn("Comment references unknown article",
			zap.String("article_id", articleID),
		)
		return nil, ErrArticleNotFound
	}

	if author == "" {
		author = username
	}

	comment := &models.Comment{
		ID:        utils.NewID(),
		Content:   content,
		ArticleID: articleID,
		Author:    author,
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.commentRepo.Create(comment); err != nil {
		logger.Log.Error("Failed to persist comment",
			zap.String("article_id", articleID),
			zap.Error(err),
		)
		return nil, err
	}

	logger.Log.Info("Comment created",
		zap.String("comment_id", comment.ID),
		zap.String("article_id", articleID),
		zap.String("user_id", userID),
	)

	return comment, nil
}

// Update patches a comment. Only the owner or an admin may change it.
func (s *CommentService) Update(id string, content, author *string, callerID string, callerRole models.Role) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, ErrCommentNotFound
	}

	if comment.UserID != callerID && callerRole != models.RoleAdmin {
		logger.Log.Warn("Comment update denied",
			zap.String("comment_id", id),
			zap.String("caller_id", callerID),
		)
		return nil, ErrNotCommentOwner
	}

	updated, err := s.commentRepo.Update(id, content, author)
	if err != nil {
		logger.Log.Error("Failed to update comment",
			zap.String("comment_id", id),
			zap.Error(err),
		)
		return nil, err
	}
	if updated == nil {
		return nil, ErrCommentNotFound
	}

	logger.Log.Info("Comment updated",
		zap.String("comment_id", id),
		zap.String("caller_id", callerID),
	)

	return updated, nil
}

// Delete removes a comment. Only the owner or an admin may delete it.
func (s *CommentService) Delete(id, callerID string, callerRole models.Role) error {
	comment, err := s.commentRepo.GetByID(id)
	if err != nil {
		return err
	}
	if comment == nil {
		return ErrCommentNotFound
	}

	if comment.UserID != callerID && callerRole != models.RoleAdmin {
		logger.Log.Warn("Comment deletion denied",
			zap.String("comment_id", id),
			zap.String("caller_id", callerID),
		)
		return ErrNotCommentOwner
	}

	if err := s.commentRepo.Delete(id); err != nil {
		logger.Log.Error("Failed to delete comment",
			zap.String("comment_id", id),
			zap.Error(err),
		)
		return err
	}

	logger.Log.Info("Comment deleted",
		zap.String("comment_id", id),
		zap.String("caller_id", callerID),
	)

	return nil
}
