package repository

import (
	"github.com/qasemB/blog-back-end/internal/models"
	"github.com/qasemB/blog-back-end/internal/store"
)

type CommentRepository struct {
	comments *store.Collection[models.Comment]
}

func NewCommentRepository(s *store.Store) *CommentRepository {
	return &CommentRepository{comments: s.Comments()}
}

func (r *CommentRepository) Create(comment *models.Comment) error {
	return r.comments.Insert(*comment)
}

func (r *CommentRepository) GetByID(id string) (*models.Comment, error) {
	comment, ok := r.comments.Find(func(c models.Comment) bool { return c.ID == id })
	if !ok {
		return nil, nil
	}
	return &comment, nil
}

func (r *CommentRepository) GetAll() ([]models.Comment, error) {
	return r.comments.All(), nil
}

func (r *CommentRepository) GetByArticle(articleID string) ([]models.Comment, error) {
	return r.comments.Filter(func(c models.Comment) bool { return c.ArticleID == articleID }), nil
}

// Update patches content and/or author. Nil fields keep the stored value.
func (r *CommentRepository) Update(id string, content, author *string) (*models.Comment, error) {
	comment, found, err := r.comments.Update(
		func(c models.Comment) bool { return c.ID == id },
		func(c *models.Comment) {
			if content != nil {
				c.Content = *content
			}
			if author != nil {
				c.Author = *author
			}
		},
	)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &comment, nil
}

func (r *CommentRepository) Delete(id string) error {
	_, err := r.comments.Remove(func(c models.Comment) bool { return c.ID == id })
	return err
}

// DeleteByArticle removes every comment on the article. Returns the number
// of comments removed.
func (r *CommentRepository) DeleteByArticle(articleID string) (int, error) {
	return r.comments.Remove(func(c models.Comment) bool { return c.ArticleID == articleID })
}
