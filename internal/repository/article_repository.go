package repository

import (
	"github.com/qasemB/blog-back-end/internal/models"
	"github.com/qasemB/blog-back-end/internal/store"
)

type ArticleRepository struct {
	articles *store.Collection[models.Article]
}

func NewArticleRepository(s *store.Store) *ArticleRepository {
	return &ArticleRepository{articles: s.Articles()}
}

func (r *ArticleRepository) Create(article *models.Article) error {
	return r.articles.Insert(*article)
}

func (r *ArticleRepository) GetByID(id string) (*models.Article, error) {
	article, ok := r.articles.Find(func(a models.Article) bool { return a.ID == id })
	if !ok {
		return nil, nil
	}
	return &article, nil
}

func (r *ArticleRepository) GetAll() ([]models.Article, error) {
	return r.articles.All(), nil
}

func (r *ArticleRepository) GetByCategory(categoryID string) ([]models.Article, error) {
	return r.articles.Filter(func(a models.Article) bool {
		return a.CategoryID != nil && *a.CategoryID == categoryID
	}), nil
}

func (r *ArticleRepository) CountByCategory(categoryID string) (int, error) {
	return r.articles.Count(func(a models.Article) bool {
		return a.CategoryID != nil && *a.CategoryID == categoryID
	}), nil
}

// ArticlePatch carries the fields an update may change. Nil means keep the
// stored value; Image and CategoryID use a double pointer so the patch can
// distinguish "leave alone" from "set to null".
type ArticlePatch struct {
	Title      *string
	Content    *string
	Author     *string
	Image      **string
	CategoryID **string
}

func (r *ArticleRepository) Update(id string, patch ArticlePatch) (*models.Article, error) {
	article, found, err := r.articles.Update(
		func(a models.Article) bool { return a.ID == id },
		func(a *models.Article) {
			if patch.Title != nil {
				a.Title = *patch.Title
			}
			if patch.Content != nil {
				a.Content = *patch.Content
			}
			if patch.Author != nil {
				a.Author = *patch.Author
			}
			if patch.Image != nil {
				a.Image = *patch.Image
			}
			if patch.CategoryID != nil {
				a.CategoryID = *patch.CategoryID
			}
		},
	)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &article, nil
}

func (r *ArticleRepository) Delete(id string) error {
	_, err := r.articles.Remove(func(a models.Article) bool { return a.ID == id })
	return err
}
