package repository

import (
	"github.com/qasemB/blog-back-end/internal/models"
	"github.com/qasemB/blog-back-end/internal/store"
)

type CategoryRepository struct {
	categories *store.Collection[models.Category]
}

func NewCategoryRepository(s *store.Store) *CategoryRepository {
	return &CategoryRepository{categories: s.Categories()}
}

func (r *CategoryRepository) Create(category *models.Category) error {
	return r.categories.Insert(*category)
}

func (r *CategoryRepository) GetByID(id string) (*models.Category, error) {
	category, ok := r.categories.Find(func(c models.Category) bool { return c.ID == id })
	if !ok {
		return nil, nil
	}
	return &category, nil
}

func (r *CategoryRepository) GetByTitle(title string) (*models.Category, error) {
	category, ok := r.categories.Find(func(c models.Category) bool { return c.Title == title })
	if !ok {
		return nil, nil
	}
	return &category, nil
}

func (r *CategoryRepository) GetAll() ([]models.Category, error) {
	return r.categories.All(), nil
}

// Update patches title and/or description of the category with the given
// id. Nil fields are left untouched.
func (r *CategoryRepository) Update(id string, title, description *string) (*models.Category, error) {
	category, found, err := r.categories.Update(
		func(c models.Category) bool { return c.ID == id },
		func(c *models.Category) {
			if title != nil {
				c.Title = *title
			}
			if description != nil {
				c.Description = *description
			}
		},
	)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &category, nil
}

func (r *CategoryRepository) Delete(id string) error {
	_, err := r.categories.Remove(func(c models.Category) bool { return c.ID == id })
	return err
}
