package repository

import (
	"github.com/qasemB/blog-back-end/internal/models"
	"github.com/qasemB/blog-back-end/internal/store"
)

type UserRepository struct {
	users *store.Collection[models.User]
}

func NewUserRepository(s *store.Store) *UserRepository {
	return &UserRepository{users: s.Users()}
}

func (r *UserRepository) Create(user *models.User) error {
	return r.users.Insert(*user)
}

func (r *UserRepository) GetByID(id string) (*models.User, error) {
	user, ok := r.users.Find(func(u models.User) bool { return u.ID == id })
	if !ok {
		return nil, nil
	}
	return &user, nil
}

func (r *UserRepository) GetByUsername(username string) (*models.User, error) {
	user, ok := r.users.Find(func(u models.User) bool { return u.Username == username })
	if !ok {
		return nil, nil
	}
	return &user, nil
}

func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	user, ok := r.users.Find(func(u models.User) bool { return u.Email == email })
	if !ok {
		return nil, nil
	}
	return &user, nil
}

func (r *UserRepository) GetAll() ([]models.User, error) {
	return r.users.All(), nil
}

// UpdateRole changes the role of the user with the given id. Returns the
// updated record, or nil when the id does not resolve.
func (r *UserRepository) UpdateRole(id string, role models.Role) (*models.User, error) {
	user, found, err := r.users.Update(
		func(u models.User) bool { return u.ID == id },
		func(u *models.User) { u.Role = role },
	)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &user, nil
}

func (r *UserRepository) Delete(id string) error {
	_, err := r.users.Remove(func(u models.User) bool { return u.ID == id })
	return err
}
