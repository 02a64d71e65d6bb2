package testutil

import (
	"time"

	"github.com/qasemB/blog-back-end/internal/models"
	"github.com/qasemB/blog-back-end/internal/utils"
)

// CreateTestUser builds a user record with a real password hash.
func CreateTestUser(username, email, password string, role models.Role) (*models.User, error) {
	passwordHash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	return &models.User{
		ID:           utils.NewID(),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}, nil
}

// DefaultTestUser returns a regular user fixture.
func DefaultTestUser() (*models.User, error) {
	return CreateTestUser("testuser", "test@example.com", "Test123456", models.RoleUser)
}

// DefaultAdminUser returns an admin fixture.
func DefaultAdminUser() (*models.User, error) {
	return CreateTestUser("admin", "admin@example.com", "Admin123456", models.RoleAdmin)
}

// CreateTestCategory builds a category record.
func CreateTestCategory(title, description string) *models.Category {
	return &models.Category{
		ID:          utils.NewID(),
		Title:       title,
		Description: description,
	}
}

// CreateTestArticle builds an article record, optionally filed under a
// category.
func CreateTestArticle(title, content string, categoryID *string) *models.Article {
	return &models.Article{
		ID:         utils.NewID(),
		Title:      title,
		Content:    content,
		CategoryID: categoryID,
		Author:     "tester",
		CreatedAt:  time.Now().UTC(),
	}
}

// CreateTestComment builds a comment owned by the given user.
func CreateTestComment(articleID, userID, content string) *models.Comment {
	return &models.Comment{
		ID:        utils.NewID(),
		Content:   content,
		ArticleID: articleID,
		Author:    "tester",
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}
}
