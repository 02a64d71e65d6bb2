package service_test

import (
	"testing"

	"github.com/qasemB/blog-back-end/internal/models"
	"github.com/qasemB/blog-back-end/internal/repository"
	"github.com/qasemB/blog-back-end/internal/service"
	"github.com/qasemB/blog-back-end/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCommentFixture(t *testing.T) (*service.CommentService, *service.ArticleService) {
	t.Helper()
	s := testutil.SetupTestStore(t)
	categoryRepo := repository.NewCategoryRepository(s)
	articleRepo := repository.NewArticleRepository(s)
	commentRepo := repository.NewCommentRepository(s)
	return service.NewCommentService(commentRepo, articleRepo),
		service.NewArticleService(articleRepo, categoryRepo, commentRepo)
}

func TestCommentCreate_Success(t *testing.T) {
	// Arrange
	comments, articles := newCommentFixture(t)
	article, err := articles.Create(service.CreateArticleInput{Title: "a", Content: "b"})
	require.NoError(t, err)

	// Act
	comment, err := comments.Create("well written", article.ID, "", "u1", "alice")

	// Assert
	require.NoError(t, err)
	assert.NotEmpty(t, comment.ID)
	assert.Equal(t, "u1", comment.UserID)
	assert.Equal(t, "alice", comment.Author, "Empty author falls back to the username")
}

func TestCommentCreate_ExplicitAuthorKept(t *testing.T) {
	// Arrange
	comments, articles := newCommentFixture(t)
	article, err := articles.Create(service.CreateArticleInput{Title: "a", Content: "b"})
	require.NoError(t, err)

	// Act
	comment, err := comments.Create("hi", article.ID, "A. Reader", "u1", "alice")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "A. Reader", comment.Author)
}

func TestCommentCreate_UnknownArticle(t *testing.T) {
	// Arrange
	comments, _ := newCommentFixture(t)

	// Act
	_, err := comments.Create("hi", "missing", "", "u1", "alice")

	// Assert
	assert.ErrorIs(t, err, service.ErrArticleNotFound)
}

func TestCommentUpdate_OwnerAllowed(t *testing.T) {
	// Arrange
	comments, articles := newCommentFixture(t)
	article, err := articles.Create(service.CreateArticleInput{Title: "a", Content: "b"})
	require.NoError(t, err)
	comment, err := comments.Create("first", article.ID, "", "u1", "alice")
	require.NoError(t, err)

	// Act
	content := "edited"
	updated, err := comments.Update(comment.ID, &content, nil, "u1", models.RoleUser)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Content)
}

func TestCommentUpdate_StrangerForbidden(t *testing.T) {
	// Arrange
	comments, articles := newCommentFixture(t)
	article, err := articles.Create(service.CreateArticleInput{Title: "a", Content: "b"})
	require.NoError(t, err)
	comment, err := comments.Create("first", article.ID, "", "u1", "alice")
	require.NoError(t, err)

	// Act
	content := "vandalism"
	_, err = comments.Update(comment.ID, &content, nil, "u2", models.RoleUser)

	// Assert
	assert.ErrorIs(t, err, service.ErrNotCommentOwner)
	stored, getErr := comments.GetByID(comment.ID)
	require.NoError(t, getErr)
	assert.Equal(t, "first", stored.Content, "Comment must be unchanged after a denied update")
}

func TestCommentUpdate_AdminAllowed(t *testing.T) {
	// Arrange
	comments, articles := newCommentFixture(t)
	article, err := articles.Create(service.CreateArticleInput{Title: "a", Content: "b"})
	require.NoError(t, err)
	comment, err := comments.Create("first", article.ID, "", "u1", "alice")
	require.NoError(t, err)

	// Act
	content := "moderated"
	updated, err := comments.Update(comment.ID, &content, nil, "admin-1", models.RoleAdmin)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "moderated", updated.Content)
}

func TestCommentDelete_StrangerForbidden(t *testing.T) {
	// Arrange
	comments, articles := newCommentFixture(t)
	article, err := articles.Create(service.CreateArticleInput{Title: "a", Content: "b"})
	require.NoError(t, err)
	comment, err := comments.Create("first", article.ID, "", "u1", "alice")
	require.NoError(t, err)

	// Act
	err = comments.Delete(comment.ID, "u2", models.RoleUser)

	// Assert
	assert.ErrorIs(t, err, service.ErrNotCommentOwner)
}

func TestCommentDelete_OwnerAllowed(t *testing.T) {
	// Arrange
	comments, articles := newCommentFixture(t)
	article, err := articles.Create(service.CreateArticleInput{Title: "a", Content: "b"})
	require.NoError(t, err)
	comment, err := comments.Create("first", article.ID, "", "u1", "alice")
	require.NoError(t, err)

	// Act
	err = comments.Delete(comment.ID, "u1", models.RoleUser)

	// Assert
	require.NoError(t, err)
	_, err = comments.GetByID(comment.ID)
	assert.ErrorIs(t, err, service.ErrCommentNotFound)
}
