package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/qasemB/blog-back-end/internal/handler"
	"github.com/qasemB/blog-back-end/internal/middleware"
	"github.com/qasemB/blog-back-end/internal/models"
	"github.com/qasemB/blog-back-end/internal/repository"
	"github.com/qasemB/blog-back-end/internal/service"
	"github.com/qasemB/blog-back-end/internal/store"
	"github.com/qasemB/blog-back-end/internal/testutil"
	"github.com/qasemB/blog-back-end/internal/upload"
	"github.com/qasemB/blog-back-end/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

const testJWTSecret = "integration-test-secret"

// APIIntegrationTestSuite exercises the whole HTTP surface against a fresh
// JSON store per test.
type APIIntegrationTestSuite struct {
	suite.Suite
	db       *store.Store
	userRepo *repository.UserRepository
	router   *gin.Engine

	admin      *models.User
	alice      *models.User
	bob        *models.User
	adminToken string
	aliceToken string
	bobToken   string
}

func (s *APIIntegrationTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	testutil.InitTestLogger(s.T())
}

// SetupTest rebuilds the full stack on a fresh temp store.
func (s *APIIntegrationTestSuite) SetupTest() {
	var err error
	s.db, err = store.Open(filepath.Join(s.T().TempDir(), "db.json"))
	s.Require().NoError(err)

	s.userRepo = repository.NewUserRepository(s.db)
	categoryRepo := repository.NewCategoryRepository(s.db)
	articleRepo := repository.NewArticleRepository(s.db)
	commentRepo := repository.NewCommentRepository(s.db)

	authService := service.NewAuthService(s.userRepo, testJWTSecret, time.Hour)
	categoryService := service.NewCategoryService(categoryRepo, articleRepo)
	articleService := service.NewArticleService(articleRepo, categoryRepo, commentRepo)
	commentService := service.NewCommentService(commentRepo, articleRepo)

	uploadDir := s.T().TempDir()
	saver, err := upload.NewSaver(uploadDir, 5<<20)
	s.Require().NoError(err)

	s.router = gin.New()
	handler.RegisterRoutes(s.router, handler.RouterConfig{
		Auth:         handler.NewAuthHandler(authService),
		Categories:   handler.NewCategoryHandler(categoryService),
		Articles:     handler.NewArticleHandler(articleService, saver),
		Comments:     handler.NewCommentHandler(commentService),
		Authenticate: middleware.Authenticate(testJWTSecret, s.userRepo),
		RequireAdmin: middleware.RequireAdmin(),
		UploadDir:    uploadDir,
	})

	s.admin = s.seedUser("admin", "admin@example.com", models.RoleAdmin)
	s.alice = s.seedUser("alice", "alice@example.com", models.RoleUser)
	s.bob = s.seedUser("bob", "bob@example.com", models.RoleUser)
	s.adminToken = s.tokenFor(s.admin)
	s.aliceToken = s.tokenFor(s.alice)
	s.bobToken = s.tokenFor(s.bob)
}

func (s *APIIntegrationTestSuite) seedUser(username, email string, role models.Role) *models.User {
	user, err := testutil.CreateTestUser(username, email, "Password123", role)
	s.Require().NoError(err)
	s.Require().NoError(s.userRepo.Create(user))
	return user
}

func (s *APIIntegrationTestSuite) tokenFor(user *models.User) string {
	token, err := utils.GenerateToken(user, testJWTSecret, time.Hour)
	s.Require().NoError(err)
	return token
}

func (s *APIIntegrationTestSuite) request(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, path, reader)
	s.Require().NoError(err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *APIIntegrationTestSuite) decode(w *httptest.ResponseRecorder) map[string]interface{} {
	var out map[string]interface{}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func (s *APIIntegrationTestSuite) createCategory(title string) string {
	w := s.request(http.MethodPost, "/api/categories", s.adminToken, gin.H{"title": title})
	s.Require().Equal(http.StatusCreated, w.Code)
	return s.decode(w)["id"].(string)
}

func (s *APIIntegrationTestSuite) createArticle(title string, categoryID string) string {
	body := gin.H{"title": title, "content": "content of " + title}
	if categoryID != "" {
		body["categoryId"] = categoryID
	}
	w := s.request(http.MethodPost, "/api/articles", s.adminToken, body)
	s.Require().Equal(http.StatusCreated, w.Code)
	return s.decode(w)["id"].(string)
}

// --- auth ---

func (s *APIIntegrationTestSuite) TestRegisterSuccess() {
	w := s.request(http.MethodPost, "/api/auth/register", "", gin.H{
		"username": "newuser",
		"email":    "newuser@example.com",
		"password": "SecurePass123",
	})

	assert.Equal(s.T(), http.StatusCreated, w.Code)
	response := s.decode(w)
	assert.Equal(s.T(), "User registered successfully", response["message"])

	user := response["user"].(map[string]interface{})
	assert.Equal(s.T(), "newuser", user["username"])
	assert.Equal(s.T(), "user", user["role"])
	assert.NotContains(s.T(), user, "password", "Password must never appear in a response")
}

func (s *APIIntegrationTestSuite) TestRegisterDuplicateUsername() {
	w := s.request(http.MethodPost, "/api/auth/register", "", gin.H{
		"username": "alice",
		"email":    "fresh@example.com",
		"password": "SecurePass123",
	})

	assert.Equal(s.T(), http.StatusBadRequest, w.Code)
}

func (s *APIIntegrationTestSuite) TestRegisterMissingFields() {
	w := s.request(http.MethodPost, "/api/auth/register", "", gin.H{
		"username": "incomplete",
	})

	assert.Equal(s.T(), http.StatusBadRequest, w.Code)
}

func (s *APIIntegrationTestSuite) TestLoginSuccess() {
	w := s.request(http.MethodPost, "/api/auth/login", "", gin.H{
		"username": "alice",
		"password": "Password123",
	})

	assert.Equal(s.T(), http.StatusOK, w.Code)
	response := s.decode(w)
	assert.NotEmpty(s.T(), response["token"])
}

func (s *APIIntegrationTestSuite) TestLoginFailuresLookTheSame() {
	wrongPass := s.request(http.MethodPost, "/api/auth/login", "", gin.H{
		"username": "alice",
		"password": "WrongPassword",
	})
	unknownUser := s.request(http.MethodPost, "/api/auth/login", "", gin.H{
		"username": "ghost",
		"password": "Password123",
	})

	assert.Equal(s.T(), http.StatusUnauthorized, wrongPass.Code)
	assert.Equal(s.T(), http.StatusUnauthorized, unknownUser.Code)
	assert.Equal(s.T(), s.decode(wrongPass)["message"], s.decode(unknownUser)["message"],
		"Login failure must not leak whether the account exists")
}

func (s *APIIntegrationTestSuite) TestProfileWithoutToken() {
	w := s.request(http.MethodGet, "/api/auth/profile", "", nil)
	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)
}

func (s *APIIntegrationTestSuite) TestProfileWithGarbageToken() {
	w := s.request(http.MethodGet, "/api/auth/profile", "not-a-real-token", nil)
	assert.Equal(s.T(), http.StatusForbidden, w.Code)
}

func (s *APIIntegrationTestSuite) TestStaleTokenRejectedAfterUserDeletion() {
	// Admin deletes bob; bob's unexpired token must stop working.
	w := s.request(http.MethodDelete, "/api/auth/users/"+s.bob.ID, s.adminToken, nil)
	s.Require().Equal(http.StatusOK, w.Code)

	w = s.request(http.MethodGet, "/api/auth/profile", s.bobToken, nil)
	assert.Equal(s.T(), http.StatusForbidden, w.Code)
}

func (s *APIIntegrationTestSuite) TestAdminCannotDeleteSelf() {
	w := s.request(http.MethodDelete, "/api/auth/users/"+s.admin.ID, s.adminToken, nil)

	assert.Equal(s.T(), http.StatusBadRequest, w.Code)
	stored, err := s.userRepo.GetByID(s.admin.ID)
	s.Require().NoError(err)
	assert.NotNil(s.T(), stored)
}

func (s *APIIntegrationTestSuite) TestAdminCannotDemoteSelf() {
	w := s.request(http.MethodPut, "/api/auth/users/"+s.admin.ID+"/role", s.adminToken, gin.H{"role": "user"})

	assert.Equal(s.T(), http.StatusBadRequest, w.Code)
	stored, err := s.userRepo.GetByID(s.admin.ID)
	s.Require().NoError(err)
	assert.Equal(s.T(), models.RoleAdmin, stored.Role)
}

func (s *APIIntegrationTestSuite) TestUserListRequiresAdmin() {
	w := s.request(http.MethodGet, "/api/auth/users", s.aliceToken, nil)
	assert.Equal(s.T(), http.StatusForbidden, w.Code)

	w = s.request(http.MethodGet, "/api/auth/users", s.adminToken, nil)
	assert.Equal(s.T(), http.StatusOK, w.Code)
	assert.NotContains(s.T(), w.Body.String(), `"password"`)
}

// --- articles ---

func (s *APIIntegrationTestSuite) TestArticleCreateRequiresAdmin() {
	body := gin.H{"title": "t", "content": "c"}

	noToken := s.request(http.MethodPost, "/api/articles", "", body)
	assert.Equal(s.T(), http.StatusUnauthorized, noToken.Code)

	userToken := s.request(http.MethodPost, "/api/articles", s.aliceToken, body)
	assert.Equal(s.T(), http.StatusForbidden, userToken.Code)
}

func (s *APIIntegrationTestSuite) TestArticleRoundTrip() {
	categoryID := s.createCategory("go")

	w := s.request(http.MethodPost, "/api/articles", s.adminToken, gin.H{
		"title":      "hello",
		"content":    "world",
		"categoryId": categoryID,
		"author":     "carol",
	})
	s.Require().Equal(http.StatusCreated, w.Code)
	created := s.decode(w)

	w = s.request(http.MethodGet, "/api/articles/"+created["id"].(string), "", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	fetched := s.decode(w)

	assert.Equal(s.T(), created["title"], fetched["title"])
	assert.Equal(s.T(), created["content"], fetched["content"])
	assert.Equal(s.T(), created["categoryId"], fetched["categoryId"])
	assert.Equal(s.T(), created["author"], fetched["author"])
}

func (s *APIIntegrationTestSuite) TestArticleCreateUnknownCategory() {
	w := s.request(http.MethodPost, "/api/articles", s.adminToken, gin.H{
		"title":      "t",
		"content":    "c",
		"categoryId": "missing",
	})
	assert.Equal(s.T(), http.StatusBadRequest, w.Code)

	list := s.request(http.MethodGet, "/api/articles", "", nil)
	assert.Equal(s.T(), "[]", list.Body.String(), "Rejected article must not be persisted")
}

func (s *APIIntegrationTestSuite) TestArticleDeleteCascadesComments() {
	articleID := s.createArticle("doomed", "")
	otherID := s.createArticle("survivor", "")

	for i := 0; i < 2; i++ {
		w := s.request(http.MethodPost, "/api/comments", s.aliceToken, gin.H{
			"content":   "nice",
			"articleId": articleID,
		})
		s.Require().Equal(http.StatusCreated, w.Code)
	}
	w := s.request(http.MethodPost, "/api/comments", s.aliceToken, gin.H{
		"content":   "other",
		"articleId": otherID,
	})
	s.Require().Equal(http.StatusCreated, w.Code)

	w = s.request(http.MethodDelete, "/api/articles/"+articleID, s.adminToken, nil)
	s.Require().Equal(http.StatusOK, w.Code)

	// Article gone, its comments gone, the unrelated comment alive.
	w = s.request(http.MethodGet, "/api/articles/"+articleID, "", nil)
	assert.Equal(s.T(), http.StatusNotFound, w.Code)

	w = s.request(http.MethodGet, "/api/comments", "", nil)
	var comments []map[string]interface{}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &comments))
	s.Require().Len(comments, 1)
	assert.Equal(s.T(), otherID, comments[0]["articleId"])
}

func (s *APIIntegrationTestSuite) TestArticleFilterByCategory() {
	categoryID := s.createCategory("go")
	s.createArticle("in-category", categoryID)
	s.createArticle("uncategorized", "")

	w := s.request(http.MethodGet, "/api/articles?categoryId="+categoryID, "", nil)
	s.Require().Equal(http.StatusOK, w.Code)

	var articles []map[string]interface{}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &articles))
	s.Require().Len(articles, 1)
	assert.Equal(s.T(), "in-category", articles[0]["title"])
}

func (s *APIIntegrationTestSuite) TestArticleUpdateExplicitNullClearsCategory() {
	categoryID := s.createCategory("go")
	articleID := s.createArticle("filed", categoryID)

	w := s.request(http.MethodPut, "/api/articles/"+articleID, s.adminToken, gin.H{"categoryId": nil})
	s.Require().Equal(http.StatusOK, w.Code)

	w = s.request(http.MethodGet, "/api/articles/"+articleID, "", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	assert.Nil(s.T(), s.decode(w)["categoryId"], "An explicit null must clear the category")
}

func (s *APIIntegrationTestSuite) TestArticleUpdateAbsentCategoryKept() {
	categoryID := s.createCategory("go")
	articleID := s.createArticle("filed", categoryID)

	w := s.request(http.MethodPut, "/api/articles/"+articleID, s.adminToken, gin.H{"title": "renamed"})
	s.Require().Equal(http.StatusOK, w.Code)

	w = s.request(http.MethodGet, "/api/articles/"+articleID, "", nil)
	fetched := s.decode(w)
	assert.Equal(s.T(), "renamed", fetched["title"])
	assert.Equal(s.T(), categoryID, fetched["categoryId"], "An absent field must keep the stored value")
}

// --- categories ---

func (s *APIIntegrationTestSuite) TestCategoryDeleteBlockedByArticles() {
	categoryID := s.createCategory("busy")
	s.createArticle("dependent", categoryID)

	w := s.request(http.MethodDelete, "/api/categories/"+categoryID, s.adminToken, nil)

	assert.Equal(s.T(), http.StatusBadRequest, w.Code)
	response := s.decode(w)
	assert.Equal(s.T(), float64(1), response["articlesCount"], "Rejection should report the dependent count")

	w = s.request(http.MethodGet, "/api/categories/"+categoryID, "", nil)
	assert.Equal(s.T(), http.StatusOK, w.Code)
}

func (s *APIIntegrationTestSuite) TestCategoryDuplicateTitle() {
	s.createCategory("go")
	w := s.request(http.MethodPost, "/api/categories", s.adminToken, gin.H{"title": "go"})
	assert.Equal(s.T(), http.StatusBadRequest, w.Code)
}

func (s *APIIntegrationTestSuite) TestCategoryMutationRequiresAdmin() {
	w := s.request(http.MethodPost, "/api/categories", s.aliceToken, gin.H{"title": "go"})
	assert.Equal(s.T(), http.StatusForbidden, w.Code)
}

// --- comments ---

func (s *APIIntegrationTestSuite) TestCommentCreateRequiresAuth() {
	w := s.request(http.MethodPost, "/api/comments", "", gin.H{
		"content":   "anonymous",
		"articleId": "whatever",
	})
	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)
}

func (s *APIIntegrationTestSuite) TestCommentOwnershipEnforced() {
	articleID := s.createArticle("a", "")

	w := s.request(http.MethodPost, "/api/comments", s.aliceToken, gin.H{
		"content":   "mine",
		"articleId": articleID,
	})
	s.Require().Equal(http.StatusCreated, w.Code)
	commentID := s.decode(w)["id"].(string)

	// Bob cannot touch alice's comment.
	w = s.request(http.MethodPut, "/api/comments/"+commentID, s.bobToken, gin.H{"content": "hijacked"})
	assert.Equal(s.T(), http.StatusForbidden, w.Code)

	w = s.request(http.MethodGet, "/api/comments/"+commentID, "", nil)
	assert.Equal(s.T(), "mine", s.decode(w)["content"], "Comment must be unchanged")

	// An admin can.
	w = s.request(http.MethodPut, "/api/comments/"+commentID, s.adminToken, gin.H{"content": "moderated"})
	assert.Equal(s.T(), http.StatusOK, w.Code)
}

func (s *APIIntegrationTestSuite) TestCommentUnknownArticle() {
	w := s.request(http.MethodPost, "/api/comments", s.aliceToken, gin.H{
		"content":   "hi",
		"articleId": "missing",
	})
	assert.Equal(s.T(), http.StatusBadRequest, w.Code)
}

// --- misc ---

func (s *APIIntegrationTestSuite) TestWelcomeRoute() {
	w := s.request(http.MethodGet, "/", "", nil)
	assert.Equal(s.T(), http.StatusOK, w.Code)
}

func TestAPIIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(APIIntegrationTestSuite))
}
