package service

import (
	"fmt"
	"regexp"
	"time"

	"github.com/qasemB/blog-back-end/internal/models"
	"github.com/qasemB/blog-back-end/internal/repository"
	"github.com/qasemB/blog-back-end/internal/utils"
	"github.com/qasemB/blog-back-end/pkg/logger"
	"go.uber.org/zap"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type AuthService struct {
	userRepo      *repository.UserRepository
	jwtSecret     string
	jwtExpiration time.Duration
}

func NewAuthService(userRepo *repository.UserRepository, jwtSecret string, jwtExpiration time.Duration) *AuthService {
	return &AuthService{
		userRepo:      userRepo,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
	}
}

// Register creates a new account. The role request is honored only for the
// literal "admin" value, anything else becomes a regular user.
func (s *AuthService) Register(username, email, password, role string) (*models.User, error) {
	logger.Log.Debug("Processing user registration",
		zap.String("username", username),
		zap.String("email", email),
	)

	if err := s.validateRegisterInput(username, email, password); err != nil {
		logger.Log.Warn("Registration validation failed",
			zap.String("username", username),
			zap.Error(err),
		)
		return nil, err
	}

	existing, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		logger.Log.Warn("Username already exists",
			zap.String("username", username),
		)
		return nil, ErrUsernameAlreadyExists
	}

	existing, err = s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		logger.Log.Warn("Email already exists",
			zap.String("email", email),
		)
		return nil, ErrEmailAlreadyExists
	}

	hashStart := time.Now()
	passwordHash, err := utils.HashPassword(password)
	if err != nil {
		logger.Log.Error("Failed to hash password",
			zap.Error(err),
		)
		return nil, err
	}

	userRole := models.RoleUser
	if role == string(models.RoleAdmin) {
		userRole = models.RoleAdmin
	}

	user := &models.User{
		ID:           utils.NewID(),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         userRole,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.userRepo.Create(user); err != nil {
		logger.Log.Error("Failed to persist user",
			zap.String("username", username),
			zap.Error(err),
		)
		return nil, err
	}

	logger.Log.Info("User registered successfully",
		zap.String("user_id", user.ID),
		zap.String("username", username),
		zap.String("role", string(userRole)),
		zap.Duration("hash_duration", time.Since(hashStart)),
	)

	return user, nil
}

// Login verifies credentials and issues a session token. Unknown username
// and wrong password fail with the same error so the response never leaks
// which accounts exist.
func (s *AuthService) Login(username, password string) (*models.User, string, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		logger.Log.Warn("Login failed: user not found",
			zap.String("username", username),
		)
		return nil, "", ErrInvalidCredentials
	}

	valid, err := utils.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		logger.Log.Error("Failed to verify password",
			zap.String("username", username),
			zap.Error(err),
		)
		return nil, "", err
	}
	if !valid {
		logger.Log.Warn("Login failed: invalid password",
			zap.String("username", username),
			zap.String("user_id", user.ID),
		)
		return nil, "", ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(user, s.jwtSecret, s.jwtExpiration)
	if err != nil {
		logger.Log.Error("Failed to generate JWT token",
			zap.String("user_id", user.ID),
			zap.Error(err),
		)
		return nil, "", err
	}

	logger.Log.Info("User logged in successfully",
		zap.String("user_id", user.ID),
		zap.String("username", user.Username),
	)

	return user, token, nil
}

// GetProfile returns the account behind the given id.
func (s *AuthService) GetProfile(userID string) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *AuthService) GetAllUsers() ([]models.User, error) {
	users, err := s.userRepo.GetAll()
	if err != nil {
		logger.Log.Error("Failed to fetch all users",
			zap.Error(err),
		)
		return nil, err
	}

	logger.Log.Debug("Fetched all users",
		zap.Int("count", len(users)),
	)

	return users, nil
}

// UpdateUserRole changes another user's role. Admins cannot change their
// own role.
func (s *AuthService) UpdateUserRole(targetID, callerID string, role string) (*models.User, error) {
	newRole := models.Role(role)
	if !newRole.Valid() {
		return nil, ErrInvalidRole
	}

	if targetID == callerID {
		logger.Log.Warn("Admin attempted to change own role",
			zap.String("admin_id", callerID),
		)
		return nil, ErrSelfRoleChange
	}

	target, err := s.userRepo.GetByID(targetID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, ErrUserNotFound
	}

	updated, err := s.userRepo.UpdateRole(targetID, newRole)
	if err != nil {
		logger.Log.Error("Failed to update user role",
			zap.String("user_id", targetID),
			zap.Error(err),
		)
		return nil, err
	}
	if updated == nil {
		return nil, ErrUserNotFound
	}

	logger.Log.Info("User role updated",
		zap.String("user_id", targetID),
		zap.String("admin_id", callerID),
		zap.String("role", role),
	)

	return updated, nil
}

// DeleteUser removes another user's account. Admins cannot delete
// themselves.
func (s *AuthService) DeleteUser(targetID, callerID string) error {
	if targetID == callerID {
		logger.Log.Warn("Admin attempted to delete own account",
			zap.String("admin_id", callerID),
		)
		return ErrSelfDelete
	}

	target, err := s.userRepo.GetByID(targetID)
	if err != nil {
		return err
	}
	if target == nil {
		return ErrUserNotFound
	}

	if err := s.userRepo.Delete(targetID); err != nil {
		logger.Log.Error("Failed to delete user",
			zap.String("user_id", targetID),
			zap.Error(err),
		)
		return err
	}

	logger.Log.Info("User deleted",
		zap.String("user_id", targetID),
		zap.String("admin_id", callerID),
	)

	return nil
}

func (s *AuthService) validateRegisterInput(username, email, password string) error {
	if len(username) < 3 {
		return fmt.Errorf("%w: username must be at least 3 characters", ErrValidation)
	}
	if len(username) > 50 {
		return fmt.Errorf("%w: username must be at most 50 characters", ErrValidation)
	}

	if !emailRegex.MatchString(email) {
		return fmt.Errorf("%w: invalid email format", ErrValidation)
	}
	if len(email) > 100 {
		return fmt.Errorf("%w: email too long", ErrValidation)
	}

	if len(password) < 6 {
		return fmt.Errorf("%w: password must be at least 6 characters", ErrValidation)
	}
	if len(password) > 128 {
		return fmt.Errorf("%w: password too long", ErrValidation)
	}

	return nil
}
