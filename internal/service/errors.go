package service

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation wraps every input-shape failure so handlers can map the
	// whole family to 400.
	ErrValidation = errors.New("validation failed")

	ErrUsernameAlreadyExists = errors.New("username already exists")
	ErrEmailAlreadyExists    = errors.New("email already exists")
	ErrInvalidCredentials    = errors.New("invalid username or password")
	ErrUserNotFound          = errors.New("user not found")
	ErrInvalidRole           = errors.New("invalid role")
	ErrSelfRoleChange        = errors.New("cannot change your own role")
	ErrSelfDelete            = errors.New("cannot delete your own account")

	ErrCategoryNotFound   = errors.New("category not found")
	ErrCategoryTitleTaken = errors.New("category with this title already exists")

	ErrArticleNotFound = errors.New("article not found")

	ErrCommentNotFound = errors.New("comment not found")
	ErrNotCommentOwner = errors.New("only the comment owner or an admin can modify it")
)

// CategoryInUseError blocks category deletion while articles still
// reference it; the handler reports the dependent count.
type CategoryInUseError struct {
	Count int
}

func (e *CategoryInUseError) Error() string {
	return fmt.Sprintf("category is referenced by %d article(s)", e.Count)
}
