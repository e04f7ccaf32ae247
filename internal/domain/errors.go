package domain

import "errors"

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrUserExists       = errors.New("user already exists")
	ErrUsernameRequired = errors.New("username is required")
	ErrUsernameTooLong  = errors.New("username is too long")
	ErrPasswordRequired = errors.New("password is required")
	ErrPasswordTooLong  = errors.New("password is too long")
	ErrBadUsername      = errors.New("incorrect username")
	ErrBadPassword      = errors.New("incorrect password")
	ErrSelfDelete       = errors.New("cannot delete own account")

	ErrTaskNotFound    = errors.New("task not found")
	ErrTitleRequired   = errors.New("title is required")
	ErrFieldTooLong    = errors.New("field is too long")
	ErrInvalidStatus   = errors.New("invalid status")
	ErrInvalidPriority = errors.New("invalid priority")

	ErrForbidden = errors.New("forbidden")
)
