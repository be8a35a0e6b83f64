package users

import "errors"

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrEmailRegistered = errors.New("email already registered")
	ErrSelfDeletion    = errors.New("cannot delete own account")
)
