package users

import (
	"errors"
)

var (
	ErrUserNotFound             = errors.New("user not found")
	ErrUserDisabled             = errors.New("user disabled")
	ErrEmailRegistered          = errors.New("email already registered")
	ErrInvalidCredentials       = errors.New("invalid email or password")
	ErrPendingUserNotFound      = errors.New("pending registration user not found")
	ErrInvalidVerificationToken = errors.New("invalid verification token")
)
