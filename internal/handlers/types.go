package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/khanghh/signup/internal/auth"
	"github.com/khanghh/signup/model"
)

type AuthService interface {
	NewRegistration(state auth.SubmissionState) *auth.Registration
	NewLogin(state auth.SubmissionState) *auth.Login
	VerifyEmail(ctx context.Context, email string, token string) (*model.User, string, error)
}

type UserService interface {
	GetUserByID(ctx context.Context, userID uint) (*model.User, error)
}

type CaptchaVerifier interface {
	Verify(ctx *fiber.Ctx) error
}

type SubmitLimiter interface {
	Allow(ctx context.Context, key string) error
	Reset(ctx context.Context, key string) error
}
