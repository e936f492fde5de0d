package auth

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/khanghh/signup/internal/mail"
	"github.com/khanghh/signup/internal/users"
	"github.com/khanghh/signup/model"
)

type UserService interface {
	RegisterUser(ctx context.Context, opts users.RegisterUserOptions) (*model.PendingUser, error)
	ApprovePendingUser(ctx context.Context, email string, token string) (*model.User, error)
	Authenticate(ctx context.Context, email string, password string) (*model.User, error)
	CancelPendingUser(ctx context.Context, email string) error
}

// SubmissionState is what the form layer may read about an ongoing or
// finished call to the authentication backend.
type SubmissionState struct {
	IsSubmitting bool
	ErrorMsg     string
}

// AuthService is the authentication backend shared by every form
// instance. Per-form state lives in Registration and Login.
type AuthService struct {
	userService UserService
	mailSender  mail.MailSender
	baseURL     string
}

func (s *AuthService) verificationURL(email string, token string) string {
	query := url.Values{
		"email": {email},
		"token": {token},
	}
	return strings.TrimRight(s.baseURL, "/") + "/register/verify?" + query.Encode()
}

// VerifyEmail turns a pending registration into an account. The returned
// message is meant for display when err is not nil.
func (s *AuthService) VerifyEmail(ctx context.Context, email string, token string) (*model.User, string, error) {
	user, err := s.userService.ApprovePendingUser(ctx, email, token)
	switch {
	case err == nil:
		return user, "", nil
	case errors.Is(err, users.ErrPendingUserNotFound), errors.Is(err, users.ErrInvalidVerificationToken):
		return nil, MsgVerificationFailed, err
	case errors.Is(err, users.ErrEmailRegistered):
		return nil, MsgEmailRegistered, err
	default:
		return nil, MsgInternalError, err
	}
}

func (s *AuthService) NewRegistration(state SubmissionState) *Registration {
	return &Registration{svc: s, state: state}
}

func (s *AuthService) NewLogin(state SubmissionState) *Login {
	return &Login{svc: s, state: state}
}

func NewAuthService(userService UserService, mailSender mail.MailSender, baseURL string) *AuthService {
	return &AuthService{
		userService: userService,
		mailSender:  mailSender,
		baseURL:     baseURL,
	}
}
