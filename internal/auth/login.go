package auth

import (
	"context"
	"errors"
	"sync"

	"github.com/khanghh/signup/internal/form"
	"github.com/khanghh/signup/internal/users"
	"github.com/khanghh/signup/model"
)

// Login authenticates the user of one login form.
type Login struct {
	svc *AuthService

	mu    sync.Mutex
	state SubmissionState
	user  *model.User
}

func (l *Login) State() SubmissionState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

func (l *Login) User() *model.User {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.user
}

func loginErrorMessage(err error) string {
	switch {
	case errors.Is(err, users.ErrInvalidCredentials):
		return MsgInvalidCredentials
	case errors.Is(err, users.ErrUserDisabled):
		return MsgUserDisabled
	default:
		return MsgInternalError
	}
}

func (l *Login) Login(ctx context.Context, values form.Values) error {
	l.mu.Lock()
	l.state = SubmissionState{IsSubmitting: true}
	l.mu.Unlock()

	user, err := l.svc.userService.Authenticate(ctx, values[form.FieldEmail], values[form.FieldPassword])

	l.mu.Lock()
	defer l.mu.Unlock()
	if err != nil {
		l.state = SubmissionState{ErrorMsg: loginErrorMessage(err)}
		l.user = nil
		return err
	}
	l.state = SubmissionState{}
	l.user = user
	return nil
}
