package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/khanghh/signup/internal/form"
	"github.com/khanghh/signup/internal/mail"
	"github.com/khanghh/signup/internal/users"
	"github.com/khanghh/signup/model"
)

// Registration registers the account of one register form.
type Registration struct {
	svc *AuthService

	mu      sync.Mutex
	state   SubmissionState
	pending *model.PendingUser
}

func (r *Registration) State() SubmissionState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Pending returns the registration created by the last successful call.
func (r *Registration) Pending() *model.PendingUser {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pending
}

func (r *Registration) begin() {
	r.mu.Lock()
	r.state = SubmissionState{IsSubmitting: true}
	r.mu.Unlock()
}

func (r *Registration) finish(pending *model.PendingUser, errorMsg string) {
	r.mu.Lock()
	r.state = SubmissionState{ErrorMsg: errorMsg}
	r.pending = pending
	r.mu.Unlock()
}

func registerErrorMessage(err error) string {
	if errors.Is(err, users.ErrEmailRegistered) {
		return MsgEmailRegistered
	}
	return MsgInternalError
}

// Register creates a pending account from values and mails the
// verification link. Failures are recorded as the state error message and
// returned unchanged. A pending account whose mail could not be sent is
// cancelled so the user can retry.
func (r *Registration) Register(ctx context.Context, values form.Values) error {
	r.begin()

	pending, err := r.svc.userService.RegisterUser(ctx, users.RegisterUserOptions{
		Name:     values[form.FieldName],
		Email:    values[form.FieldEmail],
		Password: values[form.FieldPassword],
	})
	if err != nil {
		r.finish(nil, registerErrorMessage(err))
		return err
	}

	link := r.svc.verificationURL(pending.Email, pending.ActiveToken)
	if err := mail.SendVerificationEmail(r.svc.mailSender, pending.Email, pending.Name, link); err != nil {
		if cancelErr := r.svc.userService.CancelPendingUser(ctx, pending.Email); cancelErr != nil {
			slog.Error("Failed to cancel pending user", "email", pending.Email, "error", cancelErr)
		}
		r.finish(nil, MsgVerificationMailErr)
		return fmt.Errorf("send verification email: %w", err)
	}

	r.finish(pending, "")
	return nil
}
