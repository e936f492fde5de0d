package handlers

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/khanghh/signup/internal/auth"
	"github.com/khanghh/signup/internal/form"
	"github.com/khanghh/signup/internal/middlewares/csrf"
	"github.com/khanghh/signup/internal/middlewares/sessions"
	"github.com/khanghh/signup/internal/render"
	"github.com/khanghh/signup/internal/users"
)

type LoginHandler struct {
	authService  AuthService
	validator    *form.Validator
	limiter      SubmitLimiter
	touchOnMount bool
}

func NewLoginHandler(authService AuthService, validator *form.Validator, limiter SubmitLimiter, touchOnMount bool) *LoginHandler {
	return &LoginHandler{
		authService:  authService,
		validator:    validator,
		limiter:      limiter,
		touchOnMount: touchOnMount,
	}
}

func loginUser(ctx *fiber.Ctx, userID uint) error {
	return sessions.Reset(ctx, sessions.SessionData{
		IP:        ctx.IP(),
		UserID:    userID,
		LoginTime: time.Now(),
	})
}

func (h *LoginHandler) renderLogin(ctx *fiber.Ctx, state *form.State, submission auth.SubmissionState, infoMsg string) error {
	return render.RenderLogin(ctx, render.LoginPageData{
		CSRFToken:  csrf.Token(ctx),
		Email:      state.Value(form.FieldEmail),
		FormErrors: state.Errors().Messages(),
		ErrorMsg:   submission.ErrorMsg,
		InfoMsg:    infoMsg,
	})
}

func (h *LoginHandler) GetLogin(ctx *fiber.Ctx) error {
	session := sessions.Get(ctx)
	if session.IsLoggedIn() {
		return ctx.Redirect("/")
	}

	var infoMsg string
	if ctx.QueryBool("signed_out") {
		infoMsg = MsgSignedOut
	}
	state := loadFormState(ctx, form.KindLogin, h.touchOnMount)
	return h.renderLogin(ctx, state, auth.SubmissionState{}, infoMsg)
}

func (h *LoginHandler) PostValidateField(ctx *fiber.Ctx) error {
	return validateField(ctx, h.validator, form.KindLogin, h.touchOnMount)
}

func (h *LoginHandler) PostLogin(ctx *fiber.Ctx) error {
	session := sessions.Get(ctx)
	if session.IsLoggedIn() {
		return ctx.Redirect("/")
	}

	state := loadFormState(ctx, form.KindLogin, h.touchOnMount)
	bindFormValues(ctx, state)

	login := h.authService.NewLogin(auth.SubmissionState{})
	gate := form.NewGate(h.validator, guardSubmit(ctx, "login", h.limiter, nil, login.Login))
	result, err := gate.Submit(ctx.Context(), state)

	submission := login.State()
	var rejected *errSubmitRejected
	switch {
	case errors.As(err, &rejected):
		submission.ErrorMsg = rejected.msg
	case errors.Is(err, users.ErrInvalidCredentials), errors.Is(err, users.ErrUserDisabled):
		slog.Debug("Login rejected", "email", state.Value(form.FieldEmail), "error", err)
	case err != nil:
		slog.Error("Failed to authenticate user", "email", state.Value(form.FieldEmail), "error", err)
	}

	if !result.Submitted || err != nil {
		saveFormState(ctx, state)
		return h.renderLogin(ctx, state, submission, "")
	}

	sessions.DeleteForm(ctx, form.KindLogin)
	if h.limiter != nil {
		if err := h.limiter.Reset(ctx.Context(), limiterKey(ctx, "login")); err != nil {
			slog.Error("Failed to reset login attempts", "ip", ctx.IP(), "error", err)
		}
	}
	if err := loginUser(ctx, login.User().ID); err != nil {
		return err
	}
	return ctx.Redirect("/")
}

func (h *LoginHandler) PostLogout(ctx *fiber.Ctx) error {
	if err := sessions.Destroy(ctx); err != nil {
		return err
	}
	return redirect(ctx, "/login", fiber.Map{"signed_out": true})
}
