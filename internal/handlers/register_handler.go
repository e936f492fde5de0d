package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/khanghh/signup/internal/auth"
	"github.com/khanghh/signup/internal/form"
	"github.com/khanghh/signup/internal/middlewares/csrf"
	"github.com/khanghh/signup/internal/middlewares/sessions"
	"github.com/khanghh/signup/internal/render"
	"github.com/khanghh/signup/internal/users"
)

type RegisterHandler struct {
	authService    AuthService
	validator      *form.Validator
	limiter        SubmitLimiter
	captcha        CaptchaVerifier
	captchaSiteKey string
	touchOnMount   bool
}

type RegisterHandlerOptions struct {
	Limiter        SubmitLimiter
	Captcha        CaptchaVerifier
	CaptchaSiteKey string
	TouchOnMount   bool
}

func NewRegisterHandler(authService AuthService, validator *form.Validator, opts RegisterHandlerOptions) *RegisterHandler {
	return &RegisterHandler{
		authService:    authService,
		validator:      validator,
		limiter:        opts.Limiter,
		captcha:        opts.Captcha,
		captchaSiteKey: opts.CaptchaSiteKey,
		touchOnMount:   opts.TouchOnMount,
	}
}

func (h *RegisterHandler) renderRegister(ctx *fiber.Ctx, state *form.State, submission auth.SubmissionState) error {
	return render.RenderRegister(ctx, render.RegisterPageData{
		CSRFToken:      csrf.Token(ctx),
		Name:           state.Value(form.FieldName),
		Email:          state.Value(form.FieldEmail),
		FormErrors:     state.Errors().Messages(),
		ErrorMsg:       submission.ErrorMsg,
		CaptchaSiteKey: h.captchaSiteKey,
	})
}

func (h *RegisterHandler) GetRegister(ctx *fiber.Ctx) error {
	session := sessions.Get(ctx)
	if session.IsLoggedIn() {
		return ctx.Redirect("/")
	}

	state := loadFormState(ctx, form.KindRegister, h.touchOnMount)
	saveFormState(ctx, state)
	return h.renderRegister(ctx, state, auth.SubmissionState{})
}

func (h *RegisterHandler) PostValidateField(ctx *fiber.Ctx) error {
	return validateField(ctx, h.validator, form.KindRegister, h.touchOnMount)
}

func (h *RegisterHandler) PostRegister(ctx *fiber.Ctx) error {
	session := sessions.Get(ctx)
	if session.IsLoggedIn() {
		return ctx.Redirect("/")
	}

	state := loadFormState(ctx, form.KindRegister, h.touchOnMount)
	bindFormValues(ctx, state)

	registration := h.authService.NewRegistration(auth.SubmissionState{})
	gate := form.NewGate(h.validator, guardSubmit(ctx, "register", h.limiter, h.captcha, registration.Register))
	result, err := gate.Submit(ctx.Context(), state)

	submission := registration.State()
	var rejected *errSubmitRejected
	switch {
	case errors.As(err, &rejected):
		submission.ErrorMsg = rejected.msg
	case errors.Is(err, users.ErrEmailRegistered):
		slog.Debug("Registration rejected", "email", state.Value(form.FieldEmail), "error", err)
	case err != nil:
		slog.Error("Failed to register user", "email", state.Value(form.FieldEmail), "error", err)
	}

	if !result.Submitted || err != nil {
		saveFormState(ctx, state)
		return h.renderRegister(ctx, state, submission)
	}

	sessions.DeleteForm(ctx, form.KindRegister)
	pending := registration.Pending()
	slog.Info("User registered, waiting for email verification", "email", pending.Email)
	return render.RenderRegisterPending(ctx, render.RegisterPendingPageData{Email: pending.Email})
}

func (h *RegisterHandler) GetVerifyEmail(ctx *fiber.Ctx) error {
	email := ctx.Query("email")
	token := ctx.Query("token")
	if email == "" || token == "" {
		return fiber.ErrBadRequest
	}

	user, msg, err := h.authService.VerifyEmail(ctx.Context(), email, token)
	if err != nil {
		slog.Debug("Email verification failed", "email", email, "error", err)
		return render.RenderLogin(ctx, render.LoginPageData{
			CSRFToken: csrf.Token(ctx),
			Email:     email,
			ErrorMsg:  msg,
		})
	}

	if err := loginUser(ctx, user.ID); err != nil {
		return err
	}
	slog.Info("User email verified", "userID", user.ID, "email", user.Email)
	return ctx.Redirect("/")
}
