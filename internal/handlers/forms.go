package handlers

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/khanghh/signup/internal/form"
	"github.com/khanghh/signup/internal/middlewares/sessions"
	"github.com/khanghh/signup/internal/throttle"
)

// errSubmitRejected aborts a submission before the auth backend is called.
type errSubmitRejected struct {
	msg string
}

func (e *errSubmitRejected) Error() string {
	return e.msg
}

type fieldValidationResponse struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

var secretFields = []form.Field{form.FieldPassword, form.FieldConfirmPassword}

func loadFormState(ctx *fiber.Ctx, kind form.Kind, touchOnMount bool) *form.State {
	if snap, ok := sessions.GetForm(ctx, kind); ok {
		state, err := form.Restore(snap)
		if err == nil {
			return state
		}
		slog.Debug("Discarding invalid form snapshot", "kind", kind, "error", err)
	}
	return form.NewState(kind, touchOnMount)
}

// saveFormState keeps the form in the session without its passwords. The
// browser posts every value again on each blur and submit.
func saveFormState(ctx *fiber.Ctx, state *form.State) {
	snap := state.Snapshot()
	for _, field := range secretFields {
		if _, ok := snap.Values[field]; ok {
			snap.Values[field] = ""
		}
	}
	sessions.SetForm(ctx, snap)
}

func bindFormValues(ctx *fiber.Ctx, state *form.State) {
	for _, field := range state.Kind().Fields() {
		state.SetField(field, ctx.FormValue(string(field)))
	}
}

// validateField handles a blur event posted by the browser.
func validateField(ctx *fiber.Ctx, validator *form.Validator, kind form.Kind, touchOnMount bool) error {
	field, err := kind.ParseField(ctx.FormValue("field"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	state := loadFormState(ctx, kind, touchOnMount)
	bindFormValues(ctx, state)
	msg := state.Blur(field, validator)
	saveFormState(ctx, state)
	return ctx.JSON(fieldValidationResponse{Field: string(field), Error: msg})
}

func limiterKey(ctx *fiber.Ctx, action string) string {
	return action + ":" + ctx.IP()
}

// guardSubmit wraps submit with the checks that only make sense once the
// form is valid: the per-client limiter and the captcha.
func guardSubmit(ctx *fiber.Ctx, action string, limiter SubmitLimiter, captcha CaptchaVerifier, submit form.SubmitFunc) form.SubmitFunc {
	return func(c context.Context, values form.Values) error {
		if limiter != nil {
			err := limiter.Allow(c, limiterKey(ctx, action))
			if errors.Is(err, throttle.ErrTooManyAttempts) {
				return &errSubmitRejected{MsgTooManyAttempts}
			} else if err != nil {
				return err
			}
		}
		if captcha != nil {
			if err := captcha.Verify(ctx); err != nil {
				return &errSubmitRejected{MsgInvalidCaptcha}
			}
		}
		return submit(c, values)
	}
}
