package csrf

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/gob"
	"encoding/hex"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/khanghh/signup/internal/middlewares/sessions"
	"github.com/khanghh/signup/params"
)

const (
	CSRFTokenSessionKey = "_csrf"
	CSRFTokenFormField  = "_csrf"
	CSRFTokenHeader     = "X-CSRF-Token"
)

type CSRF struct {
	Token     string
	ExpiresAt time.Time
}

func init() {
	gob.Register(CSRF{})
}

func randomToken() string {
	const tokenLength = 32
	b := make([]byte, tokenLength)
	if _, err := rand.Read(b); err != nil {
		panic("failed to generate CSRF token: " + err.Error())
	}
	return hex.EncodeToString(b)
}

func generateCSRF() CSRF {
	return CSRF{
		Token:     randomToken(),
		ExpiresAt: time.Now().Add(params.CSRFTokenExpiration),
	}
}

// Token returns the CSRF token of the current session, issuing one if
// needed.
func Token(ctx *fiber.Ctx) string {
	csrf, ok := sessions.Value(ctx, CSRFTokenSessionKey).(CSRF)
	if !ok || time.Now().After(csrf.ExpiresAt) {
		csrf = generateCSRF()
		sessions.SetValue(ctx, CSRFTokenSessionKey, csrf)
	}
	return csrf.Token
}

func Verify(ctx *fiber.Ctx) bool {
	token := ctx.Get(CSRFTokenHeader)
	if token == "" {
		token = ctx.FormValue(CSRFTokenFormField)
	}

	csrf, ok := sessions.Value(ctx, CSRFTokenSessionKey).(CSRF)
	if !ok || token == "" || time.Now().After(csrf.ExpiresAt) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(csrf.Token), []byte(token)) == 1
}

// New rejects unsafe requests that do not carry the session's CSRF token.
// It must run after the session middleware.
func New() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		switch ctx.Method() {
		case fiber.MethodGet, fiber.MethodHead, fiber.MethodOptions:
			return ctx.Next()
		}
		if !Verify(ctx) {
			slog.Debug("CSRF token mismatch", "path", ctx.Path(), "ip", ctx.IP())
			return fiber.ErrForbidden
		}
		return ctx.Next()
	}
}
