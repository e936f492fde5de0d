package captcha

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
)

const turnstileVerifyURL = "https://challenges.cloudflare.com/turnstile/v0/siteverify"

type TurnstileVerifier struct {
	SecretKey string
	VerifyURL string
	Timeout   time.Duration
}

type turnstileResponse struct {
	Success     bool     `json:"success"`
	ErrorCodes  []string `json:"error-codes"`
	ChallengeTS string   `json:"challenge_ts"`
	Hostname    string   `json:"hostname"`
	Action      string   `json:"action"`
	Cdata       string   `json:"cdata"`
}

func (v *TurnstileVerifier) doVerify(response string, remoteIP string) (*turnstileResponse, error) {
	payload := fiber.Map{
		"secret":   v.SecretKey,
		"response": response,
	}
	if remoteIP != "" {
		payload["remoteip"] = remoteIP
	}

	var result turnstileResponse
	agent := fiber.Post(v.VerifyURL).Timeout(v.Timeout).JSON(payload)
	code, _, errs := agent.Struct(&result)
	if len(errs) > 0 {
		return nil, fmt.Errorf("turnstile verify request failed: %w", errs[0])
	}
	if code != fiber.StatusOK {
		return nil, fmt.Errorf("turnstile verify bad status: %d", code)
	}
	return &result, nil
}

func (v *TurnstileVerifier) Verify(ctx *fiber.Ctx) error {
	response := ctx.FormValue("cf-turnstile-response")
	if response == "" {
		return ErrInvalidCaptcha
	}
	remoteIP := ctx.Get("CF-Connecting-IP")
	if remoteIP == "" {
		remoteIP = ctx.IP()
	}

	result, err := v.doVerify(response, remoteIP)
	if err != nil {
		slog.Error("Captcha verify error", "error", err)
		return ErrInvalidCaptcha
	}

	if !result.Success {
		slog.Debug("Captcha verify failed", "remoteIP", remoteIP, "reason", result.ErrorCodes)
		return ErrInvalidCaptcha
	}

	return nil
}

func NewTurnstileVerifier(secret string) *TurnstileVerifier {
	return &TurnstileVerifier{
		SecretKey: secret,
		VerifyURL: turnstileVerifyURL,
		Timeout:   5 * time.Second,
	}
}
