package middlewares

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/khanghh/signup/internal/render"
)

func ErrorHandler(ctx *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
	}
	if code >= fiber.StatusInternalServerError {
		slog.Error("Unhandled error", "code", code, "path", ctx.Path(), "error", err)
	} else {
		slog.Debug("Request failed", "code", code, "path", ctx.Path(), "error", err)
	}

	ctx.Status(code)
	switch code {
	case fiber.StatusBadRequest:
		return render.RenderBadRequestError(ctx)
	case fiber.StatusForbidden:
		return render.RenderForbiddenError(ctx)
	case fiber.StatusNotFound:
		return render.RenderNotFoundError(ctx)
	default:
		return render.RenderInternalServerError(ctx)
	}
}
