package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/khanghh/signup/internal/middlewares/csrf"
	"github.com/khanghh/signup/internal/middlewares/sessions"
	"github.com/khanghh/signup/internal/render"
	"github.com/khanghh/signup/internal/users"
)

type HomeHandler struct {
	userService UserService
}

func NewHomeHandler(userService UserService) *HomeHandler {
	return &HomeHandler{userService: userService}
}

func (h *HomeHandler) GetHome(ctx *fiber.Ctx) error {
	session := sessions.Get(ctx)
	if !session.IsLoggedIn() {
		return ctx.Redirect("/login")
	}

	user, err := h.userService.GetUserByID(ctx.Context(), session.UserID)
	if errors.Is(err, users.ErrUserNotFound) {
		if err := sessions.Destroy(ctx); err != nil {
			return err
		}
		return ctx.Redirect("/login")
	} else if err != nil {
		return err
	}

	return render.RenderHomePage(ctx, render.HomePageData{
		CSRFToken: csrf.Token(ctx),
		Name:      user.Name,
		Email:     user.Email,
	})
}
