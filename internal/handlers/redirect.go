package handlers

import (
	"fmt"
	"net/url"

	"github.com/gofiber/fiber/v2"
)

func redirect(ctx *fiber.Ctx, location string, params fiber.Map) error {
	url, err := url.Parse(location)
	if err != nil {
		return err
	}

	query := url.Query()
	for key, value := range params {
		if value != nil && value != "" {
			query.Set(key, fmt.Sprint(value))
		}
	}

	url.RawQuery = query.Encode()
	return ctx.Redirect(url.String())
}
