package mail

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/bytebufferpool"
)

var ErrNotInitialized = errors.New("mail templates not initialized")

var globalVars fiber.Map

var htmlEngine fiber.Views

func Initialize(engine fiber.Views, gVars fiber.Map) {
	htmlEngine = engine
	globalVars = gVars
}

func renderHTML(templateName string, vars fiber.Map) (string, error) {
	if htmlEngine == nil {
		return "", ErrNotInitialized
	}
	for key, val := range globalVars {
		if _, ok := vars[key]; !ok {
			vars[key] = val
		}
	}
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	err := htmlEngine.Render(buf, templateName, vars)
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
