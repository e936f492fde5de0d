package render

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
)

//go:embed templates
var templateFS embed.FS

var globalVars fiber.Map

func InitValues(data fiber.Map) {
	globalVars = data
}

func NewHtmlEngine(templateDir string) *html.Engine {
	if templateDir != "" {
		return html.NewFileSystem(http.Dir(templateDir), ".html")
	}
	renderFS, _ := fs.Sub(templateFS, "templates")
	return html.NewFileSystem(http.FS(renderFS), ".html")
}

func RenderRegister(ctx *fiber.Ctx, data RegisterPageData) error {
	return ctx.Render("register", fiber.Map{
		"siteName":             globalVars["siteName"],
		"csrfToken":            data.CSRFToken,
		"name":                 data.Name,
		"email":                data.Email,
		"nameError":            data.FormErrors["name"],
		"emailError":           data.FormErrors["email"],
		"passwordError":        data.FormErrors["password"],
		"confirmPasswordError": data.FormErrors["confirmPassword"],
		"errorMsg":             data.ErrorMsg,
		"captchaSiteKey":       data.CaptchaSiteKey,
	})
}

func RenderRegisterPending(ctx *fiber.Ctx, data RegisterPendingPageData) error {
	return ctx.Render("register-pending", fiber.Map{
		"siteName": globalVars["siteName"],
		"email":    data.Email,
	})
}

func RenderLogin(ctx *fiber.Ctx, data LoginPageData) error {
	return ctx.Render("login", fiber.Map{
		"siteName":      globalVars["siteName"],
		"csrfToken":     data.CSRFToken,
		"email":         data.Email,
		"emailError":    data.FormErrors["email"],
		"passwordError": data.FormErrors["password"],
		"errorMsg":      data.ErrorMsg,
		"infoMsg":       data.InfoMsg,
	})
}

func RenderHomePage(ctx *fiber.Ctx, data HomePageData) error {
	return ctx.Render("home", fiber.Map{
		"siteName":  globalVars["siteName"],
		"csrfToken": data.CSRFToken,
		"name":      data.Name,
		"email":     data.Email,
	})
}

func RenderBadRequestError(ctx *fiber.Ctx) error {
	return ctx.Render("bad-request", fiber.Map{
		"siteName": globalVars["siteName"],
	})
}

func RenderForbiddenError(ctx *fiber.Ctx) error {
	return ctx.Render("forbidden", fiber.Map{
		"siteName": globalVars["siteName"],
	})
}

func RenderNotFoundError(ctx *fiber.Ctx) error {
	return ctx.Render("not-found", fiber.Map{
		"siteName": globalVars["siteName"],
	})
}

func RenderInternalServerError(ctx *fiber.Ctx) error {
	return ctx.Render("internal-error", fiber.Map{
		"siteName": globalVars["siteName"],
	})
}
