package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/gofiber/storage/memory/v2"
	"github.com/gofiber/storage/redis/v3"
	"github.com/khanghh/signup/internal/auth"
	"github.com/khanghh/signup/internal/config"
	"github.com/khanghh/signup/internal/form"
	"github.com/khanghh/signup/internal/handlers"
	"github.com/khanghh/signup/internal/mail"
	"github.com/khanghh/signup/internal/middlewares"
	"github.com/khanghh/signup/internal/middlewares/captcha"
	"github.com/khanghh/signup/internal/middlewares/csrf"
	"github.com/khanghh/signup/internal/middlewares/sessions"
	"github.com/khanghh/signup/internal/render"
	"github.com/khanghh/signup/internal/store"
	"github.com/khanghh/signup/internal/throttle"
	"github.com/khanghh/signup/internal/users"
	"github.com/khanghh/signup/model"
	"github.com/khanghh/signup/params"
	"github.com/urfave/cli/v2"
	"gopkg.in/gomail.v2"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

var (
	app       *cli.App
	gitCommit string
	gitDate   string
)

var (
	configFileFlag = &cli.StringFlag{
		Name:  "config",
		Usage: "YAML config file",
		Value: "config.yaml",
	}
	debugFlag = &cli.BoolFlag{
		Name:  "debug",
		Usage: "Enable debug logging",
	}
)

func init() {
	app = cli.NewApp()
	app.EnableBashCompletion = true
	app.Usage = "Account registration service"
	app.Flags = []cli.Flag{
		configFileFlag,
		debugFlag,
	}
	app.Commands = []*cli.Command{
		{
			Name: "version",
			Action: func(ctx *cli.Context) error {
				fmt.Println(params.VersionWithCommit(gitCommit, gitDate))
				return nil
			},
		},
	}
	app.Action = run
}

func initLogger(debug bool) {
	logLevel := slog.LevelInfo
	if debug {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	slog.SetDefault(slog.New(handler))
}

func mustInitDatabase(dbConfig config.MySQLConfig) *gorm.DB {
	db, err := gorm.Open(mysql.Open(dbConfig.Dsn), &gorm.Config{})
	if err != nil {
		slog.Error("Could not connect to database", "error", err)
		os.Exit(1)
	}

	sqlDB, err := db.DB()
	if err != nil {
		slog.Error("Could not get database handle", "error", err)
		os.Exit(1)
	}
	sqlDB.SetMaxIdleConns(dbConfig.MaxIdleConns)
	sqlDB.SetMaxOpenConns(dbConfig.MaxOpenConns)
	sqlDB.SetConnMaxIdleTime(dbConfig.ConnMaxIdleTime)
	sqlDB.SetConnMaxLifetime(dbConfig.ConnMaxLifetime)

	if err := db.AutoMigrate(model.Models...); err != nil {
		slog.Error("Could not migrate database", "error", err)
		os.Exit(1)
	}
	return db
}

// initStores picks the backing storage of sessions and submission
// throttling. Both live in redis when it is configured.
func initStores(redisURL string) (fiber.Storage, store.Store[throttle.Attempts]) {
	if redisURL == "" {
		slog.Warn("No redis configured, sessions and throttling are kept in memory")
		return memory.New(), store.NewMemoryStore[throttle.Attempts]()
	}
	redisStorage := redis.New(redis.Config{URL: redisURL})
	sessionStorage := store.NewPrefixedStorage(redisStorage, params.SessionKeyPrefix)
	attemptStore := store.NewRedisStore[throttle.Attempts](redisStorage.Conn(), params.ThrottleKeyPrefix)
	return sessionStorage, attemptStore
}

func initMailSender(smtpConfig config.SMTPConfig) mail.MailSender {
	if smtpConfig.Host == "" {
		slog.Warn("No SMTP server configured, mails are written to the log")
		return &mail.LogMailSender{}
	}
	dialer := gomail.NewDialer(smtpConfig.Host, smtpConfig.Port, smtpConfig.Username, smtpConfig.Password)
	return mail.NewSMTPMailSender(dialer, smtpConfig.From)
}

func run(ctx *cli.Context) error {
	config, err := config.LoadConfig(ctx.String(configFileFlag.Name))
	if err != nil {
		slog.Error("Could not load config file.", "error", err)
		return err
	}
	initLogger(config.Debug || ctx.IsSet(debugFlag.Name))

	globalVars := fiber.Map{
		"siteName": config.AppName,
		"baseURL":  config.BaseURL,
	}
	htmlEngine := render.NewHtmlEngine(config.TemplateDir)
	if err := htmlEngine.Load(); err != nil {
		slog.Error("Could not load templates", "error", err)
		return err
	}
	render.InitValues(globalVars)
	mail.Initialize(htmlEngine, globalVars)

	db := mustInitDatabase(config.MySQL)
	sessionStorage, attemptStore := initStores(config.RedisURL)

	var (
		userRepo        = users.NewUserRepository(db)
		pendingUserRepo = users.NewPendingUserRepository(db)
		userService     = users.NewUserService(userRepo, pendingUserRepo, users.NewTransactor(db))
		authService     = auth.NewAuthService(userService, initMailSender(config.SMTP), config.BaseURL)
		validator       = form.NewValidator(form.Policy{PasswordMinLength: config.Form.PasswordMinLength})
		limiter         = throttle.NewLimiter(attemptStore, config.Throttle.MaxAttempts, config.Throttle.Window)
	)

	var captchaVerifier handlers.CaptchaVerifier
	if config.Captcha.SecretKey != "" {
		captchaVerifier = captcha.NewTurnstileVerifier(config.Captcha.SecretKey)
	}

	var (
		registerHandler = handlers.NewRegisterHandler(authService, validator, handlers.RegisterHandlerOptions{
			Limiter:        limiter,
			Captcha:        captchaVerifier,
			CaptchaSiteKey: config.Captcha.SiteKey,
			TouchOnMount:   *config.Form.TouchOnMount,
		})
		loginHandler = handlers.NewLoginHandler(authService, validator, limiter, *config.Form.TouchOnMount)
		homeHandler  = handlers.NewHomeHandler(userService)
	)

	router := fiber.New(fiber.Config{
		Views:        htmlEngine,
		ErrorHandler: middlewares.ErrorHandler,
		BodyLimit:    params.ServerBodyLimit,
		IdleTimeout:  params.ServerIdleTimeout,
		ReadTimeout:  params.ServerReadTimeout,
		WriteTimeout: params.ServerWriteTimeout,
	})
	sessionStore := session.New(session.Config{
		Storage:        sessionStorage,
		Expiration:     config.Session.SessionMaxAge,
		KeyLookup:      "cookie:" + config.Session.CookieName,
		CookieHTTPOnly: config.Session.CookieHttpOnly,
		CookieSecure:   config.Session.CookieSecure,
		KeyGenerator:   sessions.GenerateSessionID,
	})
	router.Use(sessions.SessionMiddleware(sessionStore))
	router.Use(csrf.New())

	router.Get("/", homeHandler.GetHome)
	router.Get("/register", registerHandler.GetRegister)
	router.Post("/register", registerHandler.PostRegister)
	router.Post("/register/validate", registerHandler.PostValidateField)
	router.Get("/register/verify", registerHandler.GetVerifyEmail)
	router.Get("/login", loginHandler.GetLogin)
	router.Post("/login", loginHandler.PostLogin)
	router.Post("/login/validate", loginHandler.PostValidateField)
	router.Post("/logout", loginHandler.PostLogout)

	slog.Info("Starting signup server", "address", config.ListenAddr, "version", params.VersionWithCommit(gitCommit, gitDate))
	return router.Listen(config.ListenAddr)
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
