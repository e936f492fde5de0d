package config

import (
	"errors"
	"time"

	"github.com/khanghh/signup/params"
	"github.com/spf13/viper"
)

const (
	DefaultAppName          = "Signup"
	DefaultListenAddr       = ":3000"
	DefaultCookieName       = "sid"
	DefaultSessionMaxAge    = 7 * 24 * time.Hour
	DefaultSMTPPort         = 587
	DefaultThrottleAttempts = 5
	DefaultThrottleWindow   = 10 * time.Minute
)

var ErrMissingDsn = errors.New("mysql dsn is required")

type MySQLConfig struct {
	Dsn             string        `yaml:"dsn"`
	MaxIdleConns    int           `yaml:"maxIdleConns"`
	MaxOpenConns    int           `yaml:"maxOpenConns"`
	ConnMaxIdleTime time.Duration `yaml:"connMaxIdleTime"`
	ConnMaxLifetime time.Duration `yaml:"connMaxLifetime"`
}

type SessionConfig struct {
	SessionMaxAge  time.Duration `yaml:"sessionMaxAge"`
	CookieName     string        `yaml:"cookieName"`
	CookieHttpOnly bool          `yaml:"cookieHttpOnly"`
	CookieSecure   bool          `yaml:"cookieSecure"`
}

type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
}

// CaptchaConfig holds the Cloudflare Turnstile keys. Captcha is off when
// SecretKey is empty.
type CaptchaConfig struct {
	SiteKey   string `yaml:"siteKey"`
	SecretKey string `yaml:"secretKey"`
}

type FormConfig struct {
	TouchOnMount      *bool `yaml:"touchOnMount"`
	PasswordMinLength int   `yaml:"passwordMinLength"`
}

type ThrottleConfig struct {
	MaxAttempts int           `yaml:"maxAttempts"`
	Window      time.Duration `yaml:"window"`
}

type Config struct {
	Debug       bool           `yaml:"debug"`
	AppName     string         `yaml:"appName"`
	BaseURL     string         `yaml:"baseURL"`
	ListenAddr  string         `yaml:"listenAddr"`
	TemplateDir string         `yaml:"templateDir"`
	RedisURL    string         `yaml:"redisURL"`
	Session     SessionConfig  `yaml:"session"`
	MySQL       MySQLConfig    `yaml:"mysql"`
	SMTP        SMTPConfig     `yaml:"smtp"`
	Captcha     CaptchaConfig  `yaml:"captcha"`
	Form        FormConfig     `yaml:"form"`
	Throttle    ThrottleConfig `yaml:"throttle"`
}

func (c *Config) Sanitize() error {
	if c.MySQL.Dsn == "" {
		return ErrMissingDsn
	}
	if c.AppName == "" {
		c.AppName = DefaultAppName
	}
	if c.ListenAddr == "" {
		c.ListenAddr = DefaultListenAddr
	}
	if c.BaseURL == "" {
		c.BaseURL = "http://localhost" + c.ListenAddr
	}
	if c.Session.SessionMaxAge == 0 {
		c.Session.SessionMaxAge = DefaultSessionMaxAge
	}
	if c.Session.CookieName == "" {
		c.Session.CookieName = DefaultCookieName
	}
	if c.SMTP.Host != "" && c.SMTP.Port == 0 {
		c.SMTP.Port = DefaultSMTPPort
	}
	if c.Form.TouchOnMount == nil {
		touchOnMount := true
		c.Form.TouchOnMount = &touchOnMount
	}
	if c.Form.PasswordMinLength <= 0 {
		c.Form.PasswordMinLength = params.DefaultPasswordMinLength
	}
	if c.Throttle.MaxAttempts == 0 {
		c.Throttle.MaxAttempts = DefaultThrottleAttempts
	}
	if c.Throttle.Window == 0 {
		c.Throttle.Window = DefaultThrottleWindow
	}
	return nil
}

func LoadConfig(filename string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(filename)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Sanitize(); err != nil {
		return nil, err
	}
	return &config, nil
}
