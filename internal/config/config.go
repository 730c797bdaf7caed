package config

import (
	"fmt"
	"strings"
	"time"

	"league-registration/internal/constants"
	"league-registration/internal/domain"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

type Config struct {
	DBPath     string `env:"DB_PATH" envDefault:"league.db"`
	ServerPort string `env:"SERVER_PORT" envDefault:"8080"`
	LogLevel   string `env:"LOG_LEVEL" envDefault:"info"`

	JWTSecret          string   `env:"JWT_SECRET,required,notEmpty"`
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`

	StripeSecretKey  string `env:"STRIPE_SECRET_KEY,required,notEmpty"`
	StripeAPIBaseURL string `env:"STRIPE_API_BASE_URL" envDefault:"https://api.stripe.com"`

	ResendAPIKey     string `env:"RESEND_API_KEY,required,notEmpty"`
	ResendAPIBaseURL string `env:"RESEND_API_BASE_URL" envDefault:"https://api.resend.com"`
	MailFrom         string `env:"MAIL_FROM" envDefault:"OFSL System <noreply@ofsl.ca>"`

	AdminNotifyURL   string        `env:"ADMIN_NOTIFY_URL"`
	AdminNotifyEmail string        `env:"ADMIN_NOTIFY_EMAIL"`
	NotifyTimeout    time.Duration `env:"NOTIFY_TIMEOUT"`
	PublicBaseURL    string        `env:"PUBLIC_BASE_URL" envDefault:"https://ofsl.ca"`

	// Unset payment and notification values fall back to package constants.
	PaymentCurrency       string `env:"PAYMENT_CURRENCY"`
	PaymentMinAmountCents int64  `env:"PAYMENT_MIN_AMOUNT_CENTS"`
	PaymentMaxAmountCents int64  `env:"PAYMENT_MAX_AMOUNT_CENTS"`
}

// Load reads .env when present, then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	c.PaymentCurrency = strings.ToLower(strings.TrimSpace(c.PaymentCurrency))
	if c.PaymentCurrency == "" {
		c.PaymentCurrency = constants.DefaultCurrency
	}
	if c.PaymentMinAmountCents == 0 {
		c.PaymentMinAmountCents = constants.DefaultMinAmountCents
	}
	if c.PaymentMaxAmountCents == 0 {
		c.PaymentMaxAmountCents = constants.DefaultMaxAmountCents
	}
	if c.NotifyTimeout == 0 {
		c.NotifyTimeout = constants.NotifyTimeout
	}
}

func (c *Config) validate() error {
	if c.PaymentMinAmountCents <= 0 {
		return fmt.Errorf("PAYMENT_MIN_AMOUNT_CENTS must be positive, got %d", c.PaymentMinAmountCents)
	}
	if c.PaymentMaxAmountCents < c.PaymentMinAmountCents {
		return fmt.Errorf("PAYMENT_MAX_AMOUNT_CENTS (%d) is below PAYMENT_MIN_AMOUNT_CENTS (%d)",
			c.PaymentMaxAmountCents, c.PaymentMinAmountCents)
	}
	if c.NotifyTimeout <= 0 {
		return fmt.Errorf("NOTIFY_TIMEOUT must be positive, got %s", c.NotifyTimeout)
	}
	return nil
}

func (c *Config) AmountLimits() domain.AmountLimits {
	return domain.AmountLimits{
		Min:      domain.Money(c.PaymentMinAmountCents),
		Max:      domain.Money(c.PaymentMaxAmountCents),
		Currency: c.PaymentCurrency,
	}
}

// LogSummary logs the non-secret parts of the configuration.
func LogSummary(cfg *Config, logger zerolog.Logger) {
	logger.Info().
		Str("db_path", cfg.DBPath).
		Str("server_port", cfg.ServerPort).
		Str("log_level", cfg.LogLevel).
		Str("currency", cfg.PaymentCurrency).
		Bool("admin_notify", cfg.AdminNotifyURL != "").
		Bool("admin_email", cfg.AdminNotifyEmail != "").
		Dur("notify_timeout", cfg.NotifyTimeout).
		Msg("configuration loaded")
}

var Module = fx.Options(
	fx.Provide(Load),
	fx.Invoke(LogSummary),
)
