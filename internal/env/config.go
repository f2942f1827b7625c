package env

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"

	"portfolio/internal/contact"
)

// EmailJS holds the contact form's EmailJS identifiers.
type EmailJS struct {
	ServiceID  string `env:"EMAILJS_SERVICE_ID"`
	TemplateID string `env:"EMAILJS_TEMPLATE_ID"`
	PublicKey  string `env:"EMAILJS_PUBLIC_KEY"`
	PrivateKey string `env:"EMAILJS_PRIVATE_KEY"`
	BaseURL    string `env:"EMAILJS_BASE_URL,default=https://api.emailjs.com"`
}

// Settings are the process settings taken from the environment (after Load has read .env).
type Settings struct {
	EmailJS    *EmailJS
	SiteConfig string `env:"PORTFOLIO_SITE_CONFIG,default=config/site.yaml"`
	LogLevel   string `env:"PORTFOLIO_LOG_LEVEL,default=info"`
}

// Process reads Settings from the process environment.
func Process(ctx context.Context) (*Settings, error) {
	return process(ctx, envconfig.OsLookuper())
}

// ProcessMap reads Settings from m instead of the environment.
func ProcessMap(ctx context.Context, m map[string]string) (*Settings, error) {
	return process(ctx, envconfig.MapLookuper(m))
}

func process(ctx context.Context, l envconfig.Lookuper) (*Settings, error) {
	var s Settings
	if err := envconfig.ProcessWith(ctx, &s, l); err != nil {
		return nil, fmt.Errorf("env: %w", err)
	}
	return &s, nil
}

// Configured reports whether every id needed to send mail is present.
func (e *EmailJS) Configured() bool {
	return e != nil && e.ServiceID != "" && e.TemplateID != "" && e.PublicKey != ""
}

// Contact converts the settings into the EmailJS client config.
func (e *EmailJS) Contact() contact.EmailJSConfig {
	return contact.EmailJSConfig{
		ServiceID:  e.ServiceID,
		TemplateID: e.TemplateID,
		PublicKey:  e.PublicKey,
		PrivateKey: e.PrivateKey,
		BaseURL:    e.BaseURL,
	}
}
