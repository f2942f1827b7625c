package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultBaseURL is the EmailJS REST endpoint root.
const DefaultBaseURL = "https://api.emailjs.com"

const sendPath = "/api/v1.0/email/send"

// Message is what the contact form submits.
type Message struct {
	FullName string
	Email    string
	Phone    string
	Message  string
}

// Sender delivers a message. Implementations must honor ctx cancellation.
type Sender interface {
	Send(ctx context.Context, m Message) error
}

// EmailJSConfig identifies the EmailJS account, service and template.
type EmailJSConfig struct {
	ServiceID  string
	TemplateID string
	PublicKey  string
	PrivateKey string // optional access token
	BaseURL    string // empty means DefaultBaseURL
}

// EmailJS sends messages through the EmailJS REST API.
type EmailJS struct {
	cfg    EmailJSConfig
	client *http.Client
}

// NewEmailJS returns a Sender for cfg.
func NewEmailJS(cfg EmailJSConfig) *EmailJS {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &EmailJS{
		cfg:    cfg,
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

type sendRequest struct {
	ServiceID      string         `json:"service_id"`
	TemplateID     string         `json:"template_id"`
	UserID         string         `json:"user_id"`
	AccessToken    string         `json:"accessToken,omitempty"`
	TemplateParams templateParams `json:"template_params"`
}

type templateParams struct {
	FullName string `json:"fullName"`
	Email    string `json:"Email"`
	Phone    string `json:"Phone"`
	Message  string `json:"message"`
}

// Send posts m to the configured template. Any status other than 200 is an error carrying the
// response text.
func (c *EmailJS) Send(ctx context.Context, m Message) error {
	if c.cfg.ServiceID == "" || c.cfg.TemplateID == "" || c.cfg.PublicKey == "" {
		return fmt.Errorf("emailjs: service, template and public key must be set")
	}
	body, err := json.Marshal(sendRequest{
		ServiceID:   c.cfg.ServiceID,
		TemplateID:  c.cfg.TemplateID,
		UserID:      c.cfg.PublicKey,
		AccessToken: c.cfg.PrivateKey,
		TemplateParams: templateParams{
			FullName: m.FullName,
			Email:    m.Email,
			Phone:    m.Phone,
			Message:  m.Message,
		},
	})
	if err != nil {
		return fmt.Errorf("emailjs: encode: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+sendPath, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("emailjs: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("emailjs: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("emailjs: %s: %s", resp.Status, strings.TrimSpace(string(text)))
	}
	return nil
}
