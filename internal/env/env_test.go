package env

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	body := "# comment\n\nPORTFOLIO_TEST_A=plain\nPORTFOLIO_TEST_B=\"quoted value\"\nnot a pair\n"
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PORTFOLIO_TEST_A", "")
	t.Setenv("PORTFOLIO_TEST_B", "")

	if err := Load(path); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := os.Getenv("PORTFOLIO_TEST_A"); got != "plain" {
		t.Errorf("A = %q", got)
	}
	if got := os.Getenv("PORTFOLIO_TEST_B"); got != "quoted value" {
		t.Errorf("B = %q", got)
	}
	if err := Load(filepath.Join(t.TempDir(), "missing")); err != nil {
		t.Errorf("missing file: %v", err)
	}
}

func TestProcessDefaults(t *testing.T) {
	s, err := ProcessMap(context.Background(), map[string]string{})
	if err != nil {
		t.Fatalf("ProcessMap: %v", err)
	}
	if s.SiteConfig != "config/site.yaml" || s.EmailJS.BaseURL != "https://api.emailjs.com" {
		t.Errorf("defaults = %+v / %+v", s, s.EmailJS)
	}
	if s.EmailJS.Configured() {
		t.Error("EmailJS reported configured without ids")
	}
}

func TestProcessEmailJS(t *testing.T) {
	s, err := ProcessMap(context.Background(), map[string]string{
		"EMAILJS_SERVICE_ID":  "service_a",
		"EMAILJS_TEMPLATE_ID": "template_b",
		"EMAILJS_PUBLIC_KEY":  "pk",
		"EMAILJS_BASE_URL":    "http://localhost:9999",
	})
	if err != nil {
		t.Fatalf("ProcessMap: %v", err)
	}
	if !s.EmailJS.Configured() {
		t.Fatal("EmailJS not configured")
	}
	c := s.EmailJS.Contact()
	if c.ServiceID != "service_a" || c.TemplateID != "template_b" || c.BaseURL != "http://localhost:9999" {
		t.Errorf("Contact() = %+v", c)
	}
}
