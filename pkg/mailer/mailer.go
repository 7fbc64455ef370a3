// Package mailer renders and delivers RSVP confirmation emails through a
// Resend-style transactional email API. Delivery is best effort: callers
// log failures instead of failing the guest's request.
package mailer

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/template/html/v2"

	"github.com/oakvale/wedding-backend/pkg/models"
)

//go:embed templates/*.html
var templatesFS embed.FS

const defaultLocale = "en"

var subjects = map[string]string{
	"en": "We got your RSVP!",
	"pt": "Recebemos a tua confirmação!",
	"fr": "Nous avons bien reçu votre réponse !",
}

var plainBodies = map[string]string{
	"en": "Hi %s,\n\nThank you for your RSVP. We can't wait to celebrate with you!\n\nAna & Miguel",
	"pt": "Olá %s,\n\nObrigado pela tua confirmação. Mal podemos esperar para celebrar contigo!\n\nAna & Miguel",
	"fr": "Bonjour %s,\n\nMerci pour votre réponse. Nous avons hâte de célébrer avec vous !\n\nAna & Miguel",
}

type Options struct {
	APIKey  string
	From    string
	BaseURL string
	Client  *http.Client
}

type Mailer struct {
	apiKey  string
	from    string
	baseURL string
	client  *http.Client
	engine  *html.Engine
}

func New(opts Options) (*Mailer, error) {
	engine := html.NewFileSystem(http.FS(templatesFS), ".html")
	if err := engine.Load(); err != nil {
		return nil, fmt.Errorf("failed to load email templates: %w", err)
	}
	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.resend.com"
	}
	return &Mailer{
		apiKey:  opts.APIKey,
		from:    opts.From,
		baseURL: baseURL,
		client:  client,
		engine:  engine,
	}, nil
}

// Enabled reports whether an API key is configured. A disabled mailer is a
// valid deployment mode, not an error.
func (m *Mailer) Enabled() bool {
	return m.apiKey != ""
}

// SendConfirmation emails the guest an acknowledgement in their locale.
func (m *Mailer) SendConfirmation(rsvp models.RSVP) error {
	if !m.Enabled() {
		return fmt.Errorf("mailer is not configured")
	}

	locale := normalizeLocale(rsvp.Locale)
	htmlBody, err := m.Render(locale, rsvp)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(map[string]any{
		"from":    m.from,
		"to":      []string{rsvp.Email},
		"subject": subjects[locale],
		"html":    htmlBody,
		"text":    fmt.Sprintf(plainBodies[locale], rsvp.Name),
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, m.baseURL+"/emails", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("email delivery failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("email delivery failed: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return nil
}

// Render produces the HTML body for a locale, falling back to English for
// locales the site has no template for.
func (m *Mailer) Render(locale string, rsvp models.RSVP) (string, error) {
	locale = normalizeLocale(locale)
	var buf bytes.Buffer
	err := m.engine.Render(&buf, "templates/confirmation_"+locale, rsvp)
	if err != nil {
		return "", fmt.Errorf("failed to render email template: %w", err)
	}
	return buf.String(), nil
}

func normalizeLocale(locale string) string {
	locale = strings.ToLower(strings.TrimSpace(locale))
	if i := strings.IndexByte(locale, '-'); i > 0 {
		locale = locale[:i]
	}
	if _, ok := subjects[locale]; !ok {
		return defaultLocale
	}
	return locale
}
