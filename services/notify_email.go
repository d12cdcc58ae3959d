package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/http"
	"time"

	"github.com/rohityadav-alpha/rohit-portfolio/config"
	"github.com/rohityadav-alpha/rohit-portfolio/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const resendEndpoint = "https://api.resend.com/emails"

// ResendEmailRequest represents the request payload for the Resend API
type ResendEmailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Html    string   `json:"html,omitempty"`
	Text    string   `json:"text,omitempty"`
}

// ResendEmailResponse represents the response from the Resend API
type ResendEmailResponse struct {
	ID string `json:"id"`
}

// ResendErrorResponse represents an error response from the Resend API
type ResendErrorResponse struct {
	Message string `json:"message"`
}

// ContactNotifier emails the site owner when a visitor submits a contact
// message, via the Resend HTTP API.
//
// Configuration (env):
//   - RESEND_API_KEY: Resend API key; notifications are skipped when unset
//   - RESEND_FROM_EMAIL: sender address, e.g. "Portfolio <[email protected]>"
//   - CONTACT_NOTIFY_EMAIL: recipient address for new-message notifications
type ContactNotifier struct {
	apiKey     string
	fromEmail  string
	notifyTo   string
	httpClient *http.Client
	logger     zerolog.Logger
}

func NewContactNotifier(cfg map[string]string) *ContactNotifier {
	return &ContactNotifier{
		apiKey:     config.GetString(cfg, "RESEND_API_KEY", ""),
		fromEmail:  config.GetString(cfg, "RESEND_FROM_EMAIL", "Portfolio <onboarding@resend.dev>"),
		notifyTo:   config.GetString(cfg, "CONTACT_NOTIFY_EMAIL", ""),
		httpClient: &http.Client{Timeout: 15 * time.Second},
		logger:     log.With().Str("service", "contactNotifier").Logger(),
	}
}

// NotifyNewMessage sends the owner notification for msg. When the notifier is
// not configured it logs and returns nil, so contact submission never fails on
// email trouble.
func (n *ContactNotifier) NotifyNewMessage(msg models.ContactMessage) error {
	if n.apiKey == "" || n.notifyTo == "" {
		n.logger.Debug().Msg("Resend not configured, skipping contact notification")
		return nil
	}

	subject := fmt.Sprintf("New contact message from %s", msg.Name)
	body := fmt.Sprintf(
		"<p><strong>From:</strong> %s (%s)</p><p><strong>Received:</strong> %s</p><p>%s</p>",
		html.EscapeString(msg.Name),
		html.EscapeString(msg.Email),
		msg.CreatedAt.Format(time.RFC1123),
		html.EscapeString(msg.Message),
	)

	return n.send(subject, body, []string{n.notifyTo})
}

// send delivers one email through the Resend API.
func (n *ContactNotifier) send(subject, htmlBody string, recipients []string) error {
	if len(recipients) == 0 {
		return fmt.Errorf("at least one recipient is required")
	}

	payload, err := json.Marshal(ResendEmailRequest{
		From:    n.fromEmail,
		To:      recipients,
		Subject: subject,
		Html:    htmlBody,
	})
	if err != nil {
		return fmt.Errorf("marshal resend request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, resendEndpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create resend request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+n.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send email via resend: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read resend response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var resendErr ResendErrorResponse
		if err := json.Unmarshal(respBody, &resendErr); err == nil && resendErr.Message != "" {
			return fmt.Errorf("resend API error (status %d): %s", resp.StatusCode, resendErr.Message)
		}
		return fmt.Errorf("resend API returned status %d", resp.StatusCode)
	}

	var resendResp ResendEmailResponse
	if err := json.Unmarshal(respBody, &resendResp); err != nil {
		n.logger.Warn().Err(err).Msg("Email sent but response could not be parsed")
		return nil
	}

	n.logger.Info().Str("emailID", resendResp.ID).Msg("Contact notification sent")
	return nil
}
