package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

type Email struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
}

type EmailSender interface {
	Send(ctx context.Context, email Email) error
}

// HTTPMailer delivers mail through a transactional mail HTTP API.
type HTTPMailer struct {
	apiURL     string
	apiKey     string
	httpClient *http.Client
}

func NewHTTPMailer(apiURL, apiKey string) (*HTTPMailer, error) {
	if apiURL == "" {
		return nil, fmt.Errorf("mail API URL must be set")
	}

	return &HTTPMailer{
		apiURL: apiURL,
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

func (m *HTTPMailer) Send(ctx context.Context, email Email) error {
	body, err := json.Marshal(email)
	if err != nil {
		return fmt.Errorf("marshal email: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.apiURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build mail request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if m.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+m.apiKey)
	}

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send mail request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("mail API returned %d: %s", resp.StatusCode, respBody)
	}

	return nil
}

// LogSender is the dev fallback when no mail API is configured. It only
// writes the email to the log.
type LogSender struct{}

func (LogSender) Send(ctx context.Context, email Email) error {
	log.Info().
		Str("to", email.To).
		Str("subject", email.Subject).
		Msg("mail API not configured, logging email instead")
	return nil
}
