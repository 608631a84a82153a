package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"time"

	domainErrors "github.com/phan14/du-an-ss2/internal/domain/errors"
	"github.com/phan14/du-an-ss2/internal/domain/model"
)

// Client delivers formatted alert text to a Telegram chat.
type Client interface {
	Send(ctx context.Context, cfg model.TelegramConfig, text string) error
}

// HTTPClient implements Client via the Bot API sendMessage method.
type HTTPClient struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

type sendMessageRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

type sendMessageResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description,omitempty"`
}

// NewHTTPClient creates a Bot API client with a default timeout.
func NewHTTPClient(baseURL string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse telegram url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("telegram url must be absolute")
	}
	return &HTTPClient{
		baseURL: parsed,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// Send posts an HTML message. Every failure is returned as *errors.DispatchError.
func (c *HTTPClient) Send(ctx context.Context, cfg model.TelegramConfig, text string) error {
	if !cfg.Configured() {
		return &domainErrors.DispatchError{Err: domainErrors.ErrDispatcherNotConfigured}
	}

	body, err := json.Marshal(sendMessageRequest{ChatID: cfg.ChatID, Text: text, ParseMode: "HTML"})
	if err != nil {
		return &domainErrors.DispatchError{Err: err}
	}

	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "bot"+cfg.BotToken, "sendMessage")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return &domainErrors.DispatchError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &domainErrors.DispatchError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &domainErrors.DispatchError{Err: err}
	}

	var data sendMessageResponse
	if err := json.Unmarshal(raw, &data); err != nil {
		c.logger.Error("telegram response is not json", slog.Int("status", resp.StatusCode), slog.String("body", string(raw)))
		return &domainErrors.DispatchError{Err: fmt.Errorf("telegram error: %s", resp.Status)}
	}
	if resp.StatusCode != http.StatusOK || !data.OK {
		c.logger.Error("telegram request failed", slog.Int("status", resp.StatusCode), slog.String("description", data.Description))
		if data.Description == "" {
			data.Description = resp.Status
		}
		return &domainErrors.DispatchError{Err: fmt.Errorf("telegram error: %s", data.Description)}
	}
	return nil
}
