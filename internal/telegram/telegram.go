// Package telegram delivers translated questions as quiz polls to a
// channel through the Bot HTTP API.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gkpulse/bixquiz/internal/logger"
	"github.com/gkpulse/bixquiz/internal/retry"
)

const defaultAPIBase = "https://api.telegram.org"

// Telegram's hard limits for poll fields.
const (
	MaxQuestionLen    = 300
	MaxOptionLen      = 100
	MaxExplanationLen = 200
)

// Poll is one quiz poll ready to send.
type Poll struct {
	Question        string
	Options         []string
	CorrectOptionID int
	Explanation     string
}

type Bot struct {
	token    string
	channel  string
	apiBase  string
	client   *http.Client
	retryCfg retry.RetryConfig
}

func NewBot(token, channel string) *Bot {
	return &Bot{
		token:   token,
		channel: channel,
		apiBase: defaultAPIBase,
		client:  &http.Client{Timeout: 30 * time.Second},
		retryCfg: retry.RetryConfig{
			MaxAttempts: 3,
			Delay:       2 * time.Second,
			Backoff:     true,
		},
	}
}

// SendPoll posts an anonymous quiz poll to the channel, retrying transient
// failures with backoff.
func (b *Bot) SendPoll(ctx context.Context, poll Poll) error {
	err := retry.WithRetry(ctx, b.retryCfg, func() error {
		return b.sendPollOnce(ctx, poll)
	})
	if err != nil {
		return fmt.Errorf("can't send poll: %w", err)
	}
	return nil
}

func (b *Bot) sendPollOnce(ctx context.Context, poll Poll) error {
	url := fmt.Sprintf("%s/bot%s/sendPoll", b.apiBase, b.token)

	payload := map[string]interface{}{
		"chat_id":           b.channel,
		"question":          poll.Question,
		"options":           poll.Options,
		"is_anonymous":      true,
		"type":              "quiz",
		"correct_option_id": poll.CorrectOptionID,
		"explanation":       poll.Explanation,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("error make JSON: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("error build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.client.Do(req)
	if err != nil {
		return fmt.Errorf("error HTTP request: %w", err)
	}
	defer func(Body io.ReadCloser) {
		if err := Body.Close(); err != nil {
			logger.Warn("failed to close response body", "error", err)
		}
	}(resp.Body)

	if resp.StatusCode != 200 {
		return fmt.Errorf("telegram API error: status %d", resp.StatusCode)
	}

	return nil
}

// Truncate cuts text to max runes, appending "..." when something was cut.
// The result is never longer than max.
func Truncate(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max-3]) + "..."
}
