// Package notify sends order alerts to the shop staff.
package notify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/phenrril/codstore/internal/domain"
)

// Telegram posts a message per order event to every configured chat.
type Telegram struct {
	token   string
	chatIDs []string
	apiBase string
	client  *http.Client
}

// NewTelegram returns nil when the bot token or chat ids are missing.
// chatIDs is comma-separated.
func NewTelegram(token, chatIDs string) *Telegram {
	var ids []string
	for _, part := range strings.Split(chatIDs, ",") {
		if id := strings.TrimSpace(part); id != "" {
			ids = append(ids, id)
		}
	}
	if token == "" || len(ids) == 0 {
		return nil
	}
	return &Telegram{
		token:   token,
		chatIDs: ids,
		apiBase: "https://api.telegram.org",
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (t *Telegram) OrderCreated(ctx context.Context, o *domain.Order) error {
	return t.send(ctx, orderCreatedText(o))
}

func (t *Telegram) OrderStatusChanged(ctx context.Context, o *domain.Order, prev domain.OrderStatus) error {
	return t.send(ctx, statusChangedText(o, prev))
}

func (t *Telegram) send(ctx context.Context, text string) error {
	apiURL := t.apiBase + "/bot" + t.token + "/sendMessage"
	var lastErr error
	for _, id := range t.chatIDs {
		form := url.Values{}
		form.Set("chat_id", id)
		form.Set("text", text)
		form.Set("disable_web_page_preview", "1")
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, strings.NewReader(form.Encode()))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		resp, err := t.client.Do(req)
		if err != nil {
			lastErr = err
			continue
		}
		func() {
			defer resp.Body.Close()
			if resp.StatusCode >= 300 {
				body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
				lastErr = fmt.Errorf("telegram status %d: %s", resp.StatusCode, string(body))
			}
		}()
	}
	return lastErr
}
