// Package bot speaks the Telegram Bot HTTP API directly over net/http (no
// SDK import exists anywhere in the example pack for this) and turns
// incoming chat commands into password.Generate/Verify calls.
package bot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const apiBase = "https://api.telegram.org/bot"

// Client calls the Telegram Bot HTTP API. It holds no other state: replies
// are fire-and-forget from the caller's point of view, matching how the
// teacher's httpapi writes responses without a response cache.
type Client struct {
	token      string
	httpClient *http.Client
}

func NewClient(token string) *Client {
	return &Client{
		token:      token,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) SendMessage(ctx context.Context, chatID int64, text string) error {
	body, err := json.Marshal(sendMessageRequest{ChatID: chatID, Text: text})
	if err != nil {
		return fmt.Errorf("bot: marshal sendMessage: %w", err)
	}

	url := apiBase + c.token + "/sendMessage"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("bot: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("bot: sendMessage: %w", err)
	}
	defer resp.Body.Close()

	var out apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return fmt.Errorf("bot: decode sendMessage response: %w", err)
	}
	if !out.OK {
		return fmt.Errorf("bot: telegram rejected sendMessage: %s", out.Description)
	}
	return nil
}
