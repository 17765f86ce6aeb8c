package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/chatlens/bot/internal/domain"
	"golang.org/x/time/rate"
)

// Client is the REST client for the chat platform gateway. It covers only
// what the bot consumes: channel message history. Connection management and
// command registration happen outside this backend.
type Client struct {
	httpClient  *http.Client
	token       string
	baseURL     string
	rateLimiter *rate.Limiter
}

// wireMessage is the gateway's message representation on the wire.
type wireMessage struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	Author    struct {
		Username string `json:"username"`
	} `json:"author"`
}

// NewClient creates a gateway REST client.
func NewClient(token, baseURL string) *Client {
	// Gateway REST endpoints allow 50 requests per second per bot.
	limiter := rate.NewLimiter(rate.Limit(50), 10)

	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		token:       token,
		baseURL:     baseURL,
		rateLimiter: limiter,
	}
}

// ChannelMessages fetches up to limit messages posted to a channel at or after
// since, oldest first. The gateway returns newest-first pages, so results are
// reversed before returning.
func (c *Client) ChannelMessages(ctx context.Context, channelID string, since time.Time, limit int) ([]domain.Message, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	endpoint := fmt.Sprintf("%s/channels/%s/messages", c.baseURL, url.PathEscape(channelID))
	params := url.Values{}
	params.Add("limit", fmt.Sprintf("%d", limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bot "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrGatewayFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		log.Printf("[gateway] history error - status: %d, body: %s", resp.StatusCode, string(body))
		return nil, fmt.Errorf("%w: status %d", domain.ErrGatewayFailure, resp.StatusCode)
	}

	var wire []wireMessage
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrGatewayFailure, err)
	}

	messages := make([]domain.Message, 0, len(wire))
	for i := len(wire) - 1; i >= 0; i-- {
		m := wire[i]
		if m.Timestamp.Before(since) {
			continue
		}
		messages = append(messages, domain.Message{
			ID:        m.ID,
			Author:    m.Author.Username,
			Content:   m.Content,
			Timestamp: m.Timestamp,
		})
	}

	return messages, nil
}
