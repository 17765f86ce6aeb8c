package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// SearchClient defines the interface for the shopping search endpoint.
// A transport or decode failure is an error; a successful call that matched
// nothing returns an empty slice.
type SearchClient interface {
	ShoppingSearch(ctx context.Context, query string) ([]ShoppingItem, error)
}

// ShoppingItem is a raw result from the search engine before vendor filtering
// and mapping into ProductRecord. Optional fields may be empty.
type ShoppingItem struct {
	Title    string  `json:"title"`
	Source   string  `json:"source"`
	Link     string  `json:"link"`
	Price    string  `json:"price"`
	Delivery string  `json:"delivery"`
	ImageURL string  `json:"imageUrl"`
	Rating   float64 `json:"rating"`
}

// Summarizer defines the interface for the LLM completion endpoint, consumed
// as "given a transcript, return a prose summary".
type Summarizer interface {
	SummarizeTranscript(ctx context.Context, transcript string) (string, error)
}

// ChatGateway defines the narrow interface to the chat platform: message
// history retrieval and reply delivery. Connection management and command
// registration live outside this backend.
type ChatGateway interface {
	ChannelMessages(ctx context.Context, channelID string, since time.Time, limit int) ([]Message, error)
}
