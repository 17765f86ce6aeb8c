package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chatlens/bot/internal/domain"
)

// SummaryServiceConfig holds configuration for the summary service
type SummaryServiceConfig struct {
	MaxMessages int
}

// SummaryService fetches a channel's recent messages and delegates to the
// completion endpoint for a prose summary.
type SummaryService struct {
	gateway     domain.ChatGateway
	summarizer  domain.Summarizer
	maxMessages int
	now         func() time.Time
}

// NewSummaryService creates a new summary service with dependencies
func NewSummaryService(
	gateway domain.ChatGateway,
	summarizer domain.Summarizer,
	config SummaryServiceConfig,
) *SummaryService {
	maxMessages := config.MaxMessages
	if maxMessages <= 0 {
		maxMessages = 200
	}

	return &SummaryService{
		gateway:     gateway,
		summarizer:  summarizer,
		maxMessages: maxMessages,
		now:         time.Now,
	}
}

// Summarize fetches messages inside the window and returns the LLM's summary
// together with how many messages fed it. An empty window is ErrNoMessages,
// distinct from a summarizer failure.
func (s *SummaryService) Summarize(ctx context.Context, channelID string, window domain.Window) (*domain.Summary, error) {
	messages, err := s.gateway.ChannelMessages(ctx, channelID, window.Start(s.now()), s.maxMessages)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrGatewayFailure, err)
	}

	transcript, count := BuildTranscript(messages)
	if count == 0 {
		return nil, domain.ErrNoMessages
	}

	text, err := s.summarizer.SummarizeTranscript(ctx, transcript)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSummaryUnavailable, err)
	}

	return &domain.Summary{Text: text, MessageCount: count}, nil
}

// BuildTranscript formats messages as "speaker: text" lines in their given
// order, excluding blank-content messages. Returns the transcript and the
// number of messages it includes.
func BuildTranscript(messages []domain.Message) (string, int) {
	var b strings.Builder
	count := 0

	for _, m := range messages {
		if strings.TrimSpace(m.Content) == "" {
			continue
		}
		if count > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(m.Author)
		b.WriteString(": ")
		b.WriteString(m.Content)
		count++
	}

	return b.String(), count
}
