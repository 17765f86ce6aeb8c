package domain

import "time"

// Message is a single chat message retrieved from the gateway, ordered
// chronologically by the caller.
type Message struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Summary is the result of summarizing a channel's recent conversation.
type Summary struct {
	Text         string `json:"text"`
	MessageCount int    `json:"messageCount"`
}
