package fairy

import (
	"context"
)

// Message is one history entry in a provider-agnostic shape.
type Message struct {
	Role    string // "user", "assistant", "system"
	Content string
}

// Request carries one turn to the model: the new utterance, the user's
// current affection level (it shapes the persona prompt), and the prior
// conversation.
type Request struct {
	UserMessage string
	Level       int
	History     []Message
}

// Response is the model reply plus the conversation analysis the rest
// of the system consumes. The affection delta here is authoritative.
type Response struct {
	Message            string
	IsDeep             bool
	EmotionalIntensity int
	AffectionGained    int
}

// Provider generates fairy replies. Implementations own their timeout
// and never retry.
type Provider interface {
	Respond(ctx context.Context, req Request) (*Response, error)
}
