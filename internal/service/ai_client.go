package service

import (
	"context"
)

// AIClient is the interface for the language-model provider. The chat
// pipeline treats it as a stateless text-completion function; every
// failure mode degrades to deterministic formatter output upstream.
type AIClient interface {
	// Complete sends one system+user prompt pair and returns the reply text.
	Complete(ctx context.Context, system, user string) (string, error)

	// IsEnabled returns whether the client is configured and ready
	IsEnabled() bool
}

// Ensure OpenAIClient implements AIClient
var _ AIClient = (*OpenAIClient)(nil)
