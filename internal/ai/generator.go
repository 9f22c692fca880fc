package ai

import "context"

// Generator is the outbound interface to the generative-AI provider. A
// call is one prompt → one plain-text response expected to parse as JSON.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
