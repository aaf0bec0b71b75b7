// Package llm provides text generation backends for the insight features.
package llm

import "context"

// Generator produces a completion for a prompt. Implementations wrap an
// external model endpoint and are injected into the services that need
// them, so tests can substitute a fake.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeneratorFunc adapts a function to the Generator interface.
type GeneratorFunc func(ctx context.Context, prompt string) (string, error)

func (f GeneratorFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}
