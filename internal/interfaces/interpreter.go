package interfaces

import "context"

// Interpreter sends an advisory prompt to a language model and returns the
// free-text reply.
type Interpreter interface {
	Interpret(ctx context.Context, prompt string) (string, error)
}
