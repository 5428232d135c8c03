package noop

import "context"

// Interpreter returns a canned HOLD reply. Useful for wiring checks and
// local runs without an API key.
type Interpreter struct{}

func New() *Interpreter { return &Interpreter{} }

func (i *Interpreter) Interpret(ctx context.Context, prompt string) (string, error) {
	return "HOLD\nReason: no live model configured, staying flat.", nil
}
