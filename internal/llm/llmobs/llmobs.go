// Package llmobs wraps an Interpreter with logging and tracing.
package llmobs

import (
	"context"

	"sp500-advisor/internal/interfaces"
	"sp500-advisor/internal/logger"
	"sp500-advisor/internal/trace"
)

type observableInterpreter struct {
	llm interfaces.Interpreter
}

var _ interfaces.Interpreter = (*observableInterpreter)(nil)

// Wrap adds observability middleware around an interpreter.
func Wrap(llm interfaces.Interpreter) interfaces.Interpreter {
	return &observableInterpreter{llm: llm}
}

func (oi *observableInterpreter) Interpret(ctx context.Context, prompt string) (string, error) {
	ctx, span := trace.StartSpan(ctx, "llm.Interpret")
	defer span.End()

	logger.DebugSkip(ctx, 1, "Requesting interpretation", "prompt_len", len(prompt))

	reply, err := oi.llm.Interpret(ctx, prompt)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Interpretation failed", err)
		return "", err
	}

	logger.InfoSkip(ctx, 1, "Interpretation received", "reply_len", len(reply))
	return reply, nil
}
