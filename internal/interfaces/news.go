package interfaces

import "context"

// NewsSource returns up to limit headline titles, in source order.
// An empty result halts the job run before the interpreter is called.
type NewsSource interface {
	Headlines(ctx context.Context, limit int) ([]string, error)
}
