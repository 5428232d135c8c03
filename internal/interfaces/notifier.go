package interfaces

import "context"

// Notifier delivers a finished job result to its audience. Delivery
// failures are logged by the runner, never raised.
type Notifier interface {
	Notify(ctx context.Context, subject, body string) error
}
