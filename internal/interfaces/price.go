package interfaces

import "context"

// PriceSource returns the last/close price for the configured market index.
// Any failure is swallowed by the runner, which proceeds without a price.
type PriceSource interface {
	LastPrice(ctx context.Context) (float64, error)
}
