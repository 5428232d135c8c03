package recommend

import (
	"math"

	"sp500-advisor/internal/types"
)

// Suggest computes deterministic fallback stop-loss and take-profit levels
// from the current price and the recommended action. A nil price or a HOLD
// yields no levels. Pure function; used only when the model's own levels
// are unusable.
func Suggest(price *float64, action string) (stopLoss, takeProfit *float64) {
	if price == nil {
		return nil, nil
	}
	switch action {
	case types.ActionBuy:
		return round2(*price * 0.99), round2(*price * 1.02)
	case types.ActionSell:
		return round2(*price * 1.01), round2(*price * 0.98)
	default:
		return nil, nil
	}
}

func round2(v float64) *float64 {
	r := math.Round(v*100) / 100
	return &r
}
