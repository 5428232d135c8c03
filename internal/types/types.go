package types

// Trading actions recommended by the interpreter.
const (
	ActionBuy  = "BUY"
	ActionSell = "SELL"
	ActionHold = "HOLD"
)

// Recommendation is the structured form of one free-text LLM reply.
// StopLoss and TakeProfit stay opaque strings: the model may answer with a
// price level ("5800.50") or a percentage ("2%"), and nothing downstream
// disambiguates the two.
type Recommendation struct {
	Action     string  `json:"action"`
	Reason     string  `json:"reason"`
	StopLoss   *string `json:"stop_loss"`
	TakeProfit *string `json:"take_profit"`
}

// JobResult is the outcome of a single job run. Built fresh per run and
// never persisted beyond a log line and a notification payload.
type JobResult struct {
	Recommendation
	Price     *float64 `json:"price"`
	Headlines []string `json:"headlines"`
	Error     string   `json:"error,omitempty"`
}
