// Package recommend turns a free-text model reply into a structured
// trading recommendation and provides a fallback stop-loss/take-profit
// calculator.
package recommend

import (
	"regexp"
	"strings"

	"sp500-advisor/internal/types"
)

// Label followed by an optional ":" or "-" separator and a numeric token.
// The token may carry thousands commas and a trailing percent sign; it is
// captured verbatim and kept as a string.
var (
	stopLossRe   = regexp.MustCompile(`(?i)stop\s*loss\s*[:\-]?\s*([0-9][0-9.,]*%?)`)
	takeProfitRe = regexp.MustCompile(`(?i)take\s*profit\s*[:\-]?\s*([0-9][0-9.,]*%?)`)
)

// actionOrder is a fixed check order, not a positional one: a reply that
// mentions both SELL and BUY always resolves to BUY.
var actionOrder = []string{types.ActionBuy, types.ActionSell, types.ActionHold}

// Parse extracts action, reason and suggested levels from one model reply.
// It never fails; malformed input degrades to HOLD with empty fields.
func Parse(text string) types.Recommendation {
	rec := types.Recommendation{Action: types.ActionHold}

	upper := strings.ToUpper(text)
	for _, tok := range actionOrder {
		if strings.Contains(upper, tok) {
			rec.Action = tok
			break
		}
	}

	rec.StopLoss = extractLevel(stopLossRe, text)
	rec.TakeProfit = extractLevel(takeProfitRe, text)
	rec.Reason = extractReason(text)

	return rec
}

func extractLevel(re *regexp.Regexp, text string) *string {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	// Strip thousands separators; "5,800.50" and "5800.50" are the same level.
	v := strings.ReplaceAll(m[1], ",", "")
	return &v
}

// extractReason scans lines top to bottom for one containing "reason" and
// takes everything after its first colon. With no such line, the second
// line of the reply serves as the reason when present.
func extractReason(text string) string {
	lines := strings.Split(text, "\n")

	reason := ""
	for _, line := range lines {
		if strings.Contains(strings.ToLower(line), "reason") {
			if idx := strings.Index(line, ":"); idx >= 0 {
				reason = strings.TrimSpace(line[idx+1:])
			} else {
				reason = strings.TrimSpace(line)
			}
			break
		}
	}
	if reason == "" && len(lines) > 1 {
		reason = strings.TrimSpace(lines[1])
	}
	return reason
}
