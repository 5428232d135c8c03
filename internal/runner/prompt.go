package runner

import (
	"fmt"
	"strings"
)

// BuildPrompt embeds the headlines and current price into the advisory
// prompt. The wording asks for exactly the fields the parser extracts.
func BuildPrompt(headlines []string, price *float64) string {
	var sb strings.Builder

	sb.WriteString("You are advising a trader who trades the S&P 500 index with leverage. ")
	sb.WriteString("Your recommendations must be conservative and always include a stop loss and take profit, ")
	sb.WriteString("based on the strength of the news and current market conditions. ")
	sb.WriteString("Given these news headlines about the S&P 500, should the trader buy, sell, or hold? ")
	sb.WriteString("Reply with one of: BUY, SELL, HOLD. Then give a one-sentence reason. ")
	sb.WriteString("Then suggest a stop loss and take profit (as price levels or percentages). ")

	if price != nil {
		fmt.Fprintf(&sb, "Current S&P 500 price: %.2f. ", *price)
	} else {
		sb.WriteString("Current S&P 500 price: unavailable. ")
	}

	sb.WriteString("Headlines: ")
	for i, h := range headlines {
		if i > 0 {
			sb.WriteString("; ")
		}
		sb.WriteString(h)
	}

	return sb.String()
}
