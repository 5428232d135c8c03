// Package runner composes the external collaborators with the response
// parser and risk suggester into one job run:
//
//	FETCH_NEWS -> (empty -> DONE-WITH-ERROR) -> FETCH_PRICE -> INTERPRET -> PARSE -> NOTIFY -> DONE
//
// Every collaborator call is isolated; no combination of failures escapes
// RunOnce.
package runner

import (
	"fmt"
	"strings"

	"context"

	"sp500-advisor/internal/interfaces"
	"sp500-advisor/internal/logger"
	"sp500-advisor/internal/recommend"
	"sp500-advisor/internal/runlog"
	"sp500-advisor/internal/store"
	"sp500-advisor/internal/trace"
	"sp500-advisor/internal/types"
)

// interpretErrorText is fed to the parser whenever the LLM collaborator
// fails, so a failed interpretation still yields a HOLD-shaped result.
const interpretErrorText = "Error: Could not get AI interpretation."

type Runner struct {
	cfg      *store.Config
	price    interfaces.PriceSource
	news     interfaces.NewsSource
	llm      interfaces.Interpreter
	notifier interfaces.Notifier
}

func New(cfg *store.Config, price interfaces.PriceSource, news interfaces.NewsSource, llm interfaces.Interpreter, notifier interfaces.Notifier) *Runner {
	return &Runner{cfg: cfg, price: price, news: news, llm: llm, notifier: notifier}
}

// RunOnce performs one complete job run. It never returns an error and
// never panics; collaborator failures degrade to documented placeholder
// values.
func (r *Runner) RunOnce(ctx context.Context) types.JobResult {
	ctx, span := trace.StartSpan(ctx, "runner.RunOnce")
	defer span.End()

	headlines := r.fetchHeadlines(ctx)
	if len(headlines) == 0 {
		logger.Warn(ctx, "No news found, skipping run")
		_ = runlog.Event("no news found")
		return types.JobResult{
			Recommendation: types.Recommendation{Action: types.ActionHold},
			Headlines:      []string{},
			Error:          "no news found",
		}
	}

	price := r.fetchPrice(ctx)

	reply := r.interpret(ctx, headlines, price)
	rec := recommend.Parse(reply)

	// The model's own levels win; the deterministic suggester only fills
	// the gaps, and only when a price is known.
	if (rec.StopLoss == nil || rec.TakeProfit == nil) && price != nil {
		sl, tp := recommend.Suggest(price, rec.Action)
		if rec.StopLoss == nil && sl != nil {
			rec.StopLoss = formatLevel(*sl)
		}
		if rec.TakeProfit == nil && tp != nil {
			rec.TakeProfit = formatLevel(*tp)
		}
	}

	result := types.JobResult{
		Recommendation: rec,
		Price:          price,
		Headlines:      headlines,
	}

	logger.Recommendation(ctx, rec.Action, rec.Reason, price)
	_ = runlog.Result(result)

	r.notify(ctx, result)

	return result
}

func (r *Runner) fetchHeadlines(ctx context.Context) []string {
	ctx, span := trace.StartSpan(ctx, "runner.FetchNews")
	defer span.End()

	headlines, err := r.news.Headlines(ctx, r.cfg.News.MaxHeadlines)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to fetch news", err)
		_ = runlog.Event("error fetching news: %v", err)
		return nil
	}
	return headlines
}

func (r *Runner) fetchPrice(ctx context.Context) *float64 {
	ctx, span := trace.StartSpan(ctx, "runner.FetchPrice")
	defer span.End()

	p, err := r.price.LastPrice(ctx)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to fetch price, continuing without", err, "symbol", r.cfg.Symbol)
		_ = runlog.Event("error fetching %s price: %v", r.cfg.Symbol, err)
		return nil
	}
	return &p
}

func (r *Runner) interpret(ctx context.Context, headlines []string, price *float64) string {
	ctx, span := trace.StartSpan(ctx, "runner.Interpret")
	defer span.End()

	reply, err := r.llm.Interpret(ctx, BuildPrompt(headlines, price))
	if err != nil {
		logger.ErrorWithErr(ctx, "Interpreter failed, using error sentinel", err)
		_ = runlog.Event("error from interpreter: %v", err)
		return interpretErrorText
	}
	return reply
}

func (r *Runner) notify(ctx context.Context, res types.JobResult) {
	ctx, span := trace.StartSpan(ctx, "runner.Notify")
	defer span.End()

	subject := fmt.Sprintf("S&P 500 Trading Alert: %s", res.Action)
	body := FormatBody(res)

	if err := r.notifier.Notify(ctx, subject, body); err != nil {
		logger.Delivery(ctx, r.cfg.Notify.Provider, subject, false, "error", err.Error())
		_ = runlog.Event("notification failed: %v", err)
		return
	}
	logger.Delivery(ctx, r.cfg.Notify.Provider, subject, true)
	_ = runlog.Event("notification sent: %s", subject)
}

// FormatBody renders the notification payload. A missing price renders as
// "unavailable"; absent levels are omitted.
func FormatBody(res types.JobResult) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "AI Trading Signal: %s\n\n", res.Action)
	fmt.Fprintf(&sb, "Reason: %s\n\n", res.Reason)
	if res.Price != nil {
		fmt.Fprintf(&sb, "Current S&P 500 Price: %.2f\n", *res.Price)
	} else {
		sb.WriteString("Current S&P 500 Price: unavailable\n")
	}
	if res.StopLoss != nil {
		fmt.Fprintf(&sb, "Suggested Stop Loss: %s\n", *res.StopLoss)
	}
	if res.TakeProfit != nil {
		fmt.Fprintf(&sb, "Suggested Take Profit: %s\n", *res.TakeProfit)
	}

	sb.WriteString("\nHeadlines:\n")
	sb.WriteString(strings.Join(res.Headlines, "\n"))
	sb.WriteString("\n\nWARNING: Leveraged index trading is extremely risky. Always use a stop loss and never risk more than you can afford to lose.")

	return sb.String()
}

func formatLevel(v float64) *string {
	s := fmt.Sprintf("%.2f", v)
	return &s
}
