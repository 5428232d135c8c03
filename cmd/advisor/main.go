// S&P 500 Advisor — recurring market advisory job.
//
// Fetches headlines and the index price, asks an LLM for a trading
// recommendation and delivers it by email, stdout or a small web page.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"sp500-advisor/internal/logger"
	"sp500-advisor/internal/schedule"
	"sp500-advisor/internal/server"
	"sp500-advisor/internal/store"
	"sp500-advisor/internal/trace"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
)

var cfg *store.Config

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "advisor",
	Short: "S&P 500 Advisor — LLM-backed trading recommendations",
	Long: `S&P 500 Advisor
Fetches market headlines and the current index price, asks an LLM for a
BUY / SELL / HOLD recommendation with stop-loss and take-profit levels,
and delivers the result by email, stdout or a web page.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := initializeSystem(); err != nil {
			return err
		}
		var err error
		path, _ := cmd.Flags().GetString("config")
		cfg, err = loadConfig(cmd.Context(), path)
		return err
	},
	// Bare invocation follows the config: scheduled loop or one shot.
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.RunOnSchedule {
			return runScheduled(cmd.Context())
		}
		return runOnce(cmd.Context())
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "config.yaml", "config file path")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(scheduleCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the advisory job once and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOnce(cmd.Context())
	},
}

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Run the advisory job on the configured weekday schedule",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScheduled(cmd.Context())
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server with the on-demand web page",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signalContext(cmd.Context())
		defer stop()
		defer trace.Shutdown(ctx)

		srv := server.New(cfg, buildRunner(ctx))
		return srv.Start(ctx)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("sp500-advisor %s (%s)\n", version, commit)
	},
}

func runOnce(ctx context.Context) error {
	defer trace.Shutdown(ctx)

	res := buildRunner(ctx).RunOnce(ctx)
	b, _ := json.Marshal(res)
	fmt.Println(string(b))
	logger.Info(ctx, "Run complete", "action", res.Action, "error", res.Error)
	return nil
}

func runScheduled(ctx context.Context) error {
	ctx, stop := signalContext(ctx)
	defer stop()
	defer trace.Shutdown(ctx)

	times := schedule.ParseAlertTimes(cfg.AlertTimes)

	r := buildRunner(ctx)
	loop := schedule.NewLoop(times, cfg.Location(), r.RunOnce)

	logger.Info(ctx, "Scheduler started", "times", cfg.AlertTimes, "timezone", cfg.Timezone)
	loop.Run(ctx)
	logger.Info(ctx, "Scheduler stopped")
	return nil
}

func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
}
