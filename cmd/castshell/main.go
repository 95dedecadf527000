// Command castshell replays lifecycle scenarios against the cast shell on a
// simulated platform that logs every side effect.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/AnatoleLucet/reactive/cast"
	"github.com/AnatoleLucet/reactive/internal/logging"
	"github.com/spf13/cobra"
)

// Build information set via ldflags
var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

var (
	configPath string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "castshell",
	Short: "Replay cast shell lifecycle scenarios",
	Long: `castshell drives a cast media shell through a scripted sequence of
platform events (lifecycle callbacks, session intents, audio focus changes)
and logs what the shell asks the platform to do.`,
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, _ []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "castshell %s\n", version)
		fmt.Fprintf(out, "commit: %s\n", commit)
		fmt.Fprintf(out, "built: %s\n", buildDate)
		fmt.Fprintf(out, "go: %s\n", runtime.Version())
	},
}

var runCmd = &cobra.Command{
	Use:   "run <scenario.yaml>",
	Short: "Run a scenario",
	Args:  cobra.ExactArgs(1),
	RunE:  runScenario,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default ./castshell.yaml)")
	runCmd.Flags().StringVar(&logLevel, "log-level", "", "override the configured log level")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(runCmd)
}

func runScenario(cmd *cobra.Command, args []string) error {
	cfg, err := cast.LoadConfig(configPath)
	if err != nil {
		return err
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}

	logCfg, err := cfg.LoggingConfig()
	if err != nil {
		return err
	}
	logger := logging.NewWithWriter(logCfg, cmd.ErrOrStderr())

	scenario, err := LoadScenario(args[0])
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logging.WithContext(ctx, logger)

	logger.Info().Str("scenario", scenario.Name).Int("steps", len(scenario.Steps)).Msg("running scenario")

	runner := NewRunner(ctx, cfg, scenario)
	runErr := runner.Run(ctx, scenario)

	launched := runner.shell.Launched()
	sessions := runner.component.Sessions()
	runner.Close()

	if runErr != nil {
		return runErr
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "scenario %q: %d steps, %d activities launched, %d sessions left running\n",
		scenario.Name, len(scenario.Steps), launched, len(sessions))
	return nil
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
