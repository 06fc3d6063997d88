package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/rileyhilliard/beacon/internal/config"
	"github.com/rileyhilliard/beacon/internal/errors"
	"github.com/rileyhilliard/beacon/internal/logger"
	"github.com/rileyhilliard/beacon/internal/ui"
	"github.com/rileyhilliard/beacon/internal/util"
	"github.com/spf13/cobra"
)

// Global flags
var (
	cfgFile     string
	noColor     bool
	verboseFlag bool
)

// rootCmd is the base command. Without a subcommand it opens the dashboard.
var rootCmd = &cobra.Command{
	Use:   "beacon",
	Short: "Terminal dashboard for uptime monitors",
	Long: `beacon shows the status of uptime monitors in your terminal.

Each monitor gets a strip of colored bars, one per check or per aggregated
bucket, that slides as new data arrives. Switch between the raw history and
hourly, daily or weekly buckets per monitor.

Run without a subcommand to open the dashboard.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColor {
			ui.SetColorMode("never")
		}
		if verboseFlag {
			_ = os.Setenv(logger.DebugEnv, "1")
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return dashboardCommand(dashFlags)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: .beacon.yaml, then ~/.config/beacon/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&machineMode, "json", false, "machine-readable JSON output where supported")

	AddDisplayFlags(rootCmd, &dashFlags)
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if machineMode {
			_ = WriteJSONFromError(os.Stdout, err)
			os.Exit(1)
		}
		if isUnknownCommandError(err) {
			if name := extractUnknownCommand(err); name != "" {
				fmt.Fprint(os.Stderr, unknownCommandMessage(name))
				os.Exit(1)
			}
		}
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

// loadConfig loads the config named by --config or found by search, and
// applies output.color.
func loadConfig() (*config.Config, error) {
	cfg, path, err := config.LoadOrDefault(cfgFile)
	if err != nil {
		return nil, err
	}
	if path != "" {
		logger.NewEnvLogger("[config]").Debug("loaded %s", path)
	}
	if !noColor {
		ui.SetColorMode(cfg.Output.Color)
	}
	return cfg, nil
}

// isUnknownCommandError reports whether err is cobra's unknown command or
// flag error.
func isUnknownCommandError(err error) bool {
	msg := err.Error()
	return strings.HasPrefix(msg, "unknown command") || strings.HasPrefix(msg, "unknown flag")
}

// extractUnknownCommand returns the quoted command name from cobra's
// unknown command error, or "" when there is none.
func extractUnknownCommand(err error) string {
	msg := err.Error()
	start := strings.Index(msg, `"`)
	if start < 0 {
		return ""
	}
	end := strings.Index(msg[start+1:], `"`)
	if end < 0 {
		return ""
	}
	return msg[start+1 : start+1+end]
}

// unknownCommandMessage explains an unknown subcommand and suggests close
// matches.
func unknownCommandMessage(name string) string {
	var names []string
	for _, c := range rootCmd.Commands() {
		if !c.Hidden {
			names = append(names, c.Name())
		}
	}

	msg := fmt.Sprintf("%s Unknown command %q\n", ui.SymbolFail, name)
	if suggestions := util.SuggestSimilar(name, names, 3); len(suggestions) > 0 {
		msg += fmt.Sprintf("\n  Did you mean: %s?\n", util.JoinOrNone(suggestions))
	}
	return msg + "\n  Run 'beacon --help' to see available commands.\n"
}

// configError wraps a flag parsing failure as a config error.
func configError(err error, message, suggestion string) error {
	return errors.WrapWithCode(err, errors.ErrConfig, message, suggestion)
}
