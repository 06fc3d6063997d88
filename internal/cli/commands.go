package cli

import (
	"os"

	"github.com/rileyhilliard/beacon/internal/errors"
	"github.com/spf13/cobra"
)

// Command-specific flags
var (
	snapshotFlags DisplayFlags
	initOpts      InitOptions
)

// dashboardCmd opens the TUI dashboard
var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Live status dashboard (default command)",
	Long: `Open the full-screen status dashboard.

Each monitor gets a row with its uptime, current status and a strip of
status bars. New data slides in from the right.

Keyboard shortcuts:
  up/k, down/j    Select monitor
  left/h, right/l Hover a bar to see its details
  esc             Clear hover
  i               Cycle the selected monitor's interval
  I               Apply the next interval to every monitor
  r               Refresh now
  ?               Show help
  q / Ctrl+C      Quit

Examples:
  beacon
  beacon dashboard --interval day
  beacon dashboard --monitors api,web --refresh 10s
  beacon dashboard --locale de --timezone Europe/Berlin`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return dashboardCommand(dashFlags)
	},
}

// snapshotCmd prints a static view once
var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Print current status once",
	Long: `Fetch status once and print one strip per monitor, followed by the
details of its newest bar.

Examples:
  beacon snapshot
  beacon snapshot --interval week
  beacon snapshot --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return snapshotCommand(snapshotFlags)
	},
}

// watchCmd polls on a schedule and logs changes
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Log status changes without a UI",
	Long: `Poll the dashboard API on the refresh interval and log every change of
a monitor's status. Optionally exposes Prometheus metrics.

Examples:
  beacon watch
  beacon watch --refresh 15s --metrics-addr :9090
  beacon watch --once`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return watchCommand(watchDisplayFlags, watchOpts)
	},
}

// mockServerCmd serves fixture or demo data
var mockServerCmd = &cobra.Command{
	Use:   "mock-server",
	Short: "Run a local mock of the dashboard API",
	Long: `Serve the dashboard API from a YAML fixture, or from generated demo data
when no fixture is given. With --grow, every monitor gains a new sample and
bucket on that cadence so the strip animation can be seen.

Examples:
  beacon mock-server
  beacon mock-server --grow 3s
  beacon mock-server --fixture testdata/basic.yaml --addr :9000`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return mockServerCommand(mockOpts)
	},
}

// initCmd creates a new .beacon.yaml configuration
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create .beacon.yaml configuration",
	Long: `Create a .beacon.yaml file in the current directory.

Prompts for the API address, label language, starting interval and time
zone, then tests the connection before saving.

Examples:
  beacon init
  beacon init --server http://status.internal:8080
  beacon init --non-interactive --force`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return initCommand(initOpts)
	},
}

// completionCmd generates shell completion scripts
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Generate shell completion scripts for beacon.

Examples:
  # Bash
  beacon completion bash > /etc/bash_completion.d/beacon

  # Zsh
  beacon completion zsh > "${fpath[1]}/_beacon"

  # Fish
  beacon completion fish > ~/.config/fish/completions/beacon.fish`,
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(os.Stdout)
		case "zsh":
			return rootCmd.GenZshCompletion(os.Stdout)
		case "fish":
			return rootCmd.GenFishCompletion(os.Stdout, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletion(os.Stdout)
		default:
			return errors.New(errors.ErrExec,
				"Unknown shell: "+args[0],
				"Supported shells: bash, zsh, fish, powershell")
		}
	},
}

func init() {
	// dashboard command flags
	AddDisplayFlags(dashboardCmd, &dashFlags)

	// snapshot command flags
	AddDisplayFlags(snapshotCmd, &snapshotFlags)

	// watch command flags
	AddDisplayFlags(watchCmd, &watchDisplayFlags)
	watchCmd.Flags().StringVar(&watchOpts.MetricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address (e.g., :9090)")
	watchCmd.Flags().BoolVar(&watchOpts.Once, "once", false, "poll once and exit")

	// mock-server command flags
	mockServerCmd.Flags().StringVar(&mockOpts.Addr, "addr", ":8080", "listen address")
	mockServerCmd.Flags().StringVar(&mockOpts.Fixture, "fixture", "", "YAML fixture to serve (default: generated demo data)")
	mockServerCmd.Flags().DurationVar(&mockOpts.Grow, "grow", 0, "append synthetic data at this interval (e.g., 3s)")
	mockServerCmd.Flags().Int64Var(&mockOpts.Seed, "seed", 0, "random seed for demo data (default: time based)")

	// init command flags
	initCmd.Flags().StringVar(&initOpts.Server, "server", "", "dashboard API base URL")
	initCmd.Flags().StringVar(&initOpts.Locale, "locale", "", "label language")
	initCmd.Flags().StringVar(&initOpts.Interval, "interval", "", "starting interval")
	initCmd.Flags().BoolVarP(&initOpts.Overwrite, "force", "f", false, "overwrite existing config")
	initCmd.Flags().BoolVar(&initOpts.NonInteractive, "non-interactive", false, "skip prompts and use defaults")
	initCmd.Flags().BoolVar(&initOpts.SkipProbe, "skip-probe", false, "don't test the connection before saving")

	// Register all commands
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(snapshotCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(mockServerCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(completionCmd)
}
