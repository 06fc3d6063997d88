// Package cli implements the beacon command-line interface.
//
// Each Cobra command is defined in commands.go and delegates to a
// <name>Command function that loads config, applies flags and hands off to
// the packages that do the work.
//
// # Command Structure
//
//	beacon               - Dashboard (same as beacon dashboard)
//	beacon dashboard     - Full-screen live status dashboard
//	beacon snapshot      - Print the current strips once
//	beacon watch         - Headless poller that logs status changes
//	beacon mock-server   - Local mock of the dashboard API
//	beacon init          - Create .beacon.yaml
//	beacon version       - Print version information
//	beacon completion    - Shell completion scripts
//
// # Flag Handling
//
// Global flags (--config, --no-color, --verbose, --json) are defined on the
// root command. Display flags (--server, --interval, --locale, --timezone,
// --monitors, --refresh) are added per command with AddDisplayFlags and
// override the loaded config before validation.
//
// # Machine Output
//
// With --json, snapshot writes a JSONEnvelope and failures are reported as
// a JSONError instead of the human-readable error block.
package cli
