package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsUnknownCommandError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "unknown command error",
			err:  errors.New(`unknown command "foo" for "beacon"`),
			want: true,
		},
		{
			name: "unknown flag error",
			err:  errors.New(`unknown flag: --foo`),
			want: true,
		},
		{
			name: "other error",
			err:  errors.New("connection refused"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isUnknownCommandError(tt.err))
		})
	}
}

func TestExtractUnknownCommand(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "standard cobra format",
			err:  errors.New(`unknown command "foo" for "beacon"`),
			want: "foo",
		},
		{
			name: "command with hyphen",
			err:  errors.New(`unknown command "mock-srv" for "beacon"`),
			want: "mock-srv",
		},
		{
			name: "no quotes returns empty",
			err:  errors.New("unknown command foo"),
			want: "",
		},
		{
			name: "single quote returns empty",
			err:  errors.New(`unknown command "foo`),
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractUnknownCommand(tt.err))
		})
	}
}

func TestRootCommand_Subcommands(t *testing.T) {
	var names []string
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}

	for _, want := range []string{"dashboard", "snapshot", "watch", "mock-server", "init", "version", "completion"} {
		assert.Contains(t, names, want)
	}
}

func TestRootCommand_GlobalFlags(t *testing.T) {
	for _, name := range []string{"config", "no-color", "verbose", "json"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), name)
	}
	// Root runs the dashboard, so it takes the display flags too.
	assert.NotNil(t, rootCmd.Flags().Lookup("interval"))
}

func TestUnknownCommandMessage(t *testing.T) {
	msg := unknownCommandMessage("snapshto")
	assert.Contains(t, msg, `Unknown command "snapshto"`)
	assert.Contains(t, msg, "Did you mean: snapshot?")
	assert.Contains(t, msg, "beacon --help")

	msg = unknownCommandMessage("zzzzzzzzzz")
	assert.NotContains(t, msg, "Did you mean")
}
