package command

import (
	"bytes"
	"flag"
	"testing"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/scancore-go/internal/config"
	"github.com/yndnr/scancore-go/internal/telemetry/logger"
)

// testContext creates a CLI context for testing a command action. Global
// flags and the command's own flags are parsed from args.
func testContext(t *testing.T, cmd *cli.Command, args ...string) (*cli.Context, *bytes.Buffer) {
	t.Helper()

	var out, logs bytes.Buffer
	log, err := logger.New(logger.Config{Level: "debug", Format: "text", Output: &logs})
	if err != nil {
		t.Fatalf("logger.New() error = %v", err)
	}

	app := &cli.App{
		Name:      "test",
		Flags:     globalFlags(),
		Writer:    &out,
		ErrWriter: &logs,
		Metadata: map[string]any{
			metaSettings: config.Default(),
			metaLogger:   log,
		},
	}

	set := flag.NewFlagSet("test", flag.ContinueOnError)
	for _, f := range app.Flags {
		f.Apply(set)
	}
	if cmd != nil {
		for _, f := range cmd.Flags {
			f.Apply(set)
		}
	}
	if err := set.Parse(args); err != nil {
		t.Fatalf("Parse(%v) error = %v", args, err)
	}

	return cli.NewContext(app, set, nil), &out
}

// runApp runs the full application with args and returns its stdout.
func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out, logs bytes.Buffer
	app := App()
	app.Writer = &out
	app.ErrWriter = &logs
	app.ExitErrHandler = func(*cli.Context, error) {}

	err := app.Run(append([]string{"scancore-cli"}, args...))
	return out.String(), err
}
