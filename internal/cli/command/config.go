package command

import (
	"errors"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/scancore-go/internal/cli/output"
	"github.com/yndnr/scancore-go/internal/config"
	"github.com/yndnr/scancore-go/internal/core/lifecycle"
)

// ConfigCommand returns the config subcommand group.
func ConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Configuration inspection",
		Subcommands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Show the runtime configuration store after applying settings",
				Action: configShow,
			},
			{
				Name:   "dump",
				Usage:  "Dump the effective settings (secrets masked)",
				Action: configDump,
			},
		},
	}
}

func configShow(c *cli.Context) (err error) {
	cfg := GetSettings(c)
	rt := lifecycle.New(
		lifecycle.WithLogger(GetLogger(c).Slog()),
		lifecycle.WithConfigSource(cfg.Engine),
	)
	if err := rt.Initialize(); err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, rt.Finalize())
	}()

	return render(c, rt.Config().Snapshot())
}

func configDump(c *cli.Context) error {
	cfg := config.Sanitize(GetSettings(c))

	// Nested sections do not fit a table.
	format, err := output.ParseFormat(ParseGlobalFlags(c).Output)
	if err != nil {
		return err
	}
	if format == output.FormatTable {
		format = output.FormatYAML
	}
	return output.NewFormatter(format, false).Format(writer(c), cfg)
}
