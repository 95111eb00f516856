package command

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/scancore-go/internal/cli/output"
	"github.com/yndnr/scancore-go/internal/config"
	"github.com/yndnr/scancore-go/internal/infra/buildinfo"
	"github.com/yndnr/scancore-go/internal/telemetry/logger"
)

// Metadata keys set by the root Before hook.
const (
	metaSettings = "settings"
	metaLogger   = "logger"
)

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "scancore-cli",
		Usage:   "ScanCore runtime inspection and stress tool",
		Version: buildinfo.String(),
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			VersionCommand(),
			ConfigCommand(),
			TablesCommand(),
			SelftestCommand(),
			SoakCommand(),
		},
		Before: setup,
	}
}

// setup loads settings and builds the logger shared by all commands.
func setup(c *cli.Context) error {
	flags := ParseGlobalFlags(c)
	if _, err := output.ParseFormat(flags.Output); err != nil {
		return err
	}

	cfg, err := config.Load(flags.Config, nil)
	if err != nil {
		return err
	}

	level := cfg.Log.Level
	if flags.Verbose {
		level = "debug"
	}
	log, err := logger.New(logger.Config{
		Level:  level,
		Format: cfg.Log.Format,
		Output: c.App.ErrWriter,
	})
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}

	if c.App.Metadata == nil {
		c.App.Metadata = make(map[string]any)
	}
	c.App.Metadata[metaSettings] = cfg
	c.App.Metadata[metaLogger] = log
	return nil
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Settings file (YAML)",
			EnvVars: []string{"SCANCORE_CONFIG"},
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output format: table, json, yaml",
			Value:   "table",
		},
		&cli.BoolFlag{
			Name:    "wide",
			Aliases: []string{"w"},
			Usage:   "Show wide output (more columns)",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"V"},
			Usage:   "Enable debug logging",
		},
	}
}

// GlobalFlags defines flags available to all commands.
type GlobalFlags struct {
	Config string

	// Output format
	Output string // table, json, yaml
	Wide   bool

	Verbose bool
}

// ParseGlobalFlags extracts global flags from context.
func ParseGlobalFlags(c *cli.Context) *GlobalFlags {
	return &GlobalFlags{
		Config:  c.String("config"),
		Output:  c.String("output"),
		Wide:    c.Bool("wide"),
		Verbose: c.Bool("verbose"),
	}
}

// GetSettings returns the settings loaded by the root command, or the
// defaults when none were loaded.
func GetSettings(c *cli.Context) *config.Settings {
	if cfg, ok := c.App.Metadata[metaSettings].(*config.Settings); ok {
		return cfg
	}
	return config.Default()
}

// GetLogger returns the logger built by the root command.
func GetLogger(c *cli.Context) logger.Logger {
	if l, ok := c.App.Metadata[metaLogger].(logger.Logger); ok {
		return l
	}
	return logger.Default()
}

// render writes data to the app's writer in the selected output format.
func render(c *cli.Context, data any) error {
	flags := ParseGlobalFlags(c)
	format, err := output.ParseFormat(flags.Output)
	if err != nil {
		return err
	}
	return output.NewFormatter(format, flags.Wide).Format(writer(c), data)
}

func writer(c *cli.Context) io.Writer {
	if c.App.Writer != nil {
		return c.App.Writer
	}
	return os.Stdout
}

// PrintError prints an error message to stderr.
func PrintError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
}
