package command

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/scancore-go/internal/selftest"
	"github.com/yndnr/scancore-go/pkg/crypto/adaptive"
)

// SelftestCommand returns the selftest command.
func SelftestCommand() *cli.Command {
	return &cli.Command{
		Name:   "selftest",
		Usage:  "Run the runtime contract checks",
		Action: selftestAction,
	}
}

func selftestAction(c *cli.Context) error {
	log := GetLogger(c)

	results := selftest.Run(log.Slog(), adaptive.Default(), selftest.Checks())
	if err := render(c, results); err != nil {
		return err
	}

	if n := selftest.Failed(results); n > 0 {
		return fmt.Errorf("%d of %d checks failed", n, len(results))
	}
	log.Debug("selftest passed", "checks", len(results))
	return nil
}
