package command

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/scancore-go/internal/core/lifecycle"
	"github.com/yndnr/scancore-go/pkg/casetable"
)

// caseRow is one byte of the case-folding tables.
type caseRow struct {
	Byte   string `json:"byte" yaml:"byte"`
	Char   string `json:"char" yaml:"char"`
	Lower  string `json:"lower" yaml:"lower"`
	Toggle string `json:"toggle" yaml:"toggle"`
}

// TablesCommand returns the tables command.
func TablesCommand() *cli.Command {
	return &cli.Command{
		Name:  "tables",
		Usage: "Dump the case-folding tables",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "changed",
				Usage: "Only show bytes the tables map to a different byte",
			},
		},
		Action: tablesAction,
	}
}

func tablesAction(c *cli.Context) (err error) {
	rt := lifecycle.New(lifecycle.WithLogger(GetLogger(c).Slog()))
	if err := rt.Initialize(); err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, rt.Finalize())
	}()

	return render(c, caseRows(rt.Tables(), c.Bool("changed")))
}

func caseRows(t *casetable.Tables, changedOnly bool) []caseRow {
	rows := make([]caseRow, 0, casetable.Size)
	for i := 0; i < casetable.Size; i++ {
		b := byte(i)
		lower, toggle := t.ToLower(b), t.Toggle(b)
		if changedOnly && lower == b && toggle == b {
			continue
		}
		rows = append(rows, caseRow{
			Byte:   fmt.Sprintf("0x%02x", b),
			Char:   printable(b),
			Lower:  printable(lower),
			Toggle: printable(toggle),
		})
	}
	return rows
}

func printable(b byte) string {
	if b >= 0x21 && b < 0x7f {
		return string(rune(b))
	}
	return fmt.Sprintf("\\x%02x", b)
}
