package commands

import (
	"encoding/hex"
	"fmt"
	"sort"

	"github.com/urfave/cli/v2"

	"github.com/chaisql/ordkey/internal/encoding"
	"github.com/chaisql/ordkey/internal/registry"
)

// NewKeyCommand returns a cli.Command for "ordkey key".
func NewKeyCommand() *cli.Command {
	cmd := cli.Command{
		Name:      "key",
		Usage:     "Outputs the index key of each value",
		UsageText: `ordkey key -t integer -- -1 0 1`,
		Description: `The key command prints the hex encoded index key of each value, followed by the value.
With --sort, the values are printed in the order of their keys.`,
		Flags: []cli.Flag{
			typeFlag(),
			&cli.BoolFlag{
				Name:    "sort",
				Aliases: []string{"s"},
				Usage:   "Sort the output by key.",
			},
		},
	}

	cmd.Action = func(c *cli.Context) error {
		t, values, err := parseValues(c)
		if err != nil {
			return err
		}

		b, err := registry.NewDefault().LookupType(t)
		if err != nil {
			return err
		}

		keys := make([][]byte, len(values))
		for i, v := range values {
			keys[i], err = b.EncodeIndexKey(v)
			if err != nil {
				return err
			}
		}

		order := make([]int, len(values))
		for i := range order {
			order[i] = i
		}
		if c.Bool("sort") {
			sort.SliceStable(order, func(i, j int) bool {
				return encoding.Compare(keys[order[i]], keys[order[j]]) < 0
			})
		}

		for _, i := range order {
			fmt.Fprintf(c.App.Writer, "%s\t%s\n", hex.EncodeToString(keys[i]), values[i])
		}

		return nil
	}

	return &cmd
}
