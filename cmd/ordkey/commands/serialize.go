package commands

import (
	"encoding/hex"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/chaisql/ordkey/internal/column"
	"github.com/chaisql/ordkey/internal/serializer"
)

// NewSerializeCommand returns a cli.Command for "ordkey serialize".
func NewSerializeCommand() *cli.Command {
	cmd := cli.Command{
		Name:        "serialize",
		Usage:       "Outputs the payload of each value",
		UsageText:   `ordkey serialize -t timestamp -p json 2021-01-01T10:00:00Z`,
		Description: `The serialize command prints the hex encoded payload produced by a serializer plugin for each value.`,
		Flags: []cli.Flag{
			typeFlag(),
			&cli.StringFlag{
				Name:    "plugin",
				Aliases: []string{"p"},
				Usage:   "Name of the plugin. Defaults to the first plugin supporting the type.",
			},
		},
	}

	cmd.Action = func(c *cli.Context) error {
		t, values, err := parseValues(c)
		if err != nil {
			return err
		}

		p, err := column.DefaultPlugins().Select(serializer.Config{Plugin: c.String("plugin")}, t)
		if err != nil {
			return err
		}

		for _, v := range values {
			data, err := p.Serialize(v)
			if err != nil {
				return err
			}

			fmt.Fprintf(c.App.Writer, "%s\t%s\n", hex.EncodeToString(data), v)
		}

		return nil
	}

	return &cmd
}
