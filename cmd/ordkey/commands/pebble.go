package commands

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/cockroachdb/pebble"
	"github.com/urfave/cli/v2"

	"github.com/chaisql/ordkey/internal/kv"
)

// NewPebbleCommand returns a cli.Command for "ordkey pebble".
func NewPebbleCommand() *cli.Command {
	cmd := cli.Command{
		Name:        "pebble",
		Usage:       "Outputs the content of the Pebble database",
		UsageText:   `ordkey pebble -p db`,
		Description: `The pebble command simply outputs the content of the Pebble database in the standard output.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "path",
				Aliases:  []string{"p"},
				Usage:    "Path of the database to open.",
				Required: true,
			},
			&cli.BoolFlag{
				Name:    "keys-only",
				Aliases: []string{"k"},
				Usage:   "Only output the keys.",
			},
		},
	}

	cmd.Action = func(c *cli.Context) error {
		ng, err := kv.Open(c.String("path"), nil)
		if err != nil {
			return err
		}
		defer ng.Close()

		return DumpPebble(c.Context, ng.DB, c.App.Writer, DumpPebbleOptions{
			KeysOnly: c.Bool("keys-only"),
		})
	}

	return &cmd
}

type DumpPebbleOptions struct {
	KeysOnly bool
}

// DumpPebble writes every key of db to w, one line per key,
// with an empty line between stores.
func DumpPebble(ctx context.Context, db *pebble.DB, w io.Writer, opt DumpPebbleOptions) error {
	iter := db.NewIter(nil)
	defer func(iter *pebble.Iterator) {
		_ = iter.Close()
	}(iter)

	var curStore []byte
	for iter.First(); iter.Valid(); iter.Next() {
		if err := ctx.Err(); err != nil {
			return err
		}

		k := iter.Key()
		store := storeOf(k)
		if curStore != nil && !bytes.Equal(store, curStore) {
			fmt.Fprintln(w)
		}
		curStore = append(curStore[:0], store...)

		if opt.KeysOnly {
			fmt.Fprintf(w, "%q\n", k)
		} else {
			fmt.Fprintf(w, "%q: %x\n", k, iter.Value())
		}
	}

	return iter.Error()
}

// storeOf returns the store prefix of a key built by kv.BuildKey.
func storeOf(k []byte) []byte {
	i := bytes.IndexByte(k[min(2, len(k)):], 0x1F)
	if i < 0 {
		return k
	}

	return k[:i+2]
}
