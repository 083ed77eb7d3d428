package commands

import (
	"fmt"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v2"

	"github.com/chaisql/ordkey/internal/column"
	"github.com/chaisql/ordkey/internal/kv"
	"github.com/chaisql/ordkey/internal/registry"
	"github.com/chaisql/ordkey/internal/serializer"
	"github.com/chaisql/ordkey/internal/types"
)

func columnFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "path",
			Aliases:  []string{"p"},
			Usage:    "Path of the database to open.",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "column",
			Aliases:  []string{"c"},
			Usage:    "Name of the column.",
			Required: true,
		},
		typeFlag(),
		&cli.StringFlag{
			Name:  "plugin",
			Usage: "Name of the serializer plugin. Defaults to the first plugin supporting the type.",
		},
	}
}

// NewInsertCommand returns a cli.Command for "ordkey insert".
func NewInsertCommand() *cli.Command {
	cmd := cli.Command{
		Name:        "insert",
		Usage:       "Inserts values in a column",
		UsageText:   `ordkey insert -p db -c prices -t float -- 10.5 -3 42`,
		Description: `The insert command stores each value in the column, under consecutive ids starting at --id.`,
		Flags: append(columnFlags(), &cli.Uint64Flag{
			Name:  "id",
			Usage: "Id of the first value.",
			Value: 1,
		}),
	}

	cmd.Action = func(c *cli.Context) error {
		t, values, err := parseValues(c)
		if err != nil {
			return err
		}

		ng, err := kv.Open(c.String("path"), &kv.Options{Sync: true})
		if err != nil {
			return err
		}
		defer ng.Close()

		return withColumn(ng, c.String("column"), t, c.String("plugin"), &inserter{first: c.Uint64("id"), values: values})
	}

	return &cmd
}

// NewScanCommand returns a cli.Command for "ordkey scan".
func NewScanCommand() *cli.Command {
	cmd := cli.Command{
		Name:        "scan",
		Usage:       "Outputs the values of a column in order",
		UsageText:   `ordkey scan -p db -c prices -t float`,
		Description: `The scan command prints the id and value of every value of the column, in the order of their index keys.`,
		Flags:       columnFlags(),
	}

	cmd.Action = func(c *cli.Context) error {
		t, err := parseType(c.String("type"))
		if err != nil {
			return err
		}

		ng, err := kv.Open(c.String("path"), nil)
		if err != nil {
			return err
		}
		defer ng.Close()

		return withColumn(ng, c.String("column"), t, c.String("plugin"), &scanner{w: c.App.Writer})
	}

	return &cmd
}

// a columnOp runs against the column matching the type given on the command line.
type columnOp interface {
	run(c columnHandle) error
}

// columnHandle is the untyped view of a column.Column.
type columnHandle interface {
	insert(id uint64, v types.Value) error
	ascend(fn func(id uint64, v types.Value) error) error
}

type typedColumn[T types.Value] struct {
	c *column.Column[T]
}

func (t typedColumn[T]) insert(id uint64, v types.Value) error {
	x, ok := v.(T)
	if !ok {
		return errors.Wrapf(types.ErrShapeMismatch, "column %s cannot hold %s", t.c.Name(), v.Type())
	}

	return t.c.Insert(id, x)
}

func (t typedColumn[T]) ascend(fn func(id uint64, v types.Value) error) error {
	return t.c.Ascend(func(id uint64, v T) error {
		return fn(id, v)
	})
}

func openColumn[T types.Value](ng *kv.Engine, reg *registry.Registry, name string, opts *column.Options) (columnHandle, error) {
	c, err := column.New[T](ng, reg, name, opts)
	if err != nil {
		return nil, err
	}

	return typedColumn[T]{c: c}, nil
}

func withColumn(ng *kv.Engine, name string, t types.Type, plugin string, op columnOp) error {
	reg := registry.NewDefault()
	opts := column.Options{
		Serializer: serializer.Config{Plugin: plugin},
	}

	var h columnHandle
	var err error
	switch t {
	case types.TypeNil:
		h, err = openColumn[types.NilValue](ng, reg, name, &opts)
	case types.TypeBoolean:
		h, err = openColumn[types.BooleanValue](ng, reg, name, &opts)
	case types.TypeInteger:
		h, err = openColumn[types.IntegerValue](ng, reg, name, &opts)
	case types.TypeFloat:
		h, err = openColumn[types.FloatValue](ng, reg, name, &opts)
	case types.TypeString:
		h, err = openColumn[types.StringValue](ng, reg, name, &opts)
	case types.TypeTimestamp:
		h, err = openColumn[types.TimestampValue](ng, reg, name, &opts)
	default:
		return errors.Newf("unsupported type %s", t)
	}
	if err != nil {
		return err
	}

	return op.run(h)
}

type inserter struct {
	first  uint64
	values []types.Value
}

func (ins *inserter) run(c columnHandle) error {
	for i, v := range ins.values {
		if err := c.insert(ins.first+uint64(i), v); err != nil {
			return err
		}
	}

	return nil
}

type scanner struct {
	w io.Writer
}

func (s *scanner) run(c columnHandle) error {
	return c.ascend(func(id uint64, v types.Value) error {
		_, err := fmt.Fprintf(s.w, "%d\t%s\n", id, v)
		return err
	})
}
