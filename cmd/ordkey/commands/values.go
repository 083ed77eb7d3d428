package commands

import (
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v2"

	"github.com/chaisql/ordkey/internal/types"
)

var typeNames = map[string]types.Type{
	"nil":       types.TypeNil,
	"boolean":   types.TypeBoolean,
	"integer":   types.TypeInteger,
	"float":     types.TypeFloat,
	"string":    types.TypeString,
	"timestamp": types.TypeTimestamp,
}

func typeFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "type",
		Aliases:  []string{"t"},
		Usage:    "Type of the values: nil, boolean, integer, float, string or timestamp.",
		Required: true,
	}
}

func parseType(name string) (types.Type, error) {
	t, ok := typeNames[name]
	if !ok {
		return 0, errors.Newf("unknown type %q", name)
	}

	return t, nil
}

// parseValue parses the textual form of a value of type t.
func parseValue(t types.Type, s string) (types.Value, error) {
	var x any
	switch t {
	case types.TypeNil:
		if s != "" && s != "nil" && s != "null" {
			return nil, errors.Newf("invalid nil %q", s)
		}
	case types.TypeBoolean:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid boolean %q", s)
		}
		x = b
	case types.TypeInteger:
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid integer %q", s)
		}
		x = n
	case types.TypeFloat:
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid float %q", s)
		}
		x = f
	case types.TypeString:
		x = s
	case types.TypeTimestamp:
		ts, err := types.ParseTimestamp(s)
		if err != nil {
			return nil, err
		}
		x = ts
	default:
		return nil, errors.Newf("unsupported type %s", t)
	}

	return types.NewValue(x)
}

func parseValues(c *cli.Context) (types.Type, []types.Value, error) {
	t, err := parseType(c.String("type"))
	if err != nil {
		return 0, nil, err
	}

	args := c.Args().Slice()
	values := make([]types.Value, 0, len(args))
	for _, arg := range args {
		v, err := parseValue(t, arg)
		if err != nil {
			return 0, nil, err
		}
		values = append(values, v)
	}

	return t, values, nil
}
