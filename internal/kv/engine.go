// Package kv stores ordered keys in Pebble.
//
// Keys are compared as unsigned bytes, which is the order index keys
// are produced in.
package kv

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"

	"github.com/chaisql/ordkey/internal/encoding"
)

var (
	// ErrKeyNotFound is returned when the targeted key doesn't exist.
	ErrKeyNotFound = errors.New("key not found")

	// ErrInvalidStoreName is returned when a store name contains the key separator.
	ErrInvalidStoreName = errors.New("invalid store name")
)

// DefaultComparer orders keys with encoding.Compare.
var DefaultComparer = &pebble.Comparer{
	Compare:        encoding.Compare,
	Equal:          encoding.Equal,
	AbbreviatedKey: pebble.DefaultComparer.AbbreviatedKey,
	FormatKey:      pebble.DefaultComparer.FormatKey,
	Separator:      pebble.DefaultComparer.Separator,
	Successor:      pebble.DefaultComparer.Successor,
	// This name is part of the C++ Level-DB implementation's default file
	// format, and should not be changed.
	Name: "leveldb.BytewiseComparator",
}

// Options of an Engine.
type Options struct {
	// InMemory keeps every file in memory. The path is ignored.
	InMemory bool
	// Sync flushes every write to disk before returning.
	Sync bool
	// Logger receives the Pebble logs. Defaults to slog.Default().
	Logger *slog.Logger
}

// Engine is a Pebble database.
type Engine struct {
	DB        *pebble.DB
	writeOpts *pebble.WriteOptions
	logger    *slog.Logger
}

// Open a database at path.
func Open(path string, opts *Options) (*Engine, error) {
	if opts == nil {
		opts = &Options{}
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	popts := pebble.Options{
		Comparer: DefaultComparer,
		Logger:   pebbleLogger{logger: logger},
	}
	if opts.InMemory {
		popts.FS = vfs.NewMem()
		path = ""
	}

	db, err := pebble.Open(path, &popts)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot open database %q", path)
	}

	wo := pebble.NoSync
	if opts.Sync {
		wo = pebble.Sync
	}

	logger.Debug("database opened", "path", path, "in_memory", opts.InMemory)

	return &Engine{
		DB:        db,
		writeOpts: wo,
		logger:    logger,
	}, nil
}

// Close the engine and underlying Pebble database.
func (e *Engine) Close() error {
	return e.DB.Close()
}

// pebbleLogger forwards Pebble logs to slog.
type pebbleLogger struct {
	logger *slog.Logger
}

func (l pebbleLogger) Infof(format string, args ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, args...), "component", "pebble")
}

func (l pebbleLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...), "component", "pebble")
}

func (l pebbleLogger) Fatalf(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...), "component", "pebble")
	os.Exit(1)
}
