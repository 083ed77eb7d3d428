package commands

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"
)

// NewApp creates the ordkey CLI app.
func NewApp() *cli.App {
	app := cli.NewApp()
	app.Name = "ordkey"
	app.Usage = "Inspect order-preserving index keys and the columns built on them"
	app.EnableBashCompletion = true

	app.Flags = []cli.Flag{
		&cli.BoolFlag{
			Name:  "verbose",
			Usage: "Log debug messages to the standard error.",
		},
	}

	app.Commands = []*cli.Command{
		NewKeyCommand(),
		NewSerializeCommand(),
		NewInsertCommand(),
		NewScanCommand(),
		NewPebbleCommand(),
		NewVersionCommand(),
	}

	// inject cancelable context to all commands
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		defer cancel()
		<-ch
	}()

	for i := range app.Commands {
		action := app.Commands[i].Action
		app.Commands[i].Action = func(c *cli.Context) error {
			c.Context = ctx
			return action(c)
		}
	}

	app.Before = func(c *cli.Context) error {
		level := slog.LevelWarn
		if c.Bool("verbose") {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(c.App.ErrWriter, &slog.HandlerOptions{Level: level})))
		return nil
	}

	app.After = func(c *cli.Context) error {
		signal.Stop(ch)
		cancel()
		return nil
	}

	return app
}
