package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "bankportal",
		Usage: "Demo banking portal: customer ledger and staff views",
		Commands: []*cli.Command{
			serveCmd(),
			migrateCmd(),
			seedCmd(),
			sweepCmd(),
		},
		// serve is the default when no command is given
		Action: serve,
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := app.RunContext(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "bankportal: %v\n", err)
		os.Exit(1)
	}
}

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:   "serve",
		Usage:  "Migrate, optionally seed, and start the HTTP API",
		Action: serve,
	}
}

func migrateCmd() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Apply database migrations and exit",
		Action: func(c *cli.Context) error {
			app, err := bootstrap(c.Context)
			if err != nil {
				return err
			}
			defer app.close()

			return app.db.Migrate(c.Context)
		},
	}
}

func seedCmd() *cli.Command {
	return &cli.Command{
		Name:  "seed",
		Usage: "Apply migrations and insert the demo users",
		Action: func(c *cli.Context) error {
			app, err := bootstrap(c.Context)
			if err != nil {
				return err
			}
			defer app.close()

			if err := app.db.Migrate(c.Context); err != nil {
				return err
			}
			result, err := app.db.Seed(c.Context, app.hasher)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.App.Writer, "seeded %d users, %d accounts, %d transactions\n",
				result.Users, result.Accounts, result.Transactions)
			return nil
		},
	}
}

func sweepCmd() *cli.Command {
	return &cli.Command{
		Name:  "sweep-sessions",
		Usage: "Delete expired opaque sessions once and print how many were removed",
		Action: func(c *cli.Context) error {
			app, err := bootstrap(c.Context)
			if err != nil {
				return err
			}
			defer app.close()

			removed, err := app.sweeper.SweepOnce(c.Context)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.App.Writer, "removed %d expired sessions\n", removed)
			return nil
		},
	}
}
