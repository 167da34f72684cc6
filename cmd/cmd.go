// submodule cmd contains command definitions
package main

import (
	"context"

	"github.com/urfave/cli/v3"
)

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

// setupCommand initializes the config file and database schemas
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "setup",
		Usage:  "Initialize configuration and create database tables",
		Flags:  []cli.Flag{configFlag()},
		Action: r.Setup,
	}
}

// seedCommand handles synthetic data generation
func seedCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "seed",
		Usage: "Generate synthetic users",
		Commands: []*cli.Command{
			{
				Name:  "generate",
				Usage: "Insert synthetic users in batches",
				Flags: []cli.Flag{
					configFlag(),
					&cli.IntFlag{
						Name:    "count",
						Aliases: []string{"n"},
						Usage:   "Number of users to generate",
						Value:   1000000,
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Users per progress batch",
						Value: 200,
					},
				},
				Action: r.SeedGenerate,
			},
			{
				Name:   "drop",
				Usage:  "Drop the seed table (destructive, for resets and testing)",
				Flags:  []cli.Flag{configFlag()},
				Action: r.SeedDrop,
			},
		},
	}
}

// accountsCommand handles account repository operations
func accountsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "accounts",
		Aliases: []string{"acc"},
		Usage:   "Manage account records",
		Commands: []*cli.Command{
			{
				Name:  "add",
				Usage: "Create an account",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "username"},
					&cli.StringArg{Name: "email"},
				},
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{
						Name:  "full-name",
						Usage: "Display name for the account",
					},
					&cli.StringFlag{
						Name:     "password-hash",
						Usage:    "Precomputed password hash (stored opaquely)",
						Required: true,
					},
				},
				Action: r.AccountsAdd,
			},
			{
				Name:  "get",
				Usage: "Look up an account by id or username",
				Flags: []cli.Flag{
					configFlag(),
					&cli.IntFlag{Name: "id", Usage: "Account id"},
					&cli.StringFlag{Name: "username", Usage: "Account username"},
					&cli.BoolFlag{Name: "pretty", Usage: "Pretty-print output"},
				},
				Action: r.AccountsGet,
			},
			{
				Name:  "list",
				Usage: "List accounts with pagination",
				Flags: []cli.Flag{
					configFlag(),
					&cli.IntFlag{Name: "limit", Usage: "Maximum number of accounts to return", Value: 100},
					&cli.IntFlag{Name: "offset", Usage: "Number of accounts to skip"},
					&cli.BoolFlag{Name: "all", Usage: "Include inactive accounts"},
					&cli.BoolFlag{Name: "pretty", Usage: "Pretty-print output"},
				},
				Action: r.AccountsList,
			},
			{
				Name:  "search",
				Usage: "Search accounts by username, email, or full name",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "term"},
				},
				Flags: []cli.Flag{
					configFlag(),
					&cli.BoolFlag{Name: "pretty", Usage: "Pretty-print output"},
				},
				Action: r.AccountsSearch,
			},
			{
				Name:  "edit",
				Usage: "Update account fields",
				Flags: []cli.Flag{
					configFlag(),
					&cli.IntFlag{Name: "id", Usage: "Account id", Required: true},
					&cli.StringFlag{Name: "email", Usage: "New email address"},
					&cli.StringFlag{Name: "full-name", Usage: "New display name"},
					&cli.StringFlag{Name: "password-hash", Usage: "New password hash"},
					&cli.BoolFlag{Name: "active", Usage: "New active state"},
				},
				Action: r.AccountsEdit,
			},
			{
				Name:  "delete",
				Usage: "Delete an account permanently",
				Flags: []cli.Flag{
					configFlag(),
					&cli.IntFlag{Name: "id", Usage: "Account id", Required: true},
				},
				Action: r.AccountsDelete,
			},
			{
				Name:  "deactivate",
				Usage: "Mark an account inactive",
				Flags: []cli.Flag{
					configFlag(),
					&cli.IntFlag{Name: "id", Usage: "Account id", Required: true},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return r.AccountsSetActive(ctx, cmd, false)
				},
			},
			{
				Name:  "activate",
				Usage: "Re-enable a deactivated account",
				Flags: []cli.Flag{
					configFlag(),
					&cli.IntFlag{Name: "id", Usage: "Account id", Required: true},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return r.AccountsSetActive(ctx, cmd, true)
				},
			},
		},
	}
}
