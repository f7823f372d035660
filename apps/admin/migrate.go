package main

import (
	"github.com/spf13/cobra"

	"github.com/berrycrepe/choco-chip/storage/database"
)

var runMigrationsFunc = database.RunMigrations // mockable

func (cli *commandLine) migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate COMMAND [ARGS...]",
		Short: "Run a goose migration command (up, down, status, up-to VERSION, ...)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				_ = cmd.Usage()
				return errHelp
			}
			return runMigrationsFunc(cli.db, args[0], args[1:]...)
		},
	}
}
