package app

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MediBoard/MediBoard/internal/config"
	"github.com/MediBoard/MediBoard/internal/db/connect"
)

func init() { //nolint: gochecknoinits
	configCmd.Flags().BoolVar(&dumpJSON, "json", false, "Dump as JSON instead of TOML")

	rootCmd.AddCommand(configCmd, migrateCmd)
}

var (
	dumpJSON bool

	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration with secrets masked",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := config.ReadConfig(configPath)
			if err != nil {
				return err
			}

			dump := config.DumpConfig
			if dumpJSON {
				dump = config.DumpConfigJSON
			}

			out, err := dump(c)
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), out)

			return nil
		},
	}

	migrateCmd = &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema and seed defaults",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := config.ReadConfig(configPath)
			if err != nil {
				return err
			}

			db, err := connect.Open(&c)
			if err != nil {
				return err
			}

			if err = connect.Migrate(context.Background(), db); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "database is up to date")

			return nil
		},
	}
)
