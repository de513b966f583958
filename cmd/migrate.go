package cmd

import (
	"fmt"

	"github.com/jmehdipour/customer-lab/internal/config"
	"github.com/jmehdipour/customer-lab/internal/repository"
	"github.com/spf13/cobra"
)

var migrateIndexes bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the customers table (and history tables when ClickHouse is configured)",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		pg, err := openPostgres(cfg)
		if err != nil {
			return err
		}
		defer pg.Close()

		schema := repository.NewSchema(pg)
		if err := schema.EnsureTable(cmd.Context()); err != nil {
			return err
		}
		if migrateIndexes {
			if err := schema.EnsureIndexes(cmd.Context()); err != nil {
				return err
			}
		}

		_, chDB, err := openHistory(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		if chDB != nil {
			_ = chDB.Close()
		}

		fmt.Println(">> Migration complete ✅")
		return nil
	},
}

func init() {
	migrateCmd.Flags().BoolVar(&migrateIndexes, "indexes", false, "also create the city/status indexes")
}
