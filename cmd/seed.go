package cmd

import (
	"fmt"
	"log"

	"github.com/jmehdipour/customer-lab/internal/config"
	"github.com/jmehdipour/customer-lab/internal/kafka"
	"github.com/jmehdipour/customer-lab/internal/logger"
	"github.com/jmehdipour/customer-lab/internal/repository"
	"github.com/jmehdipour/customer-lab/internal/service/seed"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Replace the customers table with the dataset file",
	RunE: func(cmd *cobra.Command, args []string) error {
		// 1) load config
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		zl, err := logger.New(cfg.Log.Level)
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		defer func() { _ = zl.Sync() }()

		// 2) connect Postgres
		pg, err := openPostgres(cfg)
		if err != nil {
			return err
		}
		defer pg.Close()

		var events seed.EventPublisher
		if p := kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.SeedTopic); p != nil {
			defer func() { _ = p.Close() }()
			events = p
		}

		svc := seed.New(
			repository.NewCustomersRepository(pg, cfg.Seed.BatchSize),
			repository.NewSchema(pg),
			events,
			cfg.Seed.DataFile,
			zl,
		)

		log.Printf(">> Seeding customers from %s...", cfg.Seed.DataFile)

		inserted, err := svc.Reload(cmd.Context())
		if err != nil {
			return err
		}

		log.Printf(">> Seed completed ✅ inserted=%d", inserted)
		return nil
	},
}
