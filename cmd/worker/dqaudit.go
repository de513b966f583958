package worker

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmehdipour/customer-lab/internal/config"
	"github.com/jmehdipour/customer-lab/internal/db"
	"github.com/jmehdipour/customer-lab/internal/kafka"
	"github.com/jmehdipour/customer-lab/internal/logger"
	"github.com/jmehdipour/customer-lab/internal/metrics"
	"github.com/jmehdipour/customer-lab/internal/repository"
	"github.com/jmehdipour/customer-lab/internal/service/dq"
	"github.com/jmehdipour/customer-lab/internal/worker"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var dqAuditCmd = &cobra.Command{
	Use:   "dq-audit",
	Short: "Run a data-quality analysis after every dataset reload",
	RunE:  runDQAudit,
}

func runDQAudit(cmd *cobra.Command, args []string) error {
	// 1) load config
	cfgPath, _ := cmd.Root().PersistentFlags().GetString("config")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if len(cfg.Kafka.Brokers) == 0 {
		return errors.New("dq-audit: no kafka brokers configured")
	}

	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	metrics.MustRegister(prometheus.DefaultRegisterer)

	// 2) Postgres
	pg, err := db.NewPostgresConnection(cfg.Postgres.ConnString(), db.PostgresOpts{
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Postgres.ConnMaxIdleTime,
		PingTimeout:     cfg.Postgres.PingTimeout,
	})
	if err != nil {
		return fmt.Errorf("postgres connect: %w", err)
	}
	defer pg.Close()

	// 3) ClickHouse history (optional)
	var recorder dq.ReportRecorder
	chDB, err := db.NewClickHouseConnection(db.ClickHouseOpts{
		DSN:             cfg.ClickHouse.DSN,
		MaxOpenConns:    cfg.ClickHouse.MaxOpenConns,
		MaxIdleConns:    cfg.ClickHouse.MaxIdleConns,
		ConnMaxLifetime: cfg.ClickHouse.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.ClickHouse.ConnMaxIdleTime,
		PingTimeout:     cfg.ClickHouse.PingTimeout,
	})
	if err != nil {
		return fmt.Errorf("clickhouse connect: %w", err)
	}
	if chDB != nil {
		defer func() { _ = chDB.Close() }()
		history := repository.NewHistoryRepository(chDB)
		if err := history.EnsureTables(cmd.Context()); err != nil {
			return err
		}
		recorder = history
	}

	analyzer := dq.NewAnalyzer(repository.NewCustomersRepository(pg, cfg.Seed.BatchSize), recorder, log)

	// 4) kafka consumer
	consumer, err := kafka.NewConsumer(kafka.Config{
		Brokers:        cfg.Kafka.Brokers,
		Topic:          cfg.Kafka.SeedTopic,
		GroupID:        cfg.Kafka.GroupID,
		MinBytes:       cfg.Kafka.MinBytes,
		MaxBytes:       cfg.Kafka.MaxBytes,
		CommitInterval: time.Duration(cfg.Kafka.CommitInterval) * time.Millisecond,
	})
	if err != nil {
		return err
	}
	defer func() {
		log.Info("dq-audit stopped", zap.Int64("lag", consumer.Lag()))
		_ = consumer.Close()
	}()

	w := worker.NewDQAudit(consumer, analyzer, log)

	// 5) graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("dq-audit started",
		zap.String("topic", consumer.Topic()),
		zap.String("group", cfg.Kafka.GroupID),
		zap.Bool("history", recorder != nil),
	)

	return w.Run(ctx)
}
