package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmehdipour/customer-lab/internal/config"
	"github.com/jmehdipour/customer-lab/internal/db"
	httpSrv "github.com/jmehdipour/customer-lab/internal/http"
	"github.com/jmehdipour/customer-lab/internal/kafka"
	"github.com/jmehdipour/customer-lab/internal/logger"
	"github.com/jmehdipour/customer-lab/internal/metrics"
	"github.com/jmehdipour/customer-lab/internal/repository"
	"github.com/jmehdipour/customer-lab/internal/service/dq"
	"github.com/jmehdipour/customer-lab/internal/service/masking"
	"github.com/jmehdipour/customer-lab/internal/service/perf"
	"github.com/jmehdipour/customer-lab/internal/service/search"
	"github.com/jmehdipour/customer-lab/internal/service/seed"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		log, err := logger.New(cfg.Log.Level)
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		defer func() { _ = log.Sync() }()

		metrics.MustRegister(prometheus.DefaultRegisterer)

		pg, err := openPostgres(cfg)
		if err != nil {
			return err
		}
		defer pg.Close()

		schema := repository.NewSchema(pg)
		if err := schema.EnsureTable(cmd.Context()); err != nil {
			return err
		}

		history, chDB, err := openHistory(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		if chDB != nil {
			defer func() { _ = chDB.Close() }()
		} else {
			log.Info("clickhouse not configured, history disabled")
		}

		redisClient, err := db.NewRedisClient(db.RedisOpts{
			Addr:        cfg.Redis.Addr,
			Password:    cfg.Redis.Password,
			DB:          cfg.Redis.DB,
			DialTimeout: cfg.Redis.DialTimeout,
		})
		if err != nil {
			return fmt.Errorf("redis connect: %w", err)
		}
		if redisClient != nil {
			defer func() { _ = redisClient.Close() }()
		}

		var events seed.EventPublisher
		if p := kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.SeedTopic); p != nil {
			defer func() { _ = p.Close() }()
			events = p
		}

		customers := repository.NewCustomersRepository(pg, cfg.Seed.BatchSize)

		server := httpSrv.NewServer(cfg, httpSrv.Deps{
			Seeder:  seed.New(customers, schema, events, cfg.Seed.DataFile, log),
			Schema:  schema,
			Search:  search.New(customers, masking.New(cfg.Masking.Salt)),
			Perf:    perf.NewComparator(pg, schema, history, log),
			DQ:      dq.NewAnalyzer(customers, history, log),
			History: history,
			Redis:   redisClient,
		}, log)

		errCh := make(chan error, 1)
		go func() {
			errCh <- server.Start(cfg.HTTP.Addr)
		}()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-sigCh:
			log.Info("signal received, shutting down", zap.String("signal", sig.String()))
		case err := <-errCh:
			if err != nil {
				log.Error("http server exited", zap.Error(err))
			}
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(ctx)

		return nil
	},
}
