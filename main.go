package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"upkeep/clock"
	"upkeep/config"
	"upkeep/models"
	"upkeep/notify"
	"upkeep/routes"
	"upkeep/scheduler"
	"upkeep/services"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "upkeep",
		Short: "Maintenance work-order lifecycle and scheduling engine",
	}
	rootCmd.AddCommand(serveCmd(), sweepCmd(), migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the sweep scheduler",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, engine, err := bootstrap()
			if err != nil {
				return err
			}

			if err := db.AutoMigrate(models.All()...); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}

			sched := scheduler.New(engine, cfg.SweepInterval)
			sched.Start(context.Background())
			defer sched.Stop(10 * time.Second)

			r := routes.SetupRouter(db, engine, cfg)
			return r.Run(cfg.HTTPAddr)
		},
	}
}

func sweepCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Run the auto-close sweep once and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, engine, err := bootstrap()
			if err != nil {
				return err
			}

			res, err := engine.RunAutoClose(time.Now())
			if err != nil {
				return err
			}
			out, _ := json.Marshal(res)
			fmt.Println(string(out))
			return nil
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, _, err := bootstrap()
			if err != nil {
				return err
			}
			return db.AutoMigrate(models.All()...)
		},
	}
}

func bootstrap() (*config.Config, *gorm.DB, *services.Engine, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load config: %w", err)
	}

	db, err := config.ConnectDB(cfg)
	if err != nil {
		return nil, nil, nil, err
	}

	civil, err := clock.New(cfg.Timezone)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("timezone %q: %w", cfg.Timezone, err)
	}

	var sink notify.Sink = notify.LogSink{}
	if cfg.RedisAddr != "" {
		redisSink := notify.NewRedisSink(cfg.RedisAddr, cfg.RedisChannel)
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := redisSink.Ping(ctx); err != nil {
			log.Printf("redis %s unreachable, falling back to log sink: %v", cfg.RedisAddr, err)
		} else {
			sink = redisSink
		}
	}

	return cfg, db, services.NewEngine(db, sink, civil), nil
}
