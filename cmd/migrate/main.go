package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"userapi/internal/config"
	"userapi/internal/db"
	"userapi/internal/logger"
	"userapi/internal/migrate"
)

func main() {
	status := flag.Bool("status", false, "print applied and pending migrations instead of applying them")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		boot := logger.New("info", "json")
		boot.Fatal().Err(err).Msg("config")
	}
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	gormDB, err := db.Open(cfg.DatabaseURL, db.Options{
		MaxOpenConns: 1,
		Logger:       logger.NewGormLogger(log, time.Second),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("database init")
	}
	defer db.Close(gormDB)

	m := migrate.New(gormDB, log)
	ctx := context.Background()

	if *status {
		rows, err := m.Status(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("migration status")
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tAPPLIED AT")
		for _, r := range rows {
			applied := "pending"
			if r.Applied() {
				applied = r.AppliedAt.Format(time.RFC3339)
			}
			fmt.Fprintf(w, "%s\t%s\n", r.ID, applied)
		}
		_ = w.Flush()
		return
	}

	applied, err := m.Up(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("migrate")
	}
	log.Info().Int("count", len(applied)).Strs("applied", applied).Msg("migrations complete")
}
