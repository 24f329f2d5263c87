// Command jobtracker-console is an interactive browser over the tracker's
// store. It reads the same environment as jobtracker-api.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/tbourn/go-jobtracker/internal/config"
	"github.com/tbourn/go-jobtracker/internal/console"
	"github.com/tbourn/go-jobtracker/internal/repo"
	"github.com/tbourn/go-jobtracker/internal/services"
	"github.com/tbourn/go-jobtracker/internal/sysutil"
)

func main() {
	_ = godotenv.Load()

	dbPath := flag.String("db", "", "SQLite file (overrides DB_PATH)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	sysutil.SetLogLevel(cfg.LogLevel)
	// stdout belongs to the REPL
	log.Logger = sysutil.NewLogger(os.Stderr, true)

	db, err := repo.Bootstrap(cfg.DB.Driver, sysutil.FirstNonEmpty(*dbPath, cfg.DB.Path), cfg.DB.DSN, false)
	if err != nil {
		log.Fatal().Err(err).Msg("open store")
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	m := services.NewManagers(db, repo.Gateway{}, cfg.List.Max)
	app := console.New(console.Services{
		Users:        m.Users,
		Companies:    m.Companies,
		Jobs:         m.Jobs,
		Applications: m.Applications,
		Activities:   m.Activities,
		Stats:        m.Stats,
	}, os.Stdin, os.Stdout, log.Logger)

	if err := app.Run(context.Background()); err != nil {
		log.Error().Err(err).Msg("console")
	}
}
