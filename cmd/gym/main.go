package main

import (
	"fmt"
	"log"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/felipeleveke/gym-sub000/internal/cli"
	"github.com/felipeleveke/gym-sub000/internal/config"
	"github.com/felipeleveke/gym-sub000/internal/db"
	"github.com/felipeleveke/gym-sub000/internal/draft"
	"github.com/felipeleveke/gym-sub000/internal/history"
	"github.com/felipeleveke/gym-sub000/internal/routine"
	"github.com/felipeleveke/gym-sub000/internal/submit"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfgPath := os.Getenv("GYM_CONFIG")
	if cfgPath == "" {
		cfgPath = config.DefaultPath()
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	database, err := db.OpenDB(cfg.Storage.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	logger := log.New(os.Stderr, "gym: ", log.LstdFlags)

	sender := submit.NewClient(cfg.Server.URL, cfg.Server.APIKey)
	uow := db.NewSQLiteUnitOfWork(database)

	app := &cli.App{
		Config:   cfg,
		DB:       database,
		UoW:      uow,
		Drafts:   draft.NewSQLiteStore(database),
		History:  history.NewSQLiteStore(database),
		Routines: routine.NewClient(cfg.Server.URL, cfg.Server.APIKey),
		Submit:   submit.NewService(sender, uow, nil),
		Logger:   logger,
	}

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
