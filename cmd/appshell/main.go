package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/appshell/internal/api"
	"github.com/jask/appshell/internal/config"
	"github.com/jask/appshell/internal/database"
	"github.com/jask/appshell/internal/database/repository"
	"github.com/jask/appshell/internal/logging"
	"github.com/jask/appshell/internal/sample"
	"github.com/jask/appshell/internal/tui"
)

func main() {
	reset := flag.Bool("reset", false, "delete all diary entries, transactions and sessions before starting")
	sampleData := flag.Bool("sample", false, "fill the database with sample records")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, closer, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatalf("logging: %v", err)
	}
	defer closer.Close()

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		log.Fatalf("mkdir db dir: %v", err)
	}

	if err := database.RunMigrations(cfg.Database.Path); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if *reset {
		if err := database.Reset(ctx, db); err != nil {
			log.Fatalf("reset: %v", err)
		}
		logger.Warn("user data reset")
	}

	if err := database.SeedDefaults(ctx, db); err != nil {
		log.Fatalf("seed defaults: %v", err)
	}

	diary := repository.NewDiaryRepo(db)
	ledger := repository.NewTransactionRepo(db)
	sessions := repository.NewPomodoroRepo(db)

	if *sampleData {
		now := time.Now()
		if err := sample.Seed(ctx, sample.Repos{Diary: diary, Transactions: ledger, Sessions: sessions}, now, uint64(now.UnixNano())); err != nil {
			log.Fatalf("sample data: %v", err)
		}
	}

	client := api.NewClient(api.Options{
		BaseURL:           cfg.API.BaseURL,
		Timeout:           cfg.API.Timeout,
		RequestsPerSecond: cfg.API.RequestsPerSecond,
		Burst:             cfg.API.Burst,
	})

	logger.WithField("db", cfg.Database.Path).Info("starting")

	p := tea.NewProgram(tui.New(ctx, tui.Deps{
		Numbers:  client,
		Diary:    diary,
		Ledger:   ledger,
		Sessions: sessions,
		Log:      logger,
		UI:       cfg.UI,
	}), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		logger.WithError(err).Error("program exited")
		fmt.Printf("error: %v\n", err)
	}
}
