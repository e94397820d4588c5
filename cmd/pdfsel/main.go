package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jask/pdfsel/internal/config"
	"github.com/jask/pdfsel/internal/database"
	"github.com/jask/pdfsel/internal/database/repository"
	"github.com/jask/pdfsel/internal/document"
	"github.com/jask/pdfsel/internal/logger"
	"github.com/jask/pdfsel/internal/prefs"
	"github.com/jask/pdfsel/internal/service"
	"github.com/jask/pdfsel/internal/session"
	"github.com/jask/pdfsel/internal/tui"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	lg, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = lg.Sync() }()

	if err := database.RunMigrations(cfg.Database.Path); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	user, err := prefs.NewUserContext(cfg.Prefs.Path)
	if err != nil {
		log.Fatalf("prefs: %v", err)
	}

	recent := &service.RecentService{Recent: repository.NewRecentRepo(db), Logger: lg.Named("recent")}
	maintenance := &service.MaintenanceService{DB: db}

	app := tui.New(ctx, tui.Deps{
		Session:      session.New(user, lg.Named("session")),
		Loader:       document.NewLoader(cfg.Loader.Concurrency, lg.Named("loader")),
		Recent:       recent,
		Maintenance:  maintenance,
		Logger:       lg.Named("tui"),
		RecentLimit:  cfg.UI.RecentLimit,
		InitialPaths: os.Args[1:],
	})

	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if cfg.UI.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	lg.Info("starting", zap.String("db", cfg.Database.Path), zap.Int("initial_paths", len(os.Args)-1))
	if _, err := tea.NewProgram(app, opts...).Run(); err != nil {
		fmt.Printf("error: %v\n", err)
	}
}
