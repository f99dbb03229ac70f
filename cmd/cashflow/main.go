package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/kwadhq/cashflow-commander/internal/config"
	"github.com/kwadhq/cashflow-commander/internal/repository/sqlite"
	"github.com/kwadhq/cashflow-commander/internal/service"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Initialize zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENV") != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Open database
	db, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	defer db.Close()

	// Initialize repositories
	transactionRepo := sqlite.NewTransactionRepository(db)
	categoryRepo := sqlite.NewCategoryRepository(db)
	userRepo := sqlite.NewUserRepository(db)
	loginLogRepo := sqlite.NewLoginLogRepository(db)

	// Initialize services
	transactionService := service.NewTransactionService(transactionRepo, categoryRepo)
	categoryService := service.NewCategoryService(categoryRepo)
	reportService := service.NewReportService(transactionRepo)
	authService := service.NewAuthServiceWithLoginLimit(userRepo, loginLogRepo, cfg.LoginRatePerMinute, cfg.LoginBurst)

	// First run bootstraps the admin account
	if err := authService.EnsureBootstrapAdmin(cfg.AdminUsername, cfg.AdminPassword); err != nil {
		log.Fatal().Err(err).Msg("Failed to ensure bootstrap admin")
	}

	a := &app{
		cfg:          cfg,
		transactions: transactionService,
		categories:   categoryService,
		reports:      reportService,
		auth:         authService,
		stdin:        bufio.NewReader(os.Stdin),
		stdout:       os.Stdout,
	}

	if err := a.run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
