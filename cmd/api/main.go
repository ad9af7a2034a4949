package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/credito/internal/client"
	clientStore "github.com/MrJamesThe3rd/credito/internal/client/store"
	"github.com/MrJamesThe3rd/credito/internal/config"
	"github.com/MrJamesThe3rd/credito/internal/database"
	"github.com/MrJamesThe3rd/credito/internal/export"
	creditoHttp "github.com/MrJamesThe3rd/credito/internal/http"
	"github.com/MrJamesThe3rd/credito/internal/http/auth"
	clientHandler "github.com/MrJamesThe3rd/credito/internal/http/client"
	exportHandler "github.com/MrJamesThe3rd/credito/internal/http/export"
	importHandler "github.com/MrJamesThe3rd/credito/internal/http/importcsv"
	loanHandler "github.com/MrJamesThe3rd/credito/internal/http/loan"
	portfolioHandler "github.com/MrJamesThe3rd/credito/internal/http/portfolio"
	txHandler "github.com/MrJamesThe3rd/credito/internal/http/transaction"
	"github.com/MrJamesThe3rd/credito/internal/importer"
	"github.com/MrJamesThe3rd/credito/internal/loan"
	loanStore "github.com/MrJamesThe3rd/credito/internal/loan/store"
	"github.com/MrJamesThe3rd/credito/internal/portfolio"
	"github.com/MrJamesThe3rd/credito/internal/transaction"
	txStore "github.com/MrJamesThe3rd/credito/internal/transaction/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if len(os.Args) > 1 && os.Args[1] == "token" {
		if err := issueToken(cfg, os.Args[2:]); err != nil {
			slog.Error("failed to issue token", "error", err)
			os.Exit(1)
		}

		return
	}

	if err := serve(cfg); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

// issueToken prints a bearer token for the API, e.g. `api token -sub admin -ttl 24h`.
func issueToken(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("token", flag.ContinueOnError)
	sub := fs.String("sub", "admin", "token subject")
	ttl := fs.Duration("ttl", 24*time.Hour, "token lifetime")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cfg.Auth.JWTSecret == "" {
		return errors.New("JWT_SECRET is not set")
	}

	token, err := auth.Issue(cfg.Auth.JWTSecret, *sub, *ttl, time.Now())
	if err != nil {
		return err
	}

	fmt.Println(token)

	return nil
}

func serve(cfg *config.Config) error {
	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := database.Migrate(ctx, db); err != nil {
		return err
	}

	clients := clientStore.New(db)

	var (
		transactionService = transaction.NewService(txStore.New(db))
		loanService        = loan.NewService(loanStore.New(db), clients, cfg.Lending.DefaultInterestRate, time.Now)
		clientService      = client.NewService(clients, loanService, time.Now)
		portfolioService   = portfolio.NewService(loanService, transactionService, clientService, time.Now)
		importService      = importer.NewService(loanService)
		exportService      = export.NewService(transactionService)
	)

	if cfg.Auth.JWTSecret == "" {
		slog.Warn("JWT_SECRET not set, API is unauthenticated")
	}

	router := creditoHttp.New(
		creditoHttp.Options{JWTSecret: cfg.Auth.JWTSecret, CORSOrigins: cfg.Server.CORSOrigins},
		clientHandler.NewHandler(clientService),
		loanHandler.NewHandler(loanService),
		importHandler.NewHandler(importService),
		txHandler.NewHandler(transactionService),
		exportHandler.NewHandler(exportService),
		portfolioHandler.NewHandler(portfolioService),
	)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown failed", "error", err)
		}
	}()

	slog.Info("starting server", "app", cfg.App.Name, "addr", srv.Addr)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
