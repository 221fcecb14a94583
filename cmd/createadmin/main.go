// Package main provides a tool to create an admin account from the command
// line.
//
// Usage:
//
//	go run ./cmd/createadmin --email admin@example.com --password secret123
package main

import (
	"context"
	"encoding/hex"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/cookeryapp/cookery-server/internal/auth"
	"github.com/cookeryapp/cookery-server/internal/config"
	"github.com/cookeryapp/cookery-server/internal/logger"
	"github.com/cookeryapp/cookery-server/internal/service"
	"github.com/cookeryapp/cookery-server/internal/store/sqlite"
)

var (
	email    = flag.String("email", "", "Admin email address (required)")
	password = flag.String("password", "", "Admin password (required)")
	name     = flag.String("name", "", "Display name")
)

func main() {
	// LoadConfig registers its own flags and parses the command line once,
	// picking up the flags defined above as well.
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if *email == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "both --email and --password are required")
		flag.Usage()
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Level:       slog.LevelWarn,
		Environment: cfg.App.Environment,
	})

	st, err := sqlite.Open(cfg.DatabasePath(), log.Logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	key, err := auth.LoadOrGenerateKey(cfg.Data.BasePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load auth key: %v\n", err)
		os.Exit(1)
	}

	tokens, err := auth.NewTokenService(hex.EncodeToString(key), cfg.Auth.AccessTokenDuration, cfg.Auth.RefreshTokenDuration)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create token service: %v\n", err)
		os.Exit(1)
	}

	authService := service.NewAuthService(st, tokens, log.Logger)

	user, err := authService.CreateAdmin(context.Background(), *email, *password, *name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create admin: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Created admin %s (%s)\n", user.Email, user.ID)
}
