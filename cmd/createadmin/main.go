package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/vitrine-studio/vitrine/internal/app"
	"github.com/vitrine-studio/vitrine/internal/database"
	"github.com/vitrine-studio/vitrine/internal/services"
)

// passwordEnv lets scripts avoid passing the password on the command line.
const passwordEnv = "VITRINE_ADMIN_PASSWORD"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out, errOut io.Writer) error {
	fs := flag.NewFlagSet("vitrine-createadmin", flag.ContinueOnError)
	fs.SetOutput(errOut)

	var (
		configPath string
		username   string
		password   string
		email      string
	)
	fs.StringVar(&configPath, "config", "", "Path to configuration directory or file")
	fs.StringVar(&username, "username", "admin", "Administrator username")
	fs.StringVar(&password, "password", "", "Administrator password (defaults to $"+passwordEnv+")")
	fs.StringVar(&email, "email", "", "Optional contact email")
	fs.Usage = func() {
		fmt.Fprintf(errOut, "Usage:\n  createadmin -username <name> -password <secret> [-email <address>] [-config <path>]\n\nFlags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if password == "" {
		password = os.Getenv(passwordEnv)
	}
	if strings.TrimSpace(password) == "" {
		return fmt.Errorf("a password is required (use -password or $%s)", passwordEnv)
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	db, err := database.Open(cfg.Database.DatabaseOptions())
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer database.Close(db)

	if err := database.AutoMigrate(db); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	admins, err := services.NewAdminService(db, nil)
	if err != nil {
		return err
	}

	var emailPtr *string
	if strings.TrimSpace(email) != "" {
		emailPtr = &email
	}

	admin, created, err := admins.Upsert(ctx, username, password, emailPtr)
	if err != nil {
		return fmt.Errorf("save admin: %w", err)
	}

	if created {
		fmt.Fprintf(out, "admin %q created (id %d)\n", admin.Username, admin.ID)
	} else {
		fmt.Fprintf(out, "admin %q already existed, password reset\n", admin.Username)
	}
	return nil
}

func loadConfig(path string) (*app.Config, error) {
	if strings.TrimSpace(path) == "" {
		return app.LoadConfig()
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("config path %q: %w", path, err)
	}
	if info.IsDir() {
		return app.LoadConfig(path)
	}
	return app.LoadConfig(filepath.Dir(path))
}
