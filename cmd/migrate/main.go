package main

import (
	"flag"
	"fmt"
	"os"

	"catalog-backend/internal/config"
	"catalog-backend/internal/infrastructure/database"
	"catalog-backend/pkg/logger"

	"github.com/joho/godotenv"
)

const usage = `usage: migrate [-path file://migrations] <command>

commands:
  up          apply all pending migrations
  down [-n N] roll back N migrations (default 1)
  version     print the current schema version`

func main() {
	_ = godotenv.Load()
	logger.Init(os.Getenv("APP_ENV"), os.Getenv("LOG_LEVEL"))

	if err := run(os.Args[1:]); err != nil {
		logger.Error("migrate failed", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	global := flag.NewFlagSet("migrate", flag.ContinueOnError)
	source := global.String("path", envOr("MIGRATIONS_PATH", "file://migrations"), "migration source URL")
	if err := global.Parse(args); err != nil {
		return err
	}
	if global.NArg() == 0 {
		fmt.Fprintln(os.Stderr, usage)
		return fmt.Errorf("missing command")
	}

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return fmt.Errorf("load database config: %w", err)
	}

	migrator, err := database.NewMigrator(dbConfig.URL(), *source)
	if err != nil {
		return err
	}
	defer migrator.Close()

	command, rest := global.Arg(0), global.Args()[1:]
	switch command {
	case "up":
		return migrator.Up()

	case "down":
		downFlags := flag.NewFlagSet("down", flag.ContinueOnError)
		steps := downFlags.Int("n", 1, "number of migrations to roll back")
		if err := downFlags.Parse(rest); err != nil {
			return err
		}
		if *steps < 1 {
			return fmt.Errorf("-n must be at least 1")
		}
		return migrator.Down(*steps)

	case "version":
		version, dirty, err := migrator.Version()
		if err != nil {
			return err
		}
		fmt.Printf("version=%d dirty=%t\n", version, dirty)
		return nil

	default:
		fmt.Fprintln(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
