// Command migrate manages the LocalLoop database schema.
//
// Usage:
//
//	migrate [flags] <command> [args]
//
// Commands:
//
//	up              apply all pending migrations
//	down            roll back all migrations
//	steps <n>       apply n migrations (negative n rolls back)
//	version         print the current schema version
//	force <v>       set the schema version without running migrations
//	create <name>   create a new up/down migration pair
//	list            list migration files
package main

import (
	"flag"
	"fmt"
	stdlog "log"
	"os"
	"strconv"

	"go.uber.org/zap"

	"github.com/localloop/backend/internal/infrastructure/config"
	"github.com/localloop/backend/internal/infrastructure/logger"
	"github.com/localloop/backend/internal/infrastructure/migration"
)

func main() {
	var (
		path     = flag.String("path", "migrations", "Path to migration files")
		logLevel = flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	)
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
		os.Exit(2)
	}
	command := flag.Arg(0)

	log, err := logger.New(&logger.Config{
		Level:  *logLevel,
		Format: "console",
		Output: "stdout",
	})
	if err != nil {
		stdlog.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = log.Sync() }()

	// create and list work on files alone and need no database
	switch command {
	case "create":
		if flag.NArg() < 2 {
			log.Fatal("create requires a migration name")
		}
		pair, err := migration.Create(*path, flag.Arg(1))
		if err != nil {
			log.Fatal("Failed to create migration", zap.Error(err))
		}
		fmt.Println(pair.UpPath)
		fmt.Println(pair.DownPath)
		return
	case "list":
		files, err := migration.List(*path)
		if err != nil {
			log.Fatal("Failed to list migrations", zap.Error(err))
		}
		for _, f := range files {
			fmt.Println(f)
		}
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	runner, err := migration.NewRunnerFromURL(cfg.Database.DSN(), *path, log)
	if err != nil {
		log.Fatal("Failed to create migration runner", zap.Error(err))
	}
	defer func() {
		if err := runner.Close(); err != nil {
			log.Error("Error closing migration runner", zap.Error(err))
		}
	}()

	switch command {
	case "up":
		if err := runner.Up(); err != nil {
			log.Fatal("Migration failed", zap.Error(err))
		}
	case "down":
		if err := runner.Down(); err != nil {
			log.Fatal("Rollback failed", zap.Error(err))
		}
	case "steps":
		if flag.NArg() < 2 {
			log.Fatal("steps requires a count")
		}
		n, err := strconv.Atoi(flag.Arg(1))
		if err != nil {
			log.Fatal("Invalid step count", zap.String("value", flag.Arg(1)))
		}
		if err := runner.Steps(n); err != nil {
			log.Fatal("Migration steps failed", zap.Error(err))
		}
	case "version":
		version, dirty, err := runner.Version()
		if err != nil {
			log.Fatal("Failed to read version", zap.Error(err))
		}
		fmt.Printf("version: %d dirty: %v\n", version, dirty)
	case "force":
		if flag.NArg() < 2 {
			log.Fatal("force requires a version")
		}
		v, err := strconv.Atoi(flag.Arg(1))
		if err != nil {
			log.Fatal("Invalid version", zap.String("value", flag.Arg(1)))
		}
		if err := runner.Force(v); err != nil {
			log.Fatal("Force failed", zap.Error(err))
		}
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: migrate [flags] <command> [args]

Commands:
  up              apply all pending migrations
  down            roll back all migrations
  steps <n>       apply n migrations (negative n rolls back)
  version         print the current schema version
  force <v>       set the schema version without running migrations
  create <name>   create a new up/down migration pair
  list            list migration files

Flags:
`)
	flag.PrintDefaults()
}
