package main

import (
	"context"
	"flag"

	"bookscan/internal/config"
	"bookscan/internal/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

func main() {
	var (
		command = flag.String("command", "up", "Migration command: up, down, status, version, create")
		name    = flag.String("name", "", "Name for 'create' command")
	)
	flag.Parse()

	config.LoadEnvFiles()
	log := logger.Must(logger.Config{Level: "info"})
	defer func() { _ = log.Sync() }()

	dir := migrationsDir()
	log = log.With(logger.String("command", *command), logger.String("dir", dir))

	if *command == "create" {
		if *name == "" {
			log.Fatal("name is required for 'create' command")
		}
		if err := goose.Create(nil, dir, *name, "sql"); err != nil {
			log.Fatal("create migration", logger.Error(err))
		}
		log.Info("migration created", logger.String("name", *name))
		return
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, databaseDSN())
	if err != nil {
		log.Fatal("connect to database", logger.Error(err))
	}
	defer pool.Close()

	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	goose.SetBaseFS(nil)
	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatal("set dialect", logger.Error(err))
	}

	switch *command {
	case "up":
		err = goose.UpContext(ctx, db, dir)
	case "down":
		err = goose.DownContext(ctx, db, dir)
	case "status":
		err = goose.StatusContext(ctx, db, dir)
	case "version":
		err = goose.VersionContext(ctx, db, dir)
	default:
		log.Fatal("unknown command, use: up, down, status, version, create")
	}
	if err != nil {
		log.Fatal("migration failed", logger.Error(err))
	}
	log.Info("migration command finished")
}
