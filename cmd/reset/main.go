package main

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5"

	"github.com/vistalabs/vista/internal/config"
	"github.com/vistalabs/vista/internal/database"
	"github.com/vistalabs/vista/internal/database/migrations"
)

func main() {
	cfg, err := config.LoadUnvalidated()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	dbName := cfg.DBName

	// Connect to PostgreSQL server (postgres database to manage other databases)
	serverConnString := fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=disable",
		cfg.DBUser,
		cfg.DBPassword,
		cfg.DBHost,
		cfg.DBPort,
	)

	ctx := context.Background()
	serverPool, err := database.NewPool(ctx, database.PoolConfig{
		ConnString:      serverConnString,
		MaxConns:        2,
		ApplicationName: "vista-reset",
	})
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL server: %v", err)
	}
	defer serverPool.Close()

	ident := pgx.Identifier{dbName}.Sanitize()

	// Terminate existing connections to the database
	log.Printf("Terminating existing connections to database %s...\n", dbName)
	_, err = serverPool.Exec(ctx, `
		SELECT pg_terminate_backend(pg_stat_activity.pid)
		FROM pg_stat_activity
		WHERE pg_stat_activity.datname = $1
		AND pid <> pg_backend_pid()
	`, dbName)
	if err != nil {
		log.Printf("Warning: Failed to terminate connections: %v\n", err)
	}

	log.Printf("Dropping database %s if it exists...\n", dbName)
	if _, err := serverPool.Exec(ctx, "DROP DATABASE IF EXISTS "+ident); err != nil {
		log.Fatalf("Failed to drop database: %v", err)
	}

	log.Printf("Creating database %s...\n", dbName)
	if _, err := serverPool.Exec(ctx, "CREATE DATABASE "+ident); err != nil {
		log.Fatalf("Failed to create database: %v", err)
	}

	pool, err := database.NewPool(ctx, database.PoolConfigFrom(cfg))
	if err != nil {
		log.Fatalf("Failed to connect to %s: %v", dbName, err)
	}
	defer pool.Close()

	if err := migrations.UpPool(ctx, pool); err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}

	log.Println("\n✅ Database reset complete!")
}
