package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/vistalabs/vista/internal/config"
	"github.com/vistalabs/vista/internal/database"
	"github.com/vistalabs/vista/internal/database/migrations"
)

type MigrateCommand struct{}

func (c *MigrateCommand) Name() string {
	return "migrate"
}

func (c *MigrateCommand) Description() string {
	return "Manage PostgreSQL migrations (up, status, reset)"
}

func (c *MigrateCommand) Run(args []string) error {
	if len(args) < 1 {
		return usageError(c, "up|status|reset")
	}

	cfg, err := config.LoadUnvalidated()
	if err != nil {
		return err
	}

	PrintInfo("Connecting to %s:%s/%s", cfg.DBHost, cfg.DBPort, cfg.DBName)
	ctx := context.Background()
	pool, err := database.NewPool(ctx, database.PoolConfigFrom(cfg))
	if err != nil {
		return err
	}
	defer pool.Close()

	switch args[0] {
	case "up":
		if err := migrations.UpPool(ctx, pool); err != nil {
			return err
		}
		PrintSuccess("Migrations applied")
	case "status":
		statuses, err := migrations.Status(ctx, pool)
		if err != nil {
			return err
		}
		PrintHeader("Migration status")
		for _, st := range statuses {
			fmt.Printf("  %05d  %-8s  %s\n", st.Source.Version, st.State, st.Source.Path)
		}
	case "reset":
		if !confirm(fmt.Sprintf("This drops every table in %s. Type %q to continue: ", cfg.DBName, confirmYes)) {
			PrintWarning("Reset cancelled")
			return nil
		}
		if err := migrations.Reset(ctx, pool); err != nil {
			return err
		}
		PrintSuccess("Schema reset")
	default:
		return fmt.Errorf("unknown subcommand: %s", args[0])
	}
	return nil
}

func confirm(prompt string) bool {
	fmt.Print(prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	return strings.TrimSpace(line) == confirmYes
}
