package main

import (
	"fmt"

	"github.com/vistalabs/vista/internal/config"
)

type DoctorCommand struct{}

func (c *DoctorCommand) Name() string {
	return "doctor"
}

func (c *DoctorCommand) Description() string {
	return "Diagnose environment issues (env schema + db + api)"
}

func (c *DoctorCommand) Run(args []string) error {
	PrintHeader("Running Doctor...")

	hasError := false

	warnings, err := config.ValidateEnvWithWarnings()
	if err != nil {
		PrintError("Environment check failed: %v", err)
		hasError = true
	} else {
		for _, w := range warnings {
			PrintWarning("%s", w)
		}
		PrintSuccess("Environment OK")
	}

	cfg, err := config.LoadUnvalidated()
	if err != nil {
		PrintError("Config failed to load: %v", err)
		return fmt.Errorf("doctor found issues")
	}

	if cfg.StoreDriver == config.StoreDriverPostgres {
		if err := pingDB(cfg.GetDBConnString()); err != nil {
			PrintError("Database check failed: %v", err)
			hasError = true
		} else {
			PrintSuccess("Database OK")
		}
	} else {
		PrintInfo("Store driver %s needs no database", cfg.StoreDriver)
	}

	healthCmd := &HealthCheckCommand{}
	if err := healthCmd.Run(nil); err != nil {
		PrintWarning("API not reachable: %v", err)
	}

	if hasError {
		return fmt.Errorf("doctor found issues")
	}

	PrintSuccess("All systems operational!")
	return nil
}
