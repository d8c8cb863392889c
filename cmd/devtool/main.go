package main

import (
	"os"

	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := newDefaultRegistry().Dispatch(os.Stdout, os.Args[1:]); err != nil {
		PrintError("%v", err)
		os.Exit(1)
	}
}

func newDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&MigrateCommand{})
	r.Register(&SeedCommand{})
	r.Register(&WaitForDBCommand{})
	r.Register(&HealthCheckCommand{})
	r.Register(&BackupCommand{})
	r.Register(&DoctorCommand{})
	return r
}
