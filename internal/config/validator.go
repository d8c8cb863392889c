package config

import (
	"fmt"
	"os"
	"strings"
)

// ExpectedEnvSchemaVersion is the .env layout this build understands
const ExpectedEnvSchemaVersion = "1.0"

// RequiredEnvVars must be set in every deployment
var RequiredEnvVars = []string{
	"ENV_SCHEMA_VERSION",
	"API_KEY",
}

// PostgresEnvVars are additionally required when STORE_DRIVER=postgres
var PostgresEnvVars = []string{
	"DB_USER",
	"DB_PASSWORD",
	"DB_HOST",
	"DB_PORT",
	"DB_NAME",
}

// driverEnvVars lists what each store driver needs beyond RequiredEnvVars
var driverEnvVars = map[string][]string{
	StoreDriverPostgres: PostgresEnvVars,
	StoreDriverSQLite:   nil, // SQLITE_PATH has a default
	StoreDriverMemory:   nil,
}

// pairedEnvVars only make sense together; setting one without the other
// leaves the feature silently off.
var pairedEnvVars = [][2]string{
	{"DISCORD_TOKEN", "DISCORD_ALERT_CHANNEL_ID"},
	{"BACKUP_S3_ACCESS_KEY_ID", "BACKUP_S3_SECRET_ACCESS_KEY"},
}

// exampleValues are the placeholders shipped in the sample .env
var exampleValues = map[string]string{
	"DB_PASSWORD": "change_this_secure_password",
	"API_KEY":     "generate_with_openssl_rand_hex_32",
}

func isSet(key string) bool {
	return strings.TrimSpace(os.Getenv(key)) != ""
}

// ValidateEnv checks the schema version and that every variable required
// by the selected store driver is present.
func ValidateEnv() error {
	schemaVersion := os.Getenv("ENV_SCHEMA_VERSION")
	switch {
	case schemaVersion == "":
		return fmt.Errorf("ENV_SCHEMA_VERSION is not set - add it to your .env file (expected: %s)", ExpectedEnvSchemaVersion)
	case schemaVersion != ExpectedEnvSchemaVersion:
		return fmt.Errorf("ENV_SCHEMA_VERSION mismatch: expected %s, got %s - your .env file may be outdated", ExpectedEnvSchemaVersion, schemaVersion)
	}

	driver := strings.ToLower(strings.TrimSpace(os.Getenv("STORE_DRIVER")))
	if driver == "" {
		driver = StoreDriverMemory
	}
	required := append([]string(nil), RequiredEnvVars...)
	required = append(required, driverEnvVars[driver]...)

	var missing []string
	for _, key := range required {
		if !isSet(key) {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}

// ValidateEnvWithWarnings runs ValidateEnv and then reports non-fatal
// problems: placeholder secrets and half-configured optional features.
func ValidateEnvWithWarnings() ([]string, error) {
	if err := ValidateEnv(); err != nil {
		return nil, err
	}

	var warnings []string
	for _, key := range []string{"API_KEY", "DB_PASSWORD"} {
		if os.Getenv(key) == exampleValues[key] {
			warnings = append(warnings, fmt.Sprintf("%s is still the example value - generate one with: openssl rand -hex 32", key))
		}
	}
	for _, pair := range pairedEnvVars {
		if isSet(pair[0]) != isSet(pair[1]) {
			warnings = append(warnings, fmt.Sprintf("%s and %s must be set together", pair[0], pair[1]))
		}
	}
	if isSet("BACKUP_S3_ENDPOINT") && !isSet("BACKUP_S3_BUCKET") {
		warnings = append(warnings, "BACKUP_S3_ENDPOINT is set but BACKUP_S3_BUCKET is empty - backups are disabled")
	}
	return warnings, nil
}
