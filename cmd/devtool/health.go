package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/vistalabs/vista/internal/handler"
)

type HealthCheckCommand struct {
	client *http.Client
}

func (c *HealthCheckCommand) Name() string {
	return "health-check"
}

func (c *HealthCheckCommand) Description() string {
	return "Check a running API (liveness, readiness, version)"
}

func (c *HealthCheckCommand) Run(args []string) error {
	baseURL := getEnv("API_URL", defaultAPIURL)
	if len(args) > 0 {
		baseURL = args[0]
	}
	baseURL = strings.TrimRight(baseURL, "/")

	PrintHeader(fmt.Sprintf("Health Check (%s)", baseURL))

	start := time.Now()
	if err := c.check(baseURL + "/healthz"); err != nil {
		PrintError("Liveness check failed: %v", err)
		return err
	}
	duration := time.Since(start)

	if err := c.check(baseURL + "/readyz"); err != nil {
		PrintError("Readiness check failed: %v", err)
		return err
	}

	var info handler.VersionInfo
	if err := c.getJSON(baseURL+"/version", &info); err == nil {
		PrintInfo("Version %s (store: %s)", info.Version, info.StoreDriver)
	}

	if duration > 1*time.Second {
		PrintWarning("Health check warning: slow response time (%v)", duration)
	} else {
		PrintSuccess("Health check passed (response time: %v)", duration)
	}
	return nil
}

func (c *HealthCheckCommand) httpClient() *http.Client {
	if c.client != nil {
		return c.client
	}
	return &http.Client{Timeout: 5 * time.Second}
}

func (c *HealthCheckCommand) check(url string) error {
	resp, err := c.httpClient().Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status code %d", resp.StatusCode)
	}
	return nil
}

func (c *HealthCheckCommand) getJSON(url string, out any) error {
	resp, err := c.httpClient().Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return json.NewDecoder(resp.Body).Decode(out)
}
