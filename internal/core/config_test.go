package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

// writeConfigFile stages a config.yaml in a fresh directory and clears
// viper's process-wide state so tests do not see each other's paths.
func writeConfigFile(t *testing.T, contents string) string {
	t.Helper()
	viper.Reset()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(contents), 0o644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}
	return dir
}

func TestLoadConfig(t *testing.T) {
	dir := writeConfigFile(t, `
server_url: wss://cm.example.test/cmsocket/
logging:
  log_level: debug
client:
  receive_timeout_ms: 250
library:
  enabled: true
debugging:
  metrics_port: 9180
`)

	config := LoadConfig(dir)

	if config.ServerURL != "wss://cm.example.test/cmsocket/" {
		t.Errorf("ServerURL = %q", config.ServerURL)
	}
	if config.Logging.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", config.Logging.LogLevel)
	}
	if config.Client.ReceiveTimeoutMs != 250 {
		t.Errorf("ReceiveTimeoutMs = %d, want 250", config.Client.ReceiveTimeoutMs)
	}
	if !config.Library.Enabled {
		t.Error("Library.Enabled = false, want true")
	}
	if config.Debugging.MetricsPort != 9180 {
		t.Errorf("MetricsPort = %d, want 9180", config.Debugging.MetricsPort)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	dir := writeConfigFile(t, "server_url: wss://cm.example.test/cmsocket/\n")

	config := LoadConfig(dir)

	if config.Client.ReceiveTimeoutMs != 100 {
		t.Errorf("ReceiveTimeoutMs = %d, want default 100", config.Client.ReceiveTimeoutMs)
	}
	if config.Client.Language != "english" {
		t.Errorf("Language = %q, want default english", config.Client.Language)
	}
	if config.Logging.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want default info", config.Logging.LogLevel)
	}
	if config.Library.Filename != "steamlink.db" {
		t.Errorf("Library.Filename = %q, want default steamlink.db", config.Library.Filename)
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	dir := writeConfigFile(t, `
server_url: wss://cm.example.test/cmsocket/
client:
  language: english
`)
	t.Setenv("STEAMLINK_CLIENT_LANGUAGE", "german")

	config := LoadConfig(dir)

	if config.Client.Language != "german" {
		t.Errorf("Language = %q, want env override german", config.Client.Language)
	}
}
