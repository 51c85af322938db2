package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name: "valid config",
			config: Config{
				Paths: PathsConfig{Transcripts: "data/transcripts"},
			},
			wantErr: false,
		},
		{
			name:    "missing transcripts path",
			config:  Config{},
			wantErr: true,
		},
		{
			name: "negative concurrency",
			config: Config{
				Bot:   BotConfig{MaxConcurrent: -1},
				Paths: PathsConfig{Transcripts: "data/transcripts"},
			},
			wantErr: true,
		},
		{
			name: "negative retries",
			config: Config{
				Callback: CallbackConfig{MaxRetries: -2},
				Paths:    PathsConfig{Transcripts: "data/transcripts"},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateDefaults(t *testing.T) {
	cfg := Config{Paths: PathsConfig{Transcripts: "out"}}
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}

	if cfg.Bot.MaxConcurrent != 10 {
		t.Errorf("MaxConcurrent = %d, want 10", cfg.Bot.MaxConcurrent)
	}
	if cfg.Bot.ScheduleGrace != 30*time.Second {
		t.Errorf("ScheduleGrace = %v, want 30s", cfg.Bot.ScheduleGrace)
	}
	if cfg.Bot.DisplayName != "Alexa" {
		t.Errorf("DisplayName = %q, want Alexa", cfg.Bot.DisplayName)
	}
	if cfg.Join.AdmissionTimeout != 120*time.Second {
		t.Errorf("AdmissionTimeout = %v, want 120s", cfg.Join.AdmissionTimeout)
	}
	if cfg.Capture.PollInterval != 300*time.Millisecond {
		t.Errorf("PollInterval = %v, want 300ms", cfg.Capture.PollInterval)
	}
	if cfg.Callback.MaxRetries != 3 || cfg.Callback.InitialBackoff != 2*time.Second || cfg.Callback.MaxBackoff != 10*time.Second {
		t.Errorf("Callback = %+v, want 3 retries 2s..10s", cfg.Callback)
	}
}

func TestLoad(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "config-*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())

	content := `
server:
  addr: ":9090"

bot:
  display_name: "Scribe"
  max_concurrent: 4

browser:
  navigation_timeout: "45s"

capture:
  poll_interval: "500ms"

paths:
  transcripts: "data/transcripts"

logging:
  level: "debug"
  format: "console"
`

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tmpfile.Name())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Addr != ":9090" {
		t.Errorf("Addr = %v, want %v", cfg.Server.Addr, ":9090")
	}
	if cfg.Bot.MaxConcurrent != 4 {
		t.Errorf("MaxConcurrent = %v, want 4", cfg.Bot.MaxConcurrent)
	}
	if cfg.Browser.NavigationTimeout != 45*time.Second {
		t.Errorf("NavigationTimeout = %v, want 45s", cfg.Browser.NavigationTimeout)
	}
	if cfg.Capture.PollInterval != 500*time.Millisecond {
		t.Errorf("PollInterval = %v, want 500ms", cfg.Capture.PollInterval)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("paths:\n  transcripts: out\n"), 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("MEETSCRIBE_ADDR", ":7000")
	t.Setenv("MEETSCRIBE_HEADLESS", "false")
	t.Setenv("MEETSCRIBE_MAX_CONCURRENT", "2")
	t.Setenv("GEMINI_API_KEYS", "k1, k2,")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Addr != ":7000" {
		t.Errorf("Addr = %v, want :7000", cfg.Server.Addr)
	}
	if !cfg.Browser.Headful {
		t.Error("Headful = false, want true")
	}
	if cfg.Bot.MaxConcurrent != 2 {
		t.Errorf("MaxConcurrent = %d, want 2", cfg.Bot.MaxConcurrent)
	}
	if len(cfg.Gemini.APIKeys) != 2 || cfg.Gemini.APIKeys[1] != "k2" {
		t.Errorf("APIKeys = %v, want [k1 k2]", cfg.Gemini.APIKeys)
	}
}

func TestLoadEnvOverrideInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("paths:\n  transcripts: out\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("MEETSCRIBE_MAX_CONCURRENT", "many")

	if _, err := Load(path); err == nil {
		t.Error("Load() should fail on a non-numeric MEETSCRIBE_MAX_CONCURRENT")
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	if err := os.WriteFile(envPath, []byte("MEETSCRIBE_TEST_DOTENV=from-file\nMEETSCRIBE_TEST_PRESET=from-file\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("MEETSCRIBE_TEST_PRESET", "from-env")
	t.Setenv("MEETSCRIBE_TEST_DOTENV", "")
	os.Unsetenv("MEETSCRIBE_TEST_DOTENV")

	if err := LoadDotEnv(filepath.Join(dir, ".env.local"), envPath); err != nil {
		t.Fatalf("LoadDotEnv() error = %v", err)
	}
	if got := os.Getenv("MEETSCRIBE_TEST_DOTENV"); got != "from-file" {
		t.Errorf("MEETSCRIBE_TEST_DOTENV = %q, want from-file", got)
	}
	if got := os.Getenv("MEETSCRIBE_TEST_PRESET"); got != "from-env" {
		t.Errorf("MEETSCRIBE_TEST_PRESET = %q, want from-env", got)
	}
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := Load("nonexistent.yaml")
	if err == nil {
		t.Error("Load() should return error for nonexistent file")
	}
}
