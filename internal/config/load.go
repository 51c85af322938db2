package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Load reads a YAML config file, applies MEETSCRIBE_* environment overrides
// and fills defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

// LoadDotEnv loads .env.local and .env from the working directory. Variables
// already present in the environment are never overwritten.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env.local", ".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("MEETSCRIBE_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("MEETSCRIBE_BROWSER_BIN"); v != "" {
		cfg.Browser.Bin = v
	}
	if v := os.Getenv("MEETSCRIBE_HEADLESS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("MEETSCRIBE_HEADLESS: %w", err)
		}
		cfg.Browser.Headful = !b
	}
	if v := os.Getenv("MEETSCRIBE_MAX_CONCURRENT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("MEETSCRIBE_MAX_CONCURRENT: %w", err)
		}
		cfg.Bot.MaxConcurrent = n
	}
	if v := os.Getenv("MEETSCRIBE_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("MEETSCRIBE_TRANSCRIPTS_DIR"); v != "" {
		cfg.Paths.Transcripts = v
	}
	if v := os.Getenv("MEETSCRIBE_INTAKE_DIR"); v != "" {
		cfg.Paths.Intake = v
	}
	if v := os.Getenv("GEMINI_API_KEYS"); v != "" {
		cfg.Gemini.APIKeys = splitList(v)
	}
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
