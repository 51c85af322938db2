package config

import (
	"fmt"
	"time"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Bot      BotConfig      `yaml:"bot"`
	Browser  BrowserConfig  `yaml:"browser"`
	Join     JoinConfig     `yaml:"join"`
	Capture  CaptureConfig  `yaml:"capture"`
	Callback CallbackConfig `yaml:"callback"`
	Paths    PathsConfig    `yaml:"paths"`
	Export   ExportConfig   `yaml:"export"`
	Logging  LoggingConfig  `yaml:"logging"`
	Gemini   GeminiConfig   `yaml:"gemini"`
}

type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type BotConfig struct {
	DisplayName   string        `yaml:"display_name"`
	MaxConcurrent int           `yaml:"max_concurrent"`
	ScheduleGrace time.Duration `yaml:"schedule_grace"`
}

type BrowserConfig struct {
	Bin               string        `yaml:"bin"`
	Headful           bool          `yaml:"headful"`
	UserAgent         string        `yaml:"user_agent"`
	Locale            string        `yaml:"locale"`
	ViewportWidth     int           `yaml:"viewport_width"`
	ViewportHeight    int           `yaml:"viewport_height"`
	NavigationTimeout time.Duration `yaml:"navigation_timeout"`
	IdleTimeout       time.Duration `yaml:"idle_timeout"`
	SettleDelay       time.Duration `yaml:"settle_delay"`
	SlowMotion        time.Duration `yaml:"slow_motion"`
}

type JoinConfig struct {
	ControlWait           time.Duration `yaml:"control_wait"`
	AdmissionTimeout      time.Duration `yaml:"admission_timeout"`
	AdmissionPollInterval time.Duration `yaml:"admission_poll_interval"`
	CaptionAttempts       int           `yaml:"caption_attempts"`
	OverlayAttempts       int           `yaml:"overlay_attempts"`
}

type CaptureConfig struct {
	PollInterval time.Duration `yaml:"poll_interval"`
}

type CallbackConfig struct {
	MaxRetries     int           `yaml:"max_retries"`
	InitialBackoff time.Duration `yaml:"initial_backoff"`
	MaxBackoff     time.Duration `yaml:"max_backoff"`
	Timeout        time.Duration `yaml:"timeout"`
}

type PathsConfig struct {
	Transcripts string `yaml:"transcripts"`
	Screenshots string `yaml:"screenshots"`
	Intake      string `yaml:"intake"`
}

type ExportConfig struct {
	Docx bool `yaml:"docx"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type GeminiConfig struct {
	Model   string   `yaml:"model"`
	APIKeys []string `yaml:"api_keys"`
}

func (c *Config) Validate() error {
	if c.Bot.MaxConcurrent < 0 {
		return fmt.Errorf("bot.max_concurrent must not be negative")
	}
	if c.Callback.MaxRetries < 0 {
		return fmt.Errorf("callback.max_retries must not be negative")
	}
	if c.Browser.ViewportWidth < 0 || c.Browser.ViewportHeight < 0 {
		return fmt.Errorf("browser viewport must not be negative")
	}
	if c.Paths.Transcripts == "" {
		return fmt.Errorf("paths.transcripts is required")
	}

	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 30 * time.Second
	}
	if c.Bot.DisplayName == "" {
		c.Bot.DisplayName = "Alexa"
	}
	if c.Bot.MaxConcurrent == 0 {
		c.Bot.MaxConcurrent = 10
	}
	if c.Bot.ScheduleGrace == 0 {
		c.Bot.ScheduleGrace = 30 * time.Second
	}
	if c.Browser.UserAgent == "" {
		c.Browser.UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"
	}
	if c.Browser.Locale == "" {
		c.Browser.Locale = "en-US"
	}
	if c.Browser.ViewportWidth == 0 {
		c.Browser.ViewportWidth = 1280
	}
	if c.Browser.ViewportHeight == 0 {
		c.Browser.ViewportHeight = 720
	}
	if c.Browser.NavigationTimeout == 0 {
		c.Browser.NavigationTimeout = 60 * time.Second
	}
	if c.Browser.IdleTimeout == 0 {
		c.Browser.IdleTimeout = 20 * time.Second
	}
	if c.Browser.SettleDelay == 0 {
		c.Browser.SettleDelay = 3 * time.Second
	}
	if c.Join.ControlWait == 0 {
		c.Join.ControlWait = 15 * time.Second
	}
	if c.Join.AdmissionTimeout == 0 {
		c.Join.AdmissionTimeout = 120 * time.Second
	}
	if c.Join.AdmissionPollInterval == 0 {
		c.Join.AdmissionPollInterval = 3 * time.Second
	}
	if c.Join.CaptionAttempts == 0 {
		c.Join.CaptionAttempts = 5
	}
	if c.Join.OverlayAttempts == 0 {
		c.Join.OverlayAttempts = 5
	}
	if c.Capture.PollInterval == 0 {
		c.Capture.PollInterval = 300 * time.Millisecond
	}
	if c.Callback.MaxRetries == 0 {
		c.Callback.MaxRetries = 3
	}
	if c.Callback.InitialBackoff == 0 {
		c.Callback.InitialBackoff = 2 * time.Second
	}
	if c.Callback.MaxBackoff == 0 {
		c.Callback.MaxBackoff = 10 * time.Second
	}
	if c.Callback.Timeout == 0 {
		c.Callback.Timeout = 15 * time.Second
	}
	if c.Paths.Screenshots == "" {
		c.Paths.Screenshots = "data/screenshots"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "json"
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-flash"
	}

	return nil
}
