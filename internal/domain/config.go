package domain

import "time"

// Config represents the application configuration
type Config struct {
	Server       ServerConfig       `mapstructure:"server"`
	Download     DownloadConfig     `mapstructure:"download"`
	Instagram    InstagramConfig    `mapstructure:"instagram"`
	History      HistoryConfig      `mapstructure:"history"`
	Notification NotificationConfig `mapstructure:"notification"`
	Logging      LoggingConfig      `mapstructure:"logging"`
}

// ServerConfig contains server-related configuration
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// DownloadConfig contains download-related configuration
type DownloadConfig struct {
	// BaseDir is where downloads land; files are written under
	// BaseDir/social-media-downloader/<provider-id>/. Empty means the
	// OS downloads directory, discovered at startup.
	BaseDir         string        `mapstructure:"base_dir"`
	ConcurrentLimit int           `mapstructure:"concurrent_limit"`
	// FetchTimeout bounds a single asset fetch. Zero disables the bound.
	FetchTimeout time.Duration `mapstructure:"fetch_timeout"`
	UserAgent    string        `mapstructure:"user_agent"`
}

// InstagramConfig contains the source-site page contract knobs. The page
// user agent is configuration rather than policy: the site serves different
// markup without a browser-like header.
type InstagramConfig struct {
	PageUserAgent string `mapstructure:"page_user_agent"`
}

// HistoryConfig contains download-history persistence configuration
type HistoryConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	DatabasePath string `mapstructure:"database_path"`
}

// NotificationConfig contains desktop notification configuration
type NotificationConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Method  string `mapstructure:"method"` // osascript, notify-send
}

// LoggingConfig contains logging-related configuration
type LoggingConfig struct {
	Level      string `mapstructure:"level"`       // debug, info, warn, error
	Format     string `mapstructure:"format"`      // json, console
	OutputPath string `mapstructure:"output_path"` // stdout, stderr, or file path
}

// DefaultConcurrentLimit bounds simultaneous asset fetches. Two overlaps
// I/O latency without tripping the source site's abuse heuristics.
const DefaultConcurrentLimit = 2

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "localhost",
			Port: 8080,
		},
		Download: DownloadConfig{
			BaseDir:         "",
			ConcurrentLimit: DefaultConcurrentLimit,
			FetchTimeout:    0,
			UserAgent:       "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36",
		},
		Instagram: InstagramConfig{
			PageUserAgent: defaultUserAgent,
		},
		History: HistoryConfig{
			Enabled:      true,
			DatabasePath: "$HOME/.social-media-downloader/history.db",
		},
		Notification: NotificationConfig{
			Enabled: false,
			Method:  "notify-send",
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "console",
			OutputPath: "stdout",
		},
	}
}
