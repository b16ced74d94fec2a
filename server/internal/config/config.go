package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Default values for the server configuration.
const (
	DefaultHTTPPort          = 8080
	DefaultBroadcastInterval = 30 * time.Second
	DefaultCSVPath           = "data/Anscombe_quartet_data.csv"
	DefaultNotebookPath      = "data/quartet_notebook.html"
	DefaultChartWidth        = 300
	DefaultChartHeight       = 300
	DefaultTrendColor        = "red"
)

// Config holds the full configuration tree parsed from the YAML file.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Data   DataConfig   `yaml:"data"`
	Charts ChartsConfig `yaml:"charts"`
}

// ServerConfig holds listener and push settings.
type ServerConfig struct {
	// HTTPPort is the port the pages, API, websocket and /metrics listen on (default 8080).
	HTTPPort int `yaml:"http_port"`

	// BroadcastInterval is the keep-alive period of the websocket hub. Reloads are
	// pushed immediately regardless. Default: 30s.
	BroadcastInterval time.Duration `yaml:"broadcast_interval"`
}

// DataConfig locates the input files.
type DataConfig struct {
	// CSVPath is the quartet CSV with columns x123,y1,y2,y3,x4,y4.
	CSVPath string `yaml:"csv_path"`

	// NotebookPath is the exported notebook HTML embedded by the notebook view.
	NotebookPath string `yaml:"notebook_path"`

	// Watch reloads CSVPath when it changes on disk. A nil pointer means the
	// key was absent and defaults to true.
	Watch *bool `yaml:"watch"`
}

// WatchEnabled returns the effective value of Watch.
func (d DataConfig) WatchEnabled() bool {
	return d.Watch == nil || *d.Watch
}

// ChartsConfig controls chart rendering.
type ChartsConfig struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	TrendColor string `yaml:"trend_color"`
}

// Load reads and parses the config file at path.
// Missing fields are filled with defaults before validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %q: %w", path, err)
	}

	cfg := Defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}

// Defaults returns a Config pre-populated with default values.
func Defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:          DefaultHTTPPort,
			BroadcastInterval: DefaultBroadcastInterval,
		},
		Data: DataConfig{
			CSVPath:      DefaultCSVPath,
			NotebookPath: DefaultNotebookPath,
		},
		Charts: ChartsConfig{
			Width:      DefaultChartWidth,
			Height:     DefaultChartHeight,
			TrendColor: DefaultTrendColor,
		},
	}
}

// Validate checks structural constraints on cfg.
func Validate(cfg *Config) error {
	if cfg.Server.HTTPPort <= 0 || cfg.Server.HTTPPort > 65535 {
		return fmt.Errorf("server.http_port %d is out of range [1, 65535]", cfg.Server.HTTPPort)
	}
	if cfg.Server.BroadcastInterval <= 0 {
		return fmt.Errorf("server.broadcast_interval must be positive")
	}
	if cfg.Data.CSVPath == "" {
		return fmt.Errorf("data.csv_path is required")
	}
	if cfg.Charts.Width < 50 || cfg.Charts.Height < 50 {
		return fmt.Errorf("charts.width and charts.height must be at least 50, got %dx%d",
			cfg.Charts.Width, cfg.Charts.Height)
	}
	return nil
}
