package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// Input limits
	MaxPDFSizeMB int64 `yaml:"max_pdf_size_mb"`
	MaxPageCount int   `yaml:"max_page_count"`

	// Line estimation constants (points)
	TopMargin  float64 `yaml:"top_margin"`
	LineHeight float64 `yaml:"line_height"`

	// Optional comment archive (sqlite path, empty disables)
	DBPath string `yaml:"db_path"`

	// Optional review server address (empty disables)
	ServeAddr string `yaml:"serve_addr"`
}

func Load() Config {
	cfg := Config{
		MaxPDFSizeMB: envInt64("VIVAMARK_MAX_PDF_SIZE_MB", 500),
		MaxPageCount: envInt("VIVAMARK_MAX_PAGE_COUNT", 10000),
		TopMargin:    envFloat("VIVAMARK_TOP_MARGIN", 72),
		LineHeight:   envFloat("VIVAMARK_LINE_HEIGHT", 20),
		DBPath:       os.Getenv("VIVAMARK_DB_PATH"),
		ServeAddr:    os.Getenv("VIVAMARK_SERVE_ADDR"),
	}

	if cfg.MaxPDFSizeMB <= 0 {
		cfg.MaxPDFSizeMB = 500
	}
	if cfg.MaxPageCount <= 0 {
		cfg.MaxPageCount = 10000
	}
	if cfg.TopMargin < 0 {
		cfg.TopMargin = 72
	}
	if cfg.LineHeight <= 0 {
		cfg.LineHeight = 20
	}

	return cfg
}

// LoadFile layers a YAML config file over the env defaults. Zero
// fields in the file keep their defaulted values.
func LoadFile(path string) (Config, error) {
	cfg := Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config file: %w", err)
	}

	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return cfg, fmt.Errorf("unmarshal config: %w", err)
	}

	if file.MaxPDFSizeMB > 0 {
		cfg.MaxPDFSizeMB = file.MaxPDFSizeMB
	}
	if file.MaxPageCount > 0 {
		cfg.MaxPageCount = file.MaxPageCount
	}
	if file.TopMargin > 0 {
		cfg.TopMargin = file.TopMargin
	}
	if file.LineHeight > 0 {
		cfg.LineHeight = file.LineHeight
	}
	if file.DBPath != "" {
		cfg.DBPath = file.DBPath
	}
	if file.ServeAddr != "" {
		cfg.ServeAddr = file.ServeAddr
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if c.MaxPDFSizeMB <= 0 {
		return fmt.Errorf("max_pdf_size_mb must be positive")
	}
	if c.MaxPageCount <= 0 {
		return fmt.Errorf("max_page_count must be positive")
	}
	if c.LineHeight <= 0 {
		return fmt.Errorf("line_height must be positive")
	}
	return nil
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
