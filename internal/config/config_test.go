package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.MaxPDFSizeMB != 500 {
		t.Errorf("MaxPDFSizeMB = %d, want 500", cfg.MaxPDFSizeMB)
	}
	if cfg.MaxPageCount != 10000 {
		t.Errorf("MaxPageCount = %d, want 10000", cfg.MaxPageCount)
	}
	if cfg.TopMargin != 72 {
		t.Errorf("TopMargin = %v, want 72", cfg.TopMargin)
	}
	if cfg.LineHeight != 20 {
		t.Errorf("LineHeight = %v, want 20", cfg.LineHeight)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("VIVAMARK_MAX_PDF_SIZE_MB", "100")
	t.Setenv("VIVAMARK_MAX_PAGE_COUNT", "250")
	t.Setenv("VIVAMARK_LINE_HEIGHT", "14.4")
	t.Setenv("VIVAMARK_DB_PATH", "/tmp/comments.db")

	cfg := Load()
	if cfg.MaxPDFSizeMB != 100 {
		t.Errorf("MaxPDFSizeMB = %d, want 100", cfg.MaxPDFSizeMB)
	}
	if cfg.MaxPageCount != 250 {
		t.Errorf("MaxPageCount = %d, want 250", cfg.MaxPageCount)
	}
	if cfg.LineHeight != 14.4 {
		t.Errorf("LineHeight = %v, want 14.4", cfg.LineHeight)
	}
	if cfg.DBPath != "/tmp/comments.db" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
}

func TestLoadEnvInvalidValuesFallBack(t *testing.T) {
	t.Setenv("VIVAMARK_MAX_PAGE_COUNT", "lots")
	t.Setenv("VIVAMARK_LINE_HEIGHT", "-5")

	cfg := Load()
	if cfg.MaxPageCount != 10000 {
		t.Errorf("MaxPageCount = %d, want default 10000", cfg.MaxPageCount)
	}
	if cfg.LineHeight != 20 {
		t.Errorf("LineHeight = %v, want default 20", cfg.LineHeight)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vivamark.yaml")
	data := "max_pdf_size_mb: 50\nline_height: 12\nserve_addr: \":8080\"\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.MaxPDFSizeMB != 50 {
		t.Errorf("MaxPDFSizeMB = %d, want 50", cfg.MaxPDFSizeMB)
	}
	if cfg.LineHeight != 12 {
		t.Errorf("LineHeight = %v, want 12", cfg.LineHeight)
	}
	if cfg.ServeAddr != ":8080" {
		t.Errorf("ServeAddr = %q, want :8080", cfg.ServeAddr)
	}
	// Unset fields keep their defaults.
	if cfg.MaxPageCount != 10000 {
		t.Errorf("MaxPageCount = %d, want default 10000", cfg.MaxPageCount)
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestLoadFileInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("max_pdf_size_mb: [oops"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Fatal("expected error for invalid yaml")
	}
}

func TestValidate(t *testing.T) {
	cfg := Load()
	cfg.LineHeight = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for zero line height")
	}
}
