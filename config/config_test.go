package config

import (
	"path/filepath"
	"testing"
	"time"
)

func TestSetupServerDefaults(t *testing.T) {
	t.Setenv("LOG_OUTPUT", "stderr")
	for _, key := range []string{
		"OUTPUT_PATH", "RENDER_SCALE", "RENDERER", "SERVER_PORT", "SERVER_ADDR",
		"DOWNLOAD_TIMEOUT_SECONDS", "SCRATCH_PATH", "SWEEP_INTERVAL_MINUTES",
		"SCRATCH_TTL_MINUTES",
	} {
		t.Setenv(key, "")
	}

	cfg, logger := SetupServer()
	if logger == nil {
		t.Fatal("Expected a logger, got nil")
	}
	if cfg.OutputPath != "output_image.jpg" {
		t.Errorf("Expected default output path, got %q", cfg.OutputPath)
	}
	if cfg.RenderScale != 2.0 {
		t.Errorf("Expected default scale 2.0, got %v", cfg.RenderScale)
	}
	if cfg.RendererBackend != "fitz" {
		t.Errorf("Expected default renderer fitz, got %q", cfg.RendererBackend)
	}
	if cfg.ListenAddrPort != "8000" {
		t.Errorf("Expected default port 8000, got %q", cfg.ListenAddrPort)
	}
	if cfg.DownloadTimeout() != 0 {
		t.Errorf("Expected no download timeout by default, got %v", cfg.DownloadTimeout())
	}
	if !filepath.IsAbs(cfg.ScratchPath) {
		t.Errorf("Expected absolute scratch path, got %q", cfg.ScratchPath)
	}
	if cfg.ScratchTTL() != 60*time.Minute {
		t.Errorf("Expected default scratch TTL of 60m, got %v", cfg.ScratchTTL())
	}
}

func TestSetupServerOverrides(t *testing.T) {
	t.Setenv("LOG_OUTPUT", "stderr")
	t.Setenv("OUTPUT_PATH", "combined.jpg")
	t.Setenv("RENDER_SCALE", "3.5")
	t.Setenv("RENDERER", "pdfium")
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("DOWNLOAD_TIMEOUT_SECONDS", "30")

	cfg, _ := SetupServer()
	if cfg.OutputPath != "combined.jpg" {
		t.Errorf("Expected output override, got %q", cfg.OutputPath)
	}
	if cfg.RenderScale != 3.5 {
		t.Errorf("Expected scale override 3.5, got %v", cfg.RenderScale)
	}
	if cfg.RendererBackend != "pdfium" {
		t.Errorf("Expected renderer override, got %q", cfg.RendererBackend)
	}
	if cfg.ListenAddrPort != "9000" {
		t.Errorf("Expected port override, got %q", cfg.ListenAddrPort)
	}
	if cfg.DownloadTimeout() != 30*time.Second {
		t.Errorf("Expected 30s timeout, got %v", cfg.DownloadTimeout())
	}
}

func TestGetEnvFloatInvalid(t *testing.T) {
	t.Setenv("RENDER_SCALE", "not-a-number")
	if got := getEnvFloat("RENDER_SCALE", 2.0); got != 2.0 {
		t.Errorf("Expected fallback to default on bad float, got %v", got)
	}
}

func TestGetEnvBoolInvalid(t *testing.T) {
	t.Setenv("SOME_FLAG", "not-a-bool")
	if got := getEnvBool("SOME_FLAG", true); got != true {
		t.Errorf("Expected fallback to default on bad bool, got %v", got)
	}
}

func TestGetEnvIntParses(t *testing.T) {
	t.Setenv("SWEEP_INTERVAL_MINUTES", "25")
	if got := getEnvInt("SWEEP_INTERVAL_MINUTES", 10); got != 25 {
		t.Errorf("Expected 25, got %d", got)
	}
}
