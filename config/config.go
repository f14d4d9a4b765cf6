package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Logger is global since we will need it everywhere
var Logger *slog.Logger

// ServerConfig contains all of the tool settings
type ServerConfig struct {
	ListenAddrIP           string
	ListenAddrPort         string
	OutputPath             string
	RenderScale            float64
	RendererBackend        string
	DownloadTimeoutSeconds int
	ScratchPath            string
	SweepIntervalMinutes   int
	ScratchTTLMinutes      int
}

// DownloadTimeout returns the outbound HTTP timeout; zero means no timeout.
func (c ServerConfig) DownloadTimeout() time.Duration {
	return time.Duration(c.DownloadTimeoutSeconds) * time.Second
}

// ScratchTTL returns how long scratch files are kept before the sweeper
// removes them.
func (c ServerConfig) ScratchTTL() time.Duration {
	return time.Duration(c.ScratchTTLMinutes) * time.Minute
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	boolVal, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return boolVal
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intVal, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return intVal
}

// getEnvFloat gets a float environment variable with a default value
func getEnvFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	floatVal, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}
	return floatVal
}

// SetupServer loads configuration and returns ServerConfig and Logger
func SetupServer() (ServerConfig, *slog.Logger) {
	serverConfigLive := ServerConfig{}

	// Load .env file (silently ignore if doesn't exist)
	_ = godotenv.Load(".env")
	_ = godotenv.Load("config.env")

	logger := setupLogging()
	Logger = logger

	// Load configuration from environment variables with defaults

	// Server configuration (serve mode only)
	serverConfigLive.ListenAddrPort = getEnv("SERVER_PORT", "8000")
	serverConfigLive.ListenAddrIP = getEnv("SERVER_ADDR", "")

	// Pipeline configuration
	serverConfigLive.OutputPath = getEnv("OUTPUT_PATH", "output_image.jpg")
	serverConfigLive.RenderScale = getEnvFloat("RENDER_SCALE", 2.0)
	serverConfigLive.RendererBackend = getEnv("RENDERER", "fitz")
	serverConfigLive.DownloadTimeoutSeconds = getEnvInt("DOWNLOAD_TIMEOUT_SECONDS", 0)

	// Scratch directory for downloads and uploaded documents
	scratchDir := filepath.ToSlash(getEnv("SCRATCH_PATH", filepath.Join(os.TempDir(), "pdfstitch")))
	scratchDirAbs, err := filepath.Abs(scratchDir)
	if err != nil {
		logger.Error("Failed creating absolute path for scratch directory", "error", err)
		scratchDirAbs = scratchDir
	}
	serverConfigLive.ScratchPath = scratchDirAbs

	serverConfigLive.SweepIntervalMinutes = getEnvInt("SWEEP_INTERVAL_MINUTES", 10)
	serverConfigLive.ScratchTTLMinutes = getEnvInt("SCRATCH_TTL_MINUTES", 60)

	logger.Debug("Configuration loaded",
		"output", serverConfigLive.OutputPath,
		"scale", serverConfigLive.RenderScale,
		"renderer", serverConfigLive.RendererBackend,
		"scratch", serverConfigLive.ScratchPath)

	return serverConfigLive, logger
}

// setupLogging configures the application logger
func setupLogging() *slog.Logger {
	logLevel := getEnv("LOG_LEVEL", "info")
	var level slog.Level

	switch logLevel {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	handlerOptions := &slog.HandlerOptions{Level: level}

	logOutput := getEnv("LOG_OUTPUT", "stderr")
	var logWriter io.Writer

	switch logOutput {
	case "stdout":
		logWriter = os.Stdout
	case "stderr":
		logWriter = os.Stderr
	default:
		logPath, err := filepath.Abs(filepath.ToSlash(getEnv("LOG_FILE", "pdfstitch.log")))
		if err != nil {
			fmt.Printf("Error creating log file path: %v\n", err)
			logWriter = os.Stderr
		} else {
			logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
			if err != nil {
				fmt.Printf("Failed to open log file: %v\n", err)
				logWriter = os.Stderr
			} else {
				logWriter = logFile
			}
		}
	}

	handler := slog.NewTextHandler(logWriter, handlerOptions)
	return slog.New(handler)
}
