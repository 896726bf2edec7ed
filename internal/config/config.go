// Package config provides application configuration structures and helpers.
package config

import (
	"errors"
	"flag"
	"log"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

// fallbackLogFile is used when the configured log path is unwritable.
const fallbackLogFile = "resourcemonitor.log"

// ErrNoBucket is returned when no target bucket is configured.
var ErrNoBucket = errors.New("bucket is not configured (use -b or S3_BUCKET_NAME)")

// MonitorConfig holds the configuration settings for the monitor.
type MonitorConfig struct {
	Bucket          string        // S3 bucket metrics are published to (required)
	LogFile         string        // Log destination path
	SpoolDir        string        // Local dir for staging history payloads (optional)
	PollInterval    time.Duration // Interval between monitoring cycles
	HistoryInterval time.Duration // Minimum elapsed time between history uploads
	StatusAddr      string        // Address for the status endpoint, empty disables it
	Logger          *zap.SugaredLogger
}

// NewMonitorConfig creates a new MonitorConfig by parsing flags, an optional
// JSON config file, and environment variables (env wins over both).
func NewMonitorConfig() (*MonitorConfig, error) {
	cfg := &MonitorConfig{}
	var configPath string
	flag.StringVar(&cfg.Bucket, "b", "", "S3 bucket for metric uploads")
	flag.StringVar(&cfg.LogFile, "f", "/app/logs/resourcemonitor.log", "path to log file")
	flag.StringVar(&cfg.SpoolDir, "d", "", "local dir for staging history payloads")
	flag.DurationVar(&cfg.PollInterval, "i", time.Second, "poll interval")
	flag.DurationVar(&cfg.HistoryInterval, "y", 60*time.Second, "history upload interval")
	flag.StringVar(&cfg.StatusAddr, "s", "", "status endpoint address (empty disables)")
	flag.StringVar(&configPath, "c", "", "path to JSON config file")
	flag.Parse()

	if env := os.Getenv("CONFIG"); env != "" {
		configPath = env
	}
	if configPath != "" {
		if err := applyJSON(cfg, configPath); err != nil {
			return nil, err
		}
	}

	readMonitorEnvironment(cfg)

	if cfg.Bucket == "" {
		return nil, ErrNoBucket
	}

	cfg.LogFile = ensureWritable(cfg.LogFile)

	logCfg := zap.NewProductionConfig()
	logCfg.OutputPaths = []string{"stdout", cfg.LogFile}
	logger, err := logCfg.Build()
	if err != nil {
		return nil, err
	}
	cfg.Logger = logger.Sugar()

	return cfg, nil
}

func readMonitorEnvironment(cfg *MonitorConfig) {
	if bucket := os.Getenv("S3_BUCKET_NAME"); bucket != "" {
		cfg.Bucket = bucket
	}

	if logFile := os.Getenv("LOG_FILE"); logFile != "" {
		cfg.LogFile = logFile
	}

	if dataDir := os.Getenv("DATA_DIR"); dataDir != "" {
		cfg.SpoolDir = dataDir
	}

	pollIntervalEnv := os.Getenv("POLL_INTERVAL")
	if pollIntervalEnv != "" {
		v, err := time.ParseDuration(pollIntervalEnv)
		if err == nil {
			cfg.PollInterval = v
		} else {
			log.Printf("invalid POLL_INTERVAL env var: %v", err)
		}
	}

	historyIntervalEnv := os.Getenv("HISTORY_INTERVAL")
	if historyIntervalEnv != "" {
		v, err := time.ParseDuration(historyIntervalEnv)
		if err == nil {
			cfg.HistoryInterval = v
		} else {
			log.Printf("invalid HISTORY_INTERVAL env var: %v", err)
		}
	}

	if addr := os.Getenv("STATUS_ADDRESS"); addr != "" {
		cfg.StatusAddr = addr
	}
}

// ensureWritable verifies the log path can be appended to, creating parent
// directories as needed. Falls back to a file in the working directory when
// the configured location is unwritable.
func ensureWritable(path string) string {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Printf("log dir %s unavailable, falling back to %s: %v", dir, fallbackLogFile, err)
			return fallbackLogFile
		}
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		log.Printf("log file %s unwritable, falling back to %s: %v", path, fallbackLogFile, err)
		return fallbackLogFile
	}
	_ = f.Close()
	return path
}
