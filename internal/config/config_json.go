package config

import (
	"encoding/json"
	"flag"
	"os"
	"time"
)

type monitorJSON struct {
	Bucket          *string `json:"bucket"`
	LogFile         *string `json:"log_file"`
	SpoolDir        *string `json:"spool_dir"`
	PollInterval    *string `json:"poll_interval"`    // "1s"
	HistoryInterval *string `json:"history_interval"` // "60s"
	StatusAddr      *string `json:"status_address"`
}

// applyJSON fills cfg from a JSON config file. Values set explicitly on the
// command line keep precedence over the file.
func applyJSON(cfg *MonitorConfig, path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var jc monitorJSON
	if err := json.Unmarshal(b, &jc); err != nil {
		return err
	}

	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if jc.Bucket != nil && !set["b"] {
		cfg.Bucket = *jc.Bucket
	}
	if jc.LogFile != nil && !set["f"] {
		cfg.LogFile = *jc.LogFile
	}
	if jc.SpoolDir != nil && !set["d"] {
		cfg.SpoolDir = *jc.SpoolDir
	}
	if jc.PollInterval != nil && !set["i"] {
		d, err := time.ParseDuration(*jc.PollInterval)
		if err != nil {
			return err
		}
		cfg.PollInterval = d
	}
	if jc.HistoryInterval != nil && !set["y"] {
		d, err := time.ParseDuration(*jc.HistoryInterval)
		if err != nil {
			return err
		}
		cfg.HistoryInterval = d
	}
	if jc.StatusAddr != nil && !set["s"] {
		cfg.StatusAddr = *jc.StatusAddr
	}
	return nil
}
