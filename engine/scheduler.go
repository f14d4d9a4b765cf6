package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/drummonds/pdfstitch/config"
)

// InitializeSchedules starts the cron jobs for serve mode (currently just
// the scratch sweep). One-shot CLI runs clean up inline and never need it.
func InitializeSchedules(serverConfig config.ServerConfig) *cron.Cron {
	c := cron.New()
	var sweepJob cron.Job
	sweepJob = cron.FuncJob(func() {
		if err := sweepScratch(serverConfig.ScratchPath, serverConfig.ScratchTTL()); err != nil {
			Logger.Error("Scratch sweep failed", "path", serverConfig.ScratchPath, "error", err)
		}
	})
	sweepJob = cron.NewChain(cron.SkipIfStillRunning(cron.DefaultLogger)).Then(sweepJob) //ensure we don't kick off another if old one is still running
	c.AddJob(fmt.Sprintf("@every %dm", serverConfig.SweepIntervalMinutes), sweepJob)
	Logger.Info("Adding scratch sweep scheduler", "interval_minutes", serverConfig.SweepIntervalMinutes)
	c.Start()
	return c
}

// sweepScratch removes scratch files older than ttl. The scratch directory
// holds only flat per-request files; anything else is left alone.
func sweepScratch(scratchPath string, ttl time.Duration) error {
	entries, err := os.ReadDir(scratchPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	cutoff := time.Now().Add(-ttl)
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		path := filepath.Join(scratchPath, entry.Name())
		if err := os.Remove(path); err != nil {
			Logger.Warn("Failed to remove stale scratch file", "path", path, "error", err)
			continue
		}
		removed++
	}
	if removed > 0 {
		Logger.Info("Swept stale scratch files", "path", scratchPath, "removed", removed)
	}
	return nil
}
