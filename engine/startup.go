package engine

import (
	"fmt"
	"os"

	"github.com/drummonds/pdfstitch/config"
)

// StartupChecks performs all the checks to make sure everything works
func (serverHandler *ServerHandler) StartupChecks() error {
	return scratchDirectoryChecks(serverHandler.ServerConfig)
}

// scratchDirectoryChecks ensures the scratch directory exists
func scratchDirectoryChecks(serverConfig config.ServerConfig) error {
	if serverConfig.ScratchPath == "" {
		Logger.Warn("Scratch path not configured")
		return nil
	}

	scratchInfo, err := os.Stat(serverConfig.ScratchPath)
	if err != nil {
		if os.IsNotExist(err) {
			Logger.Info("Creating scratch directory", "path", serverConfig.ScratchPath)
			err = os.MkdirAll(serverConfig.ScratchPath, 0755)
			if err != nil {
				Logger.Error("Failed to create scratch directory", "path", serverConfig.ScratchPath, "error", err)
				return err
			}
			return nil
		}
		Logger.Error("Error checking scratch directory", "path", serverConfig.ScratchPath, "error", err)
		return err
	}

	if !scratchInfo.IsDir() {
		Logger.Error("Scratch path exists but is not a directory", "path", serverConfig.ScratchPath)
		return fmt.Errorf("scratch path is not a directory: %s", serverConfig.ScratchPath)
	}

	return nil
}
