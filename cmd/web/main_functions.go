package main

import (
	"context"
	"errors"
	"log"
	"os"
	"time"

	"github.com/go-while/go-probview/internal/indexer"
)

const (
	updateFilePath  = ".update"  // triggers a graceful shutdown
	reindexFilePath = ".reindex" // triggers one index pass
)

// monitorTriggerFiles checks for the trigger files every interval until ctx ends.
// A found file is consumed before acting on it.
func monitorTriggerFiles(ctx context.Context, idx *indexer.Indexer, interval time.Duration, shutdownChan chan<- bool) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Printf("[WEB]: Trigger file monitor started, checking for '%s' and '%s' every %s", updateFilePath, reindexFilePath, interval)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		if consumeTriggerFile(reindexFilePath, os.Remove) {
			run, err := idx.RunOnce(ctx)
			switch {
			case errors.Is(err, indexer.ErrBusy):
				log.Printf("[WEB]: Reindex requested while a pass is running, skipped")
			case err != nil:
				log.Printf("[WEB]: Reindex failed: %v", err)
			default:
				log.Printf("[WEB]: Reindex %s: %d indexed, %d failed, %d pruned", run.ID, run.Indexed, run.Failed, run.Pruned)
			}
		}

		if consumeTriggerFile(updateFilePath, func(path string) error { return os.Rename(path, path+".todo") }) {
			select {
			case shutdownChan <- true:
				log.Printf("[WEB]: Shutdown signal sent via update file monitor")
			default:
				log.Printf("[WEB]: Shutdown channel already signaled")
			}
			return
		}
	}
}

// consumeTriggerFile reports whether path existed and was consumed
func consumeTriggerFile(path string, consume func(string) error) bool {
	if _, err := os.Stat(path); err != nil {
		return false
	}
	log.Printf("[WEB]: Trigger file '%s' detected", path)
	if err := consume(path); err != nil {
		log.Printf("[WEB]: Warning: Failed to consume trigger file '%s': %v", path, err)
		return false
	}
	return true
}
