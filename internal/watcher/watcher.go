package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/nguyentantai21042004/meeting-notes/internal/logger"
)

// settleDelay gives writers that do not rename into place time to finish.
const settleDelay = 500 * time.Millisecond

type implWatcher struct {
	root          string
	dir           string
	handler       EventHandler
	logger        logger.Logger
	watcher       *fsnotify.Watcher
	maxConcurrent int
	semaphore     chan struct{}
	wg            sync.WaitGroup
}

// Start monitors the transcripts directory and hands each new transcription
// result to the handler. Handler errors are logged; the object stays in
// place so it can be re-submitted.
func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "Transcript watcher started (max concurrent: %d). Monitoring: %s", w.maxConcurrent, w.dir)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info(ctx, "Waiting for ongoing pipelines to complete...")
			w.wg.Wait()
			w.logger.Info(ctx, "Transcript watcher stopped")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}

			if !event.Has(fsnotify.Create) {
				continue
			}
			if !isTranscriptFile(event.Name) {
				w.logger.Debug(ctx, "Ignoring non-transcript file: %s", event.Name)
				continue
			}

			key, err := w.objectKey(event.Name)
			if err != nil {
				w.logger.Warn(ctx, "Ignoring %s: %v", event.Name, err)
				continue
			}
			w.logger.Info(ctx, "New transcription result: %s", key)

			time.Sleep(settleDelay)

			select {
			case w.semaphore <- struct{}{}:
				w.wg.Add(1)
				go func(key string) {
					defer w.wg.Done()
					defer func() { <-w.semaphore }()

					if err := w.handler(ctx, key); err != nil {
						w.logger.Error(ctx, "Failed to process %s: %v", key, err)
					}
				}(key)
			case <-ctx.Done():
				w.wg.Wait()
				return ctx.Err()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error(ctx, "Watcher error: %v", err)
		}
	}
}

// Stop closes the file watcher
func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}

// objectKey converts a path under the store root into a slash-separated key
func (w *implWatcher) objectKey(path string) (string, error) {
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		return "", err
	}
	if !filepath.IsLocal(rel) {
		return "", fmt.Errorf("path is outside the storage root")
	}
	return filepath.ToSlash(rel), nil
}

// isTranscriptFile reports whether path is a transcription result. Hidden
// files, including in-flight temp files, are skipped.
func isTranscriptFile(path string) bool {
	name := filepath.Base(path)
	if strings.HasPrefix(name, ".") {
		return false
	}
	return strings.EqualFold(filepath.Ext(name), ".json")
}
