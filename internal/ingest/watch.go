package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watch processes the directory once, then keeps watching it and verifies
// images as they (or their sidecars) appear. It blocks until ctx is
// cancelled or the watcher fails.
func (p *Processor) Watch(ctx context.Context, dir string, workers int) error {
	if err := p.ProcessDir(ctx, dir, workers); err != nil {
		return err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	p.log.Info().Str("dir", dir).Msg("watching for label images")

	jobs := make(chan string)
	var wg sync.WaitGroup
	if workers <= 0 {
		workers = 1
	}
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				p.processOne(ctx, path)
			}
		}()
	}
	defer func() {
		close(jobs)
		wg.Wait()
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			if path := imageFor(event.Name); path != "" {
				select {
				case jobs <- path:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			p.log.Error().Err(err).Msg("watcher error")
		}
	}
}

// imageFor maps a changed file to the image it belongs to: the file itself
// when it is an image, or the paired image when a fields sidecar landed.
// Anything else (reports included) is ignored.
func imageFor(name string) string {
	if imageExt[strings.ToLower(filepath.Ext(name))] {
		return name
	}
	if strings.HasSuffix(name, ".fields.json") {
		base := strings.TrimSuffix(name, ".fields.json")
		for ext := range imageExt {
			if _, err := os.Stat(base + ext); err == nil {
				return base + ext
			}
		}
	}
	return ""
}
