// Package ingest runs label verification over files on disk. Each image in a
// directory is paired with a <name>.fields.json sidecar holding the submitted
// values; the result is written next to it as <name>.report.json.
package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"labelcheck/pkg/verify"
)

var imageExt = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

// FieldsFile is the sidecar format: the same fields an operator would type
// into the upload form.
type FieldsFile struct {
	BrandName   string `json:"brand_name"`
	ProductType string `json:"product_type"`
	ABV         string `json:"abv"`
	NetContents string `json:"net_contents"`
}

// Processor verifies label images found on disk.
type Processor struct {
	verifier *verify.Verifier
	log      zerolog.Logger
}

func New(verifier *verify.Verifier, log zerolog.Logger) *Processor {
	return &Processor{verifier: verifier, log: log}
}

// ProcessDir verifies every image in dir that has a fields sidecar, using a
// pool of workers. Images without a sidecar are skipped. workers <= 0 means
// one worker per CPU.
func (p *Processor) ProcessDir(ctx context.Context, dir string, workers int) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read dir: %w", err)
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	jobs := make(chan string)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				p.processOne(ctx, path)
			}
		}()
	}
	for _, e := range entries {
		if e.IsDir() || !imageExt[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		select {
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return ctx.Err()
		case jobs <- filepath.Join(dir, e.Name()):
		}
	}
	close(jobs)
	wg.Wait()
	return nil
}

// processOne verifies a single image against its sidecar and writes the
// report file. Missing sidecars are not an error: the image may still be
// waiting for its metadata.
func (p *Processor) processOne(ctx context.Context, imgPath string) {
	base := strings.TrimSuffix(imgPath, filepath.Ext(imgPath))
	fieldsPath := base + ".fields.json"
	reportPath := base + ".report.json"

	raw, err := os.ReadFile(fieldsPath)
	if err != nil {
		p.log.Debug().Str("image", imgPath).Msg("no fields sidecar, skipping")
		return
	}
	var fields FieldsFile
	if err := json.Unmarshal(raw, &fields); err != nil {
		p.log.Error().Err(err).Str("file", fieldsPath).Msg("bad fields sidecar")
		return
	}
	imgData, err := os.ReadFile(imgPath)
	if err != nil {
		p.log.Error().Err(err).Str("file", imgPath).Msg("cannot read image")
		return
	}
	rep, err := p.verifier.Verify(ctx, verify.Request{
		BrandName:   fields.BrandName,
		ProductType: fields.ProductType,
		ABV:         fields.ABV,
		NetContents: fields.NetContents,
		Image:       imgData,
	})
	if err != nil {
		p.log.Error().Err(err).Str("file", imgPath).Msg("verification failed")
		return
	}
	out, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		p.log.Error().Err(err).Msg("marshal report")
		return
	}
	if err := os.WriteFile(reportPath, out, 0o644); err != nil {
		p.log.Error().Err(err).Str("file", reportPath).Msg("write report")
		return
	}
	p.log.Info().Str("image", imgPath).Bool("overall_match", rep.OverallMatch).Msg("report written")
}
