package ingest

import (
	"context"
	"encoding/json"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog"

	"labelcheck/pkg/verify"
)

type fakeEngine struct {
	text string
	err  error
}

func (f fakeEngine) Extract(_ context.Context, _ image.Image) (string, error) {
	return f.text, f.err
}

func writeLabelPNG(t *testing.T, path string) {
	t.Helper()
	img := imaging.New(8, 8, color.Gray{Y: 128})
	if err := imaging.Save(img, path); err != nil {
		t.Fatalf("save png: %v", err)
	}
}

func writeFields(t *testing.T, path string, f FieldsFile) {
	t.Helper()
	raw, err := json.Marshal(f)
	if err != nil {
		t.Fatalf("marshal fields: %v", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatalf("write fields: %v", err)
	}
}

func TestProcessDirWritesReports(t *testing.T) {
	dir := t.TempDir()
	writeLabelPNG(t, filepath.Join(dir, "label.png"))
	writeFields(t, filepath.Join(dir, "label.fields.json"), FieldsFile{
		BrandName:   "Old Tom",
		ProductType: "Gin",
		ABV:         "40%",
	})

	p := newTestProcessor("OLD TOM\nGIN\nALC. 40% BY VOL.")
	if err := p.ProcessDir(context.Background(), dir, 2); err != nil {
		t.Fatalf("ProcessDir: %v", err)
	}

	raw, err := os.ReadFile(filepath.Join(dir, "label.report.json"))
	if err != nil {
		t.Fatalf("report not written: %v", err)
	}
	var rep struct {
		OverallMatch bool `json:"overall_match"`
	}
	if err := json.Unmarshal(raw, &rep); err != nil {
		t.Fatalf("unmarshal report: %v", err)
	}
	if !rep.OverallMatch {
		t.Fatalf("overall_match = false, want true: %s", raw)
	}
}

func TestProcessDirSkipsImagesWithoutSidecar(t *testing.T) {
	dir := t.TempDir()
	writeLabelPNG(t, filepath.Join(dir, "orphan.png"))

	p := newTestProcessor("anything")
	if err := p.ProcessDir(context.Background(), dir, 1); err != nil {
		t.Fatalf("ProcessDir: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "orphan.report.json")); !os.IsNotExist(err) {
		t.Fatal("report written for image without sidecar")
	}
}

func TestProcessDirIgnoresNonImages(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hi"), 0o644); err != nil {
		t.Fatal(err)
	}
	p := newTestProcessor("anything")
	if err := p.ProcessDir(context.Background(), dir, 1); err != nil {
		t.Fatalf("ProcessDir: %v", err)
	}
}

func TestImageFor(t *testing.T) {
	dir := t.TempDir()
	writeLabelPNG(t, filepath.Join(dir, "a.png"))

	if got := imageFor(filepath.Join(dir, "a.png")); got != filepath.Join(dir, "a.png") {
		t.Errorf("imageFor(image) = %q", got)
	}
	if got := imageFor(filepath.Join(dir, "a.fields.json")); got != filepath.Join(dir, "a.png") {
		t.Errorf("imageFor(sidecar) = %q, want paired image", got)
	}
	if got := imageFor(filepath.Join(dir, "a.report.json")); got != "" {
		t.Errorf("imageFor(report) = %q, want empty", got)
	}
	if got := imageFor(filepath.Join(dir, "b.fields.json")); got != "" {
		t.Errorf("imageFor(sidecar without image) = %q, want empty", got)
	}
}

func newTestProcessor(text string) *Processor {
	return New(verify.New(fakeEngine{text: text}, zerolog.Nop()), zerolog.Nop())
}
