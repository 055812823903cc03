// Package ocr turns label images into plain text.
//
// It owns the two steps that run before any field matching: image
// normalization (Prepare) and text extraction (Engine). Engine
// implementations wrap an external recognition backend; only plain text
// crosses that boundary.
package ocr

import (
	"context"
	"image"
)

// Engine extracts text from a normalized label image.
//
// A single extraction attempt is made per call; implementations must not
// retry internally. An engine that runs successfully but finds no text
// returns "" with a nil error. Implementations must be safe for concurrent
// use, since one engine instance is shared across requests.
type Engine interface {
	Extract(ctx context.Context, img image.Image) (string, error)
}
