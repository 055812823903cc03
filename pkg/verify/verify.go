// Package verify implements the label verification pipeline: normalize the
// uploaded image, extract its text, and check each submitted field against
// that text.
package verify

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"labelcheck/pkg/ocr"
)

// Request carries one operator submission: the typed-in field values plus
// the raw label image bytes. The transport layer guarantees the required
// fields are non-empty before a request reaches the pipeline; the matcher
// still degrades gracefully when they are not.
type Request struct {
	BrandName   string
	ProductType string
	ABV         string
	NetContents string
	Image       []byte
}

// Verifier runs the whole pipeline. It holds no per-request state, so one
// Verifier may serve concurrent requests.
type Verifier struct {
	engine ocr.Engine
	log    zerolog.Logger
}

func New(engine ocr.Engine, log zerolog.Logger) *Verifier {
	return &Verifier{engine: engine, log: log}
}

// Verify checks the submitted values against the text printed on the label
// image. It fails outright only when the image cannot be decoded
// (ocr.ErrDecode) or the extraction engine faults (ocr.ErrEngine); every
// per-field problem is absorbed into the returned Report instead, so a
// decodable image with a working engine always yields a usable result.
func (v *Verifier) Verify(ctx context.Context, req Request) (*Report, error) {
	img, err := ocr.Prepare(req.Image)
	if err != nil {
		return nil, fmt.Errorf("prepare image: %w", err)
	}
	text, err := v.engine.Extract(ctx, img)
	if err != nil {
		return nil, fmt.Errorf("extract text: %w", err)
	}
	v.log.Debug().Int("ocr_bytes", len(text)).Msg("label text extracted")

	rep := &Report{OverallMatch: true, OCRText: text}
	for _, spec := range fieldOrder {
		fr := checkField(spec, req.fieldValue(spec.ID), text)
		rep.Details = append(rep.Details, fr)
		if spec.Required && !fr.Match {
			rep.OverallMatch = false
		}
	}
	return rep, nil
}

func (r Request) fieldValue(id FieldID) string {
	switch id {
	case FieldBrandName:
		return r.BrandName
	case FieldProductType:
		return r.ProductType
	case FieldABV:
		return r.ABV
	case FieldNetContents:
		return r.NetContents
	case FieldGovernmentWarning:
		return GovernmentWarningText
	}
	return ""
}

func checkField(spec fieldSpec, expected, text string) FieldResult {
	fr := FieldResult{Field: spec.ID, Expected: strings.TrimSpace(expected)}
	if fr.Expected == "" {
		fr.Err = "not provided"
		return fr
	}
	if strings.TrimSpace(text) == "" {
		fr.Err = "no text found in label image"
		return fr
	}
	if spec.Numeric {
		want, err := normalizeNumber(fr.Expected)
		if err != nil {
			fr.Err = fmt.Sprintf("could not read a number from %q", fr.Expected)
			return fr
		}
		if ok, found := matchNumber(want, text); ok {
			fr.Match = true
			fr.Found = found
		} else {
			fr.Err = fmt.Sprintf("abv %q not found in label", fr.Expected)
		}
		return fr
	}
	if ok, found := matchText(fr.Expected, text); ok {
		fr.Match = true
		fr.Found = found
	} else {
		fr.Err = fmt.Sprintf("%q not found in label", fr.Expected)
	}
	return fr
}
