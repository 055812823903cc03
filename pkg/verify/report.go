package verify

import (
	"bytes"
	"encoding/json"
)

// FieldResult is the outcome of checking one submitted field against the
// extracted label text. Found is populated only when a matching snippet
// exists; Err is populated only when Match is false.
type FieldResult struct {
	Field    FieldID `json:"-"`
	Match    bool    `json:"match"`
	Expected string  `json:"expected"`
	Found    string  `json:"found,omitempty"`
	Err      string  `json:"error,omitempty"`
}

// Details holds one FieldResult per configured field, in evaluation order.
type Details []FieldResult

// Get returns the result recorded for a single field.
func (d Details) Get(id FieldID) (FieldResult, bool) {
	for _, fr := range d {
		if fr.Field == id {
			return fr, true
		}
	}
	return FieldResult{}, false
}

// MarshalJSON renders the details as a JSON object keyed by field ID,
// preserving the fixed evaluation order so identical inputs produce
// identical documents.
func (d Details) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, fr := range d {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(string(fr.Field))
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		type bare FieldResult // strip the custom Field handling
		val, err := json.Marshal(bare(fr))
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Report is the final verification outcome for one submission. OverallMatch
// is the AND of Match over the required fields only; optional fields are
// reported but never gate it. OCRText carries the full extracted text for
// operator review.
type Report struct {
	OverallMatch bool    `json:"overall_match"`
	Details      Details `json:"details"`
	OCRText      string  `json:"ocr_text"`
}
