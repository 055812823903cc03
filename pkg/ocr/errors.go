package ocr

import "errors"

var (
	// ErrDecode is returned when uploaded bytes are not a decodable raster image.
	ErrDecode = errors.New("cannot decode image")
	// ErrEngine is returned when the recognition backend is unavailable or faults.
	ErrEngine = errors.New("ocr engine failed")
)
