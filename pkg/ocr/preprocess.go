package ocr

import (
	"bytes"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// contrastFactor is the fixed contrast boost applied after grayscale
// conversion: each pixel's deviation from the image mean is doubled.
const contrastFactor = 2.0

// Prepare decodes raw image bytes and normalizes them for text extraction:
// grayscale conversion followed by the fixed contrast boost. The input slice
// is never mutated. No resizing, denoising or rotation correction is done.
func Prepare(data []byte) (*image.NRGBA, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	gray := imaging.Grayscale(img)
	return stretchContrast(gray, contrastFactor), nil
}

// stretchContrast remaps every pixel so its deviation from the mean intensity
// is multiplied by factor, clipped to [0,255]. imaging.AdjustContrast pivots
// around mid-gray rather than the image mean, so the remap is done by hand.
func stretchContrast(img *image.NRGBA, factor float64) *image.NRGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return img
	}
	var sum uint64
	for y := 0; y < h; y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+w*4]
		for x := 0; x < w; x++ {
			sum += uint64(row[x*4])
		}
	}
	mean := float64(sum) / float64(w*h)

	out := imaging.Clone(img)
	for y := 0; y < h; y++ {
		row := out.Pix[y*out.Stride : y*out.Stride+w*4]
		for x := 0; x < w; x++ {
			v := mean + (float64(row[x*4])-mean)*factor
			if v < 0 {
				v = 0
			} else if v > 255 {
				v = 255
			}
			p := uint8(v + 0.5)
			row[x*4] = p
			row[x*4+1] = p
			row[x*4+2] = p
		}
	}
	return out
}

// encodePNG renders a normalized image into an in-memory PNG for engines
// that consume encoded bytes.
func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
