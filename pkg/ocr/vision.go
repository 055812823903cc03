package ocr

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"os"
	"strings"

	vision "cloud.google.com/go/vision/apiv1"
	"google.golang.org/api/option"
)

// Vision extracts text with the Google Cloud Vision document-text API. The
// underlying client is safe for concurrent use and is shared across calls.
type Vision struct {
	client *vision.ImageAnnotatorClient
}

// NewVision builds a Vision engine with credentials taken from the
// environment: GOOGLE_CREDENTIALS (inline JSON), then
// GOOGLE_APPLICATION_CREDENTIALS (file path), then application default
// credentials.
func NewVision(ctx context.Context) (*Vision, error) {
	var opts []option.ClientOption
	if credJSON := os.Getenv("GOOGLE_CREDENTIALS"); credJSON != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(credJSON)))
	} else if credFile := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); credFile != "" {
		opts = append(opts, option.WithCredentialsFile(credFile))
	}
	client, err := vision.NewImageAnnotatorClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: create vision client: %v", ErrEngine, err)
	}
	return &Vision{client: client}, nil
}

func (v *Vision) Extract(ctx context.Context, img image.Image) (string, error) {
	buf, err := encodePNG(img)
	if err != nil {
		return "", fmt.Errorf("%w: encode: %v", ErrEngine, err)
	}
	vimg, err := vision.NewImageFromReader(bytes.NewReader(buf))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrEngine, err)
	}
	anno, err := v.client.DetectDocumentText(ctx, vimg, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrEngine, err)
	}
	if anno == nil {
		return "", nil
	}
	return strings.TrimSpace(anno.Text), nil
}

// Close releases the underlying API client.
func (v *Vision) Close() error {
	return v.client.Close()
}
