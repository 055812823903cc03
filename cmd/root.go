// Package cmd defines the labelcheck command-line interface.
package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"labelcheck/internal/config"
	"labelcheck/internal/logger"
	"labelcheck/pkg/ocr"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "labelcheck",
	Short: "Verify product label images against submitted metadata",
	Long: `labelcheck extracts the text printed on a product label image and
checks the operator-submitted values (brand name, product type, alcohol
content, net contents) against it, plus the presence of the mandatory
government warning.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = config.Load()
		return logger.Setup(cfg.Log.Level, cfg.Log.Format)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// newEngine builds the configured OCR engine. The returned closer is nil for
// engines without resources to release.
func newEngine(ctx context.Context) (ocr.Engine, func() error, error) {
	switch cfg.OCR.Engine {
	case "", "tesseract":
		return ocr.NewTesseract(cfg.OCR.TesseractLang), nil, nil
	case "vision":
		v, err := ocr.NewVision(ctx)
		if err != nil {
			return nil, nil, err
		}
		return v, v.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown OCR_ENGINE %q (want tesseract or vision)", cfg.OCR.Engine)
	}
}
