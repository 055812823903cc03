package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"labelcheck/internal/logger"
	"labelcheck/pkg/ocr"
	"labelcheck/pkg/verify"
)

var (
	verifyBrand   string
	verifyType    string
	verifyABV     string
	verifyNet     string
	verifyAsJSON  bool
	verifyShowOCR bool
)

var verifyCmd = &cobra.Command{
	Use:   "verify <image>",
	Short: "Verify a single label image from the command line",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		engine, closer, err := newEngine(cmd.Context())
		if err != nil {
			return err
		}
		if closer != nil {
			defer closer()
		}
		v := verify.New(engine, logger.WithComponent("verify"))
		rep, err := v.Verify(cmd.Context(), verify.Request{
			BrandName:   verifyBrand,
			ProductType: verifyType,
			ABV:         verifyABV,
			NetContents: verifyNet,
			Image:       data,
		})
		if err != nil {
			switch {
			case errors.Is(err, ocr.ErrDecode):
				return fmt.Errorf("could not read %s as an image", args[0])
			case errors.Is(err, ocr.ErrEngine):
				return fmt.Errorf("text recognition failed: %v", err)
			}
			return err
		}
		if verifyAsJSON {
			out, err := json.MarshalIndent(rep, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		}
		printReport(rep)
		return nil
	},
}

func printReport(rep *verify.Report) {
	for _, fr := range rep.Details {
		status := "MISS "
		if fr.Match {
			status = "MATCH"
		} else if fr.Err == "not provided" {
			status = "  -  "
		}
		line := fmt.Sprintf("%s  %-20s", status, fr.Field)
		if fr.Match {
			line += fmt.Sprintf("  found %q", fr.Found)
		} else if fr.Err != "" {
			line += "  " + fr.Err
		}
		fmt.Println(line)
	}
	if rep.OverallMatch {
		fmt.Println("overall: MATCH")
	} else {
		fmt.Println("overall: MISMATCH")
	}
	if verifyShowOCR {
		fmt.Println("--- extracted text ---")
		fmt.Println(rep.OCRText)
	}
}

func init() {
	verifyCmd.Flags().StringVar(&verifyBrand, "brand", "", "brand name printed on the label")
	verifyCmd.Flags().StringVar(&verifyType, "type", "", "product type or class")
	verifyCmd.Flags().StringVar(&verifyABV, "abv", "", "alcohol content, e.g. \"45%\" or \"45\"")
	verifyCmd.Flags().StringVar(&verifyNet, "net", "", "net contents, e.g. \"750 ml\"")
	verifyCmd.Flags().BoolVar(&verifyAsJSON, "json", false, "print the full report as JSON")
	verifyCmd.Flags().BoolVar(&verifyShowOCR, "show-text", false, "print the extracted label text")
	rootCmd.AddCommand(verifyCmd)
}
