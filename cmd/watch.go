package cmd

import (
	"github.com/spf13/cobra"

	"labelcheck/internal/ingest"
	"labelcheck/internal/logger"
	"labelcheck/pkg/verify"
)

var (
	watchDir     string
	watchWorkers int
	watchOnce    bool
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Verify label images dropped into a directory",
	Long: `watch pairs each image in the directory with a <name>.fields.json
sidecar and writes the result to <name>.report.json. With --once the
directory is processed a single time; otherwise it keeps watching for new
files until interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, closer, err := newEngine(cmd.Context())
		if err != nil {
			return err
		}
		if closer != nil {
			defer closer()
		}
		v := verify.New(engine, logger.WithComponent("verify"))
		p := ingest.New(v, logger.WithComponent("ingest"))
		if watchOnce {
			return p.ProcessDir(cmd.Context(), watchDir, watchWorkers)
		}
		return p.Watch(cmd.Context(), watchDir, watchWorkers)
	},
}

func init() {
	watchCmd.Flags().StringVar(&watchDir, "dir", ".", "directory holding label images and sidecars")
	watchCmd.Flags().IntVar(&watchWorkers, "workers", 0, "worker count (0 = one per CPU)")
	watchCmd.Flags().BoolVar(&watchOnce, "once", false, "process the directory once and exit")
	rootCmd.AddCommand(watchCmd)
}
