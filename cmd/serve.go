package cmd

import (
	"github.com/spf13/cobra"

	"labelcheck/internal/logger"
	"labelcheck/internal/server"
	"labelcheck/internal/store"
	"labelcheck/pkg/verify"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the verification HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := store.Open(cfg.Database.DSN, cfg.Database.AutoMigrate)
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
		srv := server.New(cfg, db, v)
		logger.WithComponent("server").Info().Str("addr", cfg.Server.Addr).Str("engine", cfg.OCR.Engine).Msg("listening")
		return srv.Run()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
