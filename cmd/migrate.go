package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"labelcheck/internal/store"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations and seed master data",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := store.Open(cfg.Database.DSN, true); err != nil {
			return err
		}
		fmt.Println("migration and seeding completed")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
