package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"labelcheck/internal/store"
)

var (
	newUserName     string
	newUserPassword string
	newUserRole     string
)

var createUserCmd = &cobra.Command{
	Use:   "create-user",
	Short: "Create an API account",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := store.Open(cfg.Database.DSN, cfg.Database.AutoMigrate)
		if err != nil {
			return err
		}
		if err := store.CreateUser(db, newUserName, newUserPassword, newUserRole); err != nil {
			return err
		}
		fmt.Printf("user %q created\n", newUserName)
		return nil
	},
}

func init() {
	createUserCmd.Flags().StringVar(&newUserName, "username", "", "account name")
	createUserCmd.Flags().StringVar(&newUserPassword, "password", "", "account password (min 6 chars)")
	createUserCmd.Flags().StringVar(&newUserRole, "role", "operator", "role to assign")
	createUserCmd.MarkFlagRequired("username")
	createUserCmd.MarkFlagRequired("password")
	rootCmd.AddCommand(createUserCmd)
}
