package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	deleteUser string
	deleteID   string
)

var deleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete a reminder and cancel its trigger",
	RunE: func(cmd *cobra.Command, args []string) error {
		orchestrator, err := newOrchestrator(cmd.Context())
		if err != nil {
			return err
		}

		ok, err := orchestrator.Delete(cmd.Context(), deleteUser, deleteID)
		if err != nil {
			return err
		}
		if ok {
			fmt.Printf("Deleted reminder %s for user %s\n", deleteID, deleteUser)
		}
		return nil
	},
}

func init() {
	deleteCmd.Flags().StringVar(&deleteUser, "user", "", "user ID (required)")
	deleteCmd.Flags().StringVar(&deleteID, "id", "", "reminder ID (required)")
	_ = deleteCmd.MarkFlagRequired("user")
	_ = deleteCmd.MarkFlagRequired("id")
}
