package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var listUser string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List a user's reminders",
	RunE: func(cmd *cobra.Command, args []string) error {
		orchestrator, err := newOrchestrator(cmd.Context())
		if err != nil {
			return err
		}

		reminders, err := orchestrator.List(cmd.Context(), listUser)
		if err != nil {
			return err
		}

		if len(reminders) == 0 {
			fmt.Printf("No reminders for user %s\n", listUser)
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tDUE\tEMAIL\tDESCRIPTION")
		for _, r := range reminders {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.ID, r.DateTime, r.Email, r.Description)
		}
		return w.Flush()
	},
}

func init() {
	listCmd.Flags().StringVar(&listUser, "user", "", "user ID (required)")
	_ = listCmd.MarkFlagRequired("user")
}
