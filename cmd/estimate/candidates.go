package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var candidatesCmd = &cobra.Command{
	Use:   "candidates",
	Short: "List webhook URLs tried for the configured workflow endpoint",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		svc, _, err := loadServices(cmd)
		if err != nil {
			return err
		}
		for _, url := range svc.Notifier.Candidates() {
			fmt.Fprintln(cmd.OutOrStdout(), url)
		}
		return nil
	},
}
