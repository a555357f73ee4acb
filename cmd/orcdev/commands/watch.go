package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/orcdev/internal/app"
)

func (c *CLI) newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch both project trees and rebuild on change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			noFrontend, _ := cmd.Flags().GetBool("no-frontend")
			grace, _ := cmd.Flags().GetDuration("grace")
			jsonLogs, _ := cmd.Flags().GetBool("log-json")

			return c.app.Run(cmd.Context(), app.RunOptions{
				NoFrontend: noFrontend,
				Grace:      grace,
				JSONLogs:   jsonLogs,
			})
		},
	}
	cmd.Flags().Bool("no-frontend", false, "Skip starting the front-end watch process")
	cmd.Flags().Duration("grace", 0, "Override the shutdown grace period")
	cmd.Flags().Bool("log-json", false, "Emit logs as JSON")
	return cmd
}
