package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"docket/internal/audit"
)

func newAuditCommand(ctx *commandContext) *cobra.Command {
	var last int

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Show recent audit trail entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			entries, err := audit.Read(cfg.AuditTrailPath())
			if err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("read audit trail: %w", err)
			}
			if last > 0 && len(entries) > last {
				entries = entries[len(entries)-last:]
			}
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "Audit trail is empty")
				return nil
			}
			for _, entry := range entries {
				line := fmt.Sprintf("%s  %-10s %s", entry.Timestamp.Format("2006-01-02 15:04:05"), entry.Event, entry.Path)
				if entry.Destination != "" {
					line += " -> " + entry.Destination
				}
				if entry.Note != "" {
					line += " (" + entry.Note + ")"
				}
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&last, "last", 20, "Show only the most recent N entries (0 for all)")
	return cmd
}
