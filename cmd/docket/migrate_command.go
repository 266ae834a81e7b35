package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"docket/internal/audit"
	"docket/internal/migrate"
	"docket/internal/report"
)

func newMigrateCommand(ctx *commandContext) *cobra.Command {
	var apply bool
	var copyMode bool
	var includeReview bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Carry out the classification plan",
		Long: "Classifies the inventory and transfers each file into its planned " +
			"destination under the practice root. Every transfer is verified by " +
			"content digest before the source is trusted or removed. Without " +
			"--apply this is a dry run that only reports what would happen.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			records, err := loadManifest(cmd, ctx)
			if err != nil {
				return err
			}

			engine, err := buildEngine(cfg, ctx)
			if err != nil {
				return err
			}
			plan, err := engine.BuildPlan(cmd.Context(), records)
			if err != nil {
				return fmt.Errorf("build plan: %w", err)
			}

			executor := migrate.NewExecutor(migrate.Options{
				Root:          cfg.Paths.PracticeRoot,
				Move:          !copyMode,
				DryRun:        !apply,
				IncludeReview: includeReview,
			}, ctx.ensureLogger())
			summary, err := executor.Execute(cmd.Context(), plan.Results)
			if err != nil {
				return fmt.Errorf("execute migration: %w", err)
			}

			if err := report.AppendMigrationLog(cfg.MigrationLogPath(), summary.Entries); err != nil {
				return fmt.Errorf("append migration log: %w", err)
			}
			if apply {
				if err := auditSummary(cfg.AuditTrailPath(), summary); err != nil {
					return fmt.Errorf("append audit trail: %w", err)
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, report.MigrationTable(summary))
			if !apply {
				fmt.Fprintln(out, "Dry run; re-run with --apply to transfer files")
			}
			fmt.Fprintf(out, "Log: %s\n", cfg.MigrationLogPath())
			if summary.Errors > 0 {
				return fmt.Errorf("%d transfers failed; see %s", summary.Errors, cfg.MigrationLogPath())
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&apply, "apply", false, "Transfer files; without it nothing is touched")
	cmd.Flags().BoolVar(&copyMode, "copy", false, "Copy files instead of moving them")
	cmd.Flags().BoolVar(&includeReview, "include-review", false, "Also transfer files flagged for review")
	return cmd
}

func auditSummary(path string, summary *migrate.Summary) error {
	trail, err := audit.Open(path)
	if err != nil {
		return err
	}
	defer trail.Close()
	for _, entry := range summary.Entries {
		err := trail.Append(audit.Entry{
			Event:       audit.EventTransfer,
			Path:        entry.Source,
			Destination: entry.Destination,
			Rule:        entry.Rule,
			Confidence:  entry.Confidence,
			Action:      string(entry.Action),
			Verified:    entry.Verified,
			Note:        entry.Note,
		})
		if err != nil {
			return err
		}
	}
	return nil
}
