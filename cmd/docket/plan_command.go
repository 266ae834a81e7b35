package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"docket/internal/classify"
	"docket/internal/config"
	"docket/internal/extract"
	"docket/internal/report"
)

func newPlanCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Build a classification plan for the inventory",
		Long: "Evaluates the rule set against every inventoried file and writes " +
			"the per-file destination plan as CSV. No files are touched; run " +
			"`docket migrate` to carry the plan out.",
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

			planPath := filepath.Join(cfg.Paths.ReportDir, "classification_plan.csv")
			if err := report.WritePlan(planPath, plan); err != nil {
				return fmt.Errorf("write plan: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, report.PlanTable(plan))
			fmt.Fprintf(out, "Classified %d files (%d matched, %d need review)\n",
				len(plan.Results), plan.Matched, plan.NeedsReview)
			fmt.Fprintf(out, "Plan: %s\n", planPath)
			return nil
		},
	}
	return cmd
}

func buildEngine(cfg *config.Config, ctx *commandContext) (*classify.Engine, error) {
	rules, err := classify.LoadRules(cfg.Paths.RulesPath)
	if err != nil {
		return nil, err
	}
	return classify.NewEngine(rules, extract.Default(), classify.Options{
		ReviewThreshold:     cfg.Classify.ReviewThreshold,
		IdentifierScanChars: cfg.Classify.IdentifierScanChars,
		MaxTextChars:        cfg.Dedup.MaxTextChars,
	}, ctx.ensureLogger()), nil
}
