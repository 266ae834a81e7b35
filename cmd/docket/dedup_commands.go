package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"docket/internal/dedup"
	"docket/internal/extract"
	"docket/internal/inventory"
	"docket/internal/pipeline"
	"docket/internal/report"
)

func newDupesCommand(ctx *commandContext) *cobra.Command {
	var stageDir string
	var apply bool

	cmd := &cobra.Command{
		Use:   "dedup",
		Short: "Report exact duplicates from the inventory",
		Long: "Groups inventoried files by content digest, picks one keeper per " +
			"group, and writes a CSV report. With --stage, the removable copies are " +
			"moved into a staging directory for review before deletion.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			records, err := loadManifest(cmd, ctx)
			if err != nil {
				return err
			}

			groups := dedup.FindExactGroups(records)

			var staged []dedup.StagedDuplicate
			if stageDir != "" && len(groups) > 0 {
				staged, err = dedup.StageDuplicates(cmd.Context(), groups, stageDir, !apply, ctx.ensureLogger())
				if err != nil {
					return fmt.Errorf("stage duplicates: %w", err)
				}
			}

			reportPath := filepath.Join(cfg.Paths.ReportDir, "duplicates.csv")
			if err := report.WriteDuplicateReport(reportPath, groups, staged); err != nil {
				return fmt.Errorf("write duplicate report: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(groups) == 0 {
				fmt.Fprintln(out, "No exact duplicates found")
				return nil
			}
			fmt.Fprintln(out, report.DuplicateTable(groups))
			fmt.Fprintf(out, "Report: %s\n", reportPath)

			if stageDir != "" {
				verb := "Would stage"
				if apply {
					verb = "Staged"
				}
				fmt.Fprintf(out, "%s %d duplicate files under %s\n", verb, len(staged), stageDir)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&stageDir, "stage", "", "Move duplicates into this staging directory")
	cmd.Flags().BoolVar(&apply, "apply", false, "Actually move files; without it staging is a dry run")
	return cmd
}

func newNearDupesCommand(ctx *commandContext) *cobra.Command {
	var threshold float64

	cmd := &cobra.Command{
		Use:   "near-dupes",
		Short: "Report near-duplicate document pairs",
		Long: "Compares document files pairwise within extension buckets using " +
			"content fingerprints, filename similarity, and size, and reports pairs " +
			"scoring at or above the threshold.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			records, err := loadManifest(cmd, ctx)
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("threshold") {
				threshold = cfg.Dedup.NearThreshold
			}
			pairs, err := dedup.FindNearDuplicates(cmd.Context(), records, extract.Default(), dedup.NearOptions{
				Threshold:          threshold,
				Window:             cfg.Dedup.ComparisonWindow,
				DocumentExtensions: cfg.Dedup.DocumentExtensions,
				MaxTextChars:       cfg.Dedup.MaxTextChars,
			})
			if err != nil {
				return fmt.Errorf("find near duplicates: %w", err)
			}

			reportPath := filepath.Join(cfg.Paths.ReportDir, "near_duplicates.csv")
			if err := report.WriteNearDuplicateReport(reportPath, pairs); err != nil {
				return fmt.Errorf("write near-duplicate report: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(pairs) == 0 {
				fmt.Fprintln(out, "No near-duplicate pairs found")
				return nil
			}
			fmt.Fprintln(out, report.NearDuplicateTable(pairs))
			fmt.Fprintf(out, "Report: %s\n", reportPath)
			return nil
		},
	}

	cmd.Flags().Float64Var(&threshold, "threshold", 0, "Minimum combined similarity (default from config)")
	return cmd
}

// loadManifest returns the stored inventory, guarding against an empty store.
func loadManifest(cmd *cobra.Command, ctx *commandContext) ([]inventory.FileRecord, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return nil, err
	}
	store, err := inventory.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("open inventory: %w", err)
	}
	defer store.Close()

	records, err := store.Records(cmd.Context())
	if err != nil {
		return nil, fmt.Errorf("load inventory: %w", err)
	}
	if len(records) == 0 {
		return nil, pipeline.Wrap(pipeline.ErrNotFound, "inventory", "load", "inventory is empty; run `docket scan` first", nil)
	}
	return records, nil
}
