package main

import (
	"fmt"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"docket/internal/inventory"
)

func newScanCommand(ctx *commandContext) *cobra.Command {
	var manifestOut string

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Inventory the configured source directories",
		Long: "Walks every configured source directory, records size, timestamps, " +
			"SHA-256 digest, and MIME type per file, and replaces the inventory manifest.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger := ctx.ensureLogger()

			store, err := inventory.Open(cfg)
			if err != nil {
				return fmt.Errorf("open inventory: %w", err)
			}
			defer store.Close()

			scanner := inventory.NewScanner(cfg, logger)
			var bar *progressbar.ProgressBar
			progress := func(done, total int) {
				if bar == nil {
					bar = progressbar.NewOptions(total,
						progressbar.OptionSetDescription("scanning"),
						progressbar.OptionSetWriter(cmd.ErrOrStderr()),
						progressbar.OptionShowCount(),
						progressbar.OptionClearOnFinish(),
					)
				}
				bar.Set(done)
			}

			records, err := scanner.Scan(cmd.Context(), progress)
			if err != nil {
				return fmt.Errorf("scan sources: %w", err)
			}
			if err := store.Replace(cmd.Context(), records); err != nil {
				return fmt.Errorf("store manifest: %w", err)
			}

			manifest := manifestOut
			if manifest == "" {
				manifest = filepath.Join(cfg.Paths.ReportDir, "manifest.csv")
			}
			if err := inventory.WriteCSV(manifest, records); err != nil {
				return fmt.Errorf("write manifest: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Inventoried %d files\n", len(records))
			fmt.Fprintf(out, "Manifest: %s\n", manifest)
			return nil
		},
	}

	cmd.Flags().StringVar(&manifestOut, "manifest", "", "Manifest CSV output path (default <report_dir>/manifest.csv)")
	return cmd
}
