package report

import (
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"docket/internal/classify"
	"docket/internal/dedup"
	"docket/internal/migrate"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

// DuplicateTable renders exact duplicate groups, largest waste first shown
// as-is in group order.
func DuplicateTable(groups []dedup.Group) string {
	rows := make([][]string, 0, len(groups))
	for _, group := range groups {
		rows = append(rows, []string{
			shortDigest(group.Digest),
			group.Keeper.Path,
			strconv.Itoa(len(group.Duplicates)),
			formatBytes(group.WastedBytes()),
		})
	}
	return renderTable(
		[]string{"Digest", "Keeper", "Duplicates", "Wasted"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight},
	)
}

// NearDuplicateTable renders scored pairs in discovery order.
func NearDuplicateTable(pairs []dedup.Pair) string {
	rows := make([][]string, 0, len(pairs))
	for _, pair := range pairs {
		rows = append(rows, []string{
			pair.A.Path,
			pair.B.Path,
			formatScore(pair.Score.Combined),
		})
	}
	return renderTable(
		[]string{"File A", "File B", "Score"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight},
	)
}

// PlanTable renders a classification plan's destination totals.
func PlanTable(plan *classify.Plan) string {
	counts := plan.TargetCounts()
	rows := make([][]string, 0, len(counts))
	for _, count := range counts {
		rows = append(rows, []string{count.Target, strconv.Itoa(count.Files)})
	}
	return renderTable(
		[]string{"Destination", "Files"},
		rows,
		[]columnAlignment{alignLeft, alignRight},
	)
}

// MigrationTable renders a migration run summary.
func MigrationTable(summary *migrate.Summary) string {
	rows := [][]string{
		{"Transferred", strconv.Itoa(summary.Transferred)},
		{"Skipped", strconv.Itoa(summary.Skipped)},
		{"Errors", strconv.Itoa(summary.Errors)},
	}
	if summary.DryRun > 0 {
		rows = append(rows, []string{"Dry run", strconv.Itoa(summary.DryRun)})
	}
	return renderTable(
		[]string{"Outcome", "Files"},
		rows,
		[]columnAlignment{alignLeft, alignRight},
	)
}

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

func shortDigest(digest string) string {
	if len(digest) > 12 {
		return digest[:12]
	}
	return digest
}

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return strconv.FormatInt(n, 10) + " B"
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	value := float64(n) / float64(div)
	suffix := []string{"KiB", "MiB", "GiB", "TiB"}[exp]
	return strconv.FormatFloat(value, 'f', 1, 64) + " " + suffix
}
