package report

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mediasweep/purgarr/pkg/analyzer"
)

// Terminal writes the report to w as a sequence of tables, one per
// populated category and kind.
func (r *Reporter) Terminal(ctx context.Context, w io.Writer, result *analyzer.Result) {
	doc := r.build(ctx, result, time.Now())

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Media Purge Analysis Report")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Total Items Found: %d\n", doc.TotalItems)
	fmt.Fprintf(w, "Total Size: %s\n", doc.TotalSize)

	for _, cat := range doc.Categories {
		fmt.Fprintln(w)
		fmt.Fprintln(w, cat.Label)
		fmt.Fprintf(w, "Total: %s\n", cat.Summary)

		for _, section := range cat.Sections {
			fmt.Fprintln(w)
			fmt.Fprintln(w, section.Label)
			fmt.Fprintln(w, renderTable(section.Rows))
		}
	}
}

func renderTable(rows []row) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Title", "Size", "Added", "Status", "Watched By (Progress)", "Last Watched"})

	for _, r := range rows {
		size := r.Size
		if r.SizeBytes > 0 {
			size = humanize.IBytes(uint64(r.SizeBytes))
		}
		tw.AppendRow(table.Row{r.Title, size, r.Added, r.Status, r.Users, r.LastWatched})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 5, WidthMax: 50},
	})

	return tw.Render()
}
