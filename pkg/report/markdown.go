package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mediasweep/purgarr/pkg/analyzer"
	"github.com/mediasweep/purgarr/pkg/logger"
)

// Markdown renders the report as a markdown document. Titles link to
// Plex Web, with short (T)/(R)/(S) links to Tautulli and the arr UIs
// where those are configured.
func (r *Reporter) Markdown(ctx context.Context, result *analyzer.Result, generatedAt time.Time) []byte {
	doc := r.build(ctx, result, generatedAt)

	var b strings.Builder
	b.WriteString("# Media Purge Analysis Report\n\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", doc.GeneratedAt)

	b.WriteString("## Summary\n\n")
	fmt.Fprintf(&b, "- **Total Items Found:** %d\n", doc.TotalItems)
	fmt.Fprintf(&b, "- **Total Size:** %s\n\n", doc.TotalSize)

	for _, cat := range doc.Categories {
		fmt.Fprintf(&b, "## %s\n\n", cat.Label)
		fmt.Fprintf(&b, "**Total:** %s\n\n", cat.Summary)

		for _, section := range cat.Sections {
			fmt.Fprintf(&b, "### %s\n\n", section.Label)
			b.WriteString("| Title | Size | Added | Status | Watched By (Progress) | Last Watched |\n")
			b.WriteString("|-------|------|-------|--------|----------------------|-------------|\n")

			for _, row := range section.Rows {
				fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s |\n",
					markdownTitle(row), row.Size, row.Added, row.Status, row.Users, row.LastWatched)
			}
			b.WriteString("\n")
		}
	}

	return []byte(b.String())
}

func markdownTitle(r row) string {
	title := r.Title
	if r.PlexURL != "" {
		title = fmt.Sprintf("[%s](%s)", title, r.PlexURL)
	}
	if r.TautulliURL != "" {
		title = fmt.Sprintf("%s [(T)](%s)", title, r.TautulliURL)
	}
	if r.ArrURL != "" {
		title = fmt.Sprintf("%s [(%s)](%s)", title, r.ArrTag, r.ArrURL)
	}
	return title
}

// WriteMarkdown renders the report into a timestamped file under the
// configured output directory and returns its path.
func (r *Reporter) WriteMarkdown(ctx context.Context, result *analyzer.Result) (string, error) {
	now := time.Now()
	if err := os.MkdirAll(r.cfg.OutputDir, 0o755); err != nil {
		return "", fmt.Errorf("creating output dir: %w", err)
	}

	path := filepath.Join(r.cfg.OutputDir, fmt.Sprintf("purge_report_%s.md", now.Format("20060102_150405")))
	if err := os.WriteFile(path, r.Markdown(ctx, result, now), 0o644); err != nil {
		return "", fmt.Errorf("writing markdown report: %w", err)
	}

	logger.FromCtx(ctx).Infow("markdown report written", "path", path)
	return path, nil
}
