// Package report renders analysis results as terminal, markdown, and
// HTML reports.
package report

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mediasweep/purgarr/pkg/analyzer"
	"github.com/mediasweep/purgarr/pkg/media"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// MovieLinker resolves a movie to its management UI detail page.
type MovieLinker interface {
	MovieURL(ctx context.Context, tmdbID, imdbID string) (string, bool)
}

// SeriesLinker resolves a series to its management UI detail page.
type SeriesLinker interface {
	SeriesURL(ctx context.Context, tvdbID string) (string, bool)
}

// Config points the reporter at the servers it links back to. Every
// field is optional; missing ones just drop the corresponding links.
type Config struct {
	OutputDir    string
	PlexURL      string
	TautulliURL  string
	PlexServerID string
	Radarr       MovieLinker
	Sonarr       SeriesLinker
}

// Reporter renders one analysis result in any of the supported
// formats.
type Reporter struct {
	cfg   Config
	caser cases.Caser
}

// New creates a Reporter.
func New(cfg Config) *Reporter {
	cfg.PlexURL = strings.TrimRight(cfg.PlexURL, "/")
	cfg.TautulliURL = strings.TrimRight(cfg.TautulliURL, "/")
	return &Reporter{cfg: cfg, caser: cases.Title(language.English)}
}

// Format selects the rendered output.
type Format string

const (
	FormatTerminal Format = "terminal"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
	FormatAll      Format = "all"
)

// ParseFormat validates a format flag value.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatTerminal, FormatMarkdown, FormatHTML, FormatAll:
		return Format(s), nil
	}
	return "", fmt.Errorf("unknown report format %q", s)
}

// document is the flattened view of a result shared by every renderer.
type document struct {
	GeneratedAt string
	TotalItems  int
	TotalSize   string
	Categories  []categorySection
}

type categorySection struct {
	Label    string
	Summary  string
	Sections []kindSection
}

type kindSection struct {
	Label string
	Rows  []row
}

type row struct {
	Title       string
	PlexURL     string
	TautulliURL string
	ArrURL      string
	ArrTag      string
	Size        string
	SizeBytes   int64
	Added       string
	Status      string
	StatusClass string
	Users       string
	LastWatched string
}

func (r *Reporter) build(ctx context.Context, result *analyzer.Result, generatedAt time.Time) document {
	doc := document{
		GeneratedAt: generatedAt.Format("2006-01-02 15:04:05"),
		TotalItems:  result.TotalItems(),
		TotalSize:   fmt.Sprintf("%.2f GB", result.TotalSizeGB()),
	}

	for _, cat := range analyzer.Categories() {
		stats := result.Stats(cat)
		if stats.TotalItems == 0 {
			continue
		}

		bucket := result.Buckets[cat]
		section := categorySection{
			Label:   cat.Label(),
			Summary: fmt.Sprintf("%d items, %.2f GB", stats.TotalItems, stats.TotalSizeGB),
		}

		if len(bucket.Movies) > 0 {
			section.Sections = append(section.Sections, kindSection{
				Label: fmt.Sprintf("%s (%d items)", r.caser.String("movies"), len(bucket.Movies)),
				Rows:  r.rows(ctx, bucket.Movies),
			})
		}
		if len(bucket.Shows) > 0 {
			section.Sections = append(section.Sections, kindSection{
				Label: fmt.Sprintf("%s (%d items)", r.caser.String("tv shows"), len(bucket.Shows)),
				Rows:  r.rows(ctx, bucket.Shows),
			})
		}

		doc.Categories = append(doc.Categories, section)
	}

	return doc
}

func (r *Reporter) rows(ctx context.Context, items []media.EnrichedItem) []row {
	rows := make([]row, 0, len(items))
	for _, item := range items {
		rows = append(rows, r.row(ctx, item))
	}
	return rows
}

func (r *Reporter) row(ctx context.Context, item media.EnrichedItem) row {
	title := item.Title
	if item.Year != nil {
		title = fmt.Sprintf("%s (%d)", item.Title, *item.Year)
	}

	out := row{
		Title:       title,
		PlexURL:     r.plexWebURL(item.RatingKey),
		TautulliURL: r.tautulliURL(item.RatingKey),
		Size:        fmt.Sprintf("%.2f GB", item.SizeGB),
		SizeBytes:   item.SizeBytes,
		Added:       formatDate(item.AddedAt, "N/A"),
		LastWatched: formatDate(item.LastWatched, "-"),
		Users:       formatUsers(item.UserProgress),
	}
	out.Status, out.StatusClass = formatStatus(item.Status)

	switch item.Kind {
	case media.KindMovie:
		if r.cfg.Radarr != nil {
			if url, ok := r.cfg.Radarr.MovieURL(ctx, item.TMDBID, item.IMDBID); ok {
				out.ArrURL, out.ArrTag = url, "R"
			}
		}
	case media.KindShow:
		if r.cfg.Sonarr != nil {
			if url, ok := r.cfg.Sonarr.SeriesURL(ctx, item.TVDBID); ok {
				out.ArrURL, out.ArrTag = url, "S"
			}
		}
	}

	return out
}

func (r *Reporter) plexWebURL(ratingKey string) string {
	if r.cfg.PlexURL == "" || r.cfg.PlexServerID == "" || ratingKey == "" {
		return ""
	}
	return fmt.Sprintf("%s/web/index.html#!/server/%s/details?key=%%2Flibrary%%2Fmetadata%%2F%s",
		r.cfg.PlexURL, r.cfg.PlexServerID, ratingKey)
}

func (r *Reporter) tautulliURL(ratingKey string) string {
	if r.cfg.TautulliURL == "" || ratingKey == "" {
		return ""
	}
	return fmt.Sprintf("%s/info?rating_key=%s", r.cfg.TautulliURL, ratingKey)
}

func formatDate(t *time.Time, absent string) string {
	if t == nil {
		return absent
	}
	return t.Format("2006-01-02")
}

func formatStatus(status media.WatchStatus) (string, string) {
	switch status {
	case media.StatusWatched:
		return "✓ Watched", "watched-yes"
	case media.StatusInProgress:
		return "◐ In Progress", "watched-in-progress"
	}
	return "✗ Unwatched", "watched-no"
}

// formatUsers lists every user with their completion percentage. A user
// past the watched threshold reads as 100% even when the raw maximum
// was lower.
func formatUsers(progress media.UserProgress) string {
	if len(progress) == 0 {
		return "-"
	}

	parts := make([]string, 0, len(progress))
	for _, user := range progress.SortedUsers() {
		pct := progress[user]
		switch {
		case pct >= media.WatchedThreshold:
			parts = append(parts, fmt.Sprintf("%s (100%%)", user))
		default:
			parts = append(parts, fmt.Sprintf("%s (%d%%)", user, int(pct)))
		}
	}
	return strings.Join(parts, ", ")
}
