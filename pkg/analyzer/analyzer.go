// Package analyzer buckets library items into purge candidate
// categories using age, size, and aggregated watch state.
package analyzer

import (
	"context"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/mediasweep/purgarr/pkg/media"
)

// Category is a purge candidate tier. Categories are mutually
// exclusive; classification evaluates them in declaration order and the
// first match wins.
type Category int

const (
	CategoryAge5Years Category = iota
	CategoryAge3Years
	CategoryAge1Year
	CategoryLargeMovies
	CategoryLargeShows
)

// Categories returns all tiers in evaluation order.
func Categories() []Category {
	return []Category{
		CategoryAge5Years,
		CategoryAge3Years,
		CategoryAge1Year,
		CategoryLargeMovies,
		CategoryLargeShows,
	}
}

// String is the stable key used in storage and the HTTP API.
func (c Category) String() string {
	switch c {
	case CategoryAge5Years:
		return "age_5_years"
	case CategoryAge3Years:
		return "age_3_years"
	case CategoryAge1Year:
		return "age_1_year"
	case CategoryLargeMovies:
		return "large_movies"
	case CategoryLargeShows:
		return "large_shows"
	}
	return "unknown"
}

// Label is the human readable heading used by the reporters.
func (c Category) Label() string {
	switch c {
	case CategoryAge5Years:
		return "Added Over 5 Years Ago"
	case CategoryAge3Years:
		return "Added Over 3 Years Ago"
	case CategoryAge1Year:
		return "Added Over 1 Year Ago"
	case CategoryLargeMovies:
		return "Large Movies"
	case CategoryLargeShows:
		return "Large TV Series"
	}
	return "Unknown"
}

// CategoryFromString maps a stored key back to its Category.
func CategoryFromString(s string) (Category, bool) {
	for _, c := range Categories() {
		if c.String() == s {
			return c, true
		}
	}
	return 0, false
}

// Thresholds holds the injected classification cutoffs. Age thresholds
// are in days, size thresholds in gigabytes.
type Thresholds struct {
	Old5YearsDays int     `mapstructure:"old5YearsDays" validate:"required,gt=0"`
	Old3YearsDays int     `mapstructure:"old3YearsDays" validate:"required,gt=0"`
	Old1YearDays  int     `mapstructure:"old1YearDays" validate:"required,gt=0"`
	LargeMovieGB  float64 `mapstructure:"largeMovieGB" validate:"required,gt=0"`
	LargeSeriesGB float64 `mapstructure:"largeSeriesGB" validate:"required,gt=0"`
}

// Validate reports unset or non-positive thresholds.
func (t Thresholds) Validate() error {
	return validator.New(validator.WithRequiredStructEnabled()).Struct(t)
}

// Classifier assigns items to categories. It carries the dedup set for
// one classification pass and must not be reused across runs.
type Classifier struct {
	cutoff5Years time.Time
	cutoff3Years time.Time
	cutoff1Year  time.Time
	thresholds   Thresholds
	seen         map[string]struct{}
}

// NewClassifier validates the thresholds and fixes the age cutoffs at
// the given reference time.
func NewClassifier(thresholds Thresholds, now time.Time) (*Classifier, error) {
	if err := thresholds.Validate(); err != nil {
		return nil, err
	}

	day := 24 * time.Hour
	return &Classifier{
		cutoff5Years: now.Add(-time.Duration(thresholds.Old5YearsDays) * day),
		cutoff3Years: now.Add(-time.Duration(thresholds.Old3YearsDays) * day),
		cutoff1Year:  now.Add(-time.Duration(thresholds.Old1YearDays) * day),
		thresholds:   thresholds,
		seen:         map[string]struct{}{},
	}, nil
}

// Classify assigns an item to its first matching category. The second
// return is false when no rule matches or the item was already
// classified in this pass.
func (c *Classifier) Classify(item media.Item) (Category, bool) {
	if _, done := c.seen[item.RatingKey]; done {
		return 0, false
	}

	cat, ok := c.match(item)
	if ok {
		c.seen[item.RatingKey] = struct{}{}
	}
	return cat, ok
}

func (c *Classifier) match(item media.Item) (Category, bool) {
	if item.AddedAt != nil {
		switch {
		case item.AddedAt.Before(c.cutoff5Years):
			return CategoryAge5Years, true
		case item.AddedAt.Before(c.cutoff3Years):
			return CategoryAge3Years, true
		case item.AddedAt.Before(c.cutoff1Year):
			return CategoryAge1Year, true
		}
	}

	if item.Kind == media.KindMovie && item.SizeGB > c.thresholds.LargeMovieGB {
		return CategoryLargeMovies, true
	}
	if item.Kind == media.KindShow && item.SizeGB > c.thresholds.LargeSeriesGB {
		return CategoryLargeShows, true
	}

	return 0, false
}

// StateAggregator produces the watch state for one item.
type StateAggregator interface {
	Aggregate(ctx context.Context, ratingKey string, kind media.Kind) media.WatchState
}

// ProgressFunc reports per-item analysis progress to the caller.
// Called once per item: (1, 120), (2, 120), ...
type ProgressFunc func(done, total int)

// Analyzer drives one analysis pass: aggregate watch state per item,
// then classify.
type Analyzer struct {
	aggregator StateAggregator
	thresholds Thresholds
}

// New creates an Analyzer. The thresholds are validated up front so a
// misconfigured run fails before any provider traffic.
func New(aggregator StateAggregator, thresholds Thresholds) (*Analyzer, error) {
	if err := thresholds.Validate(); err != nil {
		return nil, err
	}
	return &Analyzer{aggregator: aggregator, thresholds: thresholds}, nil
}

// Analyze buckets the given items. Items matching no category are
// dropped. A cancelled context aborts the pass and discards whatever
// was bucketed so far.
func (a *Analyzer) Analyze(ctx context.Context, items []media.Item, progress ProgressFunc) (*Result, error) {
	classifier, err := NewClassifier(a.thresholds, time.Now())
	if err != nil {
		return nil, err
	}

	result := NewResult()
	for i, item := range items {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		state := a.aggregator.Aggregate(ctx, item.RatingKey, item.Kind)
		if cat, ok := classifier.Classify(item); ok {
			result.add(cat, media.EnrichedItem{Item: item, WatchState: state})
		}

		if progress != nil {
			progress(i+1, len(items))
		}
	}

	return result, nil
}

// Bucket holds the classified items of one category, split by kind.
type Bucket struct {
	Movies []media.EnrichedItem `json:"movies"`
	Shows  []media.EnrichedItem `json:"shows"`
}

// Items returns movies followed by shows.
func (b *Bucket) Items() []media.EnrichedItem {
	items := make([]media.EnrichedItem, 0, len(b.Movies)+len(b.Shows))
	items = append(items, b.Movies...)
	items = append(items, b.Shows...)
	return items
}

// Stats summarizes one category.
type Stats struct {
	MovieCount  int     `json:"movieCount"`
	ShowCount   int     `json:"showCount"`
	TotalItems  int     `json:"totalItems"`
	TotalSizeGB float64 `json:"totalSizeGB"`
}

// Result is the outcome of one analysis pass, one bucket per category.
type Result struct {
	Buckets map[Category]*Bucket
}

// NewResult creates a Result with an empty bucket per category.
func NewResult() *Result {
	buckets := make(map[Category]*Bucket, len(Categories()))
	for _, c := range Categories() {
		buckets[c] = &Bucket{}
	}
	return &Result{Buckets: buckets}
}

func (r *Result) add(cat Category, item media.EnrichedItem) {
	bucket := r.Buckets[cat]
	if item.Kind == media.KindShow {
		bucket.Shows = append(bucket.Shows, item)
		return
	}
	bucket.Movies = append(bucket.Movies, item)
}

// Stats computes the summary for one category.
func (r *Result) Stats(cat Category) Stats {
	bucket := r.Buckets[cat]

	var size float64
	for _, item := range bucket.Items() {
		size += item.SizeGB
	}

	return Stats{
		MovieCount:  len(bucket.Movies),
		ShowCount:   len(bucket.Shows),
		TotalItems:  len(bucket.Movies) + len(bucket.Shows),
		TotalSizeGB: size,
	}
}

// TotalItems counts classified items across every category.
func (r *Result) TotalItems() int {
	total := 0
	for _, c := range Categories() {
		total += r.Stats(c).TotalItems
	}
	return total
}

// TotalSizeGB sums classified size across every category.
func (r *Result) TotalSizeGB() float64 {
	var total float64
	for _, c := range Categories() {
		total += r.Stats(c).TotalSizeGB
	}
	return total
}

// SortMode selects the ordering inside each bucket.
type SortMode string

const (
	// SortBySize orders largest first.
	SortBySize SortMode = "size"
	// SortByDate orders oldest first; undated items sort before every
	// dated one.
	SortByDate SortMode = "date"
)

// Sort orders every bucket's movie and show lists in place.
func (r *Result) Sort(mode SortMode) {
	for _, bucket := range r.Buckets {
		SortItems(bucket.Movies, mode)
		SortItems(bucket.Shows, mode)
	}
}

// SortItems orders items in place per the given mode.
func SortItems(items []media.EnrichedItem, mode SortMode) {
	if mode == SortByDate {
		sort.SliceStable(items, func(i, j int) bool {
			return addedOrZero(items[i]).Before(addedOrZero(items[j]))
		})
		return
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].SizeGB > items[j].SizeGB
	})
}

func addedOrZero(item media.EnrichedItem) time.Time {
	if item.AddedAt == nil {
		return time.Time{}
	}
	return *item.AddedAt
}
