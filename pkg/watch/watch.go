// Package watch reconstructs per-item watch state from playback
// history. Movies read their own history directly; shows have no
// native completion signal, so state is inferred from episode records.
package watch

import (
	"context"
	"math"
	"time"

	"github.com/mediasweep/purgarr/pkg/logger"
	"github.com/mediasweep/purgarr/pkg/media"
)

const (
	// DefaultMovieHistoryLength bounds the per-item history query.
	DefaultMovieHistoryLength = 1000
	// DefaultEpisodeWindow is how many episode records are pulled when
	// reconstructing show state.
	DefaultEpisodeWindow = 10000
)

// HistoryProvider serves playback history records ordered most recent
// first. The descending order is a contract: last-watched derivation
// takes the first timestamped record rather than a max over all of
// them.
type HistoryProvider interface {
	History(ctx context.Context, ratingKey string, limit int) (media.HistoryPage, error)
	EpisodeHistory(ctx context.Context, window int) ([]media.WatchRecord, error)
}

// MetadataProvider serves the play count and last played time recorded
// against an item, used as a fallback for shows.
type MetadataProvider interface {
	Metadata(ctx context.Context, ratingKey string) (media.ItemMetadata, error)
}

// Aggregator folds history records into a WatchState per item.
type Aggregator struct {
	history            HistoryProvider
	metadata           MetadataProvider
	movieHistoryLength int
	episodeWindow      int
}

// Option configures an Aggregator
type Option func(*Aggregator)

// WithMovieHistoryLength overrides the per-item history query bound
func WithMovieHistoryLength(n int) Option {
	return func(a *Aggregator) {
		a.movieHistoryLength = n
	}
}

// WithEpisodeWindow overrides the bulk episode history window size
func WithEpisodeWindow(n int) Option {
	return func(a *Aggregator) {
		a.episodeWindow = n
	}
}

// New creates an Aggregator backed by the given providers
func New(history HistoryProvider, metadata MetadataProvider, opts ...Option) *Aggregator {
	a := &Aggregator{
		history:            history,
		metadata:           metadata,
		movieHistoryLength: DefaultMovieHistoryLength,
		episodeWindow:      DefaultEpisodeWindow,
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Aggregate produces the watch state for one item. Lookup failures are
// logged and degrade to the zero-value state; they never abort a run.
func (a *Aggregator) Aggregate(ctx context.Context, ratingKey string, kind media.Kind) media.WatchState {
	var state media.WatchState
	var err error

	if kind == media.KindShow {
		state, err = a.aggregateShow(ctx, ratingKey)
	} else {
		state, err = a.aggregateMovie(ctx, ratingKey)
	}

	if err != nil {
		logger.FromCtx(ctx).Warnw("watch state lookup failed", "ratingKey", ratingKey, "kind", kind, "error", err)
		return media.ZeroWatchState()
	}

	return state
}

func (a *Aggregator) aggregateMovie(ctx context.Context, ratingKey string) (media.WatchState, error) {
	page, err := a.history.History(ctx, ratingKey, a.movieHistoryLength)
	if err != nil {
		return media.WatchState{}, err
	}

	progress := media.UserProgress{}
	var lastWatched *time.Time

	for _, rec := range page.Records {
		pct := media.ClampPercent(rec.PercentComplete)
		if cur, ok := progress[rec.User]; !ok || pct > cur {
			progress[rec.User] = pct
		}

		// records arrive most recent first, so the first timestamp is
		// the last watch
		if lastWatched == nil && rec.Date != nil {
			lastWatched = rec.Date
		}
	}

	return newState(progress, page.TotalRecords, lastWatched), nil
}

func (a *Aggregator) aggregateShow(ctx context.Context, ratingKey string) (media.WatchState, error) {
	meta, err := a.metadata.Metadata(ctx, ratingKey)
	if err != nil {
		return media.WatchState{}, err
	}

	records, err := a.history.EpisodeHistory(ctx, a.episodeWindow)
	if err != nil {
		return media.WatchState{}, err
	}

	// per-user sets of distinct completed and partially watched
	// episode ids
	completed := map[string]map[string]struct{}{}
	partial := map[string]map[string]struct{}{}

	// every episode id anyone interacted with; its size approximates
	// the show's total episode count since the catalog count is not
	// reliably available
	episodesSeen := map[string]struct{}{}

	var lastWatched *time.Time
	matched := 0

	for _, rec := range records {
		if rec.ShowRatingKey != ratingKey {
			continue
		}
		matched++

		if lastWatched == nil && rec.Date != nil {
			lastWatched = rec.Date
		}

		if rec.RatingKey == "" {
			continue
		}
		episodesSeen[rec.RatingKey] = struct{}{}

		if _, ok := completed[rec.User]; !ok {
			completed[rec.User] = map[string]struct{}{}
			partial[rec.User] = map[string]struct{}{}
		}

		pct := media.ClampPercent(rec.PercentComplete)
		switch {
		case pct >= media.WatchedThreshold:
			completed[rec.User][rec.RatingKey] = struct{}{}
			delete(partial[rec.User], rec.RatingKey)
		case pct > 0:
			if _, done := completed[rec.User][rec.RatingKey]; !done {
				partial[rec.User][rec.RatingKey] = struct{}{}
			}
		}
	}

	progress := media.UserProgress{}
	watchCount := 0
	seenTotal := len(episodesSeen)

	for user, eps := range completed {
		done := len(eps)
		watchCount += done

		var pct float64
		if seenTotal > 0 {
			pct = math.Floor(float64(done) / float64(seenTotal) * 100)
		} else if totalForUser := done + len(partial[user]); totalForUser > 0 {
			pct = math.Floor(float64(done) / float64(totalForUser) * 100)
		}

		progress[user] = media.ClampPercent(pct)
	}

	if matched == 0 {
		watchCount = meta.PlayCount
	}
	if lastWatched == nil {
		lastWatched = meta.LastPlayed
	}

	return newState(progress, watchCount, lastWatched), nil
}

func newState(progress media.UserProgress, watchCount int, lastWatched *time.Time) media.WatchState {
	status := media.StatusFromProgress(progress)
	return media.WatchState{
		Watched:      status == media.StatusWatched,
		Status:       status,
		WatchCount:   watchCount,
		Users:        progress.SortedUsers(),
		UserProgress: progress,
		LastWatched:  lastWatched,
	}
}
