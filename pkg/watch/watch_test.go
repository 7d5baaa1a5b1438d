package watch

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mediasweep/purgarr/pkg/media"
	"github.com/mediasweep/purgarr/pkg/watch/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func ts(unix int64) *time.Time {
	t := time.Unix(unix, 0)
	return &t
}

func newTestAggregator(t *testing.T) (*Aggregator, *mocks.MockHistoryProvider, *mocks.MockMetadataProvider) {
	ctrl := gomock.NewController(t)
	history := mocks.NewMockHistoryProvider(ctrl)
	metadata := mocks.NewMockMetadataProvider(ctrl)
	return New(history, metadata), history, metadata
}

func TestAggregateMovie(t *testing.T) {
	t.Run("folds per-user maximum progress", func(t *testing.T) {
		agg, history, _ := newTestAggregator(t)

		history.EXPECT().History(gomock.Any(), "100", DefaultMovieHistoryLength).Return(media.HistoryPage{
			TotalRecords: 4,
			Records: []media.WatchRecord{
				{User: "alice", PercentComplete: 45, Date: ts(1700000000)},
				{User: "bob", PercentComplete: 98, Date: ts(1690000000)},
				{User: "alice", PercentComplete: 90, Date: ts(1680000000)},
				{User: "bob", PercentComplete: 10},
			},
		}, nil)

		state := agg.Aggregate(context.Background(), "100", media.KindMovie)

		assert.Equal(t, media.StatusWatched, state.Status)
		assert.True(t, state.Watched)
		assert.Equal(t, 4, state.WatchCount)
		assert.Equal(t, []string{"alice", "bob"}, state.Users)
		assert.Equal(t, float64(90), state.UserProgress["alice"])
		assert.Equal(t, float64(98), state.UserProgress["bob"])

		// records are most recent first, so the first timestamp wins
		require.NotNil(t, state.LastWatched)
		assert.Equal(t, time.Unix(1700000000, 0), *state.LastWatched)
	})

	t.Run("clamps noisy percentages", func(t *testing.T) {
		agg, history, _ := newTestAggregator(t)

		history.EXPECT().History(gomock.Any(), "100", DefaultMovieHistoryLength).Return(media.HistoryPage{
			TotalRecords: 1,
			Records: []media.WatchRecord{
				{User: "alice", PercentComplete: 130},
			},
		}, nil)

		state := agg.Aggregate(context.Background(), "100", media.KindMovie)
		assert.Equal(t, float64(100), state.UserProgress["alice"])
	})

	t.Run("in progress below threshold", func(t *testing.T) {
		agg, history, _ := newTestAggregator(t)

		history.EXPECT().History(gomock.Any(), "100", DefaultMovieHistoryLength).Return(media.HistoryPage{
			TotalRecords: 1,
			Records: []media.WatchRecord{
				{User: "carol", PercentComplete: 42},
			},
		}, nil)

		state := agg.Aggregate(context.Background(), "100", media.KindMovie)
		assert.Equal(t, media.StatusInProgress, state.Status)
		assert.False(t, state.Watched)
	})

	t.Run("no history yields zero state", func(t *testing.T) {
		agg, history, _ := newTestAggregator(t)

		history.EXPECT().History(gomock.Any(), "100", DefaultMovieHistoryLength).Return(media.HistoryPage{}, nil)

		state := agg.Aggregate(context.Background(), "100", media.KindMovie)
		assert.Equal(t, media.StatusUnwatched, state.Status)
		assert.Equal(t, 0, state.WatchCount)
		assert.Empty(t, state.Users)
		assert.Nil(t, state.LastWatched)
	})

	t.Run("lookup failure degrades to zero state", func(t *testing.T) {
		agg, history, _ := newTestAggregator(t)

		history.EXPECT().History(gomock.Any(), "100", DefaultMovieHistoryLength).Return(media.HistoryPage{}, errors.New("connection refused"))

		state := agg.Aggregate(context.Background(), "100", media.KindMovie)
		assert.Equal(t, media.ZeroWatchState(), state)
	})
}

func episodeRecord(user, show, episode string, pct float64, date int64) media.WatchRecord {
	rec := media.WatchRecord{
		User:            user,
		PercentComplete: pct,
		RatingKey:       episode,
		ShowRatingKey:   show,
	}
	if date > 0 {
		rec.Date = ts(date)
	}
	return rec
}

func TestAggregateShow(t *testing.T) {
	t.Run("per-user completion against episodes seen", func(t *testing.T) {
		agg, history, metadata := newTestAggregator(t)

		metadata.EXPECT().Metadata(gomock.Any(), "42").Return(media.ItemMetadata{}, nil)

		// ten distinct episodes seen; alice completes 8, bob completes 3
		records := []media.WatchRecord{}
		for i := 0; i < 8; i++ {
			records = append(records, episodeRecord("alice", "42", ep(i), 95, 1700000000-int64(i)))
		}
		for i := 8; i < 10; i++ {
			records = append(records, episodeRecord("alice", "42", ep(i), 20, 0))
		}
		for i := 0; i < 3; i++ {
			records = append(records, episodeRecord("bob", "42", ep(i), 85, 0))
		}
		history.EXPECT().EpisodeHistory(gomock.Any(), DefaultEpisodeWindow).Return(records, nil)

		state := agg.Aggregate(context.Background(), "42", media.KindShow)

		assert.Equal(t, float64(80), state.UserProgress["alice"])
		assert.Equal(t, float64(30), state.UserProgress["bob"])
		assert.Equal(t, media.StatusWatched, state.Status)
		assert.True(t, state.Watched)
		assert.Equal(t, 11, state.WatchCount)
		assert.Equal(t, []string{"alice", "bob"}, state.Users)
		require.NotNil(t, state.LastWatched)
		assert.Equal(t, time.Unix(1700000000, 0), *state.LastWatched)
	})

	t.Run("episodes of other shows are ignored", func(t *testing.T) {
		agg, history, metadata := newTestAggregator(t)

		metadata.EXPECT().Metadata(gomock.Any(), "42").Return(media.ItemMetadata{}, nil)
		history.EXPECT().EpisodeHistory(gomock.Any(), DefaultEpisodeWindow).Return([]media.WatchRecord{
			episodeRecord("alice", "42", "e1", 100, 0),
			episodeRecord("alice", "77", "x1", 100, 0),
			episodeRecord("alice", "77", "x2", 100, 0),
		}, nil)

		state := agg.Aggregate(context.Background(), "42", media.KindShow)

		// one episode seen, one completed
		assert.Equal(t, float64(100), state.UserProgress["alice"])
		assert.Equal(t, 1, state.WatchCount)
	})

	t.Run("completion supersedes partial viewing", func(t *testing.T) {
		agg, history, metadata := newTestAggregator(t)

		metadata.EXPECT().Metadata(gomock.Any(), "42").Return(media.ItemMetadata{}, nil)
		// most recent first: the completed rewatch arrives before the
		// older partial record of the same episode
		history.EXPECT().EpisodeHistory(gomock.Any(), DefaultEpisodeWindow).Return([]media.WatchRecord{
			episodeRecord("alice", "42", "e1", 100, 1700000000),
			episodeRecord("alice", "42", "e1", 30, 1600000000),
			episodeRecord("alice", "42", "e2", 50, 1500000000),
		}, nil)

		state := agg.Aggregate(context.Background(), "42", media.KindShow)

		// two episodes seen, one completed
		assert.Equal(t, float64(50), state.UserProgress["alice"])
		assert.Equal(t, media.StatusInProgress, state.Status)
		assert.Equal(t, 1, state.WatchCount)
	})

	t.Run("metadata fallback when nothing matched", func(t *testing.T) {
		agg, history, metadata := newTestAggregator(t)

		metadata.EXPECT().Metadata(gomock.Any(), "42").Return(media.ItemMetadata{
			PlayCount:  17,
			LastPlayed: ts(1650000000),
		}, nil)
		history.EXPECT().EpisodeHistory(gomock.Any(), DefaultEpisodeWindow).Return([]media.WatchRecord{
			episodeRecord("alice", "77", "x1", 100, 0),
		}, nil)

		state := agg.Aggregate(context.Background(), "42", media.KindShow)

		assert.Equal(t, media.StatusUnwatched, state.Status)
		assert.Equal(t, 17, state.WatchCount)
		require.NotNil(t, state.LastWatched)
		assert.Equal(t, time.Unix(1650000000, 0), *state.LastWatched)
		assert.Empty(t, state.Users)
	})

	t.Run("metadata failure degrades to zero state", func(t *testing.T) {
		agg, _, metadata := newTestAggregator(t)

		metadata.EXPECT().Metadata(gomock.Any(), "42").Return(media.ItemMetadata{}, errors.New("boom"))

		state := agg.Aggregate(context.Background(), "42", media.KindShow)
		assert.Equal(t, media.ZeroWatchState(), state)
	})

	t.Run("history failure degrades to zero state", func(t *testing.T) {
		agg, history, metadata := newTestAggregator(t)

		metadata.EXPECT().Metadata(gomock.Any(), "42").Return(media.ItemMetadata{}, nil)
		history.EXPECT().EpisodeHistory(gomock.Any(), DefaultEpisodeWindow).Return(nil, errors.New("boom"))

		state := agg.Aggregate(context.Background(), "42", media.KindShow)
		assert.Equal(t, media.ZeroWatchState(), state)
	})
}

func ep(i int) string {
	return string(rune('a'+i)) + "-episode"
}

func TestStatusFromProgress(t *testing.T) {
	tests := []struct {
		name     string
		progress media.UserProgress
		want     media.WatchStatus
	}{
		{"empty", media.UserProgress{}, media.StatusUnwatched},
		{"all zero", media.UserProgress{"a": 0, "b": 0}, media.StatusUnwatched},
		{"some progress", media.UserProgress{"a": 0, "b": 12}, media.StatusInProgress},
		{"at threshold", media.UserProgress{"a": 80}, media.StatusWatched},
		{"mixed", media.UserProgress{"a": 100, "b": 5}, media.StatusWatched},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, media.StatusFromProgress(tt.progress))
		})
	}
}
