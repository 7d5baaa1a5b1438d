package analyzer

import (
	"context"
	"testing"
	"time"

	"github.com/mediasweep/purgarr/pkg/analyzer/mocks"
	"github.com/mediasweep/purgarr/pkg/media"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var testThresholds = Thresholds{
	Old5YearsDays: 1825,
	Old3YearsDays: 1095,
	Old1YearDays:  365,
	LargeMovieGB:  30,
	LargeSeriesGB: 100,
}

func daysAgo(now time.Time, days int) *time.Time {
	t := now.Add(-time.Duration(days) * 24 * time.Hour)
	return &t
}

func TestClassify(t *testing.T) {
	now := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		item media.Item
		want Category
		none bool
	}{
		{
			name: "old movie lands in the five year tier",
			item: media.Item{RatingKey: "1", Kind: media.KindMovie, SizeGB: 10, AddedAt: daysAgo(now, 2000)},
			want: CategoryAge5Years,
		},
		{
			name: "three year tier",
			item: media.Item{RatingKey: "2", Kind: media.KindShow, SizeGB: 10, AddedAt: daysAgo(now, 1200)},
			want: CategoryAge3Years,
		},
		{
			name: "one year tier",
			item: media.Item{RatingKey: "3", Kind: media.KindMovie, SizeGB: 10, AddedAt: daysAgo(now, 400)},
			want: CategoryAge1Year,
		},
		{
			name: "recent oversized movie",
			item: media.Item{RatingKey: "4", Kind: media.KindMovie, SizeGB: 35, AddedAt: daysAgo(now, 30)},
			want: CategoryLargeMovies,
		},
		{
			name: "recent oversized show",
			item: media.Item{RatingKey: "5", Kind: media.KindShow, SizeGB: 140, AddedAt: daysAgo(now, 30)},
			want: CategoryLargeShows,
		},
		{
			name: "age outranks size",
			item: media.Item{RatingKey: "6", Kind: media.KindMovie, SizeGB: 40, AddedAt: daysAgo(now, 2200)},
			want: CategoryAge5Years,
		},
		{
			name: "undated small item matches nothing",
			item: media.Item{RatingKey: "7", Kind: media.KindMovie, SizeGB: 10},
			none: true,
		},
		{
			name: "size at the threshold is not large",
			item: media.Item{RatingKey: "8", Kind: media.KindMovie, SizeGB: 30, AddedAt: daysAgo(now, 30)},
			none: true,
		},
		{
			name: "undated but oversized show",
			item: media.Item{RatingKey: "9", Kind: media.KindShow, SizeGB: 250},
			want: CategoryLargeShows,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			classifier, err := NewClassifier(testThresholds, now)
			require.NoError(t, err)

			got, ok := classifier.Classify(tt.item)
			if tt.none {
				assert.False(t, ok)
				return
			}
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassifyDedup(t *testing.T) {
	now := time.Now()
	classifier, err := NewClassifier(testThresholds, now)
	require.NoError(t, err)

	item := media.Item{RatingKey: "1", Kind: media.KindMovie, SizeGB: 10, AddedAt: daysAgo(now, 2000)}

	_, ok := classifier.Classify(item)
	require.True(t, ok)

	// the same identity never lands in a second bucket within a pass
	_, ok = classifier.Classify(item)
	assert.False(t, ok)
}

func TestThresholdsValidate(t *testing.T) {
	assert.NoError(t, testThresholds.Validate())

	missing := testThresholds
	missing.LargeMovieGB = 0
	assert.Error(t, missing.Validate())

	negative := testThresholds
	negative.Old1YearDays = -1
	assert.Error(t, negative.Validate())
}

func TestAnalyze(t *testing.T) {
	ctrl := gomock.NewController(t)
	aggregator := mocks.NewMockStateAggregator(ctrl)

	now := time.Now()
	items := []media.Item{
		{RatingKey: "old", Kind: media.KindMovie, Title: "Old Movie", SizeGB: 8, AddedAt: daysAgo(now, 2000)},
		{RatingKey: "big", Kind: media.KindShow, Title: "Big Show", SizeGB: 150, AddedAt: daysAgo(now, 10)},
		{RatingKey: "keep", Kind: media.KindMovie, Title: "Fresh Small Movie", SizeGB: 4, AddedAt: daysAgo(now, 10)},
	}

	watched := media.WatchState{Watched: true, Status: media.StatusWatched, WatchCount: 2}
	aggregator.EXPECT().Aggregate(gomock.Any(), "old", media.KindMovie).Return(watched)
	aggregator.EXPECT().Aggregate(gomock.Any(), "big", media.KindShow).Return(media.ZeroWatchState())
	aggregator.EXPECT().Aggregate(gomock.Any(), "keep", media.KindMovie).Return(media.ZeroWatchState())

	a, err := New(aggregator, testThresholds)
	require.NoError(t, err)

	var calls []int
	result, err := a.Analyze(context.Background(), items, func(done, total int) {
		assert.Equal(t, 3, total)
		calls = append(calls, done)
	})
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2, 3}, calls)
	assert.Equal(t, 2, result.TotalItems())

	old := result.Buckets[CategoryAge5Years]
	require.Len(t, old.Movies, 1)
	assert.Equal(t, "Old Movie", old.Movies[0].Title)
	assert.Equal(t, media.StatusWatched, old.Movies[0].Status)

	big := result.Buckets[CategoryLargeShows]
	require.Len(t, big.Shows, 1)
	assert.Equal(t, "Big Show", big.Shows[0].Title)

	stats := result.Stats(CategoryLargeShows)
	assert.Equal(t, Stats{ShowCount: 1, TotalItems: 1, TotalSizeGB: 150}, stats)
	assert.Equal(t, float64(158), result.TotalSizeGB())
}

func TestAnalyzeCancelled(t *testing.T) {
	ctrl := gomock.NewController(t)
	aggregator := mocks.NewMockStateAggregator(ctrl)

	a, err := New(aggregator, testThresholds)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = a.Analyze(ctx, []media.Item{{RatingKey: "1", Kind: media.KindMovie}}, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewRejectsBadThresholds(t *testing.T) {
	ctrl := gomock.NewController(t)
	aggregator := mocks.NewMockStateAggregator(ctrl)

	_, err := New(aggregator, Thresholds{})
	assert.Error(t, err)
}

func TestSortItems(t *testing.T) {
	now := time.Now()
	oldest := daysAgo(now, 3000)
	middle := daysAgo(now, 1000)

	items := func() []media.EnrichedItem {
		return []media.EnrichedItem{
			{Item: media.Item{Title: "middle", SizeGB: 50, AddedAt: middle}},
			{Item: media.Item{Title: "oldest", SizeGB: 10, AddedAt: oldest}},
			{Item: media.Item{Title: "undated", SizeGB: 30}},
		}
	}

	t.Run("by size descending", func(t *testing.T) {
		sorted := items()
		SortItems(sorted, SortBySize)
		assert.Equal(t, "middle", sorted[0].Title)
		assert.Equal(t, "undated", sorted[1].Title)
		assert.Equal(t, "oldest", sorted[2].Title)
	})

	t.Run("oldest first places undated items ahead", func(t *testing.T) {
		sorted := items()
		SortItems(sorted, SortByDate)
		assert.Equal(t, "undated", sorted[0].Title)
		assert.Equal(t, "oldest", sorted[1].Title)
		assert.Equal(t, "middle", sorted[2].Title)
	})
}

func TestCategoryRoundTrip(t *testing.T) {
	for _, c := range Categories() {
		got, ok := CategoryFromString(c.String())
		require.True(t, ok)
		assert.Equal(t, c, got)
	}

	_, ok := CategoryFromString("nope")
	assert.False(t, ok)
}
