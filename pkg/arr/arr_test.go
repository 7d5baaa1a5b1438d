package arr

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/mediasweep/purgarr/pkg/http/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func jsonResponse(body string) *http.Response {
	return &http.Response{
		StatusCode: http.StatusOK,
		Status:     "200 OK",
		Body:       io.NopCloser(bytes.NewBufferString(body)),
	}
}

func TestSeriesURL(t *testing.T) {
	ctrl := gomock.NewController(t)
	mhttp := mocks.NewMockHTTPClient(ctrl)

	// lookup happens once, the second call is served from cache
	mhttp.EXPECT().Do(gomock.Any()).DoAndReturn(func(req *http.Request) (*http.Response, error) {
		assert.Equal(t, "key", req.Header.Get("X-Api-Key"))
		assert.Equal(t, "121361", req.URL.Query().Get("tvdbId"))
		return jsonResponse(`[{"titleSlug": "game-of-thrones"}]`), nil
	}).Times(1)

	client, err := New(Sonarr, "http://sonarr:8989", "key", WithHTTPClient(mhttp))
	require.NoError(t, err)

	ctx := context.Background()
	got, ok := client.SeriesURL(ctx, "121361")
	require.True(t, ok)
	assert.Equal(t, "http://sonarr:8989/series/game-of-thrones", got)

	again, ok := client.SeriesURL(ctx, "121361")
	require.True(t, ok)
	assert.Equal(t, got, again)
}

func TestSeriesURLNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	mhttp := mocks.NewMockHTTPClient(ctrl)

	mhttp.EXPECT().Do(gomock.Any()).Return(jsonResponse(`[]`), nil).Times(1)

	client, err := New(Sonarr, "http://sonarr:8989", "key", WithHTTPClient(mhttp))
	require.NoError(t, err)

	ctx := context.Background()
	_, ok := client.SeriesURL(ctx, "999")
	assert.False(t, ok)

	// negative result is cached, no second request
	_, ok = client.SeriesURL(ctx, "999")
	assert.False(t, ok)
}

func TestMovieURL(t *testing.T) {
	ctrl := gomock.NewController(t)
	mhttp := mocks.NewMockHTTPClient(ctrl)

	mhttp.EXPECT().Do(gomock.Any()).DoAndReturn(func(req *http.Request) (*http.Response, error) {
		assert.Equal(t, "603", req.URL.Query().Get("tmdbId"))
		return jsonResponse(`[{"titleSlug": "the-matrix"}]`), nil
	})

	client, err := New(Radarr, "http://radarr:7878", "key", WithHTTPClient(mhttp))
	require.NoError(t, err)

	got, ok := client.MovieURL(context.Background(), "603", "")
	require.True(t, ok)
	assert.Equal(t, "http://radarr:7878/movie/the-matrix", got)
}

func TestMovieURLByIMDB(t *testing.T) {
	ctrl := gomock.NewController(t)
	mhttp := mocks.NewMockHTTPClient(ctrl)

	// an imdb-only lookup cannot filter server-side, so the response
	// is the whole library and the match happens on imdbId
	mhttp.EXPECT().Do(gomock.Any()).DoAndReturn(func(req *http.Request) (*http.Response, error) {
		assert.Empty(t, req.URL.Query().Get("tmdbId"))
		return jsonResponse(`[
			{"titleSlug": "some-unrelated-movie", "imdbId": "tt0000001"},
			{"titleSlug": "the-matrix", "imdbId": "tt0133093"}
		]`), nil
	})

	client, err := New(Radarr, "http://radarr:7878", "key", WithHTTPClient(mhttp))
	require.NoError(t, err)

	got, ok := client.MovieURL(context.Background(), "", "tt0133093")
	require.True(t, ok)
	assert.Equal(t, "http://radarr:7878/movie/the-matrix", got)
}

func TestMovieURLByIMDBNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	mhttp := mocks.NewMockHTTPClient(ctrl)

	mhttp.EXPECT().Do(gomock.Any()).Return(jsonResponse(`[
		{"titleSlug": "some-unrelated-movie", "imdbId": "tt0000001"}
	]`), nil).Times(1)

	client, err := New(Radarr, "http://radarr:7878", "key", WithHTTPClient(mhttp))
	require.NoError(t, err)

	_, ok := client.MovieURL(context.Background(), "", "tt9999999")
	assert.False(t, ok)

	// negative result is cached, no second request
	_, ok = client.MovieURL(context.Background(), "", "tt9999999")
	assert.False(t, ok)
}

func TestServiceMismatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	mhttp := mocks.NewMockHTTPClient(ctrl)

	sonarr, err := New(Sonarr, "http://sonarr:8989", "key", WithHTTPClient(mhttp))
	require.NoError(t, err)

	_, ok := sonarr.MovieURL(context.Background(), "603", "")
	assert.False(t, ok)

	radarr, err := New(Radarr, "http://radarr:7878", "key", WithHTTPClient(mhttp))
	require.NoError(t, err)

	_, ok = radarr.SeriesURL(context.Background(), "121361")
	assert.False(t, ok)
}

func TestMissingIDs(t *testing.T) {
	client, err := New(Radarr, "http://radarr:7878", "key")
	require.NoError(t, err)

	_, ok := client.MovieURL(context.Background(), "", "")
	assert.False(t, ok)
}
