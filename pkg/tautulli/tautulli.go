package tautulli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mediasweep/purgarr/pkg/cache"
	mhttp "github.com/mediasweep/purgarr/pkg/http"
	"github.com/mediasweep/purgarr/pkg/logger"
	"github.com/mediasweep/purgarr/pkg/media"
	"go.uber.org/zap"
)

const (
	// MovieHistoryLength caps how many history records are requested
	// for a single item.
	MovieHistoryLength = 1000
	// EpisodeHistoryWindow is the size of the bulk, unfiltered episode
	// history window used to reconstruct per-show watch state.
	EpisodeHistoryWindow = 10000
)

// Client talks to the Tautulli v2 API.
type Client struct {
	endpoint *url.URL
	apiKey   string
	http     mhttp.HTTPClient

	// episode history is fetched once per window size and reused across
	// every show of a run
	episodeWindows *cache.Cache[int, []media.WatchRecord]
}

// ClientOption configures a Client
type ClientOption func(*Client)

// WithHTTPClient sets the http client used for API calls
func WithHTTPClient(c mhttp.HTTPClient) ClientOption {
	return func(client *Client) {
		client.http = c
	}
}

// New creates a Tautulli client for the given base URI and API key
func New(uri, apiKey string, opts ...ClientOption) (*Client, error) {
	endpoint, err := url.Parse(strings.TrimRight(uri, "/") + "/api/v2")
	if err != nil {
		return nil, fmt.Errorf("failed to parse tautulli uri: %w", err)
	}

	c := &Client{
		endpoint:       endpoint,
		apiKey:         apiKey,
		http:           mhttp.NewRateLimitedHTTPClient(),
		episodeWindows: cache.New[int, []media.WatchRecord](),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// request performs one API command and decodes the data payload of the
// response envelope into out.
func (c *Client) request(ctx context.Context, cmd string, params url.Values, out any) error {
	if params == nil {
		params = url.Values{}
	}
	params.Set("apikey", c.apiKey)
	params.Set("cmd", cmd)

	u := *c.endpoint
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("tautulli request %q: %w", cmd, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("tautulli request %q: unexpected status %s", cmd, res.Status)
	}

	b, err := io.ReadAll(res.Body)
	if err != nil {
		return err
	}

	var env envelope
	if err := json.Unmarshal(b, &env); err != nil {
		return fmt.Errorf("tautulli request %q: decoding response: %w", cmd, err)
	}

	if env.Response.Result != "success" {
		return fmt.Errorf("tautulli request %q: %s", cmd, env.Response.Message)
	}

	if out == nil || len(env.Response.Data) == 0 {
		return nil
	}

	return json.Unmarshal(env.Response.Data, out)
}

// Ping verifies connectivity by requesting server info.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.GetServerInfo(ctx)
	return err
}

// GetServerInfo returns the connected Plex server identity.
func (c *Client) GetServerInfo(ctx context.Context) (ServerInfo, error) {
	var info ServerInfo
	err := c.request(ctx, "get_server_info", nil, &info)
	return info, err
}

// GetLibraries lists the library sections Tautulli knows about.
func (c *Client) GetLibraries(ctx context.Context) ([]Library, error) {
	var libraries []Library
	err := c.request(ctx, "get_libraries", nil, &libraries)
	return libraries, err
}

// History returns up to limit history records for one item, most
// recent first, along with the backend's filtered record count.
func (c *Client) History(ctx context.Context, ratingKey string, limit int) (media.HistoryPage, error) {
	params := url.Values{}
	params.Set("rating_key", ratingKey)
	params.Set("length", strconv.Itoa(limit))
	params.Set("order_column", "date")
	params.Set("order_dir", "desc")

	var data HistoryData
	if err := c.request(ctx, "get_history", params, &data); err != nil {
		return media.HistoryPage{}, err
	}

	return media.HistoryPage{
		Records:      toWatchRecords(data.Data),
		TotalRecords: data.RecordsFiltered,
	}, nil
}

// EpisodeHistory returns a large window of episode history records
// across all shows, most recent first. The window is cached for the
// lifetime of the client; FlushHistoryWindow drops it.
func (c *Client) EpisodeHistory(ctx context.Context, window int) ([]media.WatchRecord, error) {
	if records, ok := c.episodeWindows.Get(window); ok {
		return records, nil
	}

	log := logger.FromCtx(ctx)

	params := url.Values{}
	params.Set("media_type", "episode")
	params.Set("length", strconv.Itoa(window))
	params.Set("order_column", "date")
	params.Set("order_dir", "desc")

	var data HistoryData
	if err := c.request(ctx, "get_history", params, &data); err != nil {
		return nil, err
	}

	records := toWatchRecords(data.Data)
	log.Debugw("fetched episode history window", zap.Int("window", window), zap.Int("records", len(records)))

	c.episodeWindows.Set(window, records)
	return records, nil
}

// FlushHistoryWindow invalidates the cached episode history so the
// next run fetches fresh records.
func (c *Client) FlushHistoryWindow() {
	c.episodeWindows.Flush()
}

// Metadata fetches the play count and last played time for one item.
func (c *Client) Metadata(ctx context.Context, ratingKey string) (media.ItemMetadata, error) {
	params := url.Values{}
	params.Set("rating_key", ratingKey)

	var meta Metadata
	if err := c.request(ctx, "get_metadata", params, &meta); err != nil {
		return media.ItemMetadata{}, err
	}

	result := media.ItemMetadata{
		PlayCount: int(meta.PlayCount),
	}
	if meta.LastPlayed > 0 {
		t := time.Unix(meta.LastPlayed, 0)
		result.LastPlayed = &t
	}

	return result, nil
}

func toWatchRecords(records []HistoryRecord) []media.WatchRecord {
	out := make([]media.WatchRecord, 0, len(records))
	for _, r := range records {
		rec := media.WatchRecord{
			User:            r.Username(),
			PercentComplete: r.PercentComplete,
			RatingKey:       r.RatingKey.String(),
			ShowRatingKey:   r.GrandparentRatingKey.String(),
		}
		if r.Date > 0 {
			t := time.Unix(r.Date, 0)
			rec.Date = &t
		}
		out = append(out, rec)
	}
	return out
}
