// Package arr resolves library items to their Radarr/Sonarr detail
// pages so reports can link straight into the management UI.
package arr

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/mediasweep/purgarr/pkg/cache"
	mhttp "github.com/mediasweep/purgarr/pkg/http"
	"github.com/mediasweep/purgarr/pkg/logger"
)

// Service names an arr application.
type Service string

const (
	Sonarr Service = "sonarr"
	Radarr Service = "radarr"
)

// Client looks up media in a single Sonarr or Radarr instance.
// Lookups are cached for the lifetime of the client, including
// negative results, so a report run hits each id at most once.
type Client struct {
	service Service
	baseURL *url.URL
	apiKey  string
	http    mhttp.HTTPClient
	urls    *cache.Cache[string, string]
}

// ClientOption configures a Client
type ClientOption func(*Client)

// WithHTTPClient sets the http client used for API calls
func WithHTTPClient(c mhttp.HTTPClient) ClientOption {
	return func(client *Client) {
		client.http = c
	}
}

// New creates a client for one arr instance
func New(service Service, uri, apiKey string, opts ...ClientOption) (*Client, error) {
	baseURL, err := url.Parse(strings.TrimRight(uri, "/"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s uri: %w", service, err)
	}

	c := &Client{
		service: service,
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    mhttp.NewRateLimitedHTTPClient(),
		urls:    cache.New[string, string](),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + path
	if params != nil {
		u.RawQuery = params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("Accept", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s request %q: %w", c.service, path, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("%s request %q: unexpected status %s", c.service, path, res.Status)
	}

	b, err := io.ReadAll(res.Body)
	if err != nil {
		return err
	}

	return json.Unmarshal(b, out)
}

// Ping checks the instance is reachable and the key valid.
func (c *Client) Ping(ctx context.Context) error {
	var status struct {
		Version string `json:"version"`
	}
	return c.get(ctx, "/api/v3/system/status", nil, &status)
}

type slugged struct {
	TitleSlug string `json:"titleSlug"`
}

type movieResource struct {
	TitleSlug string `json:"titleSlug"`
	ImdbID    string `json:"imdbId"`
}

// SeriesURL resolves a TVDB id to the Sonarr series page. The second
// return is false when the series is unknown or the lookup failed.
func (c *Client) SeriesURL(ctx context.Context, tvdbID string) (string, bool) {
	if c.service != Sonarr || tvdbID == "" {
		return "", false
	}

	cacheKey := "tvdb_" + tvdbID
	if cached, ok := c.urls.Get(cacheKey); ok {
		return cached, cached != ""
	}

	params := url.Values{}
	params.Set("tvdbId", tvdbID)

	var series []slugged
	if err := c.get(ctx, "/api/v3/series", params, &series); err != nil {
		logger.FromCtx(ctx).Warnw("sonarr series lookup failed", "tvdbID", tvdbID, "error", err)
		return "", false
	}

	resolved := ""
	if len(series) > 0 && series[0].TitleSlug != "" {
		resolved = fmt.Sprintf("%s/series/%s", c.baseURL, series[0].TitleSlug)
	}

	c.urls.Set(cacheKey, resolved)
	return resolved, resolved != ""
}

// MovieURL resolves a TMDB or IMDB id to the Radarr movie page.
func (c *Client) MovieURL(ctx context.Context, tmdbID, imdbID string) (string, bool) {
	if c.service != Radarr || (tmdbID == "" && imdbID == "") {
		return "", false
	}

	cacheKey := "tmdb_" + tmdbID
	if tmdbID == "" {
		cacheKey = "imdb_" + imdbID
	}
	if cached, ok := c.urls.Get(cacheKey); ok {
		return cached, cached != ""
	}

	params := url.Values{}
	if tmdbID != "" {
		params.Set("tmdbId", tmdbID)
	}

	var movies []movieResource
	if err := c.get(ctx, "/api/v3/movie", params, &movies); err != nil {
		logger.FromCtx(ctx).Warnw("radarr movie lookup failed", "tmdbID", tmdbID, "imdbID", imdbID, "error", err)
		return "", false
	}

	// without a tmdb id the list comes back unfiltered, so the imdb id
	// has to be matched here
	resolved := ""
	if tmdbID != "" {
		if len(movies) > 0 && movies[0].TitleSlug != "" {
			resolved = fmt.Sprintf("%s/movie/%s", c.baseURL, movies[0].TitleSlug)
		}
	} else {
		for _, movie := range movies {
			if movie.ImdbID == imdbID && movie.TitleSlug != "" {
				resolved = fmt.Sprintf("%s/movie/%s", c.baseURL, movie.TitleSlug)
				break
			}
		}
	}

	c.urls.Set(cacheKey, resolved)
	return resolved, resolved != ""
}
