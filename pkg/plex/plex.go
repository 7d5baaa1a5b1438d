package plex

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	mhttp "github.com/mediasweep/purgarr/pkg/http"
	"github.com/mediasweep/purgarr/pkg/logger"
	"github.com/mediasweep/purgarr/pkg/media"
	"go.uber.org/zap"
)

const bytesPerGB = 1 << 30

// Client talks to the Plex Media Server HTTP API.
type Client struct {
	baseURL *url.URL
	token   string
	http    mhttp.HTTPClient
}

// ClientOption configures a Client
type ClientOption func(*Client)

// WithHTTPClient sets the http client used for API calls
func WithHTTPClient(c mhttp.HTTPClient) ClientOption {
	return func(client *Client) {
		client.http = c
	}
}

// New creates a Plex client for the given base URI and token
func New(uri, token string, opts ...ClientOption) (*Client, error) {
	baseURL, err := url.Parse(strings.TrimRight(uri, "/"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse plex uri: %w", err)
	}

	c := &Client{
		baseURL: baseURL,
		token:   token,
		http:    mhttp.NewRateLimitedHTTPClient(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Plex-Token", c.token)

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("plex request %q: %w", path, err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("plex request %q: invalid token", path)
	}
	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("plex request %q: unexpected status %s", path, res.Status)
	}

	b, err := io.ReadAll(res.Body)
	if err != nil {
		return err
	}

	return json.Unmarshal(b, out)
}

// Identity returns the server name and machine identifier. Also serves
// as the connectivity check before a run.
func (c *Client) Identity(ctx context.Context) (ServerIdentity, error) {
	var root containerResponse
	if err := c.get(ctx, "/", &root); err != nil {
		return ServerIdentity{}, err
	}

	return ServerIdentity{
		Name:              root.MediaContainer.FriendlyName,
		MachineIdentifier: root.MediaContainer.MachineIdentifier,
	}, nil
}

// Libraries lists the movie and show sections, minus any excluded by
// name.
func (c *Client) Libraries(ctx context.Context, excluded []string) ([]Library, error) {
	var sections containerResponse
	if err := c.get(ctx, "/library/sections", &sections); err != nil {
		return nil, err
	}

	excludedNames := make(map[string]struct{}, len(excluded))
	for _, name := range excluded {
		excludedNames[name] = struct{}{}
	}

	var libraries []Library
	for _, dir := range sections.MediaContainer.Directory {
		if dir.Type != string(media.KindMovie) && dir.Type != string(media.KindShow) {
			continue
		}
		if _, skip := excludedNames[dir.Title]; skip {
			continue
		}
		libraries = append(libraries, Library{
			Key:   dir.Key,
			Title: dir.Title,
			Type:  media.Kind(dir.Type),
		})
	}

	return libraries, nil
}

// Items returns every item of a library section with its summed media
// size. Show sizes are computed over all episode leaves.
func (c *Client) Items(ctx context.Context, lib Library) ([]media.Item, error) {
	log := logger.FromCtx(ctx)

	var container containerResponse
	if err := c.get(ctx, fmt.Sprintf("/library/sections/%s/all", lib.Key), &container); err != nil {
		return nil, err
	}

	items := make([]media.Item, 0, len(container.MediaContainer.Metadata))
	for _, meta := range container.MediaContainer.Metadata {
		item := media.Item{
			RatingKey: meta.RatingKey,
			Kind:      lib.Type,
			Title:     meta.Title,
			GUID:      meta.GUID,
		}

		for _, g := range meta.Guids {
			switch {
			case strings.HasPrefix(g.ID, "tmdb://"):
				item.TMDBID = strings.TrimPrefix(g.ID, "tmdb://")
			case strings.HasPrefix(g.ID, "tvdb://"):
				item.TVDBID = strings.TrimPrefix(g.ID, "tvdb://")
			case strings.HasPrefix(g.ID, "imdb://"):
				item.IMDBID = strings.TrimPrefix(g.ID, "imdb://")
			}
		}

		if meta.Year > 0 {
			year := meta.Year
			item.Year = &year
		}
		if meta.AddedAt > 0 {
			added := time.Unix(meta.AddedAt, 0)
			item.AddedAt = &added
		}

		var sizeBytes int64
		if lib.Type == media.KindShow {
			showBytes, err := c.showSize(ctx, meta.RatingKey)
			if err != nil {
				// size degrades to zero rather than failing the scan
				log.Warnw("failed to size show", "ratingKey", meta.RatingKey, "title", meta.Title, zap.Error(err))
			}
			sizeBytes = showBytes
		} else {
			sizeBytes = sumPartSizes(meta.Media)
		}

		item.SizeBytes = sizeBytes
		item.SizeGB = float64(sizeBytes) / bytesPerGB

		items = append(items, item)
	}

	return items, nil
}

// showSize sums the file sizes of every episode of a show.
func (c *Client) showSize(ctx context.Context, ratingKey string) (int64, error) {
	var leaves containerResponse
	if err := c.get(ctx, fmt.Sprintf("/library/metadata/%s/allLeaves", ratingKey), &leaves); err != nil {
		return 0, err
	}

	var total int64
	for _, episode := range leaves.MediaContainer.Metadata {
		total += sumPartSizes(episode.Media)
	}
	return total, nil
}

func sumPartSizes(mediaList []Media) int64 {
	var total int64
	for _, m := range mediaList {
		for _, part := range m.Part {
			total += part.Size
		}
	}
	return total
}
