package media

import (
	"sort"
	"time"
)

// Kind distinguishes the two media types the analyzer understands.
type Kind string

const (
	KindMovie Kind = "movie"
	KindShow  Kind = "show"
)

// Item is a single library entry as reported by the library provider.
// AddedAt is nil when the library does not know when the item arrived.
type Item struct {
	RatingKey string     `json:"ratingKey"`
	Kind      Kind       `json:"kind"`
	Title     string     `json:"title"`
	Year      *int       `json:"year,omitempty"`
	GUID      string     `json:"guid,omitempty"`
	TMDBID    string     `json:"tmdbID,omitempty"`
	TVDBID    string     `json:"tvdbID,omitempty"`
	IMDBID    string     `json:"imdbID,omitempty"`
	AddedAt   *time.Time `json:"addedAt,omitempty"`
	SizeBytes int64      `json:"sizeBytes"`
	SizeGB    float64    `json:"sizeGB"`
}

// WatchRecord is one playback history entry from the history provider.
// For episode records, ShowRatingKey identifies the owning show and
// RatingKey the episode itself.
type WatchRecord struct {
	User            string
	PercentComplete float64
	Date            *time.Time
	RatingKey       string
	ShowRatingKey   string
}

// WatchStatus is the aggregate watch state across all users.
type WatchStatus string

const (
	StatusUnwatched  WatchStatus = "unwatched"
	StatusInProgress WatchStatus = "in_progress"
	StatusWatched    WatchStatus = "watched"
)

// UserProgress maps a user to the highest completion percentage seen
// for them, clamped to [0,100].
type UserProgress map[string]float64

// WatchState is the aggregated watch information for one item.
type WatchState struct {
	Watched      bool         `json:"watched"`
	Status       WatchStatus  `json:"status"`
	WatchCount   int          `json:"watchCount"`
	Users        []string     `json:"users"`
	UserProgress UserProgress `json:"userProgress"`
	LastWatched  *time.Time   `json:"lastWatched,omitempty"`
}

// ZeroWatchState is what an item with no history looks like. Lookup
// failures degrade to this rather than aborting a run.
func ZeroWatchState() WatchState {
	return WatchState{
		Status:       StatusUnwatched,
		Users:        []string{},
		UserProgress: UserProgress{},
	}
}

// StatusFromProgress derives the aggregate status from per-user
// progress. Watched wins if any user is at or past the watched
// threshold, otherwise any progress at all means in progress.
func StatusFromProgress(progress UserProgress) WatchStatus {
	status := StatusUnwatched
	for _, pct := range progress {
		if pct >= WatchedThreshold {
			return StatusWatched
		}
		if pct > 0 {
			status = StatusInProgress
		}
	}
	return status
}

// WatchedThreshold is the completion percentage at which a viewing
// counts as watched.
const WatchedThreshold = 80

// ClampPercent bounds upstream percent values to [0,100]. Tautulli can
// report over 100 for some transcode sessions.
func ClampPercent(pct float64) float64 {
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// SortedUsers returns the users present in progress in a stable order.
func (p UserProgress) SortedUsers() []string {
	users := make([]string, 0, len(p))
	for user := range p {
		users = append(users, user)
	}
	sort.Strings(users)
	return users
}

// EnrichedItem composes the library view of an item with its
// aggregated watch state.
type EnrichedItem struct {
	Item
	WatchState
}

// HistoryPage is one page of history records ordered most recent
// first, along with the backend's total count of matching records.
type HistoryPage struct {
	Records      []WatchRecord
	TotalRecords int
}

// ItemMetadata is the metadata-provider view of an item, used as a
// fallback source for shows when no episode history matches.
type ItemMetadata struct {
	LastPlayed *time.Time
	PlayCount  int
}
