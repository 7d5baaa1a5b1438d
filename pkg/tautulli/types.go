package tautulli

import (
	"encoding/json"
	"strconv"
)

// envelope is the outer response wrapper every Tautulli v2 API call
// returns.
type envelope struct {
	Response struct {
		Result  string          `json:"result"`
		Message string          `json:"message,omitempty"`
		Data    json.RawMessage `json:"data"`
	} `json:"response"`
}

// Key is a Plex rating key. Tautulli serializes it as a string in some
// payloads and a number in others.
type Key string

func (k *Key) UnmarshalJSON(b []byte) error {
	if len(b) == 0 || string(b) == "null" {
		*k = ""
		return nil
	}

	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*k = Key(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*k = Key(n.String())
	return nil
}

func (k Key) String() string { return string(k) }

// HistoryData contains the records of a get_history response.
type HistoryData struct {
	RecordsFiltered int             `json:"recordsFiltered"`
	RecordsTotal    int             `json:"recordsTotal"`
	Data            []HistoryRecord `json:"data"`
}

// HistoryRecord represents a single history entry from Tautulli.
type HistoryRecord struct {
	User                 string  `json:"user"`
	FriendlyName         string  `json:"friendly_name"`
	RatingKey            Key     `json:"rating_key"`
	ParentRatingKey      Key     `json:"parent_rating_key"`
	GrandparentRatingKey Key     `json:"grandparent_rating_key"`
	MediaType            string  `json:"media_type"`
	Title                string  `json:"title"`
	FullTitle            string  `json:"full_title"`
	Date                 int64   `json:"date"`
	PercentComplete      float64 `json:"percent_complete"`
}

// Username prefers the friendly name over the account name.
func (r HistoryRecord) Username() string {
	if r.FriendlyName != "" {
		return r.FriendlyName
	}
	if r.User != "" {
		return r.User
	}
	return "Unknown"
}

// Metadata is the subset of a get_metadata response the analyzer needs.
type Metadata struct {
	RatingKey  Key       `json:"rating_key"`
	MediaType  string    `json:"media_type"`
	Title      string    `json:"title"`
	PlayCount  IntOrNull `json:"play_count"`
	LastPlayed int64     `json:"last_played"`
}

// IntOrNull tolerates integers arriving as numbers, strings, or null.
type IntOrNull int

func (i *IntOrNull) UnmarshalJSON(b []byte) error {
	s := string(b)
	if s == "null" || s == `""` {
		*i = 0
		return nil
	}

	if b[0] == '"' {
		var raw string
		if err := json.Unmarshal(b, &raw); err != nil {
			return err
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return err
		}
		*i = IntOrNull(n)
		return nil
	}

	var n int
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*i = IntOrNull(n)
	return nil
}

// Library is one Tautulli library section.
type Library struct {
	SectionID   Key       `json:"section_id"`
	SectionName string    `json:"section_name"`
	SectionType string    `json:"section_type"`
	Count       IntOrNull `json:"count"`
}

// ServerInfo identifies the connected Plex server.
type ServerInfo struct {
	PMSName       string `json:"pms_name"`
	PMSVersion    string `json:"pms_version"`
	PMSIdentifier string `json:"pms_identifier"`
}
