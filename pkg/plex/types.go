package plex

import "github.com/mediasweep/purgarr/pkg/media"

// ServerIdentity identifies a Plex Media Server.
type ServerIdentity struct {
	Name              string
	MachineIdentifier string
}

// Library is one movie or show section.
type Library struct {
	Key   string
	Title string
	Type  media.Kind
}

// containerResponse is the MediaContainer wrapper every PMS endpoint
// returns.
type containerResponse struct {
	MediaContainer mediaContainer `json:"MediaContainer"`
}

type mediaContainer struct {
	Size              int         `json:"size"`
	FriendlyName      string      `json:"friendlyName"`
	MachineIdentifier string      `json:"machineIdentifier"`
	Directory         []Directory `json:"Directory"`
	Metadata          []Metadata  `json:"Metadata"`
}

// Directory is a library section entry.
type Directory struct {
	Key   string `json:"key"`
	Type  string `json:"type"`
	Title string `json:"title"`
}

// Metadata is one library item (movie, show, or episode leaf).
type Metadata struct {
	RatingKey string    `json:"ratingKey"`
	GUID      string    `json:"guid"`
	Guids     []GuidRef `json:"Guid"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Year      int       `json:"year"`
	AddedAt   int64     `json:"addedAt"`
	Media     []Media   `json:"Media"`
}

// GuidRef is one external identifier of an item, e.g. "tmdb://603".
type GuidRef struct {
	ID string `json:"id"`
}

// Media is one media version of an item.
type Media struct {
	Part []Part `json:"Part"`
}

// Part is one file backing a media version.
type Part struct {
	File string `json:"file"`
	Size int64  `json:"size"`
}
