// Package storage records analysis runs so they can be listed later
// and served over the HTTP API.
package storage

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a run id has no stored row.
var ErrNotFound = errors.New("run not found")

// Run is one recorded analysis pass.
type Run struct {
	ID              string          `json:"id"`
	StartedAt       time.Time       `json:"startedAt"`
	FinishedAt      *time.Time      `json:"finishedAt,omitempty"`
	SortMode        string          `json:"sortMode"`
	ItemsScanned    int             `json:"itemsScanned"`
	ItemsClassified int             `json:"itemsClassified"`
	TotalSizeGB     float64         `json:"totalSizeGB"`
	Categories      []CategoryStats `json:"categories,omitempty"`
}

// CategoryStats is the per-category breakdown of a run.
type CategoryStats struct {
	Category    string  `json:"category"`
	MovieCount  int     `json:"movieCount"`
	ShowCount   int     `json:"showCount"`
	TotalSizeGB float64 `json:"totalSizeGB"`
}

// Summary aggregates across all recorded runs.
type Summary struct {
	RunCount    int        `json:"runCount"`
	LastRunAt   *time.Time `json:"lastRunAt,omitempty"`
	TotalSizeGB float64    `json:"totalSizeGB"`
}

// Storage persists runs.
type Storage interface {
	RunMigrations(ctx context.Context) error
	RecordRun(ctx context.Context, run Run) error
	ListRuns(ctx context.Context) ([]Run, error)
	GetRun(ctx context.Context, id string) (Run, error)
	GetSummary(ctx context.Context) (Summary, error)
	Close() error
}
