// Package sqlite is the sqlite-backed run store.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-jet/jet/v2/qrm"
	"github.com/go-jet/jet/v2/sqlite"
	"github.com/mediasweep/purgarr/pkg/logger"
	"github.com/mediasweep/purgarr/pkg/storage"
	"github.com/mediasweep/purgarr/pkg/storage/sqlite/schema/gen/model"
	"github.com/mediasweep/purgarr/pkg/storage/sqlite/schema/gen/table"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

type SQLite struct {
	db *sql.DB
	mu sync.Mutex
}

// New opens the sqlite database at the given path, creating it if
// needed. RunMigrations must be called before first use.
func New(filePath string) (storage.Storage, error) {
	db, err := sql.Open("sqlite3", filePath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	return &SQLite{db: db}, nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

// RecordRun stores a run and its per-category rows in one transaction.
func (s *SQLite) RecordRun(ctx context.Context, run storage.Run) error {
	log := logger.FromCtx(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	stmt := table.Run.INSERT(table.Run.AllColumns).MODEL(runToModel(run))
	if _, err := stmt.ExecContext(ctx, tx); err != nil {
		log.Debug("failed to insert run", zap.String("query", stmt.DebugSql()), zap.Error(err))
		tx.Rollback()
		return err
	}

	for _, cat := range run.Categories {
		stmt := table.RunCategory.INSERT(table.RunCategory.MutableColumns).MODEL(categoryToModel(run.ID, cat))
		if _, err := stmt.ExecContext(ctx, tx); err != nil {
			log.Debug("failed to insert run category", zap.String("query", stmt.DebugSql()), zap.Error(err))
			tx.Rollback()
			return err
		}
	}

	return tx.Commit()
}

// ListRuns returns all recorded runs, most recent first, without their
// category breakdowns.
func (s *SQLite) ListRuns(ctx context.Context) ([]storage.Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows := make([]model.Run, 0)
	stmt := table.Run.SELECT(table.Run.AllColumns).FROM(table.Run).ORDER_BY(table.Run.StartedAt.DESC())
	if err := stmt.QueryContext(ctx, s.db, &rows); err != nil {
		logger.FromCtx(ctx).Errorf("failed to list runs: %v", err)
		return nil, err
	}

	runs := make([]storage.Run, 0, len(rows))
	for _, row := range rows {
		runs = append(runs, runFromModel(row))
	}

	return runs, nil
}

// GetRun returns one run with its category breakdown.
func (s *SQLite) GetRun(ctx context.Context, id string) (storage.Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var row model.Run
	stmt := table.Run.SELECT(table.Run.AllColumns).FROM(table.Run).WHERE(table.Run.ID.EQ(sqlite.String(id)))
	if err := stmt.QueryContext(ctx, s.db, &row); err != nil {
		if errors.Is(err, qrm.ErrNoRows) {
			return storage.Run{}, storage.ErrNotFound
		}
		return storage.Run{}, err
	}

	run := runFromModel(row)

	cats := make([]model.RunCategory, 0)
	catStmt := table.RunCategory.
		SELECT(table.RunCategory.AllColumns).
		FROM(table.RunCategory).
		WHERE(table.RunCategory.RunID.EQ(sqlite.String(id))).
		ORDER_BY(table.RunCategory.ID.ASC())
	if err := catStmt.QueryContext(ctx, s.db, &cats); err != nil {
		return storage.Run{}, err
	}

	for _, cat := range cats {
		run.Categories = append(run.Categories, storage.CategoryStats{
			Category:    cat.Category,
			MovieCount:  int(cat.MovieCount),
			ShowCount:   int(cat.ShowCount),
			TotalSizeGB: cat.TotalSizeGb,
		})
	}

	return run, nil
}

// GetSummary aggregates across all runs.
func (s *SQLite) GetSummary(ctx context.Context) (storage.Summary, error) {
	// raw SQL since Jet doesn't handle aggregate queries with custom
	// structs well
	s.mu.Lock()
	defer s.mu.Unlock()

	var summary storage.Summary
	row := s.db.QueryRowContext(ctx, `SELECT COUNT(*), COALESCE(SUM(total_size_gb), 0) FROM run`)
	if err := row.Scan(&summary.RunCount, &summary.TotalSizeGB); err != nil {
		return storage.Summary{}, err
	}

	if summary.RunCount > 0 {
		var last time.Time
		row := s.db.QueryRowContext(ctx, `SELECT started_at FROM run ORDER BY started_at DESC LIMIT 1`)
		if err := row.Scan(&last); err != nil {
			return storage.Summary{}, err
		}
		summary.LastRunAt = &last
	}

	return summary, nil
}

func runToModel(run storage.Run) model.Run {
	return model.Run{
		ID:              run.ID,
		StartedAt:       run.StartedAt,
		FinishedAt:      run.FinishedAt,
		SortMode:        run.SortMode,
		ItemsScanned:    int32(run.ItemsScanned),
		ItemsClassified: int32(run.ItemsClassified),
		TotalSizeGb:     run.TotalSizeGB,
	}
}

func runFromModel(row model.Run) storage.Run {
	return storage.Run{
		ID:              row.ID,
		StartedAt:       row.StartedAt,
		FinishedAt:      row.FinishedAt,
		SortMode:        row.SortMode,
		ItemsScanned:    int(row.ItemsScanned),
		ItemsClassified: int(row.ItemsClassified),
		TotalSizeGB:     row.TotalSizeGb,
	}
}

func categoryToModel(runID string, cat storage.CategoryStats) model.RunCategory {
	return model.RunCategory{
		RunID:       runID,
		Category:    cat.Category,
		MovieCount:  int32(cat.MovieCount),
		ShowCount:   int32(cat.ShowCount),
		TotalSizeGb: cat.TotalSizeGB,
	}
}
