package snapshot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"beadcolors/internal/catalog"
	"beadcolors/internal/palette"
)

// Run is one recorded conversion.
type Run struct {
	ID           string        `json:"id"`
	StartedAt    time.Time     `json:"started_at"`
	FinishedAt   time.Time     `json:"finished_at"`
	Source       string        `json:"source"`
	Output       string        `json:"output"`
	Format       string        `json:"format"`
	TotalColors  int           `json:"total_colors"`
	FailedBrands int           `json:"failed_brands"`
	Brands       []BrandResult `json:"brands,omitempty"`
}

// BrandResult is the per-brand summary stored with a run.
type BrandResult struct {
	Brand      string `json:"brand"`
	Colors     int    `json:"colors"`
	Anchors    int    `json:"anchors"`
	Duplicates int    `json:"duplicates"`
	Repaired   int    `json:"repaired"`
	ErrorKind  string `json:"error_kind,omitempty"`
	Error      string `json:"error,omitempty"`
}

// SaveRun records run and every color of libraries in one transaction.
func (s *Store) SaveRun(ctx context.Context, run Run, libraries []catalog.Library) error {
	return retryOnBusy(ctx, func() error {
		return s.saveRunTx(ctx, run, libraries)
	})
}

func (s *Store) saveRunTx(ctx context.Context, run Run, libraries []catalog.Library) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin run tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `INSERT INTO runs
		(id, started_at, finished_at, source, output, format, total_colors, failed_brands)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, formatTime(run.StartedAt), formatTime(run.FinishedAt),
		run.Source, run.Output, run.Format, run.TotalColors, run.FailedBrands,
	); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for i, br := range run.Brands {
		if _, err := tx.ExecContext(ctx, `INSERT INTO brand_results
			(run_id, brand, position, colors, anchors, duplicates, repaired, error_kind, error)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			run.ID, br.Brand, i, br.Colors, br.Anchors, br.Duplicates, br.Repaired, br.ErrorKind, br.Error,
		); err != nil {
			return fmt.Errorf("insert brand result %s: %w", br.Brand, err)
		}
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO colors
		(run_id, brand, position, color_id, code, name, hex) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare color insert: %w", err)
	}
	defer stmt.Close()
	for _, lib := range libraries {
		for i, c := range lib.Colors {
			if _, err := stmt.ExecContext(ctx, run.ID, lib.Brand, i, c.ID, c.Code, c.Name, c.Hex); err != nil {
				return fmt.Errorf("insert color %s/%s: %w", lib.Brand, c.Code, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit run: %w", err)
	}
	return nil
}

const runColumns = "id, started_at, finished_at, source, output, format, total_colors, failed_brands"

func scanRun(row interface{ Scan(...any) error }) (Run, error) {
	var (
		run               Run
		started, finished string
	)
	if err := row.Scan(&run.ID, &started, &finished, &run.Source, &run.Output, &run.Format, &run.TotalColors, &run.FailedBrands); err != nil {
		return Run{}, err
	}
	run.StartedAt = parseTime(started)
	run.FinishedAt = parseTime(finished)
	return run, nil
}

// ListRuns returns up to limit runs, newest first. A limit <= 0 returns all runs.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	query := "SELECT " + runColumns + " FROM runs ORDER BY started_at DESC, rowid DESC"
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// GetRun loads a run with its brand results.
func (s *Store) GetRun(ctx context.Context, id string) (Run, error) {
	run, err := scanRun(s.db.QueryRowContext(ctx, "SELECT "+runColumns+" FROM runs WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%s: %w", id, ErrRunNotFound)
	}
	if err != nil {
		return Run{}, fmt.Errorf("get run: %w", err)
	}
	run.Brands, err = s.brandResults(ctx, id)
	if err != nil {
		return Run{}, err
	}
	return run, nil
}

// PreviousRun returns the run recorded immediately before id, if any.
func (s *Store) PreviousRun(ctx context.Context, id string) (Run, bool, error) {
	current, err := s.GetRun(ctx, id)
	if err != nil {
		return Run{}, false, err
	}
	row := s.db.QueryRowContext(ctx, "SELECT "+runColumns+` FROM runs
		WHERE started_at < ? OR (started_at = ? AND rowid < (SELECT rowid FROM runs WHERE id = ?))
		ORDER BY started_at DESC, rowid DESC LIMIT 1`,
		formatTime(current.StartedAt), formatTime(current.StartedAt), id)
	prev, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, false, nil
	}
	if err != nil {
		return Run{}, false, fmt.Errorf("previous run: %w", err)
	}
	return prev, true, nil
}

func (s *Store) brandResults(ctx context.Context, runID string) ([]BrandResult, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT brand, colors, anchors, duplicates, repaired, error_kind, error
		FROM brand_results WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, fmt.Errorf("list brand results: %w", err)
	}
	defer rows.Close()

	var results []BrandResult
	for rows.Next() {
		var br BrandResult
		if err := rows.Scan(&br.Brand, &br.Colors, &br.Anchors, &br.Duplicates, &br.Repaired, &br.ErrorKind, &br.Error); err != nil {
			return nil, fmt.Errorf("scan brand result: %w", err)
		}
		results = append(results, br)
	}
	return results, rows.Err()
}

// Colors returns the colors a run recorded for brand, in extraction order.
// An empty brand returns every brand's colors in brand order.
func (s *Store) Colors(ctx context.Context, runID, brand string) ([]BrandColor, error) {
	query := `SELECT c.brand, c.color_id, c.name, c.code, c.hex FROM colors c
		JOIN brand_results b ON b.run_id = c.run_id AND b.brand = c.brand
		WHERE c.run_id = ?`
	args := []any{runID}
	if brand != "" {
		query += " AND c.brand = ?"
		args = append(args, brand)
	}
	query += " ORDER BY b.position, c.position"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list colors: %w", err)
	}
	defer rows.Close()

	var colors []BrandColor
	for rows.Next() {
		var (
			bc                  BrandColor
			id, name, code, hex string
		)
		if err := rows.Scan(&bc.Brand, &id, &name, &code, &hex); err != nil {
			return nil, fmt.Errorf("scan color: %w", err)
		}
		bc.Color = palette.NewColor(id, name, code, hex)
		colors = append(colors, bc)
	}
	return colors, rows.Err()
}

// BrandColor is a stored color tagged with its brand.
type BrandColor struct {
	Brand string `json:"brand"`
	palette.Color
}
