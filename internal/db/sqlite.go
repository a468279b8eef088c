package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spacesedan/trendcast/internal/models"
	_ "modernc.org/sqlite"
)

// SQLiteStore keeps the dataset in a single local file for offline work.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, fmt.Errorf("SQLITE_PATH is required for the sqlite store")
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.ExecContext(ctx, pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	slog.Info("[DB] Opened SQLite store", slog.String("path", path))
	return &SQLiteStore{db: db, path: path}, nil
}

func (s *SQLiteStore) EnsureSchema(ctx context.Context) error {
	create := createTableSQL("id INTEGER PRIMARY KEY AUTOINCREMENT", func(c column) string { return c.sqlite }, "INTEGER")
	for _, stmt := range []string{create, countryIndexSQL} {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}

func (s *SQLiteStore) InsertVideos(ctx context.Context, videos []models.TrendingVideo) (int64, error) {
	if len(videos) == 0 {
		return 0, nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ")
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", TABLE_NAME, strings.Join(ColumnNames(), ", "), placeholders)

	var inserted int64
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, query)
		if err != nil {
			return err
		}
		defer stmt.Close()

		args := make([]any, len(columns))
		for i := range videos {
			for j, c := range columns {
				bind := c.value
				if c.sqliteBind != nil {
					bind = c.sqliteBind
				}
				args[j] = bind(&videos[i])
			}
			if _, err := stmt.ExecContext(ctx, args...); err != nil {
				return fmt.Errorf("row %d (%s): %w", i, videos[i].VideoID, err)
			}
			inserted++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to insert videos: %w", err)
	}
	return inserted, nil
}

func (s *SQLiteStore) EngagementRows(ctx context.Context) ([]models.EngagementRow, error) {
	rows, err := s.db.QueryContext(ctx, engagementQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query engagement: %w", err)
	}
	defer rows.Close()

	var out []models.EngagementRow
	for rows.Next() {
		var r models.EngagementRow
		if err := rows.Scan(&r.ID, &r.Country, &r.Views, &r.Likes, &r.Comments); err != nil {
			return nil, fmt.Errorf("failed to scan engagement row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) UpdateLabels(ctx context.Context, labels []models.TrendLabel) error {
	var updated int64
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, "UPDATE "+TABLE_NAME+" SET will_trend = ? WHERE id = ?")
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, l := range labels {
			res, err := stmt.ExecContext(ctx, labelValue(l.WillTrend), l.ID)
			if err != nil {
				return fmt.Errorf("label id %d: %w", l.ID, err)
			}
			n, _ := res.RowsAffected()
			updated += n
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to apply labels: %w", err)
	}
	slog.Info("[DB] Labels applied", slog.Int64("rows", updated))
	return nil
}

func (s *SQLiteStore) CountLabeled(ctx context.Context) (total, positive int64, err error) {
	err = s.db.QueryRowContext(ctx, countLabeledQuery).Scan(&total, &positive)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count labels: %w", err)
	}
	return total, positive, nil
}

func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SQLiteStore) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
