package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spacesedan/trendcast/internal/models"
)

const CONNECT_TIMEOUT = 5 * time.Second

type PostgresStore struct {
	pool *pgxpool.Pool
}

func OpenPostgres(ctx context.Context, dsn string) (*PostgresStore, error) {
	if dsn == "" {
		return nil, fmt.Errorf("DATABASE_URL is required for the postgres store")
	}
	ctx, cancel := context.WithTimeout(ctx, CONNECT_TIMEOUT)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping PostgreSQL: %w", err)
	}

	slog.Info("[DB] Connected to PostgreSQL successfully")
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	create := createTableSQL("id BIGSERIAL PRIMARY KEY", func(c column) string { return c.postgres }, "SMALLINT")
	for _, stmt := range []string{create, countryIndexSQL} {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}

// InsertVideos bulk loads videos with the COPY protocol.
func (s *PostgresStore) InsertVideos(ctx context.Context, videos []models.TrendingVideo) (int64, error) {
	if len(videos) == 0 {
		return 0, nil
	}
	n, err := s.pool.CopyFrom(ctx,
		pgx.Identifier{TABLE_NAME},
		ColumnNames(),
		pgx.CopyFromSlice(len(videos), func(i int) ([]any, error) {
			row := make([]any, len(columns))
			for j, c := range columns {
				row[j] = c.value(&videos[i])
			}
			return row, nil
		}),
	)
	if err != nil {
		return n, fmt.Errorf("failed to insert videos: %w", err)
	}
	return n, nil
}

func (s *PostgresStore) EngagementRows(ctx context.Context) ([]models.EngagementRow, error) {
	rows, err := s.pool.Query(ctx, engagementQuery)
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

// UpdateLabels copies the labels into a temporary table and applies them with a
// single UPDATE ... FROM inside one transaction.
func (s *PostgresStore) UpdateLabels(ctx context.Context, labels []models.TrendLabel) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin label transaction: %w", err)
	}
	defer func() {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			slog.Warn("[DB] Rollback failed", slog.String("error", rbErr.Error()))
		}
	}()

	if _, err := tx.Exec(ctx, `CREATE TEMP TABLE tmp_will_trend (id BIGINT PRIMARY KEY, will_trend SMALLINT NOT NULL) ON COMMIT DROP`); err != nil {
		return fmt.Errorf("failed to create label staging table: %w", err)
	}
	if _, err := tx.CopyFrom(ctx,
		pgx.Identifier{"tmp_will_trend"},
		[]string{"id", "will_trend"},
		pgx.CopyFromSlice(len(labels), func(i int) ([]any, error) {
			return []any{labels[i].ID, labelValue(labels[i].WillTrend)}, nil
		}),
	); err != nil {
		return fmt.Errorf("failed to stage labels: %w", err)
	}
	tag, err := tx.Exec(ctx, `
        UPDATE `+TABLE_NAME+` t
        SET will_trend = tmp.will_trend
        FROM tmp_will_trend tmp
        WHERE t.id = tmp.id
    `)
	if err != nil {
		return fmt.Errorf("failed to apply labels: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit labels: %w", err)
	}

	slog.Info("[DB] Labels applied", slog.Int64("rows", tag.RowsAffected()))
	return nil
}

func (s *PostgresStore) CountLabeled(ctx context.Context) (total, positive int64, err error) {
	err = s.pool.QueryRow(ctx, countLabeledQuery).Scan(&total, &positive)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count labels: %w", err)
	}
	return total, positive, nil
}

func (s *PostgresStore) Close() error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}
