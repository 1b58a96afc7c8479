package habits

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/streakkeeper/internal/common"
	"github.com/dmitrijs2005/streakkeeper/internal/dbx"
	"github.com/dmitrijs2005/streakkeeper/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanHabit(s scanner) (*models.Habit, error) {
	var (
		h    models.Habit
		last sql.NullTime
	)
	if err := s.Scan(&h.ID, &h.UserID, &h.Name, &h.CurrentStreak, &h.LongestStreak, &last, &h.Version, &h.CreatedAt); err != nil {
		return nil, err
	}
	if last.Valid {
		t := last.Time
		h.LastCheckIn = &t
	}
	return &h, nil
}

func (r *PostgresRepository) Create(ctx context.Context, h *models.Habit) error {
	query := `
		INSERT INTO habits (id, user_id, name)
		VALUES ($1, $2, $3)
		RETURNING current_streak, longest_streak, version, created_at
	`
	err := r.db.QueryRowContext(ctx, query, h.ID, h.UserID, h.Name).
		Scan(&h.CurrentStreak, &h.LongestStreak, &h.Version, &h.CreatedAt)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return common.ErrAlreadyExists
		}
		return fmt.Errorf("db error: %w", dbx.Classify(err))
	}
	h.LastCheckIn = nil
	return nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Habit, error) {
	query := `
		SELECT id, user_id, name, current_streak, longest_streak, last_check_in, version, created_at
		FROM habits
		WHERE id = $1
	`
	h, err := scanHabit(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", dbx.Classify(err))
	}
	return h, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]models.Habit, error) {
	query := `
		SELECT id, user_id, name, current_streak, longest_streak, last_check_in, version, created_at
		FROM habits
		WHERE user_id = $1
		ORDER BY created_at, id
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", dbx.Classify(err))
	}
	defer rows.Close()

	result := make([]models.Habit, 0)
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		result = append(result, *h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", dbx.Classify(err))
	}
	return result, nil
}

func (r *PostgresRepository) ListStreakRows(ctx context.Context) ([]models.StreakRow, error) {
	query := `
		SELECT user_id, COALESCE(current_streak, 0), last_check_in
		FROM habits
		ORDER BY created_at, id
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", dbx.Classify(err))
	}
	defer rows.Close()

	result := make([]models.StreakRow, 0)
	for rows.Next() {
		var (
			row  models.StreakRow
			last sql.NullTime
		)
		if err := rows.Scan(&row.UserID, &row.CurrentStreak, &last); err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		if last.Valid {
			t := last.Time
			row.LastCheckIn = &t
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", dbx.Classify(err))
	}
	return result, nil
}

func (r *PostgresRepository) UpdateStreak(ctx context.Context, h *models.Habit, expectedVersion int64) error {
	query := `
		UPDATE habits
		SET current_streak = $1, longest_streak = $2, last_check_in = $3, version = version + 1
		WHERE id = $4 AND user_id = $5 AND version = $6
	`
	var last any
	if h.LastCheckIn != nil {
		last = *h.LastCheckIn
	}

	res, err := r.db.ExecContext(ctx, query, h.CurrentStreak, h.LongestStreak, last, h.ID, h.UserID, expectedVersion)
	if err != nil {
		return fmt.Errorf("db error: %w", dbx.Classify(err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrVersionConflict
	}
	h.Version = expectedVersion + 1
	return nil
}

func (r *PostgresRepository) Rename(ctx context.Context, userID, id, name string) error {
	query := `
		UPDATE habits
		SET name = $1
		WHERE id = $2 AND user_id = $3
	`
	return r.execOwned(ctx, query, name, id, userID)
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, id string) error {
	query := `
		DELETE FROM habits
		WHERE id = $1 AND user_id = $2
	`
	return r.execOwned(ctx, query, id, userID)
}

func (r *PostgresRepository) execOwned(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("db error: %w", dbx.Classify(err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
