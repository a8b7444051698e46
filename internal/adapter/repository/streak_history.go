package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vokabelnetz/engine/internal/entity"
	"github.com/vokabelnetz/engine/internal/repository"
)

type streakHistoryRepository struct {
	pool *pgxpool.Pool
}

// NewStreakHistoryRepository constructs a pgx-backed history store.
func NewStreakHistoryRepository(pool *pgxpool.Pool) repository.StreakHistoryRepository {
	return &streakHistoryRepository{pool: pool}
}

func (r *streakHistoryRepository) Append(ctx context.Context, record *entity.StreakHistoryRecord) (*entity.StreakHistoryRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	saved := *record
	err := r.pool.QueryRow(ctx, `
		INSERT INTO streak_history (user_id, streak_date, streak_count, was_active, freeze_used, created_at)
		VALUES ($1, $2, $3, $4, $5, now())
		RETURNING id, created_at`,
		record.UserID, record.Date, record.StreakCount, record.WasActive, record.FreezeUsed).
		Scan(&saved.ID, &saved.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("append streak history: %w", err)
	}
	return &saved, nil
}

func (r *streakHistoryRepository) ListByUser(ctx context.Context, userID int64, limit int) ([]entity.StreakHistoryRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, streak_date, streak_count, was_active, freeze_used, created_at
		FROM streak_history
		WHERE user_id = $1
		ORDER BY streak_date DESC, id DESC
		LIMIT $2`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list streak history: %w", err)
	}
	defer rows.Close()

	var records []entity.StreakHistoryRecord
	for rows.Next() {
		var rec entity.StreakHistoryRecord
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Date, &rec.StreakCount,
			&rec.WasActive, &rec.FreezeUsed, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan streak history: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
