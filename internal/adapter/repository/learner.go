package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vokabelnetz/engine/internal/entity"
	"github.com/vokabelnetz/engine/internal/repository"
)

type learnerRepository struct {
	pool *pgxpool.Pool
}

// NewLearnerRepository constructs a pgx-backed learner repository.
func NewLearnerRepository(pool *pgxpool.Pool) repository.LearnerRepository {
	return &learnerRepository{pool: pool}
}

const learnerColumns = `id, elo_rating, current_streak, longest_streak, streak_freezes_available,
	freeze_used_on, timezone, is_active, created_at, updated_at`

func scanLearner(row pgx.Row) (*entity.Learner, error) {
	var l entity.Learner
	err := row.Scan(&l.ID, &l.EloRating, &l.CurrentStreak, &l.LongestStreak,
		&l.StreakFreezesAvailable, &l.FreezeUsedOn, &l.Timezone, &l.IsActive,
		&l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *learnerRepository) GetByID(ctx context.Context, id int64) (*entity.Learner, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	row := r.pool.QueryRow(ctx, `SELECT `+learnerColumns+` FROM users WHERE id = $1`, id)
	learner, err := scanLearner(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrLearnerNotFound
		}
		return nil, fmt.Errorf("get learner: %w", err)
	}
	return learner, nil
}

func (r *learnerRepository) Update(ctx context.Context, learner *entity.Learner) (*entity.Learner, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	row := r.pool.QueryRow(ctx, `
		UPDATE users
		SET elo_rating = $2,
		    current_streak = $3,
		    longest_streak = $4,
		    streak_freezes_available = $5,
		    freeze_used_on = $6,
		    timezone = $7,
		    is_active = $8,
		    updated_at = now()
		WHERE id = $1
		RETURNING `+learnerColumns,
		learner.ID, learner.EloRating, learner.CurrentStreak, learner.LongestStreak,
		learner.StreakFreezesAvailable, learner.FreezeUsedOn, learner.Timezone, learner.IsActive)
	updated, err := scanLearner(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrLearnerNotFound
		}
		return nil, fmt.Errorf("update learner: %w", err)
	}
	return updated, nil
}

func (r *learnerRepository) ListActive(ctx context.Context) ([]entity.Learner, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rows, err := r.pool.Query(ctx, `SELECT `+learnerColumns+` FROM users WHERE is_active ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list active learners: %w", err)
	}
	defer rows.Close()

	var learners []entity.Learner
	for rows.Next() {
		learner, err := scanLearner(rows)
		if err != nil {
			return nil, fmt.Errorf("scan learner: %w", err)
		}
		learners = append(learners, *learner)
	}
	return learners, rows.Err()
}
