package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vokabelnetz/engine/internal/entity"
	"github.com/vokabelnetz/engine/internal/repository"
)

type activityRepository struct {
	pool *pgxpool.Pool
}

// NewActivityRepository constructs a pgx-backed daily activity store.
func NewActivityRepository(pool *pgxpool.Pool) repository.ActivityRepository {
	return &activityRepository{pool: pool}
}

func (r *activityRepository) RecordAnswer(ctx context.Context, userID int64, day time.Time, correct bool, responseTimeMs int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	correctInc, incorrectInc := 0, 1
	if correct {
		correctInc, incorrectInc = 1, 0
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO daily_stats (user_id, stat_date, words_reviewed, correct_answers, incorrect_answers, total_time_ms)
		VALUES ($1, $2, 1, $3, $4, $5)
		ON CONFLICT (user_id, stat_date) DO UPDATE SET
			words_reviewed = daily_stats.words_reviewed + 1,
			correct_answers = daily_stats.correct_answers + EXCLUDED.correct_answers,
			incorrect_answers = daily_stats.incorrect_answers + EXCLUDED.incorrect_answers,
			total_time_ms = daily_stats.total_time_ms + EXCLUDED.total_time_ms`,
		userID, day, correctInc, incorrectInc, int64(responseTimeMs))
	if err != nil {
		return fmt.Errorf("record answer: %w", err)
	}
	return nil
}

func (r *activityRepository) WasActiveOn(ctx context.Context, userID int64, day time.Time) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	var active bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM daily_stats
			WHERE user_id = $1 AND stat_date = $2 AND words_reviewed > 0
		)`, userID, day).Scan(&active)
	if err != nil {
		return false, fmt.Errorf("check activity: %w", err)
	}
	return active, nil
}

func (r *activityRepository) GetDay(ctx context.Context, userID int64, day time.Time) (*entity.DailyActivity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var a entity.DailyActivity
	err := r.pool.QueryRow(ctx, `
		SELECT id, user_id, stat_date, words_reviewed, correct_answers, incorrect_answers, total_time_ms
		FROM daily_stats
		WHERE user_id = $1 AND stat_date = $2`, userID, day).
		Scan(&a.ID, &a.UserID, &a.Day, &a.WordsReviewed, &a.CorrectAnswers, &a.IncorrectAnswers, &a.TotalTimeMs)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get daily activity: %w", err)
	}
	return &a, nil
}
