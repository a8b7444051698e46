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

type progressRepository struct {
	pool *pgxpool.Pool
}

// NewProgressRepository constructs a pgx-backed progress repository.
func NewProgressRepository(pool *pgxpool.Pool) repository.ProgressRepository {
	return &progressRepository{pool: pool}
}

const progressColumns = `id, user_id, word_id, ease_factor, interval_days, repetition, last_quality,
	next_review_at, last_reviewed_at, times_correct, times_incorrect,
	last_response_time_ms, avg_response_time_ms, is_learned, learned_at,
	is_favorite, is_difficult, created_at, updated_at`

func scanProgress(row pgx.Row) (*entity.UserProgress, error) {
	var p entity.UserProgress
	err := row.Scan(&p.ID, &p.UserID, &p.WordID, &p.EaseFactor, &p.IntervalDays, &p.Repetition,
		&p.LastQuality, &p.NextReviewAt, &p.LastReviewedAt, &p.TimesCorrect, &p.TimesIncorrect,
		&p.LastResponseTimeMs, &p.AvgResponseTimeMs, &p.IsLearned, &p.LearnedAt,
		&p.IsFavorite, &p.IsDifficult, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *progressRepository) FindByUserAndWord(ctx context.Context, userID, wordID int64) (*entity.UserProgress, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	row := r.pool.QueryRow(ctx,
		`SELECT `+progressColumns+` FROM user_word_progress WHERE user_id = $1 AND word_id = $2`,
		userID, wordID)
	progress, err := scanProgress(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // a missing pair is "new", not an error
		}
		return nil, fmt.Errorf("find progress: %w", err)
	}
	return progress, nil
}

func (r *progressRepository) FindDueForReview(ctx context.Context, userID int64, now time.Time, limit int) ([]entity.UserProgress, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+progressColumns+`
		FROM user_word_progress
		WHERE user_id = $1 AND next_review_at <= $2
		ORDER BY next_review_at ASC
		LIMIT $3`, userID, now, limit)
	if err != nil {
		return nil, fmt.Errorf("find due progress: %w", err)
	}
	defer rows.Close()

	var due []entity.UserProgress
	for rows.Next() {
		progress, err := scanProgress(rows)
		if err != nil {
			return nil, fmt.Errorf("scan progress: %w", err)
		}
		due = append(due, *progress)
	}
	return due, rows.Err()
}

func (r *progressRepository) CountOverdue(ctx context.Context, userID int64, now time.Time) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT count(*) FROM user_word_progress WHERE user_id = $1 AND next_review_at <= $2`,
		userID, now).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count overdue: %w", err)
	}
	return count, nil
}

func (r *progressRepository) Save(ctx context.Context, progress *entity.UserProgress) (*entity.UserProgress, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO user_word_progress (
			user_id, word_id, ease_factor, interval_days, repetition, last_quality,
			next_review_at, last_reviewed_at, times_correct, times_incorrect,
			last_response_time_ms, avg_response_time_ms, is_learned, learned_at,
			is_favorite, is_difficult, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,now(),now())
		ON CONFLICT (user_id, word_id) DO UPDATE SET
			ease_factor = EXCLUDED.ease_factor,
			interval_days = EXCLUDED.interval_days,
			repetition = EXCLUDED.repetition,
			last_quality = EXCLUDED.last_quality,
			next_review_at = EXCLUDED.next_review_at,
			last_reviewed_at = EXCLUDED.last_reviewed_at,
			times_correct = EXCLUDED.times_correct,
			times_incorrect = EXCLUDED.times_incorrect,
			last_response_time_ms = EXCLUDED.last_response_time_ms,
			avg_response_time_ms = EXCLUDED.avg_response_time_ms,
			is_learned = EXCLUDED.is_learned,
			learned_at = EXCLUDED.learned_at,
			is_favorite = EXCLUDED.is_favorite,
			is_difficult = EXCLUDED.is_difficult,
			updated_at = now()
		RETURNING `+progressColumns,
		progress.UserID, progress.WordID, progress.EaseFactor, progress.IntervalDays,
		progress.Repetition, progress.LastQuality, progress.NextReviewAt, progress.LastReviewedAt,
		progress.TimesCorrect, progress.TimesIncorrect, progress.LastResponseTimeMs,
		progress.AvgResponseTimeMs, progress.IsLearned, progress.LearnedAt,
		progress.IsFavorite, progress.IsDifficult)
	saved, err := scanProgress(row)
	if err != nil {
		return nil, fmt.Errorf("save progress: %w", err)
	}
	return saved, nil
}
