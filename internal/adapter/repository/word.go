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

type wordRepository struct {
	pool *pgxpool.Pool
}

// NewWordRepository constructs a pgx-backed word catalog repository.
func NewWordRepository(pool *pgxpool.Pool) repository.WordRepository {
	return &wordRepository{pool: pool}
}

const wordColumns = `id, text, cefr_level, difficulty_rating, times_shown, times_correct, is_active, created_at, updated_at`

func scanWord(row pgx.Row) (*entity.Word, error) {
	var w entity.Word
	err := row.Scan(&w.ID, &w.Text, &w.CefrLevel, &w.DifficultyRating,
		&w.TimesShown, &w.TimesCorrect, &w.IsActive, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *wordRepository) GetByID(ctx context.Context, id int64) (*entity.Word, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	row := r.pool.QueryRow(ctx, `SELECT `+wordColumns+` FROM words WHERE id = $1`, id)
	word, err := scanWord(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrWordNotFound
		}
		return nil, fmt.Errorf("get word: %w", err)
	}
	return word, nil
}

func (r *wordRepository) FindNewWordsForUser(ctx context.Context, userID int64, level entity.CefrLevel, limit int) ([]entity.Word, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+wordColumns+`
		FROM words w
		WHERE w.is_active
		  AND w.cefr_level = $2
		  AND NOT EXISTS (
			SELECT 1 FROM user_word_progress p
			WHERE p.user_id = $1 AND p.word_id = w.id
		  )
		ORDER BY w.difficulty_rating ASC
		LIMIT $3`, userID, level, limit)
	if err != nil {
		return nil, fmt.Errorf("find new words: %w", err)
	}
	defer rows.Close()

	var words []entity.Word
	for rows.Next() {
		word, err := scanWord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan word: %w", err)
		}
		words = append(words, *word)
	}
	return words, rows.Err()
}

func (r *wordRepository) Update(ctx context.Context, word *entity.Word) (*entity.Word, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	row := r.pool.QueryRow(ctx, `
		UPDATE words
		SET difficulty_rating = $2,
		    times_shown = $3,
		    times_correct = $4,
		    is_active = $5,
		    updated_at = now()
		WHERE id = $1
		RETURNING `+wordColumns,
		word.ID, word.DifficultyRating, word.TimesShown, word.TimesCorrect, word.IsActive)
	updated, err := scanWord(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrWordNotFound
		}
		return nil, fmt.Errorf("update word: %w", err)
	}
	return updated, nil
}
