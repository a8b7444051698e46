package repository

import (
	"context"
	"time"

	"github.com/vokabelnetz/engine/internal/entity"
)

// ProgressRepository abstracts persistence for per-(user, word)
// scheduling state to keep the orchestrator storage agnostic.
type ProgressRepository interface {
	// FindByUserAndWord returns (nil, nil) when the pair has never been
	// answered; a missing row is "new", not an error.
	FindByUserAndWord(ctx context.Context, userID, wordID int64) (*entity.UserProgress, error)
	// FindDueForReview returns rows with nextReviewAt <= now, ordered by
	// nextReviewAt ascending.
	FindDueForReview(ctx context.Context, userID int64, now time.Time, limit int) ([]entity.UserProgress, error)
	CountOverdue(ctx context.Context, userID int64, now time.Time) (int, error)
	// Save inserts or updates by the (user, word) unique key.
	Save(ctx context.Context, progress *entity.UserProgress) (*entity.UserProgress, error)
}
