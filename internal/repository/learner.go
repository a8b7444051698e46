package repository

import (
	"context"

	"github.com/vokabelnetz/engine/internal/entity"
)

// LearnerRepository defines data access for per-user learning state.
type LearnerRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.Learner, error)
	Update(ctx context.Context, learner *entity.Learner) (*entity.Learner, error)
	// ListActive returns all learners eligible for the day-boundary scan.
	ListActive(ctx context.Context) ([]entity.Learner, error)
}
