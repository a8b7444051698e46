package repository

import (
	"context"

	"github.com/vokabelnetz/engine/internal/entity"
)

// WordRepository defines data access for the shared word catalog.
type WordRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.Word, error)
	// FindNewWordsForUser returns active words at the level the user has
	// never attempted, ordered by difficulty rating ascending.
	FindNewWordsForUser(ctx context.Context, userID int64, level entity.CefrLevel, limit int) ([]entity.Word, error)
	Update(ctx context.Context, word *entity.Word) (*entity.Word, error)
}
