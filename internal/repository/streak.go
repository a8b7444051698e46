package repository

import (
	"context"

	"github.com/vokabelnetz/engine/internal/entity"
)

// StreakHistoryRepository stores append-only streak history rows.
type StreakHistoryRepository interface {
	Append(ctx context.Context, record *entity.StreakHistoryRecord) (*entity.StreakHistoryRecord, error)
	ListByUser(ctx context.Context, userID int64, limit int) ([]entity.StreakHistoryRecord, error)
}
