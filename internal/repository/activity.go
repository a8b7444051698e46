package repository

import (
	"context"
	"time"

	"github.com/vokabelnetz/engine/internal/entity"
)

// ActivityRepository tracks per-(user, local day) answer tallies. It
// backs the wasUserActiveOnDate query the streak tracker consumes.
type ActivityRepository interface {
	// RecordAnswer upserts the tally for the user's local calendar day.
	RecordAnswer(ctx context.Context, userID int64, day time.Time, correct bool, responseTimeMs int) error
	// WasActiveOn reports whether the user reviewed at least one word on
	// the given local calendar day.
	WasActiveOn(ctx context.Context, userID int64, day time.Time) (bool, error)
	GetDay(ctx context.Context, userID int64, day time.Time) (*entity.DailyActivity, error)
}
