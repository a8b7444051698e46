package entity

import "time"

// Learner carries the per-user state the engine reads and moves: the
// Elo rating, streak continuity counters, banked streak freezes and
// the IANA timezone that anchors the user's day boundary.
type Learner struct {
	ID                     int64
	EloRating              int
	CurrentStreak          int
	LongestStreak          int
	StreakFreezesAvailable int
	FreezeUsedOn           *time.Time
	Timezone               string
	IsActive               bool
	CreatedAt              time.Time
	UpdatedAt              time.Time
}
