package entity

import "time"

// StreakOutcome classifies the result of a day-boundary evaluation.
type StreakOutcome string

const (
	StreakMaintained StreakOutcome = "MAINTAINED"
	StreakMilestone  StreakOutcome = "MILESTONE"
	StreakFrozen     StreakOutcome = "FROZEN"
	StreakBroken     StreakOutcome = "BROKEN"
)

// StreakResult reports what a day-boundary evaluation did to a
// learner's streak.
type StreakResult struct {
	Outcome       StreakOutcome
	CurrentStreak int
	LostStreak    int
	FreezeEarned  bool
}

// StreakStatus is a read-only snapshot for display alongside answers.
type StreakStatus struct {
	CurrentStreak     int
	LongestStreak     int
	CompletedToday    bool
	AtRisk            bool
	FreezesAvailable  int
	MinutesUntilReset int
}

// StreakHistoryRecord is one append-only row of streak history. Date
// is the local calendar day the record describes, truncated to
// midnight in the learner's timezone.
type StreakHistoryRecord struct {
	ID          int64
	UserID      int64
	Date        time.Time
	StreakCount int
	WasActive   bool
	FreezeUsed  bool
	CreatedAt   time.Time
}
