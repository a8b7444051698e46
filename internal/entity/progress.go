package entity

import "time"

// UserProgress tracks one learner's scheduling state for one word.
// All SM-2 fields are maintained by the review scheduler; counters and
// response times are maintained by the orchestrator. A progress row is
// created on the first answer to a word and never deleted.
type UserProgress struct {
	ID     int64
	UserID int64
	WordID int64

	// SM-2 state.
	EaseFactor   float64
	IntervalDays int
	Repetition   int
	LastQuality  *int

	// Review scheduling.
	NextReviewAt   time.Time
	LastReviewedAt *time.Time

	// Performance tracking.
	TimesCorrect       int
	TimesIncorrect     int
	LastResponseTimeMs int
	AvgResponseTimeMs  int

	// Learning status. The learned transition is monotonic: the
	// scheduler sets it once and never clears it.
	IsLearned bool
	LearnedAt *time.Time

	IsFavorite  bool
	IsDifficult bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TotalAnswers returns how many answers have been recorded for the pair.
func (p UserProgress) TotalAnswers() int {
	return p.TimesCorrect + p.TimesIncorrect
}
