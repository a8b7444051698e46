package entity

import "time"

// DailyActivity aggregates one learner's answers for one local
// calendar day. Presence of a row with WordsReviewed > 0 is what makes
// a day count toward the streak.
type DailyActivity struct {
	ID               int64
	UserID           int64
	Day              time.Time
	WordsReviewed    int
	CorrectAnswers   int
	IncorrectAnswers int
	TotalTimeMs      int64
}

// Active reports whether the day counts toward streak continuity.
func (a DailyActivity) Active() bool {
	return a.WordsReviewed > 0
}
