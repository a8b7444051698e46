package entity

import "time"

// RatingUpdate captures one symmetric Elo exchange between a learner
// and a word. Deltas are pre-clamp negations of each other; the new
// ratings are clamped independently.
type RatingUpdate struct {
	OldUserRating int
	NewUserRating int
	UserDelta     int
	OldWordRating int
	NewWordRating int
	WordDelta     int
	ExpectedScore float64
}

// AnswerResult is the composite outcome of processing one answer:
// correctness, the derived quality score, the Elo exchange, the new
// scheduling state and a streak snapshot.
type AnswerResult struct {
	Correct       bool
	Quality       int
	EloChange     int
	NewUserRating int
	NewWordRating int
	ExpectedScore float64
	NewEaseFactor float64
	NewInterval   int
	NextReviewAt  time.Time
	IsLearned     bool
	StreakStatus  StreakStatus
}

// NextWordResult names the word chosen for the learner. A nil Word
// means nothing is available at the requested level. Progress is only
// populated for review words.
type NextWordResult struct {
	Word     *Word
	Progress *UserProgress
	IsReview bool
	DueCount int
}
