package entity

import "time"

// CefrLevel represents a language-proficiency tier per the Common
// European Framework of Reference.
type CefrLevel string

const (
	CefrA1 CefrLevel = "A1"
	CefrA2 CefrLevel = "A2"
	CefrB1 CefrLevel = "B1"
	CefrB2 CefrLevel = "B2"
	CefrC1 CefrLevel = "C1"
	CefrC2 CefrLevel = "C2"
)

// Valid reports whether the level is one of the six CEFR tiers.
func (l CefrLevel) Valid() bool {
	switch l {
	case CefrA1, CefrA2, CefrB1, CefrB2, CefrC1, CefrC2:
		return true
	default:
		return false
	}
}

// Word is a vocabulary item from the shared catalog. Its difficulty
// rating lives on the Elo scale and is the only field the learning
// engine moves (via rating updates computed by the matcher).
type Word struct {
	ID               int64
	Text             string
	CefrLevel        CefrLevel
	DifficultyRating int
	TimesShown       int64
	TimesCorrect     int64
	IsActive         bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// GlobalSuccessRate returns the catalog-wide share of correct answers.
func (w Word) GlobalSuccessRate() float64 {
	if w.TimesShown == 0 {
		return 0
	}
	return float64(w.TimesCorrect) / float64(w.TimesShown)
}
