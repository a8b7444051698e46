package engine

import (
	"math"
	"time"

	"github.com/vokabelnetz/engine/internal/entity"
)

// ReviewScheduler implements the SM-2 spaced-repetition variant: it
// derives ease factor, interval and next-review time from a 0-5
// recall-quality score. All computations are pure snapshot-in,
// snapshot-out; write-back is the caller's job.
type ReviewScheduler struct {
	cfg Config
}

// NewReviewScheduler builds a scheduler with the given tuning.
func NewReviewScheduler(cfg Config) *ReviewScheduler {
	return &ReviewScheduler{cfg: cfg}
}

// InitializeProgress returns the starting state for a never-before-seen
// (user, word) pair: default ease, one-day interval, due immediately.
func (s *ReviewScheduler) InitializeProgress(userID, wordID int64, now time.Time) entity.UserProgress {
	return entity.UserProgress{
		UserID:       userID,
		WordID:       wordID,
		EaseFactor:   s.cfg.DefaultEaseFactor,
		IntervalDays: 1,
		Repetition:   0,
		NextReviewAt: now,
	}
}

// CalculateNextReview applies one quality score to a progress snapshot.
// Quality is clamped to [0,5]; a lapse (quality < 3) resets the
// repetition chain and the interval, a pass grows the interval by the
// SM-2 ladder capped at MaxIntervalDays. The ease factor is always
// refreshed and clamped, and the learned transition is monotonic.
func (s *ReviewScheduler) CalculateNextReview(progress entity.UserProgress, quality int, now time.Time) entity.UserProgress {
	quality = clampInt(quality, 0, 5)

	if quality < 3 {
		progress.Repetition = 0
		progress.IntervalDays = 1
	} else {
		switch progress.Repetition {
		case 0:
			progress.IntervalDays = 1
		case 1:
			progress.IntervalDays = 6
		default:
			next := int(math.Round(float64(progress.IntervalDays) * progress.EaseFactor))
			if next > s.cfg.MaxIntervalDays {
				next = s.cfg.MaxIntervalDays
			}
			progress.IntervalDays = next
		}
		progress.Repetition++
	}

	q := float64(quality)
	ease := progress.EaseFactor + (0.1 - (5-q)*(0.08+(5-q)*0.02))
	progress.EaseFactor = clampFloat(ease, s.cfg.MinEaseFactor, s.cfg.MaxEaseFactor)

	progress.NextReviewAt = now.AddDate(0, 0, progress.IntervalDays)
	progress.LastQuality = &quality
	reviewedAt := now
	progress.LastReviewedAt = &reviewedAt

	if progress.IntervalDays > s.cfg.LearnedThresholdDays && !progress.IsLearned {
		progress.IsLearned = true
		learnedAt := now
		progress.LearnedAt = &learnedAt
	}

	return progress
}
