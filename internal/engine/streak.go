package engine

import (
	"time"

	"github.com/vokabelnetz/engine/internal/entity"
)

// StreakTracker maintains per-learner continuity across timezone-local
// day boundaries, including the freeze award/consumption mechanic.
// Like the other engine components it works on snapshots: callers
// persist the returned learner and append the returned history record.
type StreakTracker struct {
	cfg Config
}

// NewStreakTracker builds a tracker with the given tuning.
func NewStreakTracker(cfg Config) *StreakTracker {
	return &StreakTracker{cfg: cfg}
}

// Location resolves the learner's IANA timezone, falling back to the
// configured default on an invalid or missing value, and to UTC when
// the default itself does not load.
func (t *StreakTracker) Location(timezone string) *time.Location {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err == nil {
			return loc
		}
	}
	if loc, err := time.LoadLocation(t.cfg.DefaultTimezone); err == nil {
		return loc
	}
	return time.UTC
}

// LocalDate truncates the instant to midnight of the learner's local
// calendar day.
func (t *StreakTracker) LocalDate(timezone string, now time.Time) time.Time {
	local := now.In(t.Location(timezone))
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, local.Location())
}

// ProcessEndOfDay evaluates one day boundary for a learner. An active
// yesterday extends the streak and may bank a freeze at a milestone;
// an inactive yesterday consumes a freeze when one is available and
// breaks the streak otherwise. Exactly one history record is produced
// per call. Milestone freezes are awarded here and nowhere else.
func (t *StreakTracker) ProcessEndOfDay(learner entity.Learner, wasActiveYesterday bool, now time.Time) (entity.Learner, entity.StreakResult, entity.StreakHistoryRecord) {
	today := t.LocalDate(learner.Timezone, now)

	if wasActiveYesterday {
		return t.maintainStreak(learner, today)
	}
	return t.handleMissedDay(learner, today)
}

func (t *StreakTracker) maintainStreak(learner entity.Learner, today time.Time) (entity.Learner, entity.StreakResult, entity.StreakHistoryRecord) {
	learner.CurrentStreak++
	if learner.CurrentStreak > learner.LongestStreak {
		learner.LongestStreak = learner.CurrentStreak
	}

	freezeEarned := false
	if learner.CurrentStreak%t.cfg.FreezeMilestoneDays == 0 && learner.StreakFreezesAvailable < t.cfg.MaxFreezes {
		learner.StreakFreezesAvailable++
		freezeEarned = true
	}

	record := entity.StreakHistoryRecord{
		UserID:      learner.ID,
		Date:        today,
		StreakCount: learner.CurrentStreak,
		WasActive:   true,
	}

	outcome := entity.StreakMaintained
	if freezeEarned {
		outcome = entity.StreakMilestone
	}
	return learner, entity.StreakResult{
		Outcome:       outcome,
		CurrentStreak: learner.CurrentStreak,
		FreezeEarned:  freezeEarned,
	}, record
}

func (t *StreakTracker) handleMissedDay(learner entity.Learner, today time.Time) (entity.Learner, entity.StreakResult, entity.StreakHistoryRecord) {
	yesterday := today.AddDate(0, 0, -1)

	if learner.StreakFreezesAvailable > 0 {
		learner.StreakFreezesAvailable--
		learner.FreezeUsedOn = &yesterday

		record := entity.StreakHistoryRecord{
			UserID:      learner.ID,
			Date:        yesterday,
			StreakCount: learner.CurrentStreak,
			FreezeUsed:  true,
		}
		return learner, entity.StreakResult{
			Outcome:       entity.StreakFrozen,
			CurrentStreak: learner.CurrentStreak,
		}, record
	}

	lost := learner.CurrentStreak
	learner.CurrentStreak = 0

	record := entity.StreakHistoryRecord{
		UserID: learner.ID,
		Date:   yesterday,
	}
	return learner, entity.StreakResult{
		Outcome:    entity.StreakBroken,
		LostStreak: lost,
	}, record
}

// Status reports the learner's streak for display. AtRisk flips on
// when the day has not been completed and local midnight is less than
// two hours away.
func (t *StreakTracker) Status(learner entity.Learner, completedToday bool, now time.Time) entity.StreakStatus {
	local := now.In(t.Location(learner.Timezone))
	minutesRemaining := (23*60 + 59) - (local.Hour()*60 + local.Minute())

	return entity.StreakStatus{
		CurrentStreak:     learner.CurrentStreak,
		LongestStreak:     learner.LongestStreak,
		CompletedToday:    completedToday,
		AtRisk:            !completedToday && minutesRemaining < 120,
		FreezesAvailable:  learner.StreakFreezesAvailable,
		MinutesUntilReset: minutesRemaining,
	}
}

// ActivateFreeze consumes one banked freeze for today. It returns
// false without mutation when none are available; that is a normal
// outcome, not a fault.
func (t *StreakTracker) ActivateFreeze(learner entity.Learner, now time.Time) (entity.Learner, entity.StreakHistoryRecord, bool) {
	if learner.StreakFreezesAvailable <= 0 {
		return learner, entity.StreakHistoryRecord{}, false
	}

	today := t.LocalDate(learner.Timezone, now)
	learner.StreakFreezesAvailable--
	learner.FreezeUsedOn = &today

	record := entity.StreakHistoryRecord{
		UserID:      learner.ID,
		Date:        today,
		StreakCount: learner.CurrentStreak,
		FreezeUsed:  true,
	}
	return learner, record, true
}
