package usecase

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vokabelnetz/engine/internal/engine"
	"github.com/vokabelnetz/engine/internal/entity"
	"github.com/vokabelnetz/engine/internal/repository"
)

// ScanSummary tallies one pass of the day-boundary streak scan.
type ScanSummary struct {
	Processed int
	Broken    int
	Frozen    int
	Failed    int
}

// StreakUsecase drives the timezone-aware day-boundary evaluation and
// the manual freeze mechanic.
type StreakUsecase interface {
	// ProcessEndOfDay evaluates one learner's day boundary using the
	// external was-active-yesterday query.
	ProcessEndOfDay(ctx context.Context, userID int64) (*entity.StreakResult, error)
	// ProcessAllStreaks scans all active learners, evaluating only those
	// currently in the first hour of their local day. One learner's
	// failure never aborts the rest of the scan.
	ProcessAllStreaks(ctx context.Context) (ScanSummary, error)
	ActivateFreeze(ctx context.Context, userID int64) (bool, error)
	GetStreakStatus(ctx context.Context, userID int64) (*entity.StreakStatus, error)
}

// NewStreakUsecase wires the tracker with the collaborator repositories.
func NewStreakUsecase(
	tracker *engine.StreakTracker,
	learners repository.LearnerRepository,
	history repository.StreakHistoryRepository,
	activity repository.ActivityRepository,
	logger *logrus.Logger,
) StreakUsecase {
	return &streakUsecase{
		tracker:  tracker,
		learners: learners,
		history:  history,
		activity: activity,
		logger:   logger,
		clock:    time.Now,
	}
}

type streakUsecase struct {
	tracker  *engine.StreakTracker
	learners repository.LearnerRepository
	history  repository.StreakHistoryRepository
	activity repository.ActivityRepository
	logger   *logrus.Logger
	clock    func() time.Time
}

func (u *streakUsecase) ProcessEndOfDay(ctx context.Context, userID int64) (*entity.StreakResult, error) {
	learner, err := u.learners.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return u.evaluate(ctx, *learner, u.clock())
}

func (u *streakUsecase) evaluate(ctx context.Context, learner entity.Learner, now time.Time) (*entity.StreakResult, error) {
	yesterday := u.tracker.LocalDate(learner.Timezone, now).AddDate(0, 0, -1)
	wasActive, err := u.activity.WasActiveOn(ctx, learner.ID, yesterday)
	if err != nil {
		return nil, err
	}

	updated, result, record := u.tracker.ProcessEndOfDay(learner, wasActive, now)

	if _, err := u.learners.Update(ctx, &updated); err != nil {
		return nil, err
	}
	if _, err := u.history.Append(ctx, &record); err != nil {
		return nil, err
	}

	switch result.Outcome {
	case entity.StreakBroken:
		u.logger.Infof("streak broken for user %d, lost %d days", learner.ID, result.LostStreak)
	case entity.StreakFrozen:
		u.logger.Infof("streak freeze used for user %d", learner.ID)
	case entity.StreakMilestone:
		u.logger.Infof("user %d earned streak freeze at day %d", learner.ID, result.CurrentStreak)
	}
	return &result, nil
}

func (u *streakUsecase) ProcessAllStreaks(ctx context.Context) (ScanSummary, error) {
	now := u.clock()

	learners, err := u.learners.ListActive(ctx)
	if err != nil {
		return ScanSummary{}, err
	}

	var summary ScanSummary
	for _, learner := range learners {
		// Only the midnight hour of the learner's own timezone counts;
		// the scan runs hourly to catch every zone once per day.
		if now.In(u.tracker.Location(learner.Timezone)).Hour() != 0 {
			continue
		}

		result, err := u.evaluate(ctx, learner, now)
		if err != nil {
			summary.Failed++
			u.logger.Errorf("streak processing failed for user %d: %v", learner.ID, err)
			continue
		}

		summary.Processed++
		switch result.Outcome {
		case entity.StreakBroken:
			summary.Broken++
		case entity.StreakFrozen:
			summary.Frozen++
		}
	}

	u.logger.Infof("streak scan completed: %d processed, %d broken, %d frozen, %d failed",
		summary.Processed, summary.Broken, summary.Frozen, summary.Failed)
	return summary, nil
}

func (u *streakUsecase) ActivateFreeze(ctx context.Context, userID int64) (bool, error) {
	learner, err := u.learners.GetByID(ctx, userID)
	if err != nil {
		return false, err
	}

	updated, record, ok := u.tracker.ActivateFreeze(*learner, u.clock())
	if !ok {
		return false, nil
	}

	if _, err := u.learners.Update(ctx, &updated); err != nil {
		return false, err
	}
	if _, err := u.history.Append(ctx, &record); err != nil {
		return false, err
	}
	u.logger.Infof("user %d manually activated streak freeze", userID)
	return true, nil
}

func (u *streakUsecase) GetStreakStatus(ctx context.Context, userID int64) (*entity.StreakStatus, error) {
	learner, err := u.learners.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := u.clock()
	today := u.tracker.LocalDate(learner.Timezone, now)
	completed, err := u.activity.WasActiveOn(ctx, userID, today)
	if err != nil {
		return nil, err
	}

	status := u.tracker.Status(*learner, completed, now)
	return &status, nil
}
