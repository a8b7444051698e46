package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/vokabelnetz/engine/internal/engine"
	"github.com/vokabelnetz/engine/internal/entity"
	"github.com/vokabelnetz/engine/internal/repository"
)

const (
	dueReviewBatchSize = 10
	newWordBatchSize   = 20
)

// AnswerInput carries one answer submission as reported by the client.
type AnswerInput struct {
	Correct        bool
	UsedHint       bool
	Recognized     bool
	ResponseTimeMs int
}

// LearningUsecase orchestrates the review scheduler, the difficulty
// matcher and the streak tracker to decide what a learner sees next
// and when they see it again.
type LearningUsecase interface {
	ProcessAnswer(ctx context.Context, userID, wordID int64, input AnswerInput) (*entity.AnswerResult, error)
	GetNextWord(ctx context.Context, userID int64, level entity.CefrLevel) (*entity.NextWordResult, error)
	GetQuizWords(ctx context.Context, userID int64, level entity.CefrLevel, count int) ([]entity.Word, error)
	GetReviewCount(ctx context.Context, userID int64) (int, error)
}

// NewLearningUsecase wires the engine components with the collaborator
// repositories.
func NewLearningUsecase(
	scheduler *engine.ReviewScheduler,
	matcher *engine.DifficultyMatcher,
	tracker *engine.StreakTracker,
	cfg engine.Config,
	words repository.WordRepository,
	progress repository.ProgressRepository,
	learners repository.LearnerRepository,
	activity repository.ActivityRepository,
	logger *logrus.Logger,
) LearningUsecase {
	return &learningUsecase{
		scheduler: scheduler,
		matcher:   matcher,
		tracker:   tracker,
		cfg:       cfg,
		words:     words,
		progress:  progress,
		learners:  learners,
		activity:  activity,
		logger:    logger,
		clock:     time.Now,
	}
}

type learningUsecase struct {
	scheduler *engine.ReviewScheduler
	matcher   *engine.DifficultyMatcher
	tracker   *engine.StreakTracker
	cfg       engine.Config
	words     repository.WordRepository
	progress  repository.ProgressRepository
	learners  repository.LearnerRepository
	activity  repository.ActivityRepository
	logger    *logrus.Logger
	clock     func() time.Time
}

// MapToQuality derives the 0-5 SM-2 quality score from an answer:
// wrong answers score 0 or 1 depending on recognition, hinted answers
// score 2, and clean answers score by response time.
func MapToQuality(input AnswerInput) int {
	if !input.Correct {
		if input.Recognized {
			return 1
		}
		return 0
	}
	if input.UsedHint {
		return 2
	}
	switch {
	case input.ResponseTimeMs < 2000:
		return 5
	case input.ResponseTimeMs < 5000:
		return 4
	default:
		return 3
	}
}

// ProcessAnswer applies one answer: the Elo exchange and the SM-2
// reschedule are computed on snapshots and written back together. The
// two writes belong to one unit of work; deployments sharing a store
// across processes must serialize concurrent answers for the same
// (user, word) pair at the storage layer.
func (u *learningUsecase) ProcessAnswer(ctx context.Context, userID, wordID int64, input AnswerInput) (*entity.AnswerResult, error) {
	word, err := u.words.GetByID(ctx, wordID)
	if err != nil {
		return nil, err
	}
	learner, err := u.learners.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := u.clock()

	prog, err := u.progress.FindByUserAndWord(ctx, userID, wordID)
	if err != nil {
		return nil, err
	}
	if prog == nil {
		initial := u.scheduler.InitializeProgress(userID, wordID, now)
		prog = &initial
	}

	quality := MapToQuality(input)

	upd := u.matcher.UpdateRatings(learner.EloRating, word.DifficultyRating, input.Correct)
	next := u.scheduler.CalculateNextReview(*prog, quality, now)

	if input.Correct {
		next.TimesCorrect++
	} else {
		next.TimesIncorrect++
	}
	next.LastResponseTimeMs = input.ResponseTimeMs
	// Running average over the post-increment answer count.
	if n := next.TotalAnswers(); n > 1 && next.AvgResponseTimeMs > 0 {
		next.AvgResponseTimeMs = (next.AvgResponseTimeMs*(n-1) + input.ResponseTimeMs) / n
	} else {
		next.AvgResponseTimeMs = input.ResponseTimeMs
	}

	learner.EloRating = upd.NewUserRating
	word.DifficultyRating = upd.NewWordRating
	word.TimesShown++
	if input.Correct {
		word.TimesCorrect++
	}

	if _, err := u.progress.Save(ctx, &next); err != nil {
		return nil, fmt.Errorf("save progress: %w", err)
	}
	if _, err := u.learners.Update(ctx, learner); err != nil {
		return nil, fmt.Errorf("update learner: %w", err)
	}
	if _, err := u.words.Update(ctx, word); err != nil {
		return nil, fmt.Errorf("update word: %w", err)
	}

	today := u.tracker.LocalDate(learner.Timezone, now)
	if err := u.activity.RecordAnswer(ctx, userID, today, input.Correct, input.ResponseTimeMs); err != nil {
		return nil, fmt.Errorf("record activity: %w", err)
	}

	completedToday, err := u.activity.WasActiveOn(ctx, userID, today)
	if err != nil {
		return nil, err
	}
	status := u.tracker.Status(*learner, completedToday, now)

	u.logger.Debugf("answer processed: user=%d word=%d correct=%t quality=%d interval=%d",
		userID, wordID, input.Correct, quality, next.IntervalDays)

	return &entity.AnswerResult{
		Correct:       input.Correct,
		Quality:       quality,
		EloChange:     upd.UserDelta,
		NewUserRating: upd.NewUserRating,
		NewWordRating: upd.NewWordRating,
		ExpectedScore: upd.ExpectedScore,
		NewEaseFactor: next.EaseFactor,
		NewInterval:   next.IntervalDays,
		NextReviewAt:  next.NextReviewAt,
		IsLearned:     next.IsLearned,
		StreakStatus:  status,
	}, nil
}

// GetNextWord picks the learner's next word: due reviews first, then
// unseen words at the requested level, otherwise an empty result.
func (u *learningUsecase) GetNextWord(ctx context.Context, userID int64, level entity.CefrLevel) (*entity.NextWordResult, error) {
	learner, err := u.learners.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	due, err := u.progress.FindDueForReview(ctx, userID, u.clock(), dueReviewBatchSize)
	if err != nil {
		return nil, err
	}
	if len(due) > 0 {
		candidates, err := u.resolveWords(ctx, due)
		if err != nil {
			return nil, err
		}
		if selected := u.matcher.SelectNextWord(learner.EloRating, candidates, u.cfg.MatchTolerance); selected != nil {
			prog, _ := lo.Find(due, func(p entity.UserProgress) bool { return p.WordID == selected.ID })
			return &entity.NextWordResult{
				Word:     selected,
				Progress: &prog,
				IsReview: true,
				DueCount: len(due),
			}, nil
		}
	}

	fresh, err := u.words.FindNewWordsForUser(ctx, userID, level, newWordBatchSize)
	if err != nil {
		return nil, err
	}
	if selected := u.matcher.SelectNextWord(learner.EloRating, fresh, u.cfg.MatchTolerance); selected != nil {
		return &entity.NextWordResult{Word: selected}, nil
	}

	return &entity.NextWordResult{}, nil
}

// GetQuizWords assembles a mixed pool: up to count/2 due reviews, the
// remainder filled with unseen words. The result may be shorter than
// count when both pools run dry.
func (u *learningUsecase) GetQuizWords(ctx context.Context, userID int64, level entity.CefrLevel, count int) ([]entity.Word, error) {
	if count <= 0 {
		return nil, nil
	}

	due, err := u.progress.FindDueForReview(ctx, userID, u.clock(), count/2)
	if err != nil {
		return nil, err
	}
	result, err := u.resolveWords(ctx, due)
	if err != nil {
		return nil, err
	}

	if len(result) < count {
		fresh, err := u.words.FindNewWordsForUser(ctx, userID, level, count-len(result))
		if err != nil {
			return nil, err
		}
		result = append(result, fresh...)
	}
	return result, nil
}

// GetReviewCount returns how many words are overdue right now.
func (u *learningUsecase) GetReviewCount(ctx context.Context, userID int64) (int, error) {
	return u.progress.CountOverdue(ctx, userID, u.clock())
}

// resolveWords looks up the catalog rows behind due progress entries,
// dropping any the catalog no longer knows.
func (u *learningUsecase) resolveWords(ctx context.Context, due []entity.UserProgress) ([]entity.Word, error) {
	words := make([]entity.Word, 0, len(due))
	for _, p := range due {
		word, err := u.words.GetByID(ctx, p.WordID)
		if err != nil {
			if errors.Is(err, entity.ErrWordNotFound) {
				continue
			}
			return nil, err
		}
		words = append(words, *word)
	}
	return words, nil
}
