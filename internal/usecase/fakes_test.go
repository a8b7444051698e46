package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/vokabelnetz/engine/internal/entity"
)

// fakeStore is an in-memory backing store implementing every
// collaborator repository, so cross-query behaviour (new words exclude
// attempted pairs, activity feeds the streak queries) stays honest.
type fakeStore struct {
	mu          sync.RWMutex
	words       map[int64]*entity.Word
	learners    map[int64]*entity.Learner
	progress    map[string]*entity.UserProgress
	progressSeq int64
	history     []entity.StreakHistoryRecord
	activity    map[string]*entity.DailyActivity

	learnerUpdateErr map[int64]error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		words:            make(map[int64]*entity.Word),
		learners:         make(map[int64]*entity.Learner),
		progress:         make(map[string]*entity.UserProgress),
		activity:         make(map[string]*entity.DailyActivity),
		learnerUpdateErr: make(map[int64]error),
	}
}

func pairKey(userID, wordID int64) string { return fmt.Sprintf("%d:%d", userID, wordID) }

func dayKey(userID int64, day time.Time) string {
	return fmt.Sprintf("%d:%s", userID, day.Format("2006-01-02"))
}

func (s *fakeStore) addWord(w entity.Word) {
	s.mu.Lock()
	defer s.mu.Unlock()
	copy := w
	s.words[w.ID] = &copy
}

func (s *fakeStore) addLearner(l entity.Learner) {
	s.mu.Lock()
	defer s.mu.Unlock()
	copy := l
	s.learners[l.ID] = &copy
}

func (s *fakeStore) addProgress(p entity.UserProgress) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.progressSeq++
	copy := p
	copy.ID = s.progressSeq
	s.progress[pairKey(p.UserID, p.WordID)] = &copy
}

// WordRepository

func (s *fakeStore) GetByID(ctx context.Context, id int64) (*entity.Word, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	word, ok := s.words[id]
	if !ok {
		return nil, entity.ErrWordNotFound
	}
	copy := *word
	return &copy, nil
}

func (s *fakeStore) FindNewWordsForUser(ctx context.Context, userID int64, level entity.CefrLevel, limit int) ([]entity.Word, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []entity.Word
	for _, w := range s.words {
		if !w.IsActive || w.CefrLevel != level {
			continue
		}
		if _, attempted := s.progress[pairKey(userID, w.ID)]; attempted {
			continue
		}
		out = append(out, *w)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DifficultyRating == out[j].DifficultyRating {
			return out[i].ID < out[j].ID
		}
		return out[i].DifficultyRating < out[j].DifficultyRating
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *fakeStore) Update(ctx context.Context, word *entity.Word) (*entity.Word, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.words[word.ID]; !ok {
		return nil, entity.ErrWordNotFound
	}
	copy := *word
	s.words[word.ID] = &copy
	out := copy
	return &out, nil
}

// ProgressRepository

func (s *fakeStore) FindByUserAndWord(ctx context.Context, userID, wordID int64) (*entity.UserProgress, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.progress[pairKey(userID, wordID)]
	if !ok {
		return nil, nil
	}
	copy := *p
	return &copy, nil
}

func (s *fakeStore) FindDueForReview(ctx context.Context, userID int64, now time.Time, limit int) ([]entity.UserProgress, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []entity.UserProgress
	for _, p := range s.progress {
		if p.UserID == userID && !p.NextReviewAt.After(now) {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].NextReviewAt.Before(out[j].NextReviewAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *fakeStore) CountOverdue(ctx context.Context, userID int64, now time.Time) (int, error) {
	due, err := s.FindDueForReview(ctx, userID, now, 0)
	if err != nil {
		return 0, err
	}
	return len(due), nil
}

func (s *fakeStore) Save(ctx context.Context, progress *entity.UserProgress) (*entity.UserProgress, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	key := pairKey(progress.UserID, progress.WordID)
	copy := *progress
	if existing, ok := s.progress[key]; ok {
		copy.ID = existing.ID
	} else {
		s.progressSeq++
		copy.ID = s.progressSeq
	}
	s.progress[key] = &copy
	out := copy
	return &out, nil
}

// fakeLearnerRepo exposes the store as a LearnerRepository; a wrapper
// is needed because GetByID/Update collide with the word methods.
type fakeLearnerRepo struct{ store *fakeStore }

func (r fakeLearnerRepo) GetByID(ctx context.Context, id int64) (*entity.Learner, error) {
	return r.store.GetLearner(ctx, id)
}

func (r fakeLearnerRepo) Update(ctx context.Context, learner *entity.Learner) (*entity.Learner, error) {
	return r.store.UpdateLearner(ctx, learner)
}

func (r fakeLearnerRepo) ListActive(ctx context.Context) ([]entity.Learner, error) {
	return r.store.ListActive(ctx)
}

func (s *fakeStore) GetLearner(ctx context.Context, id int64) (*entity.Learner, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.learners[id]
	if !ok {
		return nil, entity.ErrLearnerNotFound
	}
	copy := *l
	return &copy, nil
}

func (s *fakeStore) UpdateLearner(ctx context.Context, learner *entity.Learner) (*entity.Learner, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.learnerUpdateErr[learner.ID]; err != nil {
		return nil, err
	}
	if _, ok := s.learners[learner.ID]; !ok {
		return nil, entity.ErrLearnerNotFound
	}
	copy := *learner
	s.learners[learner.ID] = &copy
	out := copy
	return &out, nil
}

func (s *fakeStore) ListActive(ctx context.Context) ([]entity.Learner, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []entity.Learner
	for _, l := range s.learners {
		if l.IsActive {
			out = append(out, *l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// StreakHistoryRepository

func (s *fakeStore) Append(ctx context.Context, record *entity.StreakHistoryRecord) (*entity.StreakHistoryRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	copy := *record
	copy.ID = int64(len(s.history) + 1)
	s.history = append(s.history, copy)
	out := copy
	return &out, nil
}

func (s *fakeStore) ListByUser(ctx context.Context, userID int64, limit int) ([]entity.StreakHistoryRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []entity.StreakHistoryRecord
	for i := len(s.history) - 1; i >= 0; i-- {
		if s.history[i].UserID == userID {
			out = append(out, s.history[i])
			if limit > 0 && len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

// ActivityRepository

func (s *fakeStore) RecordAnswer(ctx context.Context, userID int64, day time.Time, correct bool, responseTimeMs int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	key := dayKey(userID, day)
	a, ok := s.activity[key]
	if !ok {
		a = &entity.DailyActivity{UserID: userID, Day: day}
		s.activity[key] = a
	}
	a.WordsReviewed++
	if correct {
		a.CorrectAnswers++
	} else {
		a.IncorrectAnswers++
	}
	a.TotalTimeMs += int64(responseTimeMs)
	return nil
}

func (s *fakeStore) WasActiveOn(ctx context.Context, userID int64, day time.Time) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.activity[dayKey(userID, day)]
	return ok && a.Active(), nil
}

func (s *fakeStore) GetDay(ctx context.Context, userID int64, day time.Time) (*entity.DailyActivity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.activity[dayKey(userID, day)]
	if !ok {
		return nil, nil
	}
	copy := *a
	return &copy, nil
}
