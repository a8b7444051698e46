package usecase

import (
	"context"
	"errors"
	"io"
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vokabelnetz/engine/internal/engine"
	"github.com/vokabelnetz/engine/internal/entity"
)

var testNow = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newTestLearning(store *fakeStore, seed int64) *learningUsecase {
	cfg := engine.DefaultConfig()
	uc := NewLearningUsecase(
		engine.NewReviewScheduler(cfg),
		engine.NewDifficultyMatcher(cfg, rand.New(rand.NewSource(seed))),
		engine.NewStreakTracker(cfg),
		cfg,
		store,
		store,
		fakeLearnerRepo{store},
		store,
		quietLogger(),
	).(*learningUsecase)
	uc.clock = func() time.Time { return testNow }
	return uc
}

func seedEvenMatch(store *fakeStore) {
	store.addWord(entity.Word{ID: 10, Text: "Haus", CefrLevel: entity.CefrA1, DifficultyRating: 1000, IsActive: true})
	store.addLearner(entity.Learner{ID: 1, EloRating: 1000, Timezone: "UTC", IsActive: true})
}

func TestMapToQuality(t *testing.T) {
	cases := []struct {
		name  string
		input AnswerInput
		want  int
	}{
		{"blackout", AnswerInput{Correct: false, Recognized: false}, 0},
		{"recognized", AnswerInput{Correct: false, Recognized: true}, 1},
		{"hinted", AnswerInput{Correct: true, UsedHint: true, ResponseTimeMs: 100}, 2},
		{"fast", AnswerInput{Correct: true, ResponseTimeMs: 1999}, 5},
		{"medium", AnswerInput{Correct: true, ResponseTimeMs: 4999}, 4},
		{"slow", AnswerInput{Correct: true, ResponseTimeMs: 9000}, 3},
	}
	for _, c := range cases {
		if got := MapToQuality(c.input); got != c.want {
			t.Fatalf("%s: quality = %d, want %d", c.name, got, c.want)
		}
	}
}

func TestProcessAnswer_InitializesUnseenPair(t *testing.T) {
	store := newFakeStore()
	seedEvenMatch(store)
	uc := newTestLearning(store, 1)

	result, err := uc.ProcessAnswer(context.Background(), 1, 10, AnswerInput{Correct: true, ResponseTimeMs: 1500})
	if err != nil {
		t.Fatal(err)
	}

	if !result.Correct || result.Quality != 5 {
		t.Fatalf("correct/quality = %t/%d, want true/5", result.Correct, result.Quality)
	}
	if result.EloChange != 16 || result.NewUserRating != 1016 || result.NewWordRating != 984 {
		t.Fatalf("elo fields wrong: %+v", result)
	}
	if math.Abs(result.ExpectedScore-0.5) > 1e-9 {
		t.Fatalf("expected score = %v, want 0.5", result.ExpectedScore)
	}
	if math.Abs(result.NewEaseFactor-2.6) > 1e-9 || result.NewInterval != 1 || result.IsLearned {
		t.Fatalf("scheduling fields wrong: %+v", result)
	}
	if !result.StreakStatus.CompletedToday {
		t.Fatal("the answer itself must complete the day")
	}

	prog, err := store.FindByUserAndWord(context.Background(), 1, 10)
	if err != nil || prog == nil {
		t.Fatalf("progress not persisted: %v", err)
	}
	if prog.Repetition != 1 || prog.TimesCorrect != 1 || prog.TimesIncorrect != 0 {
		t.Fatalf("persisted progress wrong: %+v", prog)
	}
	if prog.AvgResponseTimeMs != 1500 || prog.LastResponseTimeMs != 1500 {
		t.Fatalf("response times wrong: %+v", prog)
	}

	word, _ := store.GetByID(context.Background(), 10)
	if word.DifficultyRating != 984 || word.TimesShown != 1 || word.TimesCorrect != 1 {
		t.Fatalf("word stats wrong: %+v", word)
	}
	learner, _ := store.GetLearner(context.Background(), 1)
	if learner.EloRating != 1016 {
		t.Fatalf("learner rating = %d, want 1016", learner.EloRating)
	}
}

func TestProcessAnswer_RunningAverageResponseTime(t *testing.T) {
	store := newFakeStore()
	seedEvenMatch(store)
	uc := newTestLearning(store, 1)
	ctx := context.Background()

	times := []int{1000, 2000, 4000}
	for _, ms := range times {
		if _, err := uc.ProcessAnswer(ctx, 1, 10, AnswerInput{Correct: true, ResponseTimeMs: ms}); err != nil {
			t.Fatal(err)
		}
	}

	prog, _ := store.FindByUserAndWord(ctx, 1, 10)
	// (1000*1+2000)/2 = 1500, then (1500*2+4000)/3 = 2333.
	if prog.AvgResponseTimeMs != 2333 {
		t.Fatalf("avg = %d, want 2333", prog.AvgResponseTimeMs)
	}
	if prog.LastResponseTimeMs != 4000 {
		t.Fatalf("last = %d, want 4000", prog.LastResponseTimeMs)
	}
}

func TestProcessAnswer_IncorrectResetsChain(t *testing.T) {
	store := newFakeStore()
	seedEvenMatch(store)
	store.addProgress(entity.UserProgress{
		UserID: 1, WordID: 10, EaseFactor: 2.6, IntervalDays: 16, Repetition: 3,
		NextReviewAt: testNow, TimesCorrect: 3,
	})
	uc := newTestLearning(store, 1)

	result, err := uc.ProcessAnswer(context.Background(), 1, 10, AnswerInput{Correct: false, Recognized: true})
	if err != nil {
		t.Fatal(err)
	}

	if result.Quality != 1 {
		t.Fatalf("quality = %d, want 1", result.Quality)
	}
	if result.EloChange != -16 {
		t.Fatalf("elo change = %d, want -16", result.EloChange)
	}
	if result.NewInterval != 1 {
		t.Fatalf("interval = %d, want 1", result.NewInterval)
	}

	prog, _ := store.FindByUserAndWord(context.Background(), 1, 10)
	if prog.Repetition != 0 || prog.TimesIncorrect != 1 || prog.TimesCorrect != 3 {
		t.Fatalf("persisted progress wrong: %+v", prog)
	}
}

func TestProcessAnswer_UnknownWord(t *testing.T) {
	store := newFakeStore()
	store.addLearner(entity.Learner{ID: 1, EloRating: 1000, Timezone: "UTC", IsActive: true})
	uc := newTestLearning(store, 1)

	_, err := uc.ProcessAnswer(context.Background(), 1, 99, AnswerInput{Correct: true})
	if !errors.Is(err, entity.ErrWordNotFound) {
		t.Fatalf("err = %v, want ErrWordNotFound", err)
	}
}

func TestGetNextWord_PrefersDueReviews(t *testing.T) {
	store := newFakeStore()
	seedEvenMatch(store)
	store.addWord(entity.Word{ID: 20, Text: "Baum", CefrLevel: entity.CefrA1, DifficultyRating: 1010, IsActive: true})
	store.addProgress(entity.UserProgress{
		UserID: 1, WordID: 10, EaseFactor: 2.5, IntervalDays: 1, Repetition: 1,
		NextReviewAt: testNow.Add(-time.Hour),
	})
	uc := newTestLearning(store, 1)

	result, err := uc.GetNextWord(context.Background(), 1, entity.CefrA1)
	if err != nil {
		t.Fatal(err)
	}
	if !result.IsReview || result.DueCount != 1 {
		t.Fatalf("isReview/dueCount = %t/%d, want true/1", result.IsReview, result.DueCount)
	}
	if result.Word == nil || result.Word.ID != 10 {
		t.Fatalf("word = %+v, want due word 10", result.Word)
	}
	if result.Progress == nil || result.Progress.WordID != 10 {
		t.Fatalf("progress = %+v, want pair for word 10", result.Progress)
	}
}

func TestGetNextWord_FallsBackToNewWords(t *testing.T) {
	store := newFakeStore()
	seedEvenMatch(store)
	uc := newTestLearning(store, 1)

	result, err := uc.GetNextWord(context.Background(), 1, entity.CefrA1)
	if err != nil {
		t.Fatal(err)
	}
	if result.IsReview || result.DueCount != 0 {
		t.Fatalf("isReview/dueCount = %t/%d, want false/0", result.IsReview, result.DueCount)
	}
	if result.Word == nil || result.Word.ID != 10 {
		t.Fatalf("word = %+v, want new word 10", result.Word)
	}
	if result.Progress != nil {
		t.Fatalf("new words carry no progress, got %+v", result.Progress)
	}
}

func TestGetNextWord_EmptyResultWhenNothingAvailable(t *testing.T) {
	store := newFakeStore()
	store.addLearner(entity.Learner{ID: 1, EloRating: 1000, Timezone: "UTC", IsActive: true})
	uc := newTestLearning(store, 1)

	result, err := uc.GetNextWord(context.Background(), 1, entity.CefrC2)
	if err != nil {
		t.Fatal(err)
	}
	if result.Word != nil || result.IsReview || result.DueCount != 0 {
		t.Fatalf("want empty result, got %+v", result)
	}
}

func TestGetQuizWords_MixesDueAndNew(t *testing.T) {
	store := newFakeStore()
	store.addLearner(entity.Learner{ID: 1, EloRating: 1000, Timezone: "UTC", IsActive: true})
	for i := int64(1); i <= 3; i++ {
		store.addWord(entity.Word{ID: i, CefrLevel: entity.CefrA1, DifficultyRating: 1000 + int(i), IsActive: true})
		store.addProgress(entity.UserProgress{
			UserID: 1, WordID: i, EaseFactor: 2.5, IntervalDays: 1,
			NextReviewAt: testNow.Add(-time.Duration(i) * time.Hour),
		})
	}
	for i := int64(4); i <= 8; i++ {
		store.addWord(entity.Word{ID: i, CefrLevel: entity.CefrA1, DifficultyRating: 1000 + int(i), IsActive: true})
	}
	uc := newTestLearning(store, 1)

	words, err := uc.GetQuizWords(context.Background(), 1, entity.CefrA1, 4)
	if err != nil {
		t.Fatal(err)
	}
	if len(words) != 4 {
		t.Fatalf("got %d words, want 4", len(words))
	}
	attempted := 0
	for _, w := range words {
		if w.ID <= 3 {
			attempted++
		}
	}
	if attempted != 2 { // count/2 slots go to due reviews
		t.Fatalf("got %d due words, want 2", attempted)
	}
}

func TestGetQuizWords_ShortWhenPoolsRunDry(t *testing.T) {
	store := newFakeStore()
	store.addLearner(entity.Learner{ID: 1, EloRating: 1000, Timezone: "UTC", IsActive: true})
	store.addWord(entity.Word{ID: 1, CefrLevel: entity.CefrA1, DifficultyRating: 1000, IsActive: true})
	store.addProgress(entity.UserProgress{UserID: 1, WordID: 1, NextReviewAt: testNow.Add(-time.Hour)})
	store.addWord(entity.Word{ID: 2, CefrLevel: entity.CefrA1, DifficultyRating: 1000, IsActive: true})
	uc := newTestLearning(store, 1)

	words, err := uc.GetQuizWords(context.Background(), 1, entity.CefrA1, 6)
	if err != nil {
		t.Fatal(err)
	}
	if len(words) != 2 {
		t.Fatalf("got %d words, want 2 (no rebalancing)", len(words))
	}
}

func TestGetReviewCount(t *testing.T) {
	store := newFakeStore()
	seedEvenMatch(store)
	store.addProgress(entity.UserProgress{UserID: 1, WordID: 10, NextReviewAt: testNow.Add(-time.Minute)})
	uc := newTestLearning(store, 1)

	count, err := uc.GetReviewCount(context.Background(), 1)
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Fatalf("count = %d, want 1", count)
	}
}
