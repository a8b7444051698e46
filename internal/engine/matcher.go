package engine

import (
	"math"
	"math/rand"

	"github.com/vokabelnetz/engine/internal/entity"
)

// DifficultyMatcher adapts the Elo rating system to balance learner
// skill against word difficulty. The random source is injected so word
// selection stays reproducible under test.
type DifficultyMatcher struct {
	cfg Config
	rng *rand.Rand
}

// NewDifficultyMatcher builds a matcher with the given tuning and
// random source.
func NewDifficultyMatcher(cfg Config, rng *rand.Rand) *DifficultyMatcher {
	return &DifficultyMatcher{cfg: cfg, rng: rng}
}

// ExpectedScore returns the probability of a correct answer given the
// two ratings. Equal ratings yield exactly 0.5.
func (m *DifficultyMatcher) ExpectedScore(userRating, wordRating int) float64 {
	return 1.0 / (1 + math.Pow(10, float64(wordRating-userRating)/400.0))
}

// UpdateRatings computes one symmetric rating exchange. The word delta
// is the exact negation of the user delta before clamping; both new
// ratings are clamped to the configured range independently.
func (m *DifficultyMatcher) UpdateRatings(userRating, wordRating int, correct bool) entity.RatingUpdate {
	expected := m.ExpectedScore(userRating, wordRating)
	actual := 0.0
	if correct {
		actual = 1.0
	}

	k := float64(m.cfg.KFactor)
	userDelta := int(math.Round(k * (actual - expected)))
	wordDelta := int(math.Round(k * (expected - actual)))

	return entity.RatingUpdate{
		OldUserRating: userRating,
		NewUserRating: clampInt(userRating+userDelta, m.cfg.MinRating, m.cfg.MaxRating),
		UserDelta:     userDelta,
		OldWordRating: wordRating,
		NewWordRating: clampInt(wordRating+wordDelta, m.cfg.MinRating, m.cfg.MaxRating),
		WordDelta:     wordDelta,
		ExpectedScore: expected,
	}
}

// SelectNextWord picks a word whose difficulty sits within tolerance
// of the learner's rating, weighting closer matches higher. With no
// candidate inside the tolerance band it falls back to the closest
// one, ties broken by input order. An empty candidate list yields nil.
func (m *DifficultyMatcher) SelectNextWord(userRating int, candidates []entity.Word, tolerance int) *entity.Word {
	if len(candidates) == 0 {
		return nil
	}

	matched := make([]entity.Word, 0, len(candidates))
	for _, w := range candidates {
		if absInt(w.DifficultyRating-userRating) <= tolerance {
			matched = append(matched, w)
		}
	}

	if len(matched) == 0 {
		closest := candidates[0]
		for _, w := range candidates[1:] {
			if absInt(w.DifficultyRating-userRating) < absInt(closest.DifficultyRating-userRating) {
				closest = w
			}
		}
		return &closest
	}

	return m.weightedRandomSelect(matched, userRating)
}

// weightedRandomSelect draws from matched candidates with weight
// 1/(1+|rating gap|), so closer matches win more often.
func (m *DifficultyMatcher) weightedRandomSelect(words []entity.Word, userRating int) *entity.Word {
	if len(words) == 1 {
		return &words[0]
	}

	weights := make([]float64, len(words))
	total := 0.0
	for i, w := range words {
		weights[i] = 1.0 / float64(1+absInt(w.DifficultyRating-userRating))
		total += weights[i]
	}

	draw := m.rng.Float64() * total
	cumulative := 0.0
	for i := range words {
		cumulative += weights[i]
		if draw <= cumulative {
			return &words[i]
		}
	}

	// Floating-point rounding exhausted the walk.
	return &words[len(words)-1]
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
