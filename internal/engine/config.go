package engine

// Config holds the tuning constants for the SM-2 scheduler, the Elo
// matcher and the streak tracker. Values outside these bounds are
// clamped by the engine, never rejected.
type Config struct {
	// SM-2 scheduling.
	MinEaseFactor        float64
	MaxEaseFactor        float64
	DefaultEaseFactor    float64
	MaxIntervalDays      int
	LearnedThresholdDays int

	// Elo rating.
	KFactor        int
	MinRating      int
	MaxRating      int
	DefaultRating  int
	MatchTolerance int

	// Streak continuity.
	FreezeMilestoneDays int
	MaxFreezes          int
	DefaultTimezone     string
}

// DefaultConfig mirrors the production defaults.
func DefaultConfig() Config {
	return Config{
		MinEaseFactor:        1.3,
		MaxEaseFactor:        5.0,
		DefaultEaseFactor:    2.5,
		MaxIntervalDays:      365,
		LearnedThresholdDays: 21,
		KFactor:              32,
		MinRating:            100,
		MaxRating:            3000,
		DefaultRating:        1000,
		MatchTolerance:       200,
		FreezeMilestoneDays:  7,
		MaxFreezes:           3,
		DefaultTimezone:      "Europe/Istanbul",
	}
}

func clampInt(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

func clampFloat(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
