/*
Copyright © 2025 Ambor <saltbo@foxmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"

	"github.com/vokabelnetz/engine/internal/infrastructure/config"
	"github.com/vokabelnetz/engine/internal/infrastructure/database"
)

// dbInitCmd creates the database schema.
var dbInitCmd = &cobra.Command{
	Use:   "db-init",
	Short: "Create the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigrations()
	},
}

func init() {
	rootCmd.AddCommand(dbInitCmd)
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		elo_rating INTEGER NOT NULL DEFAULT 1000,
		current_streak INTEGER NOT NULL DEFAULT 0,
		longest_streak INTEGER NOT NULL DEFAULT 0,
		streak_freezes_available INTEGER NOT NULL DEFAULT 0,
		freeze_used_on DATE,
		timezone TEXT NOT NULL DEFAULT '',
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS words (
		id BIGSERIAL PRIMARY KEY,
		text TEXT NOT NULL,
		cefr_level TEXT NOT NULL,
		difficulty_rating INTEGER NOT NULL DEFAULT 1000,
		times_shown INTEGER NOT NULL DEFAULT 0,
		times_correct INTEGER NOT NULL DEFAULT 0,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_words_level_rating ON words (cefr_level, difficulty_rating)`,
	`CREATE TABLE IF NOT EXISTS user_word_progress (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users(id),
		word_id BIGINT NOT NULL REFERENCES words(id),
		ease_factor DOUBLE PRECISION NOT NULL DEFAULT 2.5,
		interval_days INTEGER NOT NULL DEFAULT 0,
		repetition INTEGER NOT NULL DEFAULT 0,
		last_quality INTEGER,
		next_review_at TIMESTAMPTZ NOT NULL,
		last_reviewed_at TIMESTAMPTZ,
		times_correct INTEGER NOT NULL DEFAULT 0,
		times_incorrect INTEGER NOT NULL DEFAULT 0,
		last_response_time_ms INTEGER NOT NULL DEFAULT 0,
		avg_response_time_ms INTEGER NOT NULL DEFAULT 0,
		is_learned BOOLEAN NOT NULL DEFAULT FALSE,
		learned_at TIMESTAMPTZ,
		is_favorite BOOLEAN NOT NULL DEFAULT FALSE,
		is_difficult BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		UNIQUE (user_id, word_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_progress_due ON user_word_progress (user_id, next_review_at)`,
	`CREATE TABLE IF NOT EXISTS streak_history (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users(id),
		streak_date DATE NOT NULL,
		streak_count INTEGER NOT NULL,
		was_active BOOLEAN NOT NULL,
		freeze_used BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_streak_history_user ON streak_history (user_id, streak_date)`,
	`CREATE TABLE IF NOT EXISTS daily_stats (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users(id),
		stat_date DATE NOT NULL,
		words_reviewed INTEGER NOT NULL DEFAULT 0,
		correct_answers INTEGER NOT NULL DEFAULT 0,
		incorrect_answers INTEGER NOT NULL DEFAULT 0,
		total_time_ms BIGINT NOT NULL DEFAULT 0,
		UNIQUE (user_id, stat_date)
	)`,
}

func runMigrations() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	pool, cleanup, err := database.NewConnection(cfg)
	if err != nil {
		return fmt.Errorf("db connect: %w", err)
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, stmt := range migrations {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	log.Println("database schema ready")
	return nil
}
