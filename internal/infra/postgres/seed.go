package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/uptrace/bun"

	"edquiz-service/internal/domain"
)

// SeedQuestions upserts one row per subject holding the full question list
// as JSONB. Used by the seed command to bootstrap a fresh database.
func SeedQuestions(ctx context.Context, db *bun.DB, bank map[domain.Subject][]domain.Question) error {
	for subject, questions := range bank {
		data, err := json.Marshal(questions)
		if err != nil {
			return fmt.Errorf("marshal %s questions: %w", subject, err)
		}
		_, err = db.NewRaw(
			`INSERT INTO questions (subject, data, updated_at) VALUES (?, ?, now())
			 ON CONFLICT (subject) DO UPDATE SET data = EXCLUDED.data, updated_at = now()`,
			string(subject), string(data),
		).Exec(ctx)
		if err != nil {
			return fmt.Errorf("seed %s questions: %w", subject, err)
		}
	}
	return nil
}
