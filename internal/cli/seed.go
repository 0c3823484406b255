package cli

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"edquiz-service/internal/config"
	"edquiz-service/internal/infra/postgres"
	"edquiz-service/internal/questionbank"
)

// NewSeedCmd loads the built-in question bank into Postgres.
func NewSeedCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Seed the question bank into Postgres",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			if cfg.Postgres.URL == "" {
				return fmt.Errorf("postgres url not configured")
			}
			if err := runMigrationsWithConfig(cmd.Context(), cfg); err != nil {
				return err
			}

			db := openBunDB(cfg.Postgres.URL)
			defer db.Close()

			bank := questionbank.All()
			if err := postgres.SeedQuestions(cmd.Context(), db, bank); err != nil {
				return err
			}
			log.Printf("seeded %d subjects", len(bank))
			return nil
		},
	}
}
