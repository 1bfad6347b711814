package cli

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/turtacn/gdmrisk/internal/application/dto"
	"github.com/turtacn/gdmrisk/internal/domain/repository"
	"github.com/turtacn/gdmrisk/internal/infrastructure/persistence"
	"github.com/turtacn/gdmrisk/pkg/errors"
)

var auditLimit int

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Inspect the assessment audit history",
	Long:  "Inspect stored assessment outcomes. Requires database.enabled; only outcomes and model versions are stored, never patient values.",
}

var auditRecentCmd = &cobra.Command{
	Use:   "recent",
	Short: "List the most recent assessment outcomes",
	RunE: withRepository(func(ctx context.Context, cmd *cobra.Command, _ []string, repo repository.AssessmentRepository) error {
		records, err := repo.ListRecent(ctx, auditLimit)
		if err != nil {
			return err
		}
		out := make([]dto.AuditRecordDTO, len(records))
		for i, r := range records {
			out[i] = dto.NewAuditRecordDTO(r)
		}
		return printOutput(cmd.OutOrStdout(), out)
	}),
}

var auditShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one assessment outcome",
	Args:  cobra.ExactArgs(1),
	RunE: withRepository(func(ctx context.Context, cmd *cobra.Command, args []string, repo repository.AssessmentRepository) error {
		id, err := uuid.Parse(args[0])
		if err != nil {
			return errors.ErrInvalidRequest(fmt.Sprintf("invalid assessment id %q", args[0]))
		}
		record, err := repo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if record == nil {
			return errors.ErrNotFound("assessment")
		}
		return printOutput(cmd.OutOrStdout(), dto.NewAuditRecordDTO(record))
	}),
}

var auditStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Count stored assessments per risk tier",
	RunE: withRepository(func(ctx context.Context, cmd *cobra.Command, _ []string, repo repository.AssessmentRepository) error {
		counts, err := repo.CountByTier(ctx)
		if err != nil {
			return err
		}
		out := make(map[string]int64, len(counts))
		for tier, n := range counts {
			out[string(tier)] = n
		}
		return printOutput(cmd.OutOrStdout(), out)
	}),
}

type repoRunFunc func(ctx context.Context, cmd *cobra.Command, args []string, repo repository.AssessmentRepository) error

func withRepository(fn repoRunFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		log := cliLogger()
		cfg, err := loadConfig(log)
		if err != nil {
			return err
		}
		if !cfg.Database.Enabled {
			return errors.ErrServiceUnavailable("audit history (database.enabled is false)")
		}
		db, err := persistence.NewDBConnection(ctx, &cfg.Database, log)
		if err != nil {
			return err
		}
		defer persistence.Close(db)
		return fn(ctx, cmd, args, persistence.NewAssessmentRepository(db, log))
	}
}

func init() {
	auditRecentCmd.Flags().IntVarP(&auditLimit, "limit", "n", 20, "number of records to list")
	auditCmd.AddCommand(auditRecentCmd, auditShowCmd, auditStatsCmd)
	rootCmd.AddCommand(auditCmd)
}
