package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/SscSPs/erp_journal_engine/internal/core/services"
	"github.com/SscSPs/erp_journal_engine/internal/repositories/database/pgsql"
	"github.com/SscSPs/erp_journal_engine/pkg/database"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Re-validate stored journals against their lines",
	Long: `Recompute the trial balance of each company and list journals whose
persisted lines contradict their header. Exits non-zero when any company
has problems.`,
	Example: `  journal_backend verify --company 6f1c... --company 8a20...`,
	RunE:    runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)

	verifyCmd.Flags().StringSlice("company", nil, "Company ID to verify (repeatable)")
	_ = verifyCmd.MarkFlagRequired("company")
}

func runVerify(cmd *cobra.Command, args []string) error {
	companies, _ := cmd.Flags().GetStringSlice("company")
	ctx := cmd.Context()

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, true)
	if err != nil {
		return fmt.Errorf("failed to initialize database pool: %w", err)
	}
	defer database.ClosePgxPool(dbPool)

	lineService := services.NewJournalLineService(pgsql.NewRepositoryProvider(dbPool).JournalLineRepo)

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")

	unhealthy := 0
	for _, companyID := range companies {
		report, err := lineService.VerifyIntegrity(ctx, companyID)
		if err != nil {
			return fmt.Errorf("verify company %s: %w", companyID, err)
		}
		if !report.Healthy() {
			unhealthy++
		}
		logger.Info("Integrity verified",
			slog.String("company_id", companyID),
			slog.Bool("healthy", report.Healthy()),
			slog.Int("issues", len(report.Issues)))

		if err := encoder.Encode(map[string]any{"company_id": companyID, "report": report}); err != nil {
			return err
		}
	}

	if unhealthy > 0 {
		return fmt.Errorf("%d of %d companies have integrity problems", unhealthy, len(companies))
	}
	return nil
}
