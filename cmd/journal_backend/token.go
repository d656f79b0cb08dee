package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/SscSPs/erp_journal_engine/internal/middleware"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a bearer token for local testing",
	Long: `Issue a signed bearer token carrying a user and company. Tokens are
normally issued by the identity service; this command is refused when
IS_PRODUCTION is set.`,
	RunE: runToken,
}

func init() {
	rootCmd.AddCommand(tokenCmd)

	tokenCmd.Flags().String("user", "", "User ID (sub claim)")
	tokenCmd.Flags().String("company", "", "Company ID")
	tokenCmd.Flags().Duration("ttl", 0, "Token lifetime (default JWT_EXPIRY_DURATION)")
	_ = tokenCmd.MarkFlagRequired("user")
	_ = tokenCmd.MarkFlagRequired("company")
}

func runToken(cmd *cobra.Command, args []string) error {
	if cfg.IsProduction {
		return errors.New("token issuing is disabled in production")
	}

	userID, _ := cmd.Flags().GetString("user")
	companyID, _ := cmd.Flags().GetString("company")
	ttl, _ := cmd.Flags().GetDuration("ttl")
	if ttl <= 0 {
		ttl = cfg.JWTExpiryDuration
	}

	token, expiresAt, err := middleware.IssueToken(cfg.JWTSecret, userID, companyID, ttl)
	if err != nil {
		return fmt.Errorf("failed to sign token: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), token)
	fmt.Fprintf(cmd.ErrOrStderr(), "expires at %s\n", expiresAt.Format(time.RFC3339))
	return nil
}
