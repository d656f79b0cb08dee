package pgsql

import (
	"context"
	"strings"

	"github.com/SscSPs/erp_journal_engine/internal/apperrors"
	"github.com/SscSPs/erp_journal_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/erp_journal_engine/internal/core/ports/repositories"
	"github.com/SscSPs/erp_journal_engine/internal/models"
	"github.com/SscSPs/erp_journal_engine/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const lineDetailColumns = journalLineColumns + `,
	h.journal_number, h.journal_date, h.journal_type, h.status AS journal_status,
	h.period, h.is_reversed, h.branch_id`

const lineDetailFrom = `
	FROM journal_lines l
	JOIN journal_headers h ON h.id = l.journal_header_id
	LEFT JOIN chart_of_accounts a ON a.id = l.account_id`

// Accounting views read oldest first, unlike the header list.
const lineChronologicalOrder = ` ORDER BY h.journal_date ASC, h.journal_number ASC, l.line_number ASC`

type PgxJournalLineRepository struct {
	BaseRepository
}

func newPgxJournalLineRepository(db DBTX) *PgxJournalLineRepository {
	return &PgxJournalLineRepository{BaseRepository: BaseRepository{DB: db}}
}

var _ portsrepo.JournalLineRepositoryFacade = (*PgxJournalLineRepository)(nil)

// ListLinesByJournal returns the lines of one live journal in line order.
func (r *PgxJournalLineRepository) ListLinesByJournal(ctx context.Context, companyID, journalID string) ([]domain.LineWithDetails, error) {
	query := `SELECT ` + lineDetailColumns + lineDetailFrom + `
		WHERE h.company_id = $1 AND l.journal_header_id = $2 AND h.deleted_at IS NULL
		ORDER BY l.line_number`

	lines, err := r.queryLines(ctx, query, companyID, journalID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		// Distinguish an unknown journal from one without lines
		state, err := loadJournalState(ctx, r.DB, companyID, journalID)
		if err != nil {
			return nil, err
		}
		if state.deleted {
			return nil, apperrors.NewNotFoundError("journal", journalID)
		}
	}
	return lines, nil
}

// ListLines returns one chronological page of lines matching filter.
func (r *PgxJournalLineRepository) ListLines(ctx context.Context, companyID string, filter domain.LineFilter, page domain.Page) ([]domain.LineWithDetails, int, error) {
	args := &queryArgs{}
	where := lineFilterWhere(args, companyID, filter, nil)

	var total int
	if err := r.DB.QueryRow(ctx, `SELECT COUNT(*)`+lineDetailFrom+where, args.values...).Scan(&total); err != nil {
		return nil, 0, mapDBError("failed to count journal lines for company "+companyID, err)
	}

	query := `SELECT ` + lineDetailColumns + lineDetailFrom + where + lineChronologicalOrder +
		` LIMIT ` + args.add(page.Limit) + ` OFFSET ` + args.add(page.Offset())

	lines, err := r.queryLines(ctx, query, args.values...)
	if err != nil {
		return nil, 0, err
	}
	return lines, total, nil
}

// ListLinesByAccount is ListLines scoped to accountID.
func (r *PgxJournalLineRepository) ListLinesByAccount(ctx context.Context, companyID, accountID string, filter domain.LineFilter, page domain.Page) ([]domain.LineWithDetails, int, error) {
	filter.AccountID = &accountID
	return r.ListLines(ctx, companyID, filter, page)
}

// GetAccountBalance sums an account's lines. Only POSTED journals count unless
// the filter names statuses explicitly.
func (r *PgxJournalLineRepository) GetAccountBalance(ctx context.Context, companyID, accountID string, filter domain.LineFilter) (domain.AccountBalance, error) {
	filter.AccountID = &accountID
	args := &queryArgs{}
	where := lineFilterWhere(args, companyID, filter, []domain.JournalStatus{domain.StatusPosted})

	balance := domain.AccountBalance{AccountID: accountID}
	err := r.DB.QueryRow(ctx, `
		SELECT COALESCE(SUM(l.debit_amount), 0), COALESCE(SUM(l.credit_amount), 0)`+lineDetailFrom+where,
		args.values...,
	).Scan(&balance.TotalDebit, &balance.TotalCredit)
	if err != nil {
		return balance, mapDBError("failed to compute balance of account "+accountID, err)
	}
	balance.Balance = balance.TotalDebit.Sub(balance.TotalCredit)
	return balance, nil
}

// GetAccountSummaries aggregates every account with matching activity, POSTED-only by default.
func (r *PgxJournalLineRepository) GetAccountSummaries(ctx context.Context, companyID string, filter domain.LineFilter) ([]domain.AccountSummary, error) {
	args := &queryArgs{}
	where := lineFilterWhere(args, companyID, filter, []domain.JournalStatus{domain.StatusPosted})

	rows, err := r.DB.Query(ctx, `
		SELECT l.account_id, COALESCE(a.code, ''), COALESCE(a.name, ''), COALESCE(a.account_type, ''),
		       COALESCE(SUM(l.debit_amount), 0), COALESCE(SUM(l.credit_amount), 0)`+lineDetailFrom+where+`
		GROUP BY l.account_id, a.code, a.name, a.account_type
		ORDER BY a.code, l.account_id`,
		args.values...,
	)
	if err != nil {
		return nil, mapDBError("failed to summarise accounts for company "+companyID, err)
	}

	summaries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.AccountSummary, error) {
		var s domain.AccountSummary
		var accountType string
		if err := row.Scan(&s.AccountID, &s.AccountCode, &s.AccountName, &accountType, &s.TotalDebit, &s.TotalCredit); err != nil {
			return s, err
		}
		s.AccountType = domain.AccountType(accountType)
		s.Balance = s.TotalDebit.Sub(s.TotalCredit)
		return s, nil
	})
	if err != nil {
		return nil, mapDBError("failed to scan account summaries", err)
	}
	return summaries, nil
}

// FindIntegrityIssues re-aggregates persisted lines per live header and returns
// headers with fewer than two lines, unbalanced lines, or totals that drifted.
func (r *PgxJournalLineRepository) FindIntegrityIssues(ctx context.Context, companyID string) ([]domain.IntegrityIssue, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT h.id, h.journal_number, h.status, h.total_debit, h.total_credit,
		       COALESCE(SUM(l.debit_amount), 0) AS line_debit,
		       COALESCE(SUM(l.credit_amount), 0) AS line_credit,
		       COUNT(l.id) AS line_count
		FROM journal_headers h
		LEFT JOIN journal_lines l ON l.journal_header_id = h.id
		WHERE h.company_id = $1 AND h.deleted_at IS NULL
		GROUP BY h.id, h.journal_number, h.status, h.total_debit, h.total_credit
		HAVING COUNT(l.id) < 2
		    OR ABS(COALESCE(SUM(l.debit_amount), 0) - COALESCE(SUM(l.credit_amount), 0)) >= $2
		    OR COALESCE(SUM(l.debit_amount), 0) <> h.total_debit
		    OR COALESCE(SUM(l.credit_amount), 0) <> h.total_credit
		ORDER BY h.journal_number`,
		companyID, decimal.NewFromFloat(0.01),
	)
	if err != nil {
		return nil, mapDBError("failed to check journal integrity for company "+companyID, err)
	}

	issues, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.IntegrityIssue, error) {
		var issue domain.IntegrityIssue
		var status string
		err := row.Scan(&issue.JournalID, &issue.JournalNumber, &status,
			&issue.HeaderDebit, &issue.HeaderCredit, &issue.LineDebit, &issue.LineCredit, &issue.LineCount)
		issue.Status = domain.JournalStatus(status)
		return issue, err
	})
	if err != nil {
		return nil, mapDBError("failed to scan integrity rows", err)
	}
	return issues, nil
}

func (r *PgxJournalLineRepository) queryLines(ctx context.Context, query string, args ...any) ([]domain.LineWithDetails, error) {
	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, mapDBError("failed to query journal lines", err)
	}
	modelLines, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.JournalLineDetail])
	if err != nil {
		return nil, mapDBError("failed to scan journal lines", err)
	}

	lines := make([]domain.LineWithDetails, len(modelLines))
	for i, m := range modelLines {
		lines[i] = mapping.ToDomainLineWithDetails(m)
	}
	return lines, nil
}

// lineFilterWhere renders the default line visibility policy: soft-deleted
// journals, reversed journals and the reversals that cancel them are hidden
// unless requested. defaultStatuses applies when the filter names none.
func lineFilterWhere(args *queryArgs, companyID string, filter domain.LineFilter, defaultStatuses []domain.JournalStatus) string {
	conds := []string{"h.company_id = " + args.add(companyID)}
	if !filter.IncludeDeleted {
		conds = append(conds, "h.deleted_at IS NULL")
	}
	if !filter.IncludeReversed {
		conds = append(conds, "h.is_reversed = FALSE", "h.reversal_of_id IS NULL", "h.status <> 'REVERSED'")
	}
	if filter.AccountID != nil {
		conds = append(conds, "l.account_id = "+args.add(*filter.AccountID))
	}
	if filter.BranchID != nil {
		conds = append(conds, "h.branch_id = "+args.add(*filter.BranchID))
	}

	statuses := filter.Statuses
	if len(statuses) == 0 {
		statuses = defaultStatuses
	}
	if len(statuses) > 0 {
		values := make([]string, len(statuses))
		for i, s := range statuses {
			values[i] = string(s)
		}
		conds = append(conds, "h.status = ANY("+args.add(values)+")")
	}

	if filter.Period != nil {
		conds = append(conds, "h.period = "+args.add(*filter.Period))
	}
	if filter.DateFrom != nil {
		conds = append(conds, "h.journal_date >= "+args.add(*filter.DateFrom))
	}
	if filter.DateTo != nil {
		conds = append(conds, "h.journal_date <= "+args.add(*filter.DateTo))
	}
	return " WHERE " + strings.Join(conds, " AND ")
}
