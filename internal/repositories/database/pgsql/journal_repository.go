package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/erp_journal_engine/internal/apperrors"
	"github.com/SscSPs/erp_journal_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/erp_journal_engine/internal/core/ports/repositories"
	"github.com/SscSPs/erp_journal_engine/internal/models"
	"github.com/SscSPs/erp_journal_engine/internal/utils/accounting"
	"github.com/SscSPs/erp_journal_engine/internal/utils/mapping"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const journalHeaderColumns = `
	h.id, h.company_id, h.branch_id, h.journal_type, h.source_module,
	h.reference_type, h.reference_id, h.reference_number,
	h.journal_number, h.sequence_number, h.period, h.journal_date, h.description,
	h.total_debit, h.total_credit, h.currency, h.exchange_rate,
	h.status, h.submitted_at, h.submitted_by, h.approved_at, h.approved_by,
	h.rejected_at, h.rejected_by, h.rejection_reason, h.posted_at, h.posted_by,
	h.is_reversed, h.reversed_by, h.reversal_date, h.reversal_reason, h.reversal_of_id,
	h.deleted_at, h.deleted_by, h.created_at, h.created_by, h.updated_at, h.updated_by`

const journalLineColumns = `
	l.id, l.journal_header_id, l.line_number, l.account_id, l.description,
	l.debit_amount, l.credit_amount, l.currency, l.exchange_rate,
	l.base_debit_amount, l.base_credit_amount, l.cost_center_id, l.project_id,
	l.created_at, l.created_by,
	a.code AS account_code, a.name AS account_name, a.account_type AS account_type`

// journalSortColumns whitelists the sortable columns of the header list.
var journalSortColumns = map[string]string{
	"journal_date":   "h.journal_date",
	"journal_number": "h.journal_number",
	"created_at":     "h.created_at",
	"total_debit":    "h.total_debit",
	"status":         "h.status",
}

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a journal repository bound to a pool or a transaction.
func newPgxJournalRepository(db DBTX) *PgxJournalRepository {
	return &PgxJournalRepository{BaseRepository: BaseRepository{DB: db}}
}

// Ensure PgxJournalRepository implements portsrepo.JournalRepositoryWithTx
var _ portsrepo.JournalRepositoryWithTx = (*PgxJournalRepository)(nil)

// WithinTx runs fn with a repository bound to a single transaction.
func (r *PgxJournalRepository) WithinTx(ctx context.Context, fn func(repo portsrepo.JournalRepositoryWithTx) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(newPgxJournalRepository(tx))
	})
}

// FindJournalByID retrieves a journal and its lines.
func (r *PgxJournalRepository) FindJournalByID(ctx context.Context, companyID, journalID string, includeDeleted bool) (*domain.JournalHeader, error) {
	query := `SELECT ` + journalHeaderColumns + `
		FROM journal_headers h
		WHERE h.company_id = $1 AND h.id = $2`
	if !includeDeleted {
		query += ` AND h.deleted_at IS NULL`
	}

	rows, err := r.DB.Query(ctx, query, companyID, journalID)
	if err != nil {
		return nil, mapDBError("failed to query journal "+journalID, err)
	}
	m, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.JournalHeader])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("journal", journalID)
		}
		return nil, mapDBError("failed to scan journal "+journalID, err)
	}

	header := mapping.ToDomainJournalHeader(m)
	linesByJournal, err := r.FindLinesByJournalIDs(ctx, []string{journalID})
	if err != nil {
		return nil, err
	}
	header.Lines = linesByJournal[journalID]
	if header.Lines == nil {
		header.Lines = []domain.JournalLine{}
	}
	return &header, nil
}

// ListJournals retrieves one page of journals and the total number of matches.
func (r *PgxJournalRepository) ListJournals(ctx context.Context, companyID string, filter domain.JournalFilter, page domain.Page) ([]domain.JournalHeader, int, error) {
	args := &queryArgs{}
	conds := []string{"h.company_id = " + args.add(companyID)}
	if !filter.ShowDeleted {
		conds = append(conds, "h.deleted_at IS NULL")
	}
	if filter.BranchID != nil {
		conds = append(conds, "h.branch_id = "+args.add(*filter.BranchID))
	}
	if filter.JournalType != nil {
		conds = append(conds, "h.journal_type = "+args.add(string(*filter.JournalType)))
	}
	if filter.Status != nil {
		conds = append(conds, "h.status = "+args.add(string(*filter.Status)))
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
	if filter.Search != "" {
		p := args.add("%" + escapeLike(filter.Search) + "%")
		conds = append(conds, "(h.journal_number ILIKE "+p+` ESCAPE '\' OR h.description ILIKE `+p+` ESCAPE '\')`)
	}
	where := " WHERE " + strings.Join(conds, " AND ")

	var total int
	if err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM journal_headers h`+where, args.values...).Scan(&total); err != nil {
		return nil, 0, mapDBError("failed to count journals for company "+companyID, err)
	}

	query := `SELECT ` + journalHeaderColumns + ` FROM journal_headers h` + where +
		` ORDER BY ` + journalOrderBy(filter.SortBy, filter.SortOrder) +
		` LIMIT ` + args.add(page.Limit) + ` OFFSET ` + args.add(page.Offset())

	rows, err := r.DB.Query(ctx, query, args.values...)
	if err != nil {
		return nil, 0, mapDBError("failed to query journals for company "+companyID, err)
	}
	modelHeaders, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.JournalHeader])
	if err != nil {
		return nil, 0, mapDBError("failed to scan journal rows for company "+companyID, err)
	}

	headers := make([]domain.JournalHeader, len(modelHeaders))
	for i, m := range modelHeaders {
		headers[i] = mapping.ToDomainJournalHeader(m)
	}
	return headers, total, nil
}

func journalOrderBy(sortBy, sortOrder string) string {
	col, ok := journalSortColumns[sortBy]
	if !ok {
		return "h.journal_date DESC, h.journal_number DESC"
	}
	dir := "DESC"
	if strings.EqualFold(sortOrder, "ASC") {
		dir = "ASC"
	}
	if col == "h.journal_number" {
		return col + " " + dir
	}
	return col + " " + dir + ", h.journal_number " + dir
}

// FindLinesByJournalIDs retrieves lines for many journals, grouped by journal ID.
func (r *PgxJournalRepository) FindLinesByJournalIDs(ctx context.Context, journalIDs []string) (map[string][]domain.JournalLine, error) {
	result := make(map[string][]domain.JournalLine, len(journalIDs))
	if len(journalIDs) == 0 {
		return result, nil
	}

	query := `SELECT ` + journalLineColumns + `
		FROM journal_lines l
		LEFT JOIN chart_of_accounts a ON a.id = l.account_id
		WHERE l.journal_header_id = ANY($1)
		ORDER BY l.journal_header_id, l.line_number`

	rows, err := r.DB.Query(ctx, query, journalIDs)
	if err != nil {
		return nil, mapDBError("failed to query journal lines", err)
	}
	modelLines, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.JournalLine])
	if err != nil {
		return nil, mapDBError("failed to scan journal lines", err)
	}

	for _, m := range modelLines {
		result[m.JournalHeaderID] = append(result[m.JournalHeaderID], mapping.ToDomainJournalLine(m))
	}
	return result, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes LIKE wildcards in user input match literally.
func escapeLike(term string) string {
	return likeEscaper.Replace(term)
}

// CreateJournalWithLines inserts the header (always as DRAFT) and its lines in one transaction.
func (r *PgxJournalRepository) CreateJournalWithLines(ctx context.Context, header domain.JournalHeader, lines []domain.JournalLine) error {
	header.Status = domain.StatusDraft
	m := mapping.ToModelJournalHeader(header)

	return r.inTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO journal_headers (
				id, company_id, branch_id, journal_type, source_module,
				reference_type, reference_id, reference_number,
				journal_number, sequence_number, period, journal_date, description,
				total_debit, total_credit, currency, exchange_rate, status,
				reversal_of_id, created_at, created_by, updated_at, updated_by
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23)`,
			m.ID, m.CompanyID, m.BranchID, m.JournalType, m.SourceModule,
			m.ReferenceType, m.ReferenceID, m.ReferenceNumber,
			m.JournalNumber, m.SequenceNumber, m.Period, m.JournalDate, m.Description,
			m.TotalDebit, m.TotalCredit, m.Currency, m.ExchangeRate, m.Status,
			m.ReversalOfID, m.CreatedAt, m.CreatedBy, m.UpdatedAt, m.UpdatedBy,
		)
		if err != nil {
			return mapDBError("failed to insert journal "+header.ID, err)
		}
		return insertLines(ctx, tx, header, lines, header.CreatedAt, header.CreatedBy)
	})
}

// UpdateJournalWithLines rewrites a DRAFT header and, when lines is non-nil, replaces its lines.
func (r *PgxJournalRepository) UpdateJournalWithLines(ctx context.Context, header domain.JournalHeader, lines []domain.JournalLine) error {
	m := mapping.ToModelJournalHeader(header)

	return r.inTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			UPDATE journal_headers SET
				branch_id = $3, reference_type = $4, reference_id = $5, reference_number = $6,
				journal_date = $7, period = $8, description = $9,
				total_debit = $10, total_credit = $11, currency = $12, exchange_rate = $13,
				updated_at = $14, updated_by = $15
			WHERE company_id = $1 AND id = $2 AND status = 'DRAFT' AND deleted_at IS NULL`,
			m.CompanyID, m.ID,
			m.BranchID, m.ReferenceType, m.ReferenceID, m.ReferenceNumber,
			m.JournalDate, m.Period, m.Description,
			m.TotalDebit, m.TotalCredit, m.Currency, m.ExchangeRate,
			m.UpdatedAt, m.UpdatedBy,
		)
		if err != nil {
			return mapDBError("failed to update journal "+header.ID, err)
		}
		if tag.RowsAffected() == 0 {
			state, err := loadJournalState(ctx, tx, header.CompanyID, header.ID)
			if err != nil {
				return err
			}
			if state.deleted {
				return apperrors.NewNotFoundError("journal", header.ID)
			}
			return apperrors.NewCannotEditNonDraftError(state.status)
		}

		if lines == nil {
			return nil
		}
		if _, err := tx.Exec(ctx, `DELETE FROM journal_lines WHERE journal_header_id = $1`, header.ID); err != nil {
			return mapDBError("failed to delete lines of journal "+header.ID, err)
		}
		return insertLines(ctx, tx, header, lines, header.UpdatedAt, header.UpdatedBy)
	})
}

// UpdateJournalStatus applies one state-machine step and its stamps in a single statement.
func (r *PgxJournalRepository) UpdateJournalStatus(ctx context.Context, companyID, journalID string, change domain.StatusChange) error {
	args := &queryArgs{}
	pCompany, pID, pFrom := args.add(companyID), args.add(journalID), args.add(string(change.From))
	sets := []string{
		"status = " + args.add(string(change.To)),
		"updated_at = " + args.add(change.At),
		"updated_by = " + args.add(change.ActorID),
	}

	switch change.To {
	case domain.StatusSubmitted:
		sets = append(sets, "submitted_at = "+args.add(change.At), "submitted_by = "+args.add(change.ActorID))
	case domain.StatusApproved:
		sets = append(sets, "approved_at = "+args.add(change.At), "approved_by = "+args.add(change.ActorID))
	case domain.StatusRejected:
		sets = append(sets,
			"rejected_at = "+args.add(change.At),
			"rejected_by = "+args.add(change.ActorID),
			"rejection_reason = "+args.add(change.RejectionReason),
		)
	case domain.StatusPosted:
		sets = append(sets, "posted_at = "+args.add(change.At), "posted_by = "+args.add(change.ActorID))
	case domain.StatusDraft:
		sets = append(sets, "rejected_at = NULL", "rejected_by = NULL", "rejection_reason = NULL")
	}

	query := `UPDATE journal_headers SET ` + strings.Join(sets, ", ") +
		` WHERE company_id = ` + pCompany + ` AND id = ` + pID +
		` AND status = ` + pFrom + ` AND deleted_at IS NULL`

	tag, err := r.DB.Exec(ctx, query, args.values...)
	if err != nil {
		return mapDBError("failed to update status of journal "+journalID, err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	state, err := loadJournalState(ctx, r.DB, companyID, journalID)
	if err != nil {
		return err
	}
	if state.deleted {
		return apperrors.NewNotFoundError("journal", journalID)
	}
	return apperrors.NewInvalidStatusTransitionError(state.status, string(change.To))
}

// MarkJournalReversed links a POSTED journal to its reversal. The original keeps its status.
func (r *PgxJournalRepository) MarkJournalReversed(ctx context.Context, companyID, journalID, reversalJournalID, reason string, at time.Time, userID string) error {
	tag, err := r.DB.Exec(ctx, `
		UPDATE journal_headers SET
			is_reversed = TRUE, reversed_by = $3, reversal_date = $4, reversal_reason = $5,
			updated_at = $6, updated_by = $7
		WHERE company_id = $1 AND id = $2 AND status = 'POSTED' AND is_reversed = FALSE AND deleted_at IS NULL`,
		companyID, journalID, reversalJournalID, at, reason, time.Now().UTC(), userID,
	)
	if err != nil {
		return mapDBError("failed to mark journal "+journalID+" reversed", err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	state, err := loadJournalState(ctx, r.DB, companyID, journalID)
	if err != nil {
		return err
	}
	switch {
	case state.deleted:
		return apperrors.NewNotFoundError("journal", journalID)
	case state.reversed:
		return apperrors.NewAlreadyReversedError(journalID)
	default:
		return apperrors.NewInvalidStatusTransitionError(state.status, string(domain.StatusReversed))
	}
}

// SoftDeleteJournal hides a DRAFT or REJECTED journal from default reads.
func (r *PgxJournalRepository) SoftDeleteJournal(ctx context.Context, companyID, journalID, userID string, at time.Time) error {
	tag, err := r.DB.Exec(ctx, `
		UPDATE journal_headers SET deleted_at = $3, deleted_by = $4, updated_at = $3, updated_by = $4
		WHERE company_id = $1 AND id = $2 AND deleted_at IS NULL AND status IN ('DRAFT', 'REJECTED')`,
		companyID, journalID, at, userID,
	)
	if err != nil {
		return mapDBError("failed to delete journal "+journalID, err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	state, err := loadJournalState(ctx, r.DB, companyID, journalID)
	if err != nil {
		return err
	}
	if state.deleted {
		return apperrors.NewNotFoundError("journal", journalID)
	}
	return apperrors.NewCannotDeletePostedError(state.status)
}

// RestoreJournal clears the soft-delete markers of a deleted journal.
func (r *PgxJournalRepository) RestoreJournal(ctx context.Context, companyID, journalID, userID string, at time.Time) error {
	tag, err := r.DB.Exec(ctx, `
		UPDATE journal_headers SET deleted_at = NULL, deleted_by = NULL, updated_at = $3, updated_by = $4
		WHERE company_id = $1 AND id = $2 AND deleted_at IS NOT NULL`,
		companyID, journalID, at, userID,
	)
	if err != nil {
		return mapDBError("failed to restore journal "+journalID, err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	if _, err := loadJournalState(ctx, r.DB, companyID, journalID); err != nil {
		return err
	}
	return apperrors.NewValidationError("id", "journal "+journalID+" is not deleted")
}

// GetNextSequence increments and returns the counter for (company, type, period).
// The first call for a tuple seeds the counter from the headers already stored.
// The row lock is held until the surrounding transaction ends.
func (r *PgxJournalRepository) GetNextSequence(ctx context.Context, companyID string, journalType domain.JournalType, period string) (int, error) {
	var next int
	err := r.DB.QueryRow(ctx, `
		INSERT INTO journal_sequences (company_id, journal_type, period, last_value)
		VALUES ($1, $2, $3, COALESCE((
			SELECT MAX(sequence_number) FROM journal_headers
			WHERE company_id = $1 AND journal_type = $2 AND period = $3
		), 0) + 1)
		ON CONFLICT (company_id, journal_type, period)
		DO UPDATE SET last_value = journal_sequences.last_value + 1, updated_at = NOW()
		RETURNING last_value`,
		companyID, string(journalType), period,
	).Scan(&next)
	if err != nil {
		return 0, mapDBError(fmt.Sprintf("failed to reserve sequence for %s %s", journalType, period), err)
	}
	return next, nil
}

// insertLines stamps lines with the header's id and currency and inserts them in one batch.
func insertLines(ctx context.Context, tx pgx.Tx, header domain.JournalHeader, lines []domain.JournalLine, at time.Time, by string) error {
	if len(lines) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	query := `
		INSERT INTO journal_lines (
			id, journal_header_id, line_number, account_id, description,
			debit_amount, credit_amount, currency, exchange_rate,
			base_debit_amount, base_credit_amount, cost_center_id, project_id,
			created_at, created_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	for _, line := range accounting.ApplyExchangeRate(lines, header.Currency, header.ExchangeRate) {
		if line.ID == "" {
			line.ID = uuid.NewString()
		}
		line.JournalHeaderID = header.ID
		line.CreatedAt = at
		line.CreatedBy = by

		ml := mapping.ToModelJournalLine(line)
		batch.Queue(query,
			ml.ID, ml.JournalHeaderID, ml.LineNumber, ml.AccountID, ml.Description,
			ml.DebitAmount, ml.CreditAmount, ml.Currency, ml.ExchangeRate,
			ml.BaseDebitAmount, ml.BaseCreditAmount, ml.CostCenterID, ml.ProjectID,
			ml.CreatedAt, ml.CreatedBy,
		)
	}

	// Close surfaces the first failing statement
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return mapDBError("failed to insert lines for journal "+header.ID, err)
	}
	return nil
}

type journalState struct {
	status   string
	reversed bool
	deleted  bool
}

// loadJournalState explains why a guarded update touched no row.
func loadJournalState(ctx context.Context, db DBTX, companyID, journalID string) (journalState, error) {
	var s journalState
	err := db.QueryRow(ctx, `
		SELECT status, is_reversed, deleted_at IS NOT NULL
		FROM journal_headers WHERE company_id = $1 AND id = $2`,
		companyID, journalID,
	).Scan(&s.status, &s.reversed, &s.deleted)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return s, apperrors.NewNotFoundError("journal", journalID)
		}
		return s, mapDBError("failed to load journal "+journalID, err)
	}
	return s, nil
}

// queryArgs collects positional arguments for dynamically built queries.
type queryArgs struct {
	values []any
}

func (q *queryArgs) add(v any) string {
	q.values = append(q.values, v)
	return "$" + strconv.Itoa(len(q.values))
}
