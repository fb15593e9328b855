package postgres

import (
	"context"
	"fmt"

	"github.com/powerkey/power-app/internal/domain"
	"github.com/powerkey/power-app/internal/domain/entity"
	"github.com/powerkey/power-app/internal/domain/repository"
)

var _ repository.JournalEntryRepository = (*JournalEntryRepo)(nil)

// JournalEntryRepo persistencia de asientos y sus líneas.
type JournalEntryRepo struct {
	q Querier
}

// NewJournalEntryRepository construye el adaptador.
func NewJournalEntryRepository(q Querier) *JournalEntryRepo {
	return &JournalEntryRepo{q: q}
}

func (r *JournalEntryRepo) Create(ctx context.Context, je *entity.JournalEntry) error {
	query := `
		INSERT INTO journal_entries (
			name, company, voucher_type, posting_date, user_remark, reference_doctype, reference_name,
			docstatus, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		je.Name, je.Company, je.VoucherType, je.PostingDate, je.UserRemark, je.ReferenceDoctype,
		je.ReferenceName, je.DocStatus, je.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert journal entry: %w", err)
	}
	lineQuery := `
		INSERT INTO journal_entry_accounts (name, parent, idx, account, debit, credit, is_advance, cost_center)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	for _, a := range je.Accounts {
		if _, err := r.q.Exec(ctx, lineQuery,
			a.Name, je.Name, a.Idx, a.Account, a.Debit, a.Credit, a.IsAdvance, a.CostCenter,
		); err != nil {
			return fmt.Errorf("insert journal entry account %s: %w", a.Account, err)
		}
	}
	return nil
}

const journalEntrySelect = `
	SELECT name, company, voucher_type, posting_date, user_remark, reference_doctype, reference_name,
		docstatus, created_at
	FROM journal_entries`

func (r *JournalEntryRepo) GetByName(ctx context.Context, name string) (*entity.JournalEntry, error) {
	var je entity.JournalEntry
	err := r.q.QueryRow(ctx, journalEntrySelect+` WHERE name = $1`, name).Scan(
		&je.Name, &je.Company, &je.VoucherType, &je.PostingDate, &je.UserRemark, &je.ReferenceDoctype,
		&je.ReferenceName, &je.DocStatus, &je.CreatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get journal entry: %w", err)
	}
	if je.Accounts, err = r.accounts(ctx, je.Name); err != nil {
		return nil, err
	}
	return &je, nil
}

// ListByReference asientos del documento origen en orden de creación. doctype vacío no filtra por tipo.
func (r *JournalEntryRepo) ListByReference(ctx context.Context, doctype, name string) ([]*entity.JournalEntry, error) {
	query := journalEntrySelect + `
		WHERE reference_name = $1 AND ($2::text = '' OR reference_doctype = $2::text)
		ORDER BY created_at, name`
	rows, err := r.q.Query(ctx, query, name, doctype)
	if err != nil {
		return nil, fmt.Errorf("list journal entries: %w", err)
	}
	var list []*entity.JournalEntry
	for rows.Next() {
		var je entity.JournalEntry
		if err := rows.Scan(
			&je.Name, &je.Company, &je.VoucherType, &je.PostingDate, &je.UserRemark, &je.ReferenceDoctype,
			&je.ReferenceName, &je.DocStatus, &je.CreatedAt,
		); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan journal entry: %w", err)
		}
		list = append(list, &je)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("journal entry rows: %w", err)
	}
	// Las líneas se leen después de cerrar rows: una tx de pgx no admite dos consultas abiertas.
	for _, je := range list {
		if je.Accounts, err = r.accounts(ctx, je.Name); err != nil {
			return nil, err
		}
	}
	return list, nil
}

func (r *JournalEntryRepo) accounts(ctx context.Context, parent string) ([]*entity.JournalEntryAccount, error) {
	rows, err := r.q.Query(ctx, `
		SELECT name, idx, account, debit, credit, is_advance, cost_center
		FROM journal_entry_accounts WHERE parent = $1 ORDER BY idx`, parent)
	if err != nil {
		return nil, fmt.Errorf("list journal entry accounts: %w", err)
	}
	defer rows.Close()
	var out []*entity.JournalEntryAccount
	for rows.Next() {
		var a entity.JournalEntryAccount
		if err := rows.Scan(&a.Name, &a.Idx, &a.Account, &a.Debit, &a.Credit, &a.IsAdvance, &a.CostCenter); err != nil {
			return nil, fmt.Errorf("scan journal entry account: %w", err)
		}
		out = append(out, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("journal entry account rows: %w", err)
	}
	return out, nil
}
