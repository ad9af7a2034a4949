package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"hash/fnv"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/credito/internal/ledger"
	"github.com/MrJamesThe3rd/credito/internal/loan"
	"github.com/MrJamesThe3rd/credito/internal/transaction"
	txstore "github.com/MrJamesThe3rd/credito/internal/transaction/store"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type scanner interface {
	Scan(dest ...any) error
}

const selectLoanColumns = `
	l.id, l.client_id, l.client_name, l.amount, l.interest_rate, l.total_to_receive,
	l.start_date, l.due_date, l.amount_paid, l.created_at
`

// Expected column order: see selectLoanColumns
func scanLoan(s scanner) (*ledger.Loan, error) {
	var l ledger.Loan

	if err := s.Scan(
		&l.ID, &l.ClientID, &l.ClientName, &l.Amount, &l.InterestRate, &l.TotalToReceive,
		&l.StartDate, &l.DueDate, &l.AmountPaid, &l.CreatedAt,
	); err != nil {
		return nil, err
	}

	return &l, nil
}

func (s *Store) CreateLoan(ctx context.Context, l *ledger.Loan, disbursement *transaction.Transaction) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	query := `
		INSERT INTO loans (id, client_id, client_name, amount, interest_rate, total_to_receive,
			start_date, due_date, amount_paid, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		RETURNING created_at
	`

	err = dbTx.QueryRowContext(ctx, query,
		l.ID,
		l.ClientID,
		l.ClientName,
		l.Amount,
		l.InterestRate,
		l.TotalToReceive,
		l.StartDate,
		l.DueDate,
		l.AmountPaid,
	).Scan(&l.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating loan: %w", err)
	}

	if err := txstore.Insert(ctx, dbTx, disbursement); err != nil {
		return fmt.Errorf("recording disbursement: %w", err)
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

func (s *Store) GetLoan(ctx context.Context, id uuid.UUID) (*ledger.Loan, error) {
	return getLoan(ctx, s.db, id, false)
}

func getLoan(ctx context.Context, q querier, id uuid.UUID, forUpdate bool) (*ledger.Loan, error) {
	query := `SELECT ` + selectLoanColumns + ` FROM loans l WHERE l.id = $1`
	if forUpdate {
		query += " FOR UPDATE"
	}

	l, err := scanLoan(q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, loan.ErrNotFound
		}

		return nil, fmt.Errorf("getting loan: %w", err)
	}

	payments, err := listPayments(ctx, q, []uuid.UUID{l.ID})
	if err != nil {
		return nil, err
	}

	l.Payments = payments[l.ID]

	return l, nil
}

func (s *Store) ListLoans(ctx context.Context, clientID *uuid.UUID) ([]*ledger.Loan, error) {
	query := `SELECT ` + selectLoanColumns + ` FROM loans l`

	var args []any

	if clientID != nil {
		query += " WHERE l.client_id = $1"

		args = append(args, *clientID)
	}

	query += " ORDER BY l.created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing loans: %w", err)
	}
	defer rows.Close()

	var (
		loans []*ledger.Loan
		ids   []uuid.UUID
	)

	for rows.Next() {
		l, err := scanLoan(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning loan: %w", err)
		}

		loans = append(loans, l)
		ids = append(ids, l.ID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating loan rows: %w", err)
	}

	if len(loans) == 0 {
		return loans, nil
	}

	payments, err := listPayments(ctx, s.db, ids)
	if err != nil {
		return nil, err
	}

	for _, l := range loans {
		l.Payments = payments[l.ID]
	}

	return loans, nil
}

// listPayments returns the payment ledgers of the given loans in the order the
// payments were recorded.
func listPayments(ctx context.Context, q querier, loanIDs []uuid.UUID) (map[uuid.UUID][]ledger.Payment, error) {
	query := `
		SELECT loan_id, id, date, value, kind
		FROM loan_payments
		WHERE loan_id = ANY($1::uuid[])
		ORDER BY loan_id, seq ASC
	`

	ids := make([]string, len(loanIDs))
	for i, id := range loanIDs {
		ids[i] = id.String()
	}

	rows, err := q.QueryContext(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("listing payments: %w", err)
	}
	defer rows.Close()

	out := make(map[uuid.UUID][]ledger.Payment, len(loanIDs))

	for rows.Next() {
		var (
			loanID  uuid.UUID
			p       ledger.Payment
			kindStr string
		)

		if err := rows.Scan(&loanID, &p.ID, &p.Date, &p.Value, &kindStr); err != nil {
			return nil, fmt.Errorf("scanning payment: %w", err)
		}

		p.Kind = ledger.Kind(kindStr)
		out[loanID] = append(out[loanID], p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating payment rows: %w", err)
	}

	return out, nil
}

func paymentLockKey(loanID uuid.UUID) int64 {
	h := fnv.New64a()
	h.Write([]byte("loan-payment"))
	h.Write([]byte{0})
	h.Write(loanID[:])

	return int64(h.Sum64())
}

type paymentTx struct {
	tx     *sql.Tx
	loanID uuid.UUID
}

func (s *Store) BeginPayment(ctx context.Context, loanID uuid.UUID) (loan.PaymentTx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning payment tx: %w", err)
	}

	if _, err := dbTx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", paymentLockKey(loanID)); err != nil {
		dbTx.Rollback()
		return nil, fmt.Errorf("acquiring payment lock: %w", err)
	}

	return &paymentTx{tx: dbTx, loanID: loanID}, nil
}

func (ptx *paymentTx) Commit() error   { return ptx.tx.Commit() }
func (ptx *paymentTx) Rollback() error { return ptx.tx.Rollback() }

func (ptx *paymentTx) GetLoan(ctx context.Context) (*ledger.Loan, error) {
	return getLoan(ctx, ptx.tx, ptx.loanID, true)
}

// RecordPayment appends the new payment, moves the loan to its post-payment state
// and books the receipt. The update only matches while amount_paid still holds the
// value the payment was computed against.
func (ptx *paymentTx) RecordPayment(ctx context.Context, applied ledger.Applied) error {
	l, p := applied.Loan, applied.Payment

	if l.ID != ptx.loanID {
		return fmt.Errorf("recording payment: loan %s outside locked loan %s", l.ID, ptx.loanID)
	}

	paymentQuery := `
		INSERT INTO loan_payments (id, loan_id, date, value, kind)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := ptx.tx.ExecContext(ctx, paymentQuery, p.ID, l.ID, p.Date, p.Value, p.Kind); err != nil {
		return fmt.Errorf("inserting payment: %w", err)
	}

	loanQuery := `
		UPDATE loans
		SET amount_paid = $1, due_date = $2, updated_at = NOW()
		WHERE id = $3 AND amount_paid = $4
	`

	res, err := ptx.tx.ExecContext(ctx, loanQuery, l.AmountPaid, l.DueDate, l.ID, l.AmountPaid-p.Value)
	if err != nil {
		return fmt.Errorf("updating loan: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating loan: %w", err)
	}

	if n != 1 {
		return fmt.Errorf("updating loan %s: concurrent modification", l.ID)
	}

	if err := txstore.Insert(ctx, ptx.tx, &applied.Transaction); err != nil {
		return fmt.Errorf("recording receipt: %w", err)
	}

	return nil
}
