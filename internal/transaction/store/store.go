package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/credito/internal/transaction"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Execer is satisfied by both *sql.DB and *sql.Tx, so other stores can record
// cash-flow entries inside their own database transaction.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanTransaction reads a transaction row from the scanner and returns a populated Transaction.
// Expected column order: id, amount, direction, status, category, description, date, loan_id, created_at
func scanTransaction(s scanner) (*transaction.Transaction, error) {
	var tx transaction.Transaction

	var directionStr, statusStr string

	var loanID *uuid.UUID

	if err := s.Scan(
		&tx.ID, &tx.Amount, &directionStr, &statusStr, &tx.Category, &tx.Description, &tx.Date,
		&loanID, &tx.CreatedAt,
	); err != nil {
		return nil, err
	}

	tx.Direction = transaction.Direction(directionStr)
	tx.Status = transaction.Status(statusStr)
	tx.LoanID = loanID

	return &tx, nil
}

const selectTransactionColumns = `
	t.id, t.amount, t.direction, t.status, t.category, t.description, t.date,
	t.loan_id, t.created_at
`

// Insert writes tx using q. The ID is assigned by the caller.
func Insert(ctx context.Context, q Execer, tx *transaction.Transaction) error {
	query := `
		INSERT INTO transactions (id, amount, direction, status, category, description, date, loan_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
	`

	_, err := q.ExecContext(ctx, query,
		tx.ID,
		tx.Amount,
		tx.Direction,
		tx.Status,
		tx.Category,
		tx.Description,
		tx.Date,
		tx.LoanID,
	)
	if err != nil {
		return fmt.Errorf("inserting transaction: %w", err)
	}

	return nil
}

func (s *Store) CreateTransaction(ctx context.Context, tx *transaction.Transaction) error {
	if err := Insert(ctx, s.db, tx); err != nil {
		return fmt.Errorf("creating transaction: %w", err)
	}

	return nil
}

func (s *Store) GetTransaction(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + `
		FROM transactions t
		WHERE t.id = $1`

	tx, err := scanTransaction(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, transaction.ErrNotFound
		}

		return nil, fmt.Errorf("getting transaction: %w", err)
	}

	return tx, nil
}

func (s *Store) ListTransactions(ctx context.Context, filter transaction.ListFilter) ([]*transaction.Transaction, error) {
	query, args := listQuery(filter)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	var txs []*transaction.Transaction

	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}

		txs = append(txs, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transaction rows: %w", err)
	}

	return txs, nil
}

// listQuery builds the filtered listing query. Placeholders are numbered in the
// order their arguments are appended.
func listQuery(filter transaction.ListFilter) (string, []any) {
	query := `SELECT ` + selectTransactionColumns + `
		FROM transactions t
		WHERE 1 = 1`

	var args []any

	argIdx := 1

	if filter.Direction != nil {
		query += fmt.Sprintf(" AND t.direction = $%d", argIdx)

		args = append(args, *filter.Direction)
		argIdx++
	}

	if filter.Category != nil {
		query += fmt.Sprintf(" AND t.category = $%d", argIdx)

		args = append(args, *filter.Category)
		argIdx++
	}

	if filter.StartDate != nil {
		query += fmt.Sprintf(" AND t.date >= $%d::date", argIdx)

		args = append(args, *filter.StartDate)
		argIdx++
	}

	if filter.EndDate != nil {
		query += fmt.Sprintf(" AND t.date <= $%d::date", argIdx)

		args = append(args, *filter.EndDate)
	}

	query += " ORDER BY t.date ASC, t.created_at ASC"

	return query, args
}
