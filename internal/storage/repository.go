// Package storage keeps the most recent finance snapshot in SQLite so the
// dashboard can serve reads while the upstream API is unreachable.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"payvue/internal/core"

	_ "modernc.org/sqlite"
)

const dateLayout = "2006-01-02"

// Snapshot is one consistent view of the three upstream collections.
type Snapshot struct {
	Incomes  []core.Income
	Debts    []core.Debt
	Payments []core.Payment
}

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// ReplaceSnapshot swaps the stored collections for the given ones in a
// single transaction and bumps the snapshot version. Readers never observe
// a half-replaced snapshot.
func (r *SQLiteRepository) ReplaceSnapshot(ctx context.Context, snap Snapshot) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin snapshot transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"incomes", "debts", "payments"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return 0, fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for _, income := range snap.Incomes {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO incomes (id, amount_cents, source, date) VALUES (?, ?, ?, ?)`,
			income.ID, income.Amount.Cents, income.Source, income.Date.Format(dateLayout))
		if err != nil {
			return 0, fmt.Errorf("insert income %d: %w", income.ID, err)
		}
	}

	for _, debt := range snap.Debts {
		var dueDate any
		if !debt.DueDate.IsEmpty() {
			dueDate = debt.DueDate.Format(dateLayout)
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO debts (id, name, total_amount_cents, remaining_amount_cents,
				installment_amount_cents, payment_day, due_date, num_installments,
				interest_rate, paid)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			debt.ID, debt.Name, debt.TotalAmount.Cents, debt.RemainingAmount.Cents,
			debt.InstallmentAmount.Cents, debt.PaymentDay, dueDate, debt.NumInstallments,
			debt.InterestRate, debt.Paid)
		if err != nil {
			return 0, fmt.Errorf("insert debt %d: %w", debt.ID, err)
		}
	}

	for _, payment := range snap.Payments {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO payments (id, debt_id, debt_name, amount_cents, date, receipt_url)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			payment.ID, payment.DebtID, payment.DebtName, payment.Amount.Cents,
			payment.Date.Format(dateLayout), payment.ReceiptURL)
		if err != nil {
			return 0, fmt.Errorf("insert payment %d: %w", payment.ID, err)
		}
	}

	var version int64
	err = tx.QueryRowContext(ctx,
		`UPDATE snapshot_meta SET version = version + 1, refreshed_at = ? WHERE id = 1
		 RETURNING version`,
		time.Now().UTC().Format(time.RFC3339)).Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("bump snapshot version: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit snapshot: %w", err)
	}

	return version, nil
}

// Version returns the current snapshot version; 0 means no snapshot yet.
func (r *SQLiteRepository) Version(ctx context.Context) (int64, error) {
	var version int64
	err := r.db.QueryRowContext(ctx,
		`SELECT version FROM snapshot_meta WHERE id = 1`).Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("read snapshot version: %w", err)
	}
	return version, nil
}

// ListIncomes returns all stored incomes.
func (r *SQLiteRepository) ListIncomes(ctx context.Context) ([]core.Income, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, amount_cents, source, date FROM incomes ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query incomes: %w", err)
	}
	defer rows.Close()

	var incomes []core.Income
	for rows.Next() {
		var income core.Income
		var date string
		if err := rows.Scan(&income.ID, &income.Amount.Cents, &income.Source, &date); err != nil {
			return nil, fmt.Errorf("scan income: %w", err)
		}
		if income.Date, err = scanDate(date); err != nil {
			return nil, fmt.Errorf("income %d: %w", income.ID, err)
		}
		incomes = append(incomes, income)
	}
	return incomes, rows.Err()
}

// ListDebts returns all stored debts.
func (r *SQLiteRepository) ListDebts(ctx context.Context) ([]core.Debt, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, total_amount_cents, remaining_amount_cents,
			installment_amount_cents, payment_day, due_date, num_installments,
			interest_rate, paid
		 FROM debts ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query debts: %w", err)
	}
	defer rows.Close()

	var debts []core.Debt
	for rows.Next() {
		var debt core.Debt
		var dueDate sql.NullString
		err := rows.Scan(&debt.ID, &debt.Name, &debt.TotalAmount.Cents,
			&debt.RemainingAmount.Cents, &debt.InstallmentAmount.Cents,
			&debt.PaymentDay, &dueDate, &debt.NumInstallments,
			&debt.InterestRate, &debt.Paid)
		if err != nil {
			return nil, fmt.Errorf("scan debt: %w", err)
		}
		if dueDate.Valid {
			if debt.DueDate, err = scanDate(dueDate.String); err != nil {
				return nil, fmt.Errorf("debt %d: %w", debt.ID, err)
			}
		}
		debts = append(debts, debt)
	}
	return debts, rows.Err()
}

// ListPayments returns all stored payments.
func (r *SQLiteRepository) ListPayments(ctx context.Context) ([]core.Payment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, debt_id, debt_name, amount_cents, date, receipt_url
		 FROM payments ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query payments: %w", err)
	}
	defer rows.Close()

	var payments []core.Payment
	for rows.Next() {
		var payment core.Payment
		var date string
		err := rows.Scan(&payment.ID, &payment.DebtID, &payment.DebtName,
			&payment.Amount.Cents, &date, &payment.ReceiptURL)
		if err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		if payment.Date, err = scanDate(date); err != nil {
			return nil, fmt.Errorf("payment %d: %w", payment.ID, err)
		}
		payments = append(payments, payment)
	}
	return payments, rows.Err()
}

// LoadSnapshot reads all three collections.
func (r *SQLiteRepository) LoadSnapshot(ctx context.Context) (Snapshot, error) {
	incomes, err := r.ListIncomes(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	debts, err := r.ListDebts(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	payments, err := r.ListPayments(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{Incomes: incomes, Debts: debts, Payments: payments}, nil
}

func scanDate(value string) (core.Date, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return core.Date{}, fmt.Errorf("parse stored date %q: %w", value, err)
	}
	return core.NewDate(t.Year(), int(t.Month()), t.Day()), nil
}
