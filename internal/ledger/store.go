package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/twohoursonelife/collective-sync/internal/model"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS transactions (
		id           TEXT PRIMARY KEY,
		created_at   TIMESTAMPTZ NOT NULL,
		from_account TEXT NOT NULL,
		amount_cents BIGINT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_created_at
		ON transactions (created_at)`,
}

// Store is the PostgreSQL-backed transaction ledger.
type Store struct {
	db     *pgxpool.Pool
	logger *slog.Logger
}

// NewStore creates a Store on an existing connection pool. The pool's
// lifecycle belongs to the caller.
func NewStore(db *pgxpool.Pool, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		db:     db,
		logger: logger,
	}
}

// Init ensures the transactions table and its index exist. Safe to call
// on every run.
func (s *Store) Init(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}

// TransactionsSince returns all stored transactions created after cutoff,
// oldest first.
func (s *Store) TransactionsSince(ctx context.Context, cutoff time.Time) ([]model.Transaction, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, created_at, from_account, amount_cents
		FROM transactions
		WHERE created_at > $1
		ORDER BY created_at
	`, cutoff)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var txs []model.Transaction
	for rows.Next() {
		var tx model.Transaction
		if err := rows.Scan(&tx.ID, &tx.CreatedAt, &tx.FromAccount, &tx.AmountCents); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		txs = append(txs, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read transactions: %w", err)
	}

	return txs, nil
}

// InsertAll persists a batch of transactions in a single database
// transaction: either every row lands or none do. A row whose id already
// exists is left untouched and counted as a conflict rather than an error.
// Returns the number of rows actually inserted.
func (s *Store) InsertAll(ctx context.Context, txs []model.Transaction) (int, error) {
	if len(txs) == 0 {
		return 0, nil
	}

	dbTx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer dbTx.Rollback(ctx)

	batch := &pgx.Batch{}
	for _, tx := range txs {
		batch.Queue(`
			INSERT INTO transactions (id, created_at, from_account, amount_cents)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (id) DO NOTHING
		`, tx.ID, tx.CreatedAt, tx.FromAccount, tx.AmountCents)
	}

	results := dbTx.SendBatch(ctx, batch)

	var conflicts int
	for range txs {
		ct, err := results.Exec()
		if err != nil {
			results.Close()
			return 0, fmt.Errorf("insert transaction: %w", err)
		}
		if ct.RowsAffected() == 0 {
			conflicts++
		}
	}
	if err := results.Close(); err != nil {
		return 0, fmt.Errorf("close batch: %w", err)
	}

	if err := dbTx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit transaction: %w", err)
	}

	inserted := len(txs) - conflicts
	if conflicts > 0 {
		s.logger.Warn("skipped duplicate transactions",
			"conflicts", conflicts,
			"inserted", inserted,
		)
	}

	return inserted, nil
}
