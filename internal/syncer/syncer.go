package syncer

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/twohoursonelife/collective-sync/internal/model"
)

// Fetcher retrieves the remote window of transactions.
type Fetcher interface {
	TransactionsSince(ctx context.Context, since time.Time) ([]model.Transaction, error)
}

// FetcherFunc is a function adapter for Fetcher.
type FetcherFunc func(ctx context.Context, since time.Time) ([]model.Transaction, error)

func (f FetcherFunc) TransactionsSince(ctx context.Context, since time.Time) ([]model.Transaction, error) {
	return f(ctx, since)
}

// Ledger is the durable record of transactions already processed.
type Ledger interface {
	Init(ctx context.Context) error
	TransactionsSince(ctx context.Context, cutoff time.Time) ([]model.Transaction, error)
	InsertAll(ctx context.Context, txs []model.Transaction) (int, error)
}

// Notifier announces a batch of transactions, oldest first.
type Notifier interface {
	Announce(ctx context.Context, txs []model.Transaction) error
}

// Config holds orchestration settings.
type Config struct {
	// Lookback bounds both the remote fetch and the ledger query.
	Lookback time.Duration
}

// Result summarizes one pass. On a notification failure the new
// transactions are already persisted, so Inserted is set while Notified
// stays false.
type Result struct {
	Fetched  int  // Transactions returned by the feed
	Known    int  // Ledger rows inside the lookback window
	New      int  // Transactions that passed the diff
	Inserted int  // Rows actually written (new minus in-feed duplicates)
	Notified bool // Whether the announcement was delivered
}

// Syncer drives one fetch -> diff -> persist -> notify pass.
type Syncer struct {
	cfg      Config
	fetcher  Fetcher
	ledger   Ledger
	notifier Notifier
	logger   *slog.Logger

	now func() time.Time // Overridable for tests
}

// New creates a Syncer.
func New(cfg Config, fetcher Fetcher, ledger Ledger, notifier Notifier, logger *slog.Logger) *Syncer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Syncer{
		cfg:      cfg,
		fetcher:  fetcher,
		ledger:   ledger,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// Run executes a single synchronization pass.
//
// A fetch or persistence failure aborts the pass with no partial work.
// A notification failure is returned as an error, but the transactions
// stay persisted: they count as seen, trading a missed announcement for
// a guarantee of no duplicate announcements on later runs.
func (s *Syncer) Run(ctx context.Context) (*Result, error) {
	logger := s.logger.With("run_id", uuid.NewString())

	if err := s.ledger.Init(ctx); err != nil {
		return nil, fmt.Errorf("init ledger: %w", err)
	}

	cutoff := s.now().UTC().Add(-s.cfg.Lookback)
	logger.Info("starting sync pass",
		"cutoff", cutoff,
		"lookback", s.cfg.Lookback,
	)

	remote, err := s.fetcher.TransactionsSince(ctx, cutoff)
	if err != nil {
		return nil, fmt.Errorf("fetch transactions: %w", err)
	}

	known, err := s.ledger.TransactionsSince(ctx, cutoff)
	if err != nil {
		return nil, fmt.Errorf("load known transactions: %w", err)
	}

	fresh := FilterNew(remote, known)

	// The feed repeating an id would announce it twice; the ledger only
	// stores the first copy.
	if dupes := duplicateIDs(fresh); len(dupes) > 0 {
		logger.Warn("remote feed contains duplicate transaction ids",
			"ids", dupes,
		)
	}

	result := &Result{
		Fetched: len(remote),
		Known:   len(known),
		New:     len(fresh),
	}

	if len(fresh) == 0 {
		logger.Info("no new transactions",
			"fetched", result.Fetched,
			"known", result.Known,
		)
		return result, nil
	}

	// Announce oldest first regardless of feed order.
	sort.SliceStable(fresh, func(i, j int) bool {
		return fresh[i].CreatedAt.Before(fresh[j].CreatedAt)
	})

	inserted, err := s.ledger.InsertAll(ctx, fresh)
	if err != nil {
		return nil, fmt.Errorf("persist transactions: %w", err)
	}
	result.Inserted = inserted

	if err := s.notifier.Announce(ctx, fresh); err != nil {
		logger.Error("announcement failed after persistence",
			"new", result.New,
			"inserted", inserted,
			"error", err,
		)
		return result, fmt.Errorf("send announcement: %w", err)
	}
	result.Notified = true

	logger.Info("sync pass complete",
		"fetched", result.Fetched,
		"known", result.Known,
		"new", result.New,
		"inserted", inserted,
	)

	return result, nil
}
