// Package ledger implements the durable record of processed transactions.
//
// The ledger is append-only: rows are inserted once and never updated or
// deleted. Duplicate-id inserts are no-ops (ON CONFLICT DO NOTHING), which
// is what makes reprocessing the same feed window safe.
package ledger
