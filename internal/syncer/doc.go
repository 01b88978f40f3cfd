// Package syncer implements one synchronization pass: fetch recent
// transactions from the feed, diff them against the ledger, persist the
// novel ones, then announce them.
//
// The pass is strictly sequential and runs to completion. Persistence
// always happens before announcement: a crash in between leaves a
// transaction saved but unannounced, never announced but unsaved, so a
// later run can never announce it twice.
package syncer
