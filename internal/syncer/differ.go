package syncer

import "github.com/twohoursonelife/collective-sync/internal/model"

// FilterNew returns the transactions in remote whose ids do not appear
// in known, preserving remote's relative order. Duplicate ids within
// remote itself are not collapsed: if the feed repeats an id, every copy
// passes the filter (the ledger will still only store one).
func FilterNew(remote, known []model.Transaction) []model.Transaction {
	if len(remote) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(known))
	for _, tx := range known {
		seen[tx.ID] = struct{}{}
	}

	fresh := make([]model.Transaction, 0, len(remote))
	for _, tx := range remote {
		if _, ok := seen[tx.ID]; !ok {
			fresh = append(fresh, tx)
		}
	}

	return fresh
}

// duplicateIDs returns the ids that occur more than once in txs, in
// first-occurrence order.
func duplicateIDs(txs []model.Transaction) []string {
	counts := make(map[string]int, len(txs))
	for _, tx := range txs {
		counts[tx.ID]++
	}

	var dupes []string
	reported := make(map[string]struct{})
	for _, tx := range txs {
		if counts[tx.ID] > 1 {
			if _, ok := reported[tx.ID]; !ok {
				dupes = append(dupes, tx.ID)
				reported[tx.ID] = struct{}{}
			}
		}
	}

	return dupes
}
