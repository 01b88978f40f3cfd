package opencollective

import (
	"context"
	"fmt"
	"time"

	"github.com/twohoursonelife/collective-sync/internal/model"
)

// dateFromFormat is ISO-8601 UTC at second precision, as the API expects.
const dateFromFormat = "2006-01-02T15:04:05Z"

const transactionsQuery = `
query account($account: String, $dateFrom: DateTime, $limit: Int) {
	account(slug: $account) {
		name
		slug
		transactions(limit: $limit, type: CREDIT, dateFrom: $dateFrom) {
			totalCount
			nodes {
				id
				fromAccount {
					name
				}
				amount {
					valueInCents
				}
				createdAt
			}
		}
	}
}`

type accountData struct {
	Account *struct {
		Name         string `json:"name"`
		Slug         string `json:"slug"`
		Transactions struct {
			TotalCount int               `json:"totalCount"`
			Nodes      []transactionNode `json:"nodes"`
		} `json:"transactions"`
	} `json:"account"`
}

type transactionNode struct {
	ID          string `json:"id"`
	FromAccount struct {
		Name string `json:"name"`
	} `json:"fromAccount"`
	Amount struct {
		ValueInCents int64 `json:"valueInCents"`
	} `json:"amount"`
	CreatedAt string `json:"createdAt"`
}

// TransactionsSince fetches CREDIT transactions for the account created at
// or after since, in the order the API returns them (newest first).
func (c *Client) TransactionsSince(ctx context.Context, slug string, since time.Time) ([]model.Transaction, error) {
	payload := graphQLRequest{
		Query: transactionsQuery,
		Variables: map[string]any{
			"account":  slug,
			"dateFrom": since.UTC().Format(dateFromFormat),
			"limit":    c.pageLimit,
		},
	}

	var data accountData
	if err := c.query(ctx, payload, &data); err != nil {
		return nil, fmt.Errorf("get transactions: %w", err)
	}

	if data.Account == nil {
		return nil, fmt.Errorf("get transactions: account %q not found", slug)
	}

	txs := make([]model.Transaction, 0, len(data.Account.Transactions.Nodes))
	for _, node := range data.Account.Transactions.Nodes {
		tx, err := convertNode(node)
		if err != nil {
			return nil, fmt.Errorf("get transactions: %w", err)
		}
		txs = append(txs, tx)
	}

	c.logger.Debug("fetched transactions",
		"account", slug,
		"count", len(txs),
		"total_count", data.Account.Transactions.TotalCount,
	)

	return txs, nil
}

// convertNode maps an API transaction node to the model type.
func convertNode(node transactionNode) (model.Transaction, error) {
	if node.ID == "" {
		return model.Transaction{}, fmt.Errorf("transaction node missing id")
	}

	createdAt, err := time.Parse(time.RFC3339, node.CreatedAt)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("transaction %s: parse createdAt %q: %w", node.ID, node.CreatedAt, err)
	}

	if node.Amount.ValueInCents < 0 {
		return model.Transaction{}, fmt.Errorf("transaction %s: negative amount %d", node.ID, node.Amount.ValueInCents)
	}

	return model.Transaction{
		ID:          node.ID,
		CreatedAt:   createdAt,
		FromAccount: node.FromAccount.Name,
		AmountCents: node.Amount.ValueInCents,
	}, nil
}
