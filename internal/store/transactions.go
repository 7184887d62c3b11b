package store

import (
	"context"

	"netbank/internal/api"
)

// Transactions owns the per-account transaction history. Read-only:
// the backend is the single writer, the client only lists.
type Transactions struct {
	api  *api.Client
	list collection[api.Transaction]
}

func NewTransactions(client *api.Client) *Transactions {
	return &Transactions{api: client}
}

// LoadForAccount replaces the collection with the newest transactions
// for one account, capped to limit (<=0 means no cap). On failure the
// previous list stays.
func (s *Transactions) LoadForAccount(ctx context.Context, accountID int64, limit int) error {
	list, err := s.api.AccountTransactions(ctx, accountID)
	if err != nil {
		return err
	}
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	s.list.replace(list)
	return nil
}

// Items returns a display snapshot.
func (s *Transactions) Items() []api.Transaction { return s.list.snapshot() }

// Clear empties the list (e.g. when no account is selected).
func (s *Transactions) Clear() { s.list.replace(nil) }
