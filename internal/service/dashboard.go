package service

import (
	"context"
	"log"
	"sync"

	"netbank/internal/api"
	"netbank/internal/money"
)

// Dashboard aggregates the overview numbers: total balance across
// accounts, recent activity on the first account, and the active card
// count.
type Dashboard struct {
	API         *api.Client
	RecentLimit int // cap on the recent-activity count, 5 when zero
}

// Summary is one refresh's worth of dashboard state. The three legs
// fail independently; each carries its own error so the UI can render
// whatever did arrive.
type Summary struct {
	Accounts       []api.Account
	TotalAccounts  int
	TotalBalance   float64
	RecentActivity int
	ActiveCards    int

	AccountsErr error
	ActivityErr error
	CardsErr    error
}

// Refresh runs the aggregate. The accounts→transactions chain is
// strictly ordered; the cards fetch is independent and runs
// concurrently with it. A zero-account user never triggers the
// transactions call.
func (s *Dashboard) Refresh(ctx context.Context) Summary {
	limit := s.RecentLimit
	if limit <= 0 {
		limit = 5
	}

	var sum Summary

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		cards, err := s.API.ListCards(ctx)
		if err != nil {
			sum.CardsErr = err
			return
		}
		for _, c := range cards {
			if c.Status == api.CardActive {
				sum.ActiveCards++
			}
		}
	}()

	accounts, err := s.API.ListAccounts(ctx)
	if err != nil {
		sum.AccountsErr = err
	} else {
		sum.Accounts = accounts
		sum.TotalAccounts = len(accounts)
		for _, acc := range accounts {
			v, err := money.ParseBalance(acc.Balance.String())
			if err != nil {
				log.Printf("dashboard: unparseable balance %q on account %d, counting 0", acc.Balance, acc.ID)
				continue
			}
			sum.TotalBalance += v
		}
		if len(accounts) > 0 {
			txns, err := s.API.AccountTransactions(ctx, accounts[0].ID)
			if err != nil {
				sum.ActivityErr = err
			} else {
				if len(txns) > limit {
					txns = txns[:limit]
				}
				sum.RecentActivity = len(txns)
			}
		}
	}

	wg.Wait()
	return sum
}
