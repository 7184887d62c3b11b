package store

import (
	"context"
	"fmt"
	"log"

	"netbank/internal/api"
	"netbank/internal/money"
)

// AccountRow is an account shaped for display. Serial is the row's
// position in the list and never goes near the network; ID is the
// backend identifier used for every API call.
type AccountRow struct {
	Serial        int
	ID            int64
	AccountNumber string
	AccountType   string
	Balance       string // formatted, e.g. "₹1,000.00"
	Currency      string
	Status        string
}

// Accounts owns the in-memory account list.
type Accounts struct {
	api     *api.Client
	confirm ConfirmFunc
	symbol  string

	guard inflight
	list  collection[AccountRow]
}

func NewAccounts(client *api.Client, confirm ConfirmFunc, currencySymbol string) *Accounts {
	return &Accounts{api: client, confirm: confirm, symbol: currencySymbol}
}

// Load replaces the collection with the server's current list. On
// failure the collection is left untouched and the error surfaces.
func (s *Accounts) Load(ctx context.Context) error {
	accounts, err := s.api.ListAccounts(ctx)
	if err != nil {
		return err
	}
	s.list.replace(s.mapRows(accounts))
	return nil
}

// LoadFallback installs the deterministic demo dataset. It is invoked
// explicitly by the caller after Load reported its failure, never
// silently in place of a real load.
func (s *Accounts) LoadFallback() {
	s.list.replace([]AccountRow{
		{Serial: 1, ID: 1, AccountType: api.AccountSavings, AccountNumber: "366698477834",
			Balance: money.Format(s.symbol, 1000), Currency: "INR", Status: "Active"},
		{Serial: 2, ID: 2, AccountType: api.AccountCurrent, AccountNumber: "366698477835",
			Balance: money.Format(s.symbol, 5250.75), Currency: "INR", Status: "Active"},
	})
}

// Items returns a display snapshot.
func (s *Accounts) Items() []AccountRow { return s.list.snapshot() }

func (s *Accounts) Busy() bool      { return s.guard.Busy() }
func (s *Accounts) LastOp() OpState { return s.guard.LastOp() }

// Create opens a new account and reconciles with a full reload. The
// reload's failure is reported but does not undo the creation.
func (s *Accounts) Create(ctx context.Context, accountType string, deposit float64, currency string) (api.Account, error) {
	if err := s.guard.begin(); err != nil {
		return api.Account{}, err
	}
	created, err := s.api.CreateAccount(ctx, accountType, deposit, currency)
	if err != nil {
		s.guard.end(false)
		return api.Account{}, err
	}
	s.guard.end(true)
	if err := s.Load(ctx); err != nil {
		return created, fmt.Errorf("account created, list refresh failed: %w", err)
	}
	return created, nil
}

// Remove deletes an account after confirmation. An id missing from the
// local collection aborts before any network call; the row leaves the
// collection only once the server confirms the delete.
func (s *Accounts) Remove(ctx context.Context, id int64) error {
	if err := s.guard.begin(); err != nil {
		return err
	}
	row, ok := s.list.find(func(r AccountRow) bool { return r.ID == id })
	if !ok {
		s.guard.abort()
		return api.NotFound("account %d is not in the current list", id)
	}
	if !s.confirm(fmt.Sprintf("Delete account %s?", row.AccountNumber)) {
		s.guard.abort()
		return nil
	}
	if err := s.api.DeleteAccount(ctx, id); err != nil {
		s.guard.end(false)
		return err
	}
	s.list.removeWhere(func(r AccountRow) bool { return r.ID == id })
	s.guard.end(true)
	if err := s.Load(ctx); err != nil {
		return fmt.Errorf("account deleted, list refresh failed: %w", err)
	}
	return nil
}

func (s *Accounts) mapRows(accounts []api.Account) []AccountRow {
	rows := make([]AccountRow, 0, len(accounts))
	for i, acc := range accounts {
		balance, err := money.ParseBalance(acc.Balance.String())
		if err != nil {
			log.Printf("accounts: unparseable balance %q on account %d", acc.Balance, acc.ID)
			balance = 0
		}
		status := acc.Status
		if status == "" {
			status = "Active"
		}
		rows = append(rows, AccountRow{
			Serial:        i + 1,
			ID:            acc.ID,
			AccountNumber: acc.AccountNumber,
			AccountType:   acc.AccountType,
			Balance:       money.Format(s.symbol, balance),
			Currency:      acc.Currency,
			Status:        status,
		})
	}
	return rows
}
