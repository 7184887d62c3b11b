package service

import (
	"context"
	"strings"
	"sync"

	"netbank/internal/api"
	"netbank/internal/store"
)

// CardApplication runs the apply-for-card workflow. The applicant either
// picks a known account id or types an account number; a typed number is
// resolved to its id first, and the create call never fires when the
// resolution fails.
type CardApplication struct {
	API *api.Client

	mu   sync.Mutex
	busy bool
}

func (s *CardApplication) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

// Apply creates the card. accountID zero means "resolve accountNumber".
func (s *CardApplication) Apply(ctx context.Context, cardType string, accountID int64, accountNumber string) (api.Card, error) {
	if strings.TrimSpace(cardType) == "" {
		return api.Card{}, api.Validation("please select a card type")
	}
	accountNumber = strings.TrimSpace(accountNumber)
	if accountID == 0 && accountNumber == "" {
		return api.Card{}, api.Validation("please enter an account number to link this card")
	}

	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return api.Card{}, store.ErrBusy
	}
	s.busy = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.busy = false
		s.mu.Unlock()
	}()

	if accountID == 0 {
		account, err := s.API.AccountByNumber(ctx, accountNumber)
		if err != nil {
			return api.Card{}, err
		}
		if account.ID == 0 {
			return api.Card{}, &api.Error{Kind: api.KindServer, Message: "account lookup returned no id"}
		}
		accountID = account.ID
	}

	return s.API.CreateCard(ctx, cardType, accountID)
}
