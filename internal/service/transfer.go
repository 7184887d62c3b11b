package service

import (
	"context"
	"strings"
	"sync"

	"netbank/internal/api"
	"netbank/internal/money"
	"netbank/internal/store"
)

// TransferState tracks one fund-transfer attempt.
type TransferState int

const (
	TransferIdle TransferState = iota
	TransferValidating
	TransferSubmitting
	TransferSucceeded
	TransferFailed
)

func (s TransferState) String() string {
	switch s {
	case TransferValidating:
		return "validating"
	case TransferSubmitting:
		return "submitting"
	case TransferSucceeded:
		return "succeeded"
	case TransferFailed:
		return "failed"
	default:
		return "idle"
	}
}

// TransferForm is what the user typed. Amount stays a string until
// validation parses it.
type TransferForm struct {
	FromAccountNumber string
	ToAccountNumber   string
	Amount            string
	Description       string
}

// Transfer runs the fund-transfer workflow:
// Idle → Validating → Submitting → Succeeded | Failed.
// A submit while one is in flight is rejected without a network call.
type Transfer struct {
	API *api.Client

	mu    sync.Mutex
	state TransferState
}

func (s *Transfer) State() TransferState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Transfer) setState(st TransferState) {
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
}

// Submit validates client-side, then issues exactly one POST. On
// success the server's transaction reference is returned and the form
// owner clears amount/description; on failure the server message is
// surfaced verbatim when present. Every exit path lands in a terminal
// state so the next submit can start fresh.
func (s *Transfer) Submit(ctx context.Context, form TransferForm) (api.TransferReceipt, error) {
	s.mu.Lock()
	if s.state == TransferSubmitting {
		s.mu.Unlock()
		return api.TransferReceipt{}, store.ErrBusy
	}
	s.state = TransferValidating
	s.mu.Unlock()

	if strings.TrimSpace(form.FromAccountNumber) == "" || strings.TrimSpace(form.ToAccountNumber) == "" {
		s.setState(TransferFailed)
		return api.TransferReceipt{}, api.Validation("please fill all required fields")
	}
	amount, err := money.ParseAmount(form.Amount)
	if err != nil {
		s.setState(TransferFailed)
		return api.TransferReceipt{}, api.Validation("enter a valid amount greater than 0")
	}

	s.setState(TransferSubmitting)
	receipt, err := s.API.Transfer(ctx, api.TransferInput{
		FromAccountNumber: form.FromAccountNumber,
		ToAccountNumber:   form.ToAccountNumber,
		Amount:            amount,
		Description:       form.Description,
	})
	if err != nil {
		s.setState(TransferFailed)
		return api.TransferReceipt{}, err
	}
	s.setState(TransferSucceeded)
	return receipt, nil
}
