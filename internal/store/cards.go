package store

import (
	"context"
	"fmt"
	"strings"

	"netbank/internal/api"
)

// CardRow is a card shaped for display. The number is masked on ingest;
// the full number never leaves the api layer.
type CardRow struct {
	ID             int64
	MaskedNumber   string
	CardHolderName string
	CardType       string
	ExpiryDate     string
	Status         string
	AccountID      int64
}

// Cards owns the in-memory card list.
type Cards struct {
	api     *api.Client
	confirm ConfirmFunc

	guard inflight
	list  collection[CardRow]
}

func NewCards(client *api.Client, confirm ConfirmFunc) *Cards {
	return &Cards{api: client, confirm: confirm}
}

// Load replaces the collection with the server's current list.
func (s *Cards) Load(ctx context.Context) error {
	cards, err := s.api.ListCards(ctx)
	if err != nil {
		return err
	}
	rows := make([]CardRow, 0, len(cards))
	for _, c := range cards {
		rows = append(rows, CardRow{
			ID:             c.ID,
			MaskedNumber:   MaskCardNumber(c.CardNumber),
			CardHolderName: c.CardHolderName,
			CardType:       c.CardType,
			ExpiryDate:     c.ExpiryDate,
			Status:         c.Status,
			AccountID:      c.AccountID,
		})
	}
	s.list.replace(rows)
	return nil
}

// Items returns a display snapshot.
func (s *Cards) Items() []CardRow { return s.list.snapshot() }

func (s *Cards) Busy() bool      { return s.guard.Busy() }
func (s *Cards) LastOp() OpState { return s.guard.LastOp() }

// Toggle flips a card between ACTIVE and INACTIVE. After the server
// confirms, only that card's status field changes; position and every
// other field stay put so UI selection survives the update.
func (s *Cards) Toggle(ctx context.Context, id int64) (string, error) {
	if err := s.guard.begin(); err != nil {
		return "", err
	}
	card, ok := s.list.find(func(c CardRow) bool { return c.ID == id })
	if !ok {
		s.guard.abort()
		return "", api.NotFound("card %d is not in the current list", id)
	}
	next := api.CardInactive
	if card.Status == api.CardInactive {
		next = api.CardActive
	}
	if !s.confirm(fmt.Sprintf("Are you sure you want to %s this card?", strings.ToLower(next))) {
		s.guard.abort()
		return "", nil
	}
	if err := s.api.SetCardStatus(ctx, id, next); err != nil {
		s.guard.end(false)
		return "", err
	}
	s.list.updateWhere(
		func(c CardRow) bool { return c.ID == id },
		func(c *CardRow) { c.Status = next },
	)
	s.guard.end(true)
	return next, nil
}

// Remove deletes a card after confirmation. Same discipline as account
// removal: confirmed server delete first, local removal second.
func (s *Cards) Remove(ctx context.Context, id int64) error {
	if err := s.guard.begin(); err != nil {
		return err
	}
	if _, ok := s.list.find(func(c CardRow) bool { return c.ID == id }); !ok {
		s.guard.abort()
		return api.NotFound("card %d is not in the current list", id)
	}
	if !s.confirm("Are you sure you want to delete this card?") {
		s.guard.abort()
		return nil
	}
	if err := s.api.DeleteCard(ctx, id); err != nil {
		s.guard.end(false)
		return err
	}
	s.list.removeWhere(func(c CardRow) bool { return c.ID == id })
	s.guard.end(true)
	return nil
}

// ActiveCount counts cards with status ACTIVE.
func (s *Cards) ActiveCount() int {
	n := 0
	for _, c := range s.list.snapshot() {
		if c.Status == api.CardActive {
			n++
		}
	}
	return n
}

// MaskCardNumber keeps the last four digits: "**** **** **** 7834".
// Inputs shorter than four characters come back unchanged.
func MaskCardNumber(number string) string {
	cleaned := strings.ReplaceAll(number, " ", "")
	if len(cleaned) < 4 {
		return number
	}
	return "**** **** **** " + cleaned[len(cleaned)-4:]
}
