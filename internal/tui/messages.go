package tui

import (
	"netbank/internal/api"
	"netbank/internal/service"
	"netbank/internal/session"
)

// Every service/store call runs as a tea.Cmd and comes back as one of
// these. Errors ride inside the msg so the update loop owns all state
// transitions.

type errMsg struct{ err error }

type loggedInMsg struct{ sess session.Session }

type loggedOutMsg struct{}

type registeredMsg struct{}

type dashboardMsg struct{ sum service.Summary }

type accountsLoadedMsg struct{ err error }

type accountCreatedMsg struct {
	acc api.Account
	err error
}

type accountRemovedMsg struct{ err error }

type cardsLoadedMsg struct{ err error }

type cardToggledMsg struct {
	status string
	err    error
}

type cardRemovedMsg struct{ err error }

type cardAppliedMsg struct {
	card api.Card
	err  error
}

type transactionsLoadedMsg struct{ err error }

type transferDoneMsg struct {
	receipt api.TransferReceipt
	err     error
}

type profileLoadedMsg struct {
	user api.User
	err  error
}

type profileSavedMsg struct{ err error }
