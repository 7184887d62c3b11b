package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"netbank/internal/api"
	"netbank/internal/service"
)

func (a *App) loginCmd(username, password string) tea.Cmd {
	return func() tea.Msg {
		sess, err := a.services.Auth.Login(a.ctx, username, password)
		if err != nil {
			return errMsg{err}
		}
		return loggedInMsg{sess}
	}
}

func (a *App) registerCmd(in api.RegisterInput, confirm string) tea.Cmd {
	return func() tea.Msg {
		if err := a.services.Auth.Register(a.ctx, in, confirm); err != nil {
			return errMsg{err}
		}
		return registeredMsg{}
	}
}

func (a *App) logoutCmd() tea.Cmd {
	return func() tea.Msg {
		if err := a.services.Auth.Logout(); err != nil {
			return errMsg{err}
		}
		return loggedOutMsg{}
	}
}

func (a *App) refreshDashboardCmd() tea.Cmd {
	return func() tea.Msg {
		return dashboardMsg{a.services.Dashboard.Refresh(a.ctx)}
	}
}

func (a *App) loadAccountsCmd() tea.Cmd {
	return func() tea.Msg {
		return accountsLoadedMsg{a.stores.Accounts.Load(a.ctx)}
	}
}

func (a *App) createAccountCmd(accountType string, deposit float64, currency string) tea.Cmd {
	return func() tea.Msg {
		acc, err := a.stores.Accounts.Create(a.ctx, accountType, deposit, currency)
		return accountCreatedMsg{acc: acc, err: err}
	}
}

func (a *App) removeAccountCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		return accountRemovedMsg{a.stores.Accounts.Remove(a.ctx, id)}
	}
}

func (a *App) loadCardsCmd() tea.Cmd {
	return func() tea.Msg {
		return cardsLoadedMsg{a.stores.Cards.Load(a.ctx)}
	}
}

func (a *App) toggleCardCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		status, err := a.stores.Cards.Toggle(a.ctx, id)
		return cardToggledMsg{status: status, err: err}
	}
}

func (a *App) removeCardCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		return cardRemovedMsg{a.stores.Cards.Remove(a.ctx, id)}
	}
}

func (a *App) applyCardCmd(cardType string, accountID int64, accountNumber string) tea.Cmd {
	return func() tea.Msg {
		card, err := a.services.Cards.Apply(a.ctx, cardType, accountID, accountNumber)
		return cardAppliedMsg{card: card, err: err}
	}
}

func (a *App) loadTransactionsCmd(accountID int64) tea.Cmd {
	return func() tea.Msg {
		return transactionsLoadedMsg{
			a.stores.Transactions.LoadForAccount(a.ctx, accountID, a.cfg.UI.HistoryLimit),
		}
	}
}

func (a *App) transferCmd(form service.TransferForm) tea.Cmd {
	return func() tea.Msg {
		receipt, err := a.services.Transfer.Submit(a.ctx, form)
		return transferDoneMsg{receipt: receipt, err: err}
	}
}

func (a *App) loadProfileCmd() tea.Cmd {
	return func() tea.Msg {
		user, err := a.services.Profile.Load(a.ctx)
		return profileLoadedMsg{user: user, err: err}
	}
}

func (a *App) saveProfileCmd(in api.ProfileInput) tea.Cmd {
	return func() tea.Msg {
		return profileSavedMsg{a.services.Profile.Save(a.ctx, in)}
	}
}
