package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"netbank/internal/money"
	"netbank/internal/nav"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

func (a *App) View() string {
	var body string
	switch a.page {
	case nav.PageLogin:
		body = a.renderLogin()
	case nav.PageRegister:
		body = a.renderRegister()
	case nav.PageAccounts:
		body = a.renderAccounts()
	case nav.PageCard:
		body = a.renderCards()
	case pageCardApply:
		body = a.renderForm("Apply for a Card", a.cardForm, "[enter] Submit  [esc] Back")
	case nav.PageNewAccount:
		body = a.renderForm("Open New Account", a.accountForm, "[enter] Create  [esc] Back")
	case nav.PageFundTransfer:
		body = a.renderForm("Fund Transfer", a.transferForm, "[enter] Send  [esc] Back")
	case nav.PageTransactions:
		body = a.renderTransactions()
	case nav.PageProfile:
		body = a.renderForm("Profile", a.profileForm, "[enter] Save  [esc] Back")
	default:
		body = a.renderDashboard()
	}
	if a.loading {
		body += "\n" + a.spin.View() + "loading..."
	}
	if a.confirmText != "" {
		body += "\n\n" + titleStyle.Render("Confirm") + "\n" + a.confirmText + "  [y] Yes  [n] No"
	}
	if a.status != "" {
		if a.statusIsError {
			body += "\n" + errorStyle.Render(a.status)
		} else {
			body += "\n" + statusStyle.Render(a.status)
		}
	}
	return body
}

func (a *App) renderLogin() string {
	title := titleStyle.Render("NetBank Sign In")
	out := title + "\n"
	for _, in := range a.loginForm.inputs {
		out += in.View() + "\n"
	}
	out += "[enter] Sign in  [ctrl+r] Register  [ctrl+c] Quit"
	return out
}

func (a *App) renderRegister() string {
	title := titleStyle.Render("Create Account")
	out := title + "\n"
	for _, in := range a.registerForm.inputs {
		out += in.View() + "\n"
	}
	out += "[enter] Register  [esc] Back to sign in"
	return out
}

func (a *App) renderForm(heading string, f form, hints string) string {
	out := titleStyle.Render(heading) + "\n"
	for _, in := range f.inputs {
		out += in.View() + "\n"
	}
	return out + hints
}

func (a *App) renderDashboard() string {
	title := titleStyle.Render("NetBank Dashboard")
	sum := a.summary
	body := fmt.Sprintf("Accounts: %d  Total balance: %s\nRecent transactions: %d  Active cards: %d",
		sum.TotalAccounts,
		money.Format(a.cfg.UI.CurrencySymbol, sum.TotalBalance),
		sum.RecentActivity,
		sum.ActiveCards)
	body += "\n[a] Accounts  [c] Cards  [n] New account  [f] Transfer  [p] Profile  [r] Refresh  [x] Sign out  [q] Quit"
	return fmt.Sprintf("%s\n%s", title, body)
}

func (a *App) renderAccounts() string {
	title := titleStyle.Render("Your Accounts")
	rows := a.stores.Accounts.Items()
	if len(rows) == 0 {
		return title + "\nNo accounts yet. Press [n] to open one.\n[esc] Dashboard  [q] Quit"
	}
	out := title + "\n"
	out += fmt.Sprintf("  %-4s %-16s %-10s %14s %8s\n", "#", "Number", "Type", "Balance", "Status")
	for i, r := range rows {
		marker := " "
		if i == a.accountCursor {
			marker = "▶"
		}
		out += fmt.Sprintf("%s %-4d %-16s %-10s %14s %8s\n", marker, r.Serial, r.AccountNumber, r.AccountType, r.Balance, r.Status)
	}
	out += "[t] Transactions  [d] Delete  [n] New account  [esc] Dashboard  [q] Quit"
	return out
}

func (a *App) renderCards() string {
	title := titleStyle.Render("Your Cards")
	rows := a.stores.Cards.Items()
	if len(rows) == 0 {
		return title + "\nNo cards yet. Press [w] to apply for one.\n[esc] Dashboard  [q] Quit"
	}
	out := title + "\n"
	for i, r := range rows {
		marker := " "
		if i == a.cardCursor {
			marker = "▶"
		}
		out += fmt.Sprintf("%s %-20s %-8s %-8s exp %s\n", marker, r.MaskedNumber, r.CardType, r.Status, r.ExpiryDate)
	}
	out += "[enter] Toggle status  [w] Apply  [d] Delete  [esc] Dashboard  [q] Quit"
	return out
}

func (a *App) renderTransactions() string {
	title := titleStyle.Render("Transaction History")
	txns := a.stores.Transactions.Items()
	if len(txns) == 0 {
		return title + "\nNo transactions for this account.\n[esc] Dashboard  [q] Quit"
	}
	out := title + "\n"
	for _, t := range txns {
		when := time.UnixMilli(t.Timestamp).Format("02 Jan 2006 15:04")
		amount := t.Amount.String()
		if v, err := money.ParseBalance(amount); err == nil {
			amount = money.Format(a.cfg.UI.CurrencySymbol, v)
		}
		out += fmt.Sprintf("%s  %-14s %14s  %s\n", when, t.Reference, amount, t.Description)
	}
	out += "[esc] Dashboard  [q] Quit"
	return out
}
