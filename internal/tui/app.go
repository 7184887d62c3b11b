package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"netbank/internal/api"
	"netbank/internal/config"
	"netbank/internal/nav"
	"netbank/internal/service"
	"netbank/internal/session"
	"netbank/internal/store"
)

// App ties together views.
type App struct {
	ctx      context.Context
	cfg      config.Config
	sessions *session.Store
	stores   Stores
	services Services
	nav      *nav.Navigator
	frag     *nav.Fragment

	page          string
	status        string
	statusIsError bool
	spin          spinner.Model
	loading       bool

	summary       service.Summary
	user          api.User
	accountCursor int
	cardCursor    int
	txnAccountID  int64

	loginForm    form
	registerForm form
	transferForm form
	accountForm  form
	cardForm     form
	profileForm  form

	// confirm modal, armed by keys that mutate server state
	confirmText string
	confirmCmd  tea.Cmd
}

// pageCardApply is a local sub-view of the card page; it is not a
// navigation target.
const pageCardApply = "cardapply"

type Stores struct {
	Accounts     *store.Accounts
	Cards        *store.Cards
	Transactions *store.Transactions
}

type Services struct {
	Auth      *service.Auth
	Dashboard *service.Dashboard
	Transfer  *service.Transfer
	Cards     *service.CardApplication
	Profile   *service.Profile
}

func New(ctx context.Context, cfg config.Config, sessions *session.Store, stores Stores, services Services) *App {
	frag := &nav.Fragment{}
	a := &App{
		ctx:      ctx,
		cfg:      cfg,
		sessions: sessions,
		stores:   stores,
		services: services,
		frag:     frag,
		page:     nav.PageLogin,
	}
	a.nav = nav.New(a, nil, frag)
	a.spin = spinner.New()
	a.spin.Spinner = spinner.Dot
	if sessions.Load().Authenticated() {
		a.page = nav.PageDashboard
	}
	a.loginForm = newForm(fieldSpec{label: "username"}, fieldSpec{label: "password", secret: true})
	a.registerForm = newForm(
		fieldSpec{label: "first name"},
		fieldSpec{label: "last name"},
		fieldSpec{label: "username"},
		fieldSpec{label: "email"},
		fieldSpec{label: "phone"},
		fieldSpec{label: "address"},
		fieldSpec{label: "password", secret: true},
		fieldSpec{label: "confirm password", secret: true},
	)
	a.transferForm = newForm(
		fieldSpec{label: "from account"},
		fieldSpec{label: "to account"},
		fieldSpec{label: "amount"},
		fieldSpec{label: "remarks"},
	)
	a.accountForm = newForm(
		fieldSpec{label: "account type (SAVINGS/CURRENT)"},
		fieldSpec{label: "opening deposit"},
	)
	a.cardForm = newForm(
		fieldSpec{label: "card type (DEBIT/CREDIT)"},
		fieldSpec{label: "account number"},
	)
	a.profileForm = newForm(
		fieldSpec{label: "first name"},
		fieldSpec{label: "last name"},
		fieldSpec{label: "email"},
		fieldSpec{label: "phone"},
		fieldSpec{label: "address"},
	)
	return a
}

// Navigate switches the visible page. Unknown targets are an error so
// the navigator can fall back to the location fragment.
func (a *App) Navigate(target string) error {
	switch target {
	case nav.PageDashboard, nav.PageAccounts, nav.PageCard, nav.PageNewAccount,
		nav.PageFundTransfer, nav.PageTransactions, nav.PageProfile,
		nav.PageLogin, nav.PageRegister:
		a.page = target
		return nil
	}
	return fmt.Errorf("unknown page %q", target)
}

func (a *App) Init() tea.Cmd {
	if a.page == nav.PageDashboard {
		return a.run(a.refreshDashboardCmd())
	}
	return nil
}

// run wraps a command that hits the network so the spinner ticks while
// it is out.
func (a *App) run(cmd tea.Cmd) tea.Cmd {
	if cmd == nil {
		return nil
	}
	a.loading = true
	return tea.Batch(cmd, a.spin.Tick)
}

// goTo navigates then returns whatever the destination page needs
// loaded on entry.
func (a *App) goTo(page string) tea.Cmd {
	a.nav.GoTo(page)
	a.status = ""
	a.statusIsError = false
	switch a.page {
	case nav.PageDashboard:
		return a.run(a.refreshDashboardCmd())
	case nav.PageAccounts:
		return a.run(a.loadAccountsCmd())
	case nav.PageCard:
		return a.run(a.loadCardsCmd())
	case nav.PageTransactions:
		return a.run(a.loadTransactionsCmd(a.txnAccountID))
	case nav.PageProfile:
		return a.run(a.loadProfileCmd())
	}
	return nil
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg.(type) {
	case tea.KeyMsg, spinner.TickMsg, tea.WindowSizeMsg:
	default:
		// anything else is a result coming back from a command
		a.loading = false
	}

	switch m := msg.(type) {
	case tea.KeyMsg:
		return a.handleKey(m)

	case spinner.TickMsg:
		if !a.loading {
			return a, nil
		}
		var cmd tea.Cmd
		a.spin, cmd = a.spin.Update(m)
		return a, cmd

	case errMsg:
		a.setError(m.err)
	case loggedInMsg:
		a.loginForm.reset()
		return a, a.goTo(nav.PageDashboard)
	case loggedOutMsg:
		a.summary = service.Summary{}
		return a, a.goTo(nav.PageLogin)
	case registeredMsg:
		a.registerForm.reset()
		a.setStatus("registered, please log in")
		return a, a.goTo(nav.PageLogin)

	case dashboardMsg:
		a.summary = m.sum
		a.reportLegErrors(m.sum)
	case accountsLoadedMsg:
		if m.err != nil {
			a.stores.Accounts.LoadFallback()
			a.setError(m.err)
		}
		a.clampCursors()
	case accountCreatedMsg:
		if m.err != nil {
			a.setError(m.err)
		} else {
			a.accountForm.reset()
			a.setStatus("account created")
			return a, a.goTo(nav.PageAccounts)
		}
	case accountRemovedMsg:
		if m.err != nil {
			a.setError(m.err)
		} else {
			a.setStatus("account deleted")
		}
		a.clampCursors()
	case cardsLoadedMsg:
		if m.err != nil {
			a.setError(m.err)
		}
		a.clampCursors()
	case cardToggledMsg:
		if m.err != nil {
			a.setError(m.err)
		} else if m.status != "" {
			a.setStatus("card is now " + m.status)
		}
	case cardRemovedMsg:
		if m.err != nil {
			a.setError(m.err)
		} else {
			a.setStatus("card deleted")
		}
		a.clampCursors()
	case cardAppliedMsg:
		if m.err != nil {
			a.setError(m.err)
		} else {
			a.cardForm.reset()
			a.setStatus("card application accepted")
			return a, a.goTo(nav.PageCard)
		}
	case transactionsLoadedMsg:
		if m.err != nil {
			a.setError(m.err)
		}
	case transferDoneMsg:
		if m.err != nil {
			a.setError(m.err)
		} else {
			a.transferForm.reset()
			a.setStatus("transfer complete, ref " + m.receipt.TransactionReference)
		}
	case profileLoadedMsg:
		if m.err != nil {
			a.setError(m.err)
		} else {
			a.user = m.user
			a.profileForm.inputs[0].SetValue(m.user.FirstName)
			a.profileForm.inputs[1].SetValue(m.user.LastName)
			a.profileForm.inputs[2].SetValue(m.user.Email)
			a.profileForm.inputs[3].SetValue(m.user.PhoneNumber)
			a.profileForm.inputs[4].SetValue(m.user.Address)
		}
	case profileSavedMsg:
		if m.err != nil {
			a.setError(m.err)
		} else {
			a.setStatus("profile saved")
		}
	}
	return a, nil
}

func (a *App) handleKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.String() == "ctrl+c" {
		return a, tea.Quit
	}
	if a.confirmText != "" {
		return a.handleConfirmKey(m)
	}
	switch a.page {
	case nav.PageLogin:
		return a.handleLoginKey(m)
	case nav.PageRegister:
		return a.handleRegisterKey(m)
	case nav.PageFundTransfer:
		return a.handleFormKey(m, &a.transferForm, a.submitTransfer)
	case nav.PageNewAccount:
		return a.handleFormKey(m, &a.accountForm, a.submitNewAccount)
	case nav.PageProfile:
		return a.handleProfileKey(m)
	case pageCardApply:
		return a.handleFormKey(m, &a.cardForm, a.submitCardApplication)
	}
	return a.handleBrowseKey(m)
}

func (a *App) handleConfirmKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "y", "Y", "enter":
		cmd := a.confirmCmd
		a.confirmText, a.confirmCmd = "", nil
		return a, a.run(cmd)
	case "n", "N", "esc":
		a.confirmText, a.confirmCmd = "", nil
	}
	return a, nil
}

func (a *App) handleLoginKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "tab", "down":
		a.loginForm.next()
		return a, nil
	case "shift+tab", "up":
		a.loginForm.prev()
		return a, nil
	case "ctrl+r":
		return a, a.goTo(nav.PageRegister)
	case "enter":
		v := a.loginForm.values()
		a.setStatus("signing in...")
		return a, a.run(a.loginCmd(v[0], v[1]))
	}
	return a, a.loginForm.Update(m)
}

func (a *App) handleRegisterKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "tab", "down":
		a.registerForm.next()
		return a, nil
	case "shift+tab", "up":
		a.registerForm.prev()
		return a, nil
	case "esc":
		return a, a.goTo(nav.PageLogin)
	case "enter":
		v := a.registerForm.values()
		in := api.RegisterInput{
			FirstName:   v[0],
			LastName:    v[1],
			Username:    v[2],
			Email:       v[3],
			PhoneNumber: v[4],
			Address:     v[5],
			Password:    v[6],
		}
		return a, a.run(a.registerCmd(in, v[7]))
	}
	return a, a.registerForm.Update(m)
}

func (a *App) handleFormKey(m tea.KeyMsg, f *form, submit func() tea.Cmd) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "tab", "down":
		f.next()
		return a, nil
	case "shift+tab", "up":
		f.prev()
		return a, nil
	case "esc":
		return a, a.goTo(nav.PageDashboard)
	case "enter":
		return a, a.run(submit())
	}
	return a, f.Update(m)
}

func (a *App) handleProfileKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "tab", "down":
		a.profileForm.next()
		return a, nil
	case "shift+tab", "up":
		a.profileForm.prev()
		return a, nil
	case "esc":
		return a, a.goTo(nav.PageDashboard)
	case "enter":
		v := a.profileForm.values()
		return a, a.run(a.saveProfileCmd(api.ProfileInput{
			FirstName:   v[0],
			LastName:    v[1],
			Email:       v[2],
			PhoneNumber: v[3],
			Address:     v[4],
		}))
	}
	return a, a.profileForm.Update(m)
}

// handleBrowseKey serves the dashboard and the list pages.
func (a *App) handleBrowseKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "q":
		return a, tea.Quit
	case "esc", "h":
		if a.page != nav.PageDashboard {
			return a, a.goTo(nav.PageDashboard)
		}
	case "a":
		return a, a.goTo(nav.PageAccounts)
	case "c":
		return a, a.goTo(nav.PageCard)
	case "n":
		return a, a.goTo(nav.PageNewAccount)
	case "f":
		return a, a.goTo(nav.PageFundTransfer)
	case "p":
		return a, a.goTo(nav.PageProfile)
	case "r":
		return a, a.goTo(a.page)
	case "x":
		return a, a.run(a.logoutCmd())
	case "up", "k":
		a.moveCursor(-1)
	case "down", "j":
		a.moveCursor(1)
	case "t":
		if a.page == nav.PageAccounts {
			if rows := a.stores.Accounts.Items(); len(rows) > 0 {
				a.txnAccountID = rows[a.accountCursor].ID
				return a, a.goTo(nav.PageTransactions)
			}
		}
	case "enter", " ":
		if a.page == nav.PageCard {
			if rows := a.stores.Cards.Items(); len(rows) > 0 {
				id := rows[a.cardCursor].ID
				return a, a.run(a.toggleCardCmd(id))
			}
		}
	case "w":
		if a.page == nav.PageCard {
			a.cardForm.reset()
			a.page = pageCardApply
			return a, nil
		}
	case "d":
		return a.armDelete()
	}
	return a, nil
}

// armDelete shows the confirm modal for the row under the cursor.
func (a *App) armDelete() (tea.Model, tea.Cmd) {
	switch a.page {
	case nav.PageAccounts:
		rows := a.stores.Accounts.Items()
		if len(rows) == 0 {
			return a, nil
		}
		row := rows[a.accountCursor]
		a.confirmText = fmt.Sprintf("Delete account %s?", row.AccountNumber)
		a.confirmCmd = a.removeAccountCmd(row.ID)
	case nav.PageCard:
		rows := a.stores.Cards.Items()
		if len(rows) == 0 {
			return a, nil
		}
		row := rows[a.cardCursor]
		a.confirmText = fmt.Sprintf("Delete card %s?", row.MaskedNumber)
		a.confirmCmd = a.removeCardCmd(row.ID)
	}
	return a, nil
}

func (a *App) submitTransfer() tea.Cmd {
	v := a.transferForm.values()
	return a.transferCmd(service.TransferForm{
		FromAccountNumber: strings.TrimSpace(v[0]),
		ToAccountNumber:   strings.TrimSpace(v[1]),
		Amount:            strings.TrimSpace(v[2]),
		Description:       strings.TrimSpace(v[3]),
	})
}

func (a *App) submitNewAccount() tea.Cmd {
	v := a.accountForm.values()
	accountType := strings.ToUpper(strings.TrimSpace(v[0]))
	deposit, err := strconv.ParseFloat(strings.TrimSpace(v[1]), 64)
	if err != nil || deposit < 0 {
		a.setError(api.Validation("enter a valid opening deposit"))
		return nil
	}
	return a.createAccountCmd(accountType, deposit, "INR")
}

func (a *App) submitCardApplication() tea.Cmd {
	v := a.cardForm.values()
	cardType := strings.ToUpper(strings.TrimSpace(v[0]))
	number := strings.TrimSpace(v[1])
	var accountID int64
	if rows := a.stores.Accounts.Items(); len(rows) > 0 {
		for _, r := range rows {
			if r.AccountNumber == number {
				accountID = r.ID
				break
			}
		}
	}
	return a.applyCardCmd(cardType, accountID, number)
}

func (a *App) moveCursor(delta int) {
	switch a.page {
	case nav.PageAccounts:
		a.accountCursor = clamp(a.accountCursor+delta, len(a.stores.Accounts.Items()))
	case nav.PageCard:
		a.cardCursor = clamp(a.cardCursor+delta, len(a.stores.Cards.Items()))
	}
}

func (a *App) clampCursors() {
	a.accountCursor = clamp(a.accountCursor, len(a.stores.Accounts.Items()))
	a.cardCursor = clamp(a.cardCursor, len(a.stores.Cards.Items()))
}

func clamp(i, n int) int {
	if n == 0 {
		return 0
	}
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

func (a *App) setStatus(s string) {
	a.status = s
	a.statusIsError = false
}

func (a *App) setError(err error) {
	if err == nil {
		return
	}
	a.status = err.Error()
	a.statusIsError = true
	if api.IsKind(err, api.KindUnauthenticated) {
		a.page = nav.PageLogin
	}
}

func (a *App) reportLegErrors(sum service.Summary) {
	var parts []string
	if sum.AccountsErr != nil {
		parts = append(parts, "accounts: "+sum.AccountsErr.Error())
	}
	if sum.ActivityErr != nil {
		parts = append(parts, "activity: "+sum.ActivityErr.Error())
	}
	if sum.CardsErr != nil {
		parts = append(parts, "cards: "+sum.CardsErr.Error())
	}
	if len(parts) > 0 {
		a.setError(fmt.Errorf("%s", strings.Join(parts, "; ")))
	}
	if sum.AccountsErr != nil && api.IsKind(sum.AccountsErr, api.KindUnauthenticated) {
		a.page = nav.PageLogin
	}
}
