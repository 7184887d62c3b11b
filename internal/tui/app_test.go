package tui

import (
	"testing"

	"github.com/stretchr/testify/require"

	"netbank/internal/nav"
)

func TestNavigateAcceptsEveryPage(t *testing.T) {
	a := &App{}
	pages := []string{
		nav.PageDashboard, nav.PageAccounts, nav.PageCard, nav.PageNewAccount,
		nav.PageFundTransfer, nav.PageTransactions, nav.PageProfile,
		nav.PageLogin, nav.PageRegister,
	}
	for _, p := range pages {
		require.NoError(t, a.Navigate(p))
		require.Equal(t, p, a.page)
	}
}

func TestNavigateRejectsUnknownTarget(t *testing.T) {
	a := &App{page: nav.PageDashboard}
	require.Error(t, a.Navigate("billpay"))
	require.Equal(t, nav.PageDashboard, a.page)
}

func TestNavigatorFallsBackToFragmentForUnknownTarget(t *testing.T) {
	a := &App{}
	frag := &nav.Fragment{}
	n := nav.New(a, nil, frag)

	n.GoTo(nav.PageAccounts)
	require.Equal(t, nav.PageAccounts, a.page)
	require.Equal(t, "", frag.Current())

	n.GoTo("billpay")
	require.Equal(t, nav.PageAccounts, a.page)
	require.Equal(t, "#/billpay", frag.Current())
}

func TestClampKeepsCursorInRange(t *testing.T) {
	require.Equal(t, 0, clamp(3, 0))
	require.Equal(t, 0, clamp(-1, 5))
	require.Equal(t, 4, clamp(9, 5))
	require.Equal(t, 2, clamp(2, 5))
}
