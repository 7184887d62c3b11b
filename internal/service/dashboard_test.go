package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"netbank/internal/api"
	"netbank/internal/session"
)

type fakeSession struct{}

func (fakeSession) Current() session.Session {
	return session.Session{Token: "tok", TokenType: "Bearer"}
}

func newClient(t *testing.T, handler http.Handler) *api.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return api.New(srv.URL, fakeSession{})
}

func TestDashboardAggregates(t *testing.T) {
	t.Parallel()

	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/accounts/user":
			w.Write([]byte(`[
				{"id":1,"accountNumber":"a1","accountType":"SAVINGS","balance":"500.00","currency":"INR"},
				{"id":2,"accountNumber":"a2","accountType":"CURRENT","balance":"250.50","currency":"INR"}
			]`))
		case "/api/transactions/account/1":
			w.Write([]byte(`[
				{"transactionReference":"T1","accountId":1,"amount":"1","timestamp":1},
				{"transactionReference":"T2","accountId":1,"amount":"2","timestamp":2},
				{"transactionReference":"T3","accountId":1,"amount":"3","timestamp":3},
				{"transactionReference":"T4","accountId":1,"amount":"4","timestamp":4},
				{"transactionReference":"T5","accountId":1,"amount":"5","timestamp":5},
				{"transactionReference":"T6","accountId":1,"amount":"6","timestamp":6},
				{"transactionReference":"T7","accountId":1,"amount":"7","timestamp":7}
			]`))
		case "/api/cards/user":
			w.Write([]byte(`[
				{"id":1,"status":"ACTIVE"},
				{"id":2,"status":"INACTIVE"},
				{"id":3,"status":"ACTIVE"}
			]`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))

	sum := (&Dashboard{API: client}).Refresh(context.Background())
	require.NoError(t, sum.AccountsErr)
	require.NoError(t, sum.ActivityErr)
	require.NoError(t, sum.CardsErr)
	require.Equal(t, 2, sum.TotalAccounts)
	require.InDelta(t, 750.50, sum.TotalBalance, 1e-9)
	require.Equal(t, 5, sum.RecentActivity, "recent activity caps at 5")
	require.Equal(t, 2, sum.ActiveCards)
}

func TestDashboardZeroAccountsSkipsTransactions(t *testing.T) {
	t.Parallel()

	var txnCalls atomic.Int32
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/accounts/user":
			w.Write([]byte(`[]`))
		case "/api/cards/user":
			w.Write([]byte(`[]`))
		default:
			txnCalls.Add(1)
			w.Write([]byte(`[]`))
		}
	}))

	sum := (&Dashboard{API: client}).Refresh(context.Background())
	require.Zero(t, txnCalls.Load(), "no transactions fetch for a zero-account user")
	require.Zero(t, sum.RecentActivity)
	require.Zero(t, sum.TotalAccounts)
	require.Zero(t, sum.TotalBalance)
}

func TestDashboardLegsFailIndependently(t *testing.T) {
	t.Parallel()

	t.Run("cards fail, activity survives", func(t *testing.T) {
		t.Parallel()
		client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/api/accounts/user":
				w.Write([]byte(`[{"id":1,"accountNumber":"a1","accountType":"SAVINGS","balance":"100","currency":"INR"}]`))
			case "/api/transactions/account/1":
				w.Write([]byte(`[{"transactionReference":"T1","accountId":1,"amount":"1","timestamp":1}]`))
			case "/api/cards/user":
				w.WriteHeader(http.StatusInternalServerError)
			}
		}))
		sum := (&Dashboard{API: client}).Refresh(context.Background())
		require.Error(t, sum.CardsErr)
		require.NoError(t, sum.ActivityErr)
		require.Equal(t, 1, sum.RecentActivity)
		require.Zero(t, sum.ActiveCards)
	})

	t.Run("transactions fail, cards survive", func(t *testing.T) {
		t.Parallel()
		client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/api/accounts/user":
				w.Write([]byte(`[{"id":1,"accountNumber":"a1","accountType":"SAVINGS","balance":"100","currency":"INR"}]`))
			case "/api/transactions/account/1":
				w.WriteHeader(http.StatusBadGateway)
			case "/api/cards/user":
				w.Write([]byte(`[{"id":1,"status":"ACTIVE"}]`))
			}
		}))
		sum := (&Dashboard{API: client}).Refresh(context.Background())
		require.Error(t, sum.ActivityErr)
		require.NoError(t, sum.CardsErr)
		require.Equal(t, 1, sum.ActiveCards)
		require.InDelta(t, 100.0, sum.TotalBalance, 1e-9)
	})
}

func TestDashboardUnparseableBalanceCountsZero(t *testing.T) {
	t.Parallel()

	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/accounts/user":
			w.Write([]byte(`[
				{"id":1,"accountNumber":"a1","accountType":"SAVINGS","balance":"garbage","currency":"INR"},
				{"id":2,"accountNumber":"a2","accountType":"CURRENT","balance":"250.50","currency":"INR"}
			]`))
		case "/api/transactions/account/1":
			w.Write([]byte(`[]`))
		case "/api/cards/user":
			w.Write([]byte(`[]`))
		}
	}))

	sum := (&Dashboard{API: client}).Refresh(context.Background())
	require.NoError(t, sum.AccountsErr)
	require.InDelta(t, 250.50, sum.TotalBalance, 1e-9)
}

func TestDashboardTransactionsUseFirstAccountOnly(t *testing.T) {
	t.Parallel()

	var txnPaths []string
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/accounts/user":
			w.Write([]byte(`[
				{"id":4,"accountNumber":"a4","accountType":"SAVINGS","balance":"1","currency":"INR"},
				{"id":9,"accountNumber":"a9","accountType":"CURRENT","balance":"2","currency":"INR"}
			]`))
		case "/api/cards/user":
			w.Write([]byte(`[]`))
		default:
			txnPaths = append(txnPaths, r.URL.Path)
			w.Write([]byte(`[]`))
		}
	}))

	(&Dashboard{API: client}).Refresh(context.Background())
	require.Equal(t, []string{"/api/transactions/account/4"}, txnPaths)
}
