package store

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"netbank/internal/api"
	"netbank/internal/session"
)

type fakeSession struct{}

func (fakeSession) Current() session.Session {
	return session.Session{Token: "tok", TokenType: "Bearer"}
}

func confirmYes(string) bool { return true }

func confirmNo(string) bool { return false }

func newClient(t *testing.T, handler http.Handler) *api.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return api.New(srv.URL, fakeSession{})
}

func accountsJSON() string {
	return `[
		{"id":1,"accountNumber":"366698477834","accountType":"SAVINGS","balance":500.00,"currency":"INR","status":"Active"},
		{"id":2,"accountNumber":"366698477835","accountType":"CURRENT","balance":"250.50","currency":"INR"}
	]`
}

func TestAccountsLoadMapsAndFormats(t *testing.T) {
	t.Parallel()

	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(accountsJSON()))
	}))
	s := NewAccounts(client, confirmYes, "₹")
	require.NoError(t, s.Load(context.Background()))

	rows := s.Items()
	require.Len(t, rows, 2)
	require.Equal(t, 1, rows[0].Serial)
	require.Equal(t, int64(1), rows[0].ID)
	require.Equal(t, "₹500.00", rows[0].Balance)
	require.Equal(t, "₹250.50", rows[1].Balance)
	require.Equal(t, "Active", rows[1].Status, "missing status defaults to Active")
}

func TestAccountsLoadIsIdempotent(t *testing.T) {
	t.Parallel()

	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(accountsJSON()))
	}))
	s := NewAccounts(client, confirmYes, "₹")
	require.NoError(t, s.Load(context.Background()))
	first := s.Items()
	require.NoError(t, s.Load(context.Background()))
	require.Equal(t, first, s.Items())
}

func TestAccountsLoadFailureLeavesCollection(t *testing.T) {
	t.Parallel()

	var fail atomic.Bool
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(accountsJSON()))
	}))
	s := NewAccounts(client, confirmYes, "₹")
	require.NoError(t, s.Load(context.Background()))
	before := s.Items()

	fail.Store(true)
	err := s.Load(context.Background())
	require.Error(t, err)
	require.True(t, api.IsKind(err, api.KindServer))
	require.Equal(t, before, s.Items())
}

func TestAccountsFallbackIsExplicitAndDeterministic(t *testing.T) {
	t.Parallel()

	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	s := NewAccounts(client, confirmYes, "₹")
	require.Error(t, s.Load(context.Background()))
	require.Empty(t, s.Items(), "failed load must not swap in demo data by itself")

	s.LoadFallback()
	rows := s.Items()
	require.Len(t, rows, 2)
	require.Equal(t, "366698477834", rows[0].AccountNumber)
	require.Equal(t, "₹5,250.75", rows[1].Balance)
}

func TestAccountsUnparseableBalanceCountsAsZero(t *testing.T) {
	t.Parallel()

	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":1,"accountNumber":"x","accountType":"SAVINGS","balance":"oops","currency":"INR"}]`))
	}))
	s := NewAccounts(client, confirmYes, "₹")
	require.NoError(t, s.Load(context.Background()))
	require.Equal(t, "₹0.00", s.Items()[0].Balance)
}

func TestAccountsRemoveUnknownIDIssuesNoCall(t *testing.T) {
	t.Parallel()

	var deletes atomic.Int32
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			deletes.Add(1)
		}
		w.Write([]byte(accountsJSON()))
	}))
	s := NewAccounts(client, confirmYes, "₹")
	require.NoError(t, s.Load(context.Background()))

	err := s.Remove(context.Background(), 99)
	require.Error(t, err)
	require.True(t, api.IsKind(err, api.KindNotFound))
	require.Zero(t, deletes.Load())
	require.Equal(t, OpRolledBack, s.LastOp())
}

func TestAccountsRemoveDeclinedConfirmIsNoOp(t *testing.T) {
	t.Parallel()

	var deletes atomic.Int32
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			deletes.Add(1)
		}
		w.Write([]byte(accountsJSON()))
	}))
	s := NewAccounts(client, confirmNo, "₹")
	require.NoError(t, s.Load(context.Background()))

	require.NoError(t, s.Remove(context.Background(), 1))
	require.Zero(t, deletes.Load())
	require.Len(t, s.Items(), 2, "declined delete leaves the row")
}

func TestAccountsRemoveKeepsRowUntilServerConfirms(t *testing.T) {
	t.Parallel()

	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte(`{"message":"not allowed"}`))
			return
		}
		w.Write([]byte(accountsJSON()))
	}))
	s := NewAccounts(client, confirmYes, "₹")
	require.NoError(t, s.Load(context.Background()))

	err := s.Remove(context.Background(), 1)
	require.Error(t, err)
	require.True(t, api.IsKind(err, api.KindForbidden))
	require.Len(t, s.Items(), 2, "failed delete must not drop the row")
	require.Equal(t, OpRolledBack, s.LastOp())
}

func TestAccountsRemoveSuccessReconciles(t *testing.T) {
	t.Parallel()

	var deleted atomic.Bool
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodDelete:
			require.Equal(t, "/api/accounts/1", r.URL.Path, "delete addresses the backend id")
			deleted.Store(true)
			w.Write([]byte(`{}`))
		default:
			if deleted.Load() {
				w.Write([]byte(`[{"id":2,"accountNumber":"366698477835","accountType":"CURRENT","balance":"250.50","currency":"INR"}]`))
				return
			}
			w.Write([]byte(accountsJSON()))
		}
	}))
	s := NewAccounts(client, confirmYes, "₹")
	require.NoError(t, s.Load(context.Background()))

	require.NoError(t, s.Remove(context.Background(), 1))
	rows := s.Items()
	require.Len(t, rows, 1)
	require.Equal(t, int64(2), rows[0].ID)
	require.Equal(t, OpCommitted, s.LastOp())
}

func TestAccountsMutationGuardRejectsConcurrentCalls(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	var deletes atomic.Int32
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			deletes.Add(1)
			<-release
			w.Write([]byte(`{}`))
			return
		}
		w.Write([]byte(accountsJSON()))
	}))
	s := NewAccounts(client, confirmYes, "₹")
	require.NoError(t, s.Load(context.Background()))

	firstDone := make(chan error, 1)
	go func() { firstDone <- s.Remove(context.Background(), 1) }()

	// wait until the first delete is holding the guard
	require.Eventually(t, s.Busy, 2*time.Second, 10*time.Millisecond)

	err := s.Remove(context.Background(), 2)
	require.ErrorIs(t, err, ErrBusy)
	_, createErr := s.Create(context.Background(), api.AccountSavings, 1000, "INR")
	require.ErrorIs(t, createErr, ErrBusy)
	require.Equal(t, int32(1), deletes.Load(), "no second mutating call while one is in flight")

	close(release)
	require.NoError(t, <-firstDone)
}

func TestAccountsCreateReconcilesWithFullLoad(t *testing.T) {
	t.Parallel()

	var created atomic.Bool
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			require.Equal(t, "SAVINGS", r.URL.Query().Get("accountType"))
			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			require.Equal(t, "SAVINGS", body["accountType"])
			require.InDelta(t, 1000.0, body["balance"], 1e-9)
			created.Store(true)
			// deliberately partial response: reconcile must not trust it
			w.Write([]byte(`{"id":3}`))
			return
		}
		if created.Load() {
			w.Write([]byte(`[
				{"id":1,"accountNumber":"366698477834","accountType":"SAVINGS","balance":500.00,"currency":"INR"},
				{"id":2,"accountNumber":"366698477835","accountType":"CURRENT","balance":"250.50","currency":"INR"},
				{"id":3,"accountNumber":"366698477836","accountType":"SAVINGS","balance":1000,"currency":"INR"}
			]`))
			return
		}
		w.Write([]byte(accountsJSON()))
	}))
	s := NewAccounts(client, confirmYes, "₹")
	require.NoError(t, s.Load(context.Background()))

	acc, err := s.Create(context.Background(), api.AccountSavings, 1000, "INR")
	require.NoError(t, err)
	require.Equal(t, int64(3), acc.ID)
	require.Len(t, s.Items(), 3, "collection reflects the server list, not the create response")
}
