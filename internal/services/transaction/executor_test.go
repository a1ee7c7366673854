package transaction_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teller/internal/bank"
	"teller/internal/domain"
	accountsvc "teller/internal/services/account"
	feesvc "teller/internal/services/fees"
	sessionsvc "teller/internal/services/session"
	"teller/internal/services/transaction"
	"teller/internal/store"
)

// testBackend is a scriptable banking API: accounts and commit responses
// can be swapped mid-test, and every fetch/commit is recorded in order.
type testBackend struct {
	mu     sync.Mutex
	events []string

	accountsJSON   string
	accountsStatus int

	commitStatus int
	commitJSON   string

	chargesJSON string // empty means the fee endpoints are down
}

func (b *testBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch {
	case r.URL.Path == "/login":
		w.Write([]byte(`{"data":{"token":"tok","customerId":7}}`))

	case strings.HasSuffix(r.URL.Path, "/accounts"):
		b.events = append(b.events, "fetch")
		if b.accountsStatus != 0 {
			w.WriteHeader(b.accountsStatus)
			w.Write([]byte(`{"message":"accounts unavailable"}`))
			return
		}
		w.Write([]byte(b.accountsJSON))

	case r.URL.Path == "/charges" || r.URL.Path == "/transactionCosts":
		if b.chargesJSON == "" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(b.chargesJSON))

	case r.URL.Path == "/deposit" || r.URL.Path == "/withdraw" || r.URL.Path == "/transferFunds":
		b.events = append(b.events, "commit"+r.URL.Path)
		if b.commitStatus != 0 {
			w.WriteHeader(b.commitStatus)
		}
		w.Write([]byte(b.commitJSON))

	default:
		http.NotFound(w, r)
	}
}

func (b *testBackend) script(f func(*testBackend)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	f(b)
}

func (b *testBackend) commits() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, e := range b.events {
		if strings.HasPrefix(e, "commit") {
			n++
		}
	}
	return n
}

func (b *testBackend) eventLog() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.events...)
}

func (b *testBackend) resetEvents() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = nil
}

type fixture struct {
	backend  *testBackend
	creds    *sessionsvc.Credentials
	sessions *sessionsvc.Service
	accounts *accountsvc.Service
	exec     *transaction.Executor
}

// newFixture wires real components over the scriptable backend, logs in,
// and warms the account cache.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	backend := &testBackend{
		accountsJSON: `{"data":[
			{"accountNumber":"001","accountType":"Savings","balance":400},
			{"accountNumber":"002","accountType":"Current","balance":50}
		]}`,
		commitJSON:  `{"message":"done"}`,
		chargesJSON: `{"data":{"transactionCost":5}}`,
	}
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	logger := zerolog.Nop()
	creds := sessionsvc.NewCredentials()
	client := bank.NewClient(srv.URL, srv.Client(), creds, logger)
	sessions := sessionsvc.New(client, store.NewSessionFileStore(t.TempDir()), creds, logger)
	accounts := accountsvc.New(client, creds, logger)
	fees := feesvc.New(client, logger)
	exec := transaction.New(client, accounts, fees, sessions, logger)

	_, err := sessions.Login(context.Background(), "jo", "pw")
	require.NoError(t, err)
	_, err = accounts.Refresh(context.Background())
	require.NoError(t, err)
	backend.resetEvents()

	return &fixture{backend: backend, creds: creds, sessions: sessions, accounts: accounts, exec: exec}
}

func TestBegin_NoCommitBeforeConfirm(t *testing.T) {
	f := newFixture(t)

	flow, err := f.exec.Begin(context.Background(), domain.TransactionDraft{
		Kind:      domain.KindDeposit,
		ToAccount: "001",
		Amount:    decimal.NewFromInt(100),
	})
	require.NoError(t, err)
	assert.Equal(t, transaction.StateAwaitingConfirmation, flow.State())
	assert.Zero(t, f.backend.commits(), "no commit call may fire before confirm")
}

func TestCancel_NeverTouchesCacheOrNetwork(t *testing.T) {
	f := newFixture(t)
	before := f.accounts.Current()

	flow, err := f.exec.Begin(context.Background(), domain.TransactionDraft{
		Kind:        domain.KindWithdraw,
		FromAccount: "001",
		Amount:      decimal.NewFromInt(10),
	})
	require.NoError(t, err)

	result := flow.Cancel()
	assert.Equal(t, domain.OutcomeCancelled, result.Outcome)
	assert.Equal(t, "operation cancelled", result.Message)
	assert.Zero(t, f.backend.commits())
	assert.Equal(t, before, f.accounts.Current())

	// A cancelled flow is spent.
	dead := flow.Confirm(context.Background())
	assert.Equal(t, domain.OutcomeFailed, dead.Outcome)
	assert.Equal(t, domain.ErrValidation, dead.Cause.Kind)
	assert.Zero(t, f.backend.commits())
}

func TestConfirm_DepositSucceeds_ScenarioA(t *testing.T) {
	f := newFixture(t)

	flow, err := f.exec.Begin(context.Background(), domain.TransactionDraft{
		Kind:      domain.KindDeposit,
		ToAccount: "001",
		Amount:    decimal.NewFromInt(100),
	})
	require.NoError(t, err)
	assert.True(t, flow.Quote().Fee.Equal(decimal.NewFromInt(5)))

	// Fee is borne server-side: balance goes up by the full amount.
	f.backend.script(func(b *testBackend) {
		b.accountsJSON = `{"data":[
			{"accountNumber":"001","accountType":"Savings","balance":500},
			{"accountNumber":"002","accountType":"Current","balance":50}
		]}`
	})

	result := flow.Confirm(context.Background())
	require.Equal(t, domain.OutcomeSucceeded, result.Outcome)
	assert.False(t, result.StaleAccounts)
	require.Len(t, result.RefreshedAccounts, 2)
	assert.True(t, result.RefreshedAccounts[0].Balance.Equal(decimal.NewFromInt(500)))

	// Exactly one commit, and the refresh happened strictly after it.
	assert.Equal(t, []string{"commit/deposit", "fetch"}, f.backend.eventLog())
	assert.True(t, f.accounts.Current()[0].Balance.Equal(decimal.NewFromInt(500)))
}

func TestBegin_SameAccountTransfer_ScenarioB(t *testing.T) {
	f := newFixture(t)

	_, err := f.exec.Begin(context.Background(), domain.TransactionDraft{
		Kind:        domain.KindTransfer,
		FromAccount: "001",
		ToAccount:   "001",
		Amount:      decimal.NewFromInt(50),
	})
	require.Error(t, err)
	ce, ok := domain.AsClassified(err)
	require.True(t, ok)
	assert.Equal(t, domain.ErrValidation, ce.Kind)
	assert.Equal(t, "same-account transfer", ce.Message)
	assert.Empty(t, f.backend.eventLog(), "structural failures must not reach the network")
}

func TestConfirm_AuthExpiredForcesLogout_ScenarioC(t *testing.T) {
	f := newFixture(t)

	flow, err := f.exec.Begin(context.Background(), domain.TransactionDraft{
		Kind:        domain.KindWithdraw,
		FromAccount: "001",
		Amount:      decimal.NewFromInt(10),
	})
	require.NoError(t, err)

	f.backend.script(func(b *testBackend) {
		b.commitStatus = http.StatusUnauthorized
		b.commitJSON = `{"message":"token expired"}`
	})

	result := flow.Confirm(context.Background())
	require.Equal(t, domain.OutcomeFailed, result.Outcome)
	require.NotNil(t, result.Cause)
	assert.Equal(t, domain.ErrAuthExpired, result.Cause.Kind)

	_, ok := f.creds.AuthHeader()
	assert.False(t, ok, "a rejected session must not be reused")
}

func TestConfirm_InsufficientFunds_ScenarioD(t *testing.T) {
	f := newFixture(t)
	before := f.accounts.Current()

	flow, err := f.exec.Begin(context.Background(), domain.TransactionDraft{
		Kind:        domain.KindWithdraw,
		FromAccount: "002",
		Amount:      decimal.NewFromInt(500),
	})
	require.NoError(t, err)

	f.backend.script(func(b *testBackend) {
		b.commitStatus = http.StatusBadRequest
		b.commitJSON = `{"message":"Insufficient funds"}`
	})

	result := flow.Confirm(context.Background())
	require.Equal(t, domain.OutcomeFailed, result.Outcome)
	require.NotNil(t, result.Cause)
	assert.Equal(t, domain.ErrInsufficientFunds, result.Cause.Kind)
	assert.Equal(t, before, f.accounts.Current(), "failed commit must leave the cache alone")

	header, ok := f.creds.AuthHeader()
	assert.True(t, ok, "business failures must not log the user out")
	assert.Equal(t, "Bearer tok", header)
}

func TestConfirm_RefreshFailureIsStillSuccess(t *testing.T) {
	f := newFixture(t)

	flow, err := f.exec.Begin(context.Background(), domain.TransactionDraft{
		Kind:        domain.KindTransfer,
		FromAccount: "001",
		ToAccount:   "002",
		Amount:      decimal.NewFromInt(25),
	})
	require.NoError(t, err)

	f.backend.script(func(b *testBackend) {
		b.accountsStatus = http.StatusInternalServerError
	})

	result := flow.Confirm(context.Background())
	require.Equal(t, domain.OutcomeSucceeded, result.Outcome, "the money moved; only the view is stale")
	assert.True(t, result.StaleAccounts)
	assert.Empty(t, result.RefreshedAccounts)
	assert.Contains(t, result.Message, "out of date")
}

func TestConfirm_SpentFlowCommitsOnlyOnce(t *testing.T) {
	f := newFixture(t)

	flow, err := f.exec.Begin(context.Background(), domain.TransactionDraft{
		Kind:      domain.KindDeposit,
		ToAccount: "001",
		Amount:    decimal.NewFromInt(10),
	})
	require.NoError(t, err)

	first := flow.Confirm(context.Background())
	require.Equal(t, domain.OutcomeSucceeded, first.Outcome)

	second := flow.Confirm(context.Background())
	assert.Equal(t, domain.OutcomeFailed, second.Outcome)
	assert.Equal(t, domain.ErrValidation, second.Cause.Kind)
	assert.Equal(t, 1, f.backend.commits(), "a flow may never commit twice")
}

func TestBegin_DegradedQuoteStillFlows(t *testing.T) {
	f := newFixture(t)
	f.backend.script(func(b *testBackend) { b.chargesJSON = "" })

	flow, err := f.exec.Begin(context.Background(), domain.TransactionDraft{
		Kind:        domain.KindWithdraw,
		FromAccount: "001",
		Amount:      decimal.NewFromInt(60),
	})
	require.NoError(t, err, "a dead fee service must not block the operation")

	quote := flow.Quote()
	assert.True(t, quote.Fee.IsZero())
	assert.True(t, quote.Degraded)
	assert.Equal(t, transaction.StateAwaitingConfirmation, flow.State())

	result := flow.Confirm(context.Background())
	assert.Equal(t, domain.OutcomeSucceeded, result.Outcome)
}

func TestBegin_StructuralValidation(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name    string
		draft   domain.TransactionDraft
		wantMsg string
	}{
		{
			"zero amount",
			domain.TransactionDraft{Kind: domain.KindDeposit, ToAccount: "001"},
			"amount must be greater than zero",
		},
		{
			"negative amount",
			domain.TransactionDraft{Kind: domain.KindWithdraw, FromAccount: "001", Amount: decimal.NewFromInt(-5)},
			"amount must be greater than zero",
		},
		{
			"deposit to unknown account",
			domain.TransactionDraft{Kind: domain.KindDeposit, ToAccount: "999", Amount: decimal.NewFromInt(5)},
			`unknown account "999"`,
		},
		{
			"withdraw missing account",
			domain.TransactionDraft{Kind: domain.KindWithdraw, Amount: decimal.NewFromInt(5)},
			"withdrawal requires a source account",
		},
		{
			"transfer missing destination",
			domain.TransactionDraft{Kind: domain.KindTransfer, FromAccount: "001", Amount: decimal.NewFromInt(5)},
			"transfer requires both source and destination accounts",
		},
		{
			"transfer from unknown account",
			domain.TransactionDraft{Kind: domain.KindTransfer, FromAccount: "999", ToAccount: "001", Amount: decimal.NewFromInt(5)},
			`unknown account "999"`,
		},
		{
			"unknown kind",
			domain.TransactionDraft{Kind: "overdraft", Amount: decimal.NewFromInt(5)},
			`unknown transaction kind "overdraft"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.exec.Begin(context.Background(), tt.draft)
			require.Error(t, err)
			ce, ok := domain.AsClassified(err)
			require.True(t, ok)
			assert.Equal(t, domain.ErrValidation, ce.Kind)
			assert.Equal(t, tt.wantMsg, ce.Message)
		})
	}
	assert.Empty(t, f.backend.eventLog())
}
