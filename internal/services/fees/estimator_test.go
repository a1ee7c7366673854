package fees_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teller/internal/bank"
	"teller/internal/domain"
	"teller/internal/services/fees"
)

func newEstimator(t *testing.T, handler http.Handler) *fees.Estimator {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := bank.NewClient(srv.URL, srv.Client(), nil, zerolog.Nop())
	return fees.New(client, zerolog.Nop())
}

func TestPreview_UsesChargesEndpoint(t *testing.T) {
	est := newEstimator(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/charges", r.URL.Path)
		w.Write([]byte(`{"data":{"transactionCost":5}}`))
	}))

	quote := est.Preview(context.Background(), domain.KindDeposit, decimal.NewFromInt(100))
	assert.Equal(t, domain.KindDeposit, quote.Kind)
	assert.True(t, quote.Fee.Equal(decimal.NewFromInt(5)))
	assert.True(t, quote.Total.Equal(decimal.NewFromInt(105)))
	assert.False(t, quote.Degraded)
}

func TestPreview_FallsBackToFlatCosts(t *testing.T) {
	est := newEstimator(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/charges":
			http.NotFound(w, r)
		case "/transactionCosts":
			w.Write([]byte(`{"data":{"transactionCost":1,"withdrawFee":2.5,"transferFee":4}}`))
		}
	}))

	quote := est.Preview(context.Background(), domain.KindWithdraw, decimal.NewFromInt(50))
	assert.True(t, quote.Fee.Equal(decimal.RequireFromString("2.5")))
	assert.True(t, quote.Total.Equal(decimal.RequireFromString("52.5")))
	assert.False(t, quote.Degraded)

	quote = est.Preview(context.Background(), domain.KindTransfer, decimal.NewFromInt(50))
	assert.True(t, quote.Fee.Equal(decimal.NewFromInt(4)))
}

func TestPreview_DegradesToZeroNeverFails(t *testing.T) {
	est := newEstimator(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	quote := est.Preview(context.Background(), domain.KindTransfer, decimal.NewFromInt(75))
	assert.True(t, quote.Fee.IsZero())
	assert.True(t, quote.Total.Equal(decimal.NewFromInt(75)))
	assert.True(t, quote.Degraded)
}

func TestPreview_BackendUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	client := bank.NewClient(base, http.DefaultClient, nil, zerolog.Nop())
	est := fees.New(client, zerolog.Nop())

	quote := est.Preview(context.Background(), domain.KindWithdraw, decimal.NewFromInt(10))
	assert.True(t, quote.Fee.IsZero())
	assert.True(t, quote.Degraded)
}
