package bank_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teller/internal/bank"
	"teller/internal/domain"
)

func TestClassify_PriorityOrder(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantKind domain.ErrorKind
	}{
		{"unauthorized", 401, `{"message":"token expired"}`, domain.ErrAuthExpired},
		{"forbidden", 403, `{"error":"forbidden"}`, domain.ErrAuthExpired},
		{"unauthorized with insufficient funds body", 401, `{"message":"Insufficient funds"}`, domain.ErrAuthExpired},
		{"unauthorized with garbage body", 401, `<html>`, domain.ErrAuthExpired},
		{"insufficient funds", 400, `{"message":"Insufficient funds in account"}`, domain.ErrInsufficientFunds},
		{"insufficient balance wording", 400, `{"error":"insufficient balance"}`, domain.ErrInsufficientFunds},
		{"insufficient funds on 500", 500, `{"message":"Insufficient funds"}`, domain.ErrInsufficientFunds},
		{"plain bad request", 400, `{"message":"amount is required"}`, domain.ErrValidation},
		{"not found", 404, `{"error":"no such account"}`, domain.ErrValidation},
		{"bad request with garbage body", 422, `not json`, domain.ErrValidation},
		{"server error", 500, `{"message":"boom"}`, domain.ErrServerRejected},
		{"bad gateway", 502, ``, domain.ErrServerRejected},
		{"unexpected status", 302, `moved`, domain.ErrUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ce := bank.Classify(tt.status, []byte(tt.body))
			require.NotNil(t, ce)
			assert.Equal(t, tt.wantKind, ce.Kind)
			assert.Equal(t, tt.status, ce.HTTPStatus)
			assert.NotEmpty(t, ce.Message)
		})
	}
}

func TestClassify_PrefersBodyMessage(t *testing.T) {
	ce := bank.Classify(400, []byte(`{"message":"amount is required"}`))
	assert.Equal(t, "amount is required", ce.Message)

	ce = bank.Classify(400, []byte(`{"data":{"message":"nested"}}`))
	assert.Equal(t, "nested", ce.Message)

	ce = bank.Classify(500, []byte(`{"error":"db down"}`))
	assert.Equal(t, "db down", ce.Message)
}

func TestNetworkError(t *testing.T) {
	ce := bank.NetworkError(errors.New("dial tcp: connection refused"))
	assert.Equal(t, domain.ErrNetwork, ce.Kind)
	assert.Contains(t, ce.Message, "connection refused")
	assert.Zero(t, ce.HTTPStatus)
}

func TestKindOf_NonClassified(t *testing.T) {
	assert.Equal(t, domain.ErrUnknown, domain.KindOf(errors.New("plain")))
}
