package types

import "github.com/shopspring/decimal"

// Account is one bank account as last reported by the backend. Balance is
// authoritative only as of the fetch that produced it; the client never
// adjusts it locally.
type Account struct {
	AccountNumber string          `json:"accountNumber"`
	AccountType   string          `json:"accountType"`
	Balance       decimal.Decimal `json:"balance"`
}

// AccountType is a product the backend offers when opening a new account.
type AccountType struct {
	ID   int    `json:"accountTypeId"`
	Name string `json:"accountType"`
}

// StatementEntry is one row of an account's transaction statement.
type StatementEntry struct {
	TransactionType string          `json:"transactionType"`
	Amount          decimal.Decimal `json:"amount"`
	Date            string          `json:"date"`
}
