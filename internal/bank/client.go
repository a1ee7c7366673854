package bank

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"teller/internal/domain"
)

// Client talks JSON over HTTPS to the banking service. It attaches the
// bearer header from creds when a session exists and funnels every failure
// through Classify, so callers only ever see domain values and
// ClassifiedErrors.
type Client struct {
	base  string
	http  *http.Client
	creds domain.CredentialSource
	log   zerolog.Logger
}

// NewClient builds a Client for the API at base. creds may be nil for a
// client that only performs unauthenticated calls.
func NewClient(base string, httpClient *http.Client, creds domain.CredentialSource, logger zerolog.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{base: base, http: httpClient, creds: creds, log: logger}
}

var _ domain.BankClient = (*Client)(nil)

// ---------- Auth ----------

func (c *Client) Register(ctx context.Context, registration domain.Registration) (string, error) {
	body, err := c.post(ctx, "/register", registration)
	if err != nil {
		return "", err
	}
	return messageOf(body, "registration successful"), nil
}

func (c *Client) Login(ctx context.Context, usernameOrEmail, password string) (domain.Session, error) {
	body, err := c.post(ctx, "/login", map[string]string{
		"usernameOrEmail": usernameOrEmail,
		"password":        password,
	})
	if err != nil {
		return domain.Session{}, err
	}

	var payload struct {
		Token      string      `json:"token"`
		CustomerID json.Number `json:"customerId"`
		FirstName  string      `json:"firstName"`
		LastName   string      `json:"lastName"`
		Username   string      `json:"username"`
	}
	if err := decodeData(body, &payload); err != nil {
		return domain.Session{}, &domain.ClassifiedError{Kind: domain.ErrUnknown, Message: "malformed login response"}
	}
	session := domain.Session{
		CustomerID: payload.CustomerID.String(),
		Token:      payload.Token,
		Name:       displayName(payload.FirstName, payload.LastName, payload.Username),
	}
	if !session.Valid() {
		return domain.Session{}, &domain.ClassifiedError{Kind: domain.ErrUnknown, Message: "login response missing token or customer id"}
	}
	return session, nil
}

// displayName assembles the customer's display name from whichever name
// fields the login payload carries, falling back to the username.
func displayName(first, last, username string) string {
	full := strings.TrimSpace(strings.TrimSpace(first) + " " + strings.TrimSpace(last))
	if full != "" {
		return full
	}
	return strings.TrimSpace(username)
}

// ---------- Accounts ----------

func (c *Client) FetchAccounts(ctx context.Context, customerID string) ([]domain.Account, error) {
	body, err := c.get(ctx, "/customer/"+url.PathEscape(customerID)+"/accounts")
	if err != nil {
		return nil, err
	}
	var accounts []domain.Account
	if err := decodeData(body, &accounts); err != nil {
		return nil, &domain.ClassifiedError{Kind: domain.ErrUnknown, Message: "malformed accounts response"}
	}
	return accounts, nil
}

// AccountTypes prefers /accountTypes and falls back to the older
// /fetchAccountTypes route when the newer one is absent.
func (c *Client) AccountTypes(ctx context.Context) ([]domain.AccountType, error) {
	body, err := c.get(ctx, "/accountTypes")
	if err != nil {
		if ce, ok := domain.AsClassified(err); !ok || ce.HTTPStatus != http.StatusNotFound {
			return nil, err
		}
		if body, err = c.get(ctx, "/fetchAccountTypes"); err != nil {
			return nil, err
		}
	}
	var accountTypes []domain.AccountType
	if err := decodeData(body, &accountTypes); err != nil {
		return nil, &domain.ClassifiedError{Kind: domain.ErrUnknown, Message: "malformed account types response"}
	}
	return accountTypes, nil
}

func (c *Client) CreateAccount(ctx context.Context, customerID, accountType string) (domain.Account, error) {
	body, err := c.post(ctx, "/createAccount", map[string]string{
		"customerId":  customerID,
		"accountType": accountType,
	})
	if err != nil {
		return domain.Account{}, err
	}
	var account domain.Account
	if err := decodeData(body, &account); err != nil {
		return domain.Account{}, &domain.ClassifiedError{Kind: domain.ErrUnknown, Message: "malformed create account response"}
	}
	return account, nil
}

func (c *Client) Statement(ctx context.Context, accountNumber string) ([]domain.StatementEntry, error) {
	body, err := c.get(ctx, "/account/"+url.PathEscape(accountNumber)+"/statement")
	if err != nil {
		return nil, err
	}
	var entries []domain.StatementEntry
	if err := decodeData(body, &entries); err != nil {
		return nil, &domain.ClassifiedError{Kind: domain.ErrUnknown, Message: "malformed statement response"}
	}
	return entries, nil
}

// ---------- Money movement ----------

func (c *Client) Deposit(ctx context.Context, toAccount string, amount decimal.Decimal) (string, error) {
	body, err := c.post(ctx, "/deposit", map[string]any{
		"toAccount": toAccount,
		"amount":    jsonAmount(amount),
	})
	if err != nil {
		return "", err
	}
	return messageOf(body, "deposit successful"), nil
}

func (c *Client) Withdraw(ctx context.Context, fromAccount string, amount decimal.Decimal) (string, error) {
	body, err := c.post(ctx, "/withdraw", map[string]any{
		"fromAccount": fromAccount,
		"amount":      jsonAmount(amount),
	})
	if err != nil {
		return "", err
	}
	return messageOf(body, "withdrawal successful"), nil
}

func (c *Client) TransferFunds(ctx context.Context, fromAccount, toAccount string, amount decimal.Decimal) (string, error) {
	body, err := c.post(ctx, "/transferFunds", map[string]any{
		"fromAccount": fromAccount,
		"toAccount":   toAccount,
		"amount":      jsonAmount(amount),
	})
	if err != nil {
		return "", err
	}
	return messageOf(body, "transfer successful"), nil
}

// ---------- Fees ----------

func (c *Client) Charges(ctx context.Context, kind domain.TransactionKind, amount decimal.Decimal) (decimal.Decimal, error) {
	q := url.Values{}
	q.Set("amount", amount.String())
	q.Set("type", string(kind))
	body, err := c.get(ctx, "/charges?"+q.Encode())
	if err != nil {
		return decimal.Zero, err
	}
	var payload struct {
		TransactionCost decimal.Decimal `json:"transactionCost"`
	}
	if err := decodeData(body, &payload); err != nil {
		return decimal.Zero, &domain.ClassifiedError{Kind: domain.ErrUnknown, Message: "malformed charges response"}
	}
	return payload.TransactionCost, nil
}

func (c *Client) TransactionCosts(ctx context.Context) (domain.TransactionCosts, error) {
	body, err := c.get(ctx, "/transactionCosts")
	if err != nil {
		return domain.TransactionCosts{}, err
	}
	var costs domain.TransactionCosts
	if err := decodeData(body, &costs); err != nil {
		return domain.TransactionCosts{}, &domain.ClassifiedError{Kind: domain.ErrUnknown, Message: "malformed transaction costs response"}
	}
	return costs, nil
}

// ---------- Credential recovery ----------

func (c *Client) ForgotPassword(ctx context.Context, usernameOrEmail string) (string, error) {
	body, err := c.post(ctx, "/forgotPassword", map[string]string{"usernameOrEmail": usernameOrEmail})
	if err != nil {
		return "", err
	}
	return messageOf(body, "reset instructions sent"), nil
}

func (c *Client) ResetPassword(ctx context.Context, token, newPassword string) (string, error) {
	body, err := c.post(ctx, "/resetPassword", map[string]string{
		"token":       token,
		"newPassword": newPassword,
	})
	if err != nil {
		return "", err
	}
	return messageOf(body, "password reset"), nil
}

func (c *Client) UpdatePassword(ctx context.Context, usernameOrEmail, oldPassword, newPassword string) (string, error) {
	body, err := c.post(ctx, "/updatePassword", map[string]string{
		"usernameOrEmail": usernameOrEmail,
		"oldPassword":     oldPassword,
		"newPassword":     newPassword,
		"confirmPassword": newPassword,
	})
	if err != nil {
		return "", err
	}
	return messageOf(body, "password updated"), nil
}

// ---------- helpers ----------

func (c *Client) post(ctx context.Context, path string, in any) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := json.NewEncoder(buf).Encode(in); err != nil {
		return nil, NetworkError(err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, buf)
	if err != nil {
		return nil, NetworkError(err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
	if err != nil {
		return nil, NetworkError(err)
	}
	return c.do(req)
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	if c.creds != nil {
		if header, ok := c.creds.AuthHeader(); ok {
			req.Header.Set("Authorization", header)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug().Err(err).Str("path", req.URL.Path).Msg("request failed")
		return nil, NetworkError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NetworkError(err)
	}
	if resp.StatusCode/100 != 2 {
		ce := Classify(resp.StatusCode, body)
		c.log.Debug().Int("status", resp.StatusCode).Str("path", req.URL.Path).Str("kind", string(ce.Kind)).Msg("request rejected")
		return nil, ce
	}
	return body, nil
}

// decodeData unwraps the backend's {"data": ...} envelope when present and
// decodes the payload into out. Some routes return the payload bare; both
// shapes funnel through here so nothing else needs to care.
func decodeData(body []byte, out any) error {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && len(envelope.Data) > 0 {
		body = envelope.Data
	}
	return json.Unmarshal(body, out)
}

// messageOf extracts the backend's success message, tolerating bodies that
// are empty or not JSON at all.
func messageOf(body []byte, fallback string) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	return fallback
}

// jsonAmount renders a decimal as a bare JSON number, which is what the
// backend expects for amounts.
func jsonAmount(amount decimal.Decimal) json.Number {
	return json.Number(amount.String())
}
