package types

// Session is the authenticated identity for the current user: the customer
// it belongs to and the bearer token the backend issued at login. Name is
// the display name from the login payload and may be empty; it has no part
// in authentication.
//
// A Session is only valid when both CustomerID and Token are set; partial
// sessions are never constructed or persisted.
type Session struct {
	CustomerID string `json:"customer_id"`
	Token      string `json:"token"`
	Name       string `json:"name,omitempty"`
}

// Valid reports whether the session carries both the customer identity and
// the bearer token.
func (s Session) Valid() bool {
	return s.CustomerID != "" && s.Token != ""
}
