package bank

import (
	"encoding/json"
	"strings"

	"teller/internal/domain"
)

// errorBody is the union of failure shapes the backend is known to emit:
// {"message": ...}, {"error": ...}, and occasionally both nested under data.
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
	Data    *struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	} `json:"data"`
}

// text returns the most specific human-readable message in the body.
func (b errorBody) text() string {
	if b.Data != nil {
		if b.Data.Message != "" {
			return b.Data.Message
		}
		if b.Data.Error != "" {
			return b.Data.Error
		}
	}
	if b.Message != "" {
		return b.Message
	}
	return b.Error
}

// NetworkError wraps a transport-level failure (no HTTP response at all)
// into the taxonomy.
func NetworkError(err error) *domain.ClassifiedError {
	return &domain.ClassifiedError{Kind: domain.ErrNetwork, Message: err.Error()}
}

// Classify maps a non-2xx HTTP response onto the error taxonomy.
//
// The priority order matters: 401/403 wins over everything else, including
// an insufficient-funds-shaped body, because a rejected session is the
// actionable problem regardless of what the body claims.
func Classify(status int, body []byte) *domain.ClassifiedError {
	var parsed errorBody
	parseable := json.Unmarshal(body, &parsed) == nil
	msg := ""
	if parseable {
		msg = parsed.text()
	}

	switch {
	case status == 401 || status == 403:
		if msg == "" {
			msg = "session rejected by server"
		}
		return &domain.ClassifiedError{Kind: domain.ErrAuthExpired, Message: msg, HTTPStatus: status}

	case parseable && isInsufficientFunds(msg):
		return &domain.ClassifiedError{Kind: domain.ErrInsufficientFunds, Message: msg, HTTPStatus: status}

	case status >= 400 && status < 500:
		if msg == "" {
			msg = "request rejected"
		}
		return &domain.ClassifiedError{Kind: domain.ErrValidation, Message: msg, HTTPStatus: status}

	case status >= 500:
		if msg == "" {
			msg = "server error"
		}
		return &domain.ClassifiedError{Kind: domain.ErrServerRejected, Message: msg, HTTPStatus: status}

	default:
		if msg == "" {
			msg = strings.TrimSpace(string(body))
		}
		if msg == "" {
			msg = "unexpected response"
		}
		return &domain.ClassifiedError{Kind: domain.ErrUnknown, Message: msg, HTTPStatus: status}
	}
}

// isInsufficientFunds matches the backend's phrasing for balance failures
// ("Insufficient funds", "insufficient balance", ...).
func isInsufficientFunds(msg string) bool {
	return strings.Contains(strings.ToLower(msg), "insufficient")
}
