// Package account owns the client-side view of the user's accounts.
//
// The view is advisory, not a lock: it reflects the server as of the last
// successful fetch, and is only ever replaced as a whole.
package account
