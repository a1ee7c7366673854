// Package session manages the authenticated session.
//
// It holds the one process-wide credential (Credentials), drives login,
// logout and restore-from-disk, and fronts the backend's credential
// recovery endpoints.
package session
