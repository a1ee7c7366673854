// Package transaction runs money-movement operations through an explicit
// confirm-then-commit state machine.
//
// Any front end drives the same machine: Begin a draft, show the returned
// quote, then Confirm or Cancel. The commit call is the only non-idempotent
// step and is issued at most once per flow, never retried.
package transaction
