// Package commands defines the teller CLI.
//
// Each command is a thin front end over the orchestration services: the
// money-movement commands drive the draft/quote/confirm/cancel flow the
// same way any other UI would.
package commands
