// Package domain defines the core types and interfaces of the client:
// sessions, accounts, transaction drafts and quotes, the classified error
// taxonomy, and the contracts between services, stores and the bank client.
//
// Concrete types live in domain/types and interfaces in domain/interfaces;
// this package re-exports both so callers import a single path.
package domain
