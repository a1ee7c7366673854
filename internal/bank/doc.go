// Package bank is the HTTP client for the remote banking service.
//
// It owns the two normalisation boundaries between the wire and the rest of
// the client: response envelopes ({"data": ...} vs bare payloads) are
// unwrapped in one place, and every failed call is mapped onto the
// ClassifiedError taxonomy by Classify before it reaches a caller.
package bank
