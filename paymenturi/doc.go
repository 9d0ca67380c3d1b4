// Package paymenturi builds and parses SEP-0007 web+stellar:pay URIs and
// derives the deep links used to hand a payment over to a wallet.
//
// Build fails loudly with a *common.InvariantViolation for invalid requests.
// Parse is total and returns nil for any text that is not a valid payment
// URI; Inspect runs the same checks and reports which invariant failed.
// Every function is pure and safe for concurrent use.
package paymenturi
