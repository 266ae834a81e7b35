// Package migrate executes classification plans: it copies or moves files
// into their planned destinations, verifies each transfer by content digest
// before trusting it, and records every outcome in an append-only log.
// Verification failures never destroy data: a mismatched destination copy is
// removed and the source is left untouched.
package migrate
