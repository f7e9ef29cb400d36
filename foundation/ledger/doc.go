// Package ledger implements an in-memory, append-only chain of validated
// transaction blocks. Every block is linked to its predecessor through a
// sha256 digest of its own fields, and the chain guarantees digest uniqueness
// across all blocks it has ever accepted.
package ledger
