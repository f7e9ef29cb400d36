// Package signature provides the hashing support for the ledger. A block
// digest is the sha256 of the block's canonical JSON form, rendered as a
// fixed-length lowercase hex string.
package signature

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"regexp"
)

// ZeroHash represents a hash code of zeros. It is the previous-hash sentinel
// carried by the genesis block, which has no predecessor.
const ZeroHash = "0000000000000000000000000000000000000000000000000000000000000000"

// HashLength is the number of hex characters in a digest.
const HashLength = 64

var hashRegex = regexp.MustCompile("^[a-fA-F0-9]{64}$")

// Hash returns a unique string for the value.
func Hash(value any) string {
	data, err := json.Marshal(value)
	if err != nil {
		return ZeroHash
	}

	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// IsHash reports whether the specified string is a well formed digest.
func IsHash(hash string) bool {
	return hashRegex.MatchString(hash)
}
