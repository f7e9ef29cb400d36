package ledger

import (
	"fmt"
	"time"

	"github.com/ledgerlab/blockchain/foundation/ledger/signature"
)

// Block wraps a single transaction with the metadata that links it into the
// chain. A block is constructed once for its chain position and is immutable
// afterwards; the only mutation window is the nonce retry while the chain
// searches for an unused digest.
type Block struct {
	index     int
	timestamp time.Time
	data      Transaction
	prevHash  string
	hash      string
	nonce     uint64
	showData  bool
}

// BlockOption configures optional block behavior.
type BlockOption func(*Block)

// WithHiddenData redacts the transaction detail from the block's rendering.
// Hashing and validity are unaffected.
func WithHiddenData() BlockOption {
	return func(b *Block) {
		b.showData = false
	}
}

// NewBlock constructs a block, validating every field, then computes and
// assigns its digest.
func NewBlock(index int, timestamp time.Time, data Transaction, prevHash string, opts ...BlockOption) (Block, error) {
	if index < 0 {
		return Block{}, NewBlockError("Index cannot be negative", index)
	}
	if timestamp.IsZero() {
		return Block{}, NewBlockError("Timestamp cannot be null", nil)
	}
	if timestamp.After(time.Now().Add(clockSkew)) {
		return Block{}, NewBlockError("Timestamp cannot be in the future", timestamp)
	}
	if data.isZero() {
		return Block{}, NewBlockError("Transaction data cannot be null", nil)
	}
	if prevHash == "" {
		return Block{}, NewBlockError("Previous hash cannot be null or empty", prevHash)
	}
	if !signature.IsHash(prevHash) {
		return Block{}, NewBlockError("Invalid hash format", prevHash)
	}

	b := Block{
		index:     index,
		timestamp: timestamp,
		data:      data,
		prevHash:  prevHash,
		showData:  true,
	}

	for _, opt := range opts {
		opt(&b)
	}

	if err := b.seal(b.CalculateHash()); err != nil {
		return Block{}, err
	}

	return b, nil
}

// Genesis constructs the first block of a chain: index 0, the fixed Genesis
// transfer and the all-zero previous-hash sentinel, with a real computed hash.
func Genesis() (Block, error) {
	return NewBlock(0, time.Now(), GenesisTransaction(), signature.ZeroHash)
}

// digest is the canonical form hashed for a block. The nonce participates so
// the chain's collision retry hashes different input on every attempt.
type digest struct {
	Index     int    `json:"index"`
	Timestamp int64  `json:"timestamp"`
	Sender    string `json:"sender"`
	Receiver  string `json:"receiver"`
	Amount    string `json:"amount"`
	PrevHash  string `json:"prev_hash"`
	Nonce     uint64 `json:"nonce"`
}

// CalculateHash returns the digest of the block's fields. It is pure: the
// same fields always produce the same hex string.
func (b Block) CalculateHash() string {
	return signature.Hash(digest{
		Index:     b.index,
		Timestamp: b.timestamp.UnixNano(),
		Sender:    b.data.sender,
		Receiver:  b.data.receiver,
		Amount:    b.data.amount.String(),
		PrevHash:  b.prevHash,
		Nonce:     b.nonce,
	})
}

// IsHashValid reports whether the stored hash matches a freshly recomputed
// digest. A false result means the block was tampered with.
func (b Block) IsHashValid() bool {
	return b.hash == b.CalculateHash()
}

// seal assigns the block's hash, rejecting an empty digest or a degenerate
// collision with the previous block's hash.
func (b *Block) seal(hash string) error {
	if hash == "" {
		return NewBlockError("Hash cannot be null or empty", hash)
	}
	if hash == b.prevHash {
		return NewBlockError("Hash cannot be same with previous hash", hash)
	}

	b.hash = hash
	return nil
}

// Index returns the block's position in the chain.
func (b Block) Index() int {
	return b.index
}

// Timestamp returns the block's creation time.
func (b Block) Timestamp() time.Time {
	return b.timestamp
}

// Data returns the transaction carried by the block.
func (b Block) Data() Transaction {
	return b.data
}

// PrevHash returns the digest of the preceding block.
func (b Block) PrevHash() string {
	return b.prevHash
}

// Hash returns the block's own digest.
func (b Block) Hash() string {
	return b.hash
}

// Equals reports whether two blocks carry identical chain-relevant fields.
func (b Block) Equals(other Block) bool {
	return b.index == other.index &&
		b.timestamp.Equal(other.timestamp) &&
		b.data.Equals(other.data) &&
		b.prevHash == other.prevHash &&
		b.hash == other.hash
}

// String implements the fmt.Stringer interface. The transaction detail is
// replaced with a redaction marker when the block carries hidden data.
func (b Block) String() string {
	data := "hidden"
	if b.showData {
		data = b.data.String()
	}

	return fmt.Sprintf("Block{index:%d, timestamp:%s, data:%s, previousHash:'%s', hash:'%s'}",
		b.index, b.timestamp.Format(time.RFC3339Nano), data, b.prevHash, b.hash)
}
