package ledger

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/ledgerlab/blockchain/foundation/ledger/signature"
	"github.com/ledgerlab/blockchain/foundation/validate"
)

// EventHandler is a function the chain calls to report append activity.
type EventHandler func(v string, args ...any)

// Chain is the append-only sequence of blocks, seeded with a genesis block at
// construction. The whole append operation runs under one mutex: the candidate
// build, the digest-uniqueness retry and the append must observe a single
// consistent snapshot of the last block and the hash set.
type Chain struct {
	mu        sync.Mutex
	name      string
	blocks    []Block
	hashes    map[string]struct{}
	evHandler EventHandler
}

// ChainOption configures optional chain behavior.
type ChainOption func(*Chain) error

// WithName labels the chain. The label appears in rendering only.
func WithName(name string) ChainOption {
	return func(c *Chain) error {
		if !validate.ChainName(name) {
			return NewChainError("Invalid blockchain name", name)
		}
		c.name = name
		return nil
	}
}

// WithEventHandler registers a handler the chain reports append activity to.
func WithEventHandler(ev EventHandler) ChainOption {
	return func(c *Chain) error {
		c.evHandler = ev
		return nil
	}
}

// New constructs a chain seeded with the genesis block.
func New(opts ...ChainOption) (*Chain, error) {
	genesis, err := Genesis()
	if err != nil {
		return nil, err
	}

	c := Chain{
		blocks:    []Block{genesis},
		hashes:    map[string]struct{}{genesis.hash: {}},
		evHandler: func(v string, args ...any) {},
	}

	for _, opt := range opts {
		if err := opt(&c); err != nil {
			return nil, err
		}
	}

	return &c, nil
}

// CreateBlock builds a block carrying the specified transaction, links it to
// the current last block and appends it. If the candidate's digest was already
// assigned somewhere in the chain, the nonce is incremented and the digest
// recomputed, so every retry hashes different input and the loop terminates.
// Validation failures from block construction propagate unchanged.
func (c *Chain) CreateBlock(tx Transaction, opts ...BlockOption) (Block, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	last := c.blocks[len(c.blocks)-1]

	b, err := NewBlock(len(c.blocks), time.Now(), tx, last.hash, opts...)
	if err != nil {
		return Block{}, err
	}

	hash := b.hash
	for {
		if _, exists := c.hashes[hash]; !exists {
			break
		}
		c.evHandler("ledger: CreateBlock: blk[%d]: duplicate hash[%s], retrying", b.index, hash)
		b.nonce++
		hash = b.CalculateHash()
	}

	if err := b.seal(hash); err != nil {
		return Block{}, err
	}

	c.blocks = append(c.blocks, b)
	c.hashes[b.hash] = struct{}{}

	c.evHandler("ledger: CreateBlock: blk[%d]: appended: prevBlk[%s]: newBlk[%s]", b.index, b.prevHash, b.hash)

	return b, nil
}

// Blocks returns a copy of the chain in order. Mutating the result does not
// affect the chain.
func (c *Chain) Blocks() []Block {
	c.mu.Lock()
	defer c.mu.Unlock()

	blocks := make([]Block, len(c.blocks))
	copy(blocks, c.blocks)

	return blocks
}

// Len returns the number of blocks in the chain, genesis included.
func (c *Chain) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.blocks)
}

// Name returns the chain's label.
func (c *Chain) Name() string {
	return c.name
}

// Verify walks the whole chain and returns the first integrity violation:
// a tampered digest, an index gap or a broken previous-hash link.
func (c *Chain) Verify() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, b := range c.blocks {
		if b.index != i {
			return fmt.Errorf("block at position %d carries index %d", i, b.index)
		}
		if !b.IsHashValid() {
			return fmt.Errorf("block %d hash does not match its contents", i)
		}
		if i == 0 {
			if b.prevHash != signature.ZeroHash {
				return fmt.Errorf("genesis previous hash is not the zero sentinel, got %s", b.prevHash)
			}
			continue
		}
		if b.prevHash != c.blocks[i-1].hash {
			return fmt.Errorf("block %d previous hash does not match block %d hash", i, i-1)
		}
	}

	return nil
}

// Render returns the half-open range [start, end) of blocks, one per line,
// prefixed with the chain header.
func (c *Chain) Render(start int, end int) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if start < 0 || end > len(c.blocks) || start > end {
		return "", fmt.Errorf("render range [%d,%d) out of bounds, chain has %d blocks", start, end, len(c.blocks))
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "BLOCKCHAIN %s:\n", c.name)
	for _, b := range c.blocks[start:end] {
		sb.WriteString(b.String())
		sb.WriteByte('\n')
	}

	return sb.String(), nil
}

// String implements the fmt.Stringer interface.
func (c *Chain) String() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return fmt.Sprintf("Blockchain{name:%s, blocks:%d}", c.name, len(c.blocks))
}
