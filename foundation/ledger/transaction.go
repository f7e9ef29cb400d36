package ledger

import (
	"fmt"
	"time"

	"github.com/ledgerlab/blockchain/foundation/validate"
	"github.com/shopspring/decimal"
)

// clockSkew is the window allowed for timestamps produced by machines running
// slightly ahead of us.
const clockSkew = 10 * time.Second

// GenesisParty is the name on both sides of the transfer seeding every chain.
const GenesisParty = "Genesis"

// Transaction represents the transfer of an amount between two named parties.
// All fields are validated at construction and never change afterwards.
type Transaction struct {
	sender    string
	receiver  string
	amount    decimal.Decimal
	createdAt time.Time
}

// NewTransaction constructs a Transaction stamped with the current time.
func NewTransaction(sender string, receiver string, amount decimal.Decimal) (Transaction, error) {
	return NewTransactionAt(sender, receiver, amount, time.Now())
}

// NewTransactionAt constructs a Transaction with an explicit creation time.
func NewTransactionAt(sender string, receiver string, amount decimal.Decimal, createdAt time.Time) (Transaction, error) {
	if !validate.PartyName(sender) {
		return Transaction{}, NewTransactionError("Invalid sender name", sender)
	}
	if !validate.PartyName(receiver) {
		return Transaction{}, NewTransactionError("Invalid receiver name", receiver)
	}
	if amount.Sign() <= 0 {
		return Transaction{}, NewTransactionError("Amount must be greater than zero", amount)
	}
	if createdAt.IsZero() {
		return Transaction{}, NewTransactionError("Timestamp cannot be null", nil)
	}
	if createdAt.After(time.Now().Add(clockSkew)) {
		return Transaction{}, NewTransactionError("Timestamp cannot be in the future", createdAt)
	}

	tx := Transaction{
		sender:    sender,
		receiver:  receiver,
		amount:    amount,
		createdAt: createdAt,
	}

	return tx, nil
}

// GenesisTransaction returns the fixed Genesis to Genesis transfer of amount
// one that seeds every chain.
func GenesisTransaction() Transaction {
	return Transaction{
		sender:    GenesisParty,
		receiver:  GenesisParty,
		amount:    decimal.NewFromInt(1),
		createdAt: time.Now(),
	}
}

// Sender returns the sending party's name.
func (tx Transaction) Sender() string {
	return tx.sender
}

// Receiver returns the receiving party's name.
func (tx Transaction) Receiver() string {
	return tx.receiver
}

// Amount returns the transferred amount.
func (tx Transaction) Amount() decimal.Decimal {
	return tx.amount
}

// CreatedAt returns the transaction's creation time.
func (tx Transaction) CreatedAt() time.Time {
	return tx.createdAt
}

// Equals reports whether two transactions represent the same transfer.
func (tx Transaction) Equals(other Transaction) bool {
	return tx.sender == other.sender &&
		tx.receiver == other.receiver &&
		tx.amount.Equal(other.amount) &&
		tx.createdAt.Equal(other.createdAt)
}

// isZero reports whether the transaction is the uninitialized zero value. A
// validated transaction always carries a sender.
func (tx Transaction) isZero() bool {
	return tx.sender == ""
}

// String implements the fmt.Stringer interface.
func (tx Transaction) String() string {
	return fmt.Sprintf("Transaction{sender:'%s', receiver:'%s', amount:%s}", tx.sender, tx.receiver, tx.amount)
}
