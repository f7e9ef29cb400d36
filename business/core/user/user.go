// Package user provides the account bookkeeping for the ledger application.
// It is independent of the chain core and shares no state with it.
package user

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/google/uuid"
	"github.com/ledgerlab/blockchain/foundation/validate"
	"github.com/shopspring/decimal"
)

// UserError indicates a user field failed validation. Value carries the
// offending input.
type UserError struct {
	Message string
	Value   any
}

// Error implements the error interface.
func (e *UserError) Error() string {
	return fmt.Sprintf("%s: offending value [%v]", e.Message, e.Value)
}

// User is an account holder with a balance. Values are validated at
// construction; balance changes go through copy-with-validation methods.
type User struct {
	ID        uuid.UUID       `json:"id"`
	Username  string          `json:"username"`
	AuthToken string          `json:"auth_token"`
	Balance   decimal.Decimal `json:"balance"`
}

// New constructs a validated user with a fresh id.
func New(username string, authToken string, balance decimal.Decimal) (User, error) {
	if !validate.Username(username) {
		return User{}, &UserError{Message: "Invalid username", Value: username}
	}
	if strings.TrimSpace(authToken) == "" {
		return User{}, &UserError{Message: "Authentication token cannot be null or empty", Value: authToken}
	}
	if balance.Sign() < 0 {
		return User{}, &UserError{Message: "Balance must be greater than or equal to zero", Value: balance}
	}

	u := User{
		ID:        uuid.New(),
		Username:  username,
		AuthToken: authToken,
		Balance:   balance,
	}

	return u, nil
}

// GenerateToken derives an auth token from a newly generated ECDSA key. The
// token is the hex address of the public key, the same form a wallet account
// uses.
func GenerateToken() (string, error) {
	privateKey, err := crypto.GenerateKey()
	if err != nil {
		return "", fmt.Errorf("generating key: %w", err)
	}

	return crypto.PubkeyToAddress(privateKey.PublicKey).String(), nil
}

// Deposit returns a copy of the user credited with the amount.
func (u User) Deposit(amount decimal.Decimal) (User, error) {
	if amount.Sign() <= 0 {
		return User{}, &UserError{Message: "Amount must be greater than zero", Value: amount}
	}

	u.Balance = u.Balance.Add(amount)
	return u, nil
}

// Withdraw returns a copy of the user debited by the amount. The balance
// can't go negative.
func (u User) Withdraw(amount decimal.Decimal) (User, error) {
	if amount.Sign() <= 0 {
		return User{}, &UserError{Message: "Amount must be greater than zero", Value: amount}
	}

	balance := u.Balance.Sub(amount)
	if balance.Sign() < 0 {
		return User{}, &UserError{Message: "Balance must be greater than or equal to zero", Value: balance}
	}

	u.Balance = balance
	return u, nil
}

// String implements the fmt.Stringer interface. The auth token is never
// rendered.
func (u User) String() string {
	return fmt.Sprintf("User{id:%s, username:%s, balance:%s}", u.ID, u.Username, u.Balance)
}
