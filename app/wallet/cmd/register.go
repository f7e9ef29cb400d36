package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ledgerlab/blockchain/business/core/user"
	"github.com/ledgerlab/blockchain/foundation/validate"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	username string
	balance  string
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a user account bound to this wallet's key",
	RunE:  registerRun,
}

func init() {
	registerCmd.Flags().StringVarP(&username, "username", "u", "", "Username for the account.")
	registerCmd.Flags().StringVarP(&balance, "balance", "b", "0", "Opening balance.")
	rootCmd.AddCommand(registerCmd)
}

// newUser models the inputs needed to register an account.
type newUser struct {
	Username string          `json:"username" validate:"required,username"`
	Balance  decimal.Decimal `json:"balance" validate:"dgte0"`
}

func registerRun(cmd *cobra.Command, args []string) error {
	amount, err := decimal.NewFromString(balance)
	if err != nil {
		return fmt.Errorf("parsing balance: %w", err)
	}

	nu := newUser{
		Username: username,
		Balance:  amount,
	}
	if err := validate.Check(nu); err != nil {
		return err
	}

	// Bind the account to the wallet's key when one exists, otherwise
	// derive a fresh token.
	var token string
	privateKey, err := crypto.LoadECDSA(getPrivateKeyPath())
	if err == nil {
		token = crypto.PubkeyToAddress(privateKey.PublicKey).String()
	} else {
		token, err = user.GenerateToken()
		if err != nil {
			return fmt.Errorf("deriving token: %w", err)
		}
	}

	u, err := user.New(nu.Username, token, nu.Balance)
	if err != nil {
		return fmt.Errorf("creating user: %w", err)
	}

	data, err := json.MarshalIndent(u, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))

	return nil
}
