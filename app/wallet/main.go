package main

import "github.com/ledgerlab/blockchain/app/wallet/cmd"

func main() {
	cmd.Execute()
}
