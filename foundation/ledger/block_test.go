package ledger_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ledgerlab/blockchain/foundation/ledger"
	"github.com/ledgerlab/blockchain/foundation/ledger/signature"
	"github.com/shopspring/decimal"
)

func testTransaction(t *testing.T) ledger.Transaction {
	t.Helper()

	tx, err := ledger.NewTransaction("Alice Doe", "Bob Carter", decimal.NewFromInt(50))
	if err != nil {
		t.Fatalf("Should be able to construct a test transaction: %v", err)
	}

	return tx
}

func Test_BlockConstruction(t *testing.T) {
	t.Log("Given the need to construct a valid block.")
	{
		tx := testTransaction(t)

		b, err := ledger.NewBlock(1, time.Now(), tx, signature.ZeroHash)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to construct the block: %v", failed, err)
		}
		t.Logf("\t%s\tShould be able to construct the block.", success)

		if !b.IsHashValid() {
			t.Errorf("\t%s\tShould have a valid hash immediately after construction.", failed)
		} else {
			t.Logf("\t%s\tShould have a valid hash immediately after construction.", success)
		}

		if b.Hash() == b.PrevHash() {
			t.Errorf("\t%s\tShould have a hash distinct from the previous hash.", failed)
		} else {
			t.Logf("\t%s\tShould have a hash distinct from the previous hash.", success)
		}

		if !signature.IsHash(b.Hash()) {
			t.Errorf("\t%s\tShould have a well formed hash, got %q.", failed, b.Hash())
		} else {
			t.Logf("\t%s\tShould have a well formed hash.", success)
		}

		if h := b.CalculateHash(); h != b.Hash() {
			t.Errorf("\t%s\tShould recompute the identical digest, got %q.", failed, h)
		} else {
			t.Logf("\t%s\tShould recompute the identical digest.", success)
		}
	}
}

func Test_BlockValidation(t *testing.T) {
	now := time.Now()
	tx := testTransaction(t)

	type table struct {
		name      string
		index     int
		timestamp time.Time
		data      ledger.Transaction
		prevHash  string
		message   string
		value     any
	}

	tt := []table{
		{name: "negative index", index: -1, timestamp: now, data: tx, prevHash: signature.ZeroHash, message: "Index cannot be negative", value: -1},
		{name: "zero timestamp", index: 1, timestamp: time.Time{}, data: tx, prevHash: signature.ZeroHash, message: "Timestamp cannot be null", value: nil},
		{name: "future timestamp", index: 1, timestamp: now.Add(time.Minute), data: tx, prevHash: signature.ZeroHash, message: "Timestamp cannot be in the future"},
		{name: "missing transaction", index: 1, timestamp: now, data: ledger.Transaction{}, prevHash: signature.ZeroHash, message: "Transaction data cannot be null", value: nil},
		{name: "empty previous hash", index: 1, timestamp: now, data: tx, prevHash: "", message: "Previous hash cannot be null or empty", value: ""},
		{name: "malformed previous hash", index: 1, timestamp: now, data: tx, prevHash: "i_am_not_a_hash!!", message: "Invalid hash format", value: "i_am_not_a_hash!!"},
		{name: "short previous hash", index: 1, timestamp: now, data: tx, prevHash: strings.Repeat("0", 68), message: "Invalid hash format", value: strings.Repeat("0", 68)},
	}

	t.Log("Given the need to reject invalid blocks.")
	{
		for testID, tst := range tt {
			t.Logf("\tTest %d:\tWhen handling a block with %s.", testID, tst.name)
			{
				_, err := ledger.NewBlock(tst.index, tst.timestamp, tst.data, tst.prevHash)
				if err == nil {
					t.Fatalf("\t%s\tTest %d:\tShould not be able to construct the block.", failed, testID)
				}
				t.Logf("\t%s\tTest %d:\tShould not be able to construct the block.", success, testID)

				var blkErr *ledger.BlockError
				if !errors.As(err, &blkErr) {
					t.Fatalf("\t%s\tTest %d:\tShould get back a BlockError: %v", failed, testID, err)
				}
				t.Logf("\t%s\tTest %d:\tShould get back a BlockError.", success, testID)

				if blkErr.Message != tst.message {
					t.Errorf("\t%s\tTest %d:\tShould get message %q, got %q.", failed, testID, tst.message, blkErr.Message)
				} else {
					t.Logf("\t%s\tTest %d:\tShould get message %q.", success, testID, tst.message)
				}

				if tst.name == "future timestamp" {
					continue
				}

				if blkErr.Value != tst.value {
					t.Errorf("\t%s\tTest %d:\tShould carry the offending value %v, got %v.", failed, testID, tst.value, blkErr.Value)
				} else {
					t.Logf("\t%s\tTest %d:\tShould carry the offending value.", success, testID)
				}
			}
		}
	}
}

func Test_GenesisBlock(t *testing.T) {
	t.Log("Given the need to seed a chain with a genesis block.")
	{
		b, err := ledger.Genesis()
		if err != nil {
			t.Fatalf("\t%s\tShould be able to construct the genesis block: %v", failed, err)
		}
		t.Logf("\t%s\tShould be able to construct the genesis block.", success)

		if b.Index() != 0 {
			t.Errorf("\t%s\tShould carry index 0, got %d.", failed, b.Index())
		} else {
			t.Logf("\t%s\tShould carry index 0.", success)
		}

		if b.PrevHash() != signature.ZeroHash {
			t.Errorf("\t%s\tShould carry the zero sentinel as previous hash, got %q.", failed, b.PrevHash())
		} else {
			t.Logf("\t%s\tShould carry the zero sentinel as previous hash.", success)
		}

		data := b.Data()
		if data.Sender() != ledger.GenesisParty || data.Receiver() != ledger.GenesisParty {
			t.Errorf("\t%s\tShould carry the Genesis transfer, got %q to %q.", failed, data.Sender(), data.Receiver())
		} else {
			t.Logf("\t%s\tShould carry the Genesis transfer.", success)
		}

		if !data.Amount().Equal(decimal.NewFromInt(1)) {
			t.Errorf("\t%s\tShould carry an amount of one, got %s.", failed, data.Amount())
		} else {
			t.Logf("\t%s\tShould carry an amount of one.", success)
		}

		if !b.IsHashValid() {
			t.Errorf("\t%s\tShould have a valid hash.", failed)
		} else {
			t.Logf("\t%s\tShould have a valid hash.", success)
		}
	}
}

func Test_BlockRendering(t *testing.T) {
	t.Log("Given the need to redact hidden transaction data in rendering.")
	{
		tx := testTransaction(t)

		open, err := ledger.NewBlock(1, time.Now(), tx, signature.ZeroHash)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to construct an open block: %v", failed, err)
		}
		if !strings.Contains(open.String(), tx.Sender()) {
			t.Errorf("\t%s\tShould render the transaction detail by default.", failed)
		} else {
			t.Logf("\t%s\tShould render the transaction detail by default.", success)
		}

		hidden, err := ledger.NewBlock(1, time.Now(), tx, signature.ZeroHash, ledger.WithHiddenData())
		if err != nil {
			t.Fatalf("\t%s\tShould be able to construct a hidden block: %v", failed, err)
		}
		if strings.Contains(hidden.String(), tx.Sender()) || !strings.Contains(hidden.String(), "hidden") {
			t.Errorf("\t%s\tShould substitute the redaction marker, got %s.", failed, hidden.String())
		} else {
			t.Logf("\t%s\tShould substitute the redaction marker.", success)
		}

		if !hidden.IsHashValid() {
			t.Errorf("\t%s\tShould hash identically regardless of redaction.", failed)
		} else {
			t.Logf("\t%s\tShould hash identically regardless of redaction.", success)
		}
	}
}
