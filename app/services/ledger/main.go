package main

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/ardanlabs/conf/v3"
	"github.com/ledgerlab/blockchain/foundation/events"
	"github.com/ledgerlab/blockchain/foundation/ledger"
	"github.com/ledgerlab/blockchain/foundation/logger"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// build is the git version of this program. It is set using build flags in the makefile.
var build = "develop"

func main() {

	// Construct the application logger.
	log, err := logger.New("LEDGER")
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	defer log.Sync()

	// Perform the startup and shutdown sequence.
	if err := run(log); err != nil {
		log.Errorw("startup", "ERROR", err)
		log.Sync()
		os.Exit(1)
	}
}

func run(log *zap.SugaredLogger) error {

	// =========================================================================
	// Configuration

	cfg := struct {
		conf.Version
		Chain struct {
			Name     string `conf:"default:my blockchain"`
			HideData bool   `conf:"default:false"`
		}
	}{
		Version: conf.Version{
			Build: build,
			Desc:  "copyright information here",
		},
	}

	const prefix = "LEDGER"
	help, err := conf.Parse(prefix, &cfg)
	if err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			fmt.Println(help)
			return nil
		}
		return fmt.Errorf("parsing config: %w", err)
	}

	// =========================================================================
	// App Starting

	log.Infow("starting service", "version", build)
	defer log.Infow("shutdown complete")

	out, err := conf.String(&cfg)
	if err != nil {
		return fmt.Errorf("generating config for output: %w", err)
	}
	log.Infow("startup", "config", out)

	// =========================================================================
	// Event Support

	// Anything that wants to watch blocks land registers with the events
	// value. The demo registers one listener that logs each accepted block.
	evts := events.New()

	ch := evts.Acquire("demo")

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for ev := range ch {
			log.Infow("block accepted", "chain", ev.Chain, "block", ev.Index, "hash", ev.Hash)
		}
	}()

	// =========================================================================
	// Build The Chain

	chain, err := ledger.New(
		ledger.WithName(cfg.Chain.Name),
		ledger.WithEventHandler(func(v string, args ...any) {
			log.Infof(v, args...)
		}),
	)
	if err != nil {
		return fmt.Errorf("constructing chain: %w", err)
	}

	transfers := []struct {
		sender   string
		receiver string
		amount   decimal.Decimal
		hidden   bool
	}{
		{sender: "Robert Smith", receiver: "Alice Jones", amount: decimal.NewFromFloat(32.50), hidden: true},
		{sender: "Mark Davis", receiver: "John Brown", amount: decimal.NewFromInt(1360)},
	}

	for _, tr := range transfers {
		tx, err := ledger.NewTransaction(tr.sender, tr.receiver, tr.amount)
		if err != nil {
			return fmt.Errorf("constructing transaction: %w", err)
		}

		var opts []ledger.BlockOption
		if tr.hidden || cfg.Chain.HideData {
			opts = append(opts, ledger.WithHiddenData())
		}

		blk, err := chain.CreateBlock(tx, opts...)
		if err != nil {
			return fmt.Errorf("creating block: %w", err)
		}

		evts.Send(events.BlockEvent{Chain: chain.Name(), Index: blk.Index(), Hash: blk.Hash()})
	}

	// =========================================================================
	// Verify And Render

	if err := chain.Verify(); err != nil {
		return fmt.Errorf("verifying chain: %w", err)
	}
	log.Infow("chain verified", "blocks", chain.Len())

	output, err := chain.Render(0, chain.Len())
	if err != nil {
		return fmt.Errorf("rendering chain: %w", err)
	}
	fmt.Print(output)

	evts.Shutdown()
	wg.Wait()

	return nil
}
