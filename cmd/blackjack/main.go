package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fadedpez/blackjack/internal/config"
	"github.com/fadedpez/blackjack/internal/logging"
	"github.com/fadedpez/blackjack/pkg/repositories/round"
	walletRepo "github.com/fadedpez/blackjack/pkg/repositories/wallet"
	"github.com/fadedpez/blackjack/pkg/services/assets"
	"github.com/fadedpez/blackjack/pkg/services/blackjack"
	"github.com/fadedpez/blackjack/pkg/services/wallet"
	"github.com/fadedpez/blackjack/pkg/terminal"
)

const playerID = "player"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Default.Fatal("Error loading configuration: %v", err)
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		logging.Default.Fatal("Error loading configuration: %v", err)
	}
	logger := logging.NewLogger(level)

	if err := run(cfg, logger); err != nil {
		logger.LogError(err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *logging.Logger) error {
	// Missing art is fatal before any play begins
	art, err := assets.NewService(cfg.AssetsDir)
	if err != nil {
		return err
	}
	if missing := art.Missing(); len(missing) > 0 {
		logger.Debug("%d card faces have no art, drawing generated faces", len(missing))
	}

	ledger, history, closeAll, err := openStores(cfg, logger)
	if err != nil {
		return err
	}
	defer closeAll()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	wallets := wallet.NewService(ledger)
	if _, _, err := wallets.Open(ctx, playerID, cfg.StartingBalance); err != nil {
		return fmt.Errorf("error opening wallet: %w", err)
	}

	app, err := terminal.NewApp(terminal.Options{
		PlayerID:   playerID,
		Rules:      tableRules(cfg),
		DefaultBet: cfg.DefaultBet,
		Pacing:     cfg.Pacing,
	}, wallets, history, art, os.Stdin, os.Stdout, logger)
	if err != nil {
		return err
	}

	if err := app.Run(ctx); err != nil {
		return err
	}

	balance, err := wallets.Balance(context.Background(), playerID)
	if err == nil {
		fmt.Printf("Thanks for playing! You leave the table with $%d.\n", balance)
	}
	return nil
}

// openStores picks the ledger and history backends. Both live only as long
// as the process.
func openStores(cfg *config.Config, logger *logging.Logger) (walletRepo.Repository, round.Repository, func(), error) {
	if cfg.LedgerDriver != config.LedgerSQLite {
		logger.Debug("Using in-memory ledger")
		ledger := walletRepo.NewMemoryRepository()
		return ledger, round.NewMemoryRepository(), func() { ledger.Close() }, nil
	}

	logger.Debug("Using SQLite ledger at %s", cfg.SQLiteDSN)
	ledger, err := walletRepo.NewSQLiteRepository(cfg.SQLiteDSN)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("error opening ledger: %w", err)
	}
	history, err := round.NewSQLiteRepository(cfg.SQLiteDSN)
	if err != nil {
		ledger.Close()
		return nil, nil, nil, fmt.Errorf("error opening round history: %w", err)
	}

	closeAll := func() {
		if err := history.Close(); err != nil {
			logger.Warn("Error closing round history: %v", err)
		}
		if err := ledger.Close(); err != nil {
			logger.Warn("Error closing ledger: %v", err)
		}
	}
	return ledger, history, closeAll, nil
}

func tableRules(cfg *config.Config) blackjack.Rules {
	return blackjack.Rules{
		MinBet:           cfg.MinBet,
		BetStep:          cfg.BetStep,
		SplitRule:        blackjack.SplitRule(cfg.SplitRule),
		PushRule:         blackjack.PushRule(cfg.PushRule),
		DoubleAfterSplit: cfg.DoubleAfterSplit,
		DealerStandsOn:   cfg.DealerStandsOn,
	}
}
