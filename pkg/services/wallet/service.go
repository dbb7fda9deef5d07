package wallet

import (
	"context"
	"errors"
	"time"

	"github.com/fadedpez/blackjack/pkg/entities"
	walletRepo "github.com/fadedpez/blackjack/pkg/repositories/wallet"
	"github.com/google/uuid"
)

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrNegativeAmount    = errors.New("amount must be positive")
)

// Service handles wallet business logic
type Service struct {
	repo walletRepo.Repository
}

// NewService creates a new wallet service
func NewService(repo walletRepo.Repository) *Service {
	return &Service{
		repo: repo,
	}
}

// Open retrieves the player's wallet, creating it with startingBalance if it
// doesn't exist. The bool result reports whether the wallet was created.
func (s *Service) Open(ctx context.Context, playerID string, startingBalance int64) (*entities.Wallet, bool, error) {
	wallet, err := s.repo.GetWallet(ctx, playerID)
	if err == nil {
		return wallet, false, nil
	}
	if !errors.Is(err, walletRepo.ErrWalletNotFound) {
		return nil, false, err
	}
	if startingBalance < 0 {
		return nil, false, ErrNegativeAmount
	}

	newWallet := &entities.Wallet{
		PlayerID:    playerID,
		Balance:     startingBalance,
		LastUpdated: time.Now(),
	}
	if err := s.repo.SaveWallet(ctx, newWallet); err != nil {
		return nil, false, err
	}

	if err := s.record(ctx, newWallet, startingBalance, entities.TransactionTypeOpen, ""); err != nil {
		return nil, false, err
	}

	return newWallet, true, nil
}

// Balance returns the current balance for a player
func (s *Service) Balance(ctx context.Context, playerID string) (int64, error) {
	wallet, err := s.repo.GetWallet(ctx, playerID)
	if err != nil {
		return 0, err
	}
	return wallet.Balance, nil
}

// Debit removes amount from the wallet. The balance never goes negative: a
// debit larger than the balance fails with ErrInsufficientFunds and leaves
// the wallet untouched.
func (s *Service) Debit(ctx context.Context, playerID string, amount int64, txType entities.TransactionType, referenceID string) (*entities.Wallet, error) {
	if amount <= 0 {
		return nil, ErrNegativeAmount
	}

	wallet, err := s.repo.GetWallet(ctx, playerID)
	if err != nil {
		return nil, err
	}

	if wallet.Balance < amount {
		return nil, ErrInsufficientFunds
	}

	wallet.Balance -= amount
	if err := s.repo.SaveWallet(ctx, wallet); err != nil {
		return nil, err
	}

	return wallet, s.record(ctx, wallet, -amount, txType, referenceID)
}

// Credit adds amount to the wallet
func (s *Service) Credit(ctx context.Context, playerID string, amount int64, txType entities.TransactionType, referenceID string) (*entities.Wallet, error) {
	if amount <= 0 {
		return nil, ErrNegativeAmount
	}

	wallet, err := s.repo.GetWallet(ctx, playerID)
	if err != nil {
		return nil, err
	}

	wallet.Balance += amount
	if err := s.repo.SaveWallet(ctx, wallet); err != nil {
		return nil, err
	}

	return wallet, s.record(ctx, wallet, amount, txType, referenceID)
}

// Transactions retrieves recent transactions for a player
func (s *Service) Transactions(ctx context.Context, playerID string, limit int) ([]*entities.Transaction, error) {
	return s.repo.GetTransactions(ctx, playerID, limit)
}

func (s *Service) record(ctx context.Context, wallet *entities.Wallet, amount int64, txType entities.TransactionType, referenceID string) error {
	return s.repo.AddTransaction(ctx, &entities.Transaction{
		ID:           uuid.New().String(),
		PlayerID:     wallet.PlayerID,
		Amount:       amount,
		Type:         txType,
		ReferenceID:  referenceID,
		Timestamp:    time.Now(),
		BalanceAfter: wallet.Balance,
	})
}
