package wallet

import (
	"context"

	"github.com/fadedpez/blackjack/pkg/entities"
)

// WalletService is the balance surface the round engine depends on
type WalletService interface {
	Balance(ctx context.Context, playerID string) (int64, error)
	Debit(ctx context.Context, playerID string, amount int64, txType entities.TransactionType, referenceID string) (*entities.Wallet, error)
	Credit(ctx context.Context, playerID string, amount int64, txType entities.TransactionType, referenceID string) (*entities.Wallet, error)
}
