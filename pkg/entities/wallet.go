package entities

import (
	"time"
)

// Wallet holds the player's balance for the current session
type Wallet struct {
	PlayerID    string
	Balance     int64
	LastUpdated time.Time
}

// TransactionType represents the type of wallet transaction
type TransactionType string

const (
	TransactionTypeOpen   TransactionType = "OPEN"
	TransactionTypeBet    TransactionType = "BET"
	TransactionTypeDouble TransactionType = "DOUBLE"
	TransactionTypeSplit  TransactionType = "SPLIT"
	TransactionTypePayout TransactionType = "PAYOUT"
)

// Transaction represents a single balance change
type Transaction struct {
	ID           string          // Unique identifier
	PlayerID     string          // Wallet owner
	Amount       int64           // Positive for credits, negative for debits
	Type         TransactionType // Type of transaction
	ReferenceID  string          // Round ID the transaction belongs to
	Timestamp    time.Time       // When the transaction occurred
	BalanceAfter int64           // Balance after this transaction
}
