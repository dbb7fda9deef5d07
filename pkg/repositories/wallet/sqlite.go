package wallet

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/fadedpez/blackjack/pkg/db/migrations"
	"github.com/fadedpez/blackjack/pkg/entities"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

const timeLayout = "2006-01-02 15:04:05.000"

// SQLiteRepository implements Repository using SQLite. The default DSN is an
// in-memory database, so the ledger lives only as long as the process.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository opens dsn and brings the schema up to date
func NewSQLiteRepository(dsn string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	// An in-memory database disappears with its last connection
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	if err := migrations.Up(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("error applying migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

// GetWallet retrieves a wallet by player ID
func (r *SQLiteRepository) GetWallet(ctx context.Context, playerID string) (*entities.Wallet, error) {
	query := `SELECT player_id, balance, updated_at FROM wallets WHERE player_id = ?`

	var wallet entities.Wallet
	var updatedAt string

	err := r.db.QueryRowContext(ctx, query, playerID).Scan(
		&wallet.PlayerID,
		&wallet.Balance,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrWalletNotFound
		}
		return nil, fmt.Errorf("error getting wallet: %w", err)
	}

	wallet.LastUpdated, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return &wallet, nil
}

// SaveWallet creates or updates a wallet
func (r *SQLiteRepository) SaveWallet(ctx context.Context, wallet *entities.Wallet) error {
	wallet.LastUpdated = time.Now()
	formattedTime := wallet.LastUpdated.UTC().Format(timeLayout)

	query := `
		INSERT INTO wallets (player_id, balance, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(player_id) DO UPDATE SET
			balance = excluded.balance,
			updated_at = excluded.updated_at
	`

	if _, err := r.db.ExecContext(ctx, query, wallet.PlayerID, wallet.Balance, formattedTime); err != nil {
		return fmt.Errorf("error saving wallet: %w", err)
	}
	return nil
}

// AddTransaction records a new transaction
func (r *SQLiteRepository) AddTransaction(ctx context.Context, transaction *entities.Transaction) error {
	if transaction.ID == "" {
		transaction.ID = uuid.New().String()
	}
	if transaction.Timestamp.IsZero() {
		transaction.Timestamp = time.Now()
	}

	query := `
		INSERT INTO transactions (id, player_id, amount, type, reference_id, timestamp, balance_after)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		transaction.ID,
		transaction.PlayerID,
		transaction.Amount,
		string(transaction.Type),
		transaction.ReferenceID,
		transaction.Timestamp.UTC().Format(timeLayout),
		transaction.BalanceAfter,
	)
	if err != nil {
		return fmt.Errorf("error adding transaction: %w", err)
	}
	return nil
}

// GetTransactions retrieves recent transactions for a player, oldest first
func (r *SQLiteRepository) GetTransactions(ctx context.Context, playerID string, limit int) ([]*entities.Transaction, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}

	query := `
		SELECT id, player_id, amount, type, reference_id, timestamp, balance_after
		FROM (
			SELECT * FROM transactions WHERE player_id = ? ORDER BY seq DESC LIMIT ?
		)
		ORDER BY seq ASC
	`

	rows, err := r.db.QueryContext(ctx, query, playerID, limit)
	if err != nil {
		return nil, fmt.Errorf("error querying transactions: %w", err)
	}
	defer rows.Close()

	transactions := make([]*entities.Transaction, 0)
	for rows.Next() {
		var tx entities.Transaction
		var txType, timestamp string
		var referenceID sql.NullString

		if err := rows.Scan(&tx.ID, &tx.PlayerID, &tx.Amount, &txType, &referenceID, &timestamp, &tx.BalanceAfter); err != nil {
			return nil, fmt.Errorf("error scanning transaction: %w", err)
		}

		tx.Type = entities.TransactionType(txType)
		tx.ReferenceID = referenceID.String
		if tx.Timestamp, err = parseTime(timestamp); err != nil {
			return nil, err
		}
		transactions = append(transactions, &tx)
	}

	return transactions, rows.Err()
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// parseTime accepts the layouts SQLite may hand back for a TIMESTAMP column
func parseTime(value string) (time.Time, error) {
	formats := []string{
		timeLayout,
		"2006-01-02 15:04:05",
		time.RFC3339Nano,
		time.RFC3339,
	}

	var parseErr error
	for _, format := range formats {
		t, err := time.Parse(format, value)
		if err == nil {
			return t, nil
		}
		parseErr = err
	}
	return time.Time{}, fmt.Errorf("error parsing timestamp '%s': %w", value, parseErr)
}
