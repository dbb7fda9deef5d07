package round

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fadedpez/blackjack/pkg/db/migrations"
	"github.com/fadedpez/blackjack/pkg/entities"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

const timeLayout = "2006-01-02 15:04:05.000"

// SQLiteRepository implements Repository using SQLite
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository opens dsn and brings the schema up to date
func NewSQLiteRepository(dsn string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

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

// SaveRound stores a settled round and its hands
func (r *SQLiteRepository) SaveRound(ctx context.Context, record *entities.RoundRecord) error {
	if record == nil {
		return ErrNilRecord
	}
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if record.CompletedAt.IsZero() {
		record.CompletedAt = time.Now()
	}

	dealerJSON, err := marshalCards(record.DealerCards)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO round_records (id, completed_at, dealer_cards, dealer_total, dealer_bust, split, message)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err = tx.ExecContext(ctx, query,
		record.ID,
		record.CompletedAt.UTC().Format(timeLayout),
		dealerJSON,
		record.DealerTotal,
		record.DealerBust,
		record.Split,
		record.Message,
	)
	if err != nil {
		return fmt.Errorf("error saving round: %w", err)
	}

	for i, h := range record.Hands {
		cardsJSON, err := marshalCards(h.Cards)
		if err != nil {
			return err
		}

		query := `
			INSERT INTO hand_records (round_id, position, cards, total, bust, doubled, bet, payout, result)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

		_, err = tx.ExecContext(ctx, query,
			record.ID, i, cardsJSON, h.Total, h.Bust, h.Doubled, h.Bet, h.Payout, string(h.Result))
		if err != nil {
			return fmt.Errorf("error saving hand: %w", err)
		}
	}

	return tx.Commit()
}

// GetRecentRounds retrieves the most recent rounds, oldest first
func (r *SQLiteRepository) GetRecentRounds(ctx context.Context, limit int) ([]*entities.RoundRecord, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}

	query := `
		SELECT id, completed_at, dealer_cards, dealer_total, dealer_bust, split, message
		FROM (
			SELECT * FROM round_records ORDER BY seq DESC LIMIT ?
		)
		ORDER BY seq ASC`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("error querying rounds: %w", err)
	}

	records := make([]*entities.RoundRecord, 0)
	for rows.Next() {
		var rec entities.RoundRecord
		var completedAt, dealerJSON string
		var message sql.NullString

		if err := rows.Scan(&rec.ID, &completedAt, &dealerJSON, &rec.DealerTotal, &rec.DealerBust, &rec.Split, &message); err != nil {
			rows.Close()
			return nil, fmt.Errorf("error scanning round: %w", err)
		}
		rec.Message = message.String

		if rec.CompletedAt, err = parseTime(completedAt); err != nil {
			rows.Close()
			return nil, err
		}
		if rec.DealerCards, err = unmarshalCards(dealerJSON); err != nil {
			rows.Close()
			return nil, err
		}
		records = append(records, &rec)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	// One connection: hands are read after the round cursor is released
	for _, rec := range records {
		if rec.Hands, err = r.getHands(ctx, rec.ID); err != nil {
			return nil, err
		}
	}

	return records, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) getHands(ctx context.Context, roundID string) ([]entities.HandRecord, error) {
	query := `
		SELECT cards, total, bust, doubled, bet, payout, result
		FROM hand_records WHERE round_id = ? ORDER BY position ASC`

	rows, err := r.db.QueryContext(ctx, query, roundID)
	if err != nil {
		return nil, fmt.Errorf("error querying hands: %w", err)
	}
	defer rows.Close()

	var hands []entities.HandRecord
	for rows.Next() {
		var h entities.HandRecord
		var cardsJSON, result string

		if err := rows.Scan(&cardsJSON, &h.Total, &h.Bust, &h.Doubled, &h.Bet, &h.Payout, &result); err != nil {
			return nil, fmt.Errorf("error scanning hand: %w", err)
		}
		if h.Cards, err = unmarshalCards(cardsJSON); err != nil {
			return nil, err
		}
		h.Result = entities.Result(result)
		hands = append(hands, h)
	}

	return hands, rows.Err()
}

func marshalCards(cards []entities.Card) (string, error) {
	ids := make([]string, len(cards))
	for i, c := range cards {
		ids[i] = c.ID()
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func unmarshalCards(data string) ([]entities.Card, error) {
	var ids []string
	if err := json.Unmarshal([]byte(data), &ids); err != nil {
		return nil, fmt.Errorf("error decoding cards: %w", err)
	}

	cards := make([]entities.Card, 0, len(ids))
	for _, id := range ids {
		c, err := entities.ParseCard(id)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// parseTime accepts the layouts SQLite may hand back for a TIMESTAMP column
func parseTime(value string) (time.Time, error) {
	for _, format := range []string{timeLayout, time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(format, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("error parsing timestamp '%s'", value)
}
