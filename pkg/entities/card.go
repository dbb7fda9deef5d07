package entities

import (
	"fmt"
	"strings"
)

// Suit represents a card suit
type Suit string

const (
	Hearts   Suit = "hearts"
	Diamonds Suit = "diamonds"
	Clubs    Suit = "clubs"
	Spades   Suit = "spades"
)

// Suits lists the four suits in deck construction order
var Suits = []Suit{Hearts, Diamonds, Clubs, Spades}

// Symbol returns the suit glyph used in short card names
func (s Suit) Symbol() string {
	switch s {
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	case Spades:
		return "♠"
	}
	return "?"
}

// IsRed reports whether the suit is printed in red
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Rank represents a card rank
type Rank string

const (
	Two   Rank = "2"
	Three Rank = "3"
	Four  Rank = "4"
	Five  Rank = "5"
	Six   Rank = "6"
	Seven Rank = "7"
	Eight Rank = "8"
	Nine  Rank = "9"
	Ten   Rank = "10"
	Jack  Rank = "jack"
	Queen Rank = "queen"
	King  Rank = "king"
	Ace   Rank = "ace"
)

// Ranks lists the thirteen ranks in deck construction order
var Ranks = []Rank{Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King, Ace}

// Short returns the one or two character rank label
func (r Rank) Short() string {
	switch r {
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	case Ace:
		return "A"
	}
	return string(r)
}

// IsFace reports whether the rank is a jack, queen or king
func (r Rank) IsFace() bool {
	return r == Jack || r == Queen || r == King
}

// Card represents a playing card. Cards are compared by value.

type Card struct {
	Rank Rank
	Suit Suit
}

// NewCard creates a new card

func NewCard(rank Rank, suit Suit) Card {
	return Card{
		Rank: rank,
		Suit: suit,
	}
}

// ID returns the asset identifier of the card, e.g. "king_of_spades"
func (c Card) ID() string {
	return fmt.Sprintf("%s_of_%s", c.Rank, c.Suit)
}

// String returns the short representation of the card, e.g. "K♠"

func (c Card) String() string {
	return c.Rank.Short() + c.Suit.Symbol()
}

// ParseCard parses an identifier produced by Card.ID
func ParseCard(id string) (Card, error) {
	rank, suit, ok := strings.Cut(id, "_of_")
	if !ok {
		return Card{}, fmt.Errorf("invalid card id %q", id)
	}

	c := Card{Rank: Rank(rank), Suit: Suit(suit)}
	if !validRank(c.Rank) || !validSuit(c.Suit) {
		return Card{}, fmt.Errorf("invalid card id %q", id)
	}
	return c, nil
}

func validRank(r Rank) bool {
	for _, known := range Ranks {
		if r == known {
			return true
		}
	}
	return false
}

func validSuit(s Suit) bool {
	for _, known := range Suits {
		if s == known {
			return true
		}
	}
	return false
}
