package entities

import (
	"math/rand"
	"time"
)

// DeckSize is the number of cards in a standard deck
const DeckSize = 52

type Deck struct {
	cards []Card
}

// NewDeck creates a deck of 52 cards, one of each rank and suit, shuffled with rng
func NewDeck(rng *rand.Rand) *Deck {
	cards := make([]Card, 0, DeckSize)
	for _, suit := range Suits {
		for _, rank := range Ranks {
			cards = append(cards, NewCard(rank, suit))
		}
	}

	rng.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})

	return &Deck{cards: cards}
}

// NewShuffledDeck creates a deck shuffled with a time-seeded source
func NewShuffledDeck() *Deck {
	return NewDeck(rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewStackedDeck creates a deck whose draws return drawOrder front to back.
// Used for replaying a known sequence.
func NewStackedDeck(drawOrder ...Card) *Deck {
	cards := make([]Card, len(drawOrder))
	for i, c := range drawOrder {
		cards[len(drawOrder)-1-i] = c
	}
	return &Deck{cards: cards}
}

// Draw removes and returns the card at the end of the deck.
// ok is false once the deck is exhausted.
func (d *Deck) Draw() (card Card, ok bool) {
	if len(d.cards) == 0 {
		return Card{}, false
	}
	last := len(d.cards) - 1
	card = d.cards[last]
	d.cards = d.cards[:last]
	return card, true
}

// Remaining returns the number of cards left to draw
func (d *Deck) Remaining() int {
	return len(d.cards)
}

// Cards returns a copy of the undrawn cards
func (d *Deck) Cards() []Card {
	out := make([]Card, len(d.cards))
	copy(out, d.cards)
	return out
}
