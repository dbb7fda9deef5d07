package blackjack

import (
	"github.com/fadedpez/blackjack/pkg/entities"
)

// Hand represents a set of dealt cards and their Blackjack evaluation.
// Every ace enters at 11 and is demoted to 1, one at a time, while the
// total exceeds 21.
type Hand struct {
	cards    []entities.Card
	total    int
	softAces int // aces still counted as 11
	bust     bool
}

// NewHand creates a new, empty hand
func NewHand() *Hand {
	return &Hand{
		cards: make([]entities.Card, 0, 4),
	}
}

// AddCard appends a card and re-evaluates the total and bust flag
func (h *Hand) AddCard(card entities.Card) {
	h.cards = append(h.cards, card)

	h.total += CardValue(card)
	if IsAce(card) {
		h.softAces++
	}
	for h.total > 21 && h.softAces > 0 {
		h.total -= 10
		h.softAces--
	}

	h.bust = h.total > 21
}

// Clear resets the hand to empty
func (h *Hand) Clear() {
	h.cards = h.cards[:0]
	h.total = 0
	h.softAces = 0
	h.bust = false
}

// Cards returns a copy of the cards in the hand, in dealt order
func (h *Hand) Cards() []entities.Card {
	out := make([]entities.Card, len(h.cards))
	copy(out, h.cards)
	return out
}

// Len returns the number of cards held
func (h *Hand) Len() int {
	return len(h.cards)
}

// Total returns the best total for the hand
func (h *Hand) Total() int {
	return h.total
}

// IsBust reports whether the total exceeds 21
func (h *Hand) IsBust() bool {
	return h.bust
}

// IsSoft reports whether an ace is still counted as 11
func (h *Hand) IsSoft() bool {
	return h.softAces > 0
}

// removeLast takes the most recently dealt card out of the hand. Only a
// split moves cards between hands.
func (h *Hand) removeLast() entities.Card {
	last := h.cards[len(h.cards)-1]
	rest := h.Cards()[:len(h.cards)-1]

	h.Clear()
	for _, c := range rest {
		h.AddCard(c)
	}
	return last
}
