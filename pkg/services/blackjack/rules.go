package blackjack

import (
	"fmt"
	"strconv"

	"github.com/fadedpez/blackjack/pkg/entities"
)

// SplitRule decides which two-card hands may be split
type SplitRule string

const (
	// SplitTenValue allows any pair of equal value, so 10 and king split
	SplitTenValue SplitRule = "ten-value"
	// SplitSameRank allows only identical ranks
	SplitSameRank SplitRule = "same-rank"
)

// PushRule decides what a tied hand returns
type PushRule string

const (
	PushReturnStake PushRule = "return"
	PushForfeit     PushRule = "forfeit"
)

// Rules holds the table configuration for a session
type Rules struct {
	MinBet           int64
	BetStep          int64
	SplitRule        SplitRule
	PushRule         PushRule
	DoubleAfterSplit bool
	DealerStandsOn   int
}

// DefaultRules returns the standard table configuration
func DefaultRules() Rules {
	return Rules{
		MinBet:           5,
		BetStep:          5,
		SplitRule:        SplitTenValue,
		PushRule:         PushReturnStake,
		DoubleAfterSplit: true,
		DealerStandsOn:   17,
	}
}

// Validate checks the rules are playable
func (r Rules) Validate() error {
	if r.MinBet <= 0 {
		return fmt.Errorf("minimum bet must be positive, got %d", r.MinBet)
	}
	if r.BetStep <= 0 {
		return fmt.Errorf("bet step must be positive, got %d", r.BetStep)
	}
	if r.SplitRule != SplitTenValue && r.SplitRule != SplitSameRank {
		return fmt.Errorf("unknown split rule %q", r.SplitRule)
	}
	if r.PushRule != PushReturnStake && r.PushRule != PushForfeit {
		return fmt.Errorf("unknown push rule %q", r.PushRule)
	}
	if r.DealerStandsOn < 2 || r.DealerStandsOn > 21 {
		return fmt.Errorf("dealer threshold out of range: %d", r.DealerStandsOn)
	}
	return nil
}

// CardValue returns the point value of a card with aces counted as 11
func CardValue(card entities.Card) int {
	switch {
	case card.Rank == entities.Ace:
		return 11
	case card.Rank.IsFace():
		return 10
	default:
		val, _ := strconv.Atoi(string(card.Rank))
		return val
	}
}

func IsAce(card entities.Card) bool {
	return card.Rank == entities.Ace
}

// Score evaluates a sequence of cards as a hand would
func Score(cards []entities.Card) int {
	h := NewHand()
	for _, c := range cards {
		h.AddCard(c)
	}
	return h.Total()
}

// CanSplitPair reports whether two cards qualify for a split under the rule
func (r Rules) CanSplitPair(a, b entities.Card) bool {
	if a.Rank == b.Rank {
		return true
	}
	if r.SplitRule == SplitTenValue {
		return CardValue(a) == 10 && CardValue(b) == 10
	}
	return false
}

// Evaluate compares one player hand against the dealer
func Evaluate(player, dealer *Hand) entities.Result {
	switch {
	case player.IsBust():
		return entities.ResultLose
	case dealer.IsBust() || player.Total() > dealer.Total():
		return entities.ResultWin
	case player.Total() == dealer.Total():
		return entities.ResultPush
	default:
		return entities.ResultLose
	}
}

// Payout returns the amount credited back for a settled hand. The stake was
// debited when it was placed, so a win returns twice the stake.
func (r Rules) Payout(result entities.Result, stake int64) int64 {
	switch result {
	case entities.ResultWin:
		return stake * 2
	case entities.ResultPush:
		if r.PushRule == PushForfeit {
			return 0
		}
		return stake
	default:
		return 0
	}
}
