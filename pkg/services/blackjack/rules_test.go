package blackjack

import (
	"testing"

	"github.com/fadedpez/blackjack/pkg/entities"
	"github.com/stretchr/testify/assert"
)

func TestCardValue(t *testing.T) {
	assert.Equal(t, 11, CardValue(c(entities.Ace)))
	assert.Equal(t, 10, CardValue(c(entities.King)))
	assert.Equal(t, 10, CardValue(c(entities.Queen)))
	assert.Equal(t, 10, CardValue(c(entities.Jack)))
	assert.Equal(t, 10, CardValue(c(entities.Ten)))
	assert.Equal(t, 2, CardValue(c(entities.Two)))
	assert.Equal(t, 7, CardValue(c(entities.Seven)))
}

func TestCanSplitPair(t *testing.T) {
	tenHearts := entities.NewCard(entities.Ten, entities.Hearts)
	kingSpades := entities.NewCard(entities.King, entities.Spades)

	tenValue := DefaultRules()
	sameRank := DefaultRules()
	sameRank.SplitRule = SplitSameRank

	tests := []struct {
		name string
		rule Rules
		a, b entities.Card
		want bool
	}{
		{"ten and king under ten-value", tenValue, tenHearts, kingSpades, true},
		{"ten and king under same-rank", sameRank, tenHearts, kingSpades, false},
		{"queen and jack under ten-value", tenValue, c(entities.Queen), c(entities.Jack), true},
		{"eights under same-rank", sameRank, entities.NewCard(entities.Eight, entities.Hearts), c(entities.Eight), true},
		{"aces under ten-value", tenValue, c(entities.Ace), entities.NewCard(entities.Ace, entities.Clubs), true},
		{"nine and ten", tenValue, c(entities.Nine), c(entities.Ten), false},
		{"ace and king", tenValue, c(entities.Ace), c(entities.King), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rule.CanSplitPair(tt.a, tt.b))
		})
	}
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name   string
		player *Hand
		dealer *Hand
		want   entities.Result
	}{
		{"player bust loses even if dealer busts",
			handOf(c(entities.Ten), c(entities.Nine), c(entities.Five)),
			handOf(c(entities.Ten), c(entities.Six), c(entities.King)),
			entities.ResultLose},
		{"dealer bust",
			handOf(c(entities.Ten), c(entities.Two)),
			handOf(c(entities.Ten), c(entities.Six), c(entities.King)),
			entities.ResultWin},
		{"higher total",
			handOf(c(entities.Ten), c(entities.King)),
			handOf(c(entities.Ten), c(entities.Nine)),
			entities.ResultWin},
		{"equal totals",
			handOf(c(entities.Ten), c(entities.Eight)),
			handOf(c(entities.Nine), c(entities.Nine)),
			entities.ResultPush},
		{"lower total",
			handOf(c(entities.Ten), c(entities.Seven)),
			handOf(c(entities.Ten), c(entities.Eight)),
			entities.ResultLose},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Evaluate(tt.player, tt.dealer))
		})
	}
}

func TestPayout(t *testing.T) {
	rules := DefaultRules()
	assert.Equal(t, int64(20), rules.Payout(entities.ResultWin, 10))
	assert.Equal(t, int64(10), rules.Payout(entities.ResultPush, 10))
	assert.Equal(t, int64(0), rules.Payout(entities.ResultLose, 10))

	rules.PushRule = PushForfeit
	assert.Equal(t, int64(0), rules.Payout(entities.ResultPush, 10))
	assert.Equal(t, int64(20), rules.Payout(entities.ResultWin, 10))
}

func TestRulesValidate(t *testing.T) {
	assert.NoError(t, DefaultRules().Validate())

	broken := []func(r *Rules){
		func(r *Rules) { r.MinBet = 0 },
		func(r *Rules) { r.BetStep = -5 },
		func(r *Rules) { r.SplitRule = "any" },
		func(r *Rules) { r.PushRule = "double" },
		func(r *Rules) { r.DealerStandsOn = 22 },
	}
	for _, mutate := range broken {
		r := DefaultRules()
		mutate(&r)
		assert.Error(t, r.Validate())
	}
}
