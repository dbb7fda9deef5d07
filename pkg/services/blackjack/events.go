package blackjack

import (
	"context"

	"github.com/fadedpez/blackjack/pkg/entities"
)

// Action is a discrete input consumed by the round engine
type Action string

const (
	ActionPlaceBet     Action = "PLACE_BET"
	ActionConfirmBet   Action = "CONFIRM_BET"
	ActionHit          Action = "HIT"
	ActionStand        Action = "STAND"
	ActionDouble       Action = "DOUBLE"
	ActionSplit        Action = "SPLIT"
	ActionNextRound    Action = "NEXT_ROUND"
	ActionReturnToMenu Action = "RETURN_TO_MENU"
	ActionQuit         Action = "QUIT"
)

// Event is an action plus its argument. Delta is only read by ActionPlaceBet.
type Event struct {
	Action Action
	Delta  int64
}

// PaceEvent names the moments the engine pauses for presentation
type PaceEvent string

const (
	PaceReveal     PaceEvent = "REVEAL"
	PaceDealerDraw PaceEvent = "DEALER_DRAW"
	PaceResult     PaceEvent = "RESULT"
)

// Pacer is called synchronously at each pacing point with the current view.
// Implementations block for as long as the pause lasts.
type Pacer interface {
	Pace(ctx context.Context, event PaceEvent, view View)
}

// NoPacer never pauses
type NoPacer struct{}

func (NoPacer) Pace(context.Context, PaceEvent, View) {}

// DeckFactory produces the deck for a new round
type DeckFactory func() *entities.Deck
