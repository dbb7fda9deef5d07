package blackjack

import (
	"github.com/fadedpez/blackjack/pkg/entities"
)

// HandView is the displayable state of one player hand
type HandView struct {
	Cards   []entities.Card
	Total   int
	Bust    bool
	Soft    bool
	Bet     int64
	Doubled bool
	Active  bool
	Result  entities.Result // empty until settled
}

// DealerView is the displayable state of the dealer hand. While HoleHidden is
// set, Total is zero and only UpValue may be shown.
type DealerView struct {
	Cards      []entities.Card
	HoleHidden bool
	UpValue    int
	Total      int
	Bust       bool
}

// View is a read-only snapshot of the engine for rendering
type View struct {
	Phase        entities.Phase
	RoundID      string
	Balance      int64
	Bet          int64 // pending bet while betting, total wager during a round
	Player       []HandView
	Dealer       DealerView
	Status       string
	Message      string
	LastWinnings int64
	LastLosses   int64
	Available    []Action
	CanContinue  bool
}

// Allows reports whether action is currently available
func (v View) Allows(action Action) bool {
	for _, a := range v.Available {
		if a == action {
			return true
		}
	}
	return false
}
