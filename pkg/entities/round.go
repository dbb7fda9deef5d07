package entities

import "time"

// Phase is the state of a blackjack round
type Phase string

const (
	PhaseBetting      Phase = "BETTING"
	PhaseDealing      Phase = "DEALING"
	PhasePlayerActing Phase = "PLAYER_ACTING"
	PhaseDealerActing Phase = "DEALER_ACTING"
	PhaseSettling     Phase = "SETTLING"
	PhaseRoundOver    Phase = "ROUND_OVER"
	PhaseExited       Phase = "EXITED"
)

// Result represents the outcome of one player hand against the dealer
type Result string

const (
	ResultWin  Result = "WIN"
	ResultLose Result = "LOSE"
	ResultPush Result = "PUSH"
)

// String returns the string representation of the result
func (r Result) String() string {
	return string(r)
}

// IsWin returns true if this result represents a win
func (r Result) IsWin() bool {
	return r == ResultWin
}

// HandRecord is the settled state of one player hand
type HandRecord struct {
	Cards   []Card
	Total   int
	Bust    bool
	Doubled bool
	Bet     int64
	Payout  int64
	Result  Result
}

// RoundRecord is a settled round kept in the session history
type RoundRecord struct {
	ID          string
	CompletedAt time.Time
	Hands       []HandRecord
	DealerCards []Card
	DealerTotal int
	DealerBust  bool
	Split       bool
	Message     string
}

// Wagered returns the total staked across all hands
func (r *RoundRecord) Wagered() int64 {
	var total int64
	for _, h := range r.Hands {
		total += h.Bet
	}
	return total
}

// Paid returns the total credited back across all hands
func (r *RoundRecord) Paid() int64 {
	var total int64
	for _, h := range r.Hands {
		total += h.Payout
	}
	return total
}
