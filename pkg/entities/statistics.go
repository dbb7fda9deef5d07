package entities

// SessionStatistics represents aggregated results for the current session
type SessionStatistics struct {
	RoundsPlayed int
	HandsPlayed  int
	Wins         int
	Losses       int
	Pushes       int
	Busts        int
	Splits       int
	DoubleDowns  int
	TotalBet     int64
	TotalPaid    int64
}

// NetProfit calculates the player's net profit
func (s *SessionStatistics) NetProfit() int64 {
	return s.TotalPaid - s.TotalBet
}

// WinRate calculates the hand win rate as a percentage
func (s *SessionStatistics) WinRate() float64 {
	if s.HandsPlayed == 0 {
		return 0.0
	}
	return float64(s.Wins) / float64(s.HandsPlayed) * 100.0
}
