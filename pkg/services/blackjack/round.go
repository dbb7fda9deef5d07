package blackjack

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fadedpez/blackjack/internal/logging"
	"github.com/fadedpez/blackjack/internal/types"
	"github.com/fadedpez/blackjack/pkg/entities"
	roundRepo "github.com/fadedpez/blackjack/pkg/repositories/round"
	"github.com/fadedpez/blackjack/pkg/services/wallet"
	"github.com/google/uuid"
)

// Status messages shown to the player
const (
	msgNotEnoughBalance = "Not enough balance! Brokie!"
	msgNotEnoughDouble  = "Not enough balance for double down! Brokie!"
	msgNotEnoughSplit   = "Not enough balance to split! Brokie!"
	msgBroke            = "You're out of money. Back to the menu!"
)

// seat is one player hand in play along with its stake
type seat struct {
	hand      *Hand
	bet       int64
	firstMove bool // no action taken yet, so Double is still possible
	doubled   bool
	finished  bool
	result    entities.Result
	payout    int64
}

// Engine runs single-player Blackjack rounds against a fixed dealer policy.
// It starts in the betting phase and keeps the balance across rounds until
// the player leaves.
type Engine struct {
	playerID string
	rules    Rules
	wallet   wallet.WalletService
	history  roundRepo.Repository
	newDeck  DeckFactory
	pacer    Pacer
	logger   *logging.Logger

	phase   entities.Phase
	balance int64
	bet     int64 // last confirmed bet, reused as the default next round

	roundID   string
	deck      *entities.Deck
	dealer    *Hand
	seats     []*seat
	active    int
	splitDone bool

	status       string
	message      string
	lastWinnings int64
	lastLosses   int64
	quit         bool
}

// Option configures an Engine
type Option func(*Engine)

// WithDeckFactory replaces the shuffled deck used for each round
func WithDeckFactory(f DeckFactory) Option {
	return func(e *Engine) { e.newDeck = f }
}

// WithPacer sets the presentation pacing hook
func WithPacer(p Pacer) Option {
	return func(e *Engine) { e.pacer = p }
}

// WithLogger sets the engine logger
func WithLogger(l *logging.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithDefaultBet sets the bet offered in the first round
func WithDefaultBet(bet int64) Option {
	return func(e *Engine) { e.bet = bet }
}

// NewEngine creates an engine in the betting phase for the player's wallet,
// which must already exist.
func NewEngine(ctx context.Context, playerID string, rules Rules, walletSvc wallet.WalletService, history roundRepo.Repository, opts ...Option) (*Engine, error) {
	if err := rules.Validate(); err != nil {
		return nil, types.WrapError(types.ErrInvalidArgument, "invalid table rules", err)
	}

	e := &Engine{
		playerID: playerID,
		rules:    rules,
		wallet:   walletSvc,
		history:  history,
		newDeck:  entities.NewShuffledDeck,
		pacer:    NoPacer{},
		logger:   logging.Default,
		phase:    entities.PhaseBetting,
		bet:      rules.MinBet,
	}
	for _, opt := range opts {
		opt(e)
	}

	balance, err := walletSvc.Balance(ctx, playerID)
	if err != nil {
		return nil, types.WrapError(types.ErrWalletNotFound, "could not read balance", err)
	}
	e.balance = balance

	if e.bet < rules.MinBet {
		e.bet = rules.MinBet
	}
	e.clampBet()

	return e, nil
}

// Phase returns the current round phase
func (e *Engine) Phase() entities.Phase {
	return e.phase
}

// Balance returns the player's balance as last seen by the engine
func (e *Engine) Balance() int64 {
	return e.balance
}

// Bet returns the last confirmed bet, or the pending one while betting
func (e *Engine) Bet() int64 {
	return e.bet
}

// QuitRequested reports whether the player asked to close the game
func (e *Engine) QuitRequested() bool {
	return e.quit
}

// Dispatch applies one input event. Rejected events return an error, leave
// the state unchanged, and set the status message.
func (e *Engine) Dispatch(ctx context.Context, ev Event) error {
	var err error
	switch ev.Action {
	case ActionPlaceBet:
		err = e.PlaceBet(ev.Delta)
	case ActionConfirmBet:
		err = e.ConfirmBet(ctx)
	case ActionHit:
		err = e.Hit(ctx)
	case ActionStand:
		err = e.Stand(ctx)
	case ActionDouble:
		err = e.Double(ctx)
	case ActionSplit:
		err = e.Split(ctx)
	case ActionNextRound:
		err = e.NextRound()
	case ActionReturnToMenu:
		err = e.ReturnToMenu()
	case ActionQuit:
		err = e.Quit()
	default:
		err = e.reject(types.ErrInvalidAction, fmt.Sprintf("Unknown action %q", ev.Action))
	}
	return err
}

// PlaceBet adjusts the pending bet by delta. The bet stays between the
// table minimum and the current balance.
func (e *Engine) PlaceBet(delta int64) error {
	if e.phase != entities.PhaseBetting {
		return e.invalid(ActionPlaceBet)
	}

	next := e.bet + delta
	if next < e.rules.MinBet {
		return e.reject(types.ErrInvalidArgument, fmt.Sprintf("Minimum bet is $%d", e.rules.MinBet))
	}
	if next > e.balance {
		return e.reject(types.ErrInsufficientBalance, msgNotEnoughBalance)
	}

	e.bet = next
	e.status = ""
	e.lastWinnings, e.lastLosses = 0, 0
	return nil
}

// ConfirmBet stakes the pending bet and deals the opening cards
func (e *Engine) ConfirmBet(ctx context.Context) error {
	if e.phase != entities.PhaseBetting {
		return e.invalid(ActionConfirmBet)
	}
	if e.bet > e.balance {
		return e.reject(types.ErrInsufficientBalance, msgNotEnoughBalance)
	}

	roundID := uuid.New().String()
	if err := e.debit(ctx, e.bet, entities.TransactionTypeBet, roundID, msgNotEnoughBalance); err != nil {
		return err
	}

	e.phase = entities.PhaseDealing
	e.roundID = roundID
	e.deck = e.newDeck()
	e.dealer = NewHand()
	e.seats = []*seat{{hand: NewHand(), bet: e.bet, firstMove: true}}
	e.active = 0
	e.splitDone = false
	e.status = ""
	e.message = ""
	e.lastWinnings, e.lastLosses = 0, 0
	e.logger.Debug("round %s: bet $%d staked, balance $%d", roundID, e.bet, e.balance)

	// Player, dealer, player, dealer
	for i := 0; i < 2; i++ {
		if err := e.drawInto(e.seats[0].hand); err != nil {
			return err
		}
		if err := e.drawInto(e.dealer); err != nil {
			return err
		}
	}

	e.phase = entities.PhasePlayerActing
	return nil
}

// Hit draws one card into the active hand
func (e *Engine) Hit(ctx context.Context) error {
	if e.phase != entities.PhasePlayerActing {
		return e.invalid(ActionHit)
	}

	s := e.seats[e.active]
	if err := e.drawInto(s.hand); err != nil {
		return err
	}
	s.firstMove = false
	e.status = ""

	if s.hand.IsBust() {
		s.finished = true
		return e.advance(ctx, fmt.Sprintf("Hand %d Busted! Switching to Hand %d.", e.active+1, e.active+2))
	}
	return nil
}

// Stand ends play on the active hand
func (e *Engine) Stand(ctx context.Context) error {
	if e.phase != entities.PhasePlayerActing {
		return e.invalid(ActionStand)
	}

	e.seats[e.active].finished = true
	return e.advance(ctx, fmt.Sprintf("Switching to Hand %d.", e.active+2))
}

// Double doubles the active hand's stake, draws exactly one card and ends
// play on that hand
func (e *Engine) Double(ctx context.Context) error {
	if e.phase != entities.PhasePlayerActing || !e.canDouble() {
		return e.invalid(ActionDouble)
	}

	s := e.seats[e.active]
	if s.bet > e.balance {
		return e.reject(types.ErrInsufficientBalance, msgNotEnoughDouble)
	}
	if err := e.debit(ctx, s.bet, entities.TransactionTypeDouble, e.roundID, msgNotEnoughDouble); err != nil {
		return err
	}

	s.bet *= 2
	s.doubled = true
	s.firstMove = false
	if err := e.drawInto(s.hand); err != nil {
		return err
	}
	s.finished = true

	next := fmt.Sprintf("Doubled Down! Switching to Hand %d.", e.active+2)
	if s.hand.IsBust() {
		next = fmt.Sprintf("Hand %d Busted! Switching to Hand %d.", e.active+1, e.active+2)
	}
	return e.advance(ctx, next)
}

// Split divides the opening pair into two hands, each carrying the
// original stake
func (e *Engine) Split(ctx context.Context) error {
	if e.phase != entities.PhasePlayerActing || !e.splittable() {
		return e.invalid(ActionSplit)
	}

	first := e.seats[0]
	if first.bet > e.balance {
		return e.reject(types.ErrInsufficientBalance, msgNotEnoughSplit)
	}
	if err := e.debit(ctx, first.bet, entities.TransactionTypeSplit, e.roundID, msgNotEnoughSplit); err != nil {
		return err
	}

	second := &seat{hand: NewHand(), bet: first.bet, firstMove: true}
	second.hand.AddCard(first.hand.removeLast())
	e.seats = append(e.seats, second)
	e.splitDone = true

	if err := e.drawInto(first.hand); err != nil {
		return err
	}
	if err := e.drawInto(second.hand); err != nil {
		return err
	}
	first.firstMove = true
	e.active = 0
	e.status = "Hand split! Playing Hand 1 first."
	return nil
}

// NextRound returns to betting, keeping the balance and the last bet
func (e *Engine) NextRound() error {
	if e.phase != entities.PhaseRoundOver {
		return e.invalid(ActionNextRound)
	}
	if !e.canContinue() {
		return e.reject(types.ErrInsufficientBalance, msgBroke)
	}

	e.phase = entities.PhaseBetting
	e.roundID = ""
	e.deck = nil
	e.dealer = nil
	e.seats = nil
	e.active = 0
	e.splitDone = false
	e.status = ""
	e.message = ""
	e.clampBet()
	return nil
}

// ReturnToMenu leaves the engine between rounds
func (e *Engine) ReturnToMenu() error {
	if e.phase != entities.PhaseBetting && e.phase != entities.PhaseRoundOver {
		return e.invalid(ActionReturnToMenu)
	}
	e.phase = entities.PhaseExited
	return nil
}

// Quit leaves the engine from any phase. A round in progress is abandoned
// and its stake is not returned.
func (e *Engine) Quit() error {
	if e.phase == entities.PhaseExited && e.quit {
		return e.invalid(ActionQuit)
	}
	if e.roundID != "" && e.phase != entities.PhaseRoundOver {
		e.logger.Info("round %s abandoned with $%d staked", e.roundID, e.wagered())
	}
	e.phase = entities.PhaseExited
	e.quit = true
	return nil
}

// Available lists the actions accepted in the current state
func (e *Engine) Available() []Action {
	switch e.phase {
	case entities.PhaseBetting:
		return []Action{ActionPlaceBet, ActionConfirmBet, ActionReturnToMenu, ActionQuit}
	case entities.PhasePlayerActing:
		actions := []Action{ActionHit, ActionStand}
		if e.canDouble() {
			actions = append(actions, ActionDouble)
		}
		if e.splittable() {
			actions = append(actions, ActionSplit)
		}
		return append(actions, ActionQuit)
	case entities.PhaseRoundOver:
		if e.canContinue() {
			return []Action{ActionNextRound, ActionReturnToMenu, ActionQuit}
		}
		return []Action{ActionReturnToMenu, ActionQuit}
	case entities.PhaseExited:
		return nil
	default:
		return []Action{ActionQuit}
	}
}

// View returns a snapshot of the engine for rendering
func (e *Engine) View() View {
	v := View{
		Phase:        e.phase,
		RoundID:      e.roundID,
		Balance:      e.balance,
		Bet:          e.bet,
		Status:       e.status,
		Message:      e.message,
		LastWinnings: e.lastWinnings,
		LastLosses:   e.lastLosses,
		Available:    e.Available(),
		CanContinue:  e.canContinue(),
	}

	if len(e.seats) > 0 {
		v.Bet = e.wagered()
	}

	settled := e.phase == entities.PhaseRoundOver
	for i, s := range e.seats {
		hv := HandView{
			Cards:   s.hand.Cards(),
			Total:   s.hand.Total(),
			Bust:    s.hand.IsBust(),
			Soft:    s.hand.IsSoft(),
			Bet:     s.bet,
			Doubled: s.doubled,
			Active:  e.phase == entities.PhasePlayerActing && i == e.active,
		}
		if settled {
			hv.Result = s.result
		}
		v.Player = append(v.Player, hv)
	}

	if e.dealer != nil {
		v.Dealer = DealerView{Cards: e.dealer.Cards()}
		hidden := e.phase == entities.PhaseDealing || e.phase == entities.PhasePlayerActing
		if hidden {
			v.Dealer.HoleHidden = true
			if e.dealer.Len() > 0 {
				v.Dealer.UpValue = CardValue(v.Dealer.Cards[0])
			}
		} else {
			v.Dealer.Total = e.dealer.Total()
			v.Dealer.Bust = e.dealer.IsBust()
		}
	}

	return v
}

// advance moves play to the next unfinished hand, or to the dealer once
// every hand is finished
func (e *Engine) advance(ctx context.Context, switchMsg string) error {
	for i := e.active + 1; i < len(e.seats); i++ {
		if !e.seats[i].finished {
			e.active = i
			e.seats[i].firstMove = true
			e.status = switchMsg
			return nil
		}
	}
	return e.playDealer(ctx)
}

// playDealer reveals the hole card, draws to the threshold unless every
// player hand is already bust, then settles
func (e *Engine) playDealer(ctx context.Context) error {
	e.phase = entities.PhaseDealerActing
	e.pacer.Pace(ctx, PaceReveal, e.View())

	if !e.allBust() {
		for e.dealer.Total() < e.rules.DealerStandsOn {
			if err := e.drawInto(e.dealer); err != nil {
				return err
			}
			e.pacer.Pace(ctx, PaceDealerDraw, e.View())
		}
	}

	e.phase = entities.PhaseSettling
	if err := e.settle(ctx); err != nil {
		return err
	}

	e.phase = entities.PhaseRoundOver
	if !e.canContinue() {
		e.status = msgBroke
	}
	e.pacer.Pace(ctx, PaceResult, e.View())
	return nil
}

// settle evaluates every hand against the dealer and credits the payouts
func (e *Engine) settle(ctx context.Context) error {
	var paid int64
	for _, s := range e.seats {
		s.result = Evaluate(s.hand, e.dealer)
		s.payout = e.rules.Payout(s.result, s.bet)
		paid += s.payout
	}

	if paid > 0 {
		w, err := e.wallet.Credit(ctx, e.playerID, paid, entities.TransactionTypePayout, e.roundID)
		if err != nil {
			return types.WrapError(types.ErrInternalError, "could not pay out", err)
		}
		e.balance = w.Balance
	}

	wagered := e.wagered()
	if net := paid - wagered; net > 0 {
		e.lastWinnings = net
	} else {
		e.lastLosses = -net
	}
	e.message = e.resultMessage()

	e.logger.Info("round %s settled: wagered $%d, paid $%d, balance $%d (%s)",
		e.roundID, wagered, paid, e.balance, e.message)

	if e.history != nil {
		if err := e.history.SaveRound(ctx, e.record()); err != nil {
			e.logger.Warn("could not save round %s: %v", e.roundID, err)
		}
	}
	return nil
}

func (e *Engine) resultMessage() string {
	text := func(r entities.Result) string {
		switch r {
		case entities.ResultWin:
			return "Player Wins!"
		case entities.ResultPush:
			return "Push!"
		default:
			return "Dealer Wins!"
		}
	}

	if len(e.seats) == 1 {
		return text(e.seats[0].result)
	}

	var wins, losses int
	parts := make([]string, 0, len(e.seats))
	for i, s := range e.seats {
		switch s.result {
		case entities.ResultWin:
			wins++
		case entities.ResultLose:
			losses++
		}
		parts = append(parts, fmt.Sprintf("Hand %d: %s", i+1, text(s.result)))
	}
	if wins > 0 && losses > 0 {
		return "Split Result: One Win, One Loss"
	}
	return strings.Join(parts, " | ")
}

func (e *Engine) record() *entities.RoundRecord {
	rec := &entities.RoundRecord{
		ID:          e.roundID,
		CompletedAt: time.Now(),
		DealerCards: e.dealer.Cards(),
		DealerTotal: e.dealer.Total(),
		DealerBust:  e.dealer.IsBust(),
		Split:       e.splitDone,
		Message:     e.message,
	}
	for _, s := range e.seats {
		rec.Hands = append(rec.Hands, entities.HandRecord{
			Cards:   s.hand.Cards(),
			Total:   s.hand.Total(),
			Bust:    s.hand.IsBust(),
			Doubled: s.doubled,
			Bet:     s.bet,
			Payout:  s.payout,
			Result:  s.result,
		})
	}
	return rec
}

func (e *Engine) canDouble() bool {
	if len(e.seats) == 0 {
		return false
	}
	s := e.seats[e.active]
	if !s.firstMove || s.doubled || s.finished {
		return false
	}
	return !e.splitDone || e.rules.DoubleAfterSplit
}

// splittable reports whether Split is on offer. Balance is checked when the
// split is attempted so the player gets an explicit rejection.
func (e *Engine) splittable() bool {
	if e.splitDone || len(e.seats) != 1 {
		return false
	}
	h := e.seats[0].hand
	if h.Len() != 2 || !e.seats[0].firstMove {
		return false
	}
	cards := h.Cards()
	return e.rules.CanSplitPair(cards[0], cards[1])
}

func (e *Engine) canContinue() bool {
	return e.balance >= e.rules.MinBet
}

func (e *Engine) allBust() bool {
	for _, s := range e.seats {
		if !s.hand.IsBust() {
			return false
		}
	}
	return true
}

func (e *Engine) wagered() int64 {
	var total int64
	for _, s := range e.seats {
		total += s.bet
	}
	return total
}

// clampBet keeps the default bet affordable, on the step grid from the
// table minimum
func (e *Engine) clampBet() {
	if e.bet <= e.balance || e.balance < e.rules.MinBet {
		return
	}
	e.bet = e.balance - (e.balance-e.rules.MinBet)%e.rules.BetStep
}

func (e *Engine) drawInto(h *Hand) error {
	card, ok := e.deck.Draw()
	if !ok {
		return types.NewGameError(types.ErrDeckExhausted, "the deck ran out of cards mid-round")
	}
	h.AddCard(card)
	return nil
}

func (e *Engine) debit(ctx context.Context, amount int64, txType entities.TransactionType, roundID, brokeMsg string) error {
	w, err := e.wallet.Debit(ctx, e.playerID, amount, txType, roundID)
	if err != nil {
		if errors.Is(err, wallet.ErrInsufficientFunds) {
			return e.reject(types.ErrInsufficientBalance, brokeMsg)
		}
		return types.WrapError(types.ErrInternalError, "could not update balance", err)
	}
	e.balance = w.Balance
	return nil
}

func (e *Engine) reject(code types.ErrorCode, msg string) error {
	e.status = msg
	return types.NewGameError(code, msg)
}

func (e *Engine) invalid(action Action) error {
	return types.NewGameError(types.ErrInvalidAction, fmt.Sprintf("%s is not available while %s", action, e.phase))
}
