package terminal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/fadedpez/blackjack/internal/logging"
	"github.com/fadedpez/blackjack/internal/types"
	"github.com/fadedpez/blackjack/pkg/entities"
	"github.com/fadedpez/blackjack/pkg/repositories/round"
	"github.com/fadedpez/blackjack/pkg/services/assets"
	"github.com/fadedpez/blackjack/pkg/services/blackjack"
	"github.com/fadedpez/blackjack/pkg/services/statistics"
	"github.com/fadedpez/blackjack/pkg/services/wallet"
)

const recentRounds = 5

// Options configures the table an App runs
type Options struct {
	PlayerID   string
	Rules      blackjack.Rules
	DefaultBet int64
	Pacing     time.Duration
}

// App runs the menu and round screens over line-based terminal input
type App struct {
	opts     Options
	wallet   *wallet.Service
	history  round.Repository
	stats    *statistics.Service
	renderer *Renderer
	keymap   *Keymap
	input    *Input
	out      io.Writer
	logger   *logging.Logger
	engine   []blackjack.Option
	notice   string
}

// NewApp wires the presentation around the wallet and round history. Extra
// engine options are applied after the App's own.
func NewApp(opts Options, walletSvc *wallet.Service, history round.Repository, art *assets.Service, in io.Reader, out io.Writer, logger *logging.Logger, engineOpts ...blackjack.Option) (*App, error) {
	keymap, err := DefaultKeymap(opts.Rules.BetStep)
	if err != nil {
		return nil, err
	}
	renderer := NewRenderer(art, keymap)

	engine := []blackjack.Option{
		blackjack.WithPacer(NewPacer(out, renderer, opts.Pacing)),
		blackjack.WithLogger(logger),
	}

	return &App{
		opts:     opts,
		wallet:   walletSvc,
		history:  history,
		stats:    statistics.NewService(history),
		renderer: renderer,
		keymap:   keymap,
		input:    NewInput(in),
		out:      out,
		logger:   logger,
		engine:   append(engine, engineOpts...),
	}, nil
}

// Run shows the menu until the player quits or input ends. Only fatal
// conditions are returned as errors.
func (a *App) Run(ctx context.Context) error {
	for {
		balance, err := a.wallet.Balance(ctx, a.opts.PlayerID)
		if err != nil {
			return types.WrapError(types.ErrWalletNotFound, "could not read balance", err)
		}
		if err := a.showMenu(ctx, balance); err != nil {
			return err
		}

		key, err := a.input.Next(ctx)
		if err != nil {
			return endOfInput(err)
		}

		switch key {
		case "q":
			return nil
		case "p", EnterKey:
			if balance < a.opts.Rules.MinBet {
				a.notice = "Not enough balance! Brokie!"
				continue
			}
			quit, err := a.play(ctx)
			if err != nil {
				return err
			}
			if quit {
				return nil
			}
		default:
			a.notice = fmt.Sprintf("Unknown key %q", key)
		}
	}
}

// play runs rounds until the player leaves the table. quit is true when the
// whole game should close.
func (a *App) play(ctx context.Context) (quit bool, err error) {
	opts := append([]blackjack.Option{blackjack.WithDefaultBet(a.opts.DefaultBet)}, a.engine...)
	engine, err := blackjack.NewEngine(ctx, a.opts.PlayerID, a.opts.Rules, a.wallet, a.history, opts...)
	if err != nil {
		return false, err
	}
	defer func() { a.opts.DefaultBet = engine.Bet() }()

	a.logger.Debug("table opened with balance $%d", engine.Balance())

	for {
		a.draw(a.renderer.Table(engine.View()))

		key, err := a.input.Next(ctx)
		if err != nil {
			return true, endOfInput(err)
		}

		binding, err := a.keymap.Lookup(key)
		if err != nil {
			a.notice = types.Message(err)
			continue
		}

		if err := engine.Dispatch(ctx, binding.Event); err != nil {
			if isFatal(err) {
				return false, err
			}
			// rejections that set no status still need to reach the player
			if engine.View().Status != types.Message(err) {
				a.notice = types.Message(err)
			}
		}

		if engine.Phase() == entities.PhaseExited {
			return engine.QuitRequested(), nil
		}
	}
}

func (a *App) showMenu(ctx context.Context, balance int64) error {
	stats, err := a.stats.Summary(ctx)
	if err != nil {
		return types.WrapError(types.ErrInternalError, "could not read session statistics", err)
	}
	recent, err := a.stats.Recent(ctx, recentRounds)
	if err != nil {
		return types.WrapError(types.ErrInternalError, "could not read round history", err)
	}

	a.draw(a.renderer.Menu(balance, a.opts.Rules.MinBet, stats, recent))
	return nil
}

// draw writes a screen followed by any pending notice
func (a *App) draw(screen string) {
	fmt.Fprintln(a.out, screen)
	if a.notice != "" {
		fmt.Fprintln(a.out, a.renderer.styles.status.Render(a.notice))
		a.notice = ""
	}
}

func isFatal(err error) bool {
	return types.IsGameError(err, types.ErrDeckExhausted) || types.IsGameError(err, types.ErrInternalError)
}

func endOfInput(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
