package terminal

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/fadedpez/blackjack/pkg/services/blackjack"
)

// Pacer redraws the table at each pacing point and holds it for a fixed
// delay. A zero delay only redraws.
type Pacer struct {
	out      io.Writer
	renderer *Renderer
	delay    time.Duration
	wait     func(ctx context.Context, d time.Duration)
}

// NewPacer creates a pacer writing to out
func NewPacer(out io.Writer, renderer *Renderer, delay time.Duration) *Pacer {
	return &Pacer{
		out:      out,
		renderer: renderer,
		delay:    delay,
		wait:     sleep,
	}
}

// Pace implements blackjack.Pacer
func (p *Pacer) Pace(ctx context.Context, event blackjack.PaceEvent, view blackjack.View) {
	fmt.Fprintln(p.out, p.renderer.Table(view))
	fmt.Fprintln(p.out, p.renderer.Banner(event, view))

	if p.delay > 0 {
		p.wait(ctx, p.delay)
	}
}

// sleep waits for d unless the process is shutting down
func sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
