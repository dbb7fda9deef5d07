package terminal

import (
	"fmt"
	"strings"
	"sync"

	"github.com/fadedpez/blackjack/internal/types"
	"github.com/fadedpez/blackjack/pkg/services/blackjack"
)

// EnterKey is the key produced by an empty input line
const EnterKey = ""

// Binding ties a key to the engine event it produces
type Binding struct {
	Key   string
	Label string
	Event blackjack.Event
}

// Keymap maps keys to engine events
type Keymap struct {
	bindings map[string]Binding
	order    []string
	mu       sync.RWMutex
}

// NewKeymap creates an empty keymap
func NewKeymap() *Keymap {
	return &Keymap{
		bindings: make(map[string]Binding),
	}
}

// Register binds key to event. A key can only be bound once.
func (k *Keymap) Register(key, label string, event blackjack.Event) error {
	key = normalize(key)

	k.mu.Lock()
	defer k.mu.Unlock()

	if _, exists := k.bindings[key]; exists {
		return types.NewGameError(types.ErrInvalidAction, fmt.Sprintf("Key %q is already bound", key))
	}

	k.bindings[key] = Binding{Key: key, Label: label, Event: event}
	k.order = append(k.order, key)
	return nil
}

// Lookup returns the binding for key
func (k *Keymap) Lookup(key string) (Binding, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()

	b, exists := k.bindings[normalize(key)]
	if !exists {
		return Binding{}, types.NewGameError(types.ErrInvalidArgument, fmt.Sprintf("Unknown key %q", key))
	}
	return b, nil
}

// For returns the bindings that produce action, in registration order
func (k *Keymap) For(action blackjack.Action) []Binding {
	k.mu.RLock()
	defer k.mu.RUnlock()

	var out []Binding
	for _, key := range k.order {
		if b := k.bindings[key]; b.Event.Action == action {
			out = append(out, b)
		}
	}
	return out
}

// Bindings lists every binding in registration order
func (k *Keymap) Bindings() []Binding {
	k.mu.RLock()
	defer k.mu.RUnlock()

	out := make([]Binding, 0, len(k.order))
	for _, key := range k.order {
		out = append(out, k.bindings[key])
	}
	return out
}

// DefaultKeymap returns the standard table controls. The bet keys move the
// bet by step.
func DefaultKeymap(step int64) (*Keymap, error) {
	k := NewKeymap()

	defaults := []Binding{
		{Key: "h", Label: "Hit", Event: blackjack.Event{Action: blackjack.ActionHit}},
		{Key: "s", Label: "Stand", Event: blackjack.Event{Action: blackjack.ActionStand}},
		{Key: "d", Label: "Double", Event: blackjack.Event{Action: blackjack.ActionDouble}},
		{Key: "p", Label: "Split", Event: blackjack.Event{Action: blackjack.ActionSplit}},
		{Key: "+", Label: fmt.Sprintf("Bet +$%d", step), Event: blackjack.Event{Action: blackjack.ActionPlaceBet, Delta: step}},
		{Key: "-", Label: fmt.Sprintf("Bet -$%d", step), Event: blackjack.Event{Action: blackjack.ActionPlaceBet, Delta: -step}},
		{Key: "b", Label: "Deal", Event: blackjack.Event{Action: blackjack.ActionConfirmBet}},
		{Key: EnterKey, Label: "Deal", Event: blackjack.Event{Action: blackjack.ActionConfirmBet}},
		{Key: "n", Label: "Next Round", Event: blackjack.Event{Action: blackjack.ActionNextRound}},
		{Key: "m", Label: "Back to Menu", Event: blackjack.Event{Action: blackjack.ActionReturnToMenu}},
		{Key: "q", Label: "Quit", Event: blackjack.Event{Action: blackjack.ActionQuit}},
	}

	for _, b := range defaults {
		if err := k.Register(b.Key, b.Label, b.Event); err != nil {
			return nil, err
		}
	}
	return k, nil
}

func normalize(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

// KeyName returns how a key is shown to the player
func KeyName(key string) string {
	if key == EnterKey {
		return "enter"
	}
	return key
}
