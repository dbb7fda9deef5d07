package terminal

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fadedpez/blackjack/pkg/entities"
	"github.com/fadedpez/blackjack/pkg/services/assets"
	"github.com/fadedpez/blackjack/pkg/services/blackjack"
)

type styles struct {
	frame   lipgloss.Style
	title   lipgloss.Style
	label   lipgloss.Style
	money   lipgloss.Style
	broke   lipgloss.Style
	status  lipgloss.Style
	message lipgloss.Style
	active  lipgloss.Style
	red     lipgloss.Style
	key     lipgloss.Style
	dim     lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		frame:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#2E8B57")).Padding(0, 1),
		title:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700")).Bold(true),
		label:   lipgloss.NewStyle().Bold(true),
		money:   lipgloss.NewStyle().Foreground(lipgloss.Color("#32CD32")).Bold(true),
		broke:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000")).Bold(true),
		status:  lipgloss.NewStyle().Foreground(lipgloss.Color("#FFA500")),
		message: lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#2E8B57")).Bold(true).Padding(0, 1),
		active:  lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700")).Bold(true),
		red:     lipgloss.NewStyle().Foreground(lipgloss.Color("#DC143C")),
		key:     lipgloss.NewStyle().Foreground(lipgloss.Color("#87CEEB")).Bold(true),
		dim:     lipgloss.NewStyle().Faint(true),
	}
}

// Renderer draws engine views and the menu as text
type Renderer struct {
	assets *assets.Service
	keymap *Keymap
	styles styles
}

// NewRenderer creates a renderer drawing cards from a and controls from k
func NewRenderer(a *assets.Service, k *Keymap) *Renderer {
	return &Renderer{
		assets: a,
		keymap: k,
		styles: defaultStyles(),
	}
}

// Table draws the round view
func (r *Renderer) Table(v blackjack.View) string {
	var sections []string

	sections = append(sections, r.dealer(v.Dealer))
	for i, h := range v.Player {
		sections = append(sections, r.hand(i, len(v.Player), h))
	}

	sections = append(sections, r.purse(v))
	if v.Status != "" {
		sections = append(sections, r.styles.status.Render(v.Status))
	}
	if v.Message != "" {
		sections = append(sections, r.styles.message.Render(v.Message))
	}
	sections = append(sections, r.controls(v.Available))

	return r.styles.frame.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

// Menu draws the title screen with the session summary
func (r *Renderer) Menu(balance, minBet int64, stats *entities.SessionStatistics, recent []*entities.RoundRecord) string {
	sections := []string{
		r.styles.title.Render(r.assets.Background().String()),
		"",
		r.styles.label.Render("Balance: ") + r.balance(balance),
	}

	if stats != nil && stats.RoundsPlayed > 0 {
		sections = append(sections,
			fmt.Sprintf("Rounds %d  Hands %d  W/L/P %d/%d/%d  Win rate %.1f%%  Net %s",
				stats.RoundsPlayed, stats.HandsPlayed, stats.Wins, stats.Losses, stats.Pushes,
				stats.WinRate(), signedMoney(stats.NetProfit())),
			r.styles.dim.Render(fmt.Sprintf("Busts %d  Splits %d  Doubles %d  Wagered $%d",
				stats.Busts, stats.Splits, stats.DoubleDowns, stats.TotalBet)),
		)
	}
	for _, rec := range recent {
		sections = append(sections, r.styles.dim.Render(fmt.Sprintf("  %s  %s", signedMoney(rec.Paid()-rec.Wagered()), rec.Message)))
	}

	sections = append(sections, "")
	if balance < minBet {
		sections = append(sections, r.styles.broke.Render("Out of money! Brokie!"), r.keyLabel("q", "Quit"))
	} else {
		sections = append(sections, r.keyLabel("p", "Play")+"  "+r.keyLabel("q", "Quit"))
	}

	return r.styles.frame.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

// Banner draws the pause overlay for a pacing point
func (r *Renderer) Banner(event blackjack.PaceEvent, v blackjack.View) string {
	switch event {
	case blackjack.PaceReveal:
		return r.styles.status.Render("Dealer reveals...")
	case blackjack.PaceDealerDraw:
		return r.styles.status.Render(fmt.Sprintf("Dealer draws... %d", v.Dealer.Total))
	default:
		return r.styles.message.Render(v.Message)
	}
}

func (r *Renderer) dealer(d blackjack.DealerView) string {
	var header string
	switch {
	case d.HoleHidden:
		header = fmt.Sprintf("Dealer  shows %d", d.UpValue)
	case d.Bust:
		header = fmt.Sprintf("Dealer  %d  BUST", d.Total)
	default:
		header = fmt.Sprintf("Dealer  %d", d.Total)
	}

	blocks := make([]string, 0, len(d.Cards))
	for i, c := range d.Cards {
		if d.HoleHidden && i == 1 {
			blocks = append(blocks, r.assets.CardBack().String())
			continue
		}
		blocks = append(blocks, r.card(c))
	}
	return lipgloss.JoinVertical(lipgloss.Left, r.styles.label.Render(header), r.row(blocks))
}

func (r *Renderer) hand(i, count int, h blackjack.HandView) string {
	name := "Player"
	if count > 1 {
		name = fmt.Sprintf("Hand %d", i+1)
	}

	parts := []string{name, fmt.Sprintf("%d", h.Total), fmt.Sprintf("bet $%d", h.Bet)}
	if h.Soft && !h.Bust {
		parts[1] = "soft " + parts[1]
	}
	if h.Doubled {
		parts = append(parts, "doubled")
	}
	if h.Bust {
		parts = append(parts, "BUST")
	}
	if h.Result != "" {
		parts = append(parts, string(h.Result))
	}

	header := strings.Join(parts, "  ")
	if h.Active {
		header = r.styles.active.Render("> " + header)
	} else {
		header = r.styles.label.Render("  " + header)
	}

	blocks := make([]string, 0, len(h.Cards))
	for _, c := range h.Cards {
		blocks = append(blocks, r.card(c))
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, r.row(blocks))
}

func (r *Renderer) purse(v blackjack.View) string {
	line := r.styles.label.Render("Balance: ") + r.balance(v.Balance) +
		"   " + r.styles.label.Render("Bet: ") + fmt.Sprintf("$%d", v.Bet)

	if v.Phase == entities.PhaseBetting {
		switch {
		case v.LastWinnings > 0:
			line += "   " + r.styles.money.Render(fmt.Sprintf("Won $%d", v.LastWinnings))
		case v.LastLosses > 0:
			line += "   " + r.styles.broke.Render(fmt.Sprintf("Lost $%d", v.LastLosses))
		}
	}
	return line
}

func (r *Renderer) balance(amount int64) string {
	text := fmt.Sprintf("$%d", amount)
	if amount <= 0 {
		return r.styles.broke.Render(text)
	}
	return r.styles.money.Render(text)
}

func (r *Renderer) controls(available []blackjack.Action) string {
	var labels []string
	for _, action := range available {
		for _, b := range r.keymap.For(action) {
			if b.Key == EnterKey {
				continue
			}
			labels = append(labels, r.keyLabel(KeyName(b.Key), b.Label))
		}
	}
	return strings.Join(labels, "  ")
}

func (r *Renderer) keyLabel(key, label string) string {
	return r.styles.key.Render("["+key+"]") + " " + label
}

// card draws the provided face art, or a generated face when none exists
func (r *Renderer) card(c entities.Card) string {
	lines := placeholderFace(c)
	if img, ok := r.assets.Face(c); ok {
		lines = img.Lines
	}

	art := strings.Join(lines, "\n")
	if c.Suit.IsRed() {
		return r.styles.red.Render(art)
	}
	return art
}

func (r *Renderer) row(blocks []string) string {
	if len(blocks) == 0 {
		return ""
	}
	spaced := make([]string, 0, len(blocks)*2)
	for i, b := range blocks {
		if i > 0 {
			spaced = append(spaced, " ")
		}
		spaced = append(spaced, b)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, spaced...)
}

func placeholderFace(c entities.Card) []string {
	rank := c.Rank.Short()
	return []string{
		"┌─────┐",
		fmt.Sprintf("│%-5s│", rank),
		fmt.Sprintf("│  %s  │", c.Suit.Symbol()),
		fmt.Sprintf("│%5s│", rank),
		"└─────┘",
	}
}

func signedMoney(amount int64) string {
	if amount < 0 {
		return fmt.Sprintf("-$%d", -amount)
	}
	return fmt.Sprintf("+$%d", amount)
}
