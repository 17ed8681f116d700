package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// typingTickMsg advances the typing reveal. It carries the generation of
// the reveal that scheduled it, so ticks left over from a superseded
// reveal are dropped instead of racing the current one.
type typingTickMsg struct {
	gen int
}

// reveal discloses a reply one rune per tick. A text of N runes produces
// exactly N prefixes, of lengths 1..N.
type reveal struct {
	gen   int
	runes []rune
	n     int
}

func newReveal(gen int, text string) *reveal {
	return &reveal{
		gen:   gen,
		runes: []rune(text),
	}
}

// advance reveals one more rune and returns the current prefix and whether
// the full text is now visible.
func (r *reveal) advance() (prefix string, done bool) {
	if r.n < len(r.runes) {
		r.n++
	}
	return string(r.runes[:r.n]), r.n == len(r.runes)
}

// typingTick schedules the next reveal update.
func typingTick(gen int, interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return typingTickMsg{gen: gen}
	})
}
