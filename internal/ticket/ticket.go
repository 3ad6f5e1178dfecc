// Package ticket holds the state of a single scratchcard play: the two symbol
// rows, per-position reveal flags, and the winnings accumulated so far.
package ticket

import (
	"errors"
	"fmt"

	"scratch-lottery/internal/scenario"
)

// Errors for ticket operations.
var (
	ErrInvalidIndex   = errors.New("symbol index out of range")
	ErrAlreadySettled = errors.New("ticket already settled")
)

// Phase is the lifecycle stage of a ticket. It only moves forward.
type Phase int

const (
	// Unstarted: created but no symbol revealed yet.
	Unstarted Phase = iota
	// WinningRevealPending: at least one winning position is still hidden.
	WinningRevealPending
	// PlayerRevealPending: winning row fully revealed, player row unlocked.
	PlayerRevealPending
	// Settled: all player positions revealed, winnings applied.
	Settled
)

// String implements fmt.Stringer.
func (p Phase) String() string {
	switch p {
	case Unstarted:
		return "unstarted"
	case WinningRevealPending:
		return "winning_reveal_pending"
	case PlayerRevealPending:
		return "player_reveal_pending"
	case Settled:
		return "settled"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Ticket is one paid play. Symbols are fixed at creation; reveal flags are
// monotonic and winnings never decrease.
type Ticket struct {
	price           int64
	winning         []scenario.Symbol
	player          []scenario.Symbol
	winningRevealed []bool
	playerRevealed  []bool
	highlighted     []bool
	winnings        int64
	winFound        bool
	phase           Phase
}

// New creates an unrevealed ticket for the given stake and symbol rows.
func New(price int64, winning, player []scenario.Symbol) *Ticket {
	return &Ticket{
		price:           price,
		winning:         append([]scenario.Symbol(nil), winning...),
		player:          append([]scenario.Symbol(nil), player...),
		winningRevealed: make([]bool, len(winning)),
		playerRevealed:  make([]bool, len(player)),
		highlighted:     make([]bool, len(winning)),
		phase:           Unstarted,
	}
}

// Price returns the stake paid for the ticket.
func (t *Ticket) Price() int64 {
	return t.price
}

// Phase returns the ticket's lifecycle stage.
func (t *Ticket) Phase() Phase {
	return t.phase
}

// WinningSymbols returns a copy of the winning row.
func (t *Ticket) WinningSymbols() []scenario.Symbol {
	return append([]scenario.Symbol(nil), t.winning...)
}

// PlayerSymbols returns a copy of the player row.
func (t *Ticket) PlayerSymbols() []scenario.Symbol {
	return append([]scenario.Symbol(nil), t.player...)
}

// WinningRevealed returns a copy of the winning-row reveal flags.
func (t *Ticket) WinningRevealed() []bool {
	return append([]bool(nil), t.winningRevealed...)
}

// PlayerRevealed returns a copy of the player-row reveal flags.
func (t *Ticket) PlayerRevealed() []bool {
	return append([]bool(nil), t.playerRevealed...)
}

// Highlighted returns a copy of the winning-row highlight flags. Highlighting
// is a cosmetic annotation applied when a player symbol matches; the winning
// positions are already revealed at that point.
func (t *Ticket) Highlighted() []bool {
	return append([]bool(nil), t.highlighted...)
}

// Winnings returns the winnings accumulated so far.
func (t *Ticket) Winnings() int64 {
	return t.winnings
}

// WinFound reports whether any instant win or match has occurred on this
// ticket. Used to suppress "no match" events once a win is on the board.
func (t *Ticket) WinFound() bool {
	return t.winFound
}

// RevealWinning marks a winning-row position revealed. Revealing an already
// revealed position reports already=true and changes nothing. The first
// reveal moves the ticket out of Unstarted.
func (t *Ticket) RevealWinning(index int) (already bool, err error) {
	if index < 0 || index >= len(t.winning) {
		return false, fmt.Errorf("%w: winning index %d of %d", ErrInvalidIndex, index, len(t.winning))
	}
	if t.winningRevealed[index] {
		return true, nil
	}
	t.winningRevealed[index] = true
	if t.phase == Unstarted {
		t.phase = WinningRevealPending
	}
	if t.AllWinningRevealed() {
		t.phase = PlayerRevealPending
	}
	return false, nil
}

// RevealPlayer marks a player-row position revealed, with the same
// already-revealed semantics as RevealWinning.
func (t *Ticket) RevealPlayer(index int) (already bool, err error) {
	if index < 0 || index >= len(t.player) {
		return false, fmt.Errorf("%w: player index %d of %d", ErrInvalidIndex, index, len(t.player))
	}
	if t.playerRevealed[index] {
		return true, nil
	}
	t.playerRevealed[index] = true
	return false, nil
}

// AllWinningRevealed reports whether every winning position is revealed.
func (t *Ticket) AllWinningRevealed() bool {
	for _, revealed := range t.winningRevealed {
		if !revealed {
			return false
		}
	}
	return true
}

// AllPlayerRevealed reports whether every player position is revealed.
func (t *Ticket) AllPlayerRevealed() bool {
	for _, revealed := range t.playerRevealed {
		if !revealed {
			return false
		}
	}
	return true
}

// AddWinnings adds a non-negative amount to the accumulated winnings and
// marks the ticket as having found a win.
func (t *Ticket) AddWinnings(amount int64) {
	if amount < 0 {
		return
	}
	t.winnings += amount
	t.winFound = true
}

// HighlightMatches flags every winning-row position holding the given symbol.
// Duplicate winning numbers are all highlighted, not just the first.
func (t *Ticket) HighlightMatches(sym scenario.Symbol) {
	for i, w := range t.winning {
		if w.Equal(sym) {
			t.highlighted[i] = true
		}
	}
}

// MatchesWinning reports whether the symbol appears in the winning row.
func (t *Ticket) MatchesWinning(sym scenario.Symbol) bool {
	for _, w := range t.winning {
		if w.Equal(sym) {
			return true
		}
	}
	return false
}

// Settle finalizes the ticket and returns its winnings. A ticket settles
// exactly once; a second call is an error.
func (t *Ticket) Settle() (int64, error) {
	if t.phase == Settled {
		return 0, ErrAlreadySettled
	}
	t.phase = Settled
	return t.winnings, nil
}
