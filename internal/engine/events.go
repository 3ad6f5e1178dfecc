package engine

import "scratch-lottery/internal/scenario"

// Row identifies which symbol row an event refers to.
type Row int

const (
	// RowWinning is the winning-symbols row.
	RowWinning Row = iota
	// RowPlayer is the player-symbols row.
	RowPlayer
)

// String implements fmt.Stringer.
func (r Row) String() string {
	if r == RowWinning {
		return "winning"
	}
	return "player"
}

// Event is an outbound notification for the presentation layer. Engine
// operations return the events they produced, in order, synchronously; the
// caller owns all sequencing and timing.
type Event interface {
	Kind() string
}

// TicketStarted is emitted when a ticket is bought. It carries both symbol
// rows so the presentation can build the board; every position starts hidden.
type TicketStarted struct {
	Price          int64
	WinningSymbols []scenario.Symbol
	PlayerSymbols  []scenario.Symbol
}

// Kind implements Event.
func (TicketStarted) Kind() string { return "ticket_started" }

// WinningRowUnlocked is emitted when the last winning position is revealed
// and the player row becomes revealable.
type WinningRowUnlocked struct{}

// Kind implements Event.
func (WinningRowUnlocked) Kind() string { return "winning_row_unlocked" }

// PositionRevealed is emitted for every successful reveal.
type PositionRevealed struct {
	Row    Row
	Index  int
	Symbol scenario.Symbol
}

// Kind implements Event.
func (PositionRevealed) Kind() string { return "position_revealed" }

// InstantWin is emitted when a revealed player symbol is an instant-win
// symbol.
type InstantWin struct {
	Symbol scenario.Symbol
	Amount int64
}

// Kind implements Event.
func (InstantWin) Kind() string { return "instant_win" }

// Match is emitted when a revealed player symbol appears in the winning row.
type Match struct {
	Symbol scenario.Symbol
	Amount int64
}

// Kind implements Event.
func (Match) Kind() string { return "match" }

// NoMatch is emitted for a non-winning reveal, but only while no win has been
// found on the ticket, so the presentation never overwrites a win message.
type NoMatch struct{}

// Kind implements Event.
func (NoMatch) Kind() string { return "no_match" }

// TicketSettled is emitted when the last player position is revealed and the
// accumulated winnings are applied to the balance. Amount is zero for a
// losing ticket.
type TicketSettled struct {
	Amount     int64
	NewBalance int64
}

// Kind implements Event.
func (TicketSettled) Kind() string { return "ticket_settled" }

// PurchaseRejected is emitted when a buy attempt is declined.
type PurchaseRejected struct {
	Reason string
}

// Kind implements Event.
func (PurchaseRejected) Kind() string { return "purchase_rejected" }
