// Package engine implements the scratchcard ticket lifecycle: purchase,
// staged reveal gating, match and instant-win resolution, and balance
// settlement.
package engine

import (
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"scratch-lottery/internal/prize"
	"scratch-lottery/internal/scenario"
	"scratch-lottery/internal/ticket"
	"scratch-lottery/internal/wallet"
)

// Errors for engine operations.
var (
	ErrInvalidPrice        = errors.New("ticket price not in configured list")
	ErrInvalidPhase        = errors.New("operation not allowed in current phase")
	ErrOverrideUnsupported = errors.New("scenario source does not support overrides")
	ErrMissingDependency   = errors.New("missing engine dependency")
	ErrNoTicketPrices      = errors.New("no ticket prices configured")
)

// Rejection reason codes carried by PurchaseRejected events.
const (
	ReasonInsufficientFunds = "insufficient_funds"
)

// State is the engine's position in the ticket lifecycle.
type State int

const (
	// Idle: no ticket in flight; price selection and purchase are allowed.
	Idle State = iota
	// AwaitingWinningReveal: ticket bought, winning positions still hidden.
	AwaitingWinningReveal
	// AwaitingPlayerReveal: winning row complete, player row unlocked.
	AwaitingPlayerReveal
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case AwaitingWinningReveal:
		return "awaiting_winning_reveal"
	case AwaitingPlayerReveal:
		return "awaiting_player_reveal"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Overrider is implemented by scenario sources that accept a one-shot forced
// scenario, such as the developer-tooling override on scenario.Pool.
type Overrider interface {
	SetOverride(descriptor string)
}

// Config holds the engine dependencies and configuration.
type Config struct {
	TicketPrices []int64
	Prizes       *prize.Table
	Source       scenario.Source
	Wallet       *wallet.Wallet
	Logger       zerolog.Logger
}

// Engine is the ticket state machine. It exclusively owns the current ticket,
// the selected price, and the wallet mutations; there is exactly one ticket
// in flight at a time. All operations are synchronous and serialized, so a
// single Engine serves a single player session.
type Engine struct {
	mu sync.Mutex

	prices []int64
	prizes *prize.Table
	source scenario.Source
	wallet *wallet.Wallet
	log    zerolog.Logger

	state         State
	selectedPrice int64
	current       *ticket.Ticket
}

// New creates an engine. The selected price defaults to the first configured
// ticket price.
func New(cfg *Config) (*Engine, error) {
	if cfg == nil || cfg.Prizes == nil || cfg.Source == nil || cfg.Wallet == nil {
		return nil, ErrMissingDependency
	}
	if len(cfg.TicketPrices) == 0 {
		return nil, ErrNoTicketPrices
	}

	return &Engine{
		prices:        append([]int64(nil), cfg.TicketPrices...),
		prizes:        cfg.Prizes,
		source:        cfg.Source,
		wallet:        cfg.Wallet,
		log:           cfg.Logger,
		state:         Idle,
		selectedPrice: cfg.TicketPrices[0],
	}, nil
}

// SelectPrice sets the stake for the next purchase. Only allowed while idle;
// a ticket in progress keeps the price it was bought at.
func (e *Engine) SelectPrice(price int64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != Idle {
		return fmt.Errorf("%w: select price during %s", ErrInvalidPhase, e.state)
	}
	for _, p := range e.prices {
		if p == price {
			e.selectedPrice = price
			return nil
		}
	}
	return fmt.Errorf("%w: %d", ErrInvalidPrice, price)
}

// PriceUp steps the selected price to the next entry in the configured list,
// clamped at the top. Idle only.
func (e *Engine) PriceUp() error {
	return e.stepPrice(1)
}

// PriceDown steps the selected price to the previous entry in the configured
// list, clamped at the bottom. Idle only.
func (e *Engine) PriceDown() error {
	return e.stepPrice(-1)
}

func (e *Engine) stepPrice(delta int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != Idle {
		return fmt.Errorf("%w: change price during %s", ErrInvalidPhase, e.state)
	}
	for i, p := range e.prices {
		if p == e.selectedPrice {
			next := i + delta
			if next >= 0 && next < len(e.prices) {
				e.selectedPrice = e.prices[next]
			}
			return nil
		}
	}
	return fmt.Errorf("%w: %d", ErrInvalidPrice, e.selectedPrice)
}

// SelectedPrice returns the stake the next purchase will use.
func (e *Engine) SelectedPrice() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.selectedPrice
}

// Buy purchases a ticket at the selected price: deducts the stake, draws and
// parses a scenario, and opens the winning row for reveals. On failure the
// balance and engine state are untouched; an insufficient balance yields a
// PurchaseRejected event alongside the error.
func (e *Engine) Buy() ([]Event, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != Idle {
		return nil, fmt.Errorf("%w: buy during %s", ErrInvalidPhase, e.state)
	}

	// Funds are checked before the draw so a declined purchase does not
	// consume a pending scenario override.
	if e.wallet.Balance() < e.selectedPrice {
		e.log.Info().
			Int64("price", e.selectedPrice).
			Int64("balance", e.wallet.Balance()).
			Msg("Purchase rejected: insufficient funds")
		return []Event{PurchaseRejected{Reason: ReasonInsufficientFunds}}, wallet.ErrInsufficientFunds
	}

	descriptor := e.source.Next()
	winning, player, err := scenario.Parse(descriptor)
	if err != nil {
		e.log.Warn().Err(err).Str("descriptor", descriptor).Msg("Scenario draw failed to parse")
		return nil, err
	}

	if _, err := e.wallet.Debit(e.selectedPrice, wallet.TxTypeTicketBuy, "ticket purchase"); err != nil {
		return []Event{PurchaseRejected{Reason: ReasonInsufficientFunds}}, err
	}

	e.current = ticket.New(e.selectedPrice, winning, player)
	e.state = AwaitingWinningReveal

	e.log.Info().
		Int64("price", e.selectedPrice).
		Int64("balance", e.wallet.Balance()).
		Str("descriptor", descriptor).
		Msg("Ticket started")

	return []Event{TicketStarted{
		Price:          e.selectedPrice,
		WinningSymbols: e.current.WinningSymbols(),
		PlayerSymbols:  e.current.PlayerSymbols(),
	}}, nil
}

// RevealWinning reveals one winning-row position. Revealing an already
// revealed position is a no-op that returns no events. When the last winning
// position is revealed the player row unlocks.
func (e *Engine) RevealWinning(index int) ([]Event, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != AwaitingWinningReveal {
		return nil, fmt.Errorf("%w: reveal winning symbol during %s", ErrInvalidPhase, e.state)
	}

	already, err := e.current.RevealWinning(index)
	if err != nil {
		return nil, err
	}
	if already {
		return nil, nil
	}

	events := []Event{PositionRevealed{
		Row:    RowWinning,
		Index:  index,
		Symbol: e.current.WinningSymbols()[index],
	}}

	if e.current.AllWinningRevealed() {
		e.state = AwaitingPlayerReveal
		events = append(events, WinningRowUnlocked{})
		e.log.Debug().Msg("Winning row complete, player row unlocked")
	}

	return events, nil
}

// RevealPlayer reveals one player-row position and resolves it: instant win
// first, then membership in the winning row, otherwise no match. Revealing
// the last position settles the ticket and returns the engine to idle.
func (e *Engine) RevealPlayer(index int) ([]Event, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != AwaitingPlayerReveal {
		return nil, fmt.Errorf("%w: reveal player symbol during %s", ErrInvalidPhase, e.state)
	}

	already, err := e.current.RevealPlayer(index)
	if err != nil {
		return nil, err
	}
	if already {
		return nil, nil
	}

	sym := e.current.PlayerSymbols()[index]
	events := []Event{PositionRevealed{Row: RowPlayer, Index: index, Symbol: sym}}

	// Instant-win resolution takes precedence over a match, and lookup is by
	// token so a number reused as an instant-win key still pays as one.
	if amount, ok := e.prizes.InstantWin(sym.Token(), e.current.Price()); ok {
		e.current.AddWinnings(amount)
		events = append(events, InstantWin{Symbol: sym, Amount: amount})
		e.log.Info().Str("symbol", sym.Token()).Int64("amount", amount).Msg("Instant win")
	} else if e.current.MatchesWinning(sym) {
		amount := e.current.Price() * e.prizes.MatchMultiplier()
		e.current.AddWinnings(amount)
		e.current.HighlightMatches(sym)
		events = append(events, Match{Symbol: sym, Amount: amount})
		e.log.Info().Str("symbol", sym.Token()).Int64("amount", amount).Msg("Match")
	} else if !e.current.WinFound() {
		events = append(events, NoMatch{})
	}

	if e.current.AllPlayerRevealed() {
		settled, err := e.settleLocked()
		if err != nil {
			return nil, err
		}
		events = append(events, settled)
	}

	return events, nil
}

// settleLocked finalizes the current ticket, credits the winnings, and
// returns the engine to idle. Caller holds the mutex.
func (e *Engine) settleLocked() (Event, error) {
	winnings, err := e.current.Settle()
	if err != nil {
		return nil, err
	}

	newBalance, err := e.wallet.Credit(winnings, wallet.TxTypeTicketWin, "ticket settlement")
	if err != nil {
		return nil, fmt.Errorf("settle ticket: %w", err)
	}

	e.log.Info().
		Int64("winnings", winnings).
		Int64("balance", newBalance).
		Msg("Ticket settled")

	e.current = nil
	e.state = Idle

	return TicketSettled{Amount: winnings, NewBalance: newBalance}, nil
}

// ForceScenario arms the source's one-shot override so the next purchase
// plays the given descriptor. Fails when the source has no override slot.
func (e *Engine) ForceScenario(descriptor string) error {
	o, ok := e.source.(Overrider)
	if !ok {
		return ErrOverrideUnsupported
	}
	o.SetOverride(descriptor)
	e.log.Debug().Str("descriptor", descriptor).Msg("Scenario override armed")
	return nil
}

// TicketView is the read-only view of the in-flight ticket.
type TicketView struct {
	Price           int64
	Phase           ticket.Phase
	WinningSymbols  []scenario.Symbol
	PlayerSymbols   []scenario.Symbol
	WinningRevealed []bool
	PlayerRevealed  []bool
	Highlighted     []bool
	Winnings        int64
}

// Snapshot is a read-only view of the engine for presentation.
type Snapshot struct {
	State         State
	SelectedPrice int64
	Balance       int64
	Ticket        *TicketView // nil while idle
}

// Snapshot returns the engine's current state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	snap := Snapshot{
		State:         e.state,
		SelectedPrice: e.selectedPrice,
		Balance:       e.wallet.Balance(),
	}
	if e.current != nil {
		snap.Ticket = &TicketView{
			Price:           e.current.Price(),
			Phase:           e.current.Phase(),
			WinningSymbols:  e.current.WinningSymbols(),
			PlayerSymbols:   e.current.PlayerSymbols(),
			WinningRevealed: e.current.WinningRevealed(),
			PlayerRevealed:  e.current.PlayerRevealed(),
			Highlighted:     e.current.Highlighted(),
			Winnings:        e.current.Winnings(),
		}
	}
	return snap
}
