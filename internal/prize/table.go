// Package prize provides the read-only prize table: instant-win payouts keyed
// by symbol token and ticket price, plus the ordinary match multiplier.
package prize

import (
	"errors"
	"fmt"
	"strings"
)

// Errors for prize table construction and lookup.
var (
	ErrUnknownPayout     = errors.New("no payout configured")
	ErrInvalidMultiplier = errors.New("match multiplier must be positive")
)

// Table is the immutable prize configuration for one game install.
type Table struct {
	instantWins     map[string]map[int64]int64
	matchMultiplier int64
}

// NewTable builds a prize table and validates it fail-fast: every instant-win
// token must have a payout entry for every configured ticket price. A missing
// entry is a configuration error surfaced at load, not at reveal time.
// Token matching is case-insensitive; config loaders lowercase map keys.
func NewTable(instantWins map[string]map[int64]int64, matchMultiplier int64, ticketPrices []int64) (*Table, error) {
	if matchMultiplier <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidMultiplier, matchMultiplier)
	}

	copied := make(map[string]map[int64]int64, len(instantWins))
	for token, payouts := range instantWins {
		token = strings.ToLower(token)
		byPrice := make(map[int64]int64, len(payouts))
		for price, amount := range payouts {
			if amount < 0 {
				return nil, fmt.Errorf("%w: negative payout %d for %q at price %d", ErrUnknownPayout, amount, token, price)
			}
			byPrice[price] = amount
		}
		for _, price := range ticketPrices {
			if _, ok := byPrice[price]; !ok {
				return nil, fmt.Errorf("%w: instant win %q at ticket price %d", ErrUnknownPayout, token, price)
			}
		}
		copied[token] = byPrice
	}

	return &Table{
		instantWins:     copied,
		matchMultiplier: matchMultiplier,
	}, nil
}

// IsInstantWin reports whether the token is a configured instant-win symbol.
// Lookup is by canonical token text, so a numeric symbol can be an instant
// win if the configuration says so.
func (t *Table) IsInstantWin(token string) bool {
	_, ok := t.instantWins[strings.ToLower(token)]
	return ok
}

// InstantWin returns the payout for an instant-win token at the given ticket
// price. The second return is false when the token is not an instant win or
// carries no entry for the price.
func (t *Table) InstantWin(token string, price int64) (int64, bool) {
	payouts, ok := t.instantWins[strings.ToLower(token)]
	if !ok {
		return 0, false
	}
	amount, ok := payouts[price]
	return amount, ok
}

// MatchMultiplier returns the multiplier for ordinary matches: a matched
// player symbol pays price * multiplier.
func (t *Table) MatchMultiplier() int64 {
	return t.matchMultiplier
}

// InstantWinTokens returns the configured instant-win tokens.
func (t *Table) InstantWinTokens() []string {
	tokens := make([]string, 0, len(t.instantWins))
	for token := range t.instantWins {
		tokens = append(tokens, token)
	}
	return tokens
}
