// Package scenario provides scratchcard scenario parsing and selection.
// A scenario descriptor pairs a winning row with a player row, e.g.
// "W:5,12;P:5,3,9,7,20,IW1".
package scenario

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Errors for scenario parsing.
var (
	ErrMalformedScenario = errors.New("malformed scenario descriptor")
)

// SymbolKind discriminates the two symbol variants.
type SymbolKind int

const (
	// KindNumber is a plain drawn number.
	KindNumber SymbolKind = iota
	// KindTag is an opaque symbol tag such as an instant-win marker.
	KindTag
)

// Symbol is one scratchcard symbol: either a drawn number or an opaque tag.
// Symbols are immutable value types.
type Symbol struct {
	kind   SymbolKind
	number int
	tag    string
}

// Number creates a numeric symbol.
func Number(n int) Symbol {
	return Symbol{kind: KindNumber, number: n}
}

// Tag creates a tag symbol.
func Tag(s string) Symbol {
	return Symbol{kind: KindTag, tag: s}
}

// Kind returns the symbol variant.
func (s Symbol) Kind() SymbolKind {
	return s.kind
}

// IsNumber reports whether the symbol is a drawn number.
func (s Symbol) IsNumber() bool {
	return s.kind == KindNumber
}

// Value returns the numeric value. It is only meaningful for number symbols.
func (s Symbol) Value() int {
	return s.number
}

// Equal reports whether two symbols are the same. Numbers compare by value,
// tags by text; a number never equals a tag.
func (s Symbol) Equal(o Symbol) bool {
	if s.kind != o.kind {
		return false
	}
	if s.kind == KindNumber {
		return s.number == o.number
	}
	return s.tag == o.tag
}

// Token returns the canonical token text of the symbol, the form used in
// descriptors and as prize-table keys.
func (s Symbol) Token() string {
	if s.kind == KindNumber {
		return strconv.Itoa(s.number)
	}
	return s.tag
}

// String implements fmt.Stringer.
func (s Symbol) String() string {
	return s.Token()
}

// Parse turns a scenario descriptor into the winning and player symbol rows.
// The descriptor has two semicolon-separated segments, "W:<csv>" and
// "P:<csv>". Numeric tokens become number symbols, everything else an opaque
// tag. Order is preserved and no deduplication is performed.
func Parse(descriptor string) (winning, player []Symbol, err error) {
	segments := strings.Split(descriptor, ";")
	if len(segments) < 2 {
		return nil, nil, fmt.Errorf("%w: expected \"W:..;P:..\", got %q", ErrMalformedScenario, descriptor)
	}

	winning, err = parseRow(segments[0], "W:")
	if err != nil {
		return nil, nil, err
	}
	player, err = parseRow(segments[1], "P:")
	if err != nil {
		return nil, nil, err
	}

	return winning, player, nil
}

// parseRow parses one "<prefix><csv>" segment into symbols.
func parseRow(segment, prefix string) ([]Symbol, error) {
	segment = strings.TrimSpace(segment)
	if !strings.HasPrefix(segment, prefix) {
		return nil, fmt.Errorf("%w: segment %q missing %q prefix", ErrMalformedScenario, segment, prefix)
	}

	csv := strings.TrimPrefix(segment, prefix)
	if strings.TrimSpace(csv) == "" {
		return nil, fmt.Errorf("%w: segment %q has no symbols", ErrMalformedScenario, segment)
	}

	tokens := strings.Split(csv, ",")
	symbols := make([]Symbol, 0, len(tokens))
	for _, token := range tokens {
		token = strings.TrimSpace(token)
		if token == "" {
			return nil, fmt.Errorf("%w: empty token in segment %q", ErrMalformedScenario, segment)
		}
		if n, err := strconv.Atoi(token); err == nil {
			symbols = append(symbols, Number(n))
		} else {
			symbols = append(symbols, Tag(token))
		}
	}

	return symbols, nil
}
