package prize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func validInstantWins() map[string]map[int64]int64 {
	return map[string]map[int64]int64{
		"IW1": {100: 1000, 200: 2000},
		"IW2": {100: 2500, 200: 5000},
	}
}

// TestNewTable tests fail-fast validation at construction.
func TestNewTable(t *testing.T) {
	tests := []struct {
		name        string
		instantWins map[string]map[int64]int64
		multiplier  int64
		prices      []int64
		wantErr     error
	}{
		{
			name:        "valid table",
			instantWins: validInstantWins(),
			multiplier:  5,
			prices:      []int64{100, 200},
		},
		{
			name:        "no instant wins is valid",
			instantWins: nil,
			multiplier:  5,
			prices:      []int64{100},
		},
		{
			name:        "missing payout for configured price",
			instantWins: map[string]map[int64]int64{"IW1": {100: 1000}},
			multiplier:  5,
			prices:      []int64{100, 500},
			wantErr:     ErrUnknownPayout,
		},
		{
			name:        "negative payout",
			instantWins: map[string]map[int64]int64{"IW1": {100: -1}},
			multiplier:  5,
			prices:      []int64{100},
			wantErr:     ErrUnknownPayout,
		},
		{
			name:        "zero multiplier",
			instantWins: validInstantWins(),
			multiplier:  0,
			prices:      []int64{100, 200},
			wantErr:     ErrInvalidMultiplier,
		},
		{
			name:        "negative multiplier",
			instantWins: validInstantWins(),
			multiplier:  -3,
			prices:      []int64{100, 200},
			wantErr:     ErrInvalidMultiplier,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := NewTable(tt.instantWins, tt.multiplier, tt.prices)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.multiplier, table.MatchMultiplier())
		})
	}
}

// TestTableLookup tests instant-win lookup by token and price.
func TestTableLookup(t *testing.T) {
	table, err := NewTable(validInstantWins(), 5, []int64{100, 200})
	require.NoError(t, err)

	amount, ok := table.InstantWin("IW1", 100)
	assert.True(t, ok)
	assert.Equal(t, int64(1000), amount)

	amount, ok = table.InstantWin("IW2", 200)
	assert.True(t, ok)
	assert.Equal(t, int64(5000), amount)

	// Unknown token.
	_, ok = table.InstantWin("IW9", 100)
	assert.False(t, ok)

	// Known token at an unconfigured price.
	_, ok = table.InstantWin("IW1", 999)
	assert.False(t, ok)

	assert.True(t, table.IsInstantWin("IW1"))
	assert.False(t, table.IsInstantWin("5"))
}

// TestTableLookupCaseInsensitive tests that token matching survives the
// config loader lowercasing map keys.
func TestTableLookupCaseInsensitive(t *testing.T) {
	table, err := NewTable(map[string]map[int64]int64{"iw1": {100: 1000}}, 5, []int64{100})
	require.NoError(t, err)

	amount, ok := table.InstantWin("IW1", 100)
	assert.True(t, ok)
	assert.Equal(t, int64(1000), amount)
	assert.True(t, table.IsInstantWin("Iw1"))
}

// TestTableNumericToken tests that a number reused as an instant-win key pays
// as an instant win when looked up by token.
func TestTableNumericToken(t *testing.T) {
	table, err := NewTable(map[string]map[int64]int64{"7": {100: 750}}, 5, []int64{100})
	require.NoError(t, err)

	amount, ok := table.InstantWin("7", 100)
	assert.True(t, ok)
	assert.Equal(t, int64(750), amount)
}

// TestTableIsReadOnly tests that the table does not alias the caller's maps.
func TestTableIsReadOnly(t *testing.T) {
	instantWins := validInstantWins()
	table, err := NewTable(instantWins, 5, []int64{100, 200})
	require.NoError(t, err)

	instantWins["IW1"][100] = 9999
	amount, ok := table.InstantWin("IW1", 100)
	assert.True(t, ok)
	assert.Equal(t, int64(1000), amount)
}

// TestTableValidationProperty checks that a validated table answers every
// configured (token, price) lookup.
func TestTableValidationProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		priceCount := rapid.IntRange(1, 5).Draw(t, "priceCount")
		prices := make([]int64, priceCount)
		for i := range prices {
			prices[i] = int64((i + 1) * 100)
		}

		tokens := rapid.SliceOfNDistinct(
			rapid.StringMatching(`iw[0-9]{1,2}`), 1, 4, rapid.ID[string],
		).Draw(t, "tokens")

		instantWins := make(map[string]map[int64]int64, len(tokens))
		for _, token := range tokens {
			byPrice := make(map[int64]int64, priceCount)
			for _, price := range prices {
				byPrice[price] = rapid.Int64Range(0, 100000).Draw(t, "payout")
			}
			instantWins[token] = byPrice
		}

		table, err := NewTable(instantWins, rapid.Int64Range(1, 100).Draw(t, "multiplier"), prices)
		if err != nil {
			t.Fatalf("valid table should build: %v", err)
		}
		for _, token := range tokens {
			for _, price := range prices {
				if _, ok := table.InstantWin(token, price); !ok {
					t.Fatalf("validated table missing payout for %q at %d", token, price)
				}
			}
		}
	})
}
