package chain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devbanana/option-calculator/pkg/tradier"
)

func entry(strike float64, optionType string) tradier.ChainEntry {
	return tradier.ChainEntry{
		Symbol:     "TEST",
		Strike:     strike,
		OptionType: optionType,
	}
}

func bothSides(strikes ...float64) []tradier.ChainEntry {
	entries := make([]tradier.ChainEntry, 0, len(strikes)*2)
	for _, s := range strikes {
		entries = append(entries, entry(s, "call"), entry(s, "put"))
	}
	return entries
}

func TestWindowBothSidesExcluded(t *testing.T) {
	_, err := Window(bothSides(100), 100, 4, Filter{ExcludeCalls: true, ExcludePuts: true})
	require.ErrorIs(t, err, ErrNoSidesIncluded)
}

func TestWindowLimitsAndOrder(t *testing.T) {
	entries := bothSides(90, 95, 100, 105, 110, 115)

	pairs, err := Window(entries, 100.5, 2, Filter{})
	require.NoError(t, err)

	strikes := make([]float64, 0, len(pairs))
	for _, p := range pairs {
		strikes = append(strikes, p.Strike)
	}
	// Last two below the price, first two at or above it.
	assert.Equal(t, []float64{95, 100, 105, 110}, strikes)
}

func TestWindowTieGoesAbove(t *testing.T) {
	entries := bothSides(95, 100, 105)

	// A strike equal to the price belongs to the upper half.
	pairs, err := Window(entries, 100, 1, Filter{})
	require.NoError(t, err)
	require.Len(t, pairs, 2)
	assert.Equal(t, 95.0, pairs[0].Strike)
	assert.Equal(t, 100.0, pairs[1].Strike)
}

func TestWindowNeverExceedsTwoN(t *testing.T) {
	entries := bothSides(10, 20, 30, 40, 50, 60, 70, 80, 90, 100)

	for _, n := range []int{1, 2, 3, 10} {
		pairs, err := Window(entries, 55, n, Filter{})
		require.NoError(t, err)
		assert.LessOrEqual(t, len(pairs), 2*n)
		for i := 1; i < len(pairs); i++ {
			assert.Less(t, pairs[i-1].Strike, pairs[i].Strike)
		}
	}
}

func TestWindowShortSides(t *testing.T) {
	entries := bothSides(100, 105, 110)

	// Only one strike below; the window is simply shorter.
	pairs, err := Window(entries, 104, 3, Filter{})
	require.NoError(t, err)
	require.Len(t, pairs, 3)
	assert.Equal(t, 100.0, pairs[0].Strike)
}

func TestWindowExcludesSides(t *testing.T) {
	entries := bothSides(95, 100, 105)

	pairs, err := Window(entries, 100, 2, Filter{ExcludePuts: true})
	require.NoError(t, err)
	for _, p := range pairs {
		assert.NotNil(t, p.Call)
		assert.Nil(t, p.Put)
	}

	pairs, err = Window(entries, 100, 2, Filter{ExcludeCalls: true})
	require.NoError(t, err)
	for _, p := range pairs {
		assert.Nil(t, p.Call)
		assert.NotNil(t, p.Put)
	}
}

func TestWindowPairsOneSidedStrikes(t *testing.T) {
	entries := []tradier.ChainEntry{
		entry(95, "call"),
		entry(100, "call"),
		entry(100, "put"),
	}

	pairs, err := Window(entries, 98, 2, Filter{})
	require.NoError(t, err)
	require.Len(t, pairs, 2)

	assert.Equal(t, 95.0, pairs[0].Strike)
	assert.NotNil(t, pairs[0].Call)
	assert.Nil(t, pairs[0].Put)

	assert.Equal(t, 100.0, pairs[1].Strike)
	assert.NotNil(t, pairs[1].Call)
	assert.NotNil(t, pairs[1].Put)
}
