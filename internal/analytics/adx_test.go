package analytics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devbanana/option-calculator/pkg/tradier"
)

func trendingBars(n int) []tradier.HistoricalDay {
	bars := make([]tradier.HistoricalDay, n)
	for i := range bars {
		base := 100 + float64(i)
		bars[i] = tradier.HistoricalDay{
			High:  base + 1,
			Low:   base - 1,
			Close: base,
		}
	}
	return bars
}

func TestADXUptrend(t *testing.T) {
	period := 14
	bars := trendingBars(60)

	dm, err := ADX(bars, period)
	require.NoError(t, err)
	require.Len(t, dm.ADX, len(bars))
	require.Len(t, dm.PlusDI, len(bars))
	require.Len(t, dm.MinusDI, len(bars))

	for i := 0; i < period; i++ {
		assert.True(t, math.IsNaN(dm.PlusDI[i]))
	}
	for i := 0; i < 2*period-1; i++ {
		assert.True(t, math.IsNaN(dm.ADX[i]))
	}

	last := len(bars) - 1
	assert.Greater(t, dm.PlusDI[last], dm.MinusDI[last])
	assert.GreaterOrEqual(t, dm.ADX[last], 0.0)
	assert.LessOrEqual(t, dm.ADX[last], 100.0)
	// A monotone uptrend has strong directional movement.
	assert.Greater(t, dm.ADX[last], 25.0)
}

func TestADXBounds(t *testing.T) {
	bars := trendingBars(60)
	// Mix in some down days.
	for i := 10; i < 60; i += 7 {
		bars[i].High -= 3
		bars[i].Low -= 3
		bars[i].Close -= 3
	}

	dm, err := ADX(bars, 14)
	require.NoError(t, err)

	for i := range dm.ADX {
		if math.IsNaN(dm.ADX[i]) {
			continue
		}
		assert.GreaterOrEqual(t, dm.ADX[i], 0.0)
		assert.LessOrEqual(t, dm.ADX[i], 100.0)
	}
}

func TestADXNotEnoughData(t *testing.T) {
	_, err := ADX(trendingBars(10), 14)
	assert.ErrorIs(t, err, ErrNotEnoughData)
}

func TestADXInvalidPeriod(t *testing.T) {
	_, err := ADX(trendingBars(10), -1)
	assert.Error(t, err)
}
