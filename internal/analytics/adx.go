package analytics

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"

	"github.com/devbanana/option-calculator/pkg/tradier"
)

// DirectionalMovement holds the ADX trend-strength series together with
// its directional components. All slices align with the input bars; the
// warmup prefix is NaN (period bars for the DIs, 2*period for ADX).
type DirectionalMovement struct {
	ADX     []float64
	PlusDI  []float64
	MinusDI []float64
}

// ADX computes Wilder's average directional index from daily bars.
func ADX(bars []tradier.HistoricalDay, period int) (*DirectionalMovement, error) {
	if period <= 0 {
		return nil, fmt.Errorf("analytics: invalid ADX period %d", period)
	}
	if len(bars) < 2*period+1 {
		return nil, fmt.Errorf("%w: need %d bars, have %d", ErrNotEnoughData, 2*period+1, len(bars))
	}

	n := len(bars)
	tr := make([]float64, n)
	plusDM := make([]float64, n)
	minusDM := make([]float64, n)
	for i := 1; i < n; i++ {
		cur, prev := bars[i], bars[i-1]

		tr[i] = math.Max(cur.High-cur.Low,
			math.Max(math.Abs(cur.High-prev.Close), math.Abs(cur.Low-prev.Close)))

		up := cur.High - prev.High
		down := prev.Low - cur.Low
		if up > down && up > 0 {
			plusDM[i] = up
		}
		if down > up && down > 0 {
			minusDM[i] = down
		}
	}

	smTR, err := stats.Sum(tr[1 : period+1])
	if err != nil {
		return nil, err
	}
	smPlus, err := stats.Sum(plusDM[1 : period+1])
	if err != nil {
		return nil, err
	}
	smMinus, err := stats.Sum(minusDM[1 : period+1])
	if err != nil {
		return nil, err
	}

	dm := &DirectionalMovement{
		ADX:     nanSlice(n),
		PlusDI:  nanSlice(n),
		MinusDI: nanSlice(n),
	}

	dx := make([]float64, n)
	for i := period; i < n; i++ {
		if i > period {
			smTR = smTR - smTR/float64(period) + tr[i]
			smPlus = smPlus - smPlus/float64(period) + plusDM[i]
			smMinus = smMinus - smMinus/float64(period) + minusDM[i]
		}

		var plusDI, minusDI float64
		if smTR > 0 {
			plusDI = 100 * smPlus / smTR
			minusDI = 100 * smMinus / smTR
		}
		dm.PlusDI[i] = plusDI
		dm.MinusDI[i] = minusDI

		if sum := plusDI + minusDI; sum > 0 {
			dx[i] = 100 * math.Abs(plusDI-minusDI) / sum
		}
	}

	adx, err := stats.Mean(dx[period : 2*period])
	if err != nil {
		return nil, err
	}
	dm.ADX[2*period-1] = adx
	for i := 2 * period; i < n; i++ {
		adx = (adx*float64(period-1) + dx[i]) / float64(period)
		dm.ADX[i] = adx
	}
	return dm, nil
}

func nanSlice(n int) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = math.NaN()
	}
	return s
}
