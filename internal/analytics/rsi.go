package analytics

import (
	"errors"
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
)

// ErrNotEnoughData is returned when a price series is shorter than an
// indicator's warmup window.
var ErrNotEnoughData = errors.New("analytics: not enough data for the requested period")

// RSI computes Wilder's relative strength index over closing prices.
//
// The result is aligned with closes: the first period values are NaN
// while the smoothed averages warm up.
func RSI(closes []float64, period int) ([]float64, error) {
	if period <= 0 {
		return nil, fmt.Errorf("analytics: invalid RSI period %d", period)
	}
	if len(closes) < period+1 {
		return nil, fmt.Errorf("%w: need %d closes, have %d", ErrNotEnoughData, period+1, len(closes))
	}

	gains := make([]float64, len(closes))
	losses := make([]float64, len(closes))
	for i := 1; i < len(closes); i++ {
		delta := closes[i] - closes[i-1]
		if delta > 0 {
			gains[i] = delta
		} else {
			losses[i] = -delta
		}
	}

	avgGain, err := stats.Mean(gains[1 : period+1])
	if err != nil {
		return nil, err
	}
	avgLoss, err := stats.Mean(losses[1 : period+1])
	if err != nil {
		return nil, err
	}

	result := make([]float64, len(closes))
	for i := 0; i < period; i++ {
		result[i] = math.NaN()
	}
	result[period] = rsiValue(avgGain, avgLoss)

	for i := period + 1; i < len(closes); i++ {
		avgGain = (avgGain*float64(period-1) + gains[i]) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + losses[i]) / float64(period)
		result[i] = rsiValue(avgGain, avgLoss)
	}
	return result, nil
}

func rsiValue(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		return 100
	}
	rs := avgGain / avgLoss
	return 100 - 100/(1+rs)
}
