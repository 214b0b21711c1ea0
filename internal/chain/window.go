// Package chain selects bounded windows of strikes from a raw option
// chain around a reference price.
package chain

import (
	"errors"
	"sort"

	"github.com/devbanana/option-calculator/pkg/tradier"
)

// ErrNoSidesIncluded is returned when both calls and puts are excluded
// from a window, which leaves nothing to select.
var ErrNoSidesIncluded = errors.New("chain: both calls and puts have been excluded")

// StrikePair groups the call and put listed at a single strike. Either
// side may be nil when that side is excluded or not listed.
type StrikePair struct {
	Strike float64
	Call   *tradier.ChainEntry
	Put    *tradier.ChainEntry
}

// Filter controls which option types contribute to a window.
type Filter struct {
	ExcludeCalls bool
	ExcludePuts  bool
}

// Window returns up to n strikes below the reference price and n strikes
// at or above it, paired by strike and ordered ascending. Strikes
// strictly below the price count as "below"; ties go above. The input
// chain is not modified.
func Window(entries []tradier.ChainEntry, price float64, n int, filter Filter) ([]StrikePair, error) {
	if filter.ExcludeCalls && filter.ExcludePuts {
		return nil, ErrNoSidesIncluded
	}

	lower := map[float64]*StrikePair{}
	higher := map[float64]*StrikePair{}

	for i := range entries {
		entry := &entries[i]
		switch entry.OptionType {
		case "call":
			if filter.ExcludeCalls {
				continue
			}
		case "put":
			if filter.ExcludePuts {
				continue
			}
		default:
			continue
		}

		bucket := higher
		if entry.Strike < price {
			bucket = lower
		}

		pair, ok := bucket[entry.Strike]
		if !ok {
			pair = &StrikePair{Strike: entry.Strike}
			bucket[entry.Strike] = pair
		}
		if entry.OptionType == "call" {
			pair.Call = entry
		} else {
			pair.Put = entry
		}
	}

	below := sortedPairs(lower)
	above := sortedPairs(higher)

	// Last n below the price, first n above it.
	if len(below) > n {
		below = below[len(below)-n:]
	}
	if len(above) > n {
		above = above[:n]
	}

	return append(below, above...), nil
}

func sortedPairs(bucket map[float64]*StrikePair) []StrikePair {
	pairs := make([]StrikePair, 0, len(bucket))
	for _, pair := range bucket {
		pairs = append(pairs, *pair)
	}
	sort.Slice(pairs, func(i, j int) bool {
		return pairs[i].Strike < pairs[j].Strike
	})
	return pairs
}
