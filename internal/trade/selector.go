package trade

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/devbanana/option-calculator/internal/chain"
	"github.com/devbanana/option-calculator/pkg/tradier"
)

// Selector resolves a user's intent to exactly one chain entry using one
// of three strategies: manual strike entry, selection from a windowed
// list, or nearest-delta matching. Whatever the strategy, the resolved
// entry is shown for confirmation; rejecting restarts the strategy loop.
type Selector struct {
	Prompt Prompter
	Out    io.Writer

	// Render shows a candidate entry before the confirmation prompt.
	// Optional; presentation belongs to the caller.
	Render func(*tradier.ChainEntry)

	// Strikes is the fetched strike list for the expiration.
	Strikes []float64

	// Entries is the fetched chain (with greeks) for the expiration.
	Entries []tradier.ChainEntry

	// Spot returns the current underlying price, used by the list
	// strategy to center its window.
	Spot func() (float64, error)
}

var strategies = []string{"manually", "select from list", "by delta"}

var listCounts = []string{"6", "8", "10", "12", "14", "16", "18", "20", "all"}

// strikeResult carries either a resolved strike (or entry) or a back
// signal returning the user to the strategy menu. Sentinel inputs are
// translated into this result at the prompt boundary; nothing downstream
// compares strings.
type strikeResult struct {
	strike float64
	entry  *tradier.ChainEntry
	back   bool
}

// Select runs the strategy/confirmation loop until the user accepts a
// contract.
func (s *Selector) Select(optionType string) (*tradier.ChainEntry, error) {
	for {
		idx, err := s.Prompt.Choose("How would you like to enter the strike?", strategies)
		if err != nil {
			return nil, err
		}

		var res strikeResult
		switch idx {
		case 0:
			res, err = s.manualStrike()
		case 1:
			res, err = s.strikeFromList()
		case 2:
			res, err = s.strikeByDelta(optionType)
		}
		if err != nil {
			return nil, err
		}
		if res.back {
			continue
		}

		entry := res.entry
		if entry == nil {
			entry = s.findEntry(optionType, res.strike)
			if entry == nil {
				_, _ = fmt.Fprintf(s.Out, "No %s is listed at that strike.\n", optionType)
				continue
			}
		}

		if s.Render != nil {
			s.Render(entry)
		}

		ok, err := s.Prompt.Confirm("Is this OK?")
		if err != nil {
			return nil, err
		}
		if ok {
			return entry, nil
		}
	}
}

// manualStrike prompts for a strike and validates it against the fetched
// strike list at cent precision.
func (s *Selector) manualStrike() (strikeResult, error) {
	for {
		input, err := s.Prompt.Ask(`Strike (enter "<" to choose another method): `)
		if err != nil {
			return strikeResult{}, err
		}
		if input == "<" {
			return strikeResult{back: true}, nil
		}

		strike, err := strconv.ParseFloat(input, 64)
		if err != nil {
			_, _ = fmt.Fprintln(s.Out, "Please enter a valid numeric strike.")
			continue
		}

		found := false
		for _, listed := range s.Strikes {
			if sameCents(listed, strike) {
				strike = listed
				found = true
				break
			}
		}
		if !found {
			_, _ = fmt.Fprintln(s.Out, "That is not a valid strike.")
			continue
		}

		return strikeResult{strike: strike}, nil
	}
}

// strikeFromList windows the chain around the current spot price and
// lets the user pick a strike from the bounded list.
func (s *Selector) strikeFromList() (strikeResult, error) {
	idx, err := s.Prompt.Choose("How many strikes would you like to view?", listCounts)
	if err != nil {
		return strikeResult{}, err
	}

	var strikes []float64
	if listCounts[idx] == "all" {
		strikes = s.Strikes
	} else {
		count, _ := strconv.Atoi(listCounts[idx])
		spot, err := s.Spot()
		if err != nil {
			return strikeResult{}, err
		}
		window, err := chain.Window(s.Entries, spot, count/2, chain.Filter{})
		if err != nil {
			return strikeResult{}, err
		}
		for _, pair := range window {
			strikes = append(strikes, pair.Strike)
		}
	}

	options := make([]string, 0, len(strikes)+1)
	for _, strike := range strikes {
		options = append(options, strconv.FormatFloat(strike, 'f', -1, 64))
	}
	options = append(options, "go back")

	choice, err := s.Prompt.Choose("Strike", options)
	if err != nil {
		return strikeResult{}, err
	}
	if choice == len(strikes) {
		return strikeResult{back: true}, nil
	}

	return strikeResult{strike: strikes[choice]}, nil
}

// strikeByDelta finds the chain entry of the requested type whose delta
// is closest to the target. Put targets are forced negative. A 20%
// margin keeps the bound from being too restrictive: calls accept
// delta <= target*1.2, puts accept delta >= target*1.2.
func (s *Selector) strikeByDelta(optionType string) (strikeResult, error) {
	for {
		input, err := s.Prompt.Ask(`Delta (enter "<" to go back): `)
		if err != nil {
			return strikeResult{}, err
		}
		if input == "<" {
			return strikeResult{back: true}, nil
		}

		target, err := strconv.ParseFloat(input, 64)
		if err != nil {
			_, _ = fmt.Fprintln(s.Out, "Please enter a valid delta.")
			continue
		}
		if optionType == "put" && target > 0 {
			target = -target
		}

		entry := MatchDelta(s.Entries, optionType, target)
		if entry == nil {
			_, _ = fmt.Fprintln(s.Out, ErrNoDeltaMatch.Error())
			return strikeResult{back: true}, nil
		}

		return strikeResult{entry: entry}, nil
	}
}

// MatchDelta selects the entry of the given option type with minimum
// |delta - target| among candidates inside the margin-adjusted bound.
// Returns nil when no candidate qualifies.
func MatchDelta(entries []tradier.ChainEntry, optionType string, target float64) *tradier.ChainEntry {
	margin := target * 1.2

	var selected *tradier.ChainEntry
	var best float64
	for i := range entries {
		entry := &entries[i]
		if entry.OptionType != optionType || entry.Greeks == nil {
			continue
		}
		if optionType == "call" && entry.Greeks.Delta > margin {
			continue
		}
		if optionType == "put" && entry.Greeks.Delta < margin {
			continue
		}

		diff := math.Abs(entry.Greeks.Delta - target)
		if selected == nil || diff < best {
			selected = entry
			best = diff
		}
	}

	return selected
}

func (s *Selector) findEntry(optionType string, strike float64) *tradier.ChainEntry {
	for i := range s.Entries {
		entry := &s.Entries[i]
		if entry.OptionType == optionType && sameCents(entry.Strike, strike) {
			return entry
		}
	}
	return nil
}

// sameCents compares strikes at fixed currency precision rather than raw
// float equality.
func sameCents(a, b float64) bool {
	return math.Round(a*100) == math.Round(b*100)
}
