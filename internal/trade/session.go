package trade

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/devbanana/option-calculator/internal/output"
	"github.com/devbanana/option-calculator/pkg/tradier"
)

// Broker is the brokerage surface the construction flow depends on.
// *tradier.Client satisfies it; tests substitute fakes.
type Broker interface {
	QuoteGetter
	GetOptionExpirations(ctx context.Context, symbol string, includeAllRoots bool) ([]time.Time, error)
	GetOptionStrikes(ctx context.Context, symbol string, expiration time.Time) ([]float64, error)
	GetOptionChains(ctx context.Context, symbol string, expiration time.Time, includeGreeks bool) ([]tradier.ChainEntry, error)
	GetBalances(ctx context.Context) (*tradier.Balances, error)
	PreviewOrder(ctx context.Context, req tradier.OrderRequest) (*tradier.OrderPreview, error)
	CreateOrder(ctx context.Context, req tradier.OrderRequest) (*tradier.OrderConfirmation, error)
}

// Session drives one interactive order construction from first leg to
// preview and optional submission. All state lives in the builder it
// passes along; every step blocks on either a prompt or a fetch.
type Session struct {
	Broker Broker
	Prompt Prompter
	Out    io.Writer

	// Tag is attached to the submitted order for later identification.
	Tag string
}

// Run executes the full flow: balances, symbol, legs, order type and
// pricing, duration, preview, confirm, create.
func (s *Session) Run(ctx context.Context) error {
	balances, err := s.Broker.GetBalances(ctx)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(s.Out, "New Trade")
	_, _ = fmt.Fprintln(s.Out)
	if balances.Margin != nil {
		output.DefinitionList(s.Out, [][2]string{
			{"Stock Buying Power", output.Currency(balances.Margin.StockBuyingPower)},
			{"Option Buying Power", output.Currency(balances.Margin.OptionBuyingPower)},
		})
		_, _ = fmt.Fprintln(s.Out)
	}

	symbol, err := s.askSymbol()
	if err != nil {
		return err
	}

	quote, err := s.Broker.GetQuote(ctx, symbol, false)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(s.Out, "%s\n%s\n%s\n", quote.Description,
		output.Currency(quote.Last), output.Change(quote.Change, quote.ChangePercentage))

	builder := NewBuilder(quote.Symbol)
	for {
		if err := s.addLeg(ctx, builder); err != nil {
			return err
		}
		more, err := s.Prompt.Confirm("Add another leg?")
		if err != nil {
			return err
		}
		if !more {
			break
		}
	}

	req, err := s.assemble(ctx, builder)
	if err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"class": req.Class,
		"type":  req.Type,
		"legs":  len(req.Sides),
	}).Debug("previewing order")

	preview, err := s.Broker.PreviewOrder(ctx, *req)
	if err != nil {
		return err
	}
	s.showPreview(preview, builder.NetGreeks())

	send, err := s.Prompt.Confirm("Send this order?")
	if err != nil {
		return err
	}
	if !send {
		_, _ = fmt.Fprintln(s.Out, "Order was not submitted.")
		return nil
	}

	confirmation, err := s.Broker.CreateOrder(ctx, *req)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(s.Out, "Order created\nOrder ID: %d\n", confirmation.ID)
	return nil
}

func (s *Session) askSymbol() (string, error) {
	for {
		input, err := s.Prompt.Ask("Symbol: ")
		if err != nil {
			return "", err
		}
		input = strings.ToUpper(strings.TrimSpace(input))
		if input == "" {
			_, _ = fmt.Fprintln(s.Out, "Please enter a symbol.")
			continue
		}
		return input, nil
	}
}

// addLeg collects one leg: kind, side, quantity, and for options the
// expiration, type, and strike via the selector.
func (s *Session) addLeg(ctx context.Context, builder *Builder) error {
	kinds := []string{string(KindEquity), string(KindOption)}
	ki, err := s.Prompt.Choose("Security type", kinds)
	if err != nil {
		return err
	}
	kind := Kind(kinds[ki])

	sides := AllowedSides(kind)
	si, err := s.Prompt.Choose("Side", sides)
	if err != nil {
		return err
	}

	quantity, err := s.askQuantity(kind)
	if err != nil {
		return err
	}

	leg := Leg{Kind: kind, Side: sides[si], Quantity: quantity}

	if kind == KindOption {
		expiration, err := s.askExpiration(ctx, builder.Symbol)
		if err != nil {
			return err
		}

		optionTypes := []string{"call", "put"}
		ti, err := s.Prompt.Choose("Option type", optionTypes)
		if err != nil {
			return err
		}

		strikes, err := s.Broker.GetOptionStrikes(ctx, builder.Symbol, expiration)
		if err != nil {
			return err
		}
		entries, err := s.Broker.GetOptionChains(ctx, builder.Symbol, expiration, true)
		if err != nil {
			return err
		}

		selector := &Selector{
			Prompt:  s.Prompt,
			Out:     s.Out,
			Render:  func(entry *tradier.ChainEntry) { output.ChainEntryDetails(s.Out, entry) },
			Strikes: strikes,
			Entries: entries,
			Spot: func() (float64, error) {
				q, err := s.Broker.GetQuote(ctx, builder.Symbol, false)
				if err != nil {
					return 0, err
				}
				return q.Last, nil
			},
		}

		entry, err := selector.Select(optionTypes[ti])
		if err != nil {
			return err
		}
		leg.Entry = entry
	}

	return builder.AddLeg(leg)
}

func (s *Session) askQuantity(kind Kind) (int, error) {
	prompt := "Shares: "
	if kind == KindOption {
		prompt = "Contracts: "
	}
	for {
		input, err := s.Prompt.Ask(prompt)
		if err != nil {
			return 0, err
		}
		quantity, err := strconv.Atoi(input)
		if err != nil || quantity <= 0 {
			_, _ = fmt.Fprintln(s.Out, "Please enter a valid numeric quantity.")
			continue
		}
		return quantity, nil
	}
}

// askExpiration validates the entered date against the fetched
// expiration list; "list" presents the dates as a menu instead.
func (s *Session) askExpiration(ctx context.Context, symbol string) (time.Time, error) {
	expirations, err := s.Broker.GetOptionExpirations(ctx, symbol, true)
	if err != nil {
		return time.Time{}, err
	}

	for {
		input, err := s.Prompt.Ask(`Expiration (enter "list" to list all expirations): `)
		if err != nil {
			return time.Time{}, err
		}

		if input == "list" {
			options := make([]string, len(expirations))
			for i, exp := range expirations {
				options[i] = exp.Format("Jan 2, 2006")
			}
			idx, err := s.Prompt.Choose("Expiration", options)
			if err != nil {
				return time.Time{}, err
			}
			return expirations[idx], nil
		}

		entered, err := time.Parse(tradier.DateFormat, input)
		if err != nil {
			_, _ = fmt.Fprintln(s.Out, "Please enter a valid date (YYYY-MM-DD).")
			continue
		}
		for _, exp := range expirations {
			if exp.Equal(entered) {
				return exp, nil
			}
		}
		_, _ = fmt.Fprintln(s.Out, "That expiration date does not exist.")
	}
}

func (s *Session) showPreview(preview *tradier.OrderPreview, greeks *NetGreeks) {
	_, _ = fmt.Fprintln(s.Out, "\nOrder Details")

	pairs := [][2]string{
		{"Commission", output.Currency(preview.Commission)},
	}
	if preview.OrderCost < 0 {
		pairs = append(pairs, [2]string{"Order Proceeds", output.Currency(-preview.OrderCost)})
	} else {
		pairs = append(pairs, [2]string{"Order Cost", output.Currency(preview.OrderCost)})
	}
	if preview.MarginChange != nil {
		pairs = append(pairs, [2]string{"Margin Requirement", output.Currency(*preview.MarginChange)})
	}
	if preview.Cost < 0 {
		pairs = append(pairs, [2]string{"Total Order Proceeds", output.Currency(-preview.Cost)})
	} else {
		pairs = append(pairs, [2]string{"Est. Total Cost", output.Currency(preview.Cost)})
	}
	output.DefinitionList(s.Out, pairs)

	if greeks != nil {
		_, _ = fmt.Fprintln(s.Out)
		output.DefinitionList(s.Out, [][2]string{
			{"Net Delta", fmt.Sprintf("%g", greeks.Delta)},
			{"Net Gamma", fmt.Sprintf("%g", greeks.Gamma)},
			{"Net Theta", fmt.Sprintf("%g", greeks.Theta)},
			{"Net Vega", fmt.Sprintf("%g", greeks.Vega)},
		})
	}
}
