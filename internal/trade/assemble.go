package trade

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/devbanana/option-calculator/internal/output"
	"github.com/devbanana/option-calculator/pkg/tradier"
)

// Order type vocabularies depend on the order class: single-instrument
// orders price in dollars, combined orders price as a net debit/credit.
var (
	singleOrderTypes = []string{"market", "limit", "stop_limit", "stop"}
	comboOrderTypes  = []string{"market", "debit", "credit", "even"}
)

// durationChoices are presented as-is; the wire values for the market
// session choices drop the "-market" suffix.
var durationChoices = []string{"day", "GTC", "pre-market", "post-market"}

func pricingBearing(orderType string) bool {
	switch orderType {
	case "limit", "stop_limit", "debit", "credit":
		return true
	}
	return false
}

// assemble turns the accumulated legs into the order payload: order
// type, limit/stop prices, and duration.
func (s *Session) assemble(ctx context.Context, builder *Builder) (*tradier.OrderRequest, error) {
	class := builder.Class()
	single := class == ClassEquity || class == ClassOption

	types := comboOrderTypes
	if single {
		types = singleOrderTypes
	}
	ti, err := s.Prompt.Choose("Order type", types)
	if err != nil {
		return nil, err
	}
	orderType := types[ti]

	var price, stop *float64
	if pricingBearing(orderType) {
		price, err = s.priceLoop(ctx, builder, single)
		if err != nil {
			return nil, err
		}
	}
	if orderType == "stop" || orderType == "stop_limit" {
		stop, err = s.askStop()
		if err != nil {
			return nil, err
		}
	}

	di, err := s.Prompt.Choose("Duration", durationChoices)
	if err != nil {
		return nil, err
	}
	duration := strings.ToLower(strings.TrimSuffix(durationChoices[di], "-market"))

	tag := s.Tag
	if tag == "" {
		tag = uuid.NewString()
	}

	req := builder.Build(orderType, duration, price, stop, tag)
	return &req, nil
}

// priceLoop shows current pricing and reads a limit price. Entering "r"
// re-fetches every quote and recomputes instead of accepting.
func (s *Session) priceLoop(ctx context.Context, builder *Builder, single bool) (*float64, error) {
	for {
		var pricing PricingQuote
		labeled := !single

		if single {
			symbol := builder.Symbol
			includeMid := false
			if legs := builder.Legs(); len(legs) == 1 && legs[0].Kind == KindOption {
				symbol = legs[0].Entry.Symbol
				includeMid = true
			}
			quote, err := s.Broker.GetQuote(ctx, symbol, false)
			if err != nil {
				return nil, err
			}
			pricing = PriceSingle(quote, includeMid)
		} else {
			var err error
			pricing, err = PriceLegs(ctx, s.Broker, builder.Legs())
			if err != nil {
				return nil, err
			}
		}

		s.showPricing(pricing, labeled)

		input, err := s.Prompt.Ask(`Limit (enter "r" to refresh): `)
		if err != nil {
			return nil, err
		}
		if strings.EqualFold(input, "r") {
			continue
		}

		limit, err := strconv.ParseFloat(input, 64)
		if err != nil {
			_, _ = fmt.Fprintln(s.Out, "Please enter a numeric limit.")
			continue
		}
		if limit <= 0 {
			_, _ = fmt.Fprintln(s.Out, "Limit price must be a positive number.")
			continue
		}
		return &limit, nil
	}
}

func (s *Session) askStop() (*float64, error) {
	for {
		input, err := s.Prompt.Ask("Stop price: ")
		if err != nil {
			return nil, err
		}
		stop, err := strconv.ParseFloat(input, 64)
		if err != nil {
			_, _ = fmt.Fprintln(s.Out, "Please enter a valid stop price.")
			continue
		}
		if stop <= 0 {
			_, _ = fmt.Fprintln(s.Out, "Stop price must be a positive number.")
			continue
		}
		return &stop, nil
	}
}

// showPricing prints bid/mid/ask. For combined orders each value is
// labeled debit or credit from its own sign and shown as an absolute
// amount.
func (s *Session) showPricing(pricing PricingQuote, labeled bool) {
	var pairs [][2]string

	add := func(name string, v float64) {
		label := name
		if labeled {
			label = Label(v) + " " + name
		}
		pairs = append(pairs, [2]string{label, output.Currency(math.Abs(v))})
	}

	add("Bid", pricing.Bid)
	if pricing.Mid != nil {
		add("Mid", *pricing.Mid)
	}
	add("Ask", pricing.Ask)

	_, _ = fmt.Fprintln(s.Out)
	output.DefinitionList(s.Out, pairs)
}
