// Package output handles terminal rendering: table and definition-list
// layout, JSON mode, and currency/percent formatting.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"math"

	"github.com/olekukonko/tablewriter"

	"github.com/devbanana/option-calculator/pkg/tradier"
)

// Formatter renders results as text tables or JSON depending on mode.
type Formatter struct {
	Writer   io.Writer
	JSONMode bool
}

// New creates a Formatter for the given writer and JSON mode.
func New(w io.Writer, jsonMode bool) *Formatter {
	return &Formatter{Writer: w, JSONMode: jsonMode}
}

// Table renders headers and rows as an aligned table, or as a JSON array
// of objects in JSON mode.
func (f *Formatter) Table(headers []string, rows [][]string) error {
	if f.JSONMode {
		result := make([]map[string]string, 0, len(rows))
		for _, row := range rows {
			obj := make(map[string]string, len(headers))
			for i, header := range headers {
				if i < len(row) {
					obj[header] = row[i]
				}
			}
			result = append(result, obj)
		}
		return f.Print(result)
	}

	table := tablewriter.NewWriter(f.Writer)
	table.SetHeader(headers)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	table.AppendBulk(rows)
	table.Render()
	return nil
}

// Print emits data as indented JSON in JSON mode, or via %v otherwise.
func (f *Formatter) Print(data any) error {
	if f.JSONMode {
		enc := json.NewEncoder(f.Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	}
	_, err := fmt.Fprintf(f.Writer, "%v\n", data)
	return err
}

// DefinitionList renders label/value pairs in aligned rows.
func DefinitionList(w io.Writer, pairs [][2]string) {
	width := 0
	for _, pair := range pairs {
		if len(pair[0]) > width {
			width = len(pair[0])
		}
	}
	for _, pair := range pairs {
		_, _ = fmt.Fprintf(w, "  %-*s  %s\n", width+1, pair[0]+":", pair[1])
	}
}

// ChainEntryDetails renders a contract's pricing, liquidity, and greeks
// in the detail layout used when confirming a strike selection.
func ChainEntryDetails(w io.Writer, entry *tradier.ChainEntry) {
	_, _ = fmt.Fprintf(w, "\n%s\n", entry.Description)

	mid := math.Round((entry.Bid+entry.Ask)/2*100) / 100
	pairs := [][2]string{
		{"Bid", Currency(entry.Bid)},
		{"Mid", Currency(mid)},
		{"Ask", Currency(entry.Ask)},
		{"Volume", Number(float64(entry.Volume), 0)},
		{"Open Interest", Number(float64(entry.OpenInterest), 0)},
	}
	if entry.Greeks != nil {
		pairs = append(pairs, [2]string{"IV", Percent(entry.Greeks.SmvVol, 2)})
	}
	DefinitionList(w, pairs)

	if entry.Greeks != nil {
		_, _ = fmt.Fprintln(w, "Greeks")
		DefinitionList(w, [][2]string{
			{"Delta", fmt.Sprintf("%g", entry.Greeks.Delta)},
			{"Gamma", fmt.Sprintf("%g", entry.Greeks.Gamma)},
			{"Theta", fmt.Sprintf("%g", entry.Greeks.Theta)},
			{"Vega", fmt.Sprintf("%g", entry.Greeks.Vega)},
		})
	}
}
