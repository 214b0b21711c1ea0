package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/devbanana/option-calculator/pkg/tradier"
)

func TestChainEntryDetailsRoundsMid(t *testing.T) {
	out := &bytes.Buffer{}
	ChainEntryDetails(out, &tradier.ChainEntry{
		Description: "AAPL Sep 18 2026 $105.00 Call",
		Bid:         1.00,
		Ask:         1.11,
	})

	assert.Contains(t, out.String(), "Bid:")
	assert.Contains(t, out.String(), "$1.06")
	assert.NotContains(t, out.String(), "$1.055")
}

func TestChainEntryDetailsIncludesGreeks(t *testing.T) {
	out := &bytes.Buffer{}
	ChainEntryDetails(out, &tradier.ChainEntry{
		Description: "AAPL Sep 18 2026 $105.00 Call",
		Bid:         1.20,
		Ask:         1.40,
		Greeks:      &tradier.Greeks{Delta: 0.35, SmvVol: 0.27},
	})

	assert.Contains(t, out.String(), "IV:")
	assert.Contains(t, out.String(), "27.00%")
	assert.Contains(t, out.String(), "Delta:")
	assert.Contains(t, out.String(), "0.35")
}
