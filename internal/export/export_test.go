package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	Date  string  `csv:"date"`
	Value float64 `csv:"value"`
}

func TestCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	rows := []row{
		{Date: "2026-08-18", Value: 42.5},
		{Date: "2026-08-19", Value: 43.1},
	}

	require.NoError(t, CSV(path, &rows))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "date,value")
	assert.Contains(t, string(data), "2026-08-18,42.5")
}

func TestCSVBadPath(t *testing.T) {
	err := CSV(filepath.Join(t.TempDir(), "missing", "out.csv"), &[]row{})
	assert.Error(t, err)
}
