// Package export writes analysis results to CSV files.
package export

import (
	"fmt"
	"os"

	"github.com/gocarina/gocsv"
)

// CSV marshals rows to a CSV file at path. rows must be a slice of
// structs carrying csv tags.
func CSV(path string, rows any) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := gocsv.MarshalFile(rows, f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
