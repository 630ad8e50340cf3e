package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/stockpilot/stockpilot/internal/models"
)

// readSeries parses a two-column CSV (date, value) into a time series.
// Dates use the 2006-01-02 layout; a header row is skipped if the second
// column does not parse as a number. Rows keep file order — the engine
// treats position as the regression axis.
func readSeries(path string) ([]models.TimeSeriesPoint, error) {
	if path == "" {
		return nil, fmt.Errorf("a CSV file path is required")
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	series := make([]models.TimeSeriesPoint, 0, len(rows))
	for i, row := range rows {
		if len(row) < 2 {
			return nil, fmt.Errorf("%s row %d: expected 2 columns (date, value), got %d", path, i+1, len(row))
		}

		value, err := strconv.ParseFloat(row[1], 64)
		if err != nil {
			if i == 0 {
				continue // header row
			}
			return nil, fmt.Errorf("%s row %d: invalid value %q", path, i+1, row[1])
		}

		ts, err := time.Parse("2006-01-02", row[0])
		if err != nil {
			return nil, fmt.Errorf("%s row %d: invalid date %q", path, i+1, row[0])
		}

		series = append(series, models.TimeSeriesPoint{Timestamp: ts, Value: value})
	}
	return series, nil
}
