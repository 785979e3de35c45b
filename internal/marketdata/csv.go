package marketdata

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/tradelab/macross/internal/types"
)

// The loader accepts the common tabular layouts: a date/timestamp column, a
// close column, optionally open/high/low/volume, and optionally a symbol
// column (the original data keyed rows by stock_name) for multi-symbol files.

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

type columns struct {
	symbol, timestamp, open, high, low, close, volume int
}

// Load reads a CSV of price observations grouped by symbol. Files without a
// symbol column come back under the empty symbol. Each series is validated:
// strictly increasing timestamps and positive closes.
func Load(path string) (map[string][]types.Bar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	series, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return series, nil
}

// LoadSeries reads a single-symbol file (or the named symbol from a
// multi-symbol one).
func LoadSeries(path, symbol string) ([]types.Bar, error) {
	series, err := Load(path)
	if err != nil {
		return nil, err
	}

	if bars, ok := series[symbol]; ok {
		return bars, nil
	}
	if symbol == "" && len(series) == 1 {
		for _, bars := range series {
			return bars, nil
		}
	}
	return nil, fmt.Errorf("symbol %q not found in %s", symbol, path)
}

func Read(r io.Reader) (map[string][]types.Bar, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	cols, err := mapColumns(header)
	if err != nil {
		return nil, err
	}

	series := map[string][]types.Bar{}
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		symbol := ""
		if cols.symbol >= 0 {
			symbol = record[cols.symbol]
		}

		bar, err := parseBar(record, cols)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		if prev := series[symbol]; len(prev) > 0 && !bar.Timestamp.After(prev[len(prev)-1].Timestamp) {
			return nil, fmt.Errorf("line %d: timestamp %s does not follow %s (series must be strictly increasing)",
				line, bar.Timestamp.Format(time.RFC3339), prev[len(prev)-1].Timestamp.Format(time.RFC3339))
		}
		series[symbol] = append(series[symbol], bar)
	}

	if len(series) == 0 {
		return nil, &types.InsufficientDataError{What: "price series", Need: 1, Have: 0}
	}
	return series, nil
}

func mapColumns(header []string) (columns, error) {
	cols := columns{symbol: -1, timestamp: -1, open: -1, high: -1, low: -1, close: -1, volume: -1}
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "symbol", "stock_name", "ticker":
			cols.symbol = i
		case "timestamp", "date", "datetime", "time":
			cols.timestamp = i
		case "open":
			cols.open = i
		case "high":
			cols.high = i
		case "low":
			cols.low = i
		case "close", "adj_close":
			cols.close = i
		case "volume":
			cols.volume = i
		}
	}

	if cols.timestamp < 0 {
		return cols, fmt.Errorf("no timestamp column in header %v", header)
	}
	if cols.close < 0 {
		return cols, fmt.Errorf("no close column in header %v", header)
	}
	return cols, nil
}

func parseBar(record []string, cols columns) (types.Bar, error) {
	var bar types.Bar

	ts, err := parseTime(record[cols.timestamp])
	if err != nil {
		return bar, err
	}
	bar.Timestamp = ts

	bar.Close, err = strconv.ParseFloat(record[cols.close], 64)
	if err != nil {
		return bar, fmt.Errorf("bad close %q: %w", record[cols.close], err)
	}
	if bar.Close <= 0 {
		return bar, fmt.Errorf("close must be positive, got %v", bar.Close)
	}

	for _, opt := range []struct {
		col int
		dst *float64
	}{
		{cols.open, &bar.Open},
		{cols.high, &bar.High},
		{cols.low, &bar.Low},
		{cols.volume, &bar.Volume},
	} {
		if opt.col < 0 || record[opt.col] == "" {
			continue
		}
		if *opt.dst, err = strconv.ParseFloat(record[opt.col], 64); err != nil {
			return bar, fmt.Errorf("bad value %q: %w", record[opt.col], err)
		}
	}
	return bar, nil
}

func parseTime(raw string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", raw)
}
