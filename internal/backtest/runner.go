package backtest

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/tradelab/macross/internal/config"
	"github.com/tradelab/macross/internal/types"
)

// RunAll backtests each symbol's series independently, one goroutine per
// symbol. Runs share nothing mutable, so results are identical to running
// each symbol alone. Symbols that fail (for example a series shorter than
// the long window) are reported in the joined error without aborting the
// others.
func RunAll(series map[string][]types.Bar, cfg config.Config) ([]*Results, error) {
	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		results []*Results
		errs    []error
	)

	for symbol, bars := range series {
		wg.Add(1)
		go func(symbol string, bars []types.Bar) {
			defer wg.Done()

			res, err := runOne(symbol, bars, cfg)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", symbol, err))
				return
			}
			results = append(results, res)
		}(symbol, bars)
	}
	wg.Wait()

	sort.Slice(results, func(i, j int) bool { return results[i].Symbol < results[j].Symbol })
	return results, errors.Join(errs...)
}

func runOne(symbol string, bars []types.Bar, cfg config.Config) (*Results, error) {
	engine, err := NewEngine(bars, cfg)
	if err != nil {
		return nil, err
	}
	res, err := engine.Run()
	if err != nil {
		return nil, err
	}
	res.Symbol = symbol
	return res, nil
}
