package backtest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradelab/macross/internal/types"
)

func TestRunAll_MatchesIsolatedRuns(t *testing.T) {
	series := map[string][]types.Bar{
		"AAA": dailyBars(linearCloses(100, 200, 50)),
		"BBB": dailyBars(constantCloses(50, 60)),
		"CCC": dailyBars(append(linearCloses(100, 150, 40), linearCloses(150, 90, 40)...)),
	}
	cfg := testConfig()

	results, err := RunAll(series, cfg)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, []string{"AAA", "BBB", "CCC"},
		[]string{results[0].Symbol, results[1].Symbol, results[2].Symbol},
		"results come back sorted by symbol")

	for _, res := range results {
		engine, err := NewEngine(series[res.Symbol], cfg)
		require.NoError(t, err)
		solo, err := engine.Run()
		require.NoError(t, err)

		assert.Equal(t, solo.EquityCurve, res.EquityCurve, "%s: concurrent run must match isolated run", res.Symbol)
	}
}

func TestRunAll_ReportsFailuresWithoutAborting(t *testing.T) {
	series := map[string][]types.Bar{
		"GOOD":  dailyBars(constantCloses(100, 60)),
		"SHORT": dailyBars(constantCloses(100, 5)), // shorter than the long window
	}

	results, err := RunAll(series, testConfig())

	require.Error(t, err)
	assert.ErrorContains(t, err, "SHORT")
	require.Len(t, results, 1)
	assert.Equal(t, "GOOD", results[0].Symbol)
}
