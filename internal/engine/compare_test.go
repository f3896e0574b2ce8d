package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/BoxPack/internal/model"
)

func TestBuildDefaultScenarios(t *testing.T) {
	scenarios := BuildDefaultScenarios(model.DefaultSettings())

	names := make([]string, len(scenarios))
	for i, s := range scenarios {
		names[i] = s.Name
	}
	assert.Equal(t, []string{"Current Settings", "Order: ascending", "Order: genetic", "Grid Engine"}, names)
	assert.Equal(t, model.EngineGrid, scenarios[3].Settings.Engine)
	assert.Equal(t, model.OrderDescending, scenarios[3].Settings.Order)
}

func TestBuildDefaultScenarios_GridBase(t *testing.T) {
	base := model.Settings{Width: 40, Order: model.OrderBest, Engine: model.EngineGrid}
	scenarios := BuildDefaultScenarios(base)

	require.Len(t, scenarios, 5)
	assert.Equal(t, "Tree Engine", scenarios[4].Name)
	assert.Equal(t, model.EngineTree, scenarios[4].Settings.Engine)
	for _, s := range scenarios {
		assert.Equal(t, 40, s.Settings.Width)
	}
}

func TestCompareScenarios(t *testing.T) {
	tc := packCases[5] // test3.5: ascending beats descending on the tree
	base := testSettings(tc.width, model.OrderDescending, model.EngineTree)

	results := CompareScenarios(BuildDefaultScenarios(base), boxes(tc.dims...))
	require.Len(t, results, 4)

	for _, r := range results {
		require.NoError(t, r.Err, r.Scenario.Name)
		assert.Equal(t, r.Result.Depth, r.Depth)
		assert.Zero(t, r.RejectedCount)
	}
	assert.Equal(t, 28, results[0].Depth)
	assert.Equal(t, 26, results[1].Depth)
	assert.Equal(t, 20, results[3].Depth)
	assert.LessOrEqual(t, results[2].Depth, 26)

	best := Best(results)
	require.GreaterOrEqual(t, best, 0)
	assert.LessOrEqual(t, results[best].Depth, 20)
}

func TestCompareScenarios_ErrorIsPerScenario(t *testing.T) {
	scenarios := []ComparisonScenario{
		{Name: "broken", Settings: model.Settings{Width: 0}},
		{Name: "ok", Settings: testSettings(10, model.OrderDescending, model.EngineTree)},
	}
	results := CompareScenarios(scenarios, []model.Box{box(2, 2)})
	require.Len(t, results, 2)

	assert.ErrorIs(t, results[0].Err, model.ErrInvalidDimension)
	assert.NoError(t, results[1].Err)
	assert.Equal(t, 1, Best(results))
}

func TestBest(t *testing.T) {
	fail := errors.New("fail")
	cases := []struct {
		name    string
		results []ComparisonResult
		want    int
	}{
		{"empty", nil, -1},
		{"all failed", []ComparisonResult{{Err: fail}, {Err: fail}}, -1},
		{"smallest depth", []ComparisonResult{{Depth: 30}, {Depth: 20}, {Depth: 25}}, 1},
		{"earlier wins ties", []ComparisonResult{{Depth: 20}, {Depth: 20}}, 0},
		{"skips failures", []ComparisonResult{{Depth: 5, Err: fail}, {Depth: 9}}, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Best(tc.results))
		})
	}
}
