package calculator

import (
	"math"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pipeheat/model"
)

// 无流量时努塞尔数为 3.66
func TestInsideNusselt_ZeroFlow(t *testing.T) {
	assert.Equal(t, 3.66, insideNusselt(0, 7.0))
	assert.Equal(t, 3.66, insideNusselt(2299.9, 7.0))
}

func TestInsideNusselt_Turbulent(t *testing.T) {
	want := 0.023 * math.Pow(1e4, 0.8) * math.Pow(5.0, 1.0/3.0)
	assert.InDelta(t, want, insideNusselt(1e4, 5.0), 1e-9)
}

func TestInsidePipeHeatTransCoef_ZeroFlow(t *testing.T) {
	p := newTestPipe(t, outdoorConfig("inside"), DefaultConfig())
	k := p.props.Conductivity("water", 30)
	assert.InDelta(t, k*3.66/0.05, p.insidePipeHeatTransCoef(30, 30, 0), 1e-12)
}

func TestPrandtlTable(t *testing.T) {
	assert.Equal(t, 12.22, predictClamped(prandtlTable, prandtlTemps, -5))
	assert.Equal(t, 2.88, predictClamped(prandtlTable, prandtlTemps, 90))
	assert.InDelta(t, (12.22+10.26)/2, predictClamped(prandtlTable, prandtlTemps, 4.35), 1e-9)
}

func TestOutsidePipeHeatTransCoef(t *testing.T) {
	logger := newRangeWarnings(log.WithField("pipe", "test"))

	// 静止空气取自然对流下限
	assert.InDelta(t, airConductivity*naturalConvFloor/0.1, outsidePipeHeatTransCoef(logger, 20, 0, 0.1), 1e-12)

	// 20℃，Re = 5·0.06/15.08e-6 落在第 4 段
	re := 5 * 0.06 / 15.08e-6
	nu := 0.193 * math.Pow(re, 0.618) * math.Pow(airPrandtl, 1.0/3.0)
	assert.InDelta(t, airConductivity*nu/0.06, outsidePipeHeatTransCoef(logger, 20, 5, 0.06), 1e-9)

	// 超出表格范围时取最后一段
	h := outsidePipeHeatTransCoef(logger, 200, 100, 1)
	require.False(t, math.IsNaN(h))
	assert.Greater(t, h, 0.0)
}

func TestOutsidePipeHeatTransCoef_WarnsOncePerStep(t *testing.T) {
	logger, hook := test.NewNullLogger()
	warnings := newRangeWarnings(log.NewEntry(logger))

	low := outsidePipeHeatTransCoef(warnings, -100, 1, 0.1)
	assert.Equal(t, outsidePipeHeatTransCoef(warnings, airTemps[0], 1, 0.1), low)
	require.Len(t, hook.AllEntries(), 1)
	assert.Equal(t, log.WarnLevel, hook.LastEntry().Level)
	assert.Equal(t, -100.0, hook.LastEntry().Data["airTemp"])

	outsidePipeHeatTransCoef(warnings, 200, 1, 0.1)
	outsidePipeHeatTransCoef(warnings, 250, 1, 0.1)
	require.Len(t, hook.AllEntries(), 2)
	assert.Equal(t, 200.0, hook.LastEntry().Data["airTemp"])

	warnings.reset()
	outsidePipeHeatTransCoef(warnings, -100, 1, 0.1)
	assert.Len(t, hook.AllEntries(), 3)
}

// 一个外部时间步内多次内部计算只提示一次
func TestSimulate_RangeWarningOncePerStep(t *testing.T) {
	cfg := outdoorConfig("cold zone")
	cfg.Environment = model.EnvConfig{Kind: "zone", Zone: "freezer"}
	p := newTestPipe(t, cfg, DefaultConfig())
	logger, hook := test.NewNullLogger()
	p.warnings = newRangeWarnings(log.NewEntry(logger))

	cond := mildConditions()
	cond.zone = -90
	p.Simulate(stepAt(1, 20, 0.1), cond)
	require.Greater(t, p.innerSteps, 1)
	assert.Len(t, hook.AllEntries(), 1)

	p.Simulate(stepAt(2, 20, 0.1), cond)
	assert.Len(t, hook.AllEntries(), 2)
}

func TestSimpleExteriorConvCoef(t *testing.T) {
	assert.InDelta(t, 8.23+4.0*2-0.057*4, simpleExteriorConvCoef(4, 2), 1e-12)
	assert.InDelta(t, 11.58, simpleExteriorConvCoef(1, 0), 1e-12)
}

func TestEnvironmentCoefficient_Insulation(t *testing.T) {
	bare := newTestPipe(t, outdoorConfig("bare"), DefaultConfig())
	cfg := outdoorConfig("insulated")
	cfg.Layers = steelLayers(0.02)
	insulated := newTestPipe(t, cfg, DefaultConfig())

	cond := mildConditions()
	assert.Less(t, insulated.environmentCoefficient(cond), bare.environmentCoefficient(cond))
	assert.Less(t, insulated.environmentCoefficient(cond), 1/insulated.geo.InsulationResistance)
}

func TestEnvironmentCoefficient_Buried(t *testing.T) {
	p := newTestPipe(t, buriedConfig("soil", false), DefaultConfig())
	want := 1.2 / (p.buried.dS - 0.05)
	assert.InDelta(t, want, p.environmentCoefficient(mildConditions()), 1e-12)
}
