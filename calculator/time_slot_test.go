package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func region(g *soilGrid, s Slot) []float64 {
	var res []float64
	for l := 1; l < g.length; l++ {
		for d := 0; d < g.depth; d++ {
			for w := 1; w < g.width; w++ {
				res = append(res, g.get(s, w, d, l))
			}
		}
	}
	return res
}

func clone(v []float64) []float64 {
	return append([]float64(nil), v...)
}

// 推进后立即回退，Tentative 精确恢复为 Current，Current 不变
func TestPromoteThenRollback_RoundTrip(t *testing.T) {
	p := newTestPipe(t, buriedConfig("round trip", true), DefaultConfig())
	cond := mildConditions()
	cond.beam, cond.diffuse, cond.solarCos = 500, 100, 0.6

	p.Simulate(stepAt(1, 45, 0.4), cond)
	in := stepAt(2, 45, 0.4)
	p.Simulate(in, cond)

	fluid := clone(p.fluidTemp.get(Current))
	wall := clone(p.pipeTemp.get(Current))
	soil := region(p.soil, Current)
	require.NotEqual(t, fluid, p.fluidTemp.get(Tentative))

	in.FirstIteration = false
	p.beginTimeStep(in, cond)

	assert.Equal(t, fluid, p.fluidTemp.get(Current))
	assert.Equal(t, wall, p.pipeTemp.get(Current))
	assert.Equal(t, soil, region(p.soil, Current))

	assert.Equal(t, fluid, p.fluidTemp.get(Tentative))
	assert.Equal(t, wall, p.pipeTemp.get(Tentative))
	assert.Equal(t, soil, region(p.soil, Tentative))
	assert.Equal(t, soil, region(p.soil, Previous))
}

func TestPromote_AcceptsTentative(t *testing.T) {
	p := newTestPipe(t, outdoorConfig("promote"), DefaultConfig())
	cond := mildConditions()

	p.Simulate(stepAt(1, 45, 0.4), cond)
	solved := clone(p.fluidTemp.get(Tentative))

	p.beginTimeStep(stepAt(2, 45, 0.4), cond)
	assert.Equal(t, solved, p.fluidTemp.get(Current))
	assert.Equal(t, solved, p.fluidTemp.get(Previous))
	assert.InDelta(t, stepAt(2, 0, 0).SimTime(), p.prevSimTime, 1e-12)
}

// Current 只在推进时被覆盖，每个内部时间步都从 Current 出发
func TestInnerSteps_DoNotTouchCurrent(t *testing.T) {
	p := newTestPipe(t, buriedConfig("current", false), DefaultConfig())
	cond := mildConditions()
	p.Simulate(stepAt(1, 45, 0.4), cond)

	p.beginTimeStep(stepAt(2, 45, 0.4), cond)
	fluid := clone(p.fluidTemp.get(Current))
	soil := region(p.soil, Current)
	for i := 0; i < 5; i++ {
		p.calcBuriedPipeSoil(cond)
		p.pushInnerTimeStepArrays()
	}
	assert.Equal(t, fluid, p.fluidTemp.get(Current))
	assert.Equal(t, soil, region(p.soil, Current))
	assert.Equal(t, fluid, p.fluidTemp.get(Previous))
	assert.Equal(t, soil, region(p.soil, Previous))
}

func TestBeginEnvironment_Resets(t *testing.T) {
	p := newTestPipe(t, buriedConfig("reset", true), DefaultConfig())
	for k := 1; k <= 3; k++ {
		p.Simulate(stepAt(k, 70, 0.4), mildConditions())
	}

	p.BeginEnvironment(100)
	for _, s := range []Slot{Previous, Current, Tentative} {
		for _, v := range p.fluidTemp.get(s) {
			assert.Equal(t, p.cfg.InitialTemperature, v)
		}
		for _, v := range p.pipeTemp.get(s) {
			assert.Equal(t, p.cfg.InitialTemperature, v)
		}
	}
	want := p.buried.ground.temperature(3*p.buried.dS, 100)
	assert.Equal(t, want, p.soil.get(Current, 2, 3, 5))
	assert.Equal(t, 0.0, p.prevSimTime)
}

// 首次迭代更新远场与底部边界
func TestBeginFirstIteration_FarField(t *testing.T) {
	p := newTestPipe(t, buriedConfig("far field", true), DefaultConfig())
	in := stepAt(24*6*40, 45, 0.4)
	p.Simulate(in, mildConditions())

	day := float64(in.Day)
	g := p.soil
	for _, s := range []Slot{Previous, Current, Tentative} {
		for d := 0; d < g.depth-1; d++ {
			assert.Equal(t, p.buried.ground.temperature(float64(d)*p.buried.dS, day), g.get(s, 0, d, 3))
		}
		for w := 0; w < g.width; w++ {
			assert.Equal(t, p.buried.ground.temperature(p.buried.domainDepth, day), g.get(s, w, g.depth-1, 3))
		}
	}
}
