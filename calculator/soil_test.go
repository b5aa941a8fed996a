package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pipeheat/model"
)

func twoSectionConfig() Config {
	cfg := DefaultConfig()
	cfg.Sections = 2
	return cfg
}

// 两段、深度 8 的网格在迭代上限内收敛
func TestCalcBuriedPipeSoil_Converges(t *testing.T) {
	cases := []struct {
		name string
		cond *fixedConditions
		sun  bool
	}{
		{"mild", mildConditions(), true},
		{"summer noon", &fixedConditions{outdoor: 32, sky: 15, wind: 1, beam: 850, diffuse: 150, solarCos: 0.9}, true},
		{"winter night", &fixedConditions{outdoor: -15, sky: -35, wind: 12}, true},
		{"shaded", &fixedConditions{outdoor: 25, sky: 5, wind: 2, beam: 700, diffuse: 100, solarCos: 0.7}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := newTestPipe(t, buriedConfig(c.name, c.sun), twoSectionConfig())
			for k := 1; k <= 12; k++ {
				r := p.Simulate(stepAt(k, 70, 0.5), c.cond)
				require.True(t, r.SoilConverged, "step %d", k)
				assert.GreaterOrEqual(t, r.SoilIterations, 1)
				assert.LessOrEqual(t, r.SoilIterations, model.MaxIterations)
			}
		})
	}
}

// 达到迭代上限时接受最后结果，不中断
func TestCalcBuriedPipeSoil_IterationCap(t *testing.T) {
	cfg := twoSectionConfig()
	cfg.MaxIterations = 1
	cfg.ConvergenceTolerance = 1e-300
	p := newTestPipe(t, buriedConfig("cap", true), cfg)

	r := p.Simulate(stepAt(1, 70, 0.5), mildConditions())
	assert.False(t, r.SoilConverged)
	assert.Equal(t, 1, r.SoilIterations)
	assert.NotEqual(t, 21.0, r.FluidOutletTemp)
}

// 不受日照时，太阳辐射与天空温度对网格无影响
func TestCalcBuriedPipeSoil_NotSunExposedIgnoresSolarAndSky(t *testing.T) {
	dark := &fixedConditions{outdoor: 15, sky: -5, wind: 3}
	bright := &fixedConditions{outdoor: 15, sky: -40, wind: 3, beam: 900, diffuse: 250, solarCos: 0.8}

	a := newTestPipe(t, buriedConfig("a", false), twoSectionConfig())
	b := newTestPipe(t, buriedConfig("b", false), twoSectionConfig())
	for k := 1; k <= 6; k++ {
		ra := a.Simulate(stepAt(k, 60, 0.3), dark)
		rb := b.Simulate(stepAt(k, 60, 0.3), bright)
		rb.Pipe = ra.Pipe
		assert.Equal(t, ra, rb, "step %d", k)
		for _, s := range []Slot{Previous, Current, Tentative} {
			assert.Equal(t, a.soil.slots[s], b.soil.slots[s], "step %d", k)
		}
	}
}

func TestCalcBuriedPipeSoil_SunExposedRespondsToSolar(t *testing.T) {
	dark := &fixedConditions{outdoor: 15, sky: 5, wind: 3}
	bright := &fixedConditions{outdoor: 15, sky: 5, wind: 3, beam: 900, diffuse: 250, solarCos: 0.8}

	a := newTestPipe(t, buriedConfig("a", true), twoSectionConfig())
	b := newTestPipe(t, buriedConfig("b", true), twoSectionConfig())
	for k := 1; k <= 6; k++ {
		a.Simulate(stepAt(k, 60, 0.3), dark)
		b.Simulate(stepAt(k, 60, 0.3), bright)
	}
	assert.Greater(t, b.soil.get(Tentative, 1, 0, 1), a.soil.get(Tentative, 1, 0, 1))
}

// 管道节点等于管壁温度
func TestCalcBuriedPipeSoil_PipeNode(t *testing.T) {
	p := newTestPipe(t, buriedConfig("pipe node", true), twoSectionConfig())
	p.Simulate(stepAt(1, 70, 0.5), mildConditions())

	b := p.buried
	for l := 0; l < p.soil.length; l++ {
		assert.Equal(t, p.pipeTemp.get(Tentative)[l+1], p.soil.get(Tentative, b.pipeNodeWidth, b.pipeNodeDepth, l))
	}
}

func BenchmarkSimulate_Buried(b *testing.B) {
	p := newTestPipe(b, buriedConfig("bench", true), DefaultConfig())
	cond := mildConditions()
	for i := 0; i < b.N; i++ {
		p.Simulate(stepAt(i+1, 60, 0.5), cond)
	}
}
