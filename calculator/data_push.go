package calculator

import (
	"pipeheat/model"
)

// Snapshot 推送数据：轴向流体与管壁温度，埋地管道附带土壤横截面
func (p *Pipe) Snapshot(length int) model.Snapshot {
	s := model.Snapshot{
		Pipe:              p.name,
		Time:              p.currentSimTime,
		OutletTemp:        p.outletTemp,
		FluidHeatLossRate: p.fluidHeatLossRate,
		FluidTemp:         toFloat32(p.fluidTemp.get(Tentative)),
		PipeTemp:          toFloat32(p.pipeTemp.get(Tentative)),
	}
	if p.innerSteps > 0 {
		s.EnvHeatLossRate = p.envHeatLoss / float64(p.innerSteps)
	}
	if p.soil == nil {
		return s
	}

	g := p.soil
	if length < 0 {
		length = 0
	}
	if length > g.length-1 {
		length = g.length - 1
	}
	s.Soil = make([][]float32, g.depth)
	for d := 0; d < g.depth; d++ {
		s.Soil[d] = make([]float32, g.width)
		for w := 0; w < g.width; w++ {
			s.Soil[d][w] = float32(g.get(Tentative, w, d, length))
		}
	}
	return s
}

func toFloat32(v []float64) []float32 {
	res := make([]float32, len(v))
	for i := range v {
		res[i] = float32(v[i])
	}
	return res
}
