package calculator

import (
	"pipeheat/model"
)

// Report 一个外部时间步的输出量，W / J / ℃
type Report struct {
	Pipe                string  `csv:"pipe" json:"pipe"`
	SimTime             float64 `csv:"sim_time" json:"sim_time"`
	FluidHeatLossRate   float64 `csv:"fluid_heat_loss_rate" json:"fluid_heat_loss_rate"`
	FluidHeatLossEnergy float64 `csv:"fluid_heat_loss_energy" json:"fluid_heat_loss_energy"`
	EnvHeatLossRate     float64 `csv:"env_heat_loss_rate" json:"env_heat_loss_rate"`
	EnvHeatLossEnergy   float64 `csv:"env_heat_loss_energy" json:"env_heat_loss_energy"`
	ZoneHeatGain        float64 `csv:"zone_heat_gain" json:"zone_heat_gain"`
	MassFlowRate        float64 `csv:"mass_flow_rate" json:"mass_flow_rate"`
	VolumeFlowRate      float64 `csv:"volume_flow_rate" json:"volume_flow_rate"`
	FluidInletTemp      float64 `csv:"fluid_inlet_temp" json:"fluid_inlet_temp"`
	FluidOutletTemp     float64 `csv:"fluid_outlet_temp" json:"fluid_outlet_temp"`
	PipeInletTemp       float64 `csv:"pipe_inlet_temp" json:"pipe_inlet_temp"`
	PipeOutletTemp      float64 `csv:"pipe_outlet_temp" json:"pipe_outlet_temp"`
	SoilIterations      int     `csv:"soil_iterations" json:"soil_iterations"`
	SoilConverged       bool    `csv:"soil_converged" json:"soil_converged"`
}

// 出口节点：温度为计算值，其余沿用入口
func (p *Pipe) updatePipesHeatTransfer(inlet model.FlowNode, outlet *model.FlowNode, pressureResolved bool) {
	press := outlet.Press
	*outlet = inlet
	outlet.Temp = p.outletTemp
	if pressureResolved {
		outlet.Press = press
	}
}

func (p *Pipe) report() Report {
	envRate := 0.0
	if p.innerSteps > 0 {
		envRate = p.envHeatLoss / float64(p.innerSteps)
	}
	wall := p.pipeTemp.get(Tentative)

	r := Report{
		Pipe:                p.name,
		SimTime:             p.currentSimTime,
		FluidHeatLossRate:   p.fluidHeatLossRate,
		FluidHeatLossEnergy: p.fluidHeatLossRate * p.deltaTime,
		EnvHeatLossRate:     envRate,
		EnvHeatLossEnergy:   envRate * p.deltaTime,
		MassFlowRate:        p.massFlowRate,
		VolumeFlowRate:      p.volumeFlowRate,
		FluidInletTemp:      p.inletTemp,
		FluidOutletTemp:     p.outletTemp,
		PipeInletTemp:       wall[1],
		PipeOutletTemp:      wall[p.sections],
	}
	if _, ok := p.env.(model.ZoneAir); ok {
		r.ZoneHeatGain = envRate
	}
	if p.soil != nil {
		r.SoilIterations = p.iterations
		r.SoilConverged = p.converged
	}
	return r
}
