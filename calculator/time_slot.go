package calculator

import (
	"math"

	"pipeheat/model"
)

// BeginEnvironment 新模拟环境开始：轴向温度回到初始值，土壤按远场地温初始化
func (p *Pipe) BeginEnvironment(day int) {
	p.fluidTemp.fill(p.cfg.InitialTemperature)
	p.pipeTemp.fill(p.cfg.InitialTemperature)

	if p.soil != nil {
		g := p.soil
		for l := 0; l < g.length; l++ {
			for d := 0; d < g.depth; d++ {
				t := p.buried.ground.temperature(float64(d)*p.buried.dS, float64(day))
				for w := 0; w < g.width; w++ {
					g.setAll(w, d, l, t)
				}
			}
		}
	}

	p.prevSimTime = 0
	p.currentSimTime = 0
	p.envHeatLoss = 0
	p.fluidHeatLossRate = 0
	p.outletTemp = 0
	p.environmentTemp = 0
	p.iterations = 0
	p.converged = false
}

// 每个外部时间步开始时调用
func (p *Pipe) beginTimeStep(in StepInput, cond Conditions) {
	p.currentSimTime = in.SimTime()
	if math.Abs(p.currentSimTime-p.prevSimTime) > p.cfg.TimeEpsilon {
		p.promote()
		p.prevSimTime = p.currentSimTime
	} else {
		p.rollback()
	}
	p.rebase()

	p.warnings.reset()
	p.deltaTime = in.ElapsedSeconds
	// 余数秒不单独计算
	p.innerSteps = int(in.ElapsedSeconds / p.cfg.InnerTimeStep)

	p.inletTemp = in.Inlet.Temp
	p.massFlowRate = in.Inlet.MassFlowRate
	p.fluidSpecHeat = p.props.SpecificHeat(p.fluid, p.inletTemp)
	p.fluidDensity = p.props.Density(p.fluid, p.inletTemp)

	p.envHeatLoss = 0
	p.fluidHeatLossRate = 0
	p.outletTemp = p.fluidTemp.get(Tentative)[p.sections]
	p.volumeFlowRate = 0
	if p.fluidDensity > 0 {
		p.volumeFlowRate = p.massFlowRate / p.fluidDensity
	}

	if in.FirstIteration {
		p.beginFirstIteration(float64(in.Day), cond)
	}
}

// 时间已推进：Tentative 成为新的 Current
func (p *Pipe) promote() {
	if p.soil != nil {
		p.soil.copyRegion(Current, Tentative)
	}
	p.fluidTemp.copySlot(Current, Tentative)
	p.pipeTemp.copySlot(Current, Tentative)
}

// 同一时刻重复求解：丢弃未接受的结果
func (p *Pipe) rollback() {
	if p.soil != nil {
		p.soil.copyRegion(Tentative, Current)
	}
	p.fluidTemp.copySlot(Tentative, Current)
	p.pipeTemp.copySlot(Tentative, Current)
}

// 内部时间步从 Current 出发
func (p *Pipe) rebase() {
	if p.soil != nil {
		p.soil.copyRegion(Previous, Current)
	}
	p.fluidTemp.copySlot(Previous, Current)
	p.pipeTemp.copySlot(Previous, Current)
}

// 内部时间步结束，Previous 重新取 Current，Tentative 保留为下一次迭代的初值
func (p *Pipe) pushInnerTimeStepArrays() {
	if p.soil != nil {
		p.soil.copyRegion(Previous, Current)
	}
	p.fluidTemp.copySlot(Previous, Current)
	p.pipeTemp.copySlot(Previous, Current)
}

// 首次迭代：更新远场与底部边界，刷新环境温度
func (p *Pipe) beginFirstIteration(day float64, cond Conditions) {
	if p.soil != nil {
		g := p.soil
		bottom := p.buried.ground.temperature(p.buried.domainDepth, day)
		for l := 0; l < g.length; l++ {
			for d := 0; d < g.depth; d++ {
				g.setAll(0, d, l, p.buried.ground.temperature(float64(d)*p.buried.dS, day))
			}
			for w := 0; w < g.width; w++ {
				g.setAll(w, g.depth-1, l, bottom)
			}
		}
	}

	switch env := p.env.(type) {
	case model.NoEnvironment, model.BuriedSoil:
		p.environmentTemp = cond.OutdoorDryBulb()
	case model.ZoneAir:
		p.environmentTemp = cond.ZoneMeanAirTemp(env.Zone)
	case model.ScheduledAir:
		p.environmentTemp = cond.ScheduleValue(env.TemperatureSchedule)
	case model.OutdoorAir:
		p.environmentTemp = cond.AirNodeTemp(env.AirNode)
	}
}
