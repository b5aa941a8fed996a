package calculator

// 轴向流体-管壁两节点模型 (Hanby)
// 流体节点: A1·Tf = A2·Tf[i-1] + A3·Tp + A4·Tf_past
// 管壁节点: B1·Tp = B2·Tf + B3·Tenv + B4·Tp_past

type hanbyCoef struct {
	a1, a2, a3, a4 float64
	b1, b2, b3, b4 float64
	hEnv           float64
}

func (p *Pipe) hanbyCoefficients(hf, hEnv, dt float64) hanbyCoef {
	cf := p.sectionArea * p.geo.Length / float64(p.sections) * p.fluidSpecHeat * p.fluidDensity
	c := hanbyCoef{hEnv: hEnv}

	c.a1 = cf + p.massFlowRate*p.fluidSpecHeat*dt + hf*p.insideArea*dt
	c.a2 = p.massFlowRate * p.fluidSpecHeat * dt
	c.a3 = hf * p.insideArea * dt
	c.a4 = cf

	c.b1 = p.pipeHeatCapacity + hf*p.insideArea*dt + hEnv*p.outsideArea*dt
	c.b2 = c.a3
	c.b3 = hEnv * p.outsideArea * dt
	c.b4 = p.pipeHeatCapacity
	return c
}

// 物性无效时不计算
func (p *Pipe) degenerate() bool {
	return p.fluidSpecHeat <= 0 || p.fluidDensity <= 0
}

// 准备入口边界并计算系数，Δt 取外部时间步长
func (p *Pipe) prepareSections(hEnv float64) hanbyCoef {
	fluid, wall := p.fluidTemp.get(Tentative), p.pipeTemp.get(Tentative)
	fluid[0] = p.inletTemp
	wall[0] = p.pipeTemp.get(Current)[1]

	hf := p.insidePipeHeatTransCoef(p.inletTemp, p.fluidTemp.get(Current)[0], p.massFlowRate)
	return p.hanbyCoefficients(hf, hEnv, p.deltaTime)
}

// solveSection 求解第 i 段，返回该段向环境的散热量 W
func (p *Pipe) solveSection(i int, c hanbyCoef, envTemp float64) float64 {
	fluid, wall := p.fluidTemp.get(Tentative), p.pipeTemp.get(Tentative)
	fluidPast, wallPast := p.fluidTemp.get(Previous), p.pipeTemp.get(Previous)

	fluid[i] = (c.a2*fluid[i-1] + c.a3/c.b1*(c.b3*envTemp+c.b4*wallPast[i]) + c.a4*fluidPast[i]) /
		(c.a1 - c.a3*c.b2/c.b1)
	wall[i] = (c.b2*fluid[i] + c.b3*envTemp + c.b4*wallPast[i]) / c.b1

	surface := envTemp - (envTemp-fluid[i])/(1+c.hEnv*p.geo.SumTK)
	return c.hEnv * p.outsideArea * (surface - envTemp)
}

// 非埋地管道，逐段求解全部轴向节点
func (p *Pipe) calcPipesHeatTransfer(cond Conditions) {
	if p.degenerate() {
		p.outletTemp = p.fluidTemp.get(Tentative)[p.sections]
		p.fluidHeatLossRate = 0
		return
	}

	c := p.prepareSections(p.environmentCoefficient(cond))
	for i := 1; i <= p.sections; i++ {
		p.envHeatLoss += p.solveSection(i, c, p.environmentTemp)
	}
	p.finishSections()
}

func (p *Pipe) finishSections() {
	fluid := p.fluidTemp.get(Tentative)
	p.outletTemp = fluid[p.sections]
	p.fluidHeatLossRate = p.massFlowRate * p.fluidSpecHeat * (fluid[0] - fluid[p.sections])
}
