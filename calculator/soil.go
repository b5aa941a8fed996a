package calculator

import (
	"math"

	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"

	"pipeheat/model"
)

// 土壤节点更新所需的一次内部时间步参数
type soilStep struct {
	coefA1 float64 // Fo/(1+4Fo)
	coefA2 float64 // 1/(1+4Fo)
	dt     float64

	convCoef float64
	radCoef  func(past float64) float64
	qSol     float64
	skyTemp  float64
	outTemp  float64

	hanby      hanbyCoef
	degenerate bool
}

// 埋地管道：土壤网格迭代，管道所在节点调用轴向模型
func (p *Pipe) calcBuriedPipeSoil(cond Conditions) {
	b, g := p.buried, p.soil
	st := p.newSoilStep(cond)

	if !st.degenerate {
		st.hanby = p.prepareSections(p.environmentCoefficient(cond))
	}
	for i := range p.sectionLoss {
		p.sectionLoss[i] = 0
	}

	p.converged = false
	iter := 0
	for iter < p.cfg.MaxIterations {
		iter++
		before := g.relaxed(Tentative, p.scratch[0])
		// 按轴向、深度、宽度顺序逐点更新
		for l := 0; l < g.length; l++ {
			for d := 0; d < g.depth-1; d++ {
				for w := 1; w < g.width; w++ {
					switch {
					case d == 0:
						p.calculatePointSurface(st, w, l)
					case w == b.pipeNodeWidth && d == b.pipeNodeDepth:
						p.calculatePointPipe(st, l)
					case w == b.pipeNodeWidth:
						p.calculatePointCenter(st, d, l)
					default:
						p.calculatePointIN(st, w, d, l)
					}
				}
			}
		}
		after := g.relaxed(Tentative, p.scratch[1])
		p.scratch[0], p.scratch[1] = before, after

		if floats.Distance(before, after, math.Inf(1)) <= p.cfg.ConvergenceTolerance {
			p.converged = true
			break
		}
	}
	p.iterations = iter
	if !p.converged {
		p.logger.WithFields(log.Fields{
			"iterations": iter,
			"tolerance":  p.cfg.ConvergenceTolerance,
		}).Warn("soil relaxation reached iteration cap, accepting last values")
	}

	p.envHeatLoss += floats.Sum(p.sectionLoss)
	if st.degenerate {
		p.outletTemp = p.fluidTemp.get(Tentative)[p.sections]
		p.fluidHeatLossRate = 0
		return
	}
	p.finishSections()
}

func (p *Pipe) newSoilStep(cond Conditions) soilStep {
	b := p.buried
	dt := p.deltaTime
	fo := b.diffusivity * dt / (b.dS * b.dS)

	st := soilStep{
		coefA1:     fo / (1 + 4*fo),
		coefA2:     1 / (1 + 4*fo),
		dt:         dt,
		convCoef:   simpleExteriorConvCoef(b.soil.Roughness, cond.WindSpeed()),
		radCoef:    func(float64) float64 { return 0 },
		skyTemp:    cond.SkyTemp(),
		outTemp:    cond.OutdoorDryBulb(),
		degenerate: p.degenerate(),
	}
	if b.sunExposed {
		skyAbs := st.skyTemp + model.KelvinConv
		thermAbs := b.soil.ThermalAbsorp
		st.radCoef = func(past float64) float64 {
			pastAbs := past + model.KelvinConv
			if math.Abs(pastAbs-skyAbs) <= tinyValue {
				return 0
			}
			return model.StefBoltzmann * thermAbs * (math.Pow(pastAbs, 4) - math.Pow(skyAbs, 4)) / (pastAbs - skyAbs)
		}
		st.qSol = b.soil.SolarAbsorp * (math.Max(cond.SolarCosine(), 0)*cond.BeamSolar() + cond.DiffuseSolar())
	}
	return st
}

const tinyValue = 1e-12

// 地表节点：太阳辐射、天空辐射、对流与导热
func (p *Pipe) calculatePointSurface(st soilStep, w, l int) {
	b, g := p.buried, p.soil
	k := b.soil.Conductivity / b.dS
	heatCap := b.soil.Density * b.soil.SpecificHeat / st.dt

	past := g.get(Previous, w, 0, l)
	below := g.get(Tentative, w, 1, l)
	left := g.get(Tentative, w-1, 0, l)
	var neighbors float64
	if w == b.pipeNodeWidth {
		// 对称面
		neighbors = below + 2*left
	} else {
		neighbors = below + left + g.get(Tentative, w+1, 0, l)
	}

	rad := st.radCoef(past)
	t := (st.qSol + rad*st.skyTemp + st.convCoef*st.outTemp + k*neighbors + heatCap*past) /
		(rad + st.convCoef + 3*k + heatCap)
	g.set(Tentative, w, 0, l, t)
}

// 管道所在节点：环境温度取下、侧、上三个节点的平均
func (p *Pipe) calculatePointPipe(st soilStep, l int) {
	b, g := p.buried, p.soil
	w, d := b.pipeNodeWidth, b.pipeNodeDepth
	section := l + 1

	if !st.degenerate {
		envTemp := (g.get(Tentative, w, d+1, l) + g.get(Tentative, w-1, d, l) + g.get(Tentative, w, d-1, l)) / 3
		p.sectionLoss[l] = p.solveSection(section, st.hanby, envTemp)
	}
	g.set(Tentative, w, d, l, p.pipeTemp.get(Tentative)[section])
}

// 对称面上的其他节点
func (p *Pipe) calculatePointCenter(st soilStep, d, l int) {
	g := p.soil
	w := p.buried.pipeNodeWidth
	t := st.coefA1*(g.get(Tentative, w, d+1, l)+g.get(Tentative, w, d-1, l)+2*g.get(Tentative, w-1, d, l)) +
		st.coefA2*g.get(Previous, w, d, l)
	g.set(Tentative, w, d, l, t)
}

// 内部节点
func (p *Pipe) calculatePointIN(st soilStep, w, d, l int) {
	g := p.soil
	t := st.coefA1*(g.get(Tentative, w, d+1, l)+g.get(Tentative, w, d-1, l)+g.get(Tentative, w+1, d, l)+g.get(Tentative, w-1, d, l)) +
		st.coefA2*g.get(Previous, w, d, l)
	g.set(Tentative, w, d, l, t)
}
