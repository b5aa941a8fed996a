package calculator

import (
	"math"

	log "github.com/sirupsen/logrus"

	"pipeheat/model"
)

type Calculator interface {
	// 新的模拟环境开始时重置
	BeginEnvironment(day int)
	// 一个外部时间步
	Simulate(in StepInput, cond Conditions) Report
	// 推送数据，length 为土壤截面所在的轴向下标
	Snapshot(length int) model.Snapshot
	Name() string
}

// StepInput 外部调度器每个时间步提供的输入
type StepInput struct {
	Inlet            model.FlowNode
	Outlet           *model.FlowNode
	PressureResolved bool

	Day            int     // 模拟天数，从 1 开始
	Hour           int     // 1..24
	TimeStep       int     // 小时内时间步，从 1 开始
	TimeStepHours  float64 // 区域时间步长 h
	SysTimeElapsed float64 // 系统时间步内已过时间 h
	ElapsedSeconds float64 // 本时间步长度 s
	FirstIteration bool
}

// SimTime 连续模拟时间 h
func (in StepInput) SimTime() float64 {
	return float64(in.Day-1)*model.HoursInDay + float64(in.Hour-1) + float64(in.TimeStep-1)*in.TimeStepHours + in.SysTimeElapsed
}

// 埋地管道参数
type buriedParams struct {
	soil          model.SoilConfig
	sunExposed    bool
	diffusivity   float64 // m2/s
	pipeDepth     float64
	domainDepth   float64
	dS            float64
	pipeNodeDepth int
	pipeNodeWidth int
	ground        groundModel
}

// Pipe 单根管道的热状态，实例之间不共享可变数据
type Pipe struct {
	name     string
	fluid    string
	env      model.Environment
	geo      model.Geometry
	cfg      Config
	props    FluidProperties
	logger   *log.Entry
	warnings *rangeWarnings

	sections         int
	insideArea       float64 // 每段内表面积
	outsideArea      float64 // 每段外表面积
	sectionArea      float64 // 流通截面积
	pipeHeatCapacity float64 // 每段管壁热容 J/K

	fluidTemp *axialField
	pipeTemp  *axialField

	soil        *soilGrid
	buried      *buriedParams
	scratch     [2][]float64
	sectionLoss []float64

	prevSimTime    float64
	currentSimTime float64
	deltaTime      float64 // 外部时间步 s
	innerSteps     int

	inletTemp       float64
	massFlowRate    float64
	volumeFlowRate  float64
	fluidSpecHeat   float64
	fluidDensity    float64
	environmentTemp float64

	envHeatLoss       float64 // 内部时间步累计
	fluidHeatLossRate float64
	outletTemp        float64
	iterations        int
	converged         bool
}

// NewPipe 校验配置并建立管道状态
func NewPipe(cfg model.PipeConfig, props FluidProperties, solver Config) (*Pipe, error) {
	if err := ValidatePipes([]model.PipeConfig{cfg}, solver); err != nil {
		return nil, err
	}
	geo, _ := ReduceLayers(cfg.InsideDiameter, cfg.Length, cfg.Layers)
	env, _ := cfg.Environment.Environment()

	n := solver.Sections
	p := &Pipe{
		name:     cfg.Name,
		fluid:    cfg.FluidName,
		env:      env,
		geo:      geo,
		cfg:      solver,
		props:    props,
		logger:   log.WithField("pipe", cfg.Name),
		sections: n,

		insideArea:  math.Pi * geo.InsideDiameter * geo.Length / float64(n),
		outsideArea: math.Pi * geo.InsulationOuterDiameter * geo.Length / float64(n),
		sectionArea: math.Pi / 4 * geo.InsideDiameter * geo.InsideDiameter,

		fluidTemp: newAxialField(n, solver.InitialTemperature),
		pipeTemp:  newAxialField(n, solver.InitialTemperature),
	}
	p.warnings = newRangeWarnings(p.logger)
	wallArea := math.Pi/4*geo.OutsideDiameter*geo.OutsideDiameter - p.sectionArea
	p.pipeHeatCapacity = geo.PipeSpecificHeat * geo.PipeDensity * wallArea * geo.Length / float64(n)

	if soil, ok := env.(model.BuriedSoil); ok {
		p.buried = newBuriedParams(soil, geo, solver)
		p.soil = newSoilGrid(solver.DepthNodes/2, solver.DepthNodes, n)
		p.sectionLoss = make([]float64, n)
		for i := range p.scratch {
			p.scratch[i] = make([]float64, 0, p.soil.relaxedCount())
		}
	}

	p.logger.WithFields(log.Fields{
		"environment": env.Kind(),
		"sections":    n,
		"id":          geo.InsideDiameter,
		"od":          geo.OutsideDiameter,
		"insulation":  geo.InsulationThickness,
	}).Info("pipe created")
	return p, nil
}

func newBuriedParams(soil model.BuriedSoil, geo model.Geometry, solver Config) *buriedParams {
	b := &buriedParams{
		soil:          soil.Soil,
		sunExposed:    soil.SunExposed,
		diffusivity:   soil.Soil.Conductivity / (soil.Soil.Density * soil.Soil.SpecificHeat),
		pipeNodeDepth: solver.DepthNodes/2 - 1,
		pipeNodeWidth: solver.DepthNodes/2 - 1,
	}
	b.pipeDepth, b.domainDepth, b.dS = soilSpacing(soil.SoilThickness, geo.InsideDiameter, solver.DepthNodes)

	perDay := b.diffusivity * model.SecondsInHour * model.HoursInDay
	if gt := soil.GroundTemp; gt != nil && gt.Average != nil {
		b.ground = groundModel{
			average:           *gt.Average,
			amplitude:         *gt.Amplitude,
			phaseShiftDays:    *gt.PhaseShiftDays,
			diffusivityPerDay: perDay,
		}
	} else {
		b.ground = groundModelFromMonthly(soil.MonthlySurfaceTemps, perDay)
	}
	return b
}

// NewPipes 先整体校验，任何错误都不会创建管道
func NewPipes(cfgs []model.PipeConfig, props FluidProperties, solver Config) ([]*Pipe, error) {
	if err := ValidatePipes(cfgs, solver); err != nil {
		return nil, err
	}
	pipes := make([]*Pipe, 0, len(cfgs))
	for _, cfg := range cfgs {
		p, err := NewPipe(cfg, props, solver)
		if err != nil {
			return nil, err
		}
		pipes = append(pipes, p)
	}
	return pipes, nil
}

func (p *Pipe) Name() string {
	return p.name
}

// Simulate 推进一个外部时间步
func (p *Pipe) Simulate(in StepInput, cond Conditions) Report {
	p.beginTimeStep(in, cond)

	for i := 0; i < p.innerSteps; i++ {
		switch p.env.(type) {
		case model.BuriedSoil:
			p.calcBuriedPipeSoil(cond)
		case model.NoEnvironment, model.ZoneAir, model.ScheduledAir, model.OutdoorAir:
			p.calcPipesHeatTransfer(cond)
		default:
			panic("unhandled environment kind")
		}
		p.pushInnerTimeStepArrays()
	}

	if in.Outlet != nil {
		p.updatePipesHeatTransfer(in.Inlet, in.Outlet, in.PressureResolved)
	}
	return p.report()
}
