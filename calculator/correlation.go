package calculator

import (
	"math"

	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/interp"

	"pipeheat/model"
)

// 管内强制对流，普朗特数表
var (
	prandtlTemps = []float64{1.85, 6.85, 11.85, 16.85, 21.85, 26.85, 31.85, 36.85, 41.85, 46.85, 51.85, 56.85, 61.85}
	prandtlValue = []float64{12.22, 10.26, 8.81, 7.56, 6.62, 5.83, 5.20, 4.62, 4.16, 3.77, 3.42, 3.15, 2.88}
)

// 管外空气侧
const (
	airPrandtl       = 0.7
	airConductivity  = 0.025 // W/(m·K)
	roomAirVelocity  = 0.381 // m/s
	naturalConvFloor = 0.36
	turbulentRe      = 2300.0
)

var (
	reCoefficient = []float64{0.989, 0.911, 0.683, 0.193, 0.027}
	reExponent    = []float64{0.33, 0.385, 0.466, 0.618, 0.805}
	reUpperBound  = []float64{4.0, 40.0, 4000.0, 40000.0, 400000.0}

	airTemps     = []float64{-73, -23, -10, 0, 10, 20, 27, 30, 40, 50, 76.85, 126.85}
	airViscosity = []float64{75.52e-7, 11.37e-6, 12.44e-6, 13.3e-6, 14.18e-6, 15.08e-6, 15.75e-6, 16e-6, 16.95e-6, 17.91e-6, 20.92e-6, 26.41e-6}
)

// ASHRAE 简化外表面对流系数 h = D + E·V + F·V²，按粗糙度 1..6
var roughnessCoef = [6][3]float64{
	{11.58, 5.894, 0.0},   // very rough
	{12.49, 4.065, 0.028}, // rough
	{10.79, 4.192, 0.0},   // medium rough
	{8.23, 4.0, -0.057},   // medium smooth
	{10.22, 3.1, 0.0},     // smooth
	{8.23, 3.33, -0.036},  // very smooth
}

var (
	prandtlTable   = mustFit(prandtlTemps, prandtlValue)
	viscosityTable = mustFit(airTemps, airViscosity)
)

func mustFit(xs, ys []float64) *interp.PiecewiseLinear {
	pl := &interp.PiecewiseLinear{}
	if err := pl.Fit(xs, ys); err != nil {
		log.Fatal("interpolation table: ", err)
	}
	return pl
}

// 表外取端点值
func predictClamped(pl *interp.PiecewiseLinear, xs []float64, x float64) float64 {
	if x <= xs[0] {
		return pl.Predict(xs[0])
	}
	if x >= xs[len(xs)-1] {
		return pl.Predict(xs[len(xs)-1])
	}
	return pl.Predict(x)
}

func insideNusselt(re, pr float64) float64 {
	if re >= turbulentRe {
		return 0.023 * math.Pow(re, 0.8) * math.Pow(pr, 1.0/3.0)
	}
	return model.LaminarNusselt
}

// insidePipeHeatTransCoef 管内对流换热系数 W/(m2·K)
// temp 用于普朗特数，k 和 μ 由物性服务在 nodeTemp 处查询
func (p *Pipe) insidePipeHeatTransCoef(temp, nodeTemp, massFlowRate float64) float64 {
	pr := predictClamped(prandtlTable, prandtlTemps, temp)
	k := p.props.Conductivity(p.fluid, nodeTemp)
	mu := p.props.Viscosity(p.fluid, nodeTemp)
	diameter := p.geo.InsideDiameter

	re := 0.0
	if mu > 0 {
		re = 4 * massFlowRate / (math.Pi * mu * diameter)
	}
	return k * insideNusselt(re, pr) / diameter
}

// 超出关联式范围的提示，每个外部时间步同类提示只输出一次
type rangeWarnings struct {
	logger *log.Entry
	seen   map[string]bool
}

func newRangeWarnings(logger *log.Entry) *rangeWarnings {
	return &rangeWarnings{logger: logger, seen: make(map[string]bool)}
}

func (r *rangeWarnings) warn(key string, fields log.Fields, msg string) {
	if r.seen[key] {
		return
	}
	r.seen[key] = true
	r.logger.WithFields(fields).Warn(msg)
}

func (r *rangeWarnings) reset() {
	for k := range r.seen {
		delete(r.seen, k)
	}
}

// outsidePipeHeatTransCoef 管外空气侧对流换热系数，自然对流努塞尔数下限 0.36
func outsidePipeHeatTransCoef(warnings *rangeWarnings, airTemp, airVel, diameter float64) float64 {
	switch {
	case airTemp > airTemps[len(airTemps)-1]:
		warnings.warn("airTempHigh", log.Fields{
			"airTemp": airTemp,
			"maxTemp": airTemps[len(airTemps)-1],
		}, "air temperature above viscosity table, using last value")
	case airTemp < airTemps[0]:
		warnings.warn("airTempLow", log.Fields{
			"airTemp": airTemp,
			"minTemp": airTemps[0],
		}, "air temperature below viscosity table, using first value")
	}
	viscosity := predictClamped(viscosityTable, airTemps, airTemp)

	re := airVel * diameter / viscosity
	idx := len(reUpperBound) - 1
	for i, upper := range reUpperBound {
		if re <= upper {
			idx = i
			break
		}
	}
	if re > reUpperBound[len(reUpperBound)-1] {
		warnings.warn("reynolds", log.Fields{
			"re":    re,
			"maxRe": reUpperBound[len(reUpperBound)-1],
		}, "Reynolds number beyond correlation range, using last range")
	}

	nu := reCoefficient[idx] * math.Pow(re, reExponent[idx]) * math.Pow(airPrandtl, 1.0/3.0)
	nu = math.Max(nu, naturalConvFloor)
	return airConductivity * nu / diameter
}

func simpleExteriorConvCoef(roughness int, windSpeed float64) float64 {
	c := roughnessCoef[roughness-1]
	return c[0] + c[1]*windSpeed + c[2]*windSpeed*windSpeed
}

// 环境侧换热系数
func (p *Pipe) environmentCoefficient(cond Conditions) float64 {
	switch env := p.env.(type) {
	case model.NoEnvironment:
		return 0
	case model.ZoneAir:
		return p.airCoefficient(cond.ZoneMeanAirTemp(env.Zone), roomAirVelocity)
	case model.ScheduledAir:
		return p.airCoefficient(cond.ScheduleValue(env.TemperatureSchedule), cond.ScheduleValue(env.VelocitySchedule))
	case model.OutdoorAir:
		return p.airCoefficient(cond.AirNodeTemp(env.AirNode), cond.WindSpeed())
	case model.BuriedSoil:
		return env.Soil.Conductivity / (p.buried.dS - p.geo.InsideDiameter/2)
	default:
		panic("unhandled environment kind")
	}
}

// 对流与保温层串联
func (p *Pipe) airCoefficient(airTemp, airVel float64) float64 {
	ho := outsidePipeHeatTransCoef(p.warnings, airTemp, airVel, p.geo.InsulationOuterDiameter)
	return 1 / (1/ho + p.geo.InsulationResistance)
}
