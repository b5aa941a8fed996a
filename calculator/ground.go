package calculator

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// 远场地温，年周期正弦模型
type groundModel struct {
	average           float64
	amplitude         float64
	phaseShiftDays    float64
	diffusivityPerDay float64 // m2/day
}

// 由 12 个月平均地表温度推出：平均值、平均绝对偏差、最低月份 × 30
func groundModelFromMonthly(monthly []float64, diffusivityPerDay float64) groundModel {
	avg := stat.Mean(monthly, nil)

	amp := 0.0
	for _, t := range monthly {
		amp += math.Abs(t - avg)
	}
	amp /= float64(len(monthly))

	// 相同最低值取最后一个月
	minMonth := 0
	minTemp := math.Inf(1)
	for i, t := range monthly {
		if t <= minTemp {
			minTemp = t
			minMonth = i + 1
		}
	}

	return groundModel{
		average:           avg,
		amplitude:         amp,
		phaseShiftDays:    float64(minMonth * 30),
		diffusivityPerDay: diffusivityPerDay,
	}
}

// temperature 深度 z(m) 处第 day 天的地温
func (g groundModel) temperature(z, day float64) float64 {
	damping := math.Exp(-z * math.Sqrt(math.Pi/(365*g.diffusivityPerDay)))
	lag := z / 2 * math.Sqrt(365/(math.Pi*g.diffusivityPerDay))
	return g.average - g.amplitude*damping*math.Cos(2*math.Pi/365*(day-g.phaseShiftDays-lag))
}
