package calculator

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/interp"

	"pipeheat/model"
)

// 水的物性，0~100℃
var waterParameters = []model.PhysicalParameter{
	{Temperature: 0, SpecificHeat: 4217, Density: 999.8, Viscosity: 1.792e-3, Conductivity: 0.561},
	{Temperature: 10, SpecificHeat: 4192, Density: 999.7, Viscosity: 1.307e-3, Conductivity: 0.580},
	{Temperature: 20, SpecificHeat: 4182, Density: 998.2, Viscosity: 1.002e-3, Conductivity: 0.598},
	{Temperature: 30, SpecificHeat: 4178, Density: 995.7, Viscosity: 0.798e-3, Conductivity: 0.615},
	{Temperature: 40, SpecificHeat: 4179, Density: 992.2, Viscosity: 0.653e-3, Conductivity: 0.631},
	{Temperature: 50, SpecificHeat: 4181, Density: 988.0, Viscosity: 0.547e-3, Conductivity: 0.644},
	{Temperature: 60, SpecificHeat: 4185, Density: 983.2, Viscosity: 0.467e-3, Conductivity: 0.654},
	{Temperature: 70, SpecificHeat: 4190, Density: 977.8, Viscosity: 0.404e-3, Conductivity: 0.663},
	{Temperature: 80, SpecificHeat: 4197, Density: 971.8, Viscosity: 0.355e-3, Conductivity: 0.670},
	{Temperature: 90, SpecificHeat: 4205, Density: 965.3, Viscosity: 0.315e-3, Conductivity: 0.675},
	{Temperature: 100, SpecificHeat: 4216, Density: 958.4, Viscosity: 0.282e-3, Conductivity: 0.679},
}

// 单一流体的物性表，超出温度范围取端点值
type FluidTable struct {
	temps        []float64
	specificHeat *interp.PiecewiseLinear
	density      *interp.PiecewiseLinear
	viscosity    *interp.PiecewiseLinear
	conductivity *interp.PiecewiseLinear
}

func NewFluidTable(parameters []model.PhysicalParameter) (*FluidTable, error) {
	if len(parameters) < 2 {
		return nil, fmt.Errorf("fluid table needs at least 2 points, got %d", len(parameters))
	}
	sorted := make([]model.PhysicalParameter, len(parameters))
	copy(sorted, parameters)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Temperature < sorted[j].Temperature
	})

	n := len(sorted)
	temps := make([]float64, n)
	cp, rho, mu, k := make([]float64, n), make([]float64, n), make([]float64, n), make([]float64, n)
	for i, pp := range sorted {
		temps[i], cp[i], rho[i], mu[i], k[i] = pp.Temperature, pp.SpecificHeat, pp.Density, pp.Viscosity, pp.Conductivity
	}

	t := &FluidTable{temps: temps}
	fits := []struct {
		dst **interp.PiecewiseLinear
		ys  []float64
	}{{&t.specificHeat, cp}, {&t.density, rho}, {&t.viscosity, mu}, {&t.conductivity, k}}
	for _, f := range fits {
		pl := &interp.PiecewiseLinear{}
		if err := pl.Fit(temps, f.ys); err != nil {
			return nil, fmt.Errorf("fit fluid table: %w", err)
		}
		*f.dst = pl
	}
	return t, nil
}

func (t *FluidTable) predict(pl *interp.PiecewiseLinear, temp float64) float64 {
	return predictClamped(pl, t.temps, temp)
}

// FluidLibrary 按名称查找流体，未知流体返回 0，由管道按无效物性处理
type FluidLibrary struct {
	tables map[string]*FluidTable
}

func NewFluidLibrary() *FluidLibrary {
	water, err := NewFluidTable(waterParameters)
	if err != nil {
		log.Fatal("water table: ", err)
	}
	return &FluidLibrary{tables: map[string]*FluidTable{"water": water}}
}

// LoadFluid 从 json 文件读取物性表
func (f *FluidLibrary) LoadFluid(name, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read fluid %s: %w", name, err)
	}
	var parameters []model.PhysicalParameter
	if err = json.Unmarshal(data, &parameters); err != nil {
		return fmt.Errorf("parse fluid %s: %w", name, err)
	}
	table, err := NewFluidTable(parameters)
	if err != nil {
		return fmt.Errorf("fluid %s: %w", name, err)
	}
	f.tables[strings.ToLower(name)] = table
	log.WithFields(log.Fields{"fluid": name, "points": len(parameters)}).Info("fluid loaded")
	return nil
}

func (f *FluidLibrary) lookup(fluid string) *FluidTable {
	return f.tables[strings.ToLower(fluid)]
}

func (f *FluidLibrary) SpecificHeat(fluid string, temp float64) float64 {
	if t := f.lookup(fluid); t != nil {
		return t.predict(t.specificHeat, temp)
	}
	return 0
}

func (f *FluidLibrary) Density(fluid string, temp float64) float64 {
	if t := f.lookup(fluid); t != nil {
		return t.predict(t.density, temp)
	}
	return 0
}

func (f *FluidLibrary) Viscosity(fluid string, temp float64) float64 {
	if t := f.lookup(fluid); t != nil {
		return t.predict(t.viscosity, temp)
	}
	return 0
}

func (f *FluidLibrary) Conductivity(fluid string, temp float64) float64 {
	if t := f.lookup(fluid); t != nil {
		return t.predict(t.conductivity, temp)
	}
	return 0
}
