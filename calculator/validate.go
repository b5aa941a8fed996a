package calculator

import (
	"errors"
	"fmt"

	"pipeheat/model"
)

// ReduceLayers 将构造层折算为几何与材料参数
// 最后一层为管壁，其余为保温层
func ReduceLayers(insideDiameter, length float64, layers []model.Layer) (model.Geometry, error) {
	geo := model.Geometry{InsideDiameter: insideDiameter, Length: length}
	if len(layers) == 0 {
		return geo, errors.New("construction has no layers")
	}
	for i, l := range layers {
		if l.Thickness <= 0 || l.Conductivity <= 0 {
			return geo, fmt.Errorf("layer %d (%s): thickness and conductivity must be positive", i+1, l.Name)
		}
	}

	pipe := layers[len(layers)-1]
	geo.PipeConductivity = pipe.Conductivity
	geo.PipeDensity = pipe.Density
	geo.PipeSpecificHeat = pipe.SpecificHeat
	geo.OutsideDiameter = insideDiameter + 2*pipe.Thickness
	geo.SumTK = pipe.Thickness / pipe.Conductivity

	for _, l := range layers[:len(layers)-1] {
		geo.InsulationResistance += l.Thickness / l.Conductivity
		geo.InsulationThickness += l.Thickness
		geo.SumTK += l.Thickness / l.Conductivity
	}
	if geo.InsulationThickness > 0 {
		geo.InsulationConductivity = geo.InsulationThickness / geo.InsulationResistance
	}
	geo.InsulationOuterDiameter = geo.OutsideDiameter + 2*geo.InsulationThickness
	return geo, nil
}

// ValidatePipes 检查全部管道配置，错误一次性返回
func ValidatePipes(cfgs []model.PipeConfig, solver Config) error {
	var errs []error
	if err := solver.validate(); err != nil {
		errs = append(errs, err)
	}
	names := make(map[string]bool)
	for _, cfg := range cfgs {
		if names[cfg.Name] {
			errs = append(errs, fmt.Errorf("pipe %q: duplicate name", cfg.Name))
		}
		names[cfg.Name] = true
		errs = append(errs, validatePipe(cfg, solver)...)
	}
	return errors.Join(errs...)
}

func validatePipe(cfg model.PipeConfig, solver Config) []error {
	var errs []error
	add := func(format string, args ...interface{}) {
		errs = append(errs, fmt.Errorf("pipe %q: "+format, append([]interface{}{cfg.Name}, args...)...))
	}

	if cfg.Name == "" {
		add("name is required")
	}
	if cfg.FluidName == "" {
		add("fluid name is required")
	}
	if cfg.InsideDiameter <= 0 {
		add("inside diameter must be positive, got %v", cfg.InsideDiameter)
	}
	if cfg.Length <= 0 {
		add("length must be positive, got %v", cfg.Length)
	}
	geo, err := ReduceLayers(cfg.InsideDiameter, cfg.Length, cfg.Layers)
	if err != nil {
		add("%v", err)
	} else {
		if geo.PipeDensity <= 0 || geo.PipeSpecificHeat <= 0 {
			add("pipe layer density and specific heat must be positive")
		}
	}

	env, err := cfg.Environment.Environment()
	if err != nil {
		add("%v", err)
		return errs
	}
	switch env := env.(type) {
	case model.NoEnvironment:
	case model.ZoneAir:
		if env.Zone == "" {
			add("zone environment requires a zone")
		}
	case model.ScheduledAir:
		if env.TemperatureSchedule == "" || env.VelocitySchedule == "" {
			add("schedule environment requires temperature and velocity schedules")
		}
	case model.OutdoorAir:
		if env.AirNode == "" {
			add("outdoor environment requires an air node")
		}
	case model.BuriedSoil:
		errs = append(errs, validateSoil(cfg, env, solver)...)
	}
	return errs
}

func validateSoil(cfg model.PipeConfig, env model.BuriedSoil, solver Config) []error {
	var errs []error
	add := func(format string, args ...interface{}) {
		errs = append(errs, fmt.Errorf("pipe %q: "+format, append([]interface{}{cfg.Name}, args...)...))
	}

	soil := env.Soil
	if soil.Conductivity <= 0 || soil.Density <= 0 || soil.SpecificHeat <= 0 {
		add("soil conductivity, density and specific heat must be positive")
	}
	if soil.Roughness < 1 || soil.Roughness > len(roughnessCoef) {
		add("soil roughness must be between 1 and %d, got %d", len(roughnessCoef), soil.Roughness)
	}
	if env.SoilThickness <= 0 {
		add("soil thickness must be positive, got %v", env.SoilThickness)
	} else if cfg.InsideDiameter > 0 && solver.DepthNodes > 1 {
		_, _, dS := soilSpacing(env.SoilThickness, cfg.InsideDiameter, solver.DepthNodes)
		if dS <= cfg.InsideDiameter/2 {
			add("soil node spacing %.4f m must exceed the pipe radius, increase soil thickness", dS)
		}
	}

	gt := env.GroundTemp
	switch {
	case gt != nil && (gt.Average != nil || gt.Amplitude != nil || gt.PhaseShiftDays != nil):
		if gt.Average == nil || gt.Amplitude == nil || gt.PhaseShiftDays == nil {
			add("ground temperature average, amplitude and phase shift must be given together")
			break
		}
		if *gt.Amplitude < 0 {
			add("ground temperature amplitude must not be negative")
		}
		if *gt.PhaseShiftDays < 0 {
			add("ground temperature phase shift must not be negative")
		}
	case len(env.MonthlySurfaceTemps) != 12:
		add("buried pipe needs ground temperature parameters or 12 monthly surface temperatures, got %d", len(env.MonthlySurfaceTemps))
	}
	return errs
}

// 埋深、计算域深度、节点间距
func soilSpacing(soilThickness, insideDiameter float64, depthNodes int) (pipeDepth, domainDepth, dS float64) {
	pipeDepth = soilThickness + insideDiameter/2
	domainDepth = 2 * pipeDepth
	dS = domainDepth / float64(depthNodes-1)
	return
}
