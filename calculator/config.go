package calculator

import (
	"fmt"

	"gopkg.in/ini.v1"

	"pipeheat/model"
)

// 求解器配置
type Config struct {
	InnerTimeStep        float64 // s
	MaxIterations        int
	ConvergenceTolerance float64
	InitialTemperature   float64
	TimeEpsilon          float64
	Sections             int
	DepthNodes           int
}

func DefaultConfig() Config {
	return Config{
		InnerTimeStep:        model.InnerTimeStep,
		MaxIterations:        model.MaxIterations,
		ConvergenceTolerance: model.ConvergenceTolerance,
		InitialTemperature:   model.InitialTemperature,
		TimeEpsilon:          model.TimeEpsilon,
		Sections:             model.Sections,
		DepthNodes:           model.DepthNodes,
	}
}

// LoadConfig 读取 [solver] 段，缺省项使用默认值
func LoadConfig(file *ini.File) Config {
	section := file.Section("solver")
	return Config{
		InnerTimeStep:        section.Key("InnerTimeStep").MustFloat64(model.InnerTimeStep),
		MaxIterations:        section.Key("MaxIterations").MustInt(model.MaxIterations),
		ConvergenceTolerance: section.Key("ConvergenceTolerance").MustFloat64(model.ConvergenceTolerance),
		InitialTemperature:   section.Key("InitialTemperature").MustFloat64(model.InitialTemperature),
		TimeEpsilon:          section.Key("TimeEpsilon").MustFloat64(model.TimeEpsilon),
		Sections:             section.Key("Sections").MustInt(model.Sections),
		DepthNodes:           section.Key("DepthNodes").MustInt(model.DepthNodes),
	}
}

func (c Config) validate() error {
	switch {
	case c.InnerTimeStep <= 0:
		return fmt.Errorf("solver: InnerTimeStep must be positive, got %v", c.InnerTimeStep)
	case c.MaxIterations < 1:
		return fmt.Errorf("solver: MaxIterations must be at least 1, got %d", c.MaxIterations)
	case c.ConvergenceTolerance <= 0:
		return fmt.Errorf("solver: ConvergenceTolerance must be positive, got %v", c.ConvergenceTolerance)
	case c.Sections < 1:
		return fmt.Errorf("solver: Sections must be at least 1, got %d", c.Sections)
	case c.DepthNodes < 4 || c.DepthNodes%2 != 0:
		return fmt.Errorf("solver: DepthNodes must be an even number >= 4, got %d", c.DepthNodes)
	}
	return nil
}
