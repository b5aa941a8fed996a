package model

import (
	"fmt"
	"strings"
)

// Environment 管道所处环境，只能是下面五种之一
type Environment interface {
	environment()
	Kind() string
}

type NoEnvironment struct{}

// 室内管道，环境为区域空气
type ZoneAir struct {
	Zone string
}

// 室内管道，环境温度和风速由时间表给出
type ScheduledAir struct {
	TemperatureSchedule string
	VelocitySchedule    string
}

// 室外管道
type OutdoorAir struct {
	AirNode string
}

// 埋地管道
type BuriedSoil struct {
	Soil                SoilConfig
	SunExposed          bool
	SoilThickness       float64
	GroundTemp          *GroundTempConfig
	MonthlySurfaceTemps []float64
}

func (NoEnvironment) environment() {}
func (ZoneAir) environment()       {}
func (ScheduledAir) environment()  {}
func (OutdoorAir) environment()    {}
func (BuriedSoil) environment()    {}

func (NoEnvironment) Kind() string { return "none" }
func (ZoneAir) Kind() string       { return "zone" }
func (ScheduledAir) Kind() string  { return "schedule" }
func (OutdoorAir) Kind() string    { return "outdoor" }
func (BuriedSoil) Kind() string    { return "ground" }

// Environment 将 json 配置转换为对应的环境类型
func (e EnvConfig) Environment() (Environment, error) {
	switch strings.ToLower(e.Kind) {
	case "", "none":
		return NoEnvironment{}, nil
	case "zone":
		return ZoneAir{Zone: e.Zone}, nil
	case "schedule":
		return ScheduledAir{TemperatureSchedule: e.TemperatureSchedule, VelocitySchedule: e.VelocitySchedule}, nil
	case "outdoor":
		return OutdoorAir{AirNode: e.AirNode}, nil
	case "ground":
		return BuriedSoil{
			Soil:                e.Soil,
			SunExposed:          e.SunExposed,
			SoilThickness:       e.SoilThickness,
			GroundTemp:          e.GroundTemp,
			MonthlySurfaceTemps: e.MonthlySurfaceTemps,
		}, nil
	default:
		return nil, fmt.Errorf("unknown environment kind %q", e.Kind)
	}
}
