package weather

import (
	"fmt"
	"os"

	"github.com/gocarina/gocsv"
	log "github.com/sirupsen/logrus"
)

// 逐时边界条件
type Row struct {
	OutdoorDryBulb   float64 `csv:"outdoor_dry_bulb"` // ℃
	SkyTemp          float64 `csv:"sky_temp"`         // ℃
	WindSpeed        float64 `csv:"wind_speed"`       // m/s
	BeamSolar        float64 `csv:"beam_solar"`       // W/m2
	DiffuseSolar     float64 `csv:"diffuse_solar"`    // W/m2
	SolarCosine      float64 `csv:"solar_cosine"`
	ZoneTemp         float64 `csv:"zone_temp"`
	ScheduleTemp     float64 `csv:"schedule_temp"`
	ScheduleVelocity float64 `csv:"schedule_velocity"`
	InletTemp        float64 `csv:"inlet_temp"`
	MassFlowRate     float64 `csv:"mass_flow_rate"` // kg/s
}

// Series 逐时数据序列
type Series struct {
	rows      []*Row
	schedules map[string]func(r *Row) float64
}

// 默认时间表名称
const (
	TemperatureSchedule = "temperature"
	VelocitySchedule    = "velocity"
)

func NewSeries(rows []*Row) *Series {
	return &Series{
		rows: rows,
		schedules: map[string]func(r *Row) float64{
			TemperatureSchedule: func(r *Row) float64 { return r.ScheduleTemp },
			VelocitySchedule:    func(r *Row) float64 { return r.ScheduleVelocity },
		},
	}
}

// Load 读取 csv 文件
func Load(path string) (*Series, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open weather file: %w", err)
	}
	defer file.Close()

	var rows []*Row
	if err = gocsv.UnmarshalFile(file, &rows); err != nil {
		return nil, fmt.Errorf("parse weather file %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("weather file %s has no rows", path)
	}
	log.WithFields(log.Fields{"file": path, "hours": len(rows)}).Info("weather loaded")
	return NewSeries(rows), nil
}

// Alias 为时间表增加别名，对应已有列
func (s *Series) Alias(name, column string) error {
	f, ok := s.schedules[column]
	if !ok {
		return fmt.Errorf("unknown schedule column %q", column)
	}
	s.schedules[name] = f
	return nil
}

func (s *Series) Hours() int {
	return len(s.rows)
}

func (s *Series) Row(hour int) *Row {
	return s.rows[hour]
}

// At 第 hour 小时（从 0 开始）的环境条件
func (s *Series) At(hour int) *Conditions {
	return &Conditions{row: s.rows[hour], schedules: s.schedules}
}

// Conditions 实现 calculator.Conditions
// 区域与空气节点不区分名称，分别取 zone_temp 与 outdoor_dry_bulb
type Conditions struct {
	row       *Row
	schedules map[string]func(r *Row) float64
}

func (c *Conditions) OutdoorDryBulb() float64 { return c.row.OutdoorDryBulb }
func (c *Conditions) SkyTemp() float64        { return c.row.SkyTemp }
func (c *Conditions) WindSpeed() float64      { return c.row.WindSpeed }
func (c *Conditions) BeamSolar() float64      { return c.row.BeamSolar }
func (c *Conditions) DiffuseSolar() float64   { return c.row.DiffuseSolar }
func (c *Conditions) SolarCosine() float64    { return c.row.SolarCosine }

func (c *Conditions) ZoneMeanAirTemp(string) float64 { return c.row.ZoneTemp }
func (c *Conditions) AirNodeTemp(string) float64     { return c.row.OutdoorDryBulb }

func (c *Conditions) ScheduleValue(schedule string) float64 {
	if f, ok := c.schedules[schedule]; ok {
		return f(c.row)
	}
	log.WithField("schedule", schedule).Warn("unknown schedule, using 0")
	return 0
}

func (s *Series) HasSchedule(name string) bool {
	_, ok := s.schedules[name]
	return ok
}
