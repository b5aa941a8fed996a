package calculator

// 外部协作接口

// FluidProperties 流体物性服务，按流体名称和温度查询
type FluidProperties interface {
	SpecificHeat(fluid string, temp float64) float64 // J/(kg·K)
	Density(fluid string, temp float64) float64      // kg/m3
	Viscosity(fluid string, temp float64) float64    // Pa·s
	Conductivity(fluid string, temp float64) float64 // W/(m·K)
}

// Conditions 当前时刻的环境与时间表数值
type Conditions interface {
	OutdoorDryBulb() float64
	SkyTemp() float64
	WindSpeed() float64
	BeamSolar() float64
	DiffuseSolar() float64
	SolarCosine() float64 // 水平面太阳入射角余弦
	ZoneMeanAirTemp(zone string) float64
	ScheduleValue(schedule string) float64
	AirNodeTemp(node string) float64
}

// Sink 结果输出
type Sink interface {
	Record(r Report) error
}
