package model

// 管道配置，json 读取
type PipeConfig struct {
	Name           string    `json:"name"`
	FluidName      string    `json:"fluid_name"`
	InletNode      string    `json:"inlet_node"`
	OutletNode     string    `json:"outlet_node"`
	InsideDiameter float64   `json:"inside_diameter"` // m
	Length         float64   `json:"length"`          // m
	Layers         []Layer   `json:"layers"`          // 由外向内：保温层...，最后一层为管壁
	Environment    EnvConfig `json:"environment"`
}

// 构造层
type Layer struct {
	Name         string  `json:"name"`
	Thickness    float64 `json:"thickness"`     // m
	Conductivity float64 `json:"conductivity"`  // W/(m·K)
	Density      float64 `json:"density"`       // kg/m3
	SpecificHeat float64 `json:"specific_heat"` // J/(kg·K)
}

// 由构造层得到的几何与材料参数
type Geometry struct {
	InsideDiameter          float64
	OutsideDiameter         float64
	Length                  float64
	InsulationThickness     float64
	InsulationOuterDiameter float64
	InsulationResistance    float64
	InsulationConductivity  float64
	PipeConductivity        float64
	PipeDensity             float64
	PipeSpecificHeat        float64
	SumTK                   float64 // Σ t/k
}

// 环境配置
type EnvConfig struct {
	Kind                string            `json:"kind"` // none / zone / schedule / outdoor / ground
	Zone                string            `json:"zone"`
	TemperatureSchedule string            `json:"temperature_schedule"`
	VelocitySchedule    string            `json:"velocity_schedule"`
	AirNode             string            `json:"air_node"`
	SunExposed          bool              `json:"sun_exposed"`
	SoilThickness       float64           `json:"soil_thickness"` // 管顶覆土厚度 m
	Soil                SoilConfig        `json:"soil"`
	GroundTemp          *GroundTempConfig `json:"ground_temp"`
	MonthlySurfaceTemps []float64         `json:"monthly_surface_temps"`
}

// 土壤物性
type SoilConfig struct {
	Conductivity  float64 `json:"conductivity"`
	Density       float64 `json:"density"`
	SpecificHeat  float64 `json:"specific_heat"`
	ThermalAbsorp float64 `json:"thermal_absorptance"`
	SolarAbsorp   float64 `json:"solar_absorptance"`
	Roughness     int     `json:"roughness"` // 1 very rough ... 6 very smooth
}

// 远场地温模型参数，三个需同时给出
type GroundTempConfig struct {
	Average        *float64 `json:"average"`
	Amplitude      *float64 `json:"amplitude"`
	PhaseShiftDays *float64 `json:"phase_shift_days"`
}

// 流体网络节点
type FlowNode struct {
	Temp                 float64 `json:"temp"`
	TempMin              float64 `json:"temp_min"`
	TempMax              float64 `json:"temp_max"`
	MassFlowRate         float64 `json:"mass_flow_rate"`
	MassFlowRateMin      float64 `json:"mass_flow_rate_min"`
	MassFlowRateMax      float64 `json:"mass_flow_rate_max"`
	MassFlowRateMinAvail float64 `json:"mass_flow_rate_min_avail"`
	MassFlowRateMaxAvail float64 `json:"mass_flow_rate_max_avail"`
	Quality              float64 `json:"quality"`
	Press                float64 `json:"press"`
	Enthalpy             float64 `json:"enthalpy"`
	HumRat               float64 `json:"hum_rat"`
}

// 推送数据
type Snapshot struct {
	Pipe              string      `json:"pipe"`
	Time              float64     `json:"time"` // h
	OutletTemp        float64     `json:"outlet_temp"`
	FluidHeatLossRate float64     `json:"fluid_heat_loss_rate"`
	EnvHeatLossRate   float64     `json:"env_heat_loss_rate"`
	FluidTemp         []float32   `json:"fluid_temp"`
	PipeTemp          []float32   `json:"pipe_temp"`
	Soil              [][]float32 `json:"soil,omitempty"` // [depth][width]
}

type Msg struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

// 流体物性参数，按温度给出
type PhysicalParameter struct {
	Temperature  float64 `json:"temperature"`   // ℃
	SpecificHeat float64 `json:"specific_heat"` // J/(kg·K)
	Density      float64 `json:"density"`       // kg/m3
	Viscosity    float64 `json:"viscosity"`     // Pa·s
	Conductivity float64 `json:"conductivity"`  // W/(m·K)
}
