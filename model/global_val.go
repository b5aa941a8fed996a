package model

// 管道离散与求解的固定参数
// 1. 轴向分段数 20，数组下标 0..N，0 为入口边界
// 2. 土壤网格深度方向 8 个节点，宽度方向 深度/2 个节点
// 3. 内部时间步 60s

const (
	Sections             = 20
	DepthNodes           = 8
	InnerTimeStep        = 60.0 // s
	InitialTemperature   = 21.0 // ℃
	TimeEpsilon          = 1e-6 // h
	MaxIterations        = 200
	ConvergenceTolerance = 0.05 // ℃

	KelvinConv    = 273.15
	StefBoltzmann = 5.6697e-8
	SecondsInHour = 3600.0
	HoursInDay    = 24.0
)

// 层流/无流动时的努塞尔数
const LaminarNusselt = 3.66
