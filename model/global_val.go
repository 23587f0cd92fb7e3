package model

// 全局常量
// 参考配置：10 x 20 的金属板，四条边恒温，内部初始温度一致

const (
	Rows = 10
	Cols = 20

	TempTop    = 2.0
	TempBottom = 3.0
	TempLeft   = 4.0
	TempRight  = -5.0
	TempInner  = 1.0

	HeatLevels = 10  // 热度等级数
	Threshold  = 1.0 // 收敛阈值

	// 防止配置异常时无限迭代
	MaxIterations = 100000
	// 历史帧容量
	HistorySize = 64
)

// 迭代模式
const (
	ModeThreshold = "threshold" // 达到阈值后停止，至少迭代一次
	ModeFixed     = "fixed"     // 固定迭代次数
)
