package calculator

import "platesim/model"

// calculator 的接口定义

type Calculator interface {
	// 获取CalcHub
	GetCalcHub() *CalcHub

	// 创建时使用的配置
	Config() Config

	// 当前温度场及迭代次数
	Field() *Field
	Iteration() int

	// 计算一个时间步
	Step() float64

	// 按配置的模式运行，只能调用一次，之后的调用返回 OutcomeStopped
	Run() *Result

	// 从历史记录中获取某次迭代的温度场
	FrameAt(iteration int) (*model.Frame, bool)

	// 历史记录中保存的迭代次数
	History() []int
}

// 运行结束的原因
type Outcome int

const (
	OutcomeConverged     Outcome = iota // 温度变化低于阈值
	OutcomeFixed                        // 完成固定次数的迭代
	OutcomeMaxIterations                // 达到迭代上限仍未收敛
	OutcomeStopped                      // 收到停止信号
)

func (o Outcome) String() string {
	switch o {
	case OutcomeConverged:
		return "converged"
	case OutcomeFixed:
		return "fixed"
	case OutcomeMaxIterations:
		return "max_iterations"
	case OutcomeStopped:
		return "stopped"
	}
	return "unknown"
}

type Result struct {
	Mode       string
	Outcome    Outcome
	Iterations int     // 累计迭代次数
	Delta      float64 // 最后一次迭代的温度变化，未迭代时为 0
	Field      *Field
	Report     *Report // ReportAt 对应的中间结果
}
