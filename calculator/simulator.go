package calculator

import (
	"platesim/deque"
	"platesim/model"
	"sync"

	log "github.com/sirupsen/logrus"
)

type Simulator struct {
	cfg Config

	// 两个温度场交替作为 t-1 和 t 时刻
	thermalField  *Field
	thermalField1 *Field
	field         *Field // 当前时刻的温度场

	// 每计算一个时间步翻转一次
	alternating bool

	iteration int
	lastDelta float64
	ran       bool // Run 只能执行一次

	history deque.Deque // 最近若干次迭代的快照，HistorySize 为 0 时为 nil
	calcHub *CalcHub

	mu sync.Mutex // 保护推送协程对历史快照的并发访问
}

func NewSimulator(cfg Config) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	thermalField, err := InitPlate(cfg.Plate.Rows, cfg.Plate.Cols, cfg.Plate.Boundary)
	if err != nil {
		return nil, err
	}

	s := &Simulator{
		cfg:           cfg,
		thermalField:  thermalField,
		thermalField1: thermalField.Clone(),
		alternating:   true,
		calcHub:       NewCalcHub(),
	}
	s.field = s.thermalField
	if cfg.Calculator.HistorySize > 0 {
		s.history = deque.NewArrDeque(cfg.Calculator.HistorySize)
		s.record(s.frame())
	}

	log.WithFields(log.Fields{
		"rows":      cfg.Plate.Rows,
		"cols":      cfg.Plate.Cols,
		"top":       cfg.Plate.Top,
		"bottom":    cfg.Plate.Bottom,
		"left":      cfg.Plate.Left,
		"right":     cfg.Plate.Right,
		"inner":     cfg.Plate.Inner,
		"mode":      cfg.Calculator.Mode,
		"threshold": cfg.Calculator.Threshold,
		"history":   cfg.Calculator.HistorySize,
	}).Info("初始化温度场")
	return s, nil
}

func (s *Simulator) GetCalcHub() *CalcHub {
	return s.calcHub
}

func (s *Simulator) Config() Config {
	return s.cfg
}

// Field 返回当前温度场的拷贝
func (s *Simulator) Field() *Field {
	return s.field.Clone()
}

func (s *Simulator) Iteration() int {
	return s.iteration
}

// Step 计算一个时间步并交换温度场
func (s *Simulator) Step() float64 {
	next := s.thermalField
	if s.alternating {
		next = s.thermalField1
	}
	delta, err := StepInto(next, s.field)
	if err != nil {
		// 两个缓冲区由构造函数创建，尺寸一定相同
		panic(err)
	}

	s.field = next
	s.alternating = !s.alternating // 仅在这里修改
	s.iteration++
	s.lastDelta = delta

	log.WithFields(log.Fields{
		"iteration": s.iteration,
		"delta":     delta,
	}).Debug("迭代完成")
	return delta
}

// Run 按配置的模式迭代
// fixed: 恰好迭代 Iterations 次，不关心温度变化
// threshold: 先迭代再判断，温度变化低于阈值时停止，超过 MaxIterations 次仍未收敛则放弃
// 再次调用不会迭代，直接返回当前状态，结果为 OutcomeStopped
func (s *Simulator) Run() *Result {
	calc := s.cfg.Calculator
	res := &Result{Mode: calc.Mode}
	if s.ran {
		log.WithField("iteration", s.iteration).Warn("计算已运行过，忽略")
		res.Outcome = OutcomeStopped
		return s.finish(res)
	}
	s.ran = true
	defer s.calcHub.closeFrames()

	start := s.iteration

	switch calc.Mode {
	case model.ModeFixed:
		res.Outcome = OutcomeFixed
		for s.iteration-start < calc.Iterations {
			if !s.advance(res) {
				res.Outcome = OutcomeStopped
				break
			}
		}
	default:
	LOOP:
		for {
			if !s.advance(res) {
				res.Outcome = OutcomeStopped
				break
			}
			switch {
			case s.lastDelta < calc.Threshold:
				res.Outcome = OutcomeConverged
				break LOOP
			case s.iteration-start >= calc.MaxIterations:
				res.Outcome = OutcomeMaxIterations
				log.WithFields(log.Fields{
					"iterations": s.iteration - start,
					"delta":      s.lastDelta,
					"threshold":  calc.Threshold,
				}).Warn("达到迭代上限，温度场未收敛")
				break LOOP
			}
		}
	}

	s.finish(res)
	log.WithFields(log.Fields{
		"mode":       res.Mode,
		"outcome":    res.Outcome.String(),
		"iterations": res.Iterations,
		"delta":      res.Delta,
	}).Info("计算结束")
	return res
}

func (s *Simulator) finish(res *Result) *Result {
	res.Iterations = s.iteration
	res.Delta = s.lastDelta
	res.Field = s.field.Clone()
	return res
}

// 计算一个时间步并处理快照、推送和中间结果，收到停止信号时返回 false
func (s *Simulator) advance(res *Result) bool {
	if s.calcHub.Stopped() {
		return false
	}
	s.Step()

	var frame model.Frame
	if s.history != nil || s.calcHub.subscribed() {
		frame = s.frame()
	}
	if s.history != nil {
		s.record(frame)
	}
	if s.iteration == s.cfg.Calculator.ReportAt {
		report, err := Analyze(s.iteration, s.field, s.cfg.Calculator.HeatLevels)
		if err != nil {
			log.WithError(err).Error("统计温度场失败")
		}
		res.Report = report
	}
	if s.calcHub.subscribed() && !s.calcHub.pushFrame(frame) {
		return false
	}
	return true
}

func (s *Simulator) frame() model.Frame {
	return model.Frame{
		Iteration: s.iteration,
		Delta:     s.lastDelta,
		Field:     s.field.ToRows(),
	}
}

// 保存快照，满了淘汰最早的一帧
func (s *Simulator) record(frame model.Frame) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.history.IsFull() {
		s.history.RemoveFirst()
	}
	s.history.AddLast(frame)
}

// History 返回历史记录中保存的迭代次数，由早到晚
func (s *Simulator) History() []int {
	if s.history == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	iterations := make([]int, 0, s.history.Capacity())
	s.history.Traverse(func(_ int, item *model.Frame) {
		iterations = append(iterations, item.Iteration)
	})
	return iterations
}

// FrameAt 从历史记录中查找某次迭代的温度场
func (s *Simulator) FrameAt(iteration int) (*model.Frame, bool) {
	if s.history == nil {
		return nil, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.history.IsEmpty() {
		return nil, false
	}
	first := s.history.Get(0).Iteration
	i := iteration - first
	if i < 0 || i >= s.history.Size() {
		return nil, false
	}
	frame := *s.history.Get(i)
	return &frame, true
}
