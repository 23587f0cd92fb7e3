package calculator

import (
	"platesim/model"
	"sync"
)

// CalcHub 连接计算协程和推送协程
type CalcHub struct {
	// 停止计算
	Stop     chan struct{}
	stopOnce sync.Once

	// 每次迭代后的温度场推送，未订阅时为 nil
	frames     chan model.Frame
	framesOnce sync.Once
}

func NewCalcHub() *CalcHub {
	return &CalcHub{
		Stop: make(chan struct{}),
	}
}

// Subscribe 开启逐帧推送，需在 Run 之前调用且只能调用一次
// Run 结束后 channel 会被关闭
func (ch *CalcHub) Subscribe(buffer int) <-chan model.Frame {
	ch.frames = make(chan model.Frame, buffer)
	return ch.frames
}

func (ch *CalcHub) subscribed() bool {
	return ch.frames != nil
}

// 推送一帧，已停止时返回 false
func (ch *CalcHub) pushFrame(frame model.Frame) bool {
	select {
	case ch.frames <- frame:
		return true
	case <-ch.Stop:
		return false
	}
}

func (ch *CalcHub) closeFrames() {
	if ch.frames == nil {
		return
	}
	ch.framesOnce.Do(func() {
		close(ch.frames)
	})
}

func (ch *CalcHub) StopSignal() {
	ch.stopOnce.Do(func() {
		close(ch.Stop)
	})
}

func (ch *CalcHub) Stopped() bool {
	select {
	case <-ch.Stop:
		return true
	default:
		return false
	}
}
