package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"platesim/calculator"
	"platesim/model"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

// Hub 对应一个 websocket 连接，负责解析请求、运行计算并推送结果
type Hub struct {
	id   string
	log  *log.Entry
	conn *websocket.Conn
	cfg  calculator.Config

	mu      sync.Mutex
	c       calculator.Calculator // 最近一次计算
	running bool

	// request
	msg chan model.Msg
	// response，只有 handleResponse 写连接
	out chan model.Msg

	done chan struct{}
	wg   sync.WaitGroup
}

func NewHub(conn *websocket.Conn, cfg calculator.Config) *Hub {
	id := uuid.NewString()
	return &Hub{
		id:   id,
		log:  log.WithField("session", id),
		conn: conn,
		cfg:  cfg,
		msg:  make(chan model.Msg, 10),
		out:  make(chan model.Msg, 10),
		done: make(chan struct{}),
	}
}

// 读取请求直到连接断开
func (h *Hub) run() {
	h.log.Info("连接建立")
	h.wg.Add(2)
	go h.handleRequest()
	go h.handleResponse()

	for {
		var msg model.Msg
		err := h.conn.ReadJSON(&msg)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.log.WithError(err).Warn("连接异常断开")
			}
			break
		}
		h.msg <- msg
	}
	h.close()
}

func (h *Hub) close() {
	close(h.done)
	h.mu.Lock()
	if h.c != nil {
		h.c.GetCalcHub().StopSignal()
	}
	h.mu.Unlock()
	h.wg.Wait()
	_ = h.conn.Close()
	h.log.Info("连接关闭")
}

func (h *Hub) handleRequest() {
	defer h.wg.Done()
	for {
		select {
		case msg := <-h.msg:
			h.dispatch(msg)
		case <-h.done:
			return
		}
	}
}

func (h *Hub) handleResponse() {
	defer h.wg.Done()
	for {
		select {
		case reply := <-h.out:
			if err := h.conn.WriteJSON(&reply); err != nil {
				h.log.WithError(err).Error("发送消息失败")
			}
		case <-h.done:
			return
		}
	}
}

func (h *Hub) dispatch(msg model.Msg) {
	var err error
	switch msg.Type {
	case model.MsgEnv:
		err = h.setEnv(msg.Content)
	case model.MsgStart:
		err = h.start()
	case model.MsgReport:
		err = h.report(msg.Content)
	case model.MsgStop:
		h.stop()
	default:
		err = fmt.Errorf("no such type: %q", msg.Type)
	}
	if err != nil {
		h.log.WithError(err).WithField("type", msg.Type).Warn("请求处理失败")
		h.send(model.Msg{Type: model.MsgError, Content: err.Error()})
	}
}

func (h *Hub) setEnv(content string) error {
	var env model.PlateEnv
	if err := json.Unmarshal([]byte(content), &env); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	cfg := h.cfg.ApplyEnv(env)
	if err := cfg.Validate(); err != nil {
		return err
	}
	h.cfg = cfg
	h.log.WithFields(log.Fields{
		"rows":      cfg.Plate.Rows,
		"cols":      cfg.Plate.Cols,
		"mode":      cfg.Calculator.Mode,
		"threshold": cfg.Calculator.Threshold,
	}).Info("设置计算参数")
	return h.reply(model.MsgEnvSet, struct {
		Plate      calculator.PlateConfig      `json:"plate"`
		Calculator calculator.CalculatorConfig `json:"calculator"`
	}{cfg.Plate, cfg.Calculator})
}

func (h *Hub) start() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	select {
	case <-h.done:
		return errors.New("connection closed")
	default:
	}
	if h.running {
		return errors.New("simulation already running")
	}
	sim, err := calculator.NewSimulator(h.cfg)
	if err != nil {
		return err
	}
	h.c = sim
	h.running = true
	h.wg.Add(1)
	go h.simulate(sim, h.cfg.Calculator.HeatLevels)
	return nil
}

// 运行计算，逐帧推送温度场，结束后推送统计结果
func (h *Hub) simulate(c calculator.Calculator, levels int) {
	defer h.wg.Done()
	defer func() {
		h.mu.Lock()
		h.running = false
		h.mu.Unlock()
	}()

	frames := c.GetCalcHub().Subscribe(10)
	result := make(chan *calculator.Result, 1)
	go func() {
		result <- c.Run()
	}()

	for frame := range frames {
		if err := h.reply(model.MsgFrame, frame); err != nil {
			h.log.WithError(err).Error("推送温度场失败")
		}
	}
	res := <-result

	data, err := calculator.BuildFinishedData(res, levels)
	if err != nil {
		h.log.WithError(err).Error("统计温度场失败")
		h.send(model.Msg{Type: model.MsgError, Content: err.Error()})
		return
	}
	if err := h.reply(model.MsgFinished, data); err != nil {
		h.log.WithError(err).Error("推送计算结果失败")
	}
}

// 内容为空时返回历史记录中的迭代次数，否则统计对应迭代的温度场
func (h *Hub) report(content string) error {
	h.mu.Lock()
	c := h.c
	h.mu.Unlock()
	if c == nil {
		return errors.New("simulation not started")
	}
	if content == "" {
		return h.reply(model.MsgHistory, c.History())
	}

	iteration, err := strconv.Atoi(content)
	if err != nil || iteration < 0 {
		return fmt.Errorf("invalid iteration %q", content)
	}
	frame, ok := c.FrameAt(iteration)
	if !ok {
		return fmt.Errorf("iteration %d not in history", iteration)
	}
	// 按产生该帧的计算所用的等级数统计
	data, err := calculator.BuildFrameReport(frame, c.Config().Calculator.HeatLevels)
	if err != nil {
		return err
	}
	return h.reply(model.MsgReport, data)
}

func (h *Hub) stop() {
	h.mu.Lock()
	if h.c != nil {
		h.c.GetCalcHub().StopSignal()
	}
	h.mu.Unlock()
	h.send(model.Msg{Type: model.MsgStopped, Content: "stopped"})
}

func (h *Hub) reply(msgType string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	h.send(model.Msg{Type: msgType, Content: string(data)})
	return nil
}

func (h *Hub) send(msg model.Msg) {
	select {
	case h.out <- msg:
	case <-h.done:
	}
}
