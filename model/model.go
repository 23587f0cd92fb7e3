package model

// 温度场边界及初始温度
type Boundary struct {
	Top    float64 `json:"top" yaml:"top"`
	Bottom float64 `json:"bottom" yaml:"bottom"`
	Left   float64 `json:"left" yaml:"left"`
	Right  float64 `json:"right" yaml:"right"`
	Inner  float64 `json:"inner" yaml:"inner"`
}

// 前端设置的边界温度，未传的字段沿用当前配置，0 度需要显式传入
type BoundaryEnv struct {
	Top    *float64 `json:"top"`
	Bottom *float64 `json:"bottom"`
	Left   *float64 `json:"left"`
	Right  *float64 `json:"right"`
	Inner  *float64 `json:"inner"`
}

// 前端通过 env 消息设置的计算参数，零值字段表示沿用当前配置
type PlateEnv struct {
	Rows       int          `json:"rows"`
	Cols       int          `json:"cols"`
	Boundary   *BoundaryEnv `json:"boundary"`
	Mode       string    `json:"mode"`
	Threshold  float64   `json:"threshold"`
	Iterations *int      `json:"iterations"`
	ReportAt   int       `json:"report_at"`
	HeatLevels int       `json:"heat_levels"`
}

// 一次迭代后的温度场快照
type Frame struct {
	Iteration int         `json:"iteration"`
	Delta     float64     `json:"delta"`
	Field     [][]float64 `json:"field"`
}

// 前后端通信消息结构
type Msg struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

// 消息类型
const (
	MsgEnv      = "env"
	MsgEnvSet   = "envSet"
	MsgStart    = "start"
	MsgFrame    = "frame"
	MsgFinished = "finished"
	MsgReport   = "report"
	MsgHistory  = "history"
	MsgStop     = "stop"
	MsgStopped  = "stopped"
	MsgError    = "error"
)
