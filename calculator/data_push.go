package calculator

import (
	"platesim/model"
)

// 统计结果推送数据，等级矩阵经过差分编码
type ReportPushData struct {
	Iteration int           `json:"iteration"`
	Min       float64       `json:"min"`
	Max       float64       `json:"max"`
	Levels    LevelEncoding `json:"levels"`
	Histogram []int         `json:"histogram"`
}

// 计算结束推送数据
type FinishedPushData struct {
	Mode       string          `json:"mode"`
	Outcome    string          `json:"outcome"`
	Iterations int             `json:"iterations"`
	Delta      float64         `json:"delta"`
	Field      [][]float64     `json:"field"`
	Final      *ReportPushData `json:"final"`
	Requested  *ReportPushData `json:"requested,omitempty"` // ReportAt 对应的中间结果
}

func BuildReportData(r *Report) *ReportPushData {
	if r == nil {
		return nil
	}
	return &ReportPushData{
		Iteration: r.Iteration,
		Min:       r.Min,
		Max:       r.Max,
		Levels:    EncodeLevels(r.Levels),
		Histogram: r.Histogram,
	}
}

func BuildFinishedData(res *Result, levels int) (*FinishedPushData, error) {
	final, err := Analyze(res.Iterations, res.Field, levels)
	if err != nil {
		return nil, err
	}
	return &FinishedPushData{
		Mode:       res.Mode,
		Outcome:    res.Outcome.String(),
		Iterations: res.Iterations,
		Delta:      res.Delta,
		Field:      res.Field.ToRows(),
		Final:      BuildReportData(final),
		Requested:  BuildReportData(res.Report),
	}, nil
}

// BuildFrameReport 对历史快照做统计
func BuildFrameReport(frame *model.Frame, levels int) (*ReportPushData, error) {
	f, err := FieldFromRows(frame.Field)
	if err != nil {
		return nil, err
	}
	r, err := Analyze(frame.Iteration, f, levels)
	if err != nil {
		return nil, err
	}
	return BuildReportData(r), nil
}
