package calculator

// 某一时刻温度场的统计结果
type Report struct {
	Iteration int         `json:"iteration"`
	Min       float64     `json:"min"`
	Max       float64     `json:"max"`
	Field     [][]float64 `json:"field"`
	Levels    [][]int     `json:"levels"`
	Histogram []int       `json:"histogram"`
}

// Analyze 对温度场做归一化和直方图统计，不修改温度场
func Analyze(iteration int, f *Field, levels int) (*Report, error) {
	norm, err := Normalize(f, levels)
	if err != nil {
		return nil, err
	}
	min, max := FindMinAndMax(f)
	return &Report{
		Iteration: iteration,
		Min:       min,
		Max:       max,
		Field:     f.ToRows(),
		Levels:    norm,
		Histogram: BuildHistogram(norm, levels),
	}, nil
}
