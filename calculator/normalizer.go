package calculator

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// FindMinAndMax 计算温度场的最低和最高温度
func FindMinAndMax(f *Field) (min, max float64) {
	v := f.values()
	return floats.Min(v), floats.Max(v)
}

// Normalize 将温度场按本次的最低、最高温度线性映射到 [0, levels-1] 的热度等级
// 所有格点温度相同时全部映射为 0，温度范围溢出时同样按退化处理
func Normalize(f *Field, levels int) ([][]int, error) {
	if levels < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLevels, levels)
	}
	min, max := FindMinAndMax(f)
	tempRange := max - min

	norm := make([][]int, f.rows)
	for i := range norm {
		norm[i] = make([]int, f.cols)
		if tempRange == 0 || math.IsInf(tempRange, 0) || math.IsNaN(tempRange) {
			continue
		}
		for j := range norm[i] {
			level := int((f.At(i, j) - min) / tempRange * float64(levels))
			// 最高温度会得到 levels
			switch {
			case level >= levels:
				level = levels - 1
			case level < 0:
				level = 0
			}
			norm[i][j] = level
		}
	}
	return norm, nil
}
