package calculator

import (
	"fmt"
	"math"
)

// 九点格式：八个相邻格点权重 0.1，自身权重 0.2
const stencilWeight = 0.1

// StepInto 以 src 作为 t-1 时刻的温度场，计算 t 时刻的温度写入 dst
// 只更新内部格点，边界格点从 src 原样拷贝。返回内部格点温度变化绝对值之和
func StepInto(dst, src *Field) (float64, error) {
	if dst == src {
		return 0, ErrAliasedBuffers
	}
	if dst.rows != src.rows || dst.cols != src.cols {
		return 0, fmt.Errorf("%w: %dx%d and %dx%d", ErrDimensionMismatch, dst.rows, dst.cols, src.rows, src.cols)
	}

	rows, cols := src.rows, src.cols
	s, d := src.values(), dst.values()

	// 边界
	copy(d[:cols], s[:cols])
	copy(d[(rows-1)*cols:], s[(rows-1)*cols:])
	for i := 1; i < rows-1; i++ {
		d[i*cols] = s[i*cols]
		d[i*cols+cols-1] = s[i*cols+cols-1]
	}

	var delta float64
	for i := 1; i < rows-1; i++ {
		up := s[(i-1)*cols : i*cols]
		row := s[i*cols : (i+1)*cols]
		down := s[(i+1)*cols : (i+2)*cols]
		out := d[i*cols : (i+1)*cols]
		for j := 1; j < cols-1; j++ {
			out[j] = stencilWeight * (up[j-1] + up[j] + up[j+1] +
				row[j-1] + 2*row[j] + row[j+1] +
				down[j-1] + down[j] + down[j+1])

			delta += math.Abs(out[j] - row[j])
		}
	}
	return delta, nil
}

// Step 原地计算一个时间步，内部先拷贝一份 t-1 时刻的温度场
func Step(f *Field) float64 {
	snapshot := f.Clone()
	delta, _ := StepInto(f, snapshot)
	return delta
}
