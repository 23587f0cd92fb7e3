package calculator

import (
	"fmt"
	"platesim/model"
)

// InitPlate 初始化金属板温度
// 四个角取相邻两条边的平均值，其余边界格点取所在边的温度，内部格点取初始温度
func InitPlate(rows, cols int, b model.Boundary) (*Field, error) {
	if rows < 3 || cols < 3 {
		return nil, fmt.Errorf("%w: %dx%d, need at least 3x3", ErrInvalidDimension, rows, cols)
	}
	plate, err := NewField(rows, cols)
	if err != nil {
		return nil, err
	}

	topLeft := (b.Left + b.Top) / 2
	topRight := (b.Right + b.Top) / 2
	bottomLeft := (b.Left + b.Bottom) / 2
	bottomRight := (b.Right + b.Bottom) / 2

	for i := 0; i < rows; i++ {
		switch i {
		case 0:
			plate.initRow(i, topLeft, b.Top, topRight)
		case rows - 1:
			plate.initRow(i, bottomLeft, b.Bottom, bottomRight)
		default:
			plate.initRow(i, b.Left, b.Inner, b.Right)
		}
	}
	return plate, nil
}

// 初始化一行
func (f *Field) initRow(row int, left, inner, right float64) {
	f.Set(row, 0, left)
	for j := 1; j < f.cols-1; j++ {
		f.Set(row, j, inner)
	}
	f.Set(row, f.cols-1, right)
}
