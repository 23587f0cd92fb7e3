package calculator

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Field 二维温度场，按行存储
// 内部 Dense 均由 NewField 创建，Stride 恒等于列数
type Field struct {
	rows int
	cols int
	m    *mat.Dense
}

func NewField(rows, cols int) (*Field, error) {
	if rows < 1 || cols < 1 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimension, rows, cols)
	}
	return &Field{rows: rows, cols: cols, m: mat.NewDense(rows, cols, nil)}, nil
}

// FieldFromRows 由二维切片构建温度场，各行长度必须一致
func FieldFromRows(data [][]float64) (*Field, error) {
	if len(data) == 0 || len(data[0]) == 0 {
		return nil, fmt.Errorf("%w: empty field", ErrInvalidDimension)
	}
	f, err := NewField(len(data), len(data[0]))
	if err != nil {
		return nil, err
	}
	for i, row := range data {
		if len(row) != f.cols {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrDimensionMismatch, i, len(row), f.cols)
		}
		f.m.SetRow(i, row)
	}
	return f, nil
}

func (f *Field) Rows() int { return f.rows }

func (f *Field) Cols() int { return f.cols }

func (f *Field) At(i, j int) float64 { return f.m.At(i, j) }

func (f *Field) Set(i, j int, v float64) { f.m.Set(i, j, v) }

func (f *Field) Clone() *Field {
	c, _ := NewField(f.rows, f.cols)
	c.m.Copy(f.m)
	return c
}

// Equal 判断两个温度场在误差 tol 内是否相同
func (f *Field) Equal(other *Field, tol float64) bool {
	if other == nil || f.rows != other.rows || f.cols != other.cols {
		return false
	}
	return mat.EqualApprox(f.m, other.m, tol)
}

// 所有格点，按行连续存储
func (f *Field) values() []float64 {
	return f.m.RawMatrix().Data[:f.rows*f.cols]
}

// ToRows 拷贝为二维切片，供推送和打印使用
func (f *Field) ToRows() [][]float64 {
	res := make([][]float64, f.rows)
	for i := range res {
		res[i] = mat.Row(nil, i, f.m)
	}
	return res
}
