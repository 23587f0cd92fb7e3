package calculator

// 热度等级的差分编码
// 等级按行展开后，Data[i] 为第 i 个等级与前一个等级的差值，Data[0] 相对 Start
// 等级数不超过 127，差值可以用 int8 表示
type LevelEncoding struct {
	Rows  int    `json:"rows"`
	Cols  int    `json:"cols"`
	Start int    `json:"start"`
	Data  []int8 `json:"data"`
}

func EncodeLevels(norm [][]int) LevelEncoding {
	enc := LevelEncoding{Rows: len(norm)}
	if len(norm) == 0 {
		return enc
	}
	enc.Cols = len(norm[0])
	enc.Data = make([]int8, 0, enc.Rows*enc.Cols)
	if enc.Cols > 0 {
		enc.Start = norm[0][0]
	}
	pre := enc.Start
	for _, row := range norm {
		for _, level := range row {
			enc.Data = append(enc.Data, int8(level-pre))
			pre = level
		}
	}
	return enc
}

func DecodeLevels(src LevelEncoding) [][]int {
	res := make([][]int, src.Rows)
	start := src.Start
	k := 0
	for i := range res {
		res[i] = make([]int, src.Cols)
		for j := range res[i] {
			start = start + int(src.Data[k])
			res[i][j] = start
			k++
		}
	}
	return res
}
