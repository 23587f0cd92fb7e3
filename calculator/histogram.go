package calculator

// BuildHistogram 统计每个热度等级的格点数
func BuildHistogram(norm [][]int, levels int) []int {
	histogram := make([]int, levels)
	for _, row := range norm {
		for _, level := range row {
			histogram[level]++
		}
	}
	return histogram
}
