package main

import (
	"fmt"
	"io"
	"platesim/calculator"
	"strings"
)

func printReport(w io.Writer, r *calculator.Report) {
	printPlate(w, r.Field, r.Iteration)
	printLevels(w, r.Levels)
	printHistogram(w, r.Histogram)
}

func printPlate(w io.Writer, plate [][]float64, time int) {
	fmt.Fprintf(w, "\n || Time in seconds: %d ||\n\n", time)
	for _, row := range plate {
		for _, v := range row {
			fmt.Fprintf(w, "%6.2f ", v)
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w)
}

func printLevels(w io.Writer, levels [][]int) {
	for _, row := range levels {
		for _, level := range row {
			fmt.Fprintf(w, " %d ", level)
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w)
}

// 每个等级一行，格子数用 # 表示
func printHistogram(w io.Writer, histogram []int) {
	for level, count := range histogram {
		fmt.Fprintf(w, "%d: %s\n", level, strings.Repeat("#", count))
	}
}
