package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestPrintPlate(t *testing.T) {
	var buf bytes.Buffer
	printPlate(&buf, [][]float64{{3, 2, -1.5}, {4, 1, -5}}, 7)
	assert.Equal(t, "\n || Time in seconds: 7 ||\n\n"+
		"  3.00   2.00  -1.50 \n"+
		"  4.00   1.00  -5.00 \n\n", buf.String())
}

func TestPrintLevels(t *testing.T) {
	var buf bytes.Buffer
	printLevels(&buf, [][]int{{8, 7, 3}, {9, 6, 0}})
	assert.Equal(t, " 8  7  3 \n 9  6  0 \n\n", buf.String())
}

func TestPrintHistogram(t *testing.T) {
	var buf bytes.Buffer
	printHistogram(&buf, []int{1, 0, 3})
	assert.Equal(t, "0: #\n1: \n2: ###\n", buf.String())
}

func TestRunCommand_Fixed(t *testing.T) {
	out, err := execute(t, "run", "--mode", "fixed", "--iterations", "3", "--report", "2")
	require.NoError(t, err)

	assert.Contains(t, out, "|| Time in seconds: 2 ||")
	assert.Contains(t, out, "|| Time in seconds: 3 ||")
	assert.Less(t, strings.Index(out, "Time in seconds: 2"), strings.Index(out, "Final State."))
	assert.Less(t, strings.Index(out, "Final State."), strings.Index(out, "Time in seconds: 3"))

	// 直方图的 # 总数等于格子数
	assert.Equal(t, 10*20, strings.Count(out, "#"))
}

func TestRunCommand_ReportNotReached(t *testing.T) {
	out, err := execute(t, "run", "--mode", "fixed", "--iterations", "1", "--report", "5")
	require.NoError(t, err)
	assert.NotContains(t, out, "#")
	assert.True(t, strings.HasPrefix(out, "Final State."))
}

func TestRunCommand_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plate.ini")
	require.NoError(t, os.WriteFile(path, []byte(`[plate]
Rows = 3
Cols = 3

[calculator]
Mode = threshold
Threshold = 1.0
`), 0o644))

	out, err := execute(t, "run", "--config", path)
	require.NoError(t, err)
	assert.Equal(t, "Final State.\n"+
		"\n || Time in seconds: 1 ||\n\n"+
		"  3.00   2.00  -1.50 \n"+
		"  4.00   1.00  -5.00 \n"+
		"  3.50   3.00  -1.00 \n\n", out)
}

func TestRunCommand_Errors(t *testing.T) {
	_, err := execute(t, "run", "--mode", "sideways")
	assert.Error(t, err)

	_, err = execute(t, "run", "--config", filepath.Join(t.TempDir(), "missing.ini"))
	assert.Error(t, err)

	_, err = execute(t, "run", "--levels", "200")
	assert.Error(t, err)
}
