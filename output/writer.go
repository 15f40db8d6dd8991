// Package output writes the final-step solution file: three
// comma-separated lines (velocity, pressure, temperature), matching
// the plain-text format of the reference scenario's output.
package output

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// WriteSolution writes u, p and T to path as three comma-separated
// lines in that order. Only the final step of a run writes this file;
// intermediate steps are reported solely through the driver's log
// lines.
func WriteSolution(path string, u, p, t []float64) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("output: create %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, row := range [][]float64{u, p, t} {
		if err := writeRow(w, row); err != nil {
			return fmt.Errorf("output: write %s: %w", path, err)
		}
	}
	return w.Flush()
}

func writeRow(w *bufio.Writer, row []float64) error {
	parts := make([]string, len(row))
	for i, v := range row {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	_, err := w.WriteString(strings.Join(parts, ",") + "\n")
	return err
}
