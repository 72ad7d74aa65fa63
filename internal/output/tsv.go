package output

import (
	"fmt"
	"io"
	"strconv"

	"argpred/internal/predict"
)

// FormatRowTSV returns the TSV columns for p (no trailing newline).
func FormatRowTSV(p predict.Prediction) string {
	return fmt.Sprintf("%s\t%s\t%s\t%d\t%t",
		p.ID,
		strconv.FormatFloat(p.Probability, 'f', 6, 64),
		p.Class, p.Length, p.Truncated,
	)
}

// StreamTSV writes one row per prediction, optionally preceded by TSVHeader.
func StreamTSV(w io.Writer, in <-chan predict.Prediction, header bool) error {
	if header {
		if _, err := fmt.Fprintln(w, TSVHeader); err != nil {
			return err
		}
	}
	for p := range in {
		if _, err := fmt.Fprintln(w, FormatRowTSV(p)); err != nil {
			return err
		}
	}
	return nil
}
