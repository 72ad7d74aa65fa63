// internal/output/text.go
package output

import (
	"fmt"
	"io"
	"strings"

	"argpred/internal/predict"
)

var rule = strings.Repeat("-", 65)

// WriteTextHeader prints the banner and column labels of the results table.
func WriteTextHeader(w io.Writer, threshold float64) error {
	_, err := fmt.Fprintf(w, "\nPREDICTION RESULTS (Threshold: %.2f) ---\n%-30s | %-15s | %s\n%s\n",
		threshold, "Sequence ID", "Probability", "Class", rule)
	return err
}

// WriteTextRow prints one table row.
func WriteTextRow(w io.Writer, p predict.Prediction) error {
	_, err := fmt.Fprintf(w, "%-30s | %-15.4f | %s\n", p.ID, p.Probability, p.Class)
	return err
}

// WriteTextFooter closes the table.
func WriteTextFooter(w io.Writer) error {
	_, err := fmt.Fprintln(w, rule)
	return err
}

// StreamText prints the table as predictions arrive on in.
func StreamText(w io.Writer, in <-chan predict.Prediction, threshold float64) error {
	if err := WriteTextHeader(w, threshold); err != nil {
		return err
	}
	for p := range in {
		if err := WriteTextRow(w, p); err != nil {
			return err
		}
	}
	return WriteTextFooter(w)
}
