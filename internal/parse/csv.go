package parse

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/dropforge/dropforge/internal/models"
)

// ReadRows reads CSV content into raw string rows. Rows may have two or
// three cells depending on the standard; empty lines are skipped.
func ReadRows(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = false

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row %d: %w", len(rows)+1, err)
		}
		if len(row) == 1 && strings.TrimSpace(row[0]) == "" {
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// TrimAmounts strips surrounding whitespace from the second cell of each row
// so an upload like "addr, 5" survives re-serialization as pasted text.
func TrimAmounts(rows [][]string) [][]string {
	trimmed := make([][]string, len(rows))
	for i, row := range rows {
		out := make([]string, len(row))
		copy(out, row)
		if len(out) > 1 {
			out[1] = strings.TrimSpace(out[1])
		}
		trimmed[i] = out
	}
	return trimmed
}

// Rejoin serializes CSV rows back into the pasted-text line form so uploads
// flow through the same lexer as free text and stay editable by the user.
func Rejoin(standard models.Standard, rows [][]string) string {
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		var b strings.Builder
		for i, cell := range row {
			if i == 0 {
				b.WriteString(cell)
				continue
			}
			if cell == "" {
				continue
			}
			b.WriteString(", ")
			b.WriteString(cell)
			// Two value cells at most: address, token id, amount.
			if standard != models.StandardERC1155 && i == 1 {
				break
			}
			if i == 2 {
				break
			}
		}
		lines = append(lines, b.String())
	}
	return strings.Join(lines, "\n")
}

// Rows lexes uploaded CSV rows for the given standard: amounts are trimmed,
// rows are re-serialized to text, and the text lexer applies the usual line
// grammar. Malformed rows drop out exactly as malformed pasted lines do.
func Rows(standard models.Standard, rows [][]string) []Tuple {
	return Text(standard, Rejoin(standard, TrimAmounts(rows)))
}
