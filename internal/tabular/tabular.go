// Package tabular reads and writes the columnar sidecar files that carry
// measurement time series. Files are headerless CSV; column 0 is the time
// column, the remaining columns follow the format annotation's order.
package tabular

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/enzymeml/enzymeml-go/core/errors"
)

// WriteColumns renders columns as CSV rows. All columns must have the same
// length.
func WriteColumns(w io.Writer, columns [][]float64) error {
	if len(columns) == 0 {
		return nil
	}
	rows := len(columns[0])
	for i, col := range columns {
		if len(col) != rows {
			return errors.NewDataLengthMismatch("", "",
				fmt.Sprintf("column %d has %d rows, column 0 has %d", i, len(col), rows))
		}
	}

	cw := csv.NewWriter(w)
	record := make([]string, len(columns))
	for row := 0; row < rows; row++ {
		for col := range columns {
			record[col] = strconv.FormatFloat(columns[col][row], 'g', -1, 64)
		}
		if err := cw.Write(record); err != nil {
			return errors.NewIO("write", "csv", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return errors.NewIO("write", "csv", err)
	}
	return nil
}

// ReadColumns parses CSV rows back into columns. Ragged rows and non-numeric
// cells are malformed input. The location is only used in error messages.
func ReadColumns(r io.Reader, location string) ([][]float64, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	var columns [][]float64
	row := 0
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.NewMalformed(location, err.Error())
		}
		if columns == nil {
			columns = make([][]float64, len(record))
		}
		if len(record) != len(columns) {
			return nil, errors.NewMalformed(location,
				fmt.Sprintf("row %d has %d cells, expected %d", row, len(record), len(columns)))
		}
		for col, cell := range record {
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, errors.NewMalformed(location,
					fmt.Sprintf("row %d column %d is not a number: %s", row, col, cell))
			}
			columns[col] = append(columns[col], v)
		}
		row++
	}
	return columns, nil
}
