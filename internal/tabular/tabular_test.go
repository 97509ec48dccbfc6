package tabular

import (
	"bytes"
	stderrors "errors"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/enzymeml/enzymeml-go/core/errors"
)

func TestRoundTrip(t *testing.T) {
	columns := [][]float64{
		{0, 30, 60, 90},
		{10, 7.5, 5.25, 3.1},
		{0, 2.5, 4.75, 6.9},
	}

	var buf bytes.Buffer
	if err := WriteColumns(&buf, columns); err != nil {
		t.Fatal(err)
	}
	got, err := ReadColumns(&buf, "data/m0.csv")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, columns) {
		t.Errorf("round trip = %v, want %v", got, columns)
	}
}

func TestFloatFidelity(t *testing.T) {
	// Values that lose precision under naive formatting survive the trip.
	columns := [][]float64{
		{0.1, 1.0 / 3.0, math.Pi, 6.02214076e23, 1e-9},
	}
	var buf bytes.Buffer
	if err := WriteColumns(&buf, columns); err != nil {
		t.Fatal(err)
	}
	got, err := ReadColumns(&buf, "x")
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range columns[0] {
		if got[0][i] != v {
			t.Errorf("value %d: got %v, want %v", i, got[0][i], v)
		}
	}
}

func TestWriteRaggedColumns(t *testing.T) {
	err := WriteColumns(&bytes.Buffer{}, [][]float64{{0, 1}, {5}})
	if !stderrors.Is(err, errors.ErrDataLengthMismatch) {
		t.Errorf("error = %v, want ErrDataLengthMismatch", err)
	}
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"ragged row", "0,10\n1,9,8\n"},
		{"non numeric", "0,10\n1,abc\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadColumns(strings.NewReader(tt.input), "data/m0.csv")
			if !stderrors.Is(err, errors.ErrMalformedDocument) {
				t.Errorf("error = %v, want ErrMalformedDocument", err)
			}
		})
	}
}

func TestEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteColumns(&buf, nil); err != nil {
		t.Fatal(err)
	}
	got, err := ReadColumns(&buf, "x")
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Errorf("ReadColumns(empty) = %v", got)
	}
}
