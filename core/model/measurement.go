package model

import (
	"fmt"

	"github.com/enzymeml/enzymeml-go/core/errors"
	"github.com/enzymeml/enzymeml-go/core/units"
)

// NewMeasurementData builds a per-species series, enforcing that the time
// and value columns have the same length and that an explicit initial amount
// matches the first sampled value.
func NewMeasurementData(speciesID string, time, data []float64, timeUnit, dataUnit *units.Definition) (*MeasurementData, error) {
	md := &MeasurementData{
		SpeciesID: speciesID,
		Time:      append([]float64(nil), time...),
		Data:      append([]float64(nil), data...),
		TimeUnit:  timeUnit,
		DataUnit:  dataUnit,
	}
	if err := md.Check(""); err != nil {
		return nil, err
	}
	return md, nil
}

// Check verifies the series invariants. The measurement id is only used in
// error messages and may be empty.
func (md *MeasurementData) Check(measurementID string) error {
	if len(md.Time) != len(md.Data) {
		return errors.NewDataLengthMismatch(measurementID, md.SpeciesID,
			fmt.Sprintf("time has %d points, data has %d", len(md.Time), len(md.Data)))
	}
	if md.Initial != nil && len(md.Data) > 0 && md.Data[0] != *md.Initial {
		return errors.NewDataLengthMismatch(measurementID, md.SpeciesID,
			"initial amount does not match first data point")
	}
	return nil
}

// WithInitial sets the initial amount, verifying it against the first data
// point when the series is non-empty.
func (md *MeasurementData) WithInitial(initial float64) (*MeasurementData, error) {
	md.Initial = Float(initial)
	if err := md.Check(""); err != nil {
		md.Initial = nil
		return nil, err
	}
	return md, nil
}

// AddSpeciesData appends a checked series to the measurement. Duplicate
// species within one measurement are rejected.
func (m *Measurement) AddSpeciesData(md *MeasurementData) error {
	if err := md.Check(m.ID); err != nil {
		return err
	}
	for _, existing := range m.SpeciesData {
		if existing.SpeciesID == md.SpeciesID {
			return errors.NewDuplicateIdentifier("measurement species", md.SpeciesID)
		}
	}
	m.SpeciesData = append(m.SpeciesData, md)
	return nil
}

// DataFor returns the series for one species, or nil when absent.
func (m *Measurement) DataFor(speciesID string) *MeasurementData {
	for _, sd := range m.SpeciesData {
		if sd.SpeciesID == speciesID {
			return sd
		}
	}
	return nil
}

// SetConditions records the experimental pH and temperature of the run.
func (m *Measurement) SetConditions(ph, temperature float64, tempUnit *units.Definition) {
	m.PH = Float(ph)
	m.Temperature = Float(temperature)
	m.TemperatureUnit = tempUnit
}
