package model

import "reflect"

// filter.go - Attribute-matching queries over document collections. A match
// is a map from exported field name to its required value; an entity matches
// when every named field compares equal. Pointer fields compare against the
// pointed-to value.

func matches(entity any, match map[string]any) bool {
	v := reflect.ValueOf(entity)
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	for name, want := range match {
		field := v.FieldByName(name)
		if !field.IsValid() {
			return false
		}
		if field.Kind() == reflect.Pointer {
			if field.IsNil() {
				return false
			}
			field = field.Elem()
		}
		if !reflect.DeepEqual(field.Interface(), want) {
			return false
		}
	}
	return true
}

// FilterVessels returns the vessels whose fields match.
func (d *Document) FilterVessels(match map[string]any) []*Vessel {
	var out []*Vessel
	for _, v := range d.Vessels {
		if matches(v, match) {
			out = append(out, v)
		}
	}
	return out
}

// FilterProteins returns the proteins whose fields match.
func (d *Document) FilterProteins(match map[string]any) []*Protein {
	var out []*Protein
	for _, p := range d.Proteins {
		if matches(p, match) {
			out = append(out, p)
		}
	}
	return out
}

// FilterComplexes returns the complexes whose fields match.
func (d *Document) FilterComplexes(match map[string]any) []*Complex {
	var out []*Complex
	for _, c := range d.Complexes {
		if matches(c, match) {
			out = append(out, c)
		}
	}
	return out
}

// FilterSmallMolecules returns the small molecules whose fields match.
func (d *Document) FilterSmallMolecules(match map[string]any) []*SmallMolecule {
	var out []*SmallMolecule
	for _, s := range d.SmallMolecules {
		if matches(s, match) {
			out = append(out, s)
		}
	}
	return out
}

// FilterReactions returns the reactions whose fields match.
func (d *Document) FilterReactions(match map[string]any) []*Reaction {
	var out []*Reaction
	for _, r := range d.Reactions {
		if matches(r, match) {
			out = append(out, r)
		}
	}
	return out
}

// FilterMeasurements returns the measurements whose fields match.
func (d *Document) FilterMeasurements(match map[string]any) []*Measurement {
	var out []*Measurement
	for _, m := range d.Measurements {
		if matches(m, match) {
			out = append(out, m)
		}
	}
	return out
}

// FilterParameters returns the parameters whose fields match.
func (d *Document) FilterParameters(match map[string]any) []*Parameter {
	var out []*Parameter
	for _, p := range d.Parameters {
		if matches(p, match) {
			out = append(out, p)
		}
	}
	return out
}
