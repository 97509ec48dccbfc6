// Package units implements the composable unit-of-measure algebra used by
// enzyme-kinetics documents: base unit terms, definition composition,
// canonical naming, and the order-independent footprint that underlies
// structural deduplication.
package units

import (
	"sort"
	"strconv"
	"strings"

	"github.com/enzymeml/enzymeml-go/core/errors"
)

// Kind identifies a base unit kind from the SBML unit-kind set.
type Kind string

// Base unit kinds.
const (
	KindAmpere        Kind = "ampere"
	KindBecquerel     Kind = "becquerel"
	KindCandela       Kind = "candela"
	KindCelsius       Kind = "celsius"
	KindCoulomb       Kind = "coulomb"
	KindDimensionless Kind = "dimensionless"
	KindFarad         Kind = "farad"
	KindGram          Kind = "gram"
	KindGray          Kind = "gray"
	KindHenry         Kind = "henry"
	KindHertz         Kind = "hertz"
	KindItem          Kind = "item"
	KindJoule         Kind = "joule"
	KindKatal         Kind = "katal"
	KindKelvin        Kind = "kelvin"
	KindKilogram      Kind = "kilogram"
	KindLitre         Kind = "litre"
	KindLumen         Kind = "lumen"
	KindLux           Kind = "lux"
	KindMetre         Kind = "metre"
	KindMole          Kind = "mole"
	KindNewton        Kind = "newton"
	KindOhm           Kind = "ohm"
	KindPascal        Kind = "pascal"
	KindRadian        Kind = "radian"
	KindSecond        Kind = "second"
	KindSiemens       Kind = "siemens"
	KindSievert       Kind = "sievert"
	KindSteradian     Kind = "steradian"
	KindTesla         Kind = "tesla"
	KindVolt          Kind = "volt"
	KindWatt          Kind = "watt"
	KindWeber         Kind = "weber"
)

// validKinds is the set of accepted base unit kinds.
var validKinds = map[Kind]bool{
	KindAmpere: true, KindBecquerel: true, KindCandela: true, KindCelsius: true,
	KindCoulomb: true, KindDimensionless: true, KindFarad: true, KindGram: true,
	KindGray: true, KindHenry: true, KindHertz: true, KindItem: true,
	KindJoule: true, KindKatal: true, KindKelvin: true, KindKilogram: true,
	KindLitre: true, KindLumen: true, KindLux: true, KindMetre: true,
	KindMole: true, KindNewton: true, KindOhm: true, KindPascal: true,
	KindRadian: true, KindSecond: true, KindSiemens: true, KindSievert: true,
	KindSteradian: true, KindTesla: true, KindVolt: true, KindWatt: true,
	KindWeber: true,
}

// IsValid returns true if the kind is a known base unit kind.
func (k Kind) IsValid() bool {
	return validKinds[k]
}

// ParseKind converts a wire-format kind string into a Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(s))
	if !k.IsValid() {
		return "", errors.NewUnitKind(s)
	}
	return k, nil
}

// shortNames maps kinds onto the short symbols used in canonical names.
// Kinds without an entry render as their capitalized name.
var shortNames = map[Kind]string{
	KindLitre:  "l",
	KindMole:   "mol",
	KindSecond: "s",
	KindGram:   "g",
	KindKelvin: "K",
}

// Symbol returns the short rendering symbol for the kind.
func (k Kind) Symbol() string {
	if s, ok := shortNames[k]; ok {
		return s
	}
	return strings.ToUpper(string(k[:1])) + string(k[1:])
}

// prefixScales is the fixed prefix set accepted by the algebra.
var prefixScales = map[string]int{
	"k": 3,
	"m": -3,
	"u": -6,
	"n": -9,
}

// ParsePrefix maps a prefix string onto its decimal scale exponent.
// Only k, m, u and n are accepted; the empty prefix maps to scale 0.
func ParsePrefix(prefix string) (int, error) {
	if prefix == "" {
		return 0, nil
	}
	scale, ok := prefixScales[prefix]
	if !ok {
		return 0, errors.NewUnknownPrefix(prefix)
	}
	return scale, nil
}

// prefixForScale returns the prefix symbol for a scale exponent, or "" when
// the scale has no symbol (including the absent scale 0).
func prefixForScale(scale int) string {
	switch scale {
	case 3:
		return "k"
	case -3:
		return "m"
	case -6:
		return "u"
	case -9:
		return "n"
	}
	return ""
}

// BaseUnit is a single term of a unit definition. The exponent sign encodes
// numerator (positive) versus denominator (negative) position. Scale is a
// decimal exponent (0 = absent); Multiplier is a linear factor (0 = absent).
type BaseUnit struct {
	Kind       Kind
	Exponent   int
	Scale      int
	Multiplier float64
}

// Pow returns a copy of the term with the given exponent.
func (b BaseUnit) Pow(exponent int) BaseUnit {
	b.Exponent = exponent
	return b
}

// Scaled returns a copy of the term with the given decimal scale.
func (b BaseUnit) Scaled(scale int) BaseUnit {
	b.Scale = scale
	return b
}

// Inverse returns a copy of the term with the exponent sign flipped.
func (b BaseUnit) Inverse() BaseUnit {
	b.Exponent = -b.Exponent
	return b
}

// Definition is an ordered list of base unit terms. The ID is assigned when
// the definition is registered with a document's unit table; unregistered
// definitions have an empty ID.
type Definition struct {
	ID        string
	Name      string
	BaseUnits []BaseUnit
}

// New composes a definition from base unit terms and sets its canonical name.
func New(terms ...BaseUnit) *Definition {
	d := &Definition{BaseUnits: terms}
	d.Name = d.CanonicalName()
	return d
}

// Clone returns a deep copy of the definition.
func (d *Definition) Clone() *Definition {
	if d == nil {
		return nil
	}
	out := &Definition{ID: d.ID, Name: d.Name}
	out.BaseUnits = append([]BaseUnit(nil), d.BaseUnits...)
	return out
}

// Per divides the definition by the given terms: the divisor terms are
// appended with negated exponents. The result is a new, unregistered
// definition.
func (d *Definition) Per(terms ...BaseUnit) *Definition {
	out := d.Clone()
	out.ID = ""
	for _, t := range terms {
		if t.Exponent > 0 {
			t.Exponent = -t.Exponent
		}
		out.BaseUnits = append(out.BaseUnits, t)
	}
	out.Name = out.CanonicalName()
	return out
}

// Times multiplies the definition by the given terms.
func (d *Definition) Times(terms ...BaseUnit) *Definition {
	out := d.Clone()
	out.ID = ""
	out.BaseUnits = append(out.BaseUnits, terms...)
	out.Name = out.CanonicalName()
	return out
}

// CanonicalName renders the human-readable name of the definition:
// positive-exponent terms are grouped before a "/", negative-exponent terms
// after it, each term as <prefix><symbol>[^n] with ^n only when |n| != 1.
// The rendering is stable under term reordering.
func (d *Definition) CanonicalName() string {
	var numerator, denominator []string
	for _, b := range sortedTerms(d.BaseUnits) {
		s := prefixForScale(b.Scale) + termSymbol(b) + exponentSuffix(b.Exponent)
		if b.Exponent >= 0 {
			numerator = append(numerator, s)
		} else {
			denominator = append(denominator, s)
		}
	}

	num := strings.Join(numerator, " ")
	den := strings.Join(denominator, " ")
	switch {
	case num != "" && den != "":
		return num + " / " + den
	case num != "":
		return num
	case den != "":
		return "1 / " + den
	}
	return ""
}

// sortedTerms returns the terms ordered by kind, then exponent descending,
// then scale. Name rendering and footprints both rely on this ordering so
// that term order in the source definition never matters.
func sortedTerms(terms []BaseUnit) []BaseUnit {
	out := append([]BaseUnit(nil), terms...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Kind != out[j].Kind {
			return out[i].Kind < out[j].Kind
		}
		if out[i].Exponent != out[j].Exponent {
			return out[i].Exponent > out[j].Exponent
		}
		return out[i].Scale < out[j].Scale
	})
	return out
}

// termSymbol renders a term's kind symbol, using the conventional symbol
// for multiplier-scaled seconds (min, h, d) so a minute axis does not read
// as plain seconds.
func termSymbol(b BaseUnit) string {
	if b.Kind == KindSecond {
		switch b.Multiplier {
		case 60:
			return "min"
		case 3600:
			return "h"
		case 86400:
			return "d"
		}
	}
	return b.Kind.Symbol()
}

func exponentSuffix(exponent int) string {
	if exponent == 1 || exponent == -1 {
		return ""
	}
	if exponent < 0 {
		exponent = -exponent
	}
	return "^" + strconv.Itoa(exponent)
}

// Footprint is the order-independent multiset representation of a
// definition's terms, rendered as a comparable string. Two definitions are
// semantically equal iff their footprints are equal.
type Footprint string

// Footprint computes the definition's footprint from its (kind, exponent)
// pairs, ignoring the id and name.
func (d *Definition) Footprint() Footprint {
	parts := make([]string, 0, len(d.BaseUnits))
	for _, b := range d.BaseUnits {
		part := string(b.Kind) + "^" + strconv.Itoa(b.Exponent)
		if b.Scale != 0 {
			part += "e" + strconv.Itoa(b.Scale)
		}
		if b.Multiplier != 0 {
			part += "x" + strconv.FormatFloat(b.Multiplier, 'g', -1, 64)
		}
		parts = append(parts, part)
	}
	sort.Strings(parts)
	return Footprint(strings.Join(parts, "|"))
}

// Equal reports footprint equality between two definitions.
func (d *Definition) Equal(other *Definition) bool {
	if d == nil || other == nil {
		return d == other
	}
	return d.Footprint() == other.Footprint()
}
