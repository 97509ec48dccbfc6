package model

import (
	"time"

	"github.com/enzymeml/enzymeml-go/core/units"
)

// plain.go - The plain form: a fully value-typed mirror of the document with
// unit references rendered as canonical names, suitable for JSON or YAML
// marshalling and human inspection.

// Plain is the marshallable mirror of a Document.
type Plain struct {
	Name           string             `json:"name" yaml:"name"`
	Created        time.Time          `json:"created,omitempty" yaml:"created,omitempty"`
	Modified       time.Time          `json:"modified,omitempty" yaml:"modified,omitempty"`
	Creators       []PlainCreator     `json:"creators,omitempty" yaml:"creators,omitempty"`
	References     []string           `json:"references,omitempty" yaml:"references,omitempty"`
	Vessels        []PlainVessel      `json:"vessels,omitempty" yaml:"vessels,omitempty"`
	Proteins       []PlainProtein     `json:"proteins,omitempty" yaml:"proteins,omitempty"`
	Complexes      []PlainComplex     `json:"complexes,omitempty" yaml:"complexes,omitempty"`
	SmallMolecules []PlainMolecule    `json:"small_molecules,omitempty" yaml:"small_molecules,omitempty"`
	Reactions      []PlainReaction    `json:"reactions,omitempty" yaml:"reactions,omitempty"`
	Equations      []PlainEquation    `json:"equations,omitempty" yaml:"equations,omitempty"`
	Parameters     []PlainParameter   `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	Measurements   []PlainMeasurement `json:"measurements,omitempty" yaml:"measurements,omitempty"`
}

// PlainCreator mirrors Creator.
type PlainCreator struct {
	GivenName  string `json:"given_name" yaml:"given_name"`
	FamilyName string `json:"family_name" yaml:"family_name"`
	Mail       string `json:"mail,omitempty" yaml:"mail,omitempty"`
}

// PlainVessel mirrors Vessel with the unit as a canonical name.
type PlainVessel struct {
	ID       string  `json:"id" yaml:"id"`
	Name     string  `json:"name" yaml:"name"`
	Volume   float64 `json:"volume" yaml:"volume"`
	Unit     string  `json:"unit,omitempty" yaml:"unit,omitempty"`
	Constant bool    `json:"constant" yaml:"constant"`
}

// PlainProtein mirrors Protein.
type PlainProtein struct {
	ID            string   `json:"id" yaml:"id"`
	Name          string   `json:"name" yaml:"name"`
	VesselID      string   `json:"vessel_id,omitempty" yaml:"vessel_id,omitempty"`
	Constant      bool     `json:"constant" yaml:"constant"`
	Sequence      string   `json:"sequence,omitempty" yaml:"sequence,omitempty"`
	ECNumber      string   `json:"ecnumber,omitempty" yaml:"ecnumber,omitempty"`
	UniProtID     string   `json:"uniprotid,omitempty" yaml:"uniprotid,omitempty"`
	Organism      string   `json:"organism,omitempty" yaml:"organism,omitempty"`
	OrganismTaxID string   `json:"organism_tax_id,omitempty" yaml:"organism_tax_id,omitempty"`
	References    []string `json:"references,omitempty" yaml:"references,omitempty"`
}

// PlainComplex mirrors Complex.
type PlainComplex struct {
	ID           string   `json:"id" yaml:"id"`
	Name         string   `json:"name" yaml:"name"`
	VesselID     string   `json:"vessel_id,omitempty" yaml:"vessel_id,omitempty"`
	Constant     bool     `json:"constant" yaml:"constant"`
	Participants []string `json:"participants,omitempty" yaml:"participants,omitempty"`
}

// PlainMolecule mirrors SmallMolecule.
type PlainMolecule struct {
	ID              string   `json:"id" yaml:"id"`
	Name            string   `json:"name" yaml:"name"`
	VesselID        string   `json:"vessel_id,omitempty" yaml:"vessel_id,omitempty"`
	Constant        bool     `json:"constant" yaml:"constant"`
	CanonicalSMILES string   `json:"canonical_smiles,omitempty" yaml:"canonical_smiles,omitempty"`
	InChI           string   `json:"inchi,omitempty" yaml:"inchi,omitempty"`
	InChIKey        string   `json:"inchikey,omitempty" yaml:"inchikey,omitempty"`
	Synonyms        []string `json:"synonyms,omitempty" yaml:"synonyms,omitempty"`
}

// PlainElement mirrors ReactionElement.
type PlainElement struct {
	SpeciesID     string  `json:"species_id" yaml:"species_id"`
	Stoichiometry float64 `json:"stoichiometry" yaml:"stoichiometry"`
}

// PlainModifier mirrors ModifierElement.
type PlainModifier struct {
	SpeciesID string `json:"species_id" yaml:"species_id"`
	Role      string `json:"role" yaml:"role"`
}

// PlainReaction mirrors Reaction.
type PlainReaction struct {
	ID              string          `json:"id" yaml:"id"`
	Name            string          `json:"name" yaml:"name"`
	Reversible      bool            `json:"reversible" yaml:"reversible"`
	Reactants       []PlainElement  `json:"reactants,omitempty" yaml:"reactants,omitempty"`
	Products        []PlainElement  `json:"products,omitempty" yaml:"products,omitempty"`
	Modifiers       []PlainModifier `json:"modifiers,omitempty" yaml:"modifiers,omitempty"`
	KineticLaw      *PlainEquation  `json:"kinetic_law,omitempty" yaml:"kinetic_law,omitempty"`
	PH              *float64        `json:"ph,omitempty" yaml:"ph,omitempty"`
	Temperature     *float64        `json:"temperature,omitempty" yaml:"temperature,omitempty"`
	TemperatureUnit string          `json:"temperature_unit,omitempty" yaml:"temperature_unit,omitempty"`
}

// PlainEquation mirrors Equation.
type PlainEquation struct {
	SpeciesID  string   `json:"species_id,omitempty" yaml:"species_id,omitempty"`
	Type       string   `json:"type" yaml:"type"`
	Expression string   `json:"expression" yaml:"expression"`
	Unit       string   `json:"unit,omitempty" yaml:"unit,omitempty"`
	Variables  []string `json:"variables,omitempty" yaml:"variables,omitempty"`
}

// PlainParameter mirrors Parameter.
type PlainParameter struct {
	ID           string   `json:"id" yaml:"id"`
	Name         string   `json:"name" yaml:"name"`
	Symbol       string   `json:"symbol" yaml:"symbol"`
	Value        *float64 `json:"value,omitempty" yaml:"value,omitempty"`
	Unit         string   `json:"unit,omitempty" yaml:"unit,omitempty"`
	InitialValue *float64 `json:"initial_value,omitempty" yaml:"initial_value,omitempty"`
	UpperBound   *float64 `json:"upper_bound,omitempty" yaml:"upper_bound,omitempty"`
	LowerBound   *float64 `json:"lower_bound,omitempty" yaml:"lower_bound,omitempty"`
	StdErr       *float64 `json:"stderr,omitempty" yaml:"stderr,omitempty"`
	Fit          bool     `json:"fit" yaml:"fit"`
	Constant     bool     `json:"constant" yaml:"constant"`
}

// PlainSeries mirrors MeasurementData.
type PlainSeries struct {
	SpeciesID   string    `json:"species_id" yaml:"species_id"`
	Prepared    *float64  `json:"prepared,omitempty" yaml:"prepared,omitempty"`
	Initial     *float64  `json:"initial,omitempty" yaml:"initial,omitempty"`
	DataUnit    string    `json:"data_unit,omitempty" yaml:"data_unit,omitempty"`
	Time        []float64 `json:"time,omitempty" yaml:"time,omitempty"`
	Data        []float64 `json:"data,omitempty" yaml:"data,omitempty"`
	TimeUnit    string    `json:"time_unit,omitempty" yaml:"time_unit,omitempty"`
	DataType    string    `json:"data_type,omitempty" yaml:"data_type,omitempty"`
	IsSimulated bool      `json:"is_simulated" yaml:"is_simulated"`
}

// PlainMeasurement mirrors Measurement.
type PlainMeasurement struct {
	ID              string        `json:"id" yaml:"id"`
	Name            string        `json:"name" yaml:"name"`
	GroupID         string        `json:"group_id,omitempty" yaml:"group_id,omitempty"`
	PH              *float64      `json:"ph,omitempty" yaml:"ph,omitempty"`
	Temperature     *float64      `json:"temperature,omitempty" yaml:"temperature,omitempty"`
	TemperatureUnit string        `json:"temperature_unit,omitempty" yaml:"temperature_unit,omitempty"`
	SpeciesData     []PlainSeries `json:"species_data,omitempty" yaml:"species_data,omitempty"`
}

func unitName(def *units.Definition) string {
	if def == nil {
		return ""
	}
	if def.Name != "" {
		return def.Name
	}
	return def.CanonicalName()
}

func plainEquation(eq *Equation) *PlainEquation {
	if eq == nil {
		return nil
	}
	out := &PlainEquation{
		SpeciesID:  eq.SpeciesID,
		Type:       string(eq.Type),
		Expression: eq.Expression,
		Unit:       unitName(eq.Unit),
	}
	for _, v := range eq.Variables {
		out.Variables = append(out.Variables, v.Symbol)
	}
	return out
}

// ToPlain converts the document into its plain form.
func (d *Document) ToPlain() *Plain {
	out := &Plain{
		Name:       d.Name,
		Created:    d.Created,
		Modified:   d.Modified,
		References: append([]string(nil), d.References...),
	}
	for _, c := range d.Creators {
		out.Creators = append(out.Creators, PlainCreator{
			GivenName: c.GivenName, FamilyName: c.FamilyName, Mail: c.Mail,
		})
	}
	for _, v := range d.Vessels {
		out.Vessels = append(out.Vessels, PlainVessel{
			ID: v.ID, Name: v.Name, Volume: v.Volume,
			Unit: unitName(v.Unit), Constant: v.Constant,
		})
	}
	for _, p := range d.Proteins {
		out.Proteins = append(out.Proteins, PlainProtein{
			ID: p.ID, Name: p.Name, VesselID: p.VesselID, Constant: p.Constant,
			Sequence: p.Sequence, ECNumber: p.ECNumber, UniProtID: p.UniProtID,
			Organism: p.Organism, OrganismTaxID: p.OrganismTaxID,
			References: append([]string(nil), p.References...),
		})
	}
	for _, c := range d.Complexes {
		out.Complexes = append(out.Complexes, PlainComplex{
			ID: c.ID, Name: c.Name, VesselID: c.VesselID, Constant: c.Constant,
			Participants: append([]string(nil), c.Participants...),
		})
	}
	for _, s := range d.SmallMolecules {
		out.SmallMolecules = append(out.SmallMolecules, PlainMolecule{
			ID: s.ID, Name: s.Name, VesselID: s.VesselID, Constant: s.Constant,
			CanonicalSMILES: s.CanonicalSMILES, InChI: s.InChI, InChIKey: s.InChIKey,
			Synonyms: append([]string(nil), s.Synonyms...),
		})
	}
	for _, r := range d.Reactions {
		pr := PlainReaction{
			ID: r.ID, Name: r.Name, Reversible: r.Reversible,
			KineticLaw: plainEquation(r.KineticLaw),
			PH:         r.PH, Temperature: r.Temperature,
			TemperatureUnit: unitName(r.TemperatureUnit),
		}
		for _, el := range r.Reactants {
			pr.Reactants = append(pr.Reactants, PlainElement{SpeciesID: el.SpeciesID, Stoichiometry: el.Stoichiometry})
		}
		for _, el := range r.Products {
			pr.Products = append(pr.Products, PlainElement{SpeciesID: el.SpeciesID, Stoichiometry: el.Stoichiometry})
		}
		for _, el := range r.Modifiers {
			pr.Modifiers = append(pr.Modifiers, PlainModifier{SpeciesID: el.SpeciesID, Role: string(el.Role)})
		}
		out.Reactions = append(out.Reactions, pr)
	}
	for _, eq := range d.Equations {
		out.Equations = append(out.Equations, *plainEquation(eq))
	}
	for _, p := range d.Parameters {
		out.Parameters = append(out.Parameters, PlainParameter{
			ID: p.ID, Name: p.Name, Symbol: p.Symbol, Value: p.Value,
			Unit: unitName(p.Unit), InitialValue: p.InitialValue,
			UpperBound: p.UpperBound, LowerBound: p.LowerBound,
			StdErr: p.StdErr, Fit: p.Fit, Constant: p.Constant,
		})
	}
	for _, m := range d.Measurements {
		pm := PlainMeasurement{
			ID: m.ID, Name: m.Name, GroupID: m.GroupID,
			PH: m.PH, Temperature: m.Temperature,
			TemperatureUnit: unitName(m.TemperatureUnit),
		}
		for _, sd := range m.SpeciesData {
			pm.SpeciesData = append(pm.SpeciesData, PlainSeries{
				SpeciesID: sd.SpeciesID, Prepared: sd.Prepared, Initial: sd.Initial,
				DataUnit: unitName(sd.DataUnit),
				Time:     append([]float64(nil), sd.Time...),
				Data:     append([]float64(nil), sd.Data...),
				TimeUnit: unitName(sd.TimeUnit),
				DataType: string(sd.DataType), IsSimulated: sd.IsSimulated,
			})
		}
		out.Measurements = append(out.Measurements, pm)
	}
	return out
}
