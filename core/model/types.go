package model

// types.go - Consolidated entity type definitions for enzyme-kinetics
// documents. All serialization layers should import these types from
// core/model rather than defining their own.

import (
	"github.com/enzymeml/enzymeml-go/core/units"
)

// Creator identifies a person who authored the document.
type Creator struct {
	// GivenName is the creator's given name.
	GivenName string `json:"given_name"`

	// FamilyName is the creator's family name.
	FamilyName string `json:"family_name"`

	// Mail is the creator's contact address.
	Mail string `json:"mail,omitempty"`
}

// Vessel is a reaction compartment with a fixed volume.
type Vessel struct {
	// ID is the vessel identifier (prefix "v").
	ID string `json:"id"`

	// Name is the human-readable vessel name.
	Name string `json:"name"`

	// Volume is the vessel volume in Unit.
	Volume float64 `json:"volume"`

	// Unit is the volume unit.
	Unit *units.Definition `json:"unit,omitempty"`

	// Constant indicates whether the volume stays fixed over time.
	Constant bool `json:"constant"`
}

// NewVessel returns a vessel with the constant flag set; vessels are
// assumed non-varying unless stated otherwise.
func NewVessel(name string, volume float64, unit *units.Definition) *Vessel {
	return &Vessel{Name: name, Volume: volume, Unit: unit, Constant: true}
}

// Species is implemented by every entity that can take part in a reaction
// or carry measured data: proteins, complexes and small molecules.
type Species interface {
	// SpeciesID returns the entity identifier.
	SpeciesID() string

	// SpeciesName returns the human-readable name.
	SpeciesName() string
}

// Protein is an enzyme or other protein species.
type Protein struct {
	// ID is the protein identifier (prefix "p").
	ID string `json:"id"`

	// Name is the human-readable protein name.
	Name string `json:"name"`

	// VesselID references the vessel the protein resides in.
	VesselID string `json:"vessel_id,omitempty"`

	// Constant indicates whether the amount stays fixed over time.
	Constant bool `json:"constant"`

	// Sequence is the amino-acid sequence.
	Sequence string `json:"sequence,omitempty"`

	// ECNumber is the enzyme-classification number.
	ECNumber string `json:"ecnumber,omitempty"`

	// UniProtID is the UniProt accession.
	UniProtID string `json:"uniprotid,omitempty"`

	// Organism is the source organism name.
	Organism string `json:"organism,omitempty"`

	// OrganismTaxID is the taxonomy identifier of the organism.
	OrganismTaxID string `json:"organism_tax_id,omitempty"`

	// References holds free-text literature references.
	References []string `json:"references,omitempty"`
}

// SpeciesID implements Species.
func (p *Protein) SpeciesID() string { return p.ID }

// SpeciesName implements Species.
func (p *Protein) SpeciesName() string { return p.Name }

// Complex is a grouping of participant species, typically an
// enzyme-substrate complex.
type Complex struct {
	// ID is the complex identifier (prefix "c").
	ID string `json:"id"`

	// Name is the human-readable complex name.
	Name string `json:"name"`

	// VesselID references the vessel the complex resides in.
	VesselID string `json:"vessel_id,omitempty"`

	// Constant indicates whether the amount stays fixed over time.
	Constant bool `json:"constant"`

	// Participants lists the species ids bound in the complex.
	Participants []string `json:"participants,omitempty"`
}

// SpeciesID implements Species.
func (c *Complex) SpeciesID() string { return c.ID }

// SpeciesName implements Species.
func (c *Complex) SpeciesName() string { return c.Name }

// SmallMolecule is a substrate, product or other small chemical species.
type SmallMolecule struct {
	// ID is the small-molecule identifier (prefix "s").
	ID string `json:"id"`

	// Name is the human-readable molecule name.
	Name string `json:"name"`

	// VesselID references the vessel the molecule resides in.
	VesselID string `json:"vessel_id,omitempty"`

	// Constant indicates whether the amount stays fixed over time.
	Constant bool `json:"constant"`

	// CanonicalSMILES is the canonical structure notation.
	CanonicalSMILES string `json:"canonical_smiles,omitempty"`

	// InChI is the structural identifier.
	InChI string `json:"inchi,omitempty"`

	// InChIKey is the hashed structural identifier.
	InChIKey string `json:"inchikey,omitempty"`

	// Synonyms holds alternative molecule names.
	Synonyms []string `json:"synonyms,omitempty"`

	// References holds free-text literature references.
	References []string `json:"references,omitempty"`
}

// SpeciesID implements Species.
func (s *SmallMolecule) SpeciesID() string { return s.ID }

// SpeciesName implements Species.
func (s *SmallMolecule) SpeciesName() string { return s.Name }

// ModifierRole classifies how a modifier species affects a reaction.
type ModifierRole string

// Modifier roles.
const (
	RoleActivator   ModifierRole = "activator"
	RoleAdditive    ModifierRole = "additive"
	RoleBiocatalyst ModifierRole = "biocatalyst"
	RoleCatalyst    ModifierRole = "catalyst"
	RoleInhibitor   ModifierRole = "inhibitor"
	RoleSolvent     ModifierRole = "solvent"
	RoleBuffer      ModifierRole = "buffer"
)

// validRoles is the set of valid modifier roles.
var validRoles = map[ModifierRole]bool{
	RoleActivator: true, RoleAdditive: true, RoleBiocatalyst: true,
	RoleCatalyst: true, RoleInhibitor: true, RoleSolvent: true,
	RoleBuffer: true,
}

// IsValid returns true if the role is a known modifier role.
func (r ModifierRole) IsValid() bool {
	return validRoles[r]
}

// ReactionElement is a stoichiometric participant on one side of a reaction.
type ReactionElement struct {
	// SpeciesID references the participating species.
	SpeciesID string `json:"species_id"`

	// Stoichiometry is the stoichiometric coefficient (1.0 when omitted).
	Stoichiometry float64 `json:"stoichiometry"`
}

// ModifierElement is a non-stoichiometric reaction participant.
type ModifierElement struct {
	// SpeciesID references the modifying species.
	SpeciesID string `json:"species_id"`

	// Role classifies the modifier's effect.
	Role ModifierRole `json:"role"`
}

// Reaction is a chemical transformation between species.
type Reaction struct {
	// ID is the reaction identifier (prefix "r").
	ID string `json:"id"`

	// Name is the human-readable reaction name.
	Name string `json:"name"`

	// Reversible indicates whether the reaction runs in both directions.
	Reversible bool `json:"reversible"`

	// Reactants are the consumed species, in insertion order.
	Reactants []ReactionElement `json:"reactants,omitempty"`

	// Products are the produced species, in insertion order.
	Products []ReactionElement `json:"products,omitempty"`

	// Modifiers are species that affect the rate without being consumed.
	Modifiers []ModifierElement `json:"modifiers,omitempty"`

	// KineticLaw is the optional rate equation.
	KineticLaw *Equation `json:"kinetic_law,omitempty"`

	// PH is the optional experimental pH condition.
	PH *float64 `json:"ph,omitempty"`

	// Temperature is the optional experimental temperature condition.
	Temperature *float64 `json:"temperature,omitempty"`

	// TemperatureUnit is the unit of Temperature.
	TemperatureUnit *units.Definition `json:"temperature_unit,omitempty"`
}

// EquationType classifies what an equation describes.
type EquationType string

// Equation types.
const (
	EquationODE               EquationType = "ode"
	EquationAssignment        EquationType = "assignment"
	EquationInitialAssignment EquationType = "initialAssignment"
	EquationRateLaw           EquationType = "rateLaw"
)

// validEquationTypes is the set of valid equation types.
var validEquationTypes = map[EquationType]bool{
	EquationODE: true, EquationAssignment: true,
	EquationInitialAssignment: true, EquationRateLaw: true,
}

// IsValid returns true if the equation type is valid.
func (e EquationType) IsValid() bool {
	return validEquationTypes[e]
}

// Variable is a symbol appearing in an equation's expression.
type Variable struct {
	// ID is the symbol identifier.
	ID string `json:"id"`

	// Name is the human-readable symbol name.
	Name string `json:"name,omitempty"`

	// Symbol is the text the symbol appears as in the expression.
	Symbol string `json:"symbol"`
}

// Equation binds a mathematical expression to a species or rate.
type Equation struct {
	// SpeciesID is the left-hand-side species for ODEs and assignments.
	SpeciesID string `json:"species_id,omitempty"`

	// Type classifies the equation.
	Type EquationType `json:"type"`

	// Expression is the right-hand-side expression text.
	Expression string `json:"expression"`

	// Unit is the optional unit of the expression's value.
	Unit *units.Definition `json:"unit,omitempty"`

	// Variables lists the symbols appearing in the expression.
	Variables []Variable `json:"variables,omitempty"`
}

// DataType classifies what quantity a measured series records.
type DataType string

// Data types.
const (
	DataConcentration DataType = "conc"
	DataAbsorbance    DataType = "abs"
	DataFluorescence  DataType = "fluor"
	DataPeakArea      DataType = "peak-area"
	DataAmount        DataType = "amount"
)

// MeasurementData is one species' measured time series within a measurement.
type MeasurementData struct {
	// SpeciesID references the measured species.
	SpeciesID string `json:"species_id"`

	// Prepared is the prepared amount before the run, if recorded.
	Prepared *float64 `json:"prepared,omitempty"`

	// Initial is the amount at the start of the run, if recorded.
	Initial *float64 `json:"initial,omitempty"`

	// DataUnit is the unit of Data and Initial.
	DataUnit *units.Definition `json:"data_unit,omitempty"`

	// Time holds the sample times, aligned with Data.
	Time []float64 `json:"time,omitempty"`

	// Data holds the sampled values, aligned with Time.
	Data []float64 `json:"data,omitempty"`

	// TimeUnit is the unit of Time.
	TimeUnit *units.Definition `json:"time_unit,omitempty"`

	// DataType classifies the recorded quantity.
	DataType DataType `json:"data_type,omitempty"`

	// IsSimulated marks series produced by a model rather than an instrument.
	IsSimulated bool `json:"is_simulated"`
}

// Measurement is one experimental run with per-species time series.
type Measurement struct {
	// ID is the measurement identifier (prefix "m").
	ID string `json:"id"`

	// Name is the human-readable measurement name.
	Name string `json:"name"`

	// SpeciesData holds the per-species series, in insertion order.
	SpeciesData []*MeasurementData `json:"species_data,omitempty"`

	// GroupID groups replicate measurements.
	GroupID string `json:"group_id,omitempty"`

	// PH is the optional experimental pH condition.
	PH *float64 `json:"ph,omitempty"`

	// Temperature is the optional experimental temperature condition.
	Temperature *float64 `json:"temperature,omitempty"`

	// TemperatureUnit is the unit of Temperature.
	TemperatureUnit *units.Definition `json:"temperature_unit,omitempty"`
}

// Parameter is a named kinetic constant, estimated or fixed.
type Parameter struct {
	// ID is the parameter identifier (free form, unique).
	ID string `json:"id"`

	// Name is the human-readable parameter name.
	Name string `json:"name"`

	// Symbol is the text the parameter appears as in expressions.
	// Symbols are unique across a document.
	Symbol string `json:"symbol"`

	// Value is the estimated or assigned value.
	Value *float64 `json:"value,omitempty"`

	// Unit is the unit of Value.
	Unit *units.Definition `json:"unit,omitempty"`

	// InitialValue is the starting value for estimation.
	InitialValue *float64 `json:"initial_value,omitempty"`

	// UpperBound constrains estimation from above.
	UpperBound *float64 `json:"upper_bound,omitempty"`

	// LowerBound constrains estimation from below.
	LowerBound *float64 `json:"lower_bound,omitempty"`

	// StdErr is the standard error of the estimate.
	StdErr *float64 `json:"stderr,omitempty"`

	// Fit indicates whether the parameter is subject to estimation.
	Fit bool `json:"fit"`

	// Constant indicates whether the value stays fixed over time.
	Constant bool `json:"constant"`
}

// Float returns a pointer to v. Optional numeric fields are pointers so the
// wire layers can distinguish absent from zero.
func Float(v float64) *float64 {
	return &v
}
