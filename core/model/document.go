// Package model defines the in-memory document aggregate for enzyme-kinetics
// experiments: vessels, species, reactions, measurements, equations and
// parameters, together with the document-scoped unit table and identifier
// allocation.
package model

import (
	"time"

	"github.com/enzymeml/enzymeml-go/core/errors"
	"github.com/enzymeml/enzymeml-go/core/ident"
	"github.com/enzymeml/enzymeml-go/core/units"
)

// Document is the aggregate root. Collections preserve insertion order;
// identifiers are allocated per entity family when not supplied.
type Document struct {
	// Name is the document title.
	Name string `json:"name"`

	// Created is the creation timestamp.
	Created time.Time `json:"created,omitempty"`

	// Modified is the last-modification timestamp.
	Modified time.Time `json:"modified,omitempty"`

	// Creators lists the document authors.
	Creators []*Creator `json:"creators,omitempty"`

	// References holds free-text literature references.
	References []string `json:"references,omitempty"`

	// Vessels, Proteins, Complexes and SmallMolecules are the physical
	// entities of the experiment.
	Vessels        []*Vessel        `json:"vessels,omitempty"`
	Proteins       []*Protein       `json:"proteins,omitempty"`
	Complexes      []*Complex       `json:"complexes,omitempty"`
	SmallMolecules []*SmallMolecule `json:"small_molecules,omitempty"`

	// Reactions, Equations and Parameters describe the kinetics.
	Reactions  []*Reaction  `json:"reactions,omitempty"`
	Equations  []*Equation  `json:"equations,omitempty"`
	Parameters []*Parameter `json:"parameters,omitempty"`

	// Measurements holds the experimental runs.
	Measurements []*Measurement `json:"measurements,omitempty"`

	// UnitDefinitions is the document unit table, deduplicated by footprint.
	UnitDefinitions []*units.Definition `json:"unit_definitions,omitempty"`

	observer Observer
}

// New returns an empty document with the given name and the creation
// timestamp set.
func New(name string) *Document {
	now := time.Now().UTC()
	return &Document{Name: name, Created: now, Modified: now}
}

// Action names a mutation kind reported to observers.
type Action string

// Observer actions.
const (
	ActionAdd    Action = "add"
	ActionRemove Action = "remove"
)

// Event describes one document mutation.
type Event struct {
	// Action is the mutation kind.
	Action Action

	// Kind names the mutated entity family.
	Kind ident.EntityKind

	// ID is the identifier of the affected entity.
	ID string
}

// Observer receives document mutation events.
type Observer func(Event)

// SetObserver registers a mutation observer. A nil observer disables
// notification.
func (d *Document) SetObserver(obs Observer) {
	d.observer = obs
}

func (d *Document) notify(action Action, kind ident.EntityKind, id string) {
	d.Modified = time.Now().UTC()
	if d.observer != nil {
		d.observer(Event{Action: action, Kind: kind, ID: id})
	}
}

// usedIDs collects the identifiers currently in use by one entity family.
func (d *Document) usedIDs(kind ident.EntityKind) map[string]bool {
	used := map[string]bool{}
	switch kind {
	case ident.KindVessel:
		for _, v := range d.Vessels {
			used[v.ID] = true
		}
	case ident.KindProtein:
		for _, p := range d.Proteins {
			used[p.ID] = true
		}
	case ident.KindComplex:
		for _, c := range d.Complexes {
			used[c.ID] = true
		}
	case ident.KindSmallMolecule:
		for _, s := range d.SmallMolecules {
			used[s.ID] = true
		}
	case ident.KindReaction:
		for _, r := range d.Reactions {
			used[r.ID] = true
		}
	case ident.KindMeasurement:
		for _, m := range d.Measurements {
			used[m.ID] = true
		}
	case ident.KindUnit:
		for _, u := range d.UnitDefinitions {
			used[u.ID] = true
		}
	}
	return used
}

// assignID allocates an id when empty, otherwise verifies uniqueness.
func (d *Document) assignID(kind ident.EntityKind, id *string) error {
	used := d.usedIDs(kind)
	if *id == "" {
		*id = ident.Next(kind, used)
		return nil
	}
	if used[*id] {
		return errors.NewDuplicateIdentifier(string(kind), *id)
	}
	return nil
}

// RegisterUnit enters a unit definition into the document unit table,
// deduplicating by footprint. The returned definition is the table entry;
// when def is new its ID is assigned in place, when an equal definition is
// already present that one is returned and def is left untouched.
func (d *Document) RegisterUnit(def *units.Definition) *units.Definition {
	if def == nil {
		return nil
	}
	fp := def.Footprint()
	for _, existing := range d.UnitDefinitions {
		if existing.Footprint() == fp {
			return existing
		}
	}
	def.ID = ident.Next(ident.KindUnit, d.usedIDs(ident.KindUnit))
	if def.Name == "" {
		def.Name = def.CanonicalName()
	}
	d.UnitDefinitions = append(d.UnitDefinitions, def)
	d.notify(ActionAdd, ident.KindUnit, def.ID)
	return def
}

// ResolveUnit returns the unit table entry with the given id.
func (d *Document) ResolveUnit(id string) (*units.Definition, error) {
	for _, u := range d.UnitDefinitions {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, errors.NewReference("unit", id, "")
}

// AddCreator appends a document author.
func (d *Document) AddCreator(c *Creator) {
	d.Creators = append(d.Creators, c)
	d.Modified = time.Now().UTC()
}

// AddReference appends a free-text literature reference.
func (d *Document) AddReference(ref string) {
	d.References = append(d.References, ref)
	d.Modified = time.Now().UTC()
}

// AddVessel adds a vessel, allocating its id when empty. The vessel's unit
// is registered with the document unit table.
func (d *Document) AddVessel(v *Vessel) error {
	if err := d.assignID(ident.KindVessel, &v.ID); err != nil {
		return err
	}
	v.Unit = d.RegisterUnit(v.Unit)
	d.Vessels = append(d.Vessels, v)
	d.notify(ActionAdd, ident.KindVessel, v.ID)
	return nil
}

// AddProtein adds a protein species, allocating its id when empty. A
// non-empty vessel reference must resolve.
func (d *Document) AddProtein(p *Protein) error {
	if err := d.checkVesselRef(p.VesselID, "protein", p.ID); err != nil {
		return err
	}
	if err := d.assignID(ident.KindProtein, &p.ID); err != nil {
		return err
	}
	d.Proteins = append(d.Proteins, p)
	d.notify(ActionAdd, ident.KindProtein, p.ID)
	return nil
}

// AddComplex adds a complex species, allocating its id when empty.
// Participants and a non-empty vessel reference must resolve.
func (d *Document) AddComplex(c *Complex) error {
	if err := d.checkVesselRef(c.VesselID, "complex", c.ID); err != nil {
		return err
	}
	for _, pid := range c.Participants {
		if _, err := d.ResolveSpecies(pid); err != nil {
			return errors.NewReference("species", pid, "complex participant")
		}
	}
	if err := d.assignID(ident.KindComplex, &c.ID); err != nil {
		return err
	}
	d.Complexes = append(d.Complexes, c)
	d.notify(ActionAdd, ident.KindComplex, c.ID)
	return nil
}

// AddSmallMolecule adds a small-molecule species, allocating its id when
// empty. A non-empty vessel reference must resolve.
func (d *Document) AddSmallMolecule(s *SmallMolecule) error {
	if err := d.checkVesselRef(s.VesselID, "small molecule", s.ID); err != nil {
		return err
	}
	if err := d.assignID(ident.KindSmallMolecule, &s.ID); err != nil {
		return err
	}
	d.SmallMolecules = append(d.SmallMolecules, s)
	d.notify(ActionAdd, ident.KindSmallMolecule, s.ID)
	return nil
}

// AddReaction adds a reaction, allocating its id when empty. All participant
// species references must resolve.
func (d *Document) AddReaction(r *Reaction) error {
	for _, el := range r.Reactants {
		if _, err := d.ResolveSpecies(el.SpeciesID); err != nil {
			return errors.NewReference("species", el.SpeciesID, "reactant")
		}
	}
	for _, el := range r.Products {
		if _, err := d.ResolveSpecies(el.SpeciesID); err != nil {
			return errors.NewReference("species", el.SpeciesID, "product")
		}
	}
	for _, el := range r.Modifiers {
		if _, err := d.ResolveSpecies(el.SpeciesID); err != nil {
			return errors.NewReference("species", el.SpeciesID, "modifier")
		}
	}
	if err := d.assignID(ident.KindReaction, &r.ID); err != nil {
		return err
	}
	r.TemperatureUnit = d.RegisterUnit(r.TemperatureUnit)
	if r.KineticLaw != nil {
		r.KineticLaw.Unit = d.RegisterUnit(r.KineticLaw.Unit)
		if r.KineticLaw.SpeciesID == "" {
			r.KineticLaw.SpeciesID = r.ID
		}
	}
	d.Reactions = append(d.Reactions, r)
	d.notify(ActionAdd, ident.KindReaction, r.ID)
	return nil
}

// AddEquation adds a document-level equation. A non-empty species reference
// must resolve. Rate laws belong to a reaction, not the document.
func (d *Document) AddEquation(eq *Equation) error {
	if eq.Type == EquationRateLaw {
		return errors.NewValidation("type", "rate laws are attached to reactions, not the document")
	}
	if eq.SpeciesID != "" {
		if _, err := d.ResolveSpecies(eq.SpeciesID); err != nil {
			return errors.NewReference("species", eq.SpeciesID, "equation")
		}
	}
	eq.Unit = d.RegisterUnit(eq.Unit)
	d.Equations = append(d.Equations, eq)
	d.Modified = time.Now().UTC()
	return nil
}

// AddParameter adds a kinetic parameter. Both the id and the symbol must be
// unique across the document.
func (d *Document) AddParameter(p *Parameter) error {
	if p.ID == "" {
		p.ID = p.Symbol
	}
	for _, existing := range d.Parameters {
		if existing.ID == p.ID {
			return errors.NewDuplicateIdentifier("parameter", p.ID)
		}
		if p.Symbol != "" && existing.Symbol == p.Symbol {
			return errors.NewDuplicateIdentifier("parameter symbol", p.Symbol)
		}
	}
	p.Unit = d.RegisterUnit(p.Unit)
	d.Parameters = append(d.Parameters, p)
	d.Modified = time.Now().UTC()
	return nil
}

// AddMeasurement adds a measurement, allocating its id when empty. Every
// per-species series must reference a resolvable species.
func (d *Document) AddMeasurement(m *Measurement) error {
	for _, sd := range m.SpeciesData {
		if _, err := d.ResolveSpecies(sd.SpeciesID); err != nil {
			return errors.NewReference("species", sd.SpeciesID, "measurement "+m.ID)
		}
	}
	if err := d.assignID(ident.KindMeasurement, &m.ID); err != nil {
		return err
	}
	m.TemperatureUnit = d.RegisterUnit(m.TemperatureUnit)
	for _, sd := range m.SpeciesData {
		sd.DataUnit = d.RegisterUnit(sd.DataUnit)
		sd.TimeUnit = d.RegisterUnit(sd.TimeUnit)
	}
	d.Measurements = append(d.Measurements, m)
	d.notify(ActionAdd, ident.KindMeasurement, m.ID)
	return nil
}

func (d *Document) checkVesselRef(vesselID, kind, id string) error {
	if vesselID == "" {
		return nil
	}
	if _, err := d.ResolveVessel(vesselID); err != nil {
		return errors.NewReference("vessel", vesselID, kind+" "+id)
	}
	return nil
}

// ResolveVessel returns the vessel with the given id.
func (d *Document) ResolveVessel(id string) (*Vessel, error) {
	for _, v := range d.Vessels {
		if v.ID == id {
			return v, nil
		}
	}
	return nil, errors.NewReference("vessel", id, "")
}

// ResolveSpecies returns the protein, complex or small molecule with the
// given id.
func (d *Document) ResolveSpecies(id string) (Species, error) {
	for _, p := range d.Proteins {
		if p.ID == id {
			return p, nil
		}
	}
	for _, c := range d.Complexes {
		if c.ID == id {
			return c, nil
		}
	}
	for _, s := range d.SmallMolecules {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, errors.NewReference("species", id, "")
}

// ResolveReaction returns the reaction with the given id.
func (d *Document) ResolveReaction(id string) (*Reaction, error) {
	for _, r := range d.Reactions {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, errors.NewReference("reaction", id, "")
}

// ResolveMeasurement returns the measurement with the given id.
func (d *Document) ResolveMeasurement(id string) (*Measurement, error) {
	for _, m := range d.Measurements {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, errors.NewReference("measurement", id, "")
}

// ResolveParameter returns the parameter with the given id or symbol.
func (d *Document) ResolveParameter(id string) (*Parameter, error) {
	for _, p := range d.Parameters {
		if p.ID == id || p.Symbol == id {
			return p, nil
		}
	}
	return nil, errors.NewReference("parameter", id, "")
}

// RemoveVessel removes the vessel with the given id, freeing the id for
// reuse by a later AddVessel.
func (d *Document) RemoveVessel(id string) error {
	for i, v := range d.Vessels {
		if v.ID == id {
			d.Vessels = append(d.Vessels[:i], d.Vessels[i+1:]...)
			d.notify(ActionRemove, ident.KindVessel, id)
			return nil
		}
	}
	return errors.NewReference("vessel", id, "")
}

// RemoveProtein removes the protein with the given id.
func (d *Document) RemoveProtein(id string) error {
	for i, p := range d.Proteins {
		if p.ID == id {
			d.Proteins = append(d.Proteins[:i], d.Proteins[i+1:]...)
			d.notify(ActionRemove, ident.KindProtein, id)
			return nil
		}
	}
	return errors.NewReference("protein", id, "")
}

// RemoveComplex removes the complex with the given id.
func (d *Document) RemoveComplex(id string) error {
	for i, c := range d.Complexes {
		if c.ID == id {
			d.Complexes = append(d.Complexes[:i], d.Complexes[i+1:]...)
			d.notify(ActionRemove, ident.KindComplex, id)
			return nil
		}
	}
	return errors.NewReference("complex", id, "")
}

// RemoveSmallMolecule removes the small molecule with the given id.
func (d *Document) RemoveSmallMolecule(id string) error {
	for i, s := range d.SmallMolecules {
		if s.ID == id {
			d.SmallMolecules = append(d.SmallMolecules[:i], d.SmallMolecules[i+1:]...)
			d.notify(ActionRemove, ident.KindSmallMolecule, id)
			return nil
		}
	}
	return errors.NewReference("small molecule", id, "")
}

// RemoveReaction removes the reaction with the given id.
func (d *Document) RemoveReaction(id string) error {
	for i, r := range d.Reactions {
		if r.ID == id {
			d.Reactions = append(d.Reactions[:i], d.Reactions[i+1:]...)
			d.notify(ActionRemove, ident.KindReaction, id)
			return nil
		}
	}
	return errors.NewReference("reaction", id, "")
}

// RemoveMeasurement removes the measurement with the given id.
func (d *Document) RemoveMeasurement(id string) error {
	for i, m := range d.Measurements {
		if m.ID == id {
			d.Measurements = append(d.Measurements[:i], d.Measurements[i+1:]...)
			d.notify(ActionRemove, ident.KindMeasurement, id)
			return nil
		}
	}
	return errors.NewReference("measurement", id, "")
}

// RemoveParameter removes the parameter with the given id.
func (d *Document) RemoveParameter(id string) error {
	for i, p := range d.Parameters {
		if p.ID == id {
			d.Parameters = append(d.Parameters[:i], d.Parameters[i+1:]...)
			d.Modified = time.Now().UTC()
			return nil
		}
	}
	return errors.NewReference("parameter", id, "")
}
