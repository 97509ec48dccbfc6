package model

import (
	"github.com/enzymeml/enzymeml-go/core/errors"
	"github.com/enzymeml/enzymeml-go/core/expr"
	"github.com/enzymeml/enzymeml-go/core/units"
)

// AddReactant appends a consumed species to the reaction. A zero
// stoichiometry defaults to 1.
func (r *Reaction) AddReactant(speciesID string, stoichiometry float64) {
	if stoichiometry == 0 {
		stoichiometry = 1
	}
	r.Reactants = append(r.Reactants, ReactionElement{SpeciesID: speciesID, Stoichiometry: stoichiometry})
}

// AddProduct appends a produced species to the reaction. A zero
// stoichiometry defaults to 1.
func (r *Reaction) AddProduct(speciesID string, stoichiometry float64) {
	if stoichiometry == 0 {
		stoichiometry = 1
	}
	r.Products = append(r.Products, ReactionElement{SpeciesID: speciesID, Stoichiometry: stoichiometry})
}

// AddModifier appends a modifier species with its role.
func (r *Reaction) AddModifier(speciesID string, role ModifierRole) error {
	if !role.IsValid() {
		return errors.NewValidation("modifier role", string(role)+" is not a known role")
	}
	r.Modifiers = append(r.Modifiers, ModifierElement{SpeciesID: speciesID, Role: role})
	return nil
}

// AttachKineticLaw sets the reaction's rate equation. The expression is
// parsed and its symbols populate the equation's variables; a symbol that
// already has a variable entry keeps it.
func (r *Reaction) AttachKineticLaw(expression string, unit *units.Definition) error {
	symbols, err := expr.Symbols(expression)
	if err != nil {
		return errors.NewValidation("kinetic law", err.Error())
	}
	eq := &Equation{
		SpeciesID:  r.ID,
		Type:       EquationRateLaw,
		Expression: expression,
		Unit:       unit,
	}
	for _, sym := range symbols {
		eq.Variables = append(eq.Variables, Variable{ID: sym, Name: sym, Symbol: sym})
	}
	r.KineticLaw = eq
	return nil
}

// SetConditions records the experimental pH and temperature the reaction was
// observed under.
func (r *Reaction) SetConditions(ph, temperature float64, tempUnit *units.Definition) {
	r.PH = Float(ph)
	r.Temperature = Float(temperature)
	r.TemperatureUnit = tempUnit
}

// CheckExpressions verifies that every symbol used by the document's
// equations and kinetic laws resolves to a species identifier, a parameter
// symbol, or a declared equation variable. It is a caller-facing validator;
// nothing in the document calls it implicitly.
func (d *Document) CheckExpressions() error {
	known := map[string]bool{"t": true, "time": true}
	for _, p := range d.Proteins {
		known[p.ID] = true
	}
	for _, c := range d.Complexes {
		known[c.ID] = true
	}
	for _, s := range d.SmallMolecules {
		known[s.ID] = true
	}
	for _, p := range d.Parameters {
		if p.Symbol != "" {
			known[p.Symbol] = true
		}
		known[p.ID] = true
	}

	check := func(eq *Equation, where string) error {
		symbols, err := expr.Symbols(eq.Expression)
		if err != nil {
			return errors.NewValidation(where, err.Error())
		}
		declared := map[string]bool{}
		for _, v := range eq.Variables {
			declared[v.Symbol] = true
		}
		for _, sym := range symbols {
			if !known[sym] && !declared[sym] {
				return errors.NewValidation(where, "symbol "+sym+" does not resolve")
			}
		}
		return nil
	}

	for _, eq := range d.Equations {
		if err := check(eq, "equation "+eq.SpeciesID); err != nil {
			return err
		}
	}
	for _, r := range d.Reactions {
		if r.KineticLaw != nil {
			if err := check(r.KineticLaw, "kinetic law of "+r.ID); err != nil {
				return err
			}
		}
	}
	return nil
}
