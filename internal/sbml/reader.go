package sbml

import (
	"bytes"
	"strconv"

	"github.com/enzymeml/enzymeml-go/core/errors"
	"github.com/enzymeml/enzymeml-go/core/ident"
	"github.com/enzymeml/enzymeml-go/core/model"
	"github.com/enzymeml/enzymeml-go/core/units"
	"github.com/enzymeml/enzymeml-go/core/xmltree"
	"github.com/enzymeml/enzymeml-go/internal/annotation"
	"github.com/enzymeml/enzymeml-go/internal/logging"
	"github.com/enzymeml/enzymeml-go/internal/tabular"
)

// Read parses a serialized document. The sidecar map is keyed by location,
// as referenced from the tabular annotation. Malformed structure, unknown
// identifiers and broken sidecars all abort the read; no partial document is
// returned.
func Read(out *Output) (*model.Document, error) {
	tree, err := xmltree.Parse(out.Model)
	if err != nil {
		return nil, errors.NewMalformed("", err.Error())
	}
	root := tree.Root()
	if root == nil || root.Name() != "sbml" {
		return nil, errors.NewMalformed("/", "root element is not sbml")
	}
	me := root.Child("model")
	if me == nil {
		return nil, errors.NewMalformed(root.Path(), "missing model element")
	}

	doc := &model.Document{Name: me.Attr("name")}

	unitsByID, err := readUnits(doc, me)
	if err != nil {
		return nil, err
	}
	if err := readCompartments(doc, me, unitsByID); err != nil {
		return nil, err
	}
	if err := readSpecies(doc, me); err != nil {
		return nil, err
	}
	if err := readParameters(doc, me, unitsByID); err != nil {
		return nil, err
	}
	if err := readEquations(doc, me, unitsByID); err != nil {
		return nil, err
	}
	if err := readReactions(doc, me, unitsByID); err != nil {
		return nil, err
	}
	if err := readMeasurements(doc, me, unitsByID, out.Data); err != nil {
		return nil, err
	}
	readDocumentAnnotation(doc, me)

	species := len(doc.Proteins) + len(doc.Complexes) + len(doc.SmallMolecules)
	logging.DocumentRead(doc.Name, species, len(doc.Measurements))
	return doc, nil
}

func attrFloat(n *xmltree.Node, name string) (float64, error) {
	raw := n.Attr(name)
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errors.NewMalformed(n.Path(), "attribute "+name+" is not a number: "+raw)
	}
	return v, nil
}

func attrFloatOpt(n *xmltree.Node, name string) (*float64, error) {
	if !n.HasAttr(name) {
		return nil, nil
	}
	v, err := attrFloat(n, name)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func attrBool(n *xmltree.Node, name string) (bool, error) {
	if !n.HasAttr(name) {
		return false, nil
	}
	v, err := strconv.ParseBool(n.Attr(name))
	if err != nil {
		return false, errors.NewMalformed(n.Path(), "attribute "+name+" is not a boolean: "+n.Attr(name))
	}
	return v, nil
}

func lookupUnit(n *xmltree.Node, unitsByID map[string]*units.Definition, id string) (*units.Definition, error) {
	if id == "" {
		return nil, nil
	}
	def, ok := unitsByID[id]
	if !ok {
		return nil, errors.NewMalformed(n.Path(), "unknown unit "+id)
	}
	return def, nil
}

func readUnits(doc *model.Document, me *xmltree.Node) (map[string]*units.Definition, error) {
	byID := map[string]*units.Definition{}
	list := me.Child("listOfUnitDefinitions")
	if list == nil {
		return byID, nil
	}
	for _, ud := range list.ChildAll("unitDefinition") {
		id := ud.Attr("id")
		if id == "" {
			return nil, errors.NewMalformed(ud.Path(), "unitDefinition needs an id attribute")
		}
		if _, dup := byID[id]; dup {
			return nil, errors.NewMalformed(ud.Path(), "duplicate unit id "+id)
		}
		def := &units.Definition{ID: id, Name: ud.Attr("name")}
		lou := ud.Child("listOfUnits")
		if lou == nil {
			return nil, errors.NewMalformed(ud.Path(), "unitDefinition needs a listOfUnits")
		}
		for _, ue := range lou.ChildAll("unit") {
			kind, err := units.ParseKind(ue.Attr("kind"))
			if err != nil {
				return nil, errors.NewMalformed(ue.Path(), err.Error())
			}
			if !ue.HasAttr("exponent") {
				return nil, errors.NewMalformed(ue.Path(), "unit needs an exponent attribute")
			}
			exponent, err := strconv.Atoi(ue.Attr("exponent"))
			if err != nil {
				return nil, errors.NewMalformed(ue.Path(), "exponent is not a number: "+ue.Attr("exponent"))
			}
			b := units.BaseUnit{Kind: kind, Exponent: exponent}
			if ue.HasAttr("scale") {
				b.Scale, err = strconv.Atoi(ue.Attr("scale"))
				if err != nil {
					return nil, errors.NewMalformed(ue.Path(), "scale is not a number: "+ue.Attr("scale"))
				}
			}
			if ue.HasAttr("multiplier") {
				b.Multiplier, err = attrFloat(ue, "multiplier")
				if err != nil {
					return nil, err
				}
			}
			def.BaseUnits = append(def.BaseUnits, b)
		}
		byID[id] = def
		doc.UnitDefinitions = append(doc.UnitDefinitions, def)
	}
	return byID, nil
}

func readCompartments(doc *model.Document, me *xmltree.Node, unitsByID map[string]*units.Definition) error {
	list := me.Child("listOfCompartments")
	if list == nil {
		return nil
	}
	for _, ce := range list.ChildAll("compartment") {
		v := &model.Vessel{ID: ce.Attr("id"), Name: ce.Attr("name")}
		if v.ID == "" {
			return errors.NewMalformed(ce.Path(), "compartment needs an id attribute")
		}
		var err error
		if v.Volume, err = attrFloat(ce, "size"); err != nil {
			return err
		}
		if v.Constant, err = attrBool(ce, "constant"); err != nil {
			return err
		}
		if v.Unit, err = lookupUnit(ce, unitsByID, ce.Attr("units")); err != nil {
			return err
		}
		if _, dup := doc.ResolveVessel(v.ID); dup == nil {
			return errors.NewMalformed(ce.Path(), "duplicate vessel id "+v.ID)
		}
		doc.Vessels = append(doc.Vessels, v)
	}
	return nil
}

func readSpecies(doc *model.Document, me *xmltree.Node) error {
	list := me.Child("listOfSpecies")
	if list == nil {
		return nil
	}
	for _, se := range list.ChildAll("species") {
		id := se.Attr("id")
		if id == "" {
			return errors.NewMalformed(se.Path(), "species needs an id attribute")
		}
		kind, _, err := ident.Parse(id)
		if err != nil {
			return errors.NewMalformed(se.Path(), "species id "+id+" has no known prefix")
		}
		if existing, resolveErr := doc.ResolveSpecies(id); resolveErr == nil && existing != nil {
			return errors.NewMalformed(se.Path(), "duplicate species id "+id)
		}

		name := se.Attr("name")
		vesselID := se.Attr("compartment")
		constant, err := attrBool(se, "constant")
		if err != nil {
			return err
		}
		if vesselID != "" {
			if _, err := doc.ResolveVessel(vesselID); err != nil {
				return errors.NewMalformed(se.Path(), "unknown compartment "+vesselID)
			}
		}
		ann := se.Child("annotation")

		switch kind {
		case ident.KindProtein:
			details := annotation.DecodeProtein(childOf(ann, "protein"))
			doc.Proteins = append(doc.Proteins, &model.Protein{
				ID: id, Name: name, VesselID: vesselID, Constant: constant,
				Sequence: details.Sequence, ECNumber: details.ECNumber,
				UniProtID: details.UniProtID, Organism: details.Organism,
				OrganismTaxID: details.OrganismTaxID,
			})
		case ident.KindComplex:
			doc.Complexes = append(doc.Complexes, &model.Complex{
				ID: id, Name: name, VesselID: vesselID, Constant: constant,
				Participants: annotation.DecodeComplex(childOf(ann, "complex")),
			})
		case ident.KindSmallMolecule:
			details := annotation.DecodeMolecule(childOf(ann, "smallMolecule"))
			doc.SmallMolecules = append(doc.SmallMolecules, &model.SmallMolecule{
				ID: id, Name: name, VesselID: vesselID, Constant: constant,
				CanonicalSMILES: details.SMILES, InChI: details.InChI,
				InChIKey: details.InChIKey, Synonyms: details.Synonyms,
			})
		default:
			return errors.NewMalformed(se.Path(), "id "+id+" is not a species identifier")
		}
	}

	// Complex participants can only be checked once every species is read.
	for _, c := range doc.Complexes {
		for _, pid := range c.Participants {
			if _, err := doc.ResolveSpecies(pid); err != nil {
				return errors.NewMalformed("", "complex "+c.ID+" references unknown species "+pid)
			}
		}
	}
	return nil
}

func childOf(ann *xmltree.Node, name string) *xmltree.Node {
	if ann == nil {
		return nil
	}
	return ann.Child(name)
}

func readParameters(doc *model.Document, me *xmltree.Node, unitsByID map[string]*units.Definition) error {
	list := me.Child("listOfParameters")
	if list == nil {
		return nil
	}
	for _, pe := range list.ChildAll("parameter") {
		p := &model.Parameter{ID: pe.Attr("id"), Name: pe.Attr("name")}
		if p.ID == "" {
			return errors.NewMalformed(pe.Path(), "parameter needs an id attribute")
		}
		var err error
		if p.Value, err = attrFloatOpt(pe, "value"); err != nil {
			return err
		}
		if p.Constant, err = attrBool(pe, "constant"); err != nil {
			return err
		}
		if p.Unit, err = lookupUnit(pe, unitsByID, pe.Attr("units")); err != nil {
			return err
		}
		if ext := childOf(pe.Child("annotation"), "parameter"); ext != nil {
			p.Symbol = ext.Attr("symbol")
			if p.InitialValue, err = attrFloatOpt(ext, "initialValue"); err != nil {
				return err
			}
			if p.UpperBound, err = attrFloatOpt(ext, "upperBound"); err != nil {
				return err
			}
			if p.LowerBound, err = attrFloatOpt(ext, "lowerBound"); err != nil {
				return err
			}
			if p.StdErr, err = attrFloatOpt(ext, "stderr"); err != nil {
				return err
			}
			if p.Fit, err = attrBool(ext, "fit"); err != nil {
				return err
			}
		}
		for _, existing := range doc.Parameters {
			if existing.ID == p.ID {
				return errors.NewMalformed(pe.Path(), "duplicate parameter id "+p.ID)
			}
		}
		doc.Parameters = append(doc.Parameters, p)
	}
	return nil
}

func readVariables(ann *xmltree.Node) []model.Variable {
	vars := childOf(ann, "variables")
	if vars == nil {
		return nil
	}
	var out []model.Variable
	for _, ve := range vars.ChildAll("variable") {
		out = append(out, model.Variable{
			ID:     ve.Attr("id"),
			Name:   ve.Attr("name"),
			Symbol: ve.Attr("symbol"),
		})
	}
	return out
}

func readEquation(e *xmltree.Node, typ model.EquationType, speciesAttr string, unitsByID map[string]*units.Definition) (*model.Equation, error) {
	math := e.Child("math")
	if math == nil {
		return nil, errors.NewMalformed(e.Path(), "missing math element")
	}
	eq := &model.Equation{
		SpeciesID:  e.Attr(speciesAttr),
		Type:       typ,
		Expression: math.Text(),
		Variables:  readVariables(e.Child("annotation")),
	}
	var err error
	if eq.Unit, err = lookupUnit(e, unitsByID, e.Attr("unit")); err != nil {
		return nil, err
	}
	return eq, nil
}

func readEquations(doc *model.Document, me *xmltree.Node, unitsByID map[string]*units.Definition) error {
	if list := me.Child("listOfInitialAssignments"); list != nil {
		for _, e := range list.ChildAll("initialAssignment") {
			eq, err := readEquation(e, model.EquationInitialAssignment, "symbol", unitsByID)
			if err != nil {
				return err
			}
			doc.Equations = append(doc.Equations, eq)
		}
	}
	if list := me.Child("listOfRules"); list != nil {
		for _, e := range list.Children() {
			var typ model.EquationType
			switch e.Name() {
			case "rateRule":
				typ = model.EquationODE
			case "assignmentRule":
				typ = model.EquationAssignment
			default:
				continue
			}
			eq, err := readEquation(e, typ, "variable", unitsByID)
			if err != nil {
				return err
			}
			doc.Equations = append(doc.Equations, eq)
		}
	}
	for _, eq := range doc.Equations {
		if eq.SpeciesID != "" {
			if _, err := doc.ResolveSpecies(eq.SpeciesID); err != nil {
				return errors.NewMalformed("", "equation references unknown species "+eq.SpeciesID)
			}
		}
	}
	return nil
}

func readReactions(doc *model.Document, me *xmltree.Node, unitsByID map[string]*units.Definition) error {
	list := me.Child("listOfReactions")
	if list == nil {
		return nil
	}
	for _, re := range list.ChildAll("reaction") {
		r := &model.Reaction{ID: re.Attr("id"), Name: re.Attr("name")}
		if r.ID == "" {
			return errors.NewMalformed(re.Path(), "reaction needs an id attribute")
		}
		var err error
		if r.Reversible, err = attrBool(re, "reversible"); err != nil {
			return err
		}

		if cond := childOf(re.Child("annotation"), "conditions"); cond != nil {
			c, err := annotation.DecodeConditions(cond)
			if err != nil {
				return err
			}
			r.PH = c.PH
			r.Temperature = c.Temperature
			if r.TemperatureUnit, err = lookupUnit(cond, unitsByID, c.TemperatureUnit); err != nil {
				return err
			}
		}

		if r.Reactants, err = readElements(doc, re.Child("listOfReactants")); err != nil {
			return err
		}
		if r.Products, err = readElements(doc, re.Child("listOfProducts")); err != nil {
			return err
		}
		if mods := re.Child("listOfModifiers"); mods != nil {
			for _, m := range mods.ChildAll("modifierSpeciesReference") {
				sid := m.Attr("species")
				if _, err := doc.ResolveSpecies(sid); err != nil {
					return errors.NewMalformed(m.Path(), "unknown species "+sid)
				}
				role := model.ModifierRole(m.Attr("role"))
				if role != "" && !role.IsValid() {
					return errors.NewMalformed(m.Path(), "unknown modifier role "+string(role))
				}
				r.Modifiers = append(r.Modifiers, model.ModifierElement{SpeciesID: sid, Role: role})
			}
		}

		if kl := re.Child("kineticLaw"); kl != nil {
			math := kl.Child("math")
			if math == nil {
				return errors.NewMalformed(kl.Path(), "missing math element")
			}
			eq := &model.Equation{
				SpeciesID:  r.ID,
				Type:       model.EquationRateLaw,
				Expression: math.Text(),
				Variables:  readVariables(kl.Child("annotation")),
			}
			if eq.Unit, err = lookupUnit(kl, unitsByID, kl.Attr("unit")); err != nil {
				return err
			}
			r.KineticLaw = eq
		}

		if _, dup := doc.ResolveReaction(r.ID); dup == nil {
			return errors.NewMalformed(re.Path(), "duplicate reaction id "+r.ID)
		}
		doc.Reactions = append(doc.Reactions, r)
	}
	return nil
}

func readElements(doc *model.Document, list *xmltree.Node) ([]model.ReactionElement, error) {
	if list == nil {
		return nil, nil
	}
	var out []model.ReactionElement
	for _, sr := range list.ChildAll("speciesReference") {
		sid := sr.Attr("species")
		if _, err := doc.ResolveSpecies(sid); err != nil {
			return nil, errors.NewMalformed(sr.Path(), "unknown species "+sid)
		}
		stoich, err := attrFloat(sr, "stoichiometry")
		if err != nil {
			return nil, err
		}
		out = append(out, model.ReactionElement{SpeciesID: sid, Stoichiometry: stoich})
	}
	return out, nil
}

func readMeasurements(doc *model.Document, me *xmltree.Node, unitsByID map[string]*units.Definition, sidecars map[string][]byte) error {
	list := me.Child("listOfReactions")
	block, err := annotation.DecodeData(childOf(childOf(list, "annotation"), "data"))
	if err != nil {
		return err
	}
	if len(block.Measurements) == 0 {
		return nil
	}

	formats := map[string]annotation.Format{}
	for _, f := range block.Formats {
		formats[f.ID] = f
	}
	files := map[string]annotation.File{}
	for _, f := range block.Files {
		files[f.ID] = f
	}

	for _, meta := range block.Measurements {
		m := &model.Measurement{ID: meta.ID, Name: meta.Name, GroupID: meta.GroupID}
		m.PH = meta.Conditions.PH
		m.Temperature = meta.Conditions.Temperature
		if m.TemperatureUnit, err = lookupUnit(nil, unitsByID, meta.Conditions.TemperatureUnit); err != nil {
			return err
		}

		if meta.FileID != "" {
			if err := readSeries(doc, m, meta, formats, files, unitsByID, sidecars); err != nil {
				return err
			}
		}

		// Init-only species carry an amount but no time series. The
		// initial value may be absent when only a prepared amount was
		// recorded.
		for _, init := range meta.Inits {
			sd := m.DataFor(init.SpeciesID)
			if sd == nil {
				sd = &model.MeasurementData{SpeciesID: init.SpeciesID}
				m.SpeciesData = append(m.SpeciesData, sd)
			}
			if _, err := doc.ResolveSpecies(init.SpeciesID); err != nil {
				return errors.NewMalformed("", "measurement "+meta.ID+" references unknown species "+init.SpeciesID)
			}
			if init.Value != nil {
				v := *init.Value
				sd.Initial = &v
			}
			sd.Prepared = init.Prepared
			if sd.DataUnit == nil {
				if sd.DataUnit, err = lookupUnit(nil, unitsByID, init.UnitID); err != nil {
					return err
				}
			}
		}

		if _, dup := doc.ResolveMeasurement(m.ID); dup == nil {
			return errors.NewMalformed("", "duplicate measurement id "+m.ID)
		}
		doc.Measurements = append(doc.Measurements, m)
	}
	return nil
}

func readSeries(doc *model.Document, m *model.Measurement, meta annotation.MeasurementMeta,
	formats map[string]annotation.Format, files map[string]annotation.File,
	unitsByID map[string]*units.Definition, sidecars map[string][]byte) error {

	file, ok := files[meta.FileID]
	if !ok {
		return errors.NewMalformed("", "measurement "+meta.ID+" references unknown file "+meta.FileID)
	}
	format, ok := formats[file.Format]
	if !ok {
		return errors.NewMalformed("", "file "+file.ID+" references unknown format "+file.Format)
	}
	raw, ok := sidecars[file.Location]
	if !ok {
		return errors.NewMalformed(file.Location, "sidecar file missing from archive")
	}
	columns, err := tabular.ReadColumns(bytes.NewReader(raw), file.Location)
	if err != nil {
		return err
	}
	if len(columns) != len(format.Columns) {
		return errors.NewMalformed(file.Location,
			"file has "+strconv.Itoa(len(columns))+" columns, format declares "+strconv.Itoa(len(format.Columns)))
	}

	var timeAxis []float64
	var timeUnit *units.Definition
	for _, col := range format.Columns {
		if col.Type != annotation.ColumnTime {
			continue
		}
		timeAxis = columns[col.Index]
		if timeUnit, err = lookupUnit(nil, unitsByID, col.UnitID); err != nil {
			return err
		}
	}
	if timeAxis == nil {
		return errors.NewMalformed(file.Location, "format "+format.ID+" has no time column")
	}

	for _, col := range format.Columns {
		if col.Type != annotation.ColumnSpecies {
			continue
		}
		if col.Index >= len(columns) {
			return errors.NewMalformed(file.Location, "column index "+strconv.Itoa(col.Index)+" out of range")
		}
		if _, err := doc.ResolveSpecies(col.SpeciesID); err != nil {
			return errors.NewMalformed(file.Location, "unknown species "+col.SpeciesID)
		}
		sd := &model.MeasurementData{
			SpeciesID:   col.SpeciesID,
			Time:        timeAxis,
			Data:        columns[col.Index],
			TimeUnit:    timeUnit,
			DataType:    model.DataType(col.DataType),
			IsSimulated: col.IsCalculated,
		}
		if sd.DataUnit, err = lookupUnit(nil, unitsByID, col.UnitID); err != nil {
			return err
		}
		m.SpeciesData = append(m.SpeciesData, sd)
	}
	return nil
}

func readDocumentAnnotation(doc *model.Document, me *xmltree.Node) {
	ann := me.Child("annotation")
	if ann == nil {
		return
	}
	if creators := ann.Child("creators"); creators != nil {
		for _, ce := range creators.ChildAll("creator") {
			doc.Creators = append(doc.Creators, &model.Creator{
				GivenName:  ce.Attr("givenName"),
				FamilyName: ce.Attr("familyName"),
				Mail:       ce.Attr("mail"),
			})
		}
	}
	doc.References = annotation.DecodeReferences(ann.Child("references"))
}
