// Package sbml maps documents to and from the XML wire format: an SBML-like
// model tree carrying vendor annotations, plus one columnar sidecar file per
// measurement. Writing and reading are all-or-nothing; a document that fails
// validation produces no output at all.
package sbml

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/enzymeml/enzymeml-go/core/errors"
	"github.com/enzymeml/enzymeml-go/core/model"
	"github.com/enzymeml/enzymeml-go/core/units"
	"github.com/enzymeml/enzymeml-go/core/xmltree"
	"github.com/enzymeml/enzymeml-go/internal/annotation"
	"github.com/enzymeml/enzymeml-go/internal/logging"
	"github.com/enzymeml/enzymeml-go/internal/tabular"
)

// Wire format constants.
const (
	sbmlNamespace = "http://www.sbml.org/sbml/level3/version2/core"
	sbmlLevel     = "3"
	sbmlVersion   = "2"

	// ModelFile is the canonical location of the model tree in an archive.
	ModelFile = "model.xml"
)

// Output is the serialized form of a document: the model tree plus one
// sidecar file per measurement, keyed by location.
type Output struct {
	Model []byte
	Data  map[string][]byte
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// dataLocation returns the sidecar path for a measurement.
func dataLocation(measurementID string) string {
	return "data/" + measurementID + ".csv"
}

// Write serializes the document. Every identifier reference is resolved
// before any output is produced; a dangling reference aborts the whole
// write.
func Write(doc *model.Document) (*Output, error) {
	if err := validate(doc); err != nil {
		return nil, err
	}

	root := xmltree.NewElement("sbml").
		SetAttr("xmlns", sbmlNamespace).
		SetAttr("xmlns:"+annotation.Prefix, annotation.Namespace).
		SetAttr("level", sbmlLevel).
		SetAttr("version", sbmlVersion)

	m := root.AddNew("model").SetAttr("id", "model").SetAttr("name", doc.Name)

	if ann := documentAnnotation(doc); ann != nil {
		m.Add(ann)
	}

	writeUnits(m, doc)
	writeCompartments(m, doc)
	writeSpecies(m, doc)
	writeParameters(m, doc)
	writeEquations(m, doc)
	data, err := writeReactions(m, doc)
	if err != nil {
		return nil, err
	}

	out := &Output{Model: root.Render(), Data: data}
	logging.DocumentWritten(doc.Name, len(doc.Measurements), len(doc.UnitDefinitions))
	return out, nil
}

// validate walks every reference in the document before emission starts.
func validate(doc *model.Document) error {
	checkSpecies := func(id, field string) error {
		if _, err := doc.ResolveSpecies(id); err != nil {
			return errors.NewReference("species", id, field)
		}
		return nil
	}
	for _, p := range doc.Proteins {
		if p.VesselID != "" {
			if _, err := doc.ResolveVessel(p.VesselID); err != nil {
				return errors.NewReference("vessel", p.VesselID, "protein "+p.ID)
			}
		}
	}
	for _, c := range doc.Complexes {
		if c.VesselID != "" {
			if _, err := doc.ResolveVessel(c.VesselID); err != nil {
				return errors.NewReference("vessel", c.VesselID, "complex "+c.ID)
			}
		}
		for _, pid := range c.Participants {
			if err := checkSpecies(pid, "complex "+c.ID); err != nil {
				return err
			}
		}
	}
	for _, s := range doc.SmallMolecules {
		if s.VesselID != "" {
			if _, err := doc.ResolveVessel(s.VesselID); err != nil {
				return errors.NewReference("vessel", s.VesselID, "small molecule "+s.ID)
			}
		}
	}
	for _, r := range doc.Reactions {
		for _, el := range r.Reactants {
			if err := checkSpecies(el.SpeciesID, "reaction "+r.ID); err != nil {
				return err
			}
		}
		for _, el := range r.Products {
			if err := checkSpecies(el.SpeciesID, "reaction "+r.ID); err != nil {
				return err
			}
		}
		for _, el := range r.Modifiers {
			if err := checkSpecies(el.SpeciesID, "reaction "+r.ID); err != nil {
				return err
			}
		}
	}
	for _, eq := range doc.Equations {
		if eq.SpeciesID != "" {
			if err := checkSpecies(eq.SpeciesID, "equation"); err != nil {
				return err
			}
		}
	}
	for _, meas := range doc.Measurements {
		for _, sd := range meas.SpeciesData {
			if err := checkSpecies(sd.SpeciesID, "measurement "+meas.ID); err != nil {
				return err
			}
			if err := sd.Check(meas.ID); err != nil {
				return err
			}
		}
	}
	return nil
}

// unitRef registers the unit with the document table and returns its id, or
// "" for a nil unit. Registration is idempotent, so re-serializing a
// document never grows the table.
func unitRef(doc *model.Document, def *units.Definition) string {
	reg := doc.RegisterUnit(def)
	if reg == nil {
		return ""
	}
	return reg.ID
}

func documentAnnotation(doc *model.Document) *xmltree.Element {
	ann := xmltree.NewElement("annotation")
	if len(doc.Creators) > 0 {
		creators := ann.AddNew(annotation.Prefix + ":creators")
		for _, c := range doc.Creators {
			ce := creators.AddNew(annotation.Prefix + ":creator").
				SetAttr("givenName", c.GivenName).
				SetAttr("familyName", c.FamilyName)
			if c.Mail != "" {
				ce.SetAttr("mail", c.Mail)
			}
		}
	}
	if refs := annotation.EncodeReferences(doc.References); refs != nil {
		ann.Add(refs)
	}
	if len(ann.Children) == 0 {
		return nil
	}
	return ann
}

func writeUnits(m *xmltree.Element, doc *model.Document) {
	// Register every reachable unit first so the table is complete before
	// the list is emitted.
	for _, v := range doc.Vessels {
		unitRef(doc, v.Unit)
	}
	for _, r := range doc.Reactions {
		unitRef(doc, r.TemperatureUnit)
		if r.KineticLaw != nil {
			unitRef(doc, r.KineticLaw.Unit)
		}
	}
	for _, eq := range doc.Equations {
		unitRef(doc, eq.Unit)
	}
	for _, p := range doc.Parameters {
		unitRef(doc, p.Unit)
	}
	for _, meas := range doc.Measurements {
		unitRef(doc, meas.TemperatureUnit)
		for _, sd := range meas.SpeciesData {
			unitRef(doc, sd.DataUnit)
			unitRef(doc, sd.TimeUnit)
		}
	}

	if len(doc.UnitDefinitions) == 0 {
		return
	}
	list := m.AddNew("listOfUnitDefinitions")
	for _, def := range doc.UnitDefinitions {
		ud := list.AddNew("unitDefinition").
			SetAttr("id", def.ID).
			SetAttr("name", def.Name)
		lou := ud.AddNew("listOfUnits")
		for _, b := range def.BaseUnits {
			u := lou.AddNew("unit").
				SetAttr("kind", string(b.Kind)).
				SetAttr("exponent", strconv.Itoa(b.Exponent))
			if b.Scale != 0 {
				u.SetAttr("scale", strconv.Itoa(b.Scale))
			}
			if b.Multiplier != 0 {
				u.SetAttr("multiplier", num(b.Multiplier))
			}
		}
	}
}

func writeCompartments(m *xmltree.Element, doc *model.Document) {
	if len(doc.Vessels) == 0 {
		return
	}
	list := m.AddNew("listOfCompartments")
	for _, v := range doc.Vessels {
		c := list.AddNew("compartment").
			SetAttr("id", v.ID).
			SetAttr("name", v.Name).
			SetAttr("size", num(v.Volume)).
			SetAttr("constant", strconv.FormatBool(v.Constant))
		if v.Unit != nil {
			c.SetAttr("units", v.Unit.ID)
		}
	}
}

func writeSpecies(m *xmltree.Element, doc *model.Document) {
	total := len(doc.Proteins) + len(doc.Complexes) + len(doc.SmallMolecules)
	if total == 0 {
		return
	}
	list := m.AddNew("listOfSpecies")

	add := func(id, name, vesselID string, constant bool, ann *xmltree.Element) {
		s := list.AddNew("species").
			SetAttr("id", id).
			SetAttr("name", name).
			SetAttr("constant", strconv.FormatBool(constant))
		if vesselID != "" {
			s.SetAttr("compartment", vesselID)
		}
		if ann != nil {
			s.AddNew("annotation").Add(ann)
		}
	}

	for _, p := range doc.Proteins {
		add(p.ID, p.Name, p.VesselID, p.Constant, annotation.EncodeProtein(annotation.ProteinDetails{
			Sequence:      p.Sequence,
			ECNumber:      p.ECNumber,
			UniProtID:     p.UniProtID,
			Organism:      p.Organism,
			OrganismTaxID: p.OrganismTaxID,
		}))
	}
	for _, c := range doc.Complexes {
		add(c.ID, c.Name, c.VesselID, c.Constant, annotation.EncodeComplex(c.Participants))
	}
	for _, s := range doc.SmallMolecules {
		add(s.ID, s.Name, s.VesselID, s.Constant, annotation.EncodeMolecule(annotation.MoleculeDetails{
			SMILES:   s.CanonicalSMILES,
			InChI:    s.InChI,
			InChIKey: s.InChIKey,
			Synonyms: s.Synonyms,
		}))
	}
}

func writeParameters(m *xmltree.Element, doc *model.Document) {
	if len(doc.Parameters) == 0 {
		return
	}
	list := m.AddNew("listOfParameters")
	for _, p := range doc.Parameters {
		pe := list.AddNew("parameter").
			SetAttr("id", p.ID).
			SetAttr("name", p.Name).
			SetAttr("constant", strconv.FormatBool(p.Constant))
		if p.Value != nil {
			pe.SetAttr("value", num(*p.Value))
		}
		if p.Unit != nil {
			pe.SetAttr("units", p.Unit.ID)
		}

		ext := xmltree.NewElement(annotation.Prefix + ":parameter")
		if p.Symbol != "" {
			ext.SetAttr("symbol", p.Symbol)
		}
		if p.InitialValue != nil {
			ext.SetAttr("initialValue", num(*p.InitialValue))
		}
		if p.UpperBound != nil {
			ext.SetAttr("upperBound", num(*p.UpperBound))
		}
		if p.LowerBound != nil {
			ext.SetAttr("lowerBound", num(*p.LowerBound))
		}
		if p.StdErr != nil {
			ext.SetAttr("stderr", num(*p.StdErr))
		}
		if p.Fit {
			ext.SetAttr("fit", "true")
		}
		if len(ext.Attrs) > 0 {
			pe.AddNew("annotation").Add(ext)
		}
	}
}

func equationVariables(eq *model.Equation) *xmltree.Element {
	if len(eq.Variables) == 0 {
		return nil
	}
	vars := xmltree.NewElement(annotation.Prefix + ":variables")
	for _, v := range eq.Variables {
		vars.AddNew(annotation.Prefix + ":variable").
			SetAttr("id", v.ID).
			SetAttr("name", v.Name).
			SetAttr("symbol", v.Symbol)
	}
	return vars
}

func writeEquations(m *xmltree.Element, doc *model.Document) {
	var inits, rules []*model.Equation
	for _, eq := range doc.Equations {
		if eq.Type == model.EquationInitialAssignment {
			inits = append(inits, eq)
		} else {
			rules = append(rules, eq)
		}
	}

	emit := func(parent *xmltree.Element, name string, eq *model.Equation) {
		e := parent.AddNew(name)
		if eq.SpeciesID != "" {
			if name == "initialAssignment" {
				e.SetAttr("symbol", eq.SpeciesID)
			} else {
				e.SetAttr("variable", eq.SpeciesID)
			}
		}
		if eq.Unit != nil {
			e.SetAttr(annotation.Prefix+":unit", eq.Unit.ID)
		}
		e.AddNew("math").SetText(eq.Expression)
		if vars := equationVariables(eq); vars != nil {
			e.AddNew("annotation").Add(vars)
		}
	}

	if len(inits) > 0 {
		list := m.AddNew("listOfInitialAssignments")
		for _, eq := range inits {
			emit(list, "initialAssignment", eq)
		}
	}
	if len(rules) > 0 {
		list := m.AddNew("listOfRules")
		for _, eq := range rules {
			name := "rateRule"
			if eq.Type == model.EquationAssignment {
				name = "assignmentRule"
			}
			emit(list, name, eq)
		}
	}
}

func writeReactions(m *xmltree.Element, doc *model.Document) (map[string][]byte, error) {
	block, data, err := buildDataBlock(doc)
	if err != nil {
		return nil, err
	}
	dataAnn := annotation.EncodeData(block)

	if len(doc.Reactions) == 0 && dataAnn == nil {
		return data, nil
	}
	list := m.AddNew("listOfReactions")
	if dataAnn != nil {
		list.AddNew("annotation").Add(dataAnn)
	}

	for _, r := range doc.Reactions {
		re := list.AddNew("reaction").
			SetAttr("id", r.ID).
			SetAttr("name", r.Name).
			SetAttr("reversible", strconv.FormatBool(r.Reversible))

		cond := annotation.EncodeConditions(annotation.Conditions{
			PH:              r.PH,
			Temperature:     r.Temperature,
			TemperatureUnit: unitRef(doc, r.TemperatureUnit),
		})
		if cond != nil {
			re.AddNew("annotation").Add(cond)
		}

		writeElements(re, "listOfReactants", r.Reactants)
		writeElements(re, "listOfProducts", r.Products)
		if len(r.Modifiers) > 0 {
			mods := re.AddNew("listOfModifiers")
			for _, el := range r.Modifiers {
				mods.AddNew("modifierSpeciesReference").
					SetAttr("species", el.SpeciesID).
					SetAttr(annotation.Prefix+":role", string(el.Role))
			}
		}

		if r.KineticLaw != nil {
			kl := re.AddNew("kineticLaw")
			if r.KineticLaw.Unit != nil {
				kl.SetAttr(annotation.Prefix+":unit", r.KineticLaw.Unit.ID)
			}
			kl.AddNew("math").SetText(r.KineticLaw.Expression)
			if vars := equationVariables(r.KineticLaw); vars != nil {
				kl.AddNew("annotation").Add(vars)
			}
		}
	}
	return data, nil
}

func writeElements(re *xmltree.Element, name string, els []model.ReactionElement) {
	if len(els) == 0 {
		return
	}
	list := re.AddNew(name)
	for _, el := range els {
		list.AddNew("speciesReference").
			SetAttr("species", el.SpeciesID).
			SetAttr("stoichiometry", num(el.Stoichiometry))
	}
}

// buildDataBlock derives the tabular annotation and renders the sidecar
// files. Every series in a measurement must share the measurement's time
// axis, since a sidecar has exactly one time column.
func buildDataBlock(doc *model.Document) (annotation.DataBlock, map[string][]byte, error) {
	var block annotation.DataBlock
	data := make(map[string][]byte)

	for i, meas := range doc.Measurements {
		meta := annotation.MeasurementMeta{
			ID:      meas.ID,
			Name:    meas.Name,
			GroupID: meas.GroupID,
			Conditions: annotation.Conditions{
				PH:              meas.PH,
				Temperature:     meas.Temperature,
				TemperatureUnit: unitRef(doc, meas.TemperatureUnit),
			},
		}

		var timeAxis []float64
		var timeUnit string
		columns := [][]float64{nil}
		format := annotation.Format{ID: fmt.Sprintf("format%d", i)}

		for _, sd := range meas.SpeciesData {
			if sd.Initial != nil || sd.Prepared != nil {
				meta.Inits = append(meta.Inits, annotation.Init{
					SpeciesID: sd.SpeciesID,
					Value:     sd.Initial,
					UnitID:    unitRef(doc, sd.DataUnit),
					Prepared:  sd.Prepared,
				})
			}
			if len(sd.Time) == 0 {
				continue
			}
			if timeAxis == nil {
				timeAxis = sd.Time
				timeUnit = unitRef(doc, sd.TimeUnit)
				format.Columns = append(format.Columns, annotation.Column{
					Index: 0, Type: annotation.ColumnTime, UnitID: timeUnit,
				})
			} else if !sameAxis(timeAxis, sd.Time) {
				return annotation.DataBlock{}, nil, errors.NewDataLengthMismatch(meas.ID, sd.SpeciesID,
					"series does not share the measurement time axis")
			}
			format.Columns = append(format.Columns, annotation.Column{
				Index:        len(columns),
				Type:         annotation.ColumnSpecies,
				SpeciesID:    sd.SpeciesID,
				UnitID:       unitRef(doc, sd.DataUnit),
				DataType:     string(sd.DataType),
				IsCalculated: sd.IsSimulated,
			})
			columns = append(columns, sd.Data)
		}

		if timeAxis != nil {
			columns[0] = timeAxis
			location := dataLocation(meas.ID)
			var buf bytes.Buffer
			if err := tabular.WriteColumns(&buf, columns); err != nil {
				return annotation.DataBlock{}, nil, err
			}
			data[location] = buf.Bytes()

			fileID := fmt.Sprintf("file%d", i)
			block.Formats = append(block.Formats, format)
			block.Files = append(block.Files, annotation.File{
				ID: fileID, Location: location, Format: format.ID,
			})
			meta.FileID = fileID
		}
		block.Measurements = append(block.Measurements, meta)
	}
	return block, data, nil
}

func sameAxis(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
