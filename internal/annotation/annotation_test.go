package annotation

import (
	stderrors "errors"
	"reflect"
	"testing"

	"github.com/enzymeml/enzymeml-go/core/errors"
	"github.com/enzymeml/enzymeml-go/core/xmltree"
)

// reparse renders an element and parses it back, returning the root node.
func reparse(t *testing.T, e *xmltree.Element) *xmltree.Node {
	t.Helper()
	wrapper := xmltree.NewElement("annotation").
		SetAttr("xmlns:"+Prefix, Namespace).
		Add(e)
	doc, err := xmltree.Parse(wrapper.Render())
	if err != nil {
		t.Fatal(err)
	}
	children := doc.Root().Children()
	if len(children) != 1 {
		t.Fatalf("got %d annotation children, want 1", len(children))
	}
	return children[0]
}

func TestProteinRoundTrip(t *testing.T) {
	in := ProteinDetails{
		Sequence:      "MKLV",
		ECNumber:      "1.1.1.1",
		UniProtID:     "P00330",
		Organism:      "E. coli",
		OrganismTaxID: "562",
	}
	out := DecodeProtein(reparse(t, EncodeProtein(in)))
	if out != in {
		t.Errorf("round trip = %+v, want %+v", out, in)
	}
}

func TestProteinPartialFields(t *testing.T) {
	in := ProteinDetails{Sequence: "MKLV"}
	e := EncodeProtein(in)
	if len(e.Children) != 1 {
		t.Fatalf("got %d children, want 1", len(e.Children))
	}
	out := DecodeProtein(reparse(t, e))
	if out != in {
		t.Errorf("round trip = %+v, want %+v", out, in)
	}
}

func TestProteinEmpty(t *testing.T) {
	if e := EncodeProtein(ProteinDetails{}); e != nil {
		t.Errorf("empty details encoded as %v", e)
	}
	var zero ProteinDetails
	if got := DecodeProtein(nil); got != zero {
		t.Errorf("DecodeProtein(nil) = %+v", got)
	}
}

func TestMoleculeRoundTrip(t *testing.T) {
	in := MoleculeDetails{
		SMILES:   "C(C(=O)O)N",
		InChI:    "InChI=1S/C2H5NO2",
		InChIKey: "DHMQDGOQFOQNFH-UHFFFAOYSA-N",
		Synonyms: []string{"glycine", "Gly"},
	}
	out := DecodeMolecule(reparse(t, EncodeMolecule(in)))
	if !reflect.DeepEqual(out, in) {
		t.Errorf("round trip = %+v, want %+v", out, in)
	}
}

func TestComplexRoundTrip(t *testing.T) {
	in := []string{"p0", "s0"}
	out := DecodeComplex(reparse(t, EncodeComplex(in)))
	if !reflect.DeepEqual(out, in) {
		t.Errorf("round trip = %v, want %v", out, in)
	}
	if EncodeComplex(nil) != nil {
		t.Error("empty participants encoded")
	}
}

func TestReferencesRoundTrip(t *testing.T) {
	in := []string{"doi:10.1000/x", "pmid:12345"}
	out := DecodeReferences(reparse(t, EncodeReferences(in)))
	if !reflect.DeepEqual(out, in) {
		t.Errorf("round trip = %v, want %v", out, in)
	}
}

func TestConditionsAllOrNothing(t *testing.T) {
	ph := 7.4
	temp := 310.15

	t.Run("ph only", func(t *testing.T) {
		e := EncodeConditions(Conditions{PH: &ph})
		n := reparse(t, e)
		if n.Child("temperature") != nil {
			t.Error("temperature emitted without a value")
		}
		out, err := DecodeConditions(n)
		if err != nil {
			t.Fatal(err)
		}
		if out.PH == nil || *out.PH != ph || out.Temperature != nil {
			t.Errorf("round trip = %+v", out)
		}
	})

	t.Run("temperature without unit omitted", func(t *testing.T) {
		e := EncodeConditions(Conditions{Temperature: &temp})
		if e != nil {
			t.Errorf("incomplete temperature group encoded as %v", e)
		}
	})

	t.Run("complete", func(t *testing.T) {
		in := Conditions{PH: &ph, Temperature: &temp, TemperatureUnit: "u3"}
		out, err := DecodeConditions(reparse(t, EncodeConditions(in)))
		if err != nil {
			t.Fatal(err)
		}
		if *out.PH != ph || *out.Temperature != temp || out.TemperatureUnit != "u3" {
			t.Errorf("round trip = %+v", out)
		}
	})

	t.Run("nothing", func(t *testing.T) {
		if e := EncodeConditions(Conditions{}); e != nil {
			t.Errorf("empty conditions encoded as %v", e)
		}
	})
}

func TestDecodeConditionsMissingAttr(t *testing.T) {
	raw := `<annotation xmlns:enzymeml="https://www.enzymeml.org/v2">
  <enzymeml:conditions>
    <enzymeml:temperature value="310"/>
  </enzymeml:conditions>
</annotation>`
	doc, err := xmltree.Parse([]byte(raw))
	if err != nil {
		t.Fatal(err)
	}
	_, err = DecodeConditions(doc.Root().Child("conditions"))
	if !stderrors.Is(err, errors.ErrMalformedDocument) {
		t.Errorf("error = %v, want ErrMalformedDocument", err)
	}
	var me *errors.MalformedDocumentError
	if !stderrors.As(err, &me) || me.Path == "" {
		t.Errorf("error carries no path: %v", err)
	}
}

func TestDataBlockRoundTrip(t *testing.T) {
	prep := 12.5
	ten, zero := 10.0, 0.0
	in := DataBlock{
		Formats: []Format{{
			ID: "format0",
			Columns: []Column{
				{Index: 0, Type: ColumnTime, UnitID: "u1"},
				{Index: 1, Type: ColumnSpecies, SpeciesID: "s0", UnitID: "u0", DataType: "conc"},
				{Index: 2, Type: ColumnSpecies, SpeciesID: "s1", UnitID: "u0", IsCalculated: true},
			},
		}},
		Files: []File{{ID: "file0", Location: "data/m0.csv", Format: "format0"}},
		Measurements: []MeasurementMeta{{
			ID: "m0", Name: "run 1", FileID: "file0", GroupID: "g1",
			Inits: []Init{
				{SpeciesID: "s0", Value: &ten, UnitID: "u0", Prepared: &prep},
				{SpeciesID: "s1", Value: &zero, UnitID: "u0"},
				{SpeciesID: "s2", UnitID: "u0", Prepared: &prep},
			},
		}},
	}

	out, err := DecodeData(reparse(t, EncodeData(in)))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(out, in) {
		t.Errorf("round trip mismatch\n got %+v\nwant %+v", out, in)
	}
}

func TestEncodeDataEmpty(t *testing.T) {
	if e := EncodeData(DataBlock{}); e != nil {
		t.Errorf("empty block encoded as %v", e)
	}
}

func TestDecodeDataErrors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{
			name: "species column at index 0",
			raw: `<enzymeml:data><enzymeml:formats><enzymeml:format id="f0">
<enzymeml:column index="0" type="species" species="s0"/>
</enzymeml:format></enzymeml:formats></enzymeml:data>`,
		},
		{
			name: "time column off index 0",
			raw: `<enzymeml:data><enzymeml:formats><enzymeml:format id="f0">
<enzymeml:column index="1" type="time"/>
</enzymeml:format></enzymeml:formats></enzymeml:data>`,
		},
		{
			name: "unknown column type",
			raw: `<enzymeml:data><enzymeml:formats><enzymeml:format id="f0">
<enzymeml:column index="1" type="mystery"/>
</enzymeml:format></enzymeml:formats></enzymeml:data>`,
		},
		{
			name: "file missing location",
			raw: `<enzymeml:data><enzymeml:files>
<enzymeml:file id="file0" format="f0"/>
</enzymeml:files></enzymeml:data>`,
		},
		{
			name: "measurement missing id",
			raw: `<enzymeml:data><enzymeml:listOfMeasurements>
<enzymeml:measurement name="run"/>
</enzymeml:listOfMeasurements></enzymeml:data>`,
		},
		{
			name: "init without value or prepared",
			raw: `<enzymeml:data><enzymeml:listOfMeasurements>
<enzymeml:measurement id="m0"><enzymeml:init species="s0"/></enzymeml:measurement>
</enzymeml:listOfMeasurements></enzymeml:data>`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := `<annotation xmlns:enzymeml="https://www.enzymeml.org/v2">` + tt.raw + `</annotation>`
			doc, err := xmltree.Parse([]byte(raw))
			if err != nil {
				t.Fatal(err)
			}
			_, err = DecodeData(doc.Root().Child("data"))
			if !stderrors.Is(err, errors.ErrMalformedDocument) {
				t.Errorf("error = %v, want ErrMalformedDocument", err)
			}
		})
	}
}
