// Package annotation encodes and decodes the vendor extension blocks of the
// wire format. Three shapes exist: flat optional child elements (species
// details), multi-attribute groups (experimental conditions) and the indexed
// tabular layout that binds measurements to sidecar data files.
package annotation

import (
	"strconv"

	"github.com/enzymeml/enzymeml-go/core/errors"
	"github.com/enzymeml/enzymeml-go/core/xmltree"
)

// Namespace is the vendor extension namespace.
const (
	Prefix    = "enzymeml"
	Namespace = "https://www.enzymeml.org/v2"
)

func el(name string) *xmltree.Element {
	return xmltree.NewElement(Prefix + ":" + name)
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func parseNum(n *xmltree.Node, attr string) (float64, error) {
	raw := n.Attr(attr)
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errors.NewMalformed(n.Path(), "attribute "+attr+" is not a number: "+raw)
	}
	return v, nil
}

// ProteinDetails is the flat annotation payload of a protein species.
type ProteinDetails struct {
	Sequence      string
	ECNumber      string
	UniProtID     string
	Organism      string
	OrganismTaxID string
}

// EncodeProtein renders the protein details, or nil when every field is
// empty.
func EncodeProtein(d ProteinDetails) *xmltree.Element {
	root := el("protein")
	if d.Sequence != "" {
		root.AddNew(Prefix + ":sequence").SetText(d.Sequence)
	}
	if d.ECNumber != "" {
		root.AddNew(Prefix + ":ECnumber").SetText(d.ECNumber)
	}
	if d.UniProtID != "" {
		root.AddNew(Prefix + ":uniprotID").SetText(d.UniProtID)
	}
	if d.Organism != "" {
		root.AddNew(Prefix + ":organism").SetText(d.Organism)
	}
	if d.OrganismTaxID != "" {
		root.AddNew(Prefix + ":organismTaxID").SetText(d.OrganismTaxID)
	}
	if len(root.Children) == 0 {
		return nil
	}
	return root
}

// DecodeProtein reads the protein details from an annotation node. A nil
// node yields zero details.
func DecodeProtein(n *xmltree.Node) ProteinDetails {
	var d ProteinDetails
	if n == nil {
		return d
	}
	if c := n.Child("sequence"); c != nil {
		d.Sequence = c.Text()
	}
	if c := n.Child("ECnumber"); c != nil {
		d.ECNumber = c.Text()
	}
	if c := n.Child("uniprotID"); c != nil {
		d.UniProtID = c.Text()
	}
	if c := n.Child("organism"); c != nil {
		d.Organism = c.Text()
	}
	if c := n.Child("organismTaxID"); c != nil {
		d.OrganismTaxID = c.Text()
	}
	return d
}

// MoleculeDetails is the flat annotation payload of a small-molecule
// species.
type MoleculeDetails struct {
	SMILES   string
	InChI    string
	InChIKey string
	Synonyms []string
}

// EncodeMolecule renders the small-molecule details, or nil when every field
// is empty.
func EncodeMolecule(d MoleculeDetails) *xmltree.Element {
	root := el("smallMolecule")
	if d.SMILES != "" {
		root.AddNew(Prefix + ":smiles").SetText(d.SMILES)
	}
	if d.InChI != "" {
		root.AddNew(Prefix + ":inchi").SetText(d.InChI)
	}
	if d.InChIKey != "" {
		root.AddNew(Prefix + ":inchikey").SetText(d.InChIKey)
	}
	for _, syn := range d.Synonyms {
		root.AddNew(Prefix + ":synonym").SetText(syn)
	}
	if len(root.Children) == 0 {
		return nil
	}
	return root
}

// DecodeMolecule reads the small-molecule details from an annotation node.
func DecodeMolecule(n *xmltree.Node) MoleculeDetails {
	var d MoleculeDetails
	if n == nil {
		return d
	}
	if c := n.Child("smiles"); c != nil {
		d.SMILES = c.Text()
	}
	if c := n.Child("inchi"); c != nil {
		d.InChI = c.Text()
	}
	if c := n.Child("inchikey"); c != nil {
		d.InChIKey = c.Text()
	}
	for _, c := range n.ChildAll("synonym") {
		d.Synonyms = append(d.Synonyms, c.Text())
	}
	return d
}

// EncodeComplex renders the participant list of a complex, or nil when
// empty.
func EncodeComplex(participants []string) *xmltree.Element {
	if len(participants) == 0 {
		return nil
	}
	root := el("complex")
	for _, p := range participants {
		root.AddNew(Prefix + ":participant").SetText(p)
	}
	return root
}

// DecodeComplex reads the participant list from an annotation node.
func DecodeComplex(n *xmltree.Node) []string {
	if n == nil {
		return nil
	}
	var out []string
	for _, c := range n.ChildAll("participant") {
		out = append(out, c.Text())
	}
	return out
}

// EncodeReferences renders the document reference list, or nil when empty.
func EncodeReferences(refs []string) *xmltree.Element {
	if len(refs) == 0 {
		return nil
	}
	root := el("references")
	for _, r := range refs {
		root.AddNew(Prefix + ":reference").SetText(r)
	}
	return root
}

// DecodeReferences reads the document reference list from an annotation
// node.
func DecodeReferences(n *xmltree.Node) []string {
	if n == nil {
		return nil
	}
	var out []string
	for _, c := range n.ChildAll("reference") {
		out = append(out, c.Text())
	}
	return out
}
