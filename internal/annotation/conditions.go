package annotation

import (
	"github.com/enzymeml/enzymeml-go/core/errors"
	"github.com/enzymeml/enzymeml-go/core/xmltree"
)

// Conditions is the multi-attribute annotation group recording the
// experimental environment. Each subgroup is emitted all-or-nothing: a
// temperature needs both its value and its unit, a pH needs its value.
type Conditions struct {
	PH              *float64
	Temperature     *float64
	TemperatureUnit string
}

// EncodeConditions renders the conditions group. Subgroups with incomplete
// attribute sets are omitted entirely; when no subgroup is complete the
// result is nil.
func EncodeConditions(c Conditions) *xmltree.Element {
	root := el("conditions")
	if c.Temperature != nil && c.TemperatureUnit != "" {
		root.AddNew(Prefix + ":temperature").
			SetAttr("value", num(*c.Temperature)).
			SetAttr("unit", c.TemperatureUnit)
	}
	if c.PH != nil {
		root.AddNew(Prefix + ":ph").SetAttr("value", num(*c.PH))
	}
	if len(root.Children) == 0 {
		return nil
	}
	return root
}

// DecodeConditions reads a conditions group. A subgroup missing one of its
// attributes is a malformed document, not a partial value.
func DecodeConditions(n *xmltree.Node) (Conditions, error) {
	var c Conditions
	if n == nil {
		return c, nil
	}
	if temp := n.Child("temperature"); temp != nil {
		if !temp.HasAttr("value") || !temp.HasAttr("unit") {
			return Conditions{}, errors.NewMalformed(temp.Path(), "temperature needs value and unit attributes")
		}
		v, err := parseNum(temp, "value")
		if err != nil {
			return Conditions{}, err
		}
		c.Temperature = &v
		c.TemperatureUnit = temp.Attr("unit")
	}
	if ph := n.Child("ph"); ph != nil {
		if !ph.HasAttr("value") {
			return Conditions{}, errors.NewMalformed(ph.Path(), "ph needs a value attribute")
		}
		v, err := parseNum(ph, "value")
		if err != nil {
			return Conditions{}, err
		}
		c.PH = &v
	}
	return c, nil
}
