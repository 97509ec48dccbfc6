package annotation

import (
	"strconv"

	"github.com/enzymeml/enzymeml-go/core/errors"
	"github.com/enzymeml/enzymeml-go/core/xmltree"
)

// Column types within a tabular format.
const (
	ColumnTime    = "time"
	ColumnSpecies = "species"
)

// Column describes one column of a sidecar data file. Index 0 is reserved
// for the time column.
type Column struct {
	Index        int
	Type         string
	SpeciesID    string
	UnitID       string
	DataType     string
	IsCalculated bool
}

// Format is the ordered column layout shared by one or more files.
type Format struct {
	ID      string
	Columns []Column
}

// File binds a sidecar location to its format.
type File struct {
	ID       string
	Location string
	Format   string
}

// Init records the starting amount of one species in a measurement. At
// least one of Value and Prepared is present.
type Init struct {
	SpeciesID string
	Value     *float64
	UnitID    string
	Prepared  *float64
}

// MeasurementMeta is the annotation-side description of one measurement.
type MeasurementMeta struct {
	ID         string
	Name       string
	FileID     string
	GroupID    string
	Conditions Conditions
	Inits      []Init
}

// DataBlock is the full indexed tabular layout.
type DataBlock struct {
	Formats      []Format
	Files        []File
	Measurements []MeasurementMeta
}

// EncodeData renders the tabular layout, or nil when it holds no
// measurements.
func EncodeData(b DataBlock) *xmltree.Element {
	if len(b.Measurements) == 0 {
		return nil
	}
	root := el("data")

	formats := root.AddNew(Prefix + ":formats")
	for _, f := range b.Formats {
		fe := formats.AddNew(Prefix + ":format").SetAttr("id", f.ID)
		for _, col := range f.Columns {
			ce := fe.AddNew(Prefix + ":column").
				SetAttr("index", strconv.Itoa(col.Index)).
				SetAttr("type", col.Type)
			if col.SpeciesID != "" {
				ce.SetAttr("species", col.SpeciesID)
			}
			if col.UnitID != "" {
				ce.SetAttr("unit", col.UnitID)
			}
			if col.DataType != "" {
				ce.SetAttr("datatype", col.DataType)
			}
			if col.Type == ColumnSpecies {
				ce.SetAttr("isCalculated", strconv.FormatBool(col.IsCalculated))
			}
		}
	}

	files := root.AddNew(Prefix + ":files")
	for _, f := range b.Files {
		files.AddNew(Prefix + ":file").
			SetAttr("id", f.ID).
			SetAttr("location", f.Location).
			SetAttr("format", f.Format)
	}

	list := root.AddNew(Prefix + ":listOfMeasurements")
	for _, m := range b.Measurements {
		me := list.AddNew(Prefix + ":measurement").
			SetAttr("id", m.ID).
			SetAttr("name", m.Name)
		if m.FileID != "" {
			me.SetAttr("file", m.FileID)
		}
		if m.GroupID != "" {
			me.SetAttr("group", m.GroupID)
		}
		if cond := EncodeConditions(m.Conditions); cond != nil {
			me.Add(cond)
		}
		for _, init := range m.Inits {
			ie := me.AddNew(Prefix + ":init").
				SetAttr("species", init.SpeciesID)
			if init.Value != nil {
				ie.SetAttr("value", num(*init.Value))
			}
			if init.UnitID != "" {
				ie.SetAttr("unit", init.UnitID)
			}
			if init.Prepared != nil {
				ie.SetAttr("prepared", num(*init.Prepared))
			}
		}
	}
	return root
}

// DecodeData reads the tabular layout from an annotation node. A nil node
// yields an empty block.
func DecodeData(n *xmltree.Node) (DataBlock, error) {
	var b DataBlock
	if n == nil {
		return b, nil
	}

	if formats := n.Child("formats"); formats != nil {
		for _, fe := range formats.ChildAll("format") {
			f := Format{ID: fe.Attr("id")}
			if f.ID == "" {
				return DataBlock{}, errors.NewMalformed(fe.Path(), "format needs an id attribute")
			}
			for _, ce := range fe.ChildAll("column") {
				col, err := decodeColumn(ce)
				if err != nil {
					return DataBlock{}, err
				}
				f.Columns = append(f.Columns, col)
			}
			b.Formats = append(b.Formats, f)
		}
	}

	if files := n.Child("files"); files != nil {
		for _, fe := range files.ChildAll("file") {
			f := File{ID: fe.Attr("id"), Location: fe.Attr("location"), Format: fe.Attr("format")}
			if f.ID == "" || f.Location == "" || f.Format == "" {
				return DataBlock{}, errors.NewMalformed(fe.Path(), "file needs id, location and format attributes")
			}
			b.Files = append(b.Files, f)
		}
	}

	if list := n.Child("listOfMeasurements"); list != nil {
		for _, me := range list.ChildAll("measurement") {
			m := MeasurementMeta{
				ID:      me.Attr("id"),
				Name:    me.Attr("name"),
				FileID:  me.Attr("file"),
				GroupID: me.Attr("group"),
			}
			if m.ID == "" {
				return DataBlock{}, errors.NewMalformed(me.Path(), "measurement needs an id attribute")
			}
			cond, err := DecodeConditions(me.Child("conditions"))
			if err != nil {
				return DataBlock{}, err
			}
			m.Conditions = cond
			for _, ie := range me.ChildAll("init") {
				init := Init{SpeciesID: ie.Attr("species"), UnitID: ie.Attr("unit")}
				if init.SpeciesID == "" {
					return DataBlock{}, errors.NewMalformed(ie.Path(), "init needs a species attribute")
				}
				if ie.HasAttr("value") {
					v, err := parseNum(ie, "value")
					if err != nil {
						return DataBlock{}, err
					}
					init.Value = &v
				}
				if ie.HasAttr("prepared") {
					prep, err := parseNum(ie, "prepared")
					if err != nil {
						return DataBlock{}, err
					}
					init.Prepared = &prep
				}
				if init.Value == nil && init.Prepared == nil {
					return DataBlock{}, errors.NewMalformed(ie.Path(), "init needs a value or prepared attribute")
				}
				m.Inits = append(m.Inits, init)
			}
			b.Measurements = append(b.Measurements, m)
		}
	}
	return b, nil
}

func decodeColumn(ce *xmltree.Node) (Column, error) {
	var col Column
	if !ce.HasAttr("index") || !ce.HasAttr("type") {
		return col, errors.NewMalformed(ce.Path(), "column needs index and type attributes")
	}
	index, err := strconv.Atoi(ce.Attr("index"))
	if err != nil {
		return col, errors.NewMalformed(ce.Path(), "column index is not a number: "+ce.Attr("index"))
	}
	col.Index = index
	col.Type = ce.Attr("type")
	col.SpeciesID = ce.Attr("species")
	col.UnitID = ce.Attr("unit")
	col.DataType = ce.Attr("datatype")
	switch col.Type {
	case ColumnTime:
		if col.Index != 0 {
			return col, errors.NewMalformed(ce.Path(), "time column must be at index 0")
		}
	case ColumnSpecies:
		if col.Index == 0 {
			return col, errors.NewMalformed(ce.Path(), "index 0 is reserved for the time column")
		}
		if col.SpeciesID == "" {
			return col, errors.NewMalformed(ce.Path(), "species column needs a species attribute")
		}
		if ce.HasAttr("isCalculated") {
			col.IsCalculated, err = strconv.ParseBool(ce.Attr("isCalculated"))
			if err != nil {
				return col, errors.NewMalformed(ce.Path(), "isCalculated is not a boolean: "+ce.Attr("isCalculated"))
			}
		}
	default:
		return col, errors.NewMalformed(ce.Path(), "unknown column type "+col.Type)
	}
	return col, nil
}
