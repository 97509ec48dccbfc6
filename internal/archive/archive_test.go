package archive

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/enzymeml/enzymeml-go/core/errors"
	"github.com/enzymeml/enzymeml-go/core/model"
	"github.com/enzymeml/enzymeml-go/core/units"
)

func sampleDocument(t *testing.T) *model.Document {
	t.Helper()
	doc := model.New("assay")
	doc.AddCreator(&model.Creator{GivenName: "Jan", FamilyName: "Range"})

	ml, err := units.Litre("m")
	if err != nil {
		t.Fatal(err)
	}
	if err := doc.AddVessel(&model.Vessel{Name: "tube", Volume: 1, Unit: ml, Constant: true}); err != nil {
		t.Fatal(err)
	}
	if err := doc.AddSmallMolecule(&model.SmallMolecule{Name: "substrate", VesselID: "v0"}); err != nil {
		t.Fatal(err)
	}

	mM, err := units.Molarity("m")
	if err != nil {
		t.Fatal(err)
	}
	m := &model.Measurement{Name: "run"}
	sd, err := model.NewMeasurementData("s0", []float64{0, 30, 60}, []float64{10, 6, 3}, units.Second(), mM)
	if err != nil {
		t.Fatal(err)
	}
	if err := m.AddSpeciesData(sd); err != nil {
		t.Fatal(err)
	}
	if err := doc.AddMeasurement(m); err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestSaveLoadZip(t *testing.T) {
	doc := sampleDocument(t)
	path := filepath.Join(t.TempDir(), "assay.omex")

	meta, err := Save(doc, path)
	if err != nil {
		t.Fatal(err)
	}
	if meta.ArchiveID == "" {
		t.Error("no archive id assigned")
	}
	if meta.DocumentName != "assay" {
		t.Errorf("DocumentName = %q", meta.DocumentName)
	}
	for _, loc := range []string{"model.xml", "data/m0.csv"} {
		if meta.Checksums[loc] == "" {
			t.Errorf("no checksum recorded for %s", loc)
		}
	}

	format, err := DetectFormat(path)
	if err != nil {
		t.Fatal(err)
	}
	if format != FormatOMEX {
		t.Errorf("DetectFormat = %q, want omex", format)
	}

	got, loadedMeta, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loadedMeta == nil || loadedMeta.ArchiveID != meta.ArchiveID {
		t.Errorf("metadata = %+v, want archive id %s", loadedMeta, meta.ArchiveID)
	}
	if got.Name != doc.Name {
		t.Errorf("Name = %q", got.Name)
	}
	if !reflect.DeepEqual(got.Measurements, doc.Measurements) {
		t.Errorf("Measurements mismatch\n got %+v\nwant %+v", got.Measurements[0], doc.Measurements[0])
	}
	if !reflect.DeepEqual(got.Vessels, doc.Vessels) {
		t.Errorf("Vessels mismatch")
	}
}

func TestSaveLoadBundle(t *testing.T) {
	doc := sampleDocument(t)
	path := filepath.Join(t.TempDir(), "assay.tar.xz")

	if _, err := SaveAs(doc, path, FormatBundle, nil); err != nil {
		t.Fatal(err)
	}
	format, err := DetectFormat(path)
	if err != nil {
		t.Fatal(err)
	}
	if format != FormatBundle {
		t.Errorf("DetectFormat = %q, want bundle", format)
	}

	got, _, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != doc.Name || len(got.Measurements) != 1 {
		t.Errorf("loaded document = %+v", got)
	}
}

func TestAttachments(t *testing.T) {
	doc := sampleDocument(t)
	path := filepath.Join(t.TempDir(), "assay.omex")

	attachments := map[string][]byte{"notes/protocol.txt": []byte("incubate 30 min")}
	meta, err := SaveAs(doc, path, FormatOMEX, attachments)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := meta.Checksums["notes/protocol.txt"]; !ok {
		t.Error("attachment missing from checksums")
	}

	if _, _, err := Load(path); err != nil {
		t.Fatal(err)
	}

	// Colliding locations are rejected.
	_, err = SaveAs(doc, path, FormatOMEX, map[string][]byte{"model.xml": []byte("x")})
	if !stderrors.Is(err, errors.ErrDuplicateIdentifier) {
		t.Errorf("error = %v, want ErrDuplicateIdentifier", err)
	}
}

func TestLoadChecksumMismatch(t *testing.T) {
	doc := sampleDocument(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "assay.omex")
	if _, err := Save(doc, path); err != nil {
		t.Fatal(err)
	}

	// Rebuild the zip with a corrupted sidecar but the original metadata.
	entries, err := readZip(path)
	if err != nil {
		t.Fatal(err)
	}
	entries["data/m0.csv"] = []byte("0,999\n")
	tampered := filepath.Join(dir, "tampered.omex")
	if err := writeZip(tampered, sortedKeys(entries), entries); err != nil {
		t.Fatal(err)
	}

	_, _, err = Load(tampered)
	if !stderrors.Is(err, errors.ErrMalformedDocument) {
		t.Errorf("error = %v, want ErrMalformedDocument", err)
	}
}

func TestLoadMissingManifest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bare.omex")
	entries := map[string][]byte{"model.xml": []byte("<sbml/>")}
	if err := writeZip(path, []string{"model.xml"}, entries); err != nil {
		t.Fatal(err)
	}

	_, _, err := Load(path)
	if !stderrors.Is(err, errors.ErrMalformedDocument) {
		t.Errorf("error = %v, want ErrMalformedDocument", err)
	}
}

func TestDetectFormatUnknown(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk.bin")
	if err := os.WriteFile(path, []byte("not an archive"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := DetectFormat(path)
	if !stderrors.Is(err, errors.ErrMalformedDocument) {
		t.Errorf("error = %v, want ErrMalformedDocument", err)
	}
}

func TestSafeEntryName(t *testing.T) {
	if _, err := safeEntryName("../../etc/passwd"); err == nil {
		t.Error("parent traversal accepted")
	}
	if _, err := safeEntryName("/abs/path"); err == nil {
		t.Error("absolute path accepted")
	}
	name, err := safeEntryName("data/m0.csv")
	if err != nil {
		t.Fatal(err)
	}
	if name != "data/m0.csv" {
		t.Errorf("name = %q", name)
	}
}
