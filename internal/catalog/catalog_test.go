package catalog

import (
	stderrors "errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/enzymeml/enzymeml-go/core/errors"
	"github.com/enzymeml/enzymeml-go/core/model"
	"github.com/enzymeml/enzymeml-go/internal/archive"
)

func openCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := Open(filepath.Join(t.TempDir(), "catalog.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func metaFor(id, name string, creators int) *archive.Metadata {
	m := &archive.Metadata{
		ArchiveID:    id,
		Created:      time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC),
		DocumentName: name,
		Checksums:    map[string]string{"model.xml": "deadbeef"},
	}
	for i := 0; i < creators; i++ {
		m.Creators = append(m.Creators, &model.Creator{GivenName: "A", FamilyName: "B"})
	}
	return m
}

func TestAddGetRemove(t *testing.T) {
	c := openCatalog(t)

	entry, err := c.Add("/data/assay.omex", metaFor("id-1", "assay", 2))
	if err != nil {
		t.Fatal(err)
	}
	if entry.Creators != 2 || entry.ModelChecksum != "deadbeef" {
		t.Errorf("entry = %+v", entry)
	}

	got, err := c.Get("id-1")
	if err != nil {
		t.Fatal(err)
	}
	if got.DocumentName != "assay" || got.Path != "/data/assay.omex" {
		t.Errorf("Get = %+v", got)
	}
	if !got.Created.Equal(entry.Created) {
		t.Errorf("Created = %v, want %v", got.Created, entry.Created)
	}

	if err := c.Remove("id-1"); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Get("id-1"); !stderrors.Is(err, errors.ErrReference) {
		t.Errorf("Get after remove = %v, want ErrReference", err)
	}
}

func TestAddDuplicate(t *testing.T) {
	c := openCatalog(t)

	if _, err := c.Add("/data/a.omex", metaFor("id-1", "assay", 0)); err != nil {
		t.Fatal(err)
	}
	_, err := c.Add("/data/b.omex", metaFor("id-1", "other", 0))
	if !stderrors.Is(err, errors.ErrDuplicateIdentifier) {
		t.Errorf("error = %v, want ErrDuplicateIdentifier", err)
	}
}

func TestAddWithoutMetadata(t *testing.T) {
	c := openCatalog(t)
	if _, err := c.Add("/data/a.omex", nil); !stderrors.Is(err, errors.ErrValidation) {
		t.Errorf("error = %v, want ErrValidation", err)
	}
}

func TestListAndFind(t *testing.T) {
	c := openCatalog(t)

	for i, name := range []string{"beta", "alpha", "alpha"} {
		meta := metaFor("id-"+string(rune('a'+i)), name, 0)
		meta.Created = meta.Created.Add(time.Duration(i) * time.Hour)
		if _, err := c.Add("/data/x.omex", meta); err != nil {
			t.Fatal(err)
		}
	}

	entries, err := c.List()
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.DocumentName)
	}
	want := []string{"alpha", "alpha", "beta"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("List order = %v, want %v", names, want)
		}
	}

	alphas, err := c.Find("alpha")
	if err != nil {
		t.Fatal(err)
	}
	if len(alphas) != 2 {
		t.Fatalf("Find(alpha) = %d entries, want 2", len(alphas))
	}
	if !alphas[0].Created.Before(alphas[1].Created) {
		t.Error("Find results not ordered by creation time")
	}

	none, err := c.Find("gamma")
	if err != nil {
		t.Fatal(err)
	}
	if len(none) != 0 {
		t.Errorf("Find(gamma) = %v", none)
	}
}

func TestRemoveUnknown(t *testing.T) {
	c := openCatalog(t)
	if err := c.Remove("missing"); !stderrors.Is(err, errors.ErrReference) {
		t.Errorf("error = %v, want ErrReference", err)
	}
}

func TestReopenPersists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.db")

	c, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.Add("/data/a.omex", metaFor("id-1", "assay", 1)); err != nil {
		t.Fatal(err)
	}
	if err := c.Close(); err != nil {
		t.Fatal(err)
	}

	c2, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer c2.Close()
	entries, err := c2.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].ArchiveID != "id-1" {
		t.Errorf("entries = %+v", entries)
	}
}
