package archive

import (
	"sort"
	"strings"

	"github.com/enzymeml/enzymeml-go/core/errors"
	"github.com/enzymeml/enzymeml-go/core/xmltree"
	"github.com/enzymeml/enzymeml-go/internal/sbml"
)

const (
	manifestNamespace = "http://identifiers.org/combine.specifications/omex-manifest"

	formatModel    = "http://identifiers.org/combine.specifications/sbml"
	formatCSV      = "http://purl.org/NET/mediatypes/text/csv"
	formatManifest = "http://identifiers.org/combine.specifications/omex-manifest"
	formatPlain    = "http://purl.org/NET/mediatypes/application/octet-stream"
	formatJSON     = "http://purl.org/NET/mediatypes/application/json"
)

func entryFormat(location string) string {
	switch {
	case location == ManifestFile:
		return formatManifest
	case location == MetadataFile:
		return formatJSON
	case location == sbml.ModelFile:
		return formatModel
	case strings.HasSuffix(location, ".csv"):
		return formatCSV
	}
	return formatPlain
}

// renderManifest lists every archive entry with its format, marking the
// model tree as master.
func renderManifest(locations []string) []byte {
	root := xmltree.NewElement("omexManifest").SetAttr("xmlns", manifestNamespace)
	for _, loc := range locations {
		e := root.AddNew("content").
			SetAttr("location", "./"+loc).
			SetAttr("format", entryFormat(loc))
		if loc == sbml.ModelFile {
			e.SetAttr("master", "true")
		}
	}
	return root.Render()
}

// parseManifest returns the master entry location. An archive without a
// manifest or without a master entry is malformed.
func parseManifest(entries map[string][]byte) (string, error) {
	raw, ok := entries[ManifestFile]
	if !ok {
		return "", errors.NewMalformed(ManifestFile, "manifest missing from archive")
	}
	tree, err := xmltree.Parse(raw)
	if err != nil {
		return "", errors.NewMalformed(ManifestFile, err.Error())
	}
	root := tree.Root()
	if root == nil || root.Name() != "omexManifest" {
		return "", errors.NewMalformed(ManifestFile, "root element is not omexManifest")
	}
	for _, content := range root.ChildAll("content") {
		if content.Attr("master") != "true" {
			continue
		}
		location := strings.TrimPrefix(content.Attr("location"), "./")
		if location == "" {
			return "", errors.NewMalformed(content.Path(), "master entry has no location")
		}
		return location, nil
	}
	return "", errors.NewMalformed(ManifestFile, "no master entry declared")
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
