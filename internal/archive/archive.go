// Package archive saves and loads documents as multi-file archives: the
// model tree, one sidecar data file per measurement, a manifest listing
// every entry, and a metadata record with provenance and checksums. The
// default container is a zip (.omex); a tar.xz bundle variant carries the
// same contents.
package archive

import (
	"encoding/hex"
	"encoding/json"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/zeebo/blake3"

	"github.com/enzymeml/enzymeml-go/core/errors"
	"github.com/enzymeml/enzymeml-go/core/model"
	"github.com/enzymeml/enzymeml-go/internal/logging"
	"github.com/enzymeml/enzymeml-go/internal/sbml"
)

// Format identifies the archive container.
type Format string

// Archive formats.
const (
	FormatOMEX   Format = "omex"
	FormatBundle Format = "bundle"
)

// Well-known entry names.
const (
	ManifestFile = "manifest.xml"
	MetadataFile = "metadata.json"
)

// Metadata is the provenance record stored alongside the model.
type Metadata struct {
	// ArchiveID is a fresh identifier assigned at save time.
	ArchiveID string `json:"archive_id"`

	// Created is the save timestamp.
	Created time.Time `json:"created"`

	// DocumentName mirrors the document title.
	DocumentName string `json:"document_name"`

	// Creators mirror the document authors.
	Creators []*model.Creator `json:"creators,omitempty"`

	// Checksums maps entry locations to hex-encoded blake3 digests.
	Checksums map[string]string `json:"checksums"`
}

// DetectFormat inspects a file's magic bytes and returns its archive
// format.
func DetectFormat(path string) (Format, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", errors.NewIO("open", path, err)
	}
	defer file.Close()

	magic := make([]byte, 6)
	n, err := file.Read(magic)
	if err != nil {
		return "", errors.NewIO("read magic bytes", path, err)
	}

	// Check for zip magic (50 4b 03 04)
	if n >= 4 && magic[0] == 0x50 && magic[1] == 0x4b && magic[2] == 0x03 && magic[3] == 0x04 {
		return FormatOMEX, nil
	}

	// Check for XZ magic (fd 37 7a 58 5a 00)
	if n >= 6 && magic[0] == 0xfd && magic[1] == 0x37 && magic[2] == 0x7a &&
		magic[3] == 0x58 && magic[4] == 0x5a && magic[5] == 0x00 {
		return FormatBundle, nil
	}

	return "", errors.NewMalformed(path, "unknown archive magic bytes")
}

// Save writes the document as a zip archive.
func Save(doc *model.Document, path string) (*Metadata, error) {
	return SaveAs(doc, path, FormatOMEX, nil)
}

// SaveAs writes the document in the given container format. Attachments are
// free-form extra entries carried through with manifest and checksum
// records; their locations must not collide with the generated entries.
func SaveAs(doc *model.Document, path string, format Format, attachments map[string][]byte) (*Metadata, error) {
	out, err := sbml.Write(doc)
	if err != nil {
		return nil, err
	}

	entries := map[string][]byte{sbml.ModelFile: out.Model}
	var order []string
	order = append(order, sbml.ModelFile)
	for _, loc := range sortedKeys(out.Data) {
		entries[loc] = out.Data[loc]
		order = append(order, loc)
	}
	for _, loc := range sortedKeys(attachments) {
		if _, taken := entries[loc]; taken || loc == ManifestFile || loc == MetadataFile {
			return nil, errors.NewDuplicateIdentifier("archive entry", loc)
		}
		entries[loc] = attachments[loc]
		order = append(order, loc)
	}

	meta := &Metadata{
		ArchiveID:    uuid.NewString(),
		Created:      time.Now().UTC(),
		DocumentName: doc.Name,
		Creators:     doc.Creators,
		Checksums:    make(map[string]string, len(entries)),
	}
	for loc, data := range entries {
		sum := blake3.Sum256(data)
		meta.Checksums[loc] = hex.EncodeToString(sum[:])
	}
	metaData, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return nil, errors.NewIO("encode metadata", path, err)
	}
	entries[MetadataFile] = metaData
	order = append(order, MetadataFile)

	entries[ManifestFile] = renderManifest(order)
	order = append([]string{ManifestFile}, order...)

	switch format {
	case FormatBundle:
		err = writeBundle(path, order, entries)
	default:
		err = writeZip(path, order, entries)
	}
	if err != nil {
		return nil, err
	}

	logging.ArchiveWritten(path, string(format), len(entries))
	return meta, nil
}

// Load reads an archive in either container format, verifies entry
// checksums, and parses the document.
func Load(path string) (*model.Document, *Metadata, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, nil, err
	}

	var entries map[string][]byte
	switch format {
	case FormatBundle:
		entries, err = readBundle(path)
	default:
		entries, err = readZip(path)
	}
	if err != nil {
		return nil, nil, err
	}

	master, err := parseManifest(entries)
	if err != nil {
		return nil, nil, err
	}

	var meta *Metadata
	if raw, ok := entries[MetadataFile]; ok {
		meta = &Metadata{}
		if err := json.Unmarshal(raw, meta); err != nil {
			return nil, nil, errors.NewMalformed(MetadataFile, err.Error())
		}
		for loc, want := range meta.Checksums {
			data, ok := entries[loc]
			if !ok {
				return nil, nil, errors.NewMalformed(loc, "entry listed in metadata missing from archive")
			}
			sum := blake3.Sum256(data)
			if hex.EncodeToString(sum[:]) != want {
				return nil, nil, errors.NewMalformed(loc, "checksum mismatch")
			}
		}
	}

	modelBytes, ok := entries[master]
	if !ok {
		return nil, nil, errors.NewMalformed(master, "master entry missing from archive")
	}
	sidecars := make(map[string][]byte)
	for loc, data := range entries {
		if loc != master && loc != ManifestFile && loc != MetadataFile {
			sidecars[loc] = data
		}
	}

	doc, err := sbml.Read(&sbml.Output{Model: modelBytes, Data: sidecars})
	if err != nil {
		return nil, nil, err
	}

	logging.ArchiveRead(path, string(format))
	return doc, meta, nil
}
