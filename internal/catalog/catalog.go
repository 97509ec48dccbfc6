// Package catalog keeps a local registry of saved archives in a SQLite
// database, so documents can be located by name without rescanning the
// filesystem.
package catalog

import (
	"database/sql"
	"time"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"github.com/enzymeml/enzymeml-go/core/errors"
	"github.com/enzymeml/enzymeml-go/internal/archive"
	"github.com/enzymeml/enzymeml-go/internal/logging"
)

// Entry is one registered archive.
type Entry struct {
	// ArchiveID is the archive's stable identifier.
	ArchiveID string `json:"archiveId"`

	// Path is the filesystem location the archive was registered from.
	Path string `json:"path"`

	// DocumentName is the name of the document inside the archive.
	DocumentName string `json:"documentName"`

	// Created is when the archive was written.
	Created time.Time `json:"created"`

	// Creators counts the document authors recorded in the archive.
	Creators int `json:"creators"`

	// ModelChecksum is the blake3 digest of the model entry, if recorded.
	ModelChecksum string `json:"modelChecksum,omitempty"`
}

// Catalog wraps the registry database.
type Catalog struct {
	db   *sql.DB
	path string
}

// Open creates or opens the registry database at path.
func Open(path string) (*Catalog, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.NewIO("open catalog", path, err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS archives (
		archive_id TEXT PRIMARY KEY,
		path TEXT NOT NULL,
		document_name TEXT NOT NULL,
		created TEXT NOT NULL,
		creators INTEGER NOT NULL,
		model_checksum TEXT NOT NULL DEFAULT ''
	)`); err != nil {
		db.Close()
		return nil, errors.NewIO("init catalog", path, err)
	}
	return &Catalog{db: db, path: path}, nil
}

// Close releases the database handle.
func (c *Catalog) Close() error {
	return c.db.Close()
}

// Add registers an archive under its metadata record. Re-adding the same
// archive id is a DuplicateIdentifierError.
func (c *Catalog) Add(path string, meta *archive.Metadata) (*Entry, error) {
	if meta == nil || meta.ArchiveID == "" {
		return nil, errors.NewValidation("archiveId", "archive carries no metadata record")
	}
	e := &Entry{
		ArchiveID:     meta.ArchiveID,
		Path:          path,
		DocumentName:  meta.DocumentName,
		Created:       meta.Created,
		Creators:      len(meta.Creators),
		ModelChecksum: meta.Checksums["model.xml"],
	}
	_, err := c.db.Exec(
		`INSERT INTO archives (archive_id, path, document_name, created, creators, model_checksum)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.ArchiveID, e.Path, e.DocumentName, e.Created.UTC().Format(time.RFC3339Nano),
		e.Creators, e.ModelChecksum,
	)
	if err != nil {
		if exists, lookupErr := c.has(e.ArchiveID); lookupErr == nil && exists {
			return nil, errors.NewDuplicateIdentifier("archive", e.ArchiveID)
		}
		return nil, errors.NewIO("register archive", c.path, err)
	}
	logging.CatalogChanged("add", e.DocumentName)
	return e, nil
}

func (c *Catalog) has(archiveID string) (bool, error) {
	var n int
	err := c.db.QueryRow(`SELECT COUNT(*) FROM archives WHERE archive_id = ?`, archiveID).Scan(&n)
	return n > 0, err
}

// List returns all entries ordered by document name, then creation time.
func (c *Catalog) List() ([]*Entry, error) {
	rows, err := c.db.Query(
		`SELECT archive_id, path, document_name, created, creators, model_checksum
		 FROM archives ORDER BY document_name, created`)
	if err != nil {
		return nil, errors.NewIO("list archives", c.path, err)
	}
	defer func() { _ = rows.Close() }()

	var entries []*Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewIO("list archives", c.path, err)
	}
	return entries, nil
}

// Find returns the entries whose document name matches exactly.
func (c *Catalog) Find(name string) ([]*Entry, error) {
	rows, err := c.db.Query(
		`SELECT archive_id, path, document_name, created, creators, model_checksum
		 FROM archives WHERE document_name = ? ORDER BY created`, name)
	if err != nil {
		return nil, errors.NewIO("find archives", c.path, err)
	}
	defer func() { _ = rows.Close() }()

	var entries []*Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewIO("find archives", c.path, err)
	}
	return entries, nil
}

// Get returns the entry for an archive id.
func (c *Catalog) Get(archiveID string) (*Entry, error) {
	row := c.db.QueryRow(
		`SELECT archive_id, path, document_name, created, creators, model_checksum
		 FROM archives WHERE archive_id = ?`, archiveID)
	e, err := scanEntry(row)
	if err == sql.ErrNoRows {
		return nil, errors.NewReference("archive", archiveID, "catalog")
	}
	return e, err
}

// Remove deletes an entry by archive id.
func (c *Catalog) Remove(archiveID string) error {
	res, err := c.db.Exec(`DELETE FROM archives WHERE archive_id = ?`, archiveID)
	if err != nil {
		return errors.NewIO("remove archive", c.path, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.NewIO("remove archive", c.path, err)
	}
	if n == 0 {
		return errors.NewReference("archive", archiveID, "catalog")
	}
	logging.CatalogChanged("remove", archiveID)
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (*Entry, error) {
	var e Entry
	var created string
	if err := row.Scan(&e.ArchiveID, &e.Path, &e.DocumentName, &created, &e.Creators, &e.ModelChecksum); err != nil {
		return nil, err
	}
	t, err := time.Parse(time.RFC3339Nano, created)
	if err != nil {
		return nil, errors.NewMalformed("catalog entry "+e.ArchiveID, "bad created timestamp: "+err.Error())
	}
	e.Created = t
	return &e, nil
}
