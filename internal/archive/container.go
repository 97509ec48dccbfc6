package archive

import (
	"archive/tar"
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ulikunitz/xz"

	"github.com/enzymeml/enzymeml-go/core/errors"
)

// entry sizes are bounded by measurement data; cap extraction anyway so a
// damaged archive cannot exhaust memory.
const maxEntrySize = 1 << 30

func writeZip(path string, order []string, entries map[string][]byte) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.NewIO("create", path, err)
	}
	defer file.Close()

	zw := zip.NewWriter(file)
	for _, loc := range order {
		w, err := zw.Create(loc)
		if err != nil {
			return errors.NewIO("write", loc, err)
		}
		if _, err := w.Write(entries[loc]); err != nil {
			return errors.NewIO("write", loc, err)
		}
	}
	if err := zw.Close(); err != nil {
		return errors.NewIO("close", path, err)
	}
	return nil
}

func writeBundle(path string, order []string, entries map[string][]byte) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.NewIO("create", path, err)
	}
	defer file.Close()

	xw, err := xz.NewWriter(file)
	if err != nil {
		return errors.NewIO("create xz writer", path, err)
	}
	tw := tar.NewWriter(xw)

	for _, loc := range order {
		data := entries[loc]
		hdr := &tar.Header{
			Name: loc,
			Mode: 0644,
			Size: int64(len(data)),
		}
		if err := tw.WriteHeader(hdr); err != nil {
			return errors.NewIO("write header", loc, err)
		}
		if _, err := tw.Write(data); err != nil {
			return errors.NewIO("write", loc, err)
		}
	}
	if err := tw.Close(); err != nil {
		return errors.NewIO("close tar", path, err)
	}
	if err := xw.Close(); err != nil {
		return errors.NewIO("close xz", path, err)
	}
	return nil
}

// safeEntryName rejects absolute paths and parent traversal in archive
// entry names.
func safeEntryName(name string) (string, error) {
	clean := filepath.ToSlash(filepath.Clean(name))
	if clean == "." || strings.HasPrefix(clean, "/") || strings.HasPrefix(clean, "..") {
		return "", errors.NewMalformed(name, "unsafe entry path")
	}
	return clean, nil
}

// readZip extracts a zip archive into a scratch directory that is removed
// before returning, and yields the entry contents by location.
func readZip(path string) (map[string][]byte, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, errors.NewIO("open", path, err)
	}
	defer zr.Close()

	scratch, err := os.MkdirTemp("", "enzymeml-omex-")
	if err != nil {
		return nil, errors.NewIO("create scratch dir", path, err)
	}
	defer os.RemoveAll(scratch)

	entries := make(map[string][]byte)
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		name, err := safeEntryName(f.Name)
		if err != nil {
			return nil, err
		}
		rc, err := f.Open()
		if err != nil {
			return nil, errors.NewIO("open entry", name, err)
		}
		data, err := extractEntry(scratch, name, rc)
		rc.Close()
		if err != nil {
			return nil, err
		}
		entries[name] = data
	}
	return entries, nil
}

// readBundle extracts a tar.xz archive the same way readZip handles zips.
func readBundle(path string) (map[string][]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.NewIO("open", path, err)
	}
	defer file.Close()

	xr, err := xz.NewReader(file)
	if err != nil {
		return nil, errors.NewIO("open xz reader", path, err)
	}
	tr := tar.NewReader(xr)

	scratch, err := os.MkdirTemp("", "enzymeml-bundle-")
	if err != nil {
		return nil, errors.NewIO("create scratch dir", path, err)
	}
	defer os.RemoveAll(scratch)

	entries := make(map[string][]byte)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.NewIO("read entry", path, err)
		}
		if hdr.Typeflag != tar.TypeReg {
			continue
		}
		name, err := safeEntryName(hdr.Name)
		if err != nil {
			return nil, err
		}
		data, err := extractEntry(scratch, name, tr)
		if err != nil {
			return nil, err
		}
		entries[name] = data
	}
	return entries, nil
}

// extractEntry spools an entry through the scratch directory and reads it
// back, enforcing the size cap.
func extractEntry(scratch, name string, r io.Reader) ([]byte, error) {
	dest := filepath.Join(scratch, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return nil, errors.NewIO("create entry dir", name, err)
	}
	out, err := os.Create(dest)
	if err != nil {
		return nil, errors.NewIO("create entry", name, err)
	}
	n, err := io.Copy(out, io.LimitReader(r, maxEntrySize+1))
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return nil, errors.NewIO("extract entry", name, err)
	}
	if n > maxEntrySize {
		return nil, errors.NewMalformed(name, "entry exceeds size limit")
	}
	data, err := os.ReadFile(dest)
	if err != nil {
		return nil, errors.NewIO("read entry", name, err)
	}
	return data, nil
}
