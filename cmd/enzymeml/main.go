// Command enzymeml inspects, validates, and converts enzyme kinetics
// archives, and keeps a local catalog of saved documents.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"gopkg.in/yaml.v3"

	"github.com/enzymeml/enzymeml-go/core/model"
	"github.com/enzymeml/enzymeml-go/internal/archive"
	"github.com/enzymeml/enzymeml-go/internal/catalog"
	"github.com/enzymeml/enzymeml-go/internal/logging"
)

const version = "0.1.0"

// CLI defines the command-line interface for enzymeml.
var CLI struct {
	// Global flags
	LogLevel  string `name:"log-level" default:"warn" enum:"debug,info,warn,error" help:"Log verbosity"`
	LogFormat string `name:"log-format" default:"text" enum:"text,json" help:"Log output format"`
	Catalog   string `name:"catalog" help:"Catalog database path (default: ~/.enzymeml/catalog.db)" type:"path"`

	Inspect  InspectCmd   `cmd:"" help:"Print the document stored in an archive"`
	Validate ValidateCmd  `cmd:"" help:"Check an archive's document for consistency"`
	Convert  ConvertCmd   `cmd:"" help:"Convert an archive between container formats"`
	Cat      CatalogGroup `cmd:"" name:"catalog" help:"Local archive registry"`
	Version  VersionCmd   `cmd:"" help:"Print version information"`
}

// CatalogGroup contains registry operations.
type CatalogGroup struct {
	Add    CatalogAddCmd    `cmd:"" help:"Register an archive in the catalog"`
	List   CatalogListCmd   `cmd:"" help:"List registered archives"`
	Find   CatalogFindCmd   `cmd:"" help:"Find registered archives by document name"`
	Remove CatalogRemoveCmd `cmd:"" help:"Remove an archive from the catalog"`
}

// InspectCmd prints an archive's document.
type InspectCmd struct {
	Path   string `arg:"" help:"Archive path" type:"existingfile"`
	Format string `name:"format" default:"json" enum:"json,yaml" help:"Output format"`
}

func (c *InspectCmd) Run() error {
	doc, _, err := archive.Load(c.Path)
	if err != nil {
		return err
	}
	plain := doc.ToPlain()
	var out []byte
	switch c.Format {
	case "yaml":
		out, err = yaml.Marshal(plain)
	default:
		out, err = json.MarshalIndent(plain, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

// ValidateCmd checks an archive's document for consistency.
type ValidateCmd struct {
	Path string `arg:"" help:"Archive path" type:"existingfile"`
}

func (c *ValidateCmd) Run() error {
	doc, meta, err := archive.Load(c.Path)
	if err != nil {
		return err
	}
	if err := doc.CheckExpressions(); err != nil {
		return err
	}
	fmt.Printf("%s: ok (%d species, %d reactions, %d measurements)\n",
		doc.Name, speciesCount(doc), len(doc.Reactions), len(doc.Measurements))
	if meta != nil {
		fmt.Printf("archive %s, created %s\n", meta.ArchiveID, meta.Created.Format("2006-01-02 15:04:05"))
	}
	return nil
}

func speciesCount(doc *model.Document) int {
	return len(doc.Proteins) + len(doc.Complexes) + len(doc.SmallMolecules)
}

// ConvertCmd rewrites an archive in the other container format.
type ConvertCmd struct {
	In     string `arg:"" help:"Input archive path" type:"existingfile"`
	Out    string `arg:"" help:"Output archive path" type:"path"`
	Format string `name:"format" enum:"omex,bundle," help:"Target format (default: the other one)"`
}

func (c *ConvertCmd) Run() error {
	inFormat, err := archive.DetectFormat(c.In)
	if err != nil {
		return err
	}
	doc, _, err := archive.Load(c.In)
	if err != nil {
		return err
	}

	target := archive.Format(c.Format)
	if target == "" {
		if inFormat == archive.FormatOMEX {
			target = archive.FormatBundle
		} else {
			target = archive.FormatOMEX
		}
	}
	if _, err := archive.SaveAs(doc, c.Out, target, nil); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%s)\n", c.Out, target)
	return nil
}

// CatalogAddCmd registers an archive.
type CatalogAddCmd struct {
	Path string `arg:"" help:"Archive path" type:"existingfile"`
}

func (c *CatalogAddCmd) Run() error {
	_, meta, err := archive.Load(c.Path)
	if err != nil {
		return err
	}
	cat, err := openCatalog()
	if err != nil {
		return err
	}
	defer cat.Close()

	abs, err := filepath.Abs(c.Path)
	if err != nil {
		abs = c.Path
	}
	entry, err := cat.Add(abs, meta)
	if err != nil {
		return err
	}
	fmt.Printf("registered %s (%s)\n", entry.DocumentName, entry.ArchiveID)
	return nil
}

// CatalogListCmd lists registered archives.
type CatalogListCmd struct{}

func (c *CatalogListCmd) Run() error {
	cat, err := openCatalog()
	if err != nil {
		return err
	}
	defer cat.Close()

	entries, err := cat.List()
	if err != nil {
		return err
	}
	printEntries(entries)
	return nil
}

// CatalogFindCmd finds registered archives by document name.
type CatalogFindCmd struct {
	Name string `arg:"" help:"Document name"`
}

func (c *CatalogFindCmd) Run() error {
	cat, err := openCatalog()
	if err != nil {
		return err
	}
	defer cat.Close()

	entries, err := cat.Find(c.Name)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Printf("no archives named %q\n", c.Name)
		return nil
	}
	printEntries(entries)
	return nil
}

// CatalogRemoveCmd removes a registry entry.
type CatalogRemoveCmd struct {
	ArchiveID string `arg:"" help:"Archive identifier"`
}

func (c *CatalogRemoveCmd) Run() error {
	cat, err := openCatalog()
	if err != nil {
		return err
	}
	defer cat.Close()

	if err := cat.Remove(c.ArchiveID); err != nil {
		return err
	}
	fmt.Printf("removed %s\n", c.ArchiveID)
	return nil
}

type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Printf("enzymeml version %s\n", version)
	return nil
}

// Helper functions

func openCatalog() (*catalog.Catalog, error) {
	path := CLI.Catalog
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("locate catalog: %w", err)
		}
		dir := filepath.Join(home, ".enzymeml")
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create catalog directory: %w", err)
		}
		path = filepath.Join(dir, "catalog.db")
	}
	return catalog.Open(path)
}

func printEntries(entries []*catalog.Entry) {
	if len(entries) == 0 {
		fmt.Println("catalog is empty")
		return
	}
	for _, e := range entries {
		fmt.Printf("%-36s  %-20s  %s  %s\n",
			e.ArchiveID, e.DocumentName, e.Created.Format("2006-01-02"), e.Path)
	}
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("enzymeml"),
		kong.Description("EnzymeML - enzyme kinetics document and archive tool"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	logging.InitLogger(logging.ParseLevel(CLI.LogLevel), logging.ParseFormat(CLI.LogFormat))
	err := ctx.Run(ctx)
	ctx.FatalIfErrorf(err)
}
