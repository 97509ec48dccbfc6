// Package ident allocates the short prefixed identifiers that entity
// collections use: a one-letter prefix per entity kind followed by a decimal
// slot number. Allocation scans for the lowest free slot, so removed ids are
// reused by later allocations.
package ident

import (
	"strconv"
	"strings"

	"github.com/enzymeml/enzymeml-go/core/errors"
)

// EntityKind names an identifier-bearing entity family.
type EntityKind string

// Entity kinds with allocator-managed prefixes.
const (
	KindVessel        EntityKind = "vessel"
	KindProtein       EntityKind = "protein"
	KindComplex       EntityKind = "complex"
	KindSmallMolecule EntityKind = "small molecule"
	KindReaction      EntityKind = "reaction"
	KindMeasurement   EntityKind = "measurement"
	KindUnit          EntityKind = "unit"
)

var prefixes = map[EntityKind]string{
	KindVessel:        "v",
	KindProtein:       "p",
	KindComplex:       "c",
	KindSmallMolecule: "s",
	KindReaction:      "r",
	KindMeasurement:   "m",
	KindUnit:          "u",
}

// Prefix returns the one-letter id prefix for the entity kind.
func Prefix(kind EntityKind) string {
	return prefixes[kind]
}

// Next returns the lowest-numbered free identifier for the kind given the
// set of ids currently in use. Ids in the set that do not belong to the kind
// are ignored, so a single set may span several entity families.
func Next(kind EntityKind, used map[string]bool) string {
	prefix := prefixes[kind]
	for n := 0; ; n++ {
		id := prefix + strconv.Itoa(n)
		if !used[id] {
			return id
		}
	}
}

// NextInList is Next over a slice of ids.
func NextInList(kind EntityKind, ids []string) string {
	used := make(map[string]bool, len(ids))
	for _, id := range ids {
		used[id] = true
	}
	return Next(kind, used)
}

// Parse splits a prefixed identifier into its entity kind and slot number.
// It fails when the prefix is unknown or the remainder is not a decimal
// number.
func Parse(id string) (EntityKind, int, error) {
	for kind, prefix := range prefixes {
		if !strings.HasPrefix(id, prefix) {
			continue
		}
		n, err := strconv.Atoi(id[len(prefix):])
		if err != nil || n < 0 {
			continue
		}
		return kind, n, nil
	}
	return "", 0, errors.NewMalformed(id, "not a prefixed identifier")
}

// Belongs reports whether the id carries the kind's prefix with a valid
// slot number.
func Belongs(kind EntityKind, id string) bool {
	k, _, err := Parse(id)
	return err == nil && k == kind
}
