package datatable

import (
	"github.com/specialistvlad/camrig/internal/ensure"
)

// OverrideFilter restricts which source entries an override copies.
type OverrideFilter uint8

// FilterNone copies every source entry, adding entries this table lacks.
const FilterNone OverrideFilter = 0

const (
	// FilterKnownOnly skips source entries whose identity this table lacks.
	FilterKnownOnly OverrideFilter = 1 << iota
	// FilterChangedOnly skips source entries not written this frame.
	FilterChangedOnly
)

// OverrideAll copies every entry of src, growing this table's schema for
// identities it does not know yet.
func (t *Table) OverrideAll(src *Table) {
	t.Override(src, FilterNone)
}

// OverrideKnown copies the entries of src whose identity this table knows.
func (t *Table) OverrideKnown(src *Table) {
	t.Override(src, FilterKnownOnly)
}

// Override copies the entries of src selected by filter. Copied entries are
// marked written, and inherit the source's written-this-frame flag.
func (t *Table) Override(src *Table, filter OverrideFilter) {
	if src == nil || src == t {
		return
	}
	for i := range src.entries {
		se := &src.entries[i]
		if filter&FilterChangedOnly != 0 && se.flags&FlagWrittenThisFrame == 0 {
			continue
		}

		idx, known := t.index[se.id]
		if !known {
			if filter&FilterKnownOnly != 0 {
				continue
			}
			if idx = t.adoptDefinition(se.definition()); idx < 0 {
				continue
			}
		}

		de := &t.entries[idx]
		if !ensure.That(de.sameShape(se), "datatable: cannot override %v with %v", de.definition(), se.definition()) {
			continue
		}
		de.ops.copy(t, t.slot(de), src, src.slot(se))
		de.flags |= FlagWritten | se.flags&FlagWrittenThisFrame
	}
}

// adoptDefinition grows the schema with an entry first seen in another
// table, returning the new entry index.
func (t *Table) adoptDefinition(def EntryDefinition) int {
	return t.addEntry(def)
}
