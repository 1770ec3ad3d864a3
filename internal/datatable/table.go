package datatable

import (
	"github.com/specialistvlad/camrig/internal/ensure"
	"github.com/specialistvlad/camrig/internal/identity"
	"github.com/specialistvlad/camrig/internal/layout"
)

// EntryFlags is the per-entry bookkeeping bit set.
type EntryFlags uint8

const (
	FlagAutoReset EntryFlags = 1 << iota
	FlagWritten
	FlagWrittenThisFrame
)

type entry struct {
	id         identity.ID
	typ        Type
	container  ContainerType
	typeObject TypeObject
	name       string
	offset     int
	flags      EntryFlags
	ops        valueOps
}

func (e *entry) definition() EntryDefinition {
	return EntryDefinition{
		ID:         e.id,
		Type:       e.typ,
		Container:  e.container,
		TypeObject: e.typeObject,
		AutoReset:  e.flags&FlagAutoReset != 0,
		Name:       e.name,
	}
}

func (e *entry) sameShape(other *entry) bool {
	return e.typ == other.typ && e.container == other.container && e.typeObject == other.typeObject
}

// Table is a context data table. The zero value is an empty, usable table.
// A Table must not be copied after first use; use Clone.
type Table struct {
	entries []entry
	index   map[identity.ID]int
	buf     []byte
	used    int
	refs    refArena
}

// New returns a table initialized from info.
func New(info AllocationInfo) *Table {
	t := &Table{}
	t.Initialize(info)
	return t
}

// Initialize discards every existing entry and lays out a fresh entry for each
// definition in info, in order, default-constructing every value.
func (t *Table) Initialize(info AllocationInfo) {
	t.Reset()

	t.entries = make([]entry, 0, len(info.Definitions))
	t.index = make(map[identity.ID]int, len(info.Definitions))

	offset := 0
	for _, def := range info.Definitions {
		e, ok := newEntry(def)
		if !ok {
			continue
		}
		if !ensure.That(!t.Contains(def.ID), "datatable: duplicate definition for id %s", def.ID) {
			continue
		}
		offset = layout.Align(offset, e.ops.align)
		e.offset = offset
		offset += e.ops.size

		t.index[def.ID] = len(t.entries)
		t.entries = append(t.entries, e)
	}

	t.buf = layout.Alloc(offset)
	t.used = offset
	for i := range t.entries {
		e := &t.entries[i]
		e.ops.construct(t, t.slot(e))
	}
}

func newEntry(def EntryDefinition) (entry, bool) {
	ops, ok := opsFor(def.Type, def.Container, def.TypeObject)
	if !ensure.That(ok, "datatable: unsupported definition %v", def) {
		return entry{}, false
	}
	if !ensure.That(ops.align <= layout.BaseAlignment, "datatable: alignment %d of %v exceeds the buffer alignment", ops.align, def) {
		return entry{}, false
	}
	e := entry{
		id:         def.ID,
		typ:        def.Type,
		container:  def.Container,
		typeObject: def.TypeObject,
		name:       def.Name,
		ops:        ops,
	}
	if def.AutoReset {
		e.flags |= FlagAutoReset
	}
	return e, true
}

// AddData appends one entry after initialization, growing the buffer when
// needed. Adding an identity that already exists is a programming error.
func (t *Table) AddData(def EntryDefinition) {
	if !ensure.That(!t.Contains(def.ID), "datatable: entry %s already exists", def.ID) {
		return
	}
	t.addEntry(def)
}

func (t *Table) addEntry(def EntryDefinition) int {
	e, ok := newEntry(def)
	if !ok {
		return -1
	}

	e.offset = layout.Align(t.used, e.ops.align)
	end := e.offset + e.ops.size
	if end > len(t.buf) {
		t.buf = layout.Grow(t.buf, t.used, end)
	}
	t.used = end

	if t.index == nil {
		t.index = make(map[identity.ID]int)
	}
	idx := len(t.entries)
	t.index[def.ID] = idx
	t.entries = append(t.entries, e)

	ne := &t.entries[idx]
	ne.ops.construct(t, t.slot(ne))
	return idx
}

// Reset destructs every value and releases the buffer.
func (t *Table) Reset() {
	for i := range t.entries {
		e := &t.entries[i]
		e.ops.destruct(t, t.slot(e))
	}
	t.entries = nil
	t.index = nil
	t.buf = nil
	t.used = 0
	t.refs.reset()
}

// Len returns the number of entries.
func (t *Table) Len() int { return len(t.entries) }

// Contains reports whether an entry with the given identity exists.
func (t *Table) Contains(id identity.ID) bool {
	_, ok := t.index[id]
	return ok
}

// Definition returns the schema of the entry with the given identity.
func (t *Table) Definition(id identity.ID) (EntryDefinition, bool) {
	e := t.lookup(id)
	if e == nil {
		return EntryDefinition{}, false
	}
	return e.definition(), true
}

// AllocationInfo returns the schema of every entry, in layout order. It
// includes entries added after initialization.
func (t *Table) AllocationInfo() AllocationInfo {
	info := AllocationInfo{Definitions: make([]EntryDefinition, 0, len(t.entries))}
	for i := range t.entries {
		info.Definitions = append(info.Definitions, t.entries[i].definition())
	}
	return info
}

// Clone returns an independent copy of the table, values and flags included.
func (t *Table) Clone() *Table {
	c := New(t.AllocationInfo())
	for i := range t.entries {
		se, de := &t.entries[i], &c.entries[i]
		de.ops.copy(c, c.slot(de), t, t.slot(se))
		de.flags = se.flags
	}
	return c
}

func (t *Table) lookup(id identity.ID) *entry {
	idx, ok := t.index[id]
	if !ok {
		return nil
	}
	return &t.entries[idx]
}

func (t *Table) slot(e *entry) []byte {
	return t.buf[e.offset : e.offset+e.ops.size]
}

// IsValueWritten reports whether the entry has been written since it was
// constructed or last unset.
func (t *Table) IsValueWritten(id identity.ID) bool {
	e := t.lookup(id)
	return e != nil && e.flags&FlagWritten != 0
}

// IsValueWrittenThisFrame reports whether the entry was written since the
// last ClearAllWrittenThisFrameFlags.
func (t *Table) IsValueWrittenThisFrame(id identity.ID) bool {
	e := t.lookup(id)
	return e != nil && e.flags&FlagWrittenThisFrame != 0
}

// UnsetValue clears both written flags of one entry. The value is kept.
func (t *Table) UnsetValue(id identity.ID) {
	e := t.lookup(id)
	if !ensure.That(e != nil, "datatable: no entry with id %s", id) {
		return
	}
	e.flags &^= FlagWritten | FlagWrittenThisFrame
}

// UnsetAllValues clears both written flags of every entry.
func (t *Table) UnsetAllValues() {
	for i := range t.entries {
		t.entries[i].flags &^= FlagWritten | FlagWrittenThisFrame
	}
}

// ClearAllWrittenThisFrameFlags starts a new frame.
func (t *Table) ClearAllWrittenThisFrameFlags() {
	for i := range t.entries {
		t.entries[i].flags &^= FlagWrittenThisFrame
	}
}

// AutoResetValues clears both written flags of every auto-reset entry, so
// that per-frame data decays back to unset unless supplied again.
func (t *Table) AutoResetValues() {
	for i := range t.entries {
		if e := &t.entries[i]; e.flags&FlagAutoReset != 0 {
			e.flags &^= FlagWritten | FlagWrittenThisFrame
		}
	}
}

func (t *Table) markWritten(e *entry, thisFrame bool) {
	e.flags |= FlagWritten
	if thisFrame {
		e.flags |= FlagWrittenThisFrame
	}
}

// EntryInfo is a read-only snapshot of one entry, for tooling.
type EntryInfo struct {
	Definition       EntryDefinition
	Offset           int
	Written          bool
	WrittenThisFrame bool
}

// Entries returns a snapshot of every entry in layout order.
func (t *Table) Entries() []EntryInfo {
	infos := make([]EntryInfo, 0, len(t.entries))
	for i := range t.entries {
		e := &t.entries[i]
		infos = append(infos, EntryInfo{
			Definition:       e.definition(),
			Offset:           e.offset,
			Written:          e.flags&FlagWritten != 0,
			WrittenThisFrame: e.flags&FlagWrittenThisFrame != 0,
		})
	}
	return infos
}
