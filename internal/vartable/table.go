package vartable

import (
	"fmt"
	"reflect"
	"unsafe"

	"github.com/specialistvlad/camrig/internal/datatable"
	"github.com/specialistvlad/camrig/internal/ensure"
	"github.com/specialistvlad/camrig/internal/identity"
	"github.com/specialistvlad/camrig/internal/layout"
)

type entry struct {
	def    VariableDefinition
	goType reflect.Type
	offset int
	size   int
	flags  datatable.EntryFlags
}

// Table is a camera variable table. The zero value is an empty, usable table.
type Table struct {
	entries []entry
	index   map[identity.ID]int
	buf     []byte
	used    int
}

// New returns a table initialized from info.
func New(info AllocationInfo) *Table {
	t := &Table{}
	t.Initialize(info)
	return t
}

// Initialize discards every existing variable and lays out one entry per
// definition, in order, each holding its kind's default value.
func (t *Table) Initialize(info AllocationInfo) {
	t.entries = make([]entry, 0, len(info.Variables))
	t.index = make(map[identity.ID]int, len(info.Variables))

	offset := 0
	for _, def := range info.Variables {
		e, align, ok := newEntry(def)
		if !ok || !ensure.That(!t.Contains(def.ID), "vartable: duplicate definition for id %s", def.ID) {
			continue
		}
		offset = layout.Align(offset, align)
		e.offset = offset
		offset += e.size
		t.index[def.ID] = len(t.entries)
		t.entries = append(t.entries, e)
	}

	t.buf = layout.Alloc(offset)
	t.used = offset
	for i := range t.entries {
		t.construct(&t.entries[i])
	}
}

func newEntry(def VariableDefinition) (entry, int, bool) {
	size, align, ok := sizeAlign(def.Type, def.StructType)
	if !ensure.That(ok, "vartable: unsupported definition %v", def) {
		return entry{}, 0, false
	}
	rt, _ := valueGoType(def.Type, def.StructType)
	e := entry{def: def, goType: rt, size: size}
	if def.AutoReset {
		e.flags |= datatable.FlagAutoReset
	}
	return e, align, true
}

// AddVariable appends one variable after initialization.
func (t *Table) AddVariable(def VariableDefinition) {
	if !ensure.That(!t.Contains(def.ID), "vartable: variable %s already exists", def.ID) {
		return
	}
	t.addEntry(def)
}

func (t *Table) addEntry(def VariableDefinition) int {
	e, align, ok := newEntry(def)
	if !ok {
		return -1
	}
	e.offset = layout.Align(t.used, align)
	end := e.offset + e.size
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
	t.construct(&t.entries[idx])
	return idx
}

func (t *Table) construct(e *entry) {
	t.valueAt(e).Set(reflect.ValueOf(DefaultValue(e.def.Type, e.def.StructType)))
}

func (t *Table) valueAt(e *entry) reflect.Value {
	return reflect.NewAt(e.goType, unsafe.Pointer(&t.buf[e.offset])).Elem()
}

// Len returns the number of variables.
func (t *Table) Len() int { return len(t.entries) }

// Contains reports whether a variable with the given identity exists.
func (t *Table) Contains(id identity.ID) bool {
	_, ok := t.index[id]
	return ok
}

// AllocationInfo returns the schema of every variable in layout order.
func (t *Table) AllocationInfo() AllocationInfo {
	info := AllocationInfo{Variables: make([]VariableDefinition, 0, len(t.entries))}
	for i := range t.entries {
		info.Variables = append(info.Variables, t.entries[i].def)
	}
	return info
}

// Clone returns an independent copy of the table.
func (t *Table) Clone() *Table {
	c := &Table{
		entries: append([]entry(nil), t.entries...),
		index:   make(map[identity.ID]int, len(t.index)),
		buf:     layout.Alloc(len(t.buf)),
		used:    t.used,
	}
	copy(c.buf, t.buf)
	for id, idx := range t.index {
		c.index[id] = idx
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

func (t *Table) resolve(id identity.ID, rt reflect.Type, must bool) *entry {
	e := t.lookup(id)
	if e == nil {
		ensure.That(!must, "vartable: no variable with id %s", id)
		return nil
	}
	if !ensure.That(e.goType == rt, "vartable: variable %s is %s, accessed as %v", id, e.def.Type, rt) {
		return nil
	}
	return e
}

// Get returns the value of a variable. T must be the Go type of its kind.
func Get[T any](t *Table, id identity.ID) T {
	var zero T
	e := t.resolve(id, reflect.TypeFor[T](), true)
	if e == nil {
		return zero
	}
	return *layout.At[T](t.buf, e.offset)
}

// TryGet returns the value of a variable, or false when it does not exist.
func TryGet[T any](t *Table, id identity.ID) (T, bool) {
	var zero T
	e := t.resolve(id, reflect.TypeFor[T](), false)
	if e == nil {
		return zero, false
	}
	return *layout.At[T](t.buf, e.offset), true
}

// Set writes a variable and marks it written this frame.
func Set[T any](t *Table, id identity.ID, v T) {
	set(t, id, v, true)
}

// SetNoFrame writes a variable without marking it written this frame.
func SetNoFrame[T any](t *Table, id identity.ID, v T) {
	set(t, id, v, false)
}

func set[T any](t *Table, id identity.ID, v T, thisFrame bool) {
	e := t.resolve(id, reflect.TypeFor[T](), true)
	if e == nil {
		return
	}
	*layout.At[T](t.buf, e.offset) = v
	e.flags |= datatable.FlagWritten
	if thisFrame {
		e.flags |= datatable.FlagWrittenThisFrame
	}
}

// Value returns the value of a variable as an untyped Go value.
func (t *Table) Value(id identity.ID) (any, bool) {
	e := t.lookup(id)
	if e == nil {
		return nil, false
	}
	return t.valueAt(e).Interface(), true
}

// SetValue writes a variable from an untyped Go value, reporting a type
// mismatch as an error.
func (t *Table) SetValue(id identity.ID, v any) error {
	e := t.lookup(id)
	if e == nil {
		return fmt.Errorf("no variable with id %s", id)
	}
	if reflect.TypeOf(v) != e.goType {
		return fmt.Errorf("variable %s is %s (%v), got %T", id, e.def.Type, e.goType, v)
	}
	t.valueAt(e).Set(reflect.ValueOf(v))
	e.flags |= datatable.FlagWritten | datatable.FlagWrittenThisFrame
	return nil
}

// IsValueWritten reports whether the variable has been written.
func (t *Table) IsValueWritten(id identity.ID) bool {
	e := t.lookup(id)
	return e != nil && e.flags&datatable.FlagWritten != 0
}

// IsValueWrittenThisFrame reports whether the variable was written this frame.
func (t *Table) IsValueWrittenThisFrame(id identity.ID) bool {
	e := t.lookup(id)
	return e != nil && e.flags&datatable.FlagWrittenThisFrame != 0
}

// UnsetValue clears the written flags of one variable.
func (t *Table) UnsetValue(id identity.ID) {
	if e := t.lookup(id); ensure.That(e != nil, "vartable: no variable with id %s", id) {
		e.flags &^= datatable.FlagWritten | datatable.FlagWrittenThisFrame
	}
}

// UnsetAllValues clears the written flags of every variable. Values are kept.
func (t *Table) UnsetAllValues() {
	for i := range t.entries {
		t.entries[i].flags &^= datatable.FlagWritten | datatable.FlagWrittenThisFrame
	}
}

// ClearAllWrittenThisFrameFlags starts a new frame.
func (t *Table) ClearAllWrittenThisFrameFlags() {
	for i := range t.entries {
		t.entries[i].flags &^= datatable.FlagWrittenThisFrame
	}
}

// AutoResetValues clears the written flags of every auto-reset variable.
func (t *Table) AutoResetValues() {
	for i := range t.entries {
		if e := &t.entries[i]; e.flags&datatable.FlagAutoReset != 0 {
			e.flags &^= datatable.FlagWritten | datatable.FlagWrittenThisFrame
		}
	}
}

// Override copies the variables of src selected by filter, with the same
// semantics as datatable.Table.Override.
func (t *Table) Override(src *Table, filter datatable.OverrideFilter) {
	if src == nil || src == t {
		return
	}
	for i := range src.entries {
		se := &src.entries[i]
		if filter&datatable.FilterChangedOnly != 0 && se.flags&datatable.FlagWrittenThisFrame == 0 {
			continue
		}
		idx, known := t.index[se.def.ID]
		if !known {
			if filter&datatable.FilterKnownOnly != 0 {
				continue
			}
			if idx = t.addEntry(se.def); idx < 0 {
				continue
			}
		}
		de := &t.entries[idx]
		if !ensure.That(de.goType == se.goType, "vartable: cannot override %v with %v", de.def, se.def) {
			continue
		}
		copy(t.buf[de.offset:de.offset+de.size], src.buf[se.offset:se.offset+se.size])
		de.flags |= datatable.FlagWritten | se.flags&datatable.FlagWrittenThisFrame
	}
}

// OverrideAll copies every variable of src.
func (t *Table) OverrideAll(src *Table) {
	t.Override(src, datatable.FilterNone)
}

// OverrideKnown copies the variables of src this table already has.
func (t *Table) OverrideKnown(src *Table) {
	t.Override(src, datatable.FilterKnownOnly)
}

// EntryInfo is a read-only snapshot of one variable, for tooling.
type EntryInfo struct {
	Definition       VariableDefinition
	Offset           int
	Value            any
	Written          bool
	WrittenThisFrame bool
}

// Entries returns a snapshot of every variable in layout order.
func (t *Table) Entries() []EntryInfo {
	infos := make([]EntryInfo, 0, len(t.entries))
	for i := range t.entries {
		e := &t.entries[i]
		infos = append(infos, EntryInfo{
			Definition:       e.def,
			Offset:           e.offset,
			Value:            t.valueAt(e).Interface(),
			Written:          e.flags&datatable.FlagWritten != 0,
			WrittenThisFrame: e.flags&datatable.FlagWrittenThisFrame != 0,
		})
	}
	return infos
}
