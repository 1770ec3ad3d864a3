/*
Package datatable implements the context data table: a heterogeneous,
dynamically typed key/value store backed by a single contiguous byte buffer.

A table is laid out once from an AllocationInfo produced by the rig builder and
is then mutated in place every frame. Each entry lives at an aligned offset in
the buffer and is addressed by a stable identity.ID.

# Storage

Values whose Go representation is pointer-free (names, enums, pointer-free
structs) are stored inline. Strings, object and class references, structs that
contain pointers, and array payloads live in a per-table reference arena; the
buffer holds their arena slot index. The buffer therefore never contains Go
pointers, which is what allows it to be grown with a verbatim byte copy.

# Assertions

Accessors check that the requested identity exists and that the requested
value kind, container kind and type object match the entry exactly. A failed
check is a programming error: it panics, or, in builds tagged "shipping",
turns the operation into a no-op. Callers that must tolerate missing entries
use the TryGet family.
*/
package datatable
