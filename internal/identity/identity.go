package identity

import (
	"encoding/binary"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"
)

// ID is an opaque 32-bit entry identity.
type ID uint32

// Invalid is the sentinel for "no identity". No derived ID ever equals it.
const Invalid ID = 0xFFFFFFFF

// IsValid reports whether the ID is not the Invalid sentinel.
func (id ID) IsValid() bool {
	return id != Invalid
}

// String renders the ID as a fixed-width hexadecimal value.
func (id ID) String() string {
	if !id.IsValid() {
		return "invalid"
	}
	return fmt.Sprintf("%08x", uint32(id))
}

// FromGUID returns the user-visible identity of an object with the given GUID.
func FromGUID(guid uuid.UUID) ID {
	return fromBytes(guid[:])
}

// Variant derives a private identity from id and a tag. The same pair always
// yields the same result.
func (id ID) Variant(tag string) ID {
	buf := make([]byte, 4, 4+len(tag))
	binary.LittleEndian.PutUint32(buf, uint32(id))
	buf = append(buf, tag...)
	return fromBytes(buf)
}

func fromBytes(b []byte) ID {
	sum := blake2b.Sum256(b)
	v := ID(binary.LittleEndian.Uint32(sum[:4]))
	if v == Invalid {
		// Remap so that the sentinel stays unreachable.
		v = 0
	}
	return v
}
