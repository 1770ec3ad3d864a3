package datatable

import "sync"

// Name is an interned, case-sensitive identifier stored inline as a 32-bit
// handle. The zero Name is the empty name.
type Name struct {
	handle uint32
}

var namePool = struct {
	sync.RWMutex
	handles map[string]uint32
	strings []string
}{
	handles: map[string]uint32{"": 0},
	strings: []string{""},
}

// MakeName interns s and returns its Name.
func MakeName(s string) Name {
	namePool.RLock()
	h, ok := namePool.handles[s]
	namePool.RUnlock()
	if ok {
		return Name{handle: h}
	}

	namePool.Lock()
	defer namePool.Unlock()
	if h, ok := namePool.handles[s]; ok {
		return Name{handle: h}
	}
	h = uint32(len(namePool.strings))
	namePool.strings = append(namePool.strings, s)
	namePool.handles[s] = h
	return Name{handle: h}
}

// IsNone reports whether n is the empty name.
func (n Name) IsNone() bool { return n.handle == 0 }

func (n Name) String() string {
	namePool.RLock()
	defer namePool.RUnlock()
	if int(n.handle) < len(namePool.strings) {
		return namePool.strings[n.handle]
	}
	return ""
}
