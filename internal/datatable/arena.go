package datatable

// refArena holds the pointer-carrying payloads of a table. The buffer refers
// to them by slot index. Released slots are reused.
type refArena struct {
	items []any
	free  []uint32
}

func (a *refArena) alloc(v any) uint32 {
	if n := len(a.free); n > 0 {
		idx := a.free[n-1]
		a.free = a.free[:n-1]
		a.items[idx] = v
		return idx
	}
	a.items = append(a.items, v)
	return uint32(len(a.items) - 1)
}

func (a *refArena) get(idx uint32) any {
	return a.items[idx]
}

func (a *refArena) set(idx uint32, v any) {
	a.items[idx] = v
}

func (a *refArena) release(idx uint32) {
	a.items[idx] = nil
	a.free = append(a.free, idx)
}

func (a *refArena) reset() {
	clear(a.items)
	a.items = a.items[:0]
	a.free = a.free[:0]
}
