package nodeid

// Address identifies a node within one rig by its type and name.
type Address struct {
	Type string
	Name string
}

// New returns the address of a node.
func New(nodeType, name string) Address {
	return Address{Type: nodeType, Name: name}
}

// IsZero reports whether the address is empty.
func (a Address) IsZero() bool {
	return a.Type == "" && a.Name == ""
}
