package nodeid

// String serializes the Address into its canonical `type.name` form.
func (a Address) String() string {
	if a.IsZero() {
		return ""
	}
	return a.Type + "." + a.Name
}
