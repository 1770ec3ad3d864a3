package nodeid

import (
	"fmt"
	"regexp"
	"strings"
)

// segmentRegex matches one segment of an address, e.g. `boom_arm` or `main-2`.
var segmentRegex = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_-]*$`)

// Parse creates an Address from its canonical string representation.
func Parse(raw string) (Address, error) {
	if raw == "" {
		return Address{}, fmt.Errorf("node address cannot be empty")
	}
	nodeType, name, ok := strings.Cut(raw, ".")
	if !ok {
		return Address{}, fmt.Errorf("node address %q must have the form type.name", raw)
	}
	for _, segment := range []string{nodeType, name} {
		if !segmentRegex.MatchString(segment) {
			return Address{}, fmt.Errorf("invalid segment %q in node address %q", segment, raw)
		}
	}
	return Address{Type: nodeType, Name: name}, nil
}
