package app

import (
	"github.com/specialistvlad/camrig/internal/nodes"
	"github.com/specialistvlad/camrig/internal/registry"
)

// coreModules is the definitive list of all node modules that are compiled
// into the camrig binary.
var coreModules = []registry.Module{
	nodes.Module{},
}
