package registry

import (
	"testing"

	"github.com/specialistvlad/camrig/internal/datatable"
	"github.com/specialistvlad/camrig/internal/params"
	"github.com/specialistvlad/camrig/internal/rig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type dolly struct {
	rig.NodeBase
	Speed params.BlendableParameter[float64]
}

func (*dolly) NodeType() string { return "dolly" }

var dollyType = &NodeType{
	Name: "dolly",
	New:  func() rig.Node { return &dolly{Speed: params.Blendable(2.0)} },
	Fields: []params.Field{
		params.BlendableField("Speed", func(n *dolly) *params.BlendableParameter[float64] { return &n.Speed }),
	},
}

type dollyModule struct{}

func (dollyModule) Register(r *Registry) { r.Register(dollyType) }

func TestRegistry_LookupAndDiscover(t *testing.T) {
	r := New(dollyModule{})

	nt, ok := r.Lookup("dolly")
	require.True(t, ok)
	assert.Equal(t, []string{"dolly"}, r.Names())

	node := nt.New()
	infos := r.Discover(node)
	require.Len(t, infos, 1)
	assert.Equal(t, "Speed", infos[0].Name)
	assert.Equal(t, 2.0, infos[0].Default)

	_, ok = nt.Field("Speed")
	assert.True(t, ok)
	_, ok = r.Lookup("crane")
	assert.False(t, ok)
}

func TestRegistry_RegisterPanics(t *testing.T) {
	r := New(dollyModule{})
	assert.Panics(t, func() { r.Register(dollyType) }, "duplicate name")

	assert.Panics(t, func() { r.Register(&NodeType{Name: "empty"}) }, "missing constructor")

	dupField := &NodeType{
		Name:   "twice",
		New:    dollyType.New,
		Fields: []params.Field{dollyType.Fields[0], dollyType.Fields[0]},
	}
	assert.Panics(t, func() { r.Register(dupField) })

	badField := &NodeType{Name: "bad", New: dollyType.New, Fields: []params.Field{{Name: "NoAccess"}}}
	assert.Panics(t, func() { r.Register(badField) })
}

func TestRegistry_TypeObjects(t *testing.T) {
	r := New()
	mode := datatable.NewEnumType("DollyMode", "Track", "Free")

	r.RegisterTypeObject(mode)
	r.RegisterTypeObject(mode)

	obj, ok := r.LookupTypeObject("DollyMode")
	require.True(t, ok)
	assert.Same(t, mode, obj)

	assert.Panics(t, func() { r.RegisterTypeObject(datatable.NewEnumType("DollyMode", "Other")) })
}
