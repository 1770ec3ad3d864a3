package params

import (
	"reflect"
	"sync"

	"github.com/specialistvlad/camrig/internal/datatable"
)

var structTypes sync.Map // reflect.Type -> *datatable.StructType

// RegisterStructType makes st the struct type used for fields and variables
// of its Go type. It returns the type already registered, if any.
func RegisterStructType(st *datatable.StructType) *datatable.StructType {
	actual, _ := structTypes.LoadOrStore(st.GoType(), st)
	return actual.(*datatable.StructType)
}

// StructTypeFor returns the struct type registered for T, registering one
// named after T with T's zero value as default when there is none.
func StructTypeFor[T any]() *datatable.StructType {
	rt := reflect.TypeFor[T]()
	if st, ok := structTypes.Load(rt); ok {
		return st.(*datatable.StructType)
	}
	var zero T
	return RegisterStructType(datatable.NewStructType(rt.String(), zero))
}
