package clamp

import (
	"reflect"
)

// Request represents a single unit of work flowing through a pipeline. It
// carries the opaque job data together with a set of per-request extensions.
// A request is owned by exactly one holder at a time and must not be shared
// concurrently.
type Request[D any] struct {
	// The job data carried by the request.
	Data D

	extensions Extensions
}

// NewRequest creates and returns a new request carrying the provided data.
func NewRequest[D any](data D) *Request[D] {
	return &Request[D]{
		Data: data,
	}
}

// Extensions returns the extensions of the request.
func (r *Request[D]) Extensions() *Extensions {
	return &r.extensions
}

// Extensions is a type-keyed store used to pass ambient data alongside a
// request. At most one value is stored per distinct type and inserting a
// value of an already present type overwrites the prior value. Absence of a
// type is a valid state that is distinguishable from presence.
type Extensions struct {
	values map[reflect.Type]any
}

// Len returns the number of stored values.
func (e *Extensions) Len() int {
	return len(e.values)
}

// insert will store the provided value under the specified type.
func (e *Extensions) insert(key reflect.Type, value any) {
	// ensure map
	if e.values == nil {
		e.values = map[reflect.Type]any{}
	}

	// set value
	e.values[key] = value
}

// load will lookup the value stored under the specified type.
func (e *Extensions) load(key reflect.Type) (any, bool) {
	value, ok := e.values[key]
	return value, ok
}

// Insert will store the provided value in the extensions, replacing any
// previously stored value of the same type.
func Insert[V any](ext *Extensions, value V) {
	ext.insert(typeOf[V](), value)
}

// Load will lookup a value of the specified type in the extensions and
// return whether it was present.
func Load[V any](ext *Extensions) (V, bool) {
	// load value
	value, ok := ext.load(typeOf[V]())
	if !ok {
		var zero V
		return zero, false
	}

	return value.(V), true
}

// typeOf returns the reflect type of the type parameter. Unlike a plain
// reflect.TypeOf call it also supports interface types.
func typeOf[V any]() reflect.Type {
	return reflect.TypeOf((*V)(nil)).Elem()
}
