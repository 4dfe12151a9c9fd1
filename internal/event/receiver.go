package event

import "reflect"

// isAbsent reports whether v counts as "no receiver": untyped nil or a typed
// nil of a nillable kind.
func isAbsent(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map,
		reflect.Pointer, reflect.Slice, reflect.UnsafePointer:
		return rv.IsNil()
	}
	return false
}

// checkReceiver reports why r cannot be bound, or "" if it can. A bound
// receiver must compare equal to itself, or dedup and Remove cannot find it.
func checkReceiver(r any) string {
	if isAbsent(r) {
		return ""
	}
	rv := reflect.ValueOf(r)
	if rv.Comparable() {
		return ""
	}
	switch rv.Kind() {
	case reflect.Map, reflect.Func, reflect.Slice:
		return ""
	}
	return "receiver value is not comparable"
}

// sameReceiver is the loose receiver equality used for dedup and removal.
// All absent receivers are equal to each other and to nothing else. Concrete
// receivers must have the same type and be == (or share identity for maps,
// funcs and slices, which are not comparable).
func sameReceiver(a, b any) bool {
	aAbsent, bAbsent := isAbsent(a), isAbsent(b)
	if aAbsent || bAbsent {
		return aAbsent == bAbsent
	}

	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Comparable() && vb.Comparable() {
		return a == b
	}

	switch va.Kind() {
	case reflect.Map, reflect.Func:
		return va.Pointer() == vb.Pointer()
	case reflect.Slice:
		return va.Pointer() == vb.Pointer() && va.Len() == vb.Len()
	}
	return false
}
