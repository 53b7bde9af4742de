package reflectx

import (
	"reflect"
	"runtime"
	"strings"
	"unsafe"
)

// IsFunction reports whether fn holds a function value.
func IsFunction(fn any) bool {
	if fn == nil {
		return false
	}
	return reflect.TypeOf(fn).Kind() == reflect.Func
}

// IsNilFunction reports whether fn is nil or a nil function value, such as a
// typed handler variable that was never assigned.
func IsNilFunction(fn any) bool {
	if fn == nil {
		return true
	}
	val := reflect.ValueOf(fn)
	return val.Kind() == reflect.Func && val.IsNil()
}

// FuncID returns the address of the closure object behind a function value. It
// is the identity used to match handlers on removal: a handler value keeps its
// FuncID however often it is copied, and two closures created by separate
// evaluations of a function literal have different FuncIDs even when they capture
// the same variables. Top-level functions have one ID everywhere. Method values
// allocate a new closure on every evaluation, so keep the value around to remove
// it later.
//
// Returns 0 for nil or non-function values.
func FuncID(fn any) uintptr {
	if IsNilFunction(fn) || !IsFunction(fn) {
		return 0
	}
	// Function values are pointer shaped, so the interface data word is the
	// closure pointer itself.
	return uintptr((*eface)(unsafe.Pointer(&fn)).data)
}

type eface struct {
	typ  unsafe.Pointer
	data unsafe.Pointer
}

// FunctionName returns the short runtime name of a function value: the last
// dot-separated element of its symbol with the method value suffix removed.
// Anonymous functions come back as their generated name (e.g. "func1").
// Returns "" for values that are not functions.
//
// The declared type of the value is ignored, so handlers stored under a named
// function type still report the name of the function that was assigned.
func FunctionName(fn any) string {
	if IsNilFunction(fn) || !IsFunction(fn) {
		return ""
	}

	val := reflect.ValueOf(fn)
	rf := runtime.FuncForPC(val.Pointer())
	if rf == nil {
		return val.Type().String()
	}

	name := rf.Name()
	if lastDot := strings.LastIndex(name, "."); lastDot >= 0 {
		name = name[lastDot+1:]
	}
	return strings.TrimSuffix(name, "-fm")
}
