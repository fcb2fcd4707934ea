package access

import (
	"fmt"
	"reflect"
	"unicode"
	"unicode/utf8"

	"github.com/21GramConsulting/storage-api/storage"
)

// Descriptor is the synthetic property descriptor reported for a
// stored key. Every stored key gets the same shape: writable,
// enumerable, and configurable, with the stored string as its value.
type Descriptor struct {
	Value        string
	Writable     bool
	Enumerable   bool
	Configurable bool
}

// Object makes any storage.Store addressable property-style: arbitrary
// string names are read, written, deleted, and enumerated as if they
// were attributes of the wrapped store, while the store's real members
// stay reachable under their property names ("length", "getItem",
// "setItem", and so on, including any exported member of the concrete
// driver type).
//
// Object holds nothing but the target reference. The dispatch logic is
// stateless and any number of stores may be wrapped concurrently.
type Object struct {
	target storage.Store
}

// Wrap wraps target in an Object.
func Wrap(target storage.Store) *Object {
	return &Object{target: target}
}

// Target returns the wrapped store.
func (object *Object) Target() storage.Store {
	return object.target
}

// Get reads name. Real members of the target take precedence: when
// name maps to an exported method or field of the concrete target, the
// member is returned as-is, bound to the target. Otherwise name is
// treated as a storage key and the stored value is returned. The
// boolean is false only for an absent storage key.
func (object *Object) Get(name string) (interface{}, bool, error) {
	if member, ok := object.member(name); ok {
		return member.Interface(), true, nil
	}

	value, ok, err := object.target.GetItem(name)

	if err != nil {
		return nil, false, err
	}

	return value, ok, nil
}

// Has reports whether name is present as a stored key. Member names
// are deliberately not consulted: a key that shares its name with a
// member, such as "length", is reported based on storage content
// alone, even though Get would return the member instead. This
// asymmetry with Get is intentional.
func (object *Object) Has(name string) (bool, error) {
	_, ok, err := object.target.GetItem(name)

	return ok, err
}

// Set writes name. When name maps to a real member of the target, Set
// attempts a direct assignment to that member; members that cannot be
// assigned (methods, or fields of an incompatible type) report false
// and leave all state unchanged. Otherwise the value is coerced to a
// string and stored under name, reporting true.
func (object *Object) Set(name string, value interface{}) (bool, error) {
	if member, ok := object.member(name); ok {
		return assign(member, value), nil
	}

	if err := object.target.SetItem(name, coerce(value)); err != nil {
		return false, err
	}

	return true, nil
}

// Delete removes name from storage. Deleting a key that was never set
// still reports true; it is not an error.
func (object *Object) Delete(name string) (bool, error) {
	if err := object.target.RemoveItem(name); err != nil {
		return false, err
	}

	return true, nil
}

// Keys enumerates the stored keys in the target's index order.
func (object *Object) Keys() ([]string, error) {
	return storage.Keys(object.target)
}

// Describe returns the synthetic descriptor for a stored key. The
// boolean is false when no entry exists under name.
func (object *Object) Describe(name string) (Descriptor, bool, error) {
	value, ok, err := object.target.GetItem(name)

	if err != nil || !ok {
		return Descriptor{}, false, err
	}

	return Descriptor{
		Value:        value,
		Writable:     true,
		Enumerable:   true,
		Configurable: true,
	}, true, nil
}

// member resolves a property name to an exported method or field of
// the concrete target. Property names use the capability set's own
// spelling ("getItem", "length"), mapped to the exported Go name by
// upper-casing the first rune. Unexported members stay unreachable.
func (object *Object) member(name string) (reflect.Value, bool) {
	if name == "" {
		return reflect.Value{}, false
	}

	exported := exportedName(name)
	value := reflect.ValueOf(object.target)

	if method := value.MethodByName(exported); method.IsValid() {
		return method, true
	}

	if value.Kind() == reflect.Ptr {
		value = value.Elem()
	}

	if value.Kind() == reflect.Struct {
		if field := value.FieldByName(exported); field.IsValid() && field.CanInterface() {
			return field, true
		}
	}

	return reflect.Value{}, false
}

// assign attempts to overwrite a resolved member. Bound methods and
// non-addressable or type-incompatible fields cannot be assigned.
func assign(member reflect.Value, value interface{}) bool {
	if !member.CanSet() {
		return false
	}

	if value == nil {
		return false
	}

	incoming := reflect.ValueOf(value)

	if !incoming.Type().AssignableTo(member.Type()) {
		return false
	}

	member.Set(incoming)

	return true
}

// coerce stringifies a value before storage. Strings pass through
// untouched; everything else gets its default formatting.
func coerce(value interface{}) string {
	if s, ok := value.(string); ok {
		return s
	}

	return fmt.Sprint(value)
}

func exportedName(name string) string {
	r, size := utf8.DecodeRuneInString(name)

	if r == utf8.RuneError {
		return name
	}

	return string(unicode.ToUpper(r)) + name[size:]
}
