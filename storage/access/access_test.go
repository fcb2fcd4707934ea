package access_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/21GramConsulting/storage-api/storage/access"
	"github.com/21GramConsulting/storage-api/storage/inmem"
)

// labeledStore adds an exported, assignable field next to the
// capability-set methods.
type labeledStore struct {
	*inmem.Store
	Label string
}

func TestPropertyReadWrite(t *testing.T) {
	object := access.Wrap(inmem.New())

	ok, err := object.Set("cool", "value")

	if err != nil || !ok {
		t.Fatalf("Set(\"cool\") = %t, %v; want true, nil", ok, err)
	}

	value, ok, err := object.Get("cool")

	if err != nil {
		t.Fatal(err)
	}

	if !ok || value != "value" {
		t.Errorf("Get(\"cool\") = %v, %t; want \"value\", true", value, ok)
	}

	if ok, _ := object.Has("cool"); !ok {
		t.Error("Has(\"cool\") = false; want true")
	}

	if has, _ := object.Has("missing"); has {
		t.Error("Has(\"missing\") = true; want false")
	}
}

func TestGetMemberPrecedence(t *testing.T) {
	store := inmem.New()

	if err := store.SetItem("spilled", "milk"); err != nil {
		t.Fatal(err)
	}

	object := access.Wrap(store)

	// "getItem" resolves to the bound GetItem method, not to storage
	member, ok, err := object.Get("getItem")

	if err != nil || !ok {
		t.Fatalf("Get(\"getItem\") = _, %t, %v; want member, true, nil", ok, err)
	}

	getItem, isMethod := member.(func(string) (string, bool, error))

	if !isMethod {
		t.Fatalf("Get(\"getItem\") returned %T; want the bound method", member)
	}

	value, present, err := getItem("spilled")

	if err != nil {
		t.Fatal(err)
	}

	if !present || value != "milk" {
		t.Errorf("bound getItem(\"spilled\") = %q, %t; want \"milk\", true", value, present)
	}
}

// Get gives members precedence, Has never consults them. A stored key
// named like a member is therefore visible to Has yet shadowed in Get.
func TestHasStorageOnlyPrecedence(t *testing.T) {
	store := inmem.New()

	if err := store.SetItem("length", "123"); err != nil {
		t.Fatal(err)
	}

	object := access.Wrap(store)

	if ok, _ := object.Has("length"); !ok {
		t.Error("Has(\"length\") = false; want true for the stored key")
	}

	member, ok, err := object.Get("length")

	if err != nil || !ok {
		t.Fatal("Get(\"length\") should resolve the member")
	}

	if _, isMethod := member.(func() (int, error)); !isMethod {
		t.Errorf("Get(\"length\") returned %T; want the bound Length method", member)
	}

	if ok, _ := object.Has("clear"); ok {
		t.Error("Has(\"clear\") = true; want false when nothing is stored under it")
	}
}

func TestWriteCollision(t *testing.T) {
	store := inmem.New()
	object := access.Wrap(store)

	// methods are not assignable; the failure is a boolean, not a panic
	for _, name := range []string{"clear", "getItem", "setItem", "length"} {
		ok, err := object.Set(name, "x")

		if err != nil {
			t.Fatalf("Set(%q) returned error %v; want boolean failure", name, err)
		}

		if ok {
			t.Errorf("Set(%q) = true; want false for a member collision", name)
		}
	}

	length, err := store.Length()

	if err != nil {
		t.Fatal(err)
	}

	if length != 0 {
		t.Errorf("store gained %d entries from failed writes; want 0", length)
	}
}

func TestFieldAssignment(t *testing.T) {
	store := &labeledStore{Store: inmem.New(), Label: "before"}
	object := access.Wrap(store)

	ok, err := object.Set("label", "after")

	if err != nil || !ok {
		t.Fatalf("Set(\"label\") = %t, %v; want true, nil", ok, err)
	}

	if store.Label != "after" {
		t.Errorf("Label = %q; want \"after\"", store.Label)
	}

	// incompatible types report failure and change nothing
	ok, err = object.Set("label", 42)

	if err != nil {
		t.Fatal(err)
	}

	if ok || store.Label != "after" {
		t.Errorf("Set(\"label\", 42) = %t, Label = %q; want false, \"after\"", ok, store.Label)
	}

	member, ok, err := object.Get("label")

	if err != nil || !ok {
		t.Fatal("Get(\"label\") should resolve the field")
	}

	if member != "after" {
		t.Errorf("Get(\"label\") = %v; want \"after\"", member)
	}
}

func TestStringCoercion(t *testing.T) {
	store := inmem.New()
	object := access.Wrap(store)

	for name, value := range map[string]interface{}{
		"answer":  42,
		"enabled": true,
		"ratio":   1.5,
	} {
		if ok, err := object.Set(name, value); !ok || err != nil {
			t.Fatalf("Set(%q) = %t, %v; want true, nil", name, ok, err)
		}
	}

	for name, want := range map[string]string{
		"answer":  "42",
		"enabled": "true",
		"ratio":   "1.5",
	} {
		value, ok, err := store.GetItem(name)

		if err != nil {
			t.Fatal(err)
		}

		if !ok || value != want {
			t.Errorf("GetItem(%q) = %q, %t; want %q, true", name, value, ok, want)
		}
	}
}

func TestDeleteNeverSet(t *testing.T) {
	object := access.Wrap(inmem.New())

	ok, err := object.Delete("ghost")

	if err != nil {
		t.Fatalf("Delete(\"ghost\") returned error %v; want success", err)
	}

	if !ok {
		t.Error("Delete(\"ghost\") = false; want true even for a key never set")
	}
}

func TestKeysEnumeration(t *testing.T) {
	store := inmem.New()

	for _, key := range []string{"first", "second", "third"} {
		if err := store.SetItem(key, "v"); err != nil {
			t.Fatal(err)
		}
	}

	object := access.Wrap(store)

	keys, err := object.Keys()

	if err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff([]string{"first", "second", "third"}, keys); diff != "" {
		t.Errorf("keys mismatch (-want +got):\n%s", diff)
	}
}

func TestDescribe(t *testing.T) {
	store := inmem.New()

	if err := store.SetItem("described", "value"); err != nil {
		t.Fatal(err)
	}

	object := access.Wrap(store)

	descriptor, ok, err := object.Describe("described")

	if err != nil {
		t.Fatal(err)
	}

	if !ok {
		t.Fatal("Describe(\"described\") = absent; want a descriptor")
	}

	want := access.Descriptor{
		Value:        "value",
		Writable:     true,
		Enumerable:   true,
		Configurable: true,
	}

	if diff := cmp.Diff(want, descriptor); diff != "" {
		t.Errorf("descriptor mismatch (-want +got):\n%s", diff)
	}

	if _, ok, _ := object.Describe("absent"); ok {
		t.Error("Describe(\"absent\") = descriptor; want absent")
	}
}
