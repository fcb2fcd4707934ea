package inmem_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/21GramConsulting/storage-api/storage"
	"github.com/21GramConsulting/storage-api/storage/inmem"
)

func TestInsertionOrder(t *testing.T) {
	store := inmem.New()

	for _, key := range []string{"zulu", "alpha", "mike"} {
		if err := store.SetItem(key, "v"); err != nil {
			t.Fatal(err)
		}
	}

	// overwriting must keep the original position
	if err := store.SetItem("zulu", "v2"); err != nil {
		t.Fatal(err)
	}

	keys, err := storage.Keys(store)

	if err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff([]string{"zulu", "alpha", "mike"}, keys); diff != "" {
		t.Errorf("key order mismatch (-want +got):\n%s", diff)
	}
}

func TestRemoveReleasesPosition(t *testing.T) {
	store := inmem.New()

	for _, key := range []string{"a", "b", "c"} {
		if err := store.SetItem(key, "v"); err != nil {
			t.Fatal(err)
		}
	}

	if err := store.RemoveItem("b"); err != nil {
		t.Fatal(err)
	}

	// re-adding a removed key appends it at the end
	if err := store.SetItem("b", "v2"); err != nil {
		t.Fatal(err)
	}

	keys, err := storage.Keys(store)

	if err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff([]string{"a", "c", "b"}, keys); diff != "" {
		t.Errorf("key order mismatch (-want +got):\n%s", diff)
	}
}
