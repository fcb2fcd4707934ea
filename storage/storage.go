package storage

// Store is the capability set shared by every backing store and every
// wrapper in this module. Keys and values are plain strings. Absence is
// reported through the boolean return, never through an error: an empty
// string is a valid stored value and is distinct from an absent entry.
//
// Errors returned by an implementation are propagated unmodified by the
// layers built on top of it. Implementations backed purely by memory may
// always return nil errors.
type Store interface {
	// Length returns the number of entries in the store.
	Length() (int, error)
	// Key returns the key at position index. It returns false when
	// index is not a valid position.
	Key(index int) (string, bool, error)
	// GetItem returns the value stored under key. It returns false
	// when no entry exists.
	GetItem(key string) (string, bool, error)
	// SetItem stores value under key, overwriting any previous value.
	SetItem(key, value string) error
	// RemoveItem deletes the entry stored under key. Removing an
	// absent key has no effect.
	RemoveItem(key string) error
	// Clear removes every entry from the store.
	Clear() error
}

// ManagedStore is a Store whose lifecycle is owned by the caller.
// Drivers with external resources hand these out through their plugins.
type ManagedStore interface {
	Store
	// Close releases any resources held by the store. Operations on a
	// closed store fail with the driver's own error.
	Close() error
	// Delete closes the store and destroys its persisted contents.
	Delete() error
}

// Keys enumerates every key in store in index order, skipping positions
// the store reports as absent.
func Keys(store Store) ([]string, error) {
	length, err := store.Length()

	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, length)

	for i := 0; i < length; i++ {
		key, ok, err := store.Key(i)

		if err != nil {
			return nil, err
		}

		if !ok {
			continue
		}

		keys = append(keys, key)
	}

	return keys, nil
}
