package inmem

import (
	"sync"

	"github.com/emirpasic/gods/maps/linkedhashmap"

	"github.com/21GramConsulting/storage-api/storage"
)

// DriverName is the name the in-memory driver registers under
const DriverName = "memory"

var _ storage.ManagedStore = (*Store)(nil)

// Store is an insertion-ordered in-memory implementation of
// storage.Store. Key index order is insertion order; overwriting an
// existing key keeps its position. Operations never fail.
type Store struct {
	mu      sync.RWMutex
	entries *linkedhashmap.Map
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{entries: linkedhashmap.New()}
}

// Length implements storage.Store.Length
func (store *Store) Length() (int, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	return store.entries.Size(), nil
}

// Key implements storage.Store.Key
func (store *Store) Key(index int) (string, bool, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	keys := store.entries.Keys()

	if index < 0 || index >= len(keys) {
		return "", false, nil
	}

	return keys[index].(string), true, nil
}

// GetItem implements storage.Store.GetItem
func (store *Store) GetItem(key string) (string, bool, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	value, ok := store.entries.Get(key)

	if !ok {
		return "", false, nil
	}

	return value.(string), true, nil
}

// SetItem implements storage.Store.SetItem
func (store *Store) SetItem(key, value string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.entries.Put(key, value)

	return nil
}

// RemoveItem implements storage.Store.RemoveItem
func (store *Store) RemoveItem(key string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.entries.Remove(key)

	return nil
}

// Clear implements storage.Store.Clear
func (store *Store) Clear() error {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.entries.Clear()

	return nil
}

// Close implements storage.ManagedStore.Close. It has no effect.
func (store *Store) Close() error {
	return nil
}

// Delete implements storage.ManagedStore.Delete. The store holds no
// persistent state, so deleting it just empties it.
func (store *Store) Delete() error {
	return store.Clear()
}

// Plugins returns the in-memory storage plugins
func Plugins() []storage.Plugin {
	return []storage.Plugin{
		&Plugin{},
	}
}

// Plugin is the storage plugin for the in-memory driver
type Plugin struct {
}

// Name implements storage.Plugin.Name
func (plugin *Plugin) Name() string {
	return DriverName
}

// NewStore implements storage.Plugin.NewStore. The driver takes no
// options.
func (plugin *Plugin) NewStore(options storage.PluginOptions) (storage.ManagedStore, error) {
	return New(), nil
}

// NewTempStore implements storage.Plugin.NewTempStore
func (plugin *Plugin) NewTempStore() (storage.ManagedStore, error) {
	return New(), nil
}
