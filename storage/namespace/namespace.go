package namespace

import (
	"strings"

	"github.com/emirpasic/gods/sets/linkedhashset"
	"go.uber.org/zap"

	"github.com/21GramConsulting/storage-api/storage"
	"github.com/21GramConsulting/storage-api/storage/access"
	"github.com/21GramConsulting/storage-api/utils/log"
)

// Separator joins a namespace and a local key into a packed key. It is
// fixed module-wide. Namespaces and local keys containing the separator
// are not escaped, so a namespace boundary cannot be told apart from a
// literal separator inside a key. Known limitation.
const Separator = "."

var _ storage.Store = (*Store)(nil)

// Store subdivides a backing store into an independently addressable
// sub-scope. It implements storage.Store itself, so a Store may serve
// as the backing store of another Store, producing nested prefixes
// such as "outer.inner.key".
//
// Store keeps a local cache of the packed keys it owns. The cache is
// seeded once by New and afterwards maintained only by this instance's
// own SetItem, RemoveItem, and Clear calls. Writes made through other
// references to the same backing store, including sibling namespaces,
// are not observed. Enumeration and Length answer from the cache;
// GetItem always goes to the backing store.
type Store struct {
	backing storage.Store
	ns      string
	prefix  string
	owned   *linkedhashset.Set
	logger  *zap.Logger
}

// Option customizes a Store
type Option func(*Store)

// WithLogger attaches a logger to the store. The store logs through a
// scoped child of it, see log.Scoped. A nil logger means no logging.
func WithLogger(logger *zap.Logger) Option {
	return func(store *Store) {
		store.logger = logger
	}
}

// New creates a namespaced view of backing. It scans backing once,
// from the highest index down to 0, collecting every key that starts
// with ns followed by Separator into the key cache. Indices the
// backing store reports as absent are skipped. The resulting cache
// order is the order of collection during this downward scan.
//
// Errors from the backing store abort the scan and are returned
// unmodified.
func New(backing storage.Store, ns string, opts ...Option) (*Store, error) {
	store := &Store{
		backing: backing,
		ns:      ns,
		prefix:  ns + Separator,
		owned:   linkedhashset.New(),
	}

	for _, opt := range opts {
		opt(store)
	}

	store.logger = log.Scoped(store.logger, ns)

	length, err := backing.Length()

	if err != nil {
		return nil, err
	}

	for i := length - 1; i >= 0; i-- {
		key, ok, err := backing.Key(i)

		if err != nil {
			return nil, err
		}

		if !ok {
			continue
		}

		if strings.HasPrefix(key, store.prefix) {
			store.owned.Add(key)
		}
	}

	store.logger.Debug("seeded namespace key cache", zap.Int("keys", store.owned.Size()))

	return store, nil
}

// NewObject creates a namespaced view of backing and wraps it so that
// stored keys are addressable property-style. See access.Wrap.
func NewObject(backing storage.Store, ns string, opts ...Option) (*access.Object, error) {
	store, err := New(backing, ns, opts...)

	if err != nil {
		return nil, err
	}

	return access.Wrap(store), nil
}

// Namespace returns the namespace this store is scoped to.
func (store *Store) Namespace() string {
	return store.ns
}

// Length implements storage.Store.Length. It answers from the key
// cache in O(1).
func (store *Store) Length() (int, error) {
	return store.owned.Size(), nil
}

// Key implements storage.Store.Key. It returns the prefix-stripped
// form of the index-th cached key.
func (store *Store) Key(index int) (string, bool, error) {
	if index < 0 || index >= store.owned.Size() {
		return "", false, nil
	}

	return store.unpack(store.owned.Values()[index].(string)), true, nil
}

// GetItem implements storage.Store.GetItem. Reads bypass the key cache
// entirely: the cache serves enumeration and length only, never the
// correctness of a direct read.
func (store *Store) GetItem(key string) (string, bool, error) {
	return store.backing.GetItem(store.pack(key))
}

// SetItem implements storage.Store.SetItem. The packed key is appended
// to the cache only if it is not tracked yet, so re-setting an
// existing key keeps its position.
func (store *Store) SetItem(key, value string) error {
	packed := store.pack(key)

	if err := store.backing.SetItem(packed, value); err != nil {
		return err
	}

	store.owned.Add(packed)

	return nil
}

// RemoveItem implements storage.Store.RemoveItem. Removing an absent
// key leaves the cache untouched and passes through to the backing
// store's own no-op semantics.
func (store *Store) RemoveItem(key string) error {
	packed := store.pack(key)

	if err := store.backing.RemoveItem(packed); err != nil {
		return err
	}

	store.owned.Remove(packed)

	return nil
}

// Clear implements storage.Store.Clear. It removes exactly the cached
// keys from the backing store, in cache order, then empties the cache.
// Entries outside the namespace are untouched. If a removal fails the
// error is returned unmodified and keys not yet removed stay cached.
func (store *Store) Clear() error {
	for _, packed := range store.owned.Values() {
		if err := store.backing.RemoveItem(packed.(string)); err != nil {
			return err
		}

		store.owned.Remove(packed)
	}

	store.logger.Debug("cleared namespace")

	return nil
}

func (store *Store) pack(key string) string {
	return store.prefix + key
}

// unpack strips exactly one leading namespace prefix. The prefix is
// anchored at the start: a separator recurring later in the key is
// left alone.
func (store *Store) unpack(packed string) string {
	return strings.TrimPrefix(packed, store.prefix)
}
