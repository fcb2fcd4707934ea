package bbolt

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"

	"github.com/21GramConsulting/storage-api/storage"
)

// DriverName is the name the bbolt driver registers under
const DriverName = "bbolt"

// All entries live in a single bucket so that the file can hold
// unrelated buckets without them leaking into enumeration.
var bucketName = []byte("storage")

// Config configures a bbolt-backed store
type Config struct {
	Path string
}

var _ storage.ManagedStore = (*Store)(nil)

// Store is a bbolt-backed implementation of storage.Store. Every
// operation runs in its own transaction. Key index order is bbolt's
// byte order, not insertion order.
type Store struct {
	db *bolt.DB
}

// New opens or creates the bbolt store at config.Path.
func New(config Config) (*Store, error) {
	db, err := bolt.Open(config.Path, 0666, nil)

	if err != nil {
		return nil, fmt.Errorf("could not open bbolt store at %s: %w", config.Path, err)
	}

	if err := db.Update(func(txn *bolt.Tx) error {
		_, err := txn.CreateBucketIfNotExists(bucketName)

		return err
	}); err != nil {
		db.Close()

		return nil, fmt.Errorf("could not ensure storage bucket exists: %w", err)
	}

	return &Store{db: db}, nil
}

// Length implements storage.Store.Length
func (store *Store) Length() (int, error) {
	var length int

	err := store.db.View(func(txn *bolt.Tx) error {
		length = txn.Bucket(bucketName).Stats().KeyN

		return nil
	})

	if err != nil {
		return 0, fmt.Errorf("could not count entries: %w", err)
	}

	return length, nil
}

// Key implements storage.Store.Key
func (store *Store) Key(index int) (string, bool, error) {
	if index < 0 {
		return "", false, nil
	}

	var key string
	var found bool

	err := store.db.View(func(txn *bolt.Tx) error {
		cursor := txn.Bucket(bucketName).Cursor()
		i := 0

		for k, _ := cursor.First(); k != nil; k, _ = cursor.Next() {
			if i == index {
				key = string(k)
				found = true

				return nil
			}

			i++
		}

		return nil
	})

	if err != nil {
		return "", false, fmt.Errorf("could not read key %d: %w", index, err)
	}

	return key, found, nil
}

// GetItem implements storage.Store.GetItem. The lookup goes through a
// cursor so that an entry holding an empty value is still told apart
// from an absent entry.
func (store *Store) GetItem(key string) (string, bool, error) {
	var value string
	var found bool

	err := store.db.View(func(txn *bolt.Tx) error {
		k, v := txn.Bucket(bucketName).Cursor().Seek([]byte(key))

		if k == nil || !bytes.Equal(k, []byte(key)) {
			return nil
		}

		value = string(v)
		found = true

		return nil
	})

	if err != nil {
		return "", false, fmt.Errorf("could not read key %s: %w", key, err)
	}

	return value, found, nil
}

// SetItem implements storage.Store.SetItem
func (store *Store) SetItem(key, value string) error {
	err := store.db.Update(func(txn *bolt.Tx) error {
		return txn.Bucket(bucketName).Put([]byte(key), []byte(value))
	})

	if err != nil {
		return fmt.Errorf("could not write key %s: %w", key, err)
	}

	return nil
}

// RemoveItem implements storage.Store.RemoveItem
func (store *Store) RemoveItem(key string) error {
	err := store.db.Update(func(txn *bolt.Tx) error {
		return txn.Bucket(bucketName).Delete([]byte(key))
	})

	if err != nil {
		return fmt.Errorf("could not remove key %s: %w", key, err)
	}

	return nil
}

// Clear implements storage.Store.Clear
func (store *Store) Clear() error {
	err := store.db.Update(func(txn *bolt.Tx) error {
		if err := txn.DeleteBucket(bucketName); err != nil {
			return err
		}

		_, err := txn.CreateBucket(bucketName)

		return err
	})

	if err != nil {
		return fmt.Errorf("could not clear store: %w", err)
	}

	return nil
}

// Close implements storage.ManagedStore.Close
func (store *Store) Close() error {
	return store.db.Close()
}

// Delete implements storage.ManagedStore.Delete
func (store *Store) Delete() error {
	path := store.db.Path()

	if err := store.Close(); err != nil {
		return fmt.Errorf("could not close store: %w", err)
	}

	if err := os.RemoveAll(path); err != nil {
		return fmt.Errorf("could not remove path %s: %w", path, err)
	}

	return nil
}

// Plugins returns the bbolt storage plugins
func Plugins() []storage.Plugin {
	return []storage.Plugin{
		&Plugin{},
	}
}

// Plugin is the storage plugin for the bbolt driver
type Plugin struct {
}

// Name implements storage.Plugin.Name
func (plugin *Plugin) Name() string {
	return DriverName
}

// NewStore implements storage.Plugin.NewStore. It requires a string
// option "path" naming the database file.
func (plugin *Plugin) NewStore(options storage.PluginOptions) (storage.ManagedStore, error) {
	var config Config

	if path, ok := options["path"]; !ok {
		return nil, fmt.Errorf("\"path\" is required")
	} else if pathString, ok := path.(string); !ok {
		return nil, fmt.Errorf("\"path\" must be a string")
	} else {
		config.Path = pathString
	}

	return New(config)
}

// NewTempStore implements storage.Plugin.NewTempStore
func (plugin *Plugin) NewTempStore() (storage.ManagedStore, error) {
	return plugin.NewStore(storage.PluginOptions{
		"path": filepath.Join(os.TempDir(), fmt.Sprintf("storage-bbolt-%s.db", uuid.New().String())),
	})
}
