package storage

// PluginOptions is a generic bag of driver configuration options.
type PluginOptions map[string]interface{}

// Plugin represents a storage driver
type Plugin interface {
	// Name returns the name of the storage driver
	Name() string
	// NewStore returns an instance of the driver's store configured
	// with options
	NewStore(options PluginOptions) (ManagedStore, error)
	// NewTempStore returns an instance of the driver's store
	// initialized with some sane defaults. It is meant for
	// tests that need an initialized instance of the driver's
	// store without knowing how to initialize it
	NewTempStore() (ManagedStore, error)
}
