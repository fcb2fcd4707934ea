package plugins

import (
	"github.com/21GramConsulting/storage-api/storage"
	"github.com/21GramConsulting/storage-api/storage/bbolt"
	"github.com/21GramConsulting/storage-api/storage/inmem"
)

var plugins []storage.Plugin

func init() {
	plugins = append(plugins, inmem.Plugins()...)
	plugins = append(plugins, bbolt.Plugins()...)
}

// Plugin returns the plugin whose name matches the given name.
// It returns nil if no such plugin is found.
func Plugin(name string) storage.Plugin {
	for _, plugin := range plugins {
		if plugin.Name() == name {
			return plugin
		}
	}

	return nil
}

// Plugins lists all the plugins that are available
func Plugins() []storage.Plugin {
	return plugins
}
