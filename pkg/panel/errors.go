package panel

import "github.com/m-mizutani/goerr/v2"

var (
	// ErrPluginNotFound is returned when a plugin ID is not registered
	ErrPluginNotFound = goerr.New("panel plugin not found")

	// ErrDuplicatePlugin is returned when a plugin ID is registered twice
	ErrDuplicatePlugin = goerr.New("panel plugin already registered")

	// ErrInvalidPlugin is returned when a plugin definition cannot be built
	ErrInvalidPlugin = goerr.New("invalid panel plugin")
)

// PluginIDKey is the error value key for plugin IDs
const PluginIDKey = "plugin_id"
