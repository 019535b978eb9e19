// Package reload provides configuration reloading capabilities.
package reload

import (
	"github.com/robinbraemer/event"
)

// ConfigUpdateEvent is fired when the config is reloaded.
type ConfigUpdateEvent[T any] struct {
	// Config is the new config.
	Config *T
	// PrevConfig is the config before the reload. Nil on the first load.
	PrevConfig *T
}

// Subscribe subscribes the given handler to the config update event.
// It returns a func to unsubscribe.
func Subscribe[T any](mgr event.Manager, handler func(*ConfigUpdateEvent[T])) func() {
	return event.Subscribe(mgr, 0, handler)
}

// FireConfigUpdate fires the config update event.
func FireConfigUpdate[T any](mgr event.Manager, config, prev *T) {
	mgr.Fire(&ConfigUpdateEvent[T]{Config: config, PrevConfig: prev})
}
