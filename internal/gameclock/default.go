package gameclock

import (
	"errors"
	"sync"
)

// ErrAlreadyInitialized is returned by SetDefault when a process-wide
// driver has already been installed.
var ErrAlreadyInitialized = errors.New("default game clock already initialized")

var (
	defaultMu     sync.RWMutex
	defaultDriver *Driver
)

// SetDefault installs d as the process-wide driver. It succeeds at most
// once per process; consumers should still prefer receiving a *Driver
// explicitly and reach for Default only at composition roots.
func SetDefault(d *Driver) error {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultDriver != nil {
		return ErrAlreadyInitialized
	}
	defaultDriver = d
	return nil
}

// Default returns the process-wide driver, or nil if SetDefault has not
// been called.
func Default() *Driver {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultDriver
}

// ResetDefault clears the process-wide driver so SetDefault can be
// called again. Teardown hook for tests.
func ResetDefault() {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultDriver = nil
}
