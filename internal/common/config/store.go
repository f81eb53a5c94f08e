// internal/common/config/store.go
package config

import "sync/atomic"

// Store holds the active configuration behind an atomic pointer. A
// reload swaps the whole object; in-flight requests keep the snapshot
// they started with and never observe a half-updated configuration.
type Store struct {
	current atomic.Pointer[Config]
}

// NewStore creates a Store seeded with an already-validated config.
func NewStore(cfg *Config) *Store {
	s := &Store{}
	s.current.Store(cfg)
	return s
}

// Get returns the active configuration snapshot.
func (s *Store) Get() *Config {
	return s.current.Load()
}

// Engine returns the active engine configuration snapshot.
func (s *Store) Engine() EngineConfig {
	return s.current.Load().Engine
}

// Swap validates the replacement and installs it atomically. The old
// configuration stays active when validation fails.
func (s *Store) Swap(cfg *Config) error {
	if err := validateConfig(cfg); err != nil {
		return err
	}
	s.current.Store(cfg)
	return nil
}
