// The permission utility package defines the lookup through which the
// formatting engine obtains permission plugin metadata of a player,
// like the primary group, chat prefix and suffix.
//
// Note:
// The engine makes no assumptions on which permission system backs a Provider.
// The host integration resolves one Provider at startup and passes it in,
// or passes nil when no permission plugin is installed.
package permission

import (
	"context"
	"sync"

	"github.com/paradigmmc/paradigm/pkg/util/uuid"
)

// Meta is the permission metadata of a player.
type Meta struct {
	PrimaryGroup string   `yaml:"group" json:"group"`
	Groups       []string `yaml:"groups,omitempty" json:"groups,omitempty"`
	Prefix       string   `yaml:"prefix,omitempty" json:"prefix,omitempty"`
	Suffix       string   `yaml:"suffix,omitempty" json:"suffix,omitempty"`
}

// AllGroups returns Groups, or the primary group alone if Groups is empty.
func (m Meta) AllGroups() []string {
	if len(m.Groups) != 0 || m.PrimaryGroup == "" {
		return m.Groups
	}
	return []string{m.PrimaryGroup}
}

// Provider looks up the permission metadata of a player.
// Lookup may block; callers do not impose a timeout.
type Provider interface {
	Lookup(ctx context.Context, player uuid.UUID) (Meta, bool)
}

// ProviderFunc implements Provider.
type ProviderFunc func(ctx context.Context, player uuid.UUID) (Meta, bool)

// Lookup implements Provider.
func (f ProviderFunc) Lookup(ctx context.Context, player uuid.UUID) (Meta, bool) {
	return f(ctx, player)
}

// Static is an in-memory Provider. It is safe for concurrent use.
type Static struct {
	mu   sync.RWMutex
	meta map[uuid.UUID]Meta
}

var _ Provider = (*Static)(nil)

// NewStatic returns a Static provider holding a copy of m.
func NewStatic(m map[uuid.UUID]Meta) *Static {
	s := &Static{meta: make(map[uuid.UUID]Meta, len(m))}
	for id, meta := range m {
		s.meta[id] = meta
	}
	return s
}

// Set sets the metadata of a player.
func (s *Static) Set(player uuid.UUID, meta Meta) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.meta == nil {
		s.meta = make(map[uuid.UUID]Meta)
	}
	s.meta[player] = meta
}

// Lookup implements Provider.
func (s *Static) Lookup(_ context.Context, player uuid.UUID) (Meta, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.meta[player]
	return m, ok
}
