package ruleset

import (
	"fmt"
	"sync"

	"github.com/apex/log"
	guuid "github.com/google/uuid"
)

// Registry holds loaded rulesets by ID. Rulesets themselves are read-only, so
// the lock only guards the map.
type Registry struct {
	mu    sync.RWMutex
	byID  map[guuid.UUID]*Ruleset
	order []guuid.UUID
}

func NewRegistry() *Registry {
	return &Registry{
		byID: make(map[guuid.UUID]*Ruleset),
	}
}

func (r *Registry) Add(rs *Ruleset) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[rs.ID]; !ok {
		r.order = append(r.order, rs.ID)
	}
	r.byID[rs.ID] = rs
	log.WithField("id", rs.ID).WithField("ruleset", rs.Name).Debug("registered ruleset")
}

func (r *Registry) Get(id guuid.UUID) (*Ruleset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rs, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRuleset, id)
	}
	return rs, nil
}

// Find resolves either a ruleset ID or a ruleset name.
func (r *Registry) Find(key string) (*Ruleset, error) {
	if id, err := guuid.Parse(key); err == nil {
		return r.Get(id)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, id := range r.order {
		if rs := r.byID[id]; rs.Name == key {
			return rs, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownRuleset, key)
}

// List returns the rulesets in the order they were added.
func (r *Registry) List() []*Ruleset {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Ruleset, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out
}

func (r *Registry) Remove(id guuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownRuleset, id)
	}
	delete(r.byID, id)
	for i, other := range r.order {
		if other == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
