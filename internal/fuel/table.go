// Package fuel holds the fuel energy table and the muzzle-velocity
// estimation strategies built on it.
package fuel

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/Potatov1/potato-cannon-sim/internal/launcher"
)

// Built-in volumetric energy densities in J/m³.
const (
	butaneEnergyDensity    = 111e6
	propaneEnergyDensity   = 94e6
	hairsprayEnergyDensity = 60e6
)

// Table maps fuel identifiers to volumetric energy densities in J/m³.
// User-defined fuels are just additional rows. Lookups take an immutable
// snapshot, so a Table is safe for concurrent use; Register rebuilds the
// snapshot under a mutex.
type Table struct {
	entries atomic.Pointer[map[string]float64]
	mu      sync.Mutex // serializes Register
}

// NewTable creates a table preloaded with the built-in fuels.
func NewTable() *Table {
	t := &Table{}
	builtin := map[string]float64{
		"butane":    butaneEnergyDensity,
		"propane":   propaneEnergyDensity,
		"hairspray": hairsprayEnergyDensity,
	}
	t.entries.Store(&builtin)
	return t
}

// Register adds or replaces a user-defined fuel. The identifier is
// case-insensitive and the energy density is in J/m³.
func (t *Table) Register(name string, energyDensity float64) error {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return fmt.Errorf("%w: fuel name must not be empty", launcher.ErrInvalidConfiguration)
	}
	if !(energyDensity > 0) {
		return fmt.Errorf("%w: energy density for %q must be positive, got %g",
			launcher.ErrInvalidConfiguration, name, energyDensity)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	old := *t.entries.Load()
	next := make(map[string]float64, len(old)+1)
	for k, v := range old {
		next[k] = v
	}
	next[name] = energyDensity
	t.entries.Store(&next)
	return nil
}

// Lookup returns the energy density for the given fuel identifier.
func (t *Table) Lookup(name string) (float64, bool) {
	m := *t.entries.Load()
	d, ok := m[strings.ToLower(strings.TrimSpace(name))]
	return d, ok
}

// Names returns the known fuel identifiers in sorted order.
func (t *Table) Names() []string {
	m := *t.entries.Load()
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
