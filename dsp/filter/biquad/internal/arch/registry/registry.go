// Package registry holds the Direct Form I block kernels and picks the one
// the running CPU supports.
package registry

import (
	"slices"
	"sync"

	"github.com/cwbudde/algo-vecmath/cpu"
)

// Coefficients mirror biquad.Coefficients without importing it.
type Coefficients struct {
	B0, B1, B2 float64
	A1, A2     float64
}

// State is the Direct Form I history carried between blocks.
type State struct {
	X1, X2 float64
	Y1, Y2 float64
}

// ProcessBlockFn filters src into dst and returns the advanced state.
// len(dst) == len(src); dst may be src.
type ProcessBlockFn func(c Coefficients, s State, dst, src []float32) State

// Kernel is one registered implementation.
type Kernel struct {
	Name         string
	SIMDLevel    cpu.SIMDLevel
	Priority     int
	ProcessBlock ProcessBlockFn
}

// Registry keeps kernels ordered by descending priority.
type Registry struct {
	mu      sync.RWMutex
	kernels []Kernel
}

// Global receives the kernels registered by the arch packages' init.
var Global = &Registry{}

// Register adds k. Kernels of equal priority keep registration order.
func (r *Registry) Register(k Kernel) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.kernels = append(r.kernels, k)
	slices.SortStableFunc(r.kernels, func(a, b Kernel) int { return b.Priority - a.Priority })
}

// Lookup returns the highest-priority kernel features can run, or nil.
func (r *Registry) Lookup(features cpu.Features) *Kernel {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.kernels {
		if cpu.Supports(features, r.kernels[i].SIMDLevel) {
			k := r.kernels[i]
			return &k
		}
	}

	return nil
}

// Kernels returns a copy of the registered kernels in lookup order.
func (r *Registry) Kernels() []Kernel {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Clone(r.kernels)
}
