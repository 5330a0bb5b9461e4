package predict

import (
	"fmt"
	"sync"

	"StockPulse/pkg/util"
)

// Registry holds trained models per symbol.
type Registry struct {
	mu     sync.RWMutex
	models map[string]*Model
}

func NewRegistry() *Registry {
	return &Registry{models: make(map[string]*Model)}
}

// Get returns the model for a symbol or ErrModelNotFound.
func (r *Registry) Get(symbol string) (*Model, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.models[util.NormalizeSymbol(symbol)]
	if !ok {
		return nil, fmt.Errorf("symbol %s: %w", symbol, ErrModelNotFound)
	}
	return m, nil
}

// Put stores (or replaces) the model for a symbol.
func (r *Registry) Put(m *Model) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.models[util.NormalizeSymbol(m.Symbol)] = m
}

// Symbols lists symbols with a trained model.
func (r *Registry) Symbols() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.models))
	for s := range r.models {
		out = append(out, s)
	}
	return out
}
