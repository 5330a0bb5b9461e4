package cache

import "time"

// Layered walks caches in order on read and backfills upper layers on a hit.
// Writes go to every layer.
type Layered struct {
	layers []BytesCache
}

func NewLayered(layers ...BytesCache) *Layered {
	return &Layered{layers: layers}
}

func (l *Layered) GetBytes(key string) ([]byte, bool, error) {
	var firstErr error
	for i, layer := range l.layers {
		b, ok, err := layer.GetBytes(key)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		if !ok {
			continue
		}
		// Backfill the faster layers above the one that hit. The backfill TTL
		// is unknown here, so reuse a short one; the authoritative expiry
		// lives in the layer that answered.
		for j := 0; j < i; j++ {
			_ = l.layers[j].SetBytes(key, b, time.Minute)
		}
		return b, true, nil
	}
	return nil, false, firstErr
}

func (l *Layered) SetBytes(key string, value []byte, ttl time.Duration) error {
	var firstErr error
	for _, layer := range l.layers {
		if err := layer.SetBytes(key, value, ttl); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
