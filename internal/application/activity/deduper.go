package activity

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jhoicas/inventario-insights/internal/domain/entity"
)

// AlertKey clave de deduplicación de una alerta de stock.
func AlertKey(productID string, status entity.StockStatus) string {
	return fmt.Sprintf("alert:%s:%s", productID, status)
}

// MemoryDeduper AlertDeduper en memoria del proceso. ttl <= 0 significa sin expiración.
type MemoryDeduper struct {
	mu   sync.Mutex
	keys map[string]time.Time
	ttl  time.Duration
	now  func() time.Time
}

// NewMemoryDeduper crea el deduper en memoria.
func NewMemoryDeduper(ttl time.Duration) *MemoryDeduper {
	return &MemoryDeduper{keys: make(map[string]time.Time), ttl: ttl, now: time.Now}
}

func (m *MemoryDeduper) Acquire(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	if exp, ok := m.keys[key]; ok && (exp.IsZero() || now.Before(exp)) {
		return false, nil
	}
	var exp time.Time
	if m.ttl > 0 {
		exp = now.Add(m.ttl)
	}
	m.keys[key] = exp
	return true, nil
}

func (m *MemoryDeduper) Release(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.keys, k)
	}
	return nil
}
