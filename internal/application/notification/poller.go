package notification

import (
	"context"
	"errors"
	"sync"
	"time"
)

// DefaultPollInterval intervalo de sondeo del contador de no leídas.
const DefaultPollInterval = 30 * time.Second

// ErrPollerActive ya hay un sondeo activo para este store.
var ErrPollerActive = errors.New("notification: ya hay un sondeo activo")

// PollHandle controla un sondeo periódico. Stop es obligatorio al desmontar.
type PollHandle struct {
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// Stop detiene el sondeo y espera a que la goroutine termine. Idempotente.
func (h *PollHandle) Stop() {
	h.once.Do(h.cancel)
	<-h.done
}

// Done se cierra cuando la goroutine de sondeo terminó.
func (h *PollHandle) Done() <-chan struct{} { return h.done }

// StartPolling llama a RefreshUnreadCount de inmediato y luego en cada tick.
// Solo puede haber un sondeo activo por store; el segundo intento devuelve
// ErrPollerActive. El sondeo termina con Stop o al cancelarse ctx.
func (s *Store) StartPolling(ctx context.Context, interval time.Duration) (*PollHandle, error) {
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	s.pollMu.Lock()
	defer s.pollMu.Unlock()
	if s.poll != nil {
		return nil, ErrPollerActive
	}

	pctx, cancel := context.WithCancel(ctx)
	h := &PollHandle{cancel: cancel, done: make(chan struct{})}
	s.poll = h

	go s.pollLoop(pctx, h, interval)
	return h, nil
}

func (s *Store) pollLoop(ctx context.Context, h *PollHandle, interval time.Duration) {
	defer func() {
		s.pollMu.Lock()
		if s.poll == h {
			s.poll = nil
		}
		s.pollMu.Unlock()
		close(h.done)
	}()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.pollOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.pollOnce(ctx)
		}
	}
}

// pollOnce refresca el contador; los errores ya quedan registrados y alertados en el store.
func (s *Store) pollOnce(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	if err := s.RefreshUnreadCount(ctx); err != nil {
		s.log.Debug().Err(err).Msg("sondeo de no leídas fallido")
	}
}
