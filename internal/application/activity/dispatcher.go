package activity

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/inventario-insights/internal/domain"
)

const (
	defaultTaskTimeout = 10 * time.Second
	errorBuffer        = 64
)

// Dispatcher ejecuta efectos secundarios best-effort en goroutines propias.
// Los fallos se registran como domain.BestEffortFailure en el log de operador y
// se publican en Errors(); nunca vuelven al llamador.
type Dispatcher struct {
	log     zerolog.Logger
	timeout time.Duration

	wg       sync.WaitGroup
	errs     chan error
	closed   atomic.Bool
	draining atomic.Bool
	mu       sync.RWMutex
}

// NewDispatcher crea el dispatcher. timeout <= 0 usa 10s por tarea.
func NewDispatcher(log zerolog.Logger, timeout time.Duration) *Dispatcher {
	if timeout <= 0 {
		timeout = defaultTaskTimeout
	}
	return &Dispatcher{log: log, timeout: timeout, errs: make(chan error, errorBuffer)}
}

// Go lanza fn sin esperar su resultado. El contexto de la tarea hereda los
// valores de ctx pero no su cancelación: terminar la petición HTTP no aborta
// la escritura de auditoría.
func (d *Dispatcher) Go(ctx context.Context, effect string, fn func(ctx context.Context) error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed.Load() {
		d.log.Warn().Str("effect", effect).Msg("dispatcher cerrado; efecto descartado")
		return
	}

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		tctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.timeout)
		defer cancel()

		if err := d.run(tctx, fn); err != nil {
			d.report(effect, err)
		}
	}()
}

// Report registra un fallo best-effort ocurrido fuera de una tarea del dispatcher.
// Tras Close solo queda en el log.
func (d *Dispatcher) Report(effect string, err error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed.Load() {
		d.log.Error().Err(&domain.BestEffortFailure{Effect: effect, Err: err}).Str("effect", effect).Msg("efecto secundario fallido")
		return
	}
	d.report(effect, err)
}

func (d *Dispatcher) report(effect string, err error) {
	failure := &domain.BestEffortFailure{Effect: effect, Err: err}
	d.log.Error().Err(failure).Str("effect", effect).Msg("efecto secundario fallido")
	if d.draining.Load() {
		d.errs <- failure
		return
	}
	select {
	case d.errs <- failure:
	default:
	}
}

func (d *Dispatcher) run(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			d.log.Error().Interface("panic", r).Msg("pánico en efecto secundario")
			err = domain.ErrBestEffort
		}
	}()
	return fn(ctx)
}

// Errors canal de fallos best-effort. Si nadie lo lee, los fallos se descartan
// (ya quedaron en el log).
func (d *Dispatcher) Errors() <-chan error { return d.errs }

// DrainErrors consume Errors() en segundo plano sin descartar fallos. El canal
// devuelto recibe el total cuando Close termina.
func (d *Dispatcher) DrainErrors() <-chan int {
	d.draining.Store(true)
	total := make(chan int, 1)
	go func() {
		n := 0
		for range d.errs {
			n++
		}
		total <- n
	}()
	return total
}

// Wait espera a que terminen las tareas en curso.
func (d *Dispatcher) Wait() { d.wg.Wait() }

// Close rechaza tareas nuevas, drena las pendientes y cierra Errors(). Idempotente.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed.Swap(true) {
		d.mu.Unlock()
		return
	}
	d.mu.Unlock()
	d.wg.Wait()
	close(d.errs)
}
