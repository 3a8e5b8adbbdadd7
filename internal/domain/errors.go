package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
	ErrConflict     = errors.New("conflicto con el estado actual")

	// Taxonomía de fallos del motor de analítica y notificaciones.
	ErrTransport         = errors.New("backend no disponible")
	ErrMalformedResponse = errors.New("respuesta con formato inesperado")
	ErrBestEffort        = errors.New("efecto secundario best-effort fallido")
)

// TransportError red o backend inalcanzable. Nunca debe confundirse con un
// fallo de autenticación ni limpiar estado de sesión.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, ErrTransport)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, ErrTransport, e.Err)
}

func (e *TransportError) Unwrap() error        { return e.Err }
func (e *TransportError) Is(target error) bool { return target == ErrTransport }

// MalformedResponseError el payload no tiene la forma esperada
// (ej. un objeto donde se esperaba una lista).
type MalformedResponseError struct {
	Op     string
	Reason string
	Err    error
}

func (e *MalformedResponseError) Error() string {
	msg := fmt.Sprintf("%s: %s: %s", e.Op, ErrMalformedResponse, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *MalformedResponseError) Unwrap() error        { return e.Err }
func (e *MalformedResponseError) Is(target error) bool { return target == ErrMalformedResponse }

// ValidationError error del llamador (ej. cantidad negativa). Compatible con ErrInvalidInput.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrInvalidInput, e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// BestEffortFailure fallo al escribir auditoría o crear una notificación derivada.
// Se registra en el canal de operador; nunca llega al usuario final.
type BestEffortFailure struct {
	Effect string // "activity_log", "notification", "stock_alert"
	Err    error
}

func (e *BestEffortFailure) Error() string {
	return fmt.Sprintf("%s (%s): %v", ErrBestEffort, e.Effect, e.Err)
}

func (e *BestEffortFailure) Unwrap() error        { return e.Err }
func (e *BestEffortFailure) Is(target error) bool { return target == ErrBestEffort }

// NewTransportError envuelve err como TransportError; nil si err es nil.
func NewTransportError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &TransportError{Op: op, Err: err}
}

// NewMalformedResponseError construye un MalformedResponseError.
func NewMalformedResponseError(op, reason string, err error) error {
	return &MalformedResponseError{Op: op, Reason: reason, Err: err}
}

// IsReadFailure indica si err es un fallo de lectura remoto (transporte o formato).
func IsReadFailure(err error) bool {
	return errors.Is(err, ErrTransport) || errors.Is(err, ErrMalformedResponse)
}
