package domain_test

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/inventario-insights/internal/domain"
)

func TestTransportError_EsTransporteYNoAutenticacion(t *testing.T) {
	err := fmt.Errorf("notifications: %w", domain.NewTransportError("list", io.ErrUnexpectedEOF))

	assert.ErrorIs(t, err, domain.ErrTransport)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	assert.NotErrorIs(t, err, domain.ErrUnauthorized)
	assert.True(t, domain.IsReadFailure(err))
}

func TestNewTransportError_NilDevuelveNil(t *testing.T) {
	assert.NoError(t, domain.NewTransportError("list", nil))
}

func TestMalformedResponseError_Is(t *testing.T) {
	err := domain.NewMalformedResponseError("list", "se esperaba una lista", nil)

	assert.ErrorIs(t, err, domain.ErrMalformedResponse)
	assert.NotErrorIs(t, err, domain.ErrTransport)
	assert.True(t, domain.IsReadFailure(err))
	assert.Contains(t, err.Error(), "se esperaba una lista")
}

func TestValidationError_CompatibleConErrInvalidInput(t *testing.T) {
	var err error = &domain.ValidationError{Field: "quantity", Reason: "debe ser positiva"}
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.False(t, domain.IsReadFailure(err))
}

func TestBestEffortFailure_Unwrap(t *testing.T) {
	cause := errors.New("db caída")
	err := &domain.BestEffortFailure{Effect: "activity_log", Err: cause}

	assert.ErrorIs(t, err, domain.ErrBestEffort)
	assert.ErrorIs(t, err, cause)
}
