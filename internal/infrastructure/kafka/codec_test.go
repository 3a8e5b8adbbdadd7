package kafka

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-insights/internal/domain"
	"github.com/jhoicas/inventario-insights/internal/domain/entity"
)

func TestMessageKey_PorEntidadOTipo(t *testing.T) {
	assert.Equal(t, "product:p-1", string(messageKey(entity.DomainEvent{Kind: entity.EventSaleRecorded, EntityType: "product", EntityID: "p-1"})))
	assert.Equal(t, "csv_exported", string(messageKey(entity.DomainEvent{Kind: entity.EventCSVExported})))
}

func TestDecodeEvent_ConservaCamposOpcionales(t *testing.T) {
	remaining := 2
	in := entity.DomainEvent{
		Kind: entity.EventSaleRecorded, EntityType: "product", EntityID: "p-1", Name: "Camisa",
		Quantity: 3, ResultingQuantity: &remaining, Actor: &entity.Actor{UserID: "u-1", Username: "alice"},
		OccurredAt: time.Date(2026, time.October, 16, 9, 0, 0, 0, time.UTC),
	}
	data, err := EncodeEvent(in)
	require.NoError(t, err)

	out, err := DecodeEvent(data)
	require.NoError(t, err)
	require.NotNil(t, out.ResultingQuantity)
	assert.Equal(t, 2, *out.ResultingQuantity)
	assert.Nil(t, out.ThresholdQuantity)
	assert.Equal(t, "alice", out.Actor.Username)
	assert.True(t, in.OccurredAt.Equal(out.OccurredAt))
}

func TestDecodeEvent_PayloadInvalidoEsMalformado(t *testing.T) {
	_, err := DecodeEvent([]byte(`[1,2,3]`))
	assert.ErrorIs(t, err, domain.ErrMalformedResponse)

	_, err = DecodeEvent([]byte(`{"name":"sin tipo"}`))
	assert.ErrorIs(t, err, domain.ErrMalformedResponse)
}
