// Package kafka transporta eventos de dominio entre la API y el correlador.
package kafka

import (
	"encoding/json"
	"fmt"

	"github.com/jhoicas/inventario-insights/internal/domain"
	"github.com/jhoicas/inventario-insights/internal/domain/entity"
)

// messageKey particiona por entidad para conservar el orden de los eventos de un
// mismo producto; sin entidad se usa el tipo de evento.
func messageKey(ev entity.DomainEvent) []byte {
	if ev.EntityID != "" {
		return []byte(ev.EntityType + ":" + ev.EntityID)
	}
	return []byte(ev.Kind)
}

// EncodeEvent serializa el evento a JSON.
func EncodeEvent(ev entity.DomainEvent) ([]byte, error) {
	data, err := json.Marshal(ev)
	if err != nil {
		return nil, fmt.Errorf("encode event %s: %w", ev.Kind, err)
	}
	return data, nil
}

// DecodeEvent deserializa un mensaje. Un payload que no es un evento válido
// devuelve domain.MalformedResponseError.
func DecodeEvent(data []byte) (entity.DomainEvent, error) {
	var ev entity.DomainEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return entity.DomainEvent{}, domain.NewMalformedResponseError("decode_event", "json inválido", err)
	}
	if ev.Kind == "" {
		return entity.DomainEvent{}, domain.NewMalformedResponseError("decode_event", "falta kind", nil)
	}
	return ev, nil
}
