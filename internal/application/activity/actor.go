package activity

import (
	"context"

	"github.com/jhoicas/inventario-insights/internal/domain/entity"
)

type actorKey struct{}

// WithActor guarda el usuario autenticado en ctx.
func WithActor(ctx context.Context, a entity.Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, a)
}

// ContextActorProvider lee el usuario guardado por WithActor.
type ContextActorProvider struct{}

// CurrentActor devuelve el usuario de ctx o entity.UnknownActor.
func (ContextActorProvider) CurrentActor(ctx context.Context) entity.Actor {
	if ctx == nil {
		return entity.UnknownActor
	}
	a, ok := ctx.Value(actorKey{}).(entity.Actor)
	if !ok || a.IsUnknown() {
		return entity.UnknownActor
	}
	return a
}
