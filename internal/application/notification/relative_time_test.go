package notification_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/inventario-insights/internal/application/notification"
	"github.com/jhoicas/inventario-insights/internal/domain/entity"
)

func TestFormatRelative(t *testing.T) {
	now := time.Date(2026, time.October, 16, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		name string
		ago  time.Duration
		want string
	}{
		{"segundos", 30 * time.Second, "justo ahora"},
		{"futuro", -5 * time.Minute, "justo ahora"},
		{"minutos", 5 * time.Minute, "hace 5 min"},
		{"horas", 3*time.Hour + 10*time.Minute, "hace 3 h"},
		{"ayer", 30 * time.Hour, "ayer"},
		{"días", 4 * 24 * time.Hour, "hace 4 días"},
		{"fecha", 10 * 24 * time.Hour, "06/10/2026"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, notification.FormatRelative(now.Add(-tc.ago), now))
		})
	}
}

func TestToDTOs_NuncaNil(t *testing.T) {
	out := notification.ToDTOs(nil, time.Now())
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestToDTO_CopiaCamposYEtiqueta(t *testing.T) {
	now := time.Date(2026, time.October, 16, 12, 0, 0, 0, time.UTC)
	n := entity.Notification{ID: "x", Type: entity.NotificationOutOfStock, Severity: entity.SeverityMedium,
		CreatedAt: now.Add(-2 * time.Minute), RelatedEntityType: "product", RelatedEntityID: "p1"}

	d := notification.ToDTO(n, now)
	assert.Equal(t, "out_of_stock", d.Type)
	assert.Equal(t, "medium", d.Severity)
	assert.Equal(t, "hace 2 min", d.TimeAgo)
	assert.Equal(t, "p1", d.RelatedEntityID)
}
