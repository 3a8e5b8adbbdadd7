package http_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-insights/internal/application/activity"
	"github.com/jhoicas/inventario-insights/internal/application/analytics"
	"github.com/jhoicas/inventario-insights/internal/application/auth"
	"github.com/jhoicas/inventario-insights/internal/application/dto"
	"github.com/jhoicas/inventario-insights/internal/application/inventory"
	"github.com/jhoicas/inventario-insights/internal/application/usecase"
	"github.com/jhoicas/inventario-insights/internal/domain"
	"github.com/jhoicas/inventario-insights/internal/domain/entity"
	apphttp "github.com/jhoicas/inventario-insights/internal/interfaces/http"
	"github.com/jhoicas/inventario-insights/internal/mocks"
)

// testAPI API completa sobre repositorios en memoria.
type testAPI struct {
	app           *fiber.App
	stock         *mocks.StockChangeRepo
	products      *mocks.ProductRepo
	notifications *mocks.NotificationRepo
	activity      *mocks.ActivityLogRepo
	events        *mocks.Publisher
	renderer      *mocks.Renderer
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	hash, err := auth.HashPassword("secreto123")
	require.NoError(t, err)

	api := &testAPI{
		stock:         &mocks.StockChangeRepo{},
		products:      &mocks.ProductRepo{},
		notifications: mocks.NewNotificationRepo(),
		activity:      &mocks.ActivityLogRepo{},
		events:        &mocks.Publisher{},
		renderer:      &mocks.Renderer{Out: []byte("%PDF-1.4 fake")},
	}
	users := &mocks.UserRepo{Users: map[string]entity.User{
		"alice": {ID: testUserID, Username: "alice", PasswordHash: hash, Role: entity.RoleAdmin, Active: true},
		"bob":   {ID: "u-2", Username: "bob", PasswordHash: hash, Role: entity.RoleStaff, Active: false},
	}}

	log := zerolog.Nop()
	sales := analytics.NewSalesAnalyticsUseCase(api.stock, time.UTC, 0, log)
	status := inventory.NewStatusUseCase(api.products, log)

	api.app = fiber.New()
	apphttp.Router(api.app, apphttp.RouterDeps{
		AuthUC:         auth.NewAuthUseCase(users, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer}),
		SalesUC:        sales,
		ReportUC:       analytics.NewReportUseCase(sales, status, api.renderer, api.events, activity.ContextActorProvider{}, log),
		StatusUC:       status,
		NotificationUC: usecase.NewNotificationUseCase(api.notifications, log),
		ActivityUC:     usecase.NewActivityUseCase(api.activity),
		Events:         api.events,
		EventsVia:      "inprocess",
		JWTSecret:      testJWTSecret,
	})
	return api
}

func (a *testAPI) do(t *testing.T, method, path, role string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if role != "" {
		req.Header.Set("Authorization", tokenForRole(t, role))
	}
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// ── Auth ──────────────────────────────────────────────────────────────────────

func TestLogin_CredencialesValidasEmiteToken(t *testing.T) {
	api := newTestAPI(t)

	resp := api.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Username: "alice", Password: "secreto123"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.LoginResponse](t, resp)
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, entity.RoleAdmin, out.User.Role)
	assert.Equal(t, testExpMin*60, out.ExpiresIn)

	req := httptest.NewRequest(http.MethodGet, "/api/activity", nil)
	req.Header.Set("Authorization", "Bearer "+out.Token)
	me, err := api.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, me.StatusCode, "el token emitido sirve para rutas protegidas")
}

func TestLogin_ErroresDeCredenciales(t *testing.T) {
	api := newTestAPI(t)

	resp := api.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Username: "alice", Password: "otra"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = api.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Username: "nadie", Password: "secreto123"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = api.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Username: "bob", Password: "secreto123"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = api.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// ── Notificaciones ────────────────────────────────────────────────────────────

func TestNotificaciones_CicloCompleto(t *testing.T) {
	api := newTestAPI(t)

	resp := api.do(t, http.MethodPost, "/api/notifications", entity.RoleStaff, dto.CreateNotificationRequest{Title: "Stock bajo", Type: "low_stock"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[dto.NotificationDTO](t, resp)
	assert.Equal(t, "medium", created.Severity)
	assert.Equal(t, "justo ahora", created.TimeAgo)

	resp = api.do(t, http.MethodPost, "/api/notifications", entity.RoleStaff, dto.CreateNotificationRequest{Title: "Otra"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = api.do(t, http.MethodGet, "/api/notifications", entity.RoleStaff, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[[]dto.NotificationDTO](t, resp)
	require.Len(t, list, 2)
	assert.Equal(t, "Otra", list[0].Title, "más recientes primero")

	count := decode[dto.UnreadCountDTO](t, api.do(t, http.MethodGet, "/api/notifications/unread-count", entity.RoleStaff, nil))
	assert.Equal(t, 2, count.Count)

	resp = api.do(t, http.MethodPatch, "/api/notifications/"+created.ID+"/read", entity.RoleStaff, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, decode[dto.NotificationDTO](t, resp).IsRead)

	resp = api.do(t, http.MethodPatch, "/api/notifications/read-all", entity.RoleStaff, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	count = decode[dto.UnreadCountDTO](t, api.do(t, http.MethodGet, "/api/notifications/unread-count", entity.RoleStaff, nil))
	assert.Zero(t, count.Count)

	resp = api.do(t, http.MethodDelete, "/api/notifications/"+created.ID, entity.RoleStaff, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp = api.do(t, http.MethodDelete, "/api/notifications/"+created.ID, entity.RoleStaff, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestNotificaciones_ListaVaciaEsArreglo(t *testing.T) {
	api := newTestAPI(t)

	resp := api.do(t, http.MethodGet, "/api/notifications", entity.RoleAdmin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	assert.JSONEq(t, `[]`, string(raw))
}

func TestNotificaciones_ValidacionYRepoCaido(t *testing.T) {
	api := newTestAPI(t)

	resp := api.do(t, http.MethodPost, "/api/notifications", entity.RoleStaff, dto.CreateNotificationRequest{Title: "x", Severity: "urgente"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = api.do(t, http.MethodPatch, "/api/notifications/nope/read", entity.RoleStaff, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	api.notifications.Err = errors.New("connection reset")
	resp = api.do(t, http.MethodGet, "/api/notifications/unread-count", entity.RoleStaff, nil)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode, "error sin tipar del repo no es transporte")
}

// ── Analítica y productos ─────────────────────────────────────────────────────

func TestAnalytics_OverviewYTop(t *testing.T) {
	api := newTestAPI(t)
	now := time.Now().UTC()
	api.stock.Events = []entity.StockChangeEvent{
		{ID: "1", ProductName: "Camisa", Quantity: 4, Direction: entity.StockOut, OccurredAt: now.Add(-time.Hour)},
		{ID: "2", ProductName: "Pantalón", Quantity: 9, Direction: entity.StockOut, OccurredAt: now.Add(-2 * time.Hour)},
		{ID: "3", ProductName: "Camisa", Quantity: 50, Direction: entity.StockIn, OccurredAt: now.Add(-3 * time.Hour)},
	}

	resp := api.do(t, http.MethodGet, "/api/analytics/sales/overview", entity.RoleStaff, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	ov := decode[dto.SalesOverviewDTO](t, resp)
	assert.Equal(t, 13, ov.TotalUnits)
	assert.Len(t, ov.Monthly, 12)
	require.Len(t, ov.Recent, 2)

	resp = api.do(t, http.MethodGet, "/api/analytics/sales/top?limit=1", entity.RoleStaff, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	top := decode[[]dto.TopSellerDTO](t, resp)
	require.Len(t, top, 1)
	assert.Equal(t, "Pantalón", top[0].ProductName)

	resp = api.do(t, http.MethodGet, "/api/analytics/sales/monthly", entity.RoleService, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestAnalytics_BackendCaidoEs502NoAuth(t *testing.T) {
	api := newTestAPI(t)
	api.stock.Err = errors.New("dial tcp: connection refused")

	resp := api.do(t, http.MethodGet, "/api/analytics/sales/recent", entity.RoleAdmin, nil)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "BACKEND_UNAVAILABLE", body.Code)
}

func TestProductos_EstadoYFiltro(t *testing.T) {
	api := newTestAPI(t)
	api.products.Products = []entity.Product{
		{ID: "p1", Name: "Camisa", ActualQuantity: 10, ThresholdQuantity: 3, Price: decimal.NewFromInt(100)},
		{ID: "p2", Name: "Gorra", ActualQuantity: 0, ThresholdQuantity: 2, Price: decimal.NewFromInt(50)},
	}

	resp := api.do(t, http.MethodGet, "/api/products/status?status=out_of_stock", entity.RoleStaff, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[dto.ProductStatusListDTO](t, resp)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "Gorra", list.Items[0].Name)
	assert.Equal(t, 2, list.Summary.TotalProducts)

	resp = api.do(t, http.MethodGet, "/api/products/status?status=raro", entity.RoleStaff, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = api.do(t, http.MethodGet, "/api/products/p1/status", entity.RoleStaff, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "in_stock", decode[dto.ProductStatusDTO](t, resp).Status)

	resp = api.do(t, http.MethodGet, "/api/products/zz/status", entity.RoleStaff, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// ── Eventos, auditoría y reportes ─────────────────────────────────────────────

func TestEventos_AtribuyeAlUsuarioDelTokenYRechazaDesconocidos(t *testing.T) {
	api := newTestAPI(t)

	resp := api.do(t, http.MethodPost, "/api/events", entity.RoleService, map[string]any{
		"kind": "sale_recorded", "entity_type": "product", "entity_id": "p1", "name": "Camisa", "quantity": 2,
	})
	require.Equal(t, http.StatusAccepted, resp.StatusCode)
	accepted := decode[dto.EventAcceptedDTO](t, resp)
	assert.Equal(t, "inprocess", accepted.Via)

	published := api.events.Snapshot()
	require.Len(t, published, 1)
	require.NotNil(t, published[0].Actor)
	assert.Equal(t, testUsername, published[0].Actor.Username)
	assert.False(t, published[0].OccurredAt.IsZero())

	resp = api.do(t, http.MethodPost, "/api/events", entity.RoleService, map[string]any{"kind": "teleported"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Len(t, api.events.Snapshot(), 1)
}

func TestEventos_ActorDelCuerpoSoloParaTokensDeServicio(t *testing.T) {
	api := newTestAPI(t)
	forged := map[string]any{
		"kind": "inventory_adjusted", "entity_id": "p1", "name": "Camisa", "quantity": -1,
		"actor": map[string]any{"user_id": "u-admin", "username": "admin"},
	}

	for _, role := range []string{entity.RoleStaff, entity.RoleAdmin} {
		resp := api.do(t, http.MethodPost, "/api/events", role, forged)
		require.Equal(t, http.StatusAccepted, resp.StatusCode)
	}
	resp := api.do(t, http.MethodPost, "/api/events", entity.RoleService, forged)
	require.Equal(t, http.StatusAccepted, resp.StatusCode)

	published := api.events.Snapshot()
	require.Len(t, published, 3)
	for _, ev := range published[:2] {
		require.NotNil(t, ev.Actor)
		assert.Equal(t, entity.Actor{UserID: testUserID, Username: testUsername}, *ev.Actor)
	}
	require.NotNil(t, published[2].Actor)
	assert.Equal(t, "admin", published[2].Actor.Username)
}

func TestEventos_BusCaidoEs502(t *testing.T) {
	api := newTestAPI(t)
	api.events.Err = domain.NewTransportError("kafka_publish", errors.New("broker caído"))

	resp := api.do(t, http.MethodPost, "/api/events", entity.RoleAdmin, map[string]any{"kind": "csv_exported"})
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}

func TestActividad_SoloAdmin(t *testing.T) {
	api := newTestAPI(t)
	api.activity.Entries = []entity.ActivityLogEntry{
		{ID: "1", Username: "alice", Action: "Producto creado"},
		{ID: "2", Username: "alice", Action: "Venta registrada"},
	}

	resp := api.do(t, http.MethodGet, "/api/activity?limit=1", entity.RoleAdmin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	entries := decode[[]dto.ActivityLogDTO](t, resp)
	require.Len(t, entries, 1)
	assert.Equal(t, "Venta registrada", entries[0].Action)

	resp = api.do(t, http.MethodGet, "/api/activity", entity.RoleStaff, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestReporteVentasPDF(t *testing.T) {
	api := newTestAPI(t)

	resp := api.do(t, http.MethodGet, "/api/reports/sales.pdf", entity.RoleStaff, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	defer resp.Body.Close()
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	raw, _ := io.ReadAll(resp.Body)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))

	require.Len(t, api.renderer.Data, 1)
	assert.Equal(t, testUsername, api.renderer.Data[0].Author)
	published := api.events.Snapshot()
	require.Len(t, published, 1)
	assert.Equal(t, entity.EventReportGenerated, published[0].Kind)
}
