package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-insights/internal/application/analytics"
	"github.com/jhoicas/inventario-insights/internal/application/auth"
	"github.com/jhoicas/inventario-insights/internal/application/inventory"
	"github.com/jhoicas/inventario-insights/internal/application/ports"
	"github.com/jhoicas/inventario-insights/internal/application/usecase"
	"github.com/jhoicas/inventario-insights/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	SalesUC        *analytics.SalesAnalyticsUseCase
	ReportUC       *analytics.ReportUseCase
	StatusUC       *inventory.StatusUseCase
	NotificationUC *usecase.NotificationUseCase
	ActivityUC     *usecase.ActivityUseCase
	Events         ports.EventPublisher
	EventsVia      string
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	staff := RequireRole(entity.RoleAdmin, entity.RoleStaff)

	// Analítica de ventas
	sales := protected.Group("/analytics/sales", staff)
	analyticsHandler := NewAnalyticsHandler(deps.SalesUC)
	sales.Get("/overview", analyticsHandler.Overview)
	sales.Get("/monthly", analyticsHandler.Monthly)
	sales.Get("/top", analyticsHandler.Top)
	sales.Get("/recent", analyticsHandler.Recent)

	// Reportes
	reportHandler := NewReportHandler(deps.ReportUC)
	protected.Get("/reports/sales.pdf", staff, reportHandler.SalesPDF)

	// Estado de stock
	products := protected.Group("/products", staff)
	productHandler := NewProductHandler(deps.StatusUC)
	products.Get("/status", productHandler.ListStatus)
	products.Get("/:id/status", productHandler.GetStatus)

	// Bandeja de notificaciones
	notifications := protected.Group("/notifications", staff)
	notificationHandler := NewNotificationHandler(deps.NotificationUC)
	notifications.Get("/", notificationHandler.List)
	notifications.Get("/unread-count", notificationHandler.UnreadCount)
	notifications.Post("/", notificationHandler.Create)
	notifications.Patch("/read-all", notificationHandler.MarkAllRead)
	notifications.Patch("/:id/read", notificationHandler.MarkRead)
	notifications.Delete("/:id", notificationHandler.Delete)

	// Eventos de dominio (integraciones y usuarios)
	eventHandler := NewEventHandler(deps.Events, deps.EventsVia)
	protected.Post("/events", RequireRole(entity.RoleAdmin, entity.RoleStaff, entity.RoleService), eventHandler.Publish)

	// Auditoría (solo admin)
	activityHandler := NewActivityHandler(deps.ActivityUC)
	protected.Get("/activity", RequireRole(entity.RoleAdmin), activityHandler.List)
}
