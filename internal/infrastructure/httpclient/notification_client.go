// Package httpclient implementa el transporte remoto de la bandeja de notificaciones
// sobre la API REST (/api/notifications).
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jhoicas/inventario-insights/internal/application/dto"
	"github.com/jhoicas/inventario-insights/internal/application/ports"
	"github.com/jhoicas/inventario-insights/internal/domain"
	"github.com/jhoicas/inventario-insights/internal/domain/entity"
)

var _ ports.NotificationTransport = (*NotificationClient)(nil)

const (
	defaultTimeout = 15 * time.Second
	maxBodyBytes   = 1 << 20
)

// NotificationClient cliente HTTP de la bandeja. Autentica con Bearer token.
type NotificationClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewNotificationClient construye el cliente. baseURL apunta a la raíz de la API
// (ej. http://localhost:8080/api).
func NewNotificationClient(baseURL, token string, timeout time.Duration) *NotificationClient {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &NotificationClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// ── Implementación del puerto ─────────────────────────────────────────────────

// List GET /notifications. Un cuerpo que no es un arreglo JSON es MalformedResponseError.
func (c *NotificationClient) List(ctx context.Context) ([]entity.Notification, error) {
	raw, err := c.do(ctx, "list", http.MethodGet, "/notifications", nil)
	if err != nil {
		return nil, err
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, domain.NewMalformedResponseError("list", "se esperaba un arreglo", nil)
	}
	var items []entity.Notification
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, domain.NewMalformedResponseError("list", "arreglo inválido", err)
	}
	if items == nil {
		items = []entity.Notification{}
	}
	return items, nil
}

// UnreadCount GET /notifications/unread-count.
func (c *NotificationClient) UnreadCount(ctx context.Context) (int, error) {
	raw, err := c.do(ctx, "unread_count", http.MethodGet, "/notifications/unread-count", nil)
	if err != nil {
		return 0, err
	}
	var out dto.UnreadCountDTO
	if err := json.Unmarshal(raw, &out); err != nil {
		return 0, domain.NewMalformedResponseError("unread_count", "objeto inválido", err)
	}
	return out.Count, nil
}

// MarkRead PATCH /notifications/:id/read.
func (c *NotificationClient) MarkRead(ctx context.Context, id string) (*entity.Notification, error) {
	raw, err := c.do(ctx, "mark_read", http.MethodPatch, "/notifications/"+url.PathEscape(id)+"/read", nil)
	if err != nil {
		return nil, err
	}
	return decodeNotification("mark_read", raw)
}

// MarkAllRead PATCH /notifications/read-all.
func (c *NotificationClient) MarkAllRead(ctx context.Context) error {
	_, err := c.do(ctx, "mark_all_read", http.MethodPatch, "/notifications/read-all", nil)
	return err
}

// Create POST /notifications.
func (c *NotificationClient) Create(ctx context.Context, req entity.NotificationRequest) (*entity.Notification, error) {
	body, err := json.Marshal(dto.CreateNotificationRequest{
		Title:             req.Title,
		Message:           req.Message,
		Type:              string(req.Type),
		Severity:          string(req.Severity),
		RelatedEntityType: req.RelatedEntityType,
		RelatedEntityID:   req.RelatedEntityID,
	})
	if err != nil {
		return nil, fmt.Errorf("create: serializar: %w", err)
	}
	raw, err := c.do(ctx, "create", http.MethodPost, "/notifications", body)
	if err != nil {
		return nil, err
	}
	return decodeNotification("create", raw)
}

// Delete DELETE /notifications/:id.
func (c *NotificationClient) Delete(ctx context.Context, id string) error {
	_, err := c.do(ctx, "delete", http.MethodDelete, "/notifications/"+url.PathEscape(id), nil)
	return err
}

// ── HTTP ──────────────────────────────────────────────────────────────────────

// do ejecuta la petición y devuelve el cuerpo de una respuesta 2xx.
// Red caída, timeout y 5xx son TransportError; 401/403/404/400 se traducen a los
// errores de dominio equivalentes.
func (c *NotificationClient) do(ctx context.Context, op, method, path string, body []byte) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("%s: crear request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, domain.NewTransportError(op, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, domain.NewTransportError(op, fmt.Errorf("leer respuesta: %w", err))
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return raw, nil
	}
	return nil, statusError(op, resp.StatusCode, raw)
}

func statusError(op string, status int, raw []byte) error {
	msg := http.StatusText(status)
	var apiErr dto.ErrorResponse
	if err := json.Unmarshal(raw, &apiErr); err == nil && apiErr.Message != "" {
		msg = apiErr.Message
	}
	switch status {
	case http.StatusUnauthorized:
		return fmt.Errorf("%s: %w: %s", op, domain.ErrUnauthorized, msg)
	case http.StatusForbidden:
		return fmt.Errorf("%s: %w: %s", op, domain.ErrForbidden, msg)
	case http.StatusNotFound:
		return fmt.Errorf("%s: %w: %s", op, domain.ErrNotFound, msg)
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return &domain.ValidationError{Field: op, Reason: msg}
	}
	return domain.NewTransportError(op, fmt.Errorf("HTTP %d: %s", status, msg))
}

func decodeNotification(op string, raw []byte) (*entity.Notification, error) {
	var n entity.Notification
	if err := json.Unmarshal(raw, &n); err != nil {
		return nil, domain.NewMalformedResponseError(op, "objeto inválido", err)
	}
	if n.ID == "" {
		return nil, domain.NewMalformedResponseError(op, "falta id", nil)
	}
	return &n, nil
}

// IsAuthFailure indica si err proviene de credenciales rechazadas por la API.
func IsAuthFailure(err error) bool {
	return errors.Is(err, domain.ErrUnauthorized) || errors.Is(err, domain.ErrForbidden)
}
