package middleware

import (
	"context"
	"net/http"

	"github.com/LinhNC/LinhGo.ERP-sub000/internal/models"
	"github.com/LinhNC/LinhGo.ERP-sub000/internal/service"

	"github.com/google/uuid"
)

// Middleware — стандартный net/http мидлвар.
type Middleware func(http.Handler) http.Handler

// Chain применяет мидлвары к обработчику в порядке их перечисления.
func Chain(h http.Handler, mws ...Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

type ctxKey int

const (
	ctxClaims ctxKey = iota
	ctxTenantSignals
)

// ClaimsFrom возвращает Claims аутентифицированного запроса.
// Присутствуют только после RequireAuth.
func ClaimsFrom(ctx context.Context) (*models.Claims, bool) {
	c, ok := ctx.Value(ctxClaims).(*models.Claims)
	return c, ok
}

// TenantSignalsFrom возвращает собранные сигналы тенанта запроса.
func TenantSignalsFrom(ctx context.Context) service.TenantSignals {
	s, _ := ctx.Value(ctxTenantSignals).(service.TenantSignals)
	return s
}

func withClaims(ctx context.Context, c *models.Claims) context.Context {
	return context.WithValue(ctx, ctxClaims, c)
}

func withTenantSignals(ctx context.Context, s service.TenantSignals) context.Context {
	return context.WithValue(ctx, ctxTenantSignals, s)
}

// statusWriter оборачивает ResponseWriter, чтобы перехватить статус и размер.
type statusWriter struct {
	http.ResponseWriter
	status int
	count  int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(p []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}

	count, err := w.ResponseWriter.Write(p)
	w.count += count
	return count, err
}

func newStatusWriter(w http.ResponseWriter) *statusWriter {
	return &statusWriter{ResponseWriter: w}
}

func parseUUID(raw string) uuid.UUID {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil
	}
	return id
}
