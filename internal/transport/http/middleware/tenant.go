package middleware

import (
	"net/http"

	"github.com/LinhNC/LinhGo.ERP-sub000/internal/service"

	"github.com/go-chi/chi/v5"
)

// HeaderTenantID — заголовок явного выбора тенанта вызывающим.
const HeaderTenantID = "X-Tenant-Id"

// Tenant собирает сигналы определения тенанта запроса: явный заголовок
// X-Tenant-Id и параметр маршрута {tenant_id}. Мидлвар только собирает
// сигналы; приоритет (явный > маршрутный > дефолт токена) применяет
// service.ResolveTenant в точках, где тенант действительно нужен.
func Tenant() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			signals := service.TenantSignals{
				ExplicitTenantID: parseUUID(r.Header.Get(HeaderTenantID)),
				RouteTenantID:    parseUUID(chi.URLParam(r, "tenant_id")),
			}

			next.ServeHTTP(w, r.WithContext(withTenantSignals(r.Context(), signals)))
		})
	}
}
