package middleware

import (
	"net/http"

	apierrors "github.com/LinhNC/LinhGo.ERP-sub000/internal/errors"
	"github.com/LinhNC/LinhGo.ERP-sub000/internal/service"
)

// RequirePolicy — декларативная защита маршрута: политика объявляется один
// раз при регистрации, проверки выполняются до тела обработчика и
// обрываются на первом отказе (тенант → роль → разрешение).
//
// Требует RequireAuth и Tenant выше по цепочке: principal берётся из Claims,
// тенант — из собранных сигналов через service.ResolveTenant.
func RequirePolicy(svc *service.Service, policy service.Policy) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFrom(r.Context())
			if !ok {
				apierrors.WriteError(w, r, service.ErrInvalidToken)
				return
			}

			tenantID, err := svc.ResolveTenant(TenantSignalsFrom(r.Context()), claims)
			if err != nil {
				apierrors.WriteError(w, r, err)
				return
			}

			if err := svc.Authorize(r.Context(), claims.PrincipalID, tenantID, policy); err != nil {
				apierrors.WriteError(w, r, err)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
