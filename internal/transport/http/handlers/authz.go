package handlers

import (
	"net/http"

	apierrors "github.com/LinhNC/LinhGo.ERP-sub000/internal/errors"
	"github.com/LinhNC/LinhGo.ERP-sub000/internal/service"
	"github.com/LinhNC/LinhGo.ERP-sub000/internal/transport/http/middleware"

	"github.com/google/uuid"
)

type permissionsResponse struct {
	TenantID    string   `json:"tenant_id"`
	Permissions []string `json:"permissions"`
}

// Permissions возвращает действующий набор разрешений вызывающего
// в разрешённом тенанте. Набор перечитывается из текущего состояния
// членств, а не из снапшота токена. Требует RequireAuth и Tenant.
func (h *Handlers) Permissions(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		apierrors.WriteError(w, r, service.ErrInvalidToken)
		return
	}

	tenantID, err := h.service.ResolveTenant(middleware.TenantSignalsFrom(r.Context()), claims)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	perms, err := h.service.EffectivePermissions(r.Context(), claims.PrincipalID, tenantID)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	out := permissionsResponse{
		TenantID:    tenantID.String(),
		Permissions: perms.List(),
	}
	if out.Permissions == nil {
		out.Permissions = []string{}
	}

	writeJSON(w, http.StatusOK, out)
}

type revokeSessionsRequest struct {
	PrincipalID string `json:"principal_id"`
}

// RevokeSessions принудительно отзывает активные refresh-токены указанного
// principal (административная операция внутри тенанта). Маршрут защищён
// RequirePolicy, поэтому сюда попадают только авторизованные вызовы.
func (h *Handlers) RevokeSessions(w http.ResponseWriter, r *http.Request) {
	var in revokeSessionsRequest
	if err := decodeStrict(r, &in); err != nil {
		writeInvalidArgument(w, r)
		return
	}

	principalID, err := uuid.Parse(in.PrincipalID)
	if err != nil {
		writeInvalidArgument(w, r)
		return
	}

	if err := h.service.Logout(r.Context(), principalID); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, logoutResponse{Ok: true})
}
