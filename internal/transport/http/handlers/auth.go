package handlers

import (
	"errors"
	"net/http"

	apierrors "github.com/LinhNC/LinhGo.ERP-sub000/internal/errors"
	"github.com/LinhNC/LinhGo.ERP-sub000/internal/models"
	"github.com/LinhNC/LinhGo.ERP-sub000/internal/service"
	"github.com/LinhNC/LinhGo.ERP-sub000/internal/transport/http/middleware"

	"github.com/google/uuid"
)

type loginRequest struct {
	Login  string `json:"login"`
	Secret string `json:"secret"`
}

type tokenPairResponse struct {
	AccessToken     string `json:"access_token"`
	RefreshToken    string `json:"refresh_token"`
	AccessExpiresAt int64  `json:"access_expires_at"`
}

type principalResponse struct {
	PrincipalID     string            `json:"principal_id"`
	Login           string            `json:"login"`
	DefaultTenantID string            `json:"default_tenant_id,omitempty"`
	TenantRoles     map[string]string `json:"tenant_roles"`
}

type loginResponse struct {
	tokenPairResponse
	Principal principalResponse `json:"principal"`
}

// Login аутентифицирует по паре логин/секрет и возвращает пару токенов
// со сводкой о владельце.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var in loginRequest
	if err := decodeStrict(r, &in); err != nil {
		writeInvalidArgument(w, r)
		return
	}

	pair, principal, err := h.service.Login(r.Context(), in.Login, in.Secret)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		tokenPairResponse: toTokenPairResponse(pair),
		Principal:         toPrincipalResponse(principal),
	})
}

type refreshRequest struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Refresh выпускает новую пару токенов, атомарно потребляя предъявленный
// refresh-токен.
func (h *Handlers) Refresh(w http.ResponseWriter, r *http.Request) {
	var in refreshRequest
	if err := decodeStrict(r, &in); err != nil {
		writeInvalidArgument(w, r)
		return
	}

	pair, err := h.service.Refresh(r.Context(), in.AccessToken, in.RefreshToken)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toTokenPairResponse(pair))
}

type logoutResponse struct {
	Ok bool `json:"ok"`
}

// Logout отзывает активные refresh-токены владельца предъявленного
// access-токена. Требует RequireAuth выше по цепочке.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		apierrors.WriteError(w, r, service.ErrInvalidToken)
		return
	}

	if err := h.service.Logout(r.Context(), claims.PrincipalID); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, logoutResponse{Ok: true})
}

type validateRequest struct {
	AccessToken string `json:"access_token"`
}

type validateResponse struct {
	Valid           bool              `json:"valid"`
	Reason          string            `json:"reason,omitempty"`
	PrincipalID     string            `json:"principal_id,omitempty"`
	DefaultTenantID string            `json:"default_tenant_id,omitempty"`
	TenantRoles     map[string]string `json:"tenant_roles,omitempty"`
	ExpiresAt       int64             `json:"expires_at,omitempty"`
}

// Validate проверяет access-токен. Контракт: при невалидном/просроченном
// токене HTTP-ошибки нет — отдаётся {valid:false, reason}, чтобы вызывающий
// различал «сделать refresh» (token_expired) и «повторный вход».
func (h *Handlers) Validate(w http.ResponseWriter, r *http.Request) {
	var in validateRequest
	if err := decodeStrict(r, &in); err != nil {
		writeInvalidArgument(w, r)
		return
	}

	claims, err := h.service.ValidateToken(r.Context(), in.AccessToken)
	if err != nil {
		reason := "token_invalid"
		if errors.Is(err, service.ErrTokenExpired) {
			reason = "token_expired"
		}

		writeJSON(w, http.StatusOK, validateResponse{Valid: false, Reason: reason})
		return
	}

	out := validateResponse{
		Valid:       true,
		PrincipalID: claims.PrincipalID.String(),
		TenantRoles: rolesToStrings(claims.TenantRoles),
		ExpiresAt:   claims.ExpiresAt.Unix(),
	}
	if claims.DefaultTenantID != uuid.Nil {
		out.DefaultTenantID = claims.DefaultTenantID.String()
	}

	writeJSON(w, http.StatusOK, out)
}

func toTokenPairResponse(pair *models.TokenPair) tokenPairResponse {
	return tokenPairResponse{
		AccessToken:     pair.AccessToken,
		RefreshToken:    pair.RefreshToken,
		AccessExpiresAt: pair.AccessExpiresAt.Unix(),
	}
}

func toPrincipalResponse(p *models.PrincipalSummary) principalResponse {
	out := principalResponse{
		PrincipalID: p.ID.String(),
		Login:       p.Login,
		TenantRoles: rolesToStrings(p.TenantRoles),
	}
	if p.DefaultTenantID != uuid.Nil {
		out.DefaultTenantID = p.DefaultTenantID.String()
	}

	return out
}

func rolesToStrings(roles map[uuid.UUID]string) map[string]string {
	out := make(map[string]string, len(roles))
	for tid, role := range roles {
		out[tid.String()] = role
	}

	return out
}
