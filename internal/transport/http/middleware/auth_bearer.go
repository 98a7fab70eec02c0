package middleware

import (
	"net/http"
	"strings"

	apierrors "github.com/LinhNC/LinhGo.ERP-sub000/internal/errors"
	"github.com/LinhNC/LinhGo.ERP-sub000/internal/service"
)

// RequireAuth извлекает Bearer-токен из Authorization, валидирует его через
// сервисный слой и кладёт Claims в контекст. Запрос без валидного токена
// завершается 401 (token_expired отличим от token_invalid — клиент решает,
// делать refresh или повторный вход).
func RequireAuth(svc *service.Service) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				apierrors.WriteError(w, r, service.ErrInvalidToken)
				return
			}

			claims, err := svc.ValidateToken(r.Context(), token)
			if err != nil {
				apierrors.WriteError(w, r, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), claims)))
		})
	}
}

// bearerToken достаёт «сырой» токен из заголовка Authorization.
func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}

	const prefix = "Bearer "
	if !strings.HasPrefix(auth, prefix) || len(auth) == len(prefix) {
		return ""
	}

	return strings.TrimSpace(auth[len(prefix):])
}
