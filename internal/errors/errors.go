// errors стандартизирует ответы об ошибках HTTP-слоя.
// На вход он принимает доменную ошибку сервисного слоя, а на выход даёт:
//   - корректный HTTP-статус;
//   - краткое безопасное message без утечки деталей.
//
// Маппинг намеренно различает token_expired и token_invalid: по первому
// клиент должен попытаться обновить пару токенов, по второму — выполнить
// повторный вход. Forbidden не уточняет причину отказа и не раскрывает,
// существует ли ресурс.
package errors

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/LinhNC/LinhGo.ERP-sub000/internal/service"
)

// ErrInvalidArgument — локальная ошибка HTTP-слоя: битое тело запроса,
// некорректный UUID и т.п. Транспорт: 400.
var ErrInvalidArgument = errors.New("invalid argument")

// APIError — единый формат ошибки для клиентов.
// Code — короткий стабильный код для машиночитаемой обработки.
// Message — безопасное человекочитаемое описание.
// RequestID — прокидывается из X-Request-Id, если есть (для трассировки).
type APIError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// ErrorResponse — корневой объект в ответе.
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// ToHTTP конвертирует доменную ошибку в HTTP-статус и унифицированный ответ.
//
// Поведение:
//   - err == nil — это программная ошибка вызова: возвращаем 500/internal,
//     чтобы не послать "200 OK" с телом ошибки и не маскировать баг;
//   - неизвестная ошибка — 500/internal (без утечки деталей).
func ToHTTP(err error) (int, ErrorResponse) {
	status, code, msg := base(err)
	return status, ErrorResponse{
		Error: APIError{
			Code:    code,
			Message: msg,
		},
	}
}

// WriteError — хелпер для HTTP-хендлеров.
// Пишет корректный статус/тело, добавляет request_id из заголовка, если он есть.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status, resp := ToHTTP(err)

	// Прокидываем request_id, чтобы клиент мог репортить проблемы с привязкой.
	if rid := r.Header.Get("X-Request-Id"); rid != "" {
		resp.Error.RequestID = rid
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

// base — маппинг доменных ошибок на HTTP-статус/код/сообщение:
//   - ErrInvalidCredentials -> 401 (вход не различает «нет пользователя» и «неверный секрет»)
//   - ErrTokenExpired -> 401/token_expired (клиенту следует сделать refresh)
//   - ErrInvalidToken -> 401/token_invalid (повторный вход)
//   - ErrRefreshTokenInvalid -> 401/refresh_token_invalid (повторный вход)
//   - ErrForbidden -> 403 (без уточнения причины)
//   - ErrTenantUnresolved / ErrInvalidArgument -> 400
//   - прочее -> 500/internal
func base(err error) (int, string, string) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized, "unauthenticated", "unauthenticated"
	case errors.Is(err, service.ErrTokenExpired):
		return http.StatusUnauthorized, "token_expired", "token expired"
	case errors.Is(err, service.ErrInvalidToken):
		return http.StatusUnauthorized, "token_invalid", "token invalid"
	case errors.Is(err, service.ErrRefreshTokenInvalid):
		return http.StatusUnauthorized, "refresh_token_invalid", "refresh token invalid"
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden, "forbidden", "forbidden"
	case errors.Is(err, service.ErrTenantUnresolved):
		return http.StatusBadRequest, "tenant_unresolved", "tenant unresolved"
	case errors.Is(err, ErrInvalidArgument):
		return http.StatusBadRequest, "invalid_argument", "invalid argument"
	default:
		return http.StatusInternalServerError, "internal", "internal error"
	}
}
