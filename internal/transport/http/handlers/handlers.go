// handlers содержит HTTP-обработчики сервиса аутентификации.
// Здесь выполняется только маппинг запросов/ответов и ошибок доменного слоя
// (service) в HTTP. Вся валидация и бизнес-логика находятся в пакете service.
//
// Принципы:
//   - Контекст запроса прокидывается в сервис без потерь;
//   - Ошибки сервиса транслируются в статусы через internal/errors;
//   - Для 500 наружу не утекают детали внутренних ошибок; подробности
//     попадают в логи через мидлвары.
package handlers

import (
	"encoding/json"
	"net/http"

	apierrors "github.com/LinhNC/LinhGo.ERP-sub000/internal/errors"
	"github.com/LinhNC/LinhGo.ERP-sub000/internal/service"
)

// Handlers агрегирует зависимости обработчиков.
type Handlers struct {
	service *service.Service
}

func New(svc *service.Service) *Handlers {
	return &Handlers{service: svc}
}

// writeJSON — единый ответ JSON с нужным Content-Type.
// Ошибки выводим через apierrors.WriteError.
func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

// decodeStrict — строгий JSON-декодер: запрещаем неизвестные поля.
func decodeStrict(r *http.Request, value any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(value)
}

func writeInvalidArgument(w http.ResponseWriter, r *http.Request) {
	apierrors.WriteError(w, r, apierrors.ErrInvalidArgument)
}
