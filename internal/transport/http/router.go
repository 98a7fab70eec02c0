// transport/http собирает HTTP API сервиса: маршруты, мидлвары и обработчики.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/LinhNC/LinhGo.ERP-sub000/internal/service"
	"github.com/LinhNC/LinhGo.ERP-sub000/internal/transport/http/handlers"
	"github.com/LinhNC/LinhGo.ERP-sub000/internal/transport/http/middleware"
)

// Options — параметры сборки HTTP-роутера.
type Options struct {
	Logger   *slog.Logger
	Timeout  time.Duration
	BasePath string // например, "/api"; если пустой — роуты регистрируются на корне.
}

// PermissionRevokeSessions — разрешение на принудительный отзыв сессий
// внутри тенанта; выдаётся через permission_grants.
const PermissionRevokeSessions = "auth.sessions.revoke"

// NewRouter собирает http.Handler с chi и подключёнными middleware/роутами.
func NewRouter(svc *service.Service, opts Options) http.Handler {
	root := chi.NewRouter()

	// Middleware (внешний -> внутренний).
	root.Use(
		middleware.Recover(),            // безопасно ловим паники
		middleware.RequestID(),          // формируем/прокидываем X-Request-Id (до логирования!)
		middleware.Logging(opts.Logger), // кладём request-scoped логгер в контекст и логируем
	)
	if opts.Timeout > 0 {
		root.Use(middleware.Timeout(opts.Timeout)) // общий дедлайн запроса
	}

	// Зависимости хендлеров.
	h := handlers.New(svc)

	// Регистрация маршрутов.
	if opts.BasePath != "" {
		sub := chi.NewRouter()
		registerRoutes(sub, h, svc)
		root.Mount(opts.BasePath, sub)
		return root
	}

	registerRoutes(root, h, svc)
	return root
}

// registerRoutes — единая точка регистрации всех REST-эндпойнтов.
func registerRoutes(r chi.Router, h *handlers.Handlers, svc *service.Service) {
	// Публичные операции: токены предъявляются в теле запроса.
	r.Post("/auth/login", h.Login)
	r.Post("/auth/refresh", h.Refresh)
	r.Post("/auth/validate", h.Validate)

	// Операции от имени владельца access-токена.
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(svc), middleware.Tenant())
		r.Post("/auth/logout", h.Logout)
		r.Get("/auth/permissions", h.Permissions)
	})

	// Административные операции внутри тенанта: политика объявляется один раз
	// на маршруте, проверки (тенант -> разрешение) выполняются до обработчика.
	r.Route("/tenants/{tenant_id}", func(r chi.Router) {
		r.Use(
			middleware.RequireAuth(svc),
			middleware.Tenant(),
			middleware.RequirePolicy(svc, service.Policy{Permission: PermissionRevokeSessions}),
		)
		r.Post("/sessions/revoke", h.RevokeSessions)
	})
}
