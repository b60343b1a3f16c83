package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/nanmax/newsfeed/internal/service"
	"github.com/nanmax/newsfeed/internal/transport/http/handlers"
	"github.com/nanmax/newsfeed/internal/transport/http/middleware"
)

// Options — параметры сборки HTTP-роутера.
type Options struct {
	Logger   *slog.Logger
	Timeout  time.Duration
	BasePath string // например, "/api"; если пустой — роуты регистрируются на корне.
}

// NewRouter собирает http.Handler с chi и подключёнными middleware/роутами.
func NewRouter(svc *service.Service, opts Options) http.Handler {
	root := chi.NewRouter()

	// Middleware (внешний -> внутренний).
	root.Use(
		middleware.Recover(),            // безопасно ловим паники
		middleware.RequestID(),          // формируем/прокидываем X-Request-Id (до логирования!)
		middleware.Logging(opts.Logger), // кладём request-scoped логгер в контекст и логируем
		middleware.Metrics(),            // счётчики и гистограммы запросов
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
func registerRoutes(r chi.Router, h *handlers.Handlers, auth middleware.Authenticator) {
	// Публичные маршруты: аутентификация не требуется.
	r.Post("/register", h.Register)
	r.Post("/login", h.Login)
	r.Post("/refresh-token", h.RefreshToken)

	// Защищённые маршруты: только с валидным access-токеном.
	r.Group(func(pr chi.Router) {
		pr.Use(middleware.RequireAuth(auth))

		pr.Post("/logout", h.Logout)

		pr.Post("/posts", h.CreatePost)
		pr.Get("/feed", h.Feed)

		pr.Post("/follow/{userid}", h.Follow)
		pr.Delete("/follow/{userid}", h.Unfollow)

		pr.Get("/users", h.ListUsers)
		pr.Get("/users/following", h.ListFollowing)
	})
}
