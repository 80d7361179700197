// Package socialnetwork собирает приложение социальной сети: маршруты,
// зависимости и жизненный цикл HTTP-сервера.
package socialnetwork

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	accountupdate "github.com/julioo07/tarea-programada-1-BD/internal/http/handlers/account/update"
	"github.com/julioo07/tarea-programada-1-BD/internal/http/handlers/auth/login"
	"github.com/julioo07/tarea-programada-1-BD/internal/http/handlers/auth/me"
	"github.com/julioo07/tarea-programada-1-BD/internal/http/handlers/auth/signup"
	"github.com/julioo07/tarea-programada-1-BD/internal/http/handlers/dataset/byowner"
	"github.com/julioo07/tarea-programada-1-BD/internal/http/handlers/dataset/create"
	datasetlist "github.com/julioo07/tarea-programada-1-BD/internal/http/handlers/dataset/list"
	"github.com/julioo07/tarea-programada-1-BD/internal/http/handlers/dataset/read"
	"github.com/julioo07/tarea-programada-1-BD/internal/http/handlers/dataset/search"
	datasetupdate "github.com/julioo07/tarea-programada-1-BD/internal/http/handlers/dataset/update"
	"github.com/julioo07/tarea-programada-1-BD/internal/http/handlers/dataset/vote"
	"github.com/julioo07/tarea-programada-1-BD/internal/http/handlers/dataset/votes"
	"github.com/julioo07/tarea-programada-1-BD/internal/http/handlers/dataset/votestatus"
	"github.com/julioo07/tarea-programada-1-BD/internal/http/handlers/dev/cachestats"
	"github.com/julioo07/tarea-programada-1-BD/internal/http/handlers/dev/invalidate"
	"github.com/julioo07/tarea-programada-1-BD/internal/http/handlers/health"
	"github.com/julioo07/tarea-programada-1-BD/internal/http/handlers/message/conversation"
	"github.com/julioo07/tarea-programada-1-BD/internal/http/handlers/message/conversations"
	messagemarkread "github.com/julioo07/tarea-programada-1-BD/internal/http/handlers/message/markread"
	"github.com/julioo07/tarea-programada-1-BD/internal/http/handlers/message/send"
	notificationlist "github.com/julioo07/tarea-programada-1-BD/internal/http/handlers/notification/list"
	notificationmarkread "github.com/julioo07/tarea-programada-1-BD/internal/http/handlers/notification/markread"
	"github.com/julioo07/tarea-programada-1-BD/internal/http/handlers/presence/heartbeat"
	"github.com/julioo07/tarea-programada-1-BD/internal/http/handlers/presence/offline"
	"github.com/julioo07/tarea-programada-1-BD/internal/http/handlers/presence/online"
	"github.com/julioo07/tarea-programada-1-BD/internal/http/handlers/social/follow"
	"github.com/julioo07/tarea-programada-1-BD/internal/http/handlers/social/followers"
	"github.com/julioo07/tarea-programada-1-BD/internal/http/handlers/social/followstatus"
	"github.com/julioo07/tarea-programada-1-BD/internal/http/handlers/social/listusers"
	"github.com/julioo07/tarea-programada-1-BD/internal/http/handlers/social/unfollow"
	"github.com/julioo07/tarea-programada-1-BD/internal/http/middlewarectx"
	"github.com/julioo07/tarea-programada-1-BD/internal/lib/jwt"
	"github.com/julioo07/tarea-programada-1-BD/internal/lib/upload"
	authservice "github.com/julioo07/tarea-programada-1-BD/internal/services/auth"
	datasetservice "github.com/julioo07/tarea-programada-1-BD/internal/services/dataset"
	messagingservice "github.com/julioo07/tarea-programada-1-BD/internal/services/messaging"
	notificationservice "github.com/julioo07/tarea-programada-1-BD/internal/services/notification"
	socialservice "github.com/julioo07/tarea-programada-1-BD/internal/services/social"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, jwtMaker jwt.Maker,
	authService *authservice.Service,
	socialService *socialservice.Service,
	datasetService *datasetservice.Service,
	messagingService *messagingservice.Service,
	notificationService *notificationservice.Service,
	saver *upload.Saver,
	checker health.Checker,
) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
		middlewarectx.MetricsMiddleware,
	)

	r.Route("/api", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/auth/signup", signup.New(logger, authService).ServeHTTP)
		r.Post("/auth/login", login.New(logger, authService).ServeHTTP)

		// Чтение каталога датасетов доступно без токена
		r.Get("/datasets", datasetlist.New(logger, datasetService).ServeHTTP)
		r.Get("/datasets/buscar/{nombre}", search.New(logger, datasetService).ServeHTTP)
		r.Get("/datasets/usuario/{userId}", byowner.New(logger, datasetService).ServeHTTP)
		r.Get("/datasets/{id}", read.New(logger, datasetService).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(jwtMaker, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			r.Get("/auth/me", me.New(logger, authService).ServeHTTP)
			r.Put("/account", accountupdate.New(logger, authService).ServeHTTP)

			r.Get("/users", listusers.New(logger, socialService).ServeHTTP)
			r.Post("/follow", follow.New(logger, socialService).ServeHTTP)
			r.Get("/follow/{id}", followstatus.New(logger, socialService).ServeHTTP)
			r.Delete("/follow/{id}", unfollow.New(logger, socialService).ServeHTTP)
			r.Get("/followers", followers.New(logger, socialService).ServeHTTP)

			r.Post("/datasets", create.New(logger, datasetService, saver).ServeHTTP)
			r.Put("/datasets/{id}", datasetupdate.New(logger, datasetService).ServeHTTP)
			r.Post("/datasets/{id}/vote", vote.New(logger, datasetService).ServeHTTP)
			r.Get("/datasets/{id}/vote", votestatus.New(logger, datasetService).ServeHTTP)
			r.Get("/votes", votes.New(logger, datasetService).ServeHTTP)

			r.Post("/messages", send.New(logger, messagingService).ServeHTTP)
			r.Get("/messages/{otherUserId}", conversation.New(logger, messagingService).ServeHTTP)
			r.Post("/messages/{otherUserId}/read", messagemarkread.New(logger, messagingService).ServeHTTP)
			r.Get("/conversations", conversations.New(logger, messagingService).ServeHTTP)

			r.Get("/notifications", notificationlist.New(logger, notificationService).ServeHTTP)
			r.Post("/notifications/{index}/read", notificationmarkread.New(logger, notificationService).ServeHTTP)

			r.Post("/presence", heartbeat.New(logger, notificationService).ServeHTTP)
			r.Delete("/presence", offline.New(logger, notificationService).ServeHTTP)
			r.Get("/presence", online.New(logger, notificationService).ServeHTTP)

			r.Get("/dev/redis-stats", cachestats.New(logger, notificationService).ServeHTTP)
			r.Post("/dev/cache/invalidate", invalidate.New(logger, notificationService).ServeHTTP)
		})
	})

	r.Get("/health", health.New(logger, checker).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
