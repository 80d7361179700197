package socialnetwork

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/julioo07/tarea-programada-1-BD/internal/config"
	"github.com/julioo07/tarea-programada-1-BD/internal/lib/jwt"
	"github.com/julioo07/tarea-programada-1-BD/internal/lib/rabbitmq"
	"github.com/julioo07/tarea-programada-1-BD/internal/lib/sl"
	"github.com/julioo07/tarea-programada-1-BD/internal/lib/upload"
	"github.com/julioo07/tarea-programada-1-BD/internal/migrations"
	authservice "github.com/julioo07/tarea-programada-1-BD/internal/services/auth"
	datasetservice "github.com/julioo07/tarea-programada-1-BD/internal/services/dataset"
	messagingservice "github.com/julioo07/tarea-programada-1-BD/internal/services/messaging"
	notificationservice "github.com/julioo07/tarea-programada-1-BD/internal/services/notification"
	socialservice "github.com/julioo07/tarea-programada-1-BD/internal/services/social"
	"github.com/julioo07/tarea-programada-1-BD/internal/storage/mongodb"
	"github.com/julioo07/tarea-programada-1-BD/internal/storage/postgres"
	"github.com/julioo07/tarea-programada-1-BD/internal/storage/redisdb"
)

type App struct {
	server   *http.Server
	logger   *slog.Logger
	db       *postgres.Storage
	mongo    *mongodb.Store
	cache    *redisdb.Store
	amqpConn *amqp.Connection
	amqpCh   *amqp.Channel
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := postgres.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	mongoStore, err := mongodb.New(ctx, cfg.MongoConnection)
	if err != nil {
		return nil, err
	}

	cacheRedis, err := redisdb.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	saver, err := upload.NewSaver(cfg.UploadsDir)
	if err != nil {
		return nil, err
	}

	// Брокер событий необязателен: без него сервис продолжает работать,
	// воркер уведомлений просто не получает событий.
	var amqpConn *amqp.Connection
	var amqpCh *amqp.Channel
	var socialPublisher socialservice.EventPublisher
	var messagePublisher messagingservice.EventPublisher
	if cfg.RabbitMQURL != "" {
		amqpConn, err = rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
		if err != nil {
			logger.Warn("rabbitmq unavailable, events disabled", sl.Err(err))
			amqpConn = nil
		} else {
			amqpCh, err = rabbitmq.SetupChannel(amqpConn, rabbitmq.GetEventQueues())
			if err != nil {
				logger.Warn("failed to setup rabbitmq channel, events disabled", sl.Err(err))
				_ = amqpConn.Close()
				amqpConn = nil
			} else {
				publisher := rabbitmq.NewPublisher(amqpCh)
				socialPublisher = publisher
				messagePublisher = publisher
			}
		}
	}

	jwtMaker := jwt.NewMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	authService := authservice.New(db, jwtMaker, logger)
	socialService := socialservice.New(db, cacheRedis, socialPublisher, logger)
	datasetService := datasetservice.New(mongoStore, cacheRedis, cacheRedis, logger)
	messagingService := messagingservice.New(cacheRedis, messagePublisher, logger)
	notificationService := notificationservice.New(cacheRedis, logger)

	router := chi.NewRouter()

	RegisterRoutes(router, logger, jwtMaker,
		authService, socialService, datasetService, messagingService, notificationService, saver, db)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server:   srv,
		logger:   logger,
		db:       db,
		mongo:    mongoStore,
		cache:    cacheRedis,
		amqpConn: amqpConn,
		amqpCh:   amqpCh,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if a.amqpCh != nil {
			_ = a.amqpCh.Close()
		}
		if a.amqpConn != nil {
			_ = a.amqpConn.Close()
		}
		_ = a.cache.Db.Close()
		if mongoErr := a.mongo.Close(timeoutCtx); mongoErr != nil {
			a.logger.Error("failed to disconnect mongodb", sl.Err(mongoErr))
		}
		_ = a.db.DB.Close()
		return err
	}
}
