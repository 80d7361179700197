package sender

import (
	"context"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/julioo07/tarea-programada-1-BD/internal/config"
	"github.com/julioo07/tarea-programada-1-BD/internal/lib/rabbitmq"
	"github.com/julioo07/tarea-programada-1-BD/internal/lib/smtp"
	senderservice "github.com/julioo07/tarea-programada-1-BD/internal/services/sender"
	"github.com/julioo07/tarea-programada-1-BD/internal/storage/postgres"
)

type App struct {
	conn          *amqp.Connection
	ch            *amqp.Channel
	senderService *senderservice.Service
	logger        *slog.Logger
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := postgres.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		return nil, err
	}

	queues := rabbitmq.GetEventQueues()
	ch, err := rabbitmq.SetupChannel(conn, queues)
	if err != nil {
		conn.Close()
		return nil, err
	}

	newTransport := smtp.NewTransport(cfg, logger)
	senderService := senderservice.New(newTransport, db, logger)

	return &App{
		conn:          conn,
		ch:            ch,
		senderService: senderService,
		logger:        logger,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	err := rabbitmq.ConsumerMessage(ctx, a.ch, "events.follow", a.senderService.HandleFollowEvent)
	if err != nil {
		a.logger.Error("failed to start events.follow consumer", slog.Any("err", err))
		return err
	}

	err = rabbitmq.ConsumerMessage(ctx, a.ch, "events.message", a.senderService.HandleMessageEvent)
	if err != nil {
		a.logger.Error("failed to start events.message consumer", slog.Any("err", err))
		return err
	}

	<-ctx.Done()
	a.logger.Info("Sender service shutting down gracefully")

	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", slog.Any("err", err))
	}

	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", slog.Any("err", err))
	}

	return nil
}
