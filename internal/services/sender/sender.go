// Package sender содержит бизнес-логику почтовых уведомлений: обработку
// событий подписок и сообщений из очереди и отправку писем по SMTP.
package sender

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/julioo07/tarea-programada-1-BD/internal/lib/sl"
	"github.com/julioo07/tarea-programada-1-BD/internal/lib/smtp"
	"github.com/julioo07/tarea-programada-1-BD/internal/models"
)

// UserResolver возвращает профильные данные пользователя по uid.
type UserResolver interface {
	GetUser(ctx context.Context, userUID string) (*models.User, error)
}

// Service отправляет письма по событиям из очереди.
type Service struct {
	transport smtp.TransportInterface
	users     UserResolver
	log       *slog.Logger
}

// New создает новый экземпляр Service.
func New(transport smtp.TransportInterface, users UserResolver, log *slog.Logger) *Service {
	return &Service{
		transport: transport,
		users:     users,
		log:       log,
	}
}

// HandleFollowEvent обрабатывает событие новой подписки: письмо получает
// пользователь, на которого подписались. Пользователь без почты пропускается.
func (s *Service) HandleFollowEvent(body []byte) error {
	var event models.FollowEvent
	if err := json.Unmarshal(body, &event); err != nil {
		s.log.Error("Failed to unmarshal message body", "error", sl.Err(err))
		return fmt.Errorf("error unmarshalling message: %w", err)
	}

	ctx := context.Background()
	followed, err := s.users.GetUser(ctx, event.FollowedID)
	if err != nil {
		return fmt.Errorf("resolve followed user: %w", err)
	}
	follower, err := s.users.GetUser(ctx, event.FollowerID)
	if err != nil {
		return fmt.Errorf("resolve follower: %w", err)
	}

	if followed.Email == "" {
		s.log.Info("user has no email, skipping notification",
			slog.String("uid", followed.UID))
		return nil
	}

	subject := "Новый подписчик"
	bodyText := fmt.Sprintf("Здравствуйте, %s!\n\nПользователь %s подписался на вас.",
		followed.Username, follower.Username)
	return s.sendEmail([]string{followed.Email}, subject, bodyText)
}

// HandleMessageEvent обрабатывает событие нового личного сообщения.
func (s *Service) HandleMessageEvent(body []byte) error {
	var event models.MessageEvent
	if err := json.Unmarshal(body, &event); err != nil {
		s.log.Error("Failed to unmarshal message body", "error", sl.Err(err))
		return fmt.Errorf("error unmarshalling message: %w", err)
	}

	ctx := context.Background()
	receiver, err := s.users.GetUser(ctx, event.ReceiverID)
	if err != nil {
		return fmt.Errorf("resolve receiver: %w", err)
	}
	sender, err := s.users.GetUser(ctx, event.SenderID)
	if err != nil {
		return fmt.Errorf("resolve sender: %w", err)
	}

	if receiver.Email == "" {
		s.log.Info("user has no email, skipping notification",
			slog.String("uid", receiver.UID))
		return nil
	}

	subject := "Новое личное сообщение"
	bodyText := fmt.Sprintf("Здравствуйте, %s!\n\nПользователь %s отправил вам сообщение.",
		receiver.Username, sender.Username)
	return s.sendEmail([]string{receiver.Email}, subject, bodyText)
}

func (s *Service) sendEmail(to []string, subject, bodyText string) error {
	msg := strings.Join([]string{
		"From: " + s.transport.GetSMTPUser(),
		"To: " + strings.Join(to, ";"),
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		bodyText,
	}, "\r\n")

	client, err := s.transport.Connect()
	if err != nil {
		s.log.Error("Failed to connect to SMTP server", "error", sl.Err(err))
		return err
	}
	defer client.Close()

	if err := client.Mail(s.transport.GetSMTPUser()); err != nil {
		s.log.Error("Failed to set MAIL FROM", "from", s.transport.GetSMTPUser(), "error", sl.Err(err))
		return err
	}

	for _, addr := range to {
		if err := client.Rcpt(addr); err != nil {
			s.log.Error("Failed to set RCPT TO", "recipient", addr, "error", sl.Err(err))
			return err
		}
	}

	wc, err := client.Data()
	if err != nil {
		s.log.Error("Failed to get Data writer", "error", sl.Err(err))
		return err
	}

	_, err = wc.Write([]byte(msg))
	if err != nil {
		s.log.Error("Failed to write email body", "error", sl.Err(err))
		return err
	}

	if err = wc.Close(); err != nil {
		s.log.Error("Failed to close Data writer", "error", sl.Err(err))
		return err
	}

	if err = client.Quit(); err != nil {
		s.log.Error("Failed to quit SMTP client", "error", sl.Err(err))
		return err
	}

	s.log.Info("email sent successfully", "to", to)
	return nil
}
