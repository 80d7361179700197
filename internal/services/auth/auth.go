// Package auth содержит бизнес-логику регистрации, входа и работы с профилем.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/julioo07/tarea-programada-1-BD/internal/lib/jwt"
	"github.com/julioo07/tarea-programada-1-BD/internal/lib/password"
	"github.com/julioo07/tarea-programada-1-BD/internal/models"
	"github.com/julioo07/tarea-programada-1-BD/internal/storage/postgres"
)

// ErrInvalidCredentials возвращается при неверном имени пользователя или пароле.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserRepository определяет методы для работы с пользователями в хранилище.
type UserRepository interface {
	// CreateUser добавляет нового пользователя и возвращает его uid.
	CreateUser(ctx context.Context, user models.User) (string, error)
	// GetUserByUsername возвращает пользователя по имени.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	// GetUser возвращает пользователя по uid.
	GetUser(ctx context.Context, userUID string) (*models.User, error)
	// UpdateUser частично обновляет профиль и возвращает его новое состояние.
	UpdateUser(ctx context.Context, userUID string, upd models.AccountUpdate) (*models.User, error)
}

// SignupData содержит данные новой учётной записи.
type SignupData struct {
	Username  string
	Password  string
	Email     string
	FullName  string
	BirthDate *time.Time
	Avatar    string
}

// Service реализует бизнес-логику авторизации и аутентификации.
type Service struct {
	users    UserRepository
	jwtMaker jwt.Maker
	log      *slog.Logger
}

// New создает новый экземпляр Service.
func New(users UserRepository, jwtMaker jwt.Maker, log *slog.Logger) *Service {
	return &Service{
		users:    users,
		jwtMaker: jwtMaker,
		log:      log,
	}
}

// Signup создаёт пользователя с солёным хэшем пароля и ролью "member".
// Повторное имя пользователя отклоняется с postgres.ErrUsernameTaken.
func (s *Service) Signup(ctx context.Context, data SignupData) (*models.Profile, error) {
	const op = "auth.Signup"

	salt, err := password.NewSalt()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	hash, err := password.GetHash(data.Password, salt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	user := models.User{
		Username:     data.Username,
		Email:        data.Email,
		PasswordHash: hash,
		Salt:         salt,
		FullName:     data.FullName,
		BirthDate:    data.BirthDate,
		Avatar:       data.Avatar,
		Role:         "member",
	}
	uid, err := s.users.CreateUser(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("registered new user", slog.String("uid", uid))

	created, err := s.users.GetUser(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return created.ToProfile(), nil
}

// Login проверяет пароль и выдаёт подписанный токен с uid, именем и ролью.
// Неизвестное имя и неверный пароль неразличимы для вызывающего.
func (s *Service) Login(ctx context.Context, username, rawPassword string) (string, *models.Profile, error) {
	const op = "auth.Login"

	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, postgres.ErrUserNotFound) {
			return "", nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword, user.Salt); err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	token, err := s.jwtMaker.GenerateToken(user.UID, user.Username, user.Role)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}
	return token, user.ToProfile(), nil
}

// Me возвращает профиль аутентифицированного пользователя.
func (s *Service) Me(ctx context.Context, userUID string) (*models.Profile, error) {
	const op = "auth.Me"

	user, err := s.users.GetUser(ctx, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user.ToProfile(), nil
}

// UpdateAccount частично обновляет профиль: nil-поле остаётся без изменений.
func (s *Service) UpdateAccount(ctx context.Context, userUID string, upd models.AccountUpdate) (*models.Profile, error) {
	const op = "auth.UpdateAccount"

	user, err := s.users.UpdateUser(ctx, userUID, upd)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("updated account", slog.String("uid", userUID))
	return user.ToProfile(), nil
}
