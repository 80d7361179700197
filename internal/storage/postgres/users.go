package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/julioo07/tarea-programada-1-BD/internal/models"
)

// CreateUser сохраняет нового пользователя в базу данных и возвращает его UID.
// Повторное имя пользователя приводит к ErrUsernameTaken.
func (s *Storage) CreateUser(ctx context.Context, user models.User) (string, error) {
	const op = "postgres.CreateUser"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newUID string
	query := `INSERT INTO users (username, email, password_hash, salt, full_name,
			      birth_date, avatar, role)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  RETURNING uid;`
	if err := s.DB.QueryRowContext(ctx, query,
		user.Username, user.Email, user.PasswordHash, user.Salt, user.FullName,
		user.BirthDate, user.Avatar, user.Role).Scan(&newUID); err != nil {
		if pgErrCode(err) == pgUniqueViolation {
			return "", fmt.Errorf("%s: %w", op, ErrUsernameTaken)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newUID, nil
}

// GetUserByUsername возвращает пользователя по его username.
func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	const op = "postgres.GetUserByUsername"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, username, email, password_hash, salt, full_name,
			      birth_date, avatar, role, created_at
			  FROM users
			  WHERE username = $1`
	return s.scanUser(s.DB.QueryRowContext(ctx, query, username), op)
}

// GetUser возвращает пользователя по его UID.
func (s *Storage) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	const op = "postgres.GetUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, username, email, password_hash, salt, full_name,
			      birth_date, avatar, role, created_at
			  FROM users
			  WHERE uid = $1`
	return s.scanUser(s.DB.QueryRowContext(ctx, query, userUID), op)
}

func (s *Storage) scanUser(row *sql.Row, op string) (*models.User, error) {
	u := &models.User{}
	var birthDate sql.NullTime
	if err := row.Scan(&u.UID, &u.Username, &u.Email, &u.PasswordHash, &u.Salt,
		&u.FullName, &birthDate, &u.Avatar, &u.Role, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if birthDate.Valid {
		u.BirthDate = &birthDate.Time
	}
	return u, nil
}

// UpdateUser частично обновляет профиль пользователя: nil-поля сохраняют
// текущие значения за счёт COALESCE. Возвращает обновлённого пользователя.
func (s *Storage) UpdateUser(ctx context.Context, userUID string, upd models.AccountUpdate) (*models.User, error) {
	const op = "postgres.UpdateUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET username   = COALESCE($2, username),
			      full_name  = COALESCE($3, full_name),
			      birth_date = COALESCE($4, birth_date),
			      avatar     = COALESCE($5, avatar)
			  WHERE uid = $1
			  RETURNING uid, username, email, password_hash, salt, full_name,
			      birth_date, avatar, role, created_at`
	row := s.DB.QueryRowContext(ctx, query, userUID,
		upd.Username, upd.FullName, upd.BirthDate, upd.Avatar)

	u, err := s.scanUser(row, op)
	if err != nil {
		if pgErrCode(err) == pgUniqueViolation {
			return nil, fmt.Errorf("%s: %w", op, ErrUsernameTaken)
		}
		return nil, err
	}
	return u, nil
}

// ListUsers возвращает всех пользователей кроме meUID, чьи username или
// полное имя содержат подстроку q без учёта регистра, с пометкой,
// подписан ли meUID на каждого. Сортировка по полному имени,
// при его отсутствии — по username.
func (s *Storage) ListUsers(ctx context.Context, meUID, q string) ([]*models.UserSummary, error) {
	const op = "postgres.ListUsers"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT u.uid, u.username, u.full_name, u.avatar,
			      (f.follower_uid IS NOT NULL) AS following
			  FROM users u
			  LEFT JOIN follows f
			      ON f.followed_uid = u.uid AND f.follower_uid = $1
			  WHERE u.uid <> $1
			    AND ($2 = '' OR u.username ILIKE '%' || $2 || '%'
			                 OR u.full_name ILIKE '%' || $2 || '%')
			  ORDER BY COALESCE(NULLIF(u.full_name, ''), u.username)`
	return s.queryUserSummaries(ctx, op, query, meUID, q)
}

// ListFollowers возвращает пользователей, подписанных на meUID,
// с той же фильтрацией и сортировкой, что и ListUsers.
func (s *Storage) ListFollowers(ctx context.Context, meUID, q string) ([]*models.UserSummary, error) {
	const op = "postgres.ListFollowers"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT u.uid, u.username, u.full_name, u.avatar,
			      (back.follower_uid IS NOT NULL) AS following
			  FROM follows f
			  JOIN users u ON u.uid = f.follower_uid
			  LEFT JOIN follows back
			      ON back.followed_uid = u.uid AND back.follower_uid = $1
			  WHERE f.followed_uid = $1
			    AND ($2 = '' OR u.username ILIKE '%' || $2 || '%'
			                 OR u.full_name ILIKE '%' || $2 || '%')
			  ORDER BY COALESCE(NULLIF(u.full_name, ''), u.username)`
	return s.queryUserSummaries(ctx, op, query, meUID, q)
}

func (s *Storage) queryUserSummaries(ctx context.Context, op, query string, args ...any) ([]*models.UserSummary, error) {
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.UserSummary
	for rows.Next() {
		var u models.UserSummary
		if err = rows.Scan(&u.ID, &u.Username, &u.FullName, &u.Avatar, &u.Following); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
