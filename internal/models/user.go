// Package models содержит доменную модель пользователя социальной сети,
// включающую учётные данные, хэш пароля с солью и профильные поля.
// Структуры используются в бизнес‑логике и при работе с хранилищем.
package models

import "time"

// User представляет зарегистрированного пользователя системы.
type User struct {
	UID          string     // Уникальный идентификатор пользователя
	Username     string     // Имя пользователя (уникальное)
	Email        string     // Электронная почта (опционально)
	PasswordHash string     // Хэш пароля пользователя
	Salt         string     // Случайная соль, добавляемая к паролю перед хэшированием
	FullName     string     // Полное имя
	BirthDate    *time.Time // Дата рождения
	Avatar       string     // Аватар: data-URL или ссылка
	Role         string     // Роль пользователя, member или admin
	CreatedAt    time.Time  // Дата создания аккаунта
}

// UserSummary публичная проекция пользователя для списков и поиска.
// Поле Following показывает, подписан ли текущий пользователь на этого.
type UserSummary struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	FullName  string `json:"fullName"`
	Avatar    string `json:"avatar,omitempty"`
	Following bool   `json:"following"`
}

// Profile публичная проекция собственного профиля (ответ /api/auth/me).
type Profile struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email,omitempty"`
	FullName  string    `json:"fullName"`
	BirthDate string    `json:"birthDate,omitempty"`
	Avatar    string    `json:"avatar,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToProfile строит публичную проекцию профиля пользователя.
func (u *User) ToProfile() *Profile {
	p := &Profile{
		ID:        u.UID,
		Username:  u.Username,
		Email:     u.Email,
		FullName:  u.FullName,
		Avatar:    u.Avatar,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
	if u.BirthDate != nil {
		p.BirthDate = u.BirthDate.Format("2006-01-02")
	}
	return p
}

// AccountUpdate описывает частичное обновление профиля:
// nil-поле означает "оставить без изменений".
type AccountUpdate struct {
	Username  *string
	FullName  *string
	BirthDate *time.Time
	Avatar    *string
}
