// Package password реализует функции для безопасного хеширования и проверки паролей.
//
// Каждому пользователю генерируется случайная соль, которая добавляется
// к паролю перед вычислением bcrypt-хэша и хранится рядом с ним.
package password

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// NewSalt генерирует случайную 16-байтовую соль в hex-представлении.
func NewSalt() (string, error) {
	const op = "password.NewSalt"
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return hex.EncodeToString(buf), nil
}

// GetHash принимает пароль пользователя и соль, возвращает bcrypt‑хэш
// конкатенации пароля и соли. Используется для хранения в базе данных.
func GetHash(password, salt string) (string, error) {
	const op = "password.GetHash"
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password+salt), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return string(hashedPassword), nil
}

// CompareHash сравнивает bcrypt‑хэш с введённым паролем и сохранённой солью.
//
// Возвращает nil, если пароль соответствует хэшу, иначе — ошибку.
func CompareHash(originalHash, externalPassword, salt string) error {
	const op = "password.CompareHash"
	if err := bcrypt.CompareHashAndPassword([]byte(originalHash), []byte(externalPassword+salt)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
