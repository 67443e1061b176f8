package auth

import (
	"crypto/subtle"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword возвращает bcrypt хэш пароля
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("empty password")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// ComparePassword сверяет пароль с bcrypt хэшем
func ComparePassword(hash, password string) error {
	if hash == "" || password == "" {
		return errors.New("missing hash or password")
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// AdminAuthenticator проверяет учетные данные единственного администратора
type AdminAuthenticator struct {
	username     string
	passwordHash string
	tokens       *Manager
}

// NewAdminAuthenticator создает AdminAuthenticator
func NewAdminAuthenticator(username, passwordHash string, tokens *Manager) *AdminAuthenticator {
	return &AdminAuthenticator{
		username:     username,
		passwordHash: passwordHash,
		tokens:       tokens,
	}
}

// Login возвращает токен администратора
func (a *AdminAuthenticator) Login(username, password string) (string, time.Time, error) {
	if subtle.ConstantTimeCompare([]byte(username), []byte(a.username)) != 1 {
		return "", time.Time{}, ErrInvalidCredentials
	}
	if err := ComparePassword(a.passwordHash, password); err != nil {
		return "", time.Time{}, ErrInvalidCredentials
	}
	return a.tokens.NewToken(username, RoleAdmin)
}
