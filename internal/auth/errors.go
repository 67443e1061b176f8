package auth

import "errors"

var (
	// ErrInvalidCredentials неверный логин или пароль
	ErrInvalidCredentials = errors.New("auth: invalid credentials")

	// ErrInvalidToken токен не прошел проверку
	ErrInvalidToken = errors.New("auth: invalid token")

	// ErrForbidden у токена нет нужной роли
	ErrForbidden = errors.New("auth: forbidden")
)
