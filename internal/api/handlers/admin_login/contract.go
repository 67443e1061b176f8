package admin_login

import "time"

type Authenticator interface {
	Login(username, password string) (string, time.Time, error)
}

type Validator interface {
	Struct(s interface{}) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
