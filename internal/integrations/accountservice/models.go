package accountservice

import "github.com/m04kA/HCP-ConsultationService/internal/domain"

// Account модель аккаунта из AccountService
type Account struct {
	ID          int64  `json:"id"`
	Role        string `json:"role"`
	IsActive    bool   `json:"is_active"`
	DisplayName string `json:"display_name"`
}

// ParsedRole возвращает роль аккаунта как доменное перечисление
func (a *Account) ParsedRole() (domain.Role, error) {
	return domain.ParseRole(a.Role)
}

// ErrorResponse модель ошибки от AccountService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
