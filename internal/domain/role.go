package domain

import "errors"

// ErrUnknownRole возвращается при попытке распарсить неизвестную роль
var ErrUnknownRole = errors.New("domain: unknown account role")

// Role represents an account role in the platform.
// Закрытое перечисление: новые роли не проходят авторизацию молча,
// ParseRole отвергает всё, чего нет в списке.
type Role string

const (
	RoleCustomer   Role = "customer"
	RoleConsultant Role = "consultant"
	RoleStaff      Role = "staff"
	RoleAdmin      Role = "admin"
)

var validRoles = []Role{RoleCustomer, RoleConsultant, RoleStaff, RoleAdmin}

// ParseRole конвертирует строку в Role с валидацией по закрытому списку
func ParseRole(s string) (Role, error) {
	r := Role(s)
	for _, valid := range validRoles {
		if r == valid {
			return r, nil
		}
	}
	return "", ErrUnknownRole
}

// IsConsultant returns true if the role is consultant
func (r Role) IsConsultant() bool {
	return r == RoleConsultant
}

// CanListAllConsultations returns true if the role may list consultations
// across all accounts (staff and administrators)
func (r Role) CanListAllConsultations() bool {
	return r == RoleStaff || r == RoleAdmin
}
