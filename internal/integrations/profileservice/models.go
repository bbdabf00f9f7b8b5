package profileservice

// Profile публичный профиль консультанта
type Profile struct {
	ConsultantID    int64  `json:"consultant_id"`
	Qualifications  string `json:"qualifications"`
	ExperienceYears int    `json:"experience_years"`
	Bio             string `json:"bio"`
}

// ErrorResponse модель ошибки от ProfileService
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
