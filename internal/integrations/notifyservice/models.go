package notifyservice

// ConfirmationNotification данные для уведомления о подтверждении консультации
type ConfirmationNotification struct {
	ConsultationID int64  `json:"consultation_id"`
	CustomerID     int64  `json:"customer_id"`
	ConsultantID   int64  `json:"consultant_id"`
	ScheduledDate  string `json:"scheduled_date"` // "2026-09-15"
	SlotLabel      string `json:"slot_label"`     // "8-10"
	MeetingURL     string `json:"meeting_url"`
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
