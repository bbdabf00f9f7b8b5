package create_consultation

import (
	"time"
)

// Request модель запроса на создание консультации
type Request struct {
	CustomerID   int64     // ID клиента (вызывающая сторона)
	ConsultantID int64     // ID консультанта
	Date         time.Time // Дата приёма (без времени)
	SlotLabel    string    // Метка слота каталога, например "8-10"
}

// Response модель ответа с созданной консультацией
type Response struct {
	ID           int64     // ID созданной консультации
	CustomerID   int64     // ID клиента
	ConsultantID int64     // ID консультанта
	Date         time.Time // Дата приёма
	SlotLabel    string    // Метка слота
	StartAt      time.Time // Начало интервала
	EndAt        time.Time // Конец интервала
	Status       string    // Статус (всегда pending при создании)

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
