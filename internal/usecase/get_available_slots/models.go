package get_available_slots

import (
	"time"
)

// Request модель запроса на получение доступности слотов консультанта
type Request struct {
	ConsultantID int64     // ID консультанта
	Date         time.Time // Дата, на которую запрашиваются слоты (без времени)
}

// Response модель ответа с доступностью каждого слота каталога
type Response struct {
	ConsultantID int64     // ID консультанта
	Date         time.Time // Дата, на которую запрашивались слоты
	Slots        []Slot    // Слоты в порядке каталога
}

// Slot доступность одного окна каталога
type Slot struct {
	Label     string    // Метка слота каталога, например "8-10"
	StartAt   time.Time // Начало окна
	EndAt     time.Time // Конец окна (полуоткрытый интервал)
	Available bool      // true, если окно не занято активной консультацией
}
