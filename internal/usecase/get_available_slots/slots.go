package get_available_slots

import (
	"github.com/m04kA/HCP-ConsultationService/internal/domain"
)

// projectAvailability размечает окна каталога по занятости.
// Окно занято, если существует активная (неотменённая) консультация,
// интервал которой пересекается с окном.
//
// Пересечение полуоткрытых интервалов — строгие неравенства,
// граничащие интервалы пересечением не считаются:
// - Окно 10:00-12:00, консультация 08:00-10:00 → НЕТ пересечения (граничат)
// - Окно 10:00-12:00, консультация 09:00-10:30 → ЕСТЬ пересечение
func projectAvailability(windows []domain.ResolvedSlot, consultations []*domain.Consultation) []Slot {
	slots := make([]Slot, len(windows))

	for i, w := range windows {
		occupied := false
		for _, c := range consultations {
			if !c.IsActive() {
				continue
			}
			if c.Overlaps(w.StartAt, w.EndAt) {
				occupied = true
				break
			}
		}

		slots[i] = Slot{
			Label:     w.Label,
			StartAt:   w.StartAt,
			EndAt:     w.EndAt,
			Available: !occupied,
		}
	}

	return slots
}
