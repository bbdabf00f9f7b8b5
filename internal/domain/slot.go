package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/HCP-ConsultationService/pkg/types"
)

var (
	// ErrInvalidSlotLabel возвращается, когда метка слота не входит в каталог
	ErrInvalidSlotLabel = errors.New("domain: invalid slot label")

	// ErrInvalidSlotWindow возвращается при некорректном описании окна каталога
	ErrInvalidSlotWindow = errors.New("domain: invalid slot window")
)

// SlotWindow одно окно каталога: метка и границы времени суток
type SlotWindow struct {
	Label string
	Start types.TimeString
	End   types.TimeString
}

// ResolvedSlot окно каталога, совмещённое с конкретной датой
type ResolvedSlot struct {
	Label   string
	StartAt time.Time
	EndAt   time.Time
}

// SlotCatalog фиксированный упорядоченный набор бронируемых окон дня.
// Каталог — данные, а не код: состав и границы окон задаются при создании
// (из конфига), без ветвлений по меткам.
type SlotCatalog struct {
	windows []SlotWindow
	byLabel map[string]SlotWindow
}

// NewSlotCatalog создает каталог из упорядоченного списка окон.
// Валидирует формат времени, порядок границ и уникальность меток.
func NewSlotCatalog(windows []SlotWindow) (*SlotCatalog, error) {
	if len(windows) == 0 {
		return nil, fmt.Errorf("%w: catalog must contain at least one window", ErrInvalidSlotWindow)
	}

	byLabel := make(map[string]SlotWindow, len(windows))
	for _, w := range windows {
		if w.Label == "" {
			return nil, fmt.Errorf("%w: empty label", ErrInvalidSlotWindow)
		}
		if err := w.Start.Validate(); err != nil {
			return nil, fmt.Errorf("%w: slot %q: %v", ErrInvalidSlotWindow, w.Label, err)
		}
		if err := w.End.Validate(); err != nil {
			return nil, fmt.Errorf("%w: slot %q: %v", ErrInvalidSlotWindow, w.Label, err)
		}
		if !w.Start.IsBefore(w.End) {
			return nil, fmt.Errorf("%w: slot %q: start must be before end", ErrInvalidSlotWindow, w.Label)
		}
		if _, exists := byLabel[w.Label]; exists {
			return nil, fmt.Errorf("%w: duplicate label %q", ErrInvalidSlotWindow, w.Label)
		}
		byLabel[w.Label] = w
	}

	return &SlotCatalog{
		windows: append([]SlotWindow(nil), windows...),
		byLabel: byLabel,
	}, nil
}

// DefaultSlotCatalog возвращает каталог по умолчанию:
// четыре двухчасовых окна рабочего дня
func DefaultSlotCatalog() *SlotCatalog {
	catalog, err := NewSlotCatalog([]SlotWindow{
		{Label: "8-10", Start: "08:00", End: "10:00"},
		{Label: "10-12", Start: "10:00", End: "12:00"},
		{Label: "13-15", Start: "13:00", End: "15:00"},
		{Label: "15-17", Start: "15:00", End: "17:00"},
	})
	if err != nil {
		// Дефолтный каталог статический, ошибка здесь — баг компоновки
		panic(err)
	}
	return catalog
}

// Resolve конвертирует пару (дата, метка слота) в конкретный полуоткрытый интервал
func (c *SlotCatalog) Resolve(date time.Time, label string) (ResolvedSlot, error) {
	w, ok := c.byLabel[label]
	if !ok {
		return ResolvedSlot{}, fmt.Errorf("%w: %q", ErrInvalidSlotLabel, label)
	}
	return w.resolveOn(date)
}

// WindowsFor возвращает все окна каталога, совмещённые с датой,
// в порядке определения каталога
func (c *SlotCatalog) WindowsFor(date time.Time) ([]ResolvedSlot, error) {
	resolved := make([]ResolvedSlot, 0, len(c.windows))
	for _, w := range c.windows {
		slot, err := w.resolveOn(date)
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, slot)
	}
	return resolved, nil
}

// Len возвращает количество окон в каталоге
func (c *SlotCatalog) Len() int {
	return len(c.windows)
}

func (w SlotWindow) resolveOn(date time.Time) (ResolvedSlot, error) {
	startAt, err := w.Start.OnDate(date)
	if err != nil {
		return ResolvedSlot{}, fmt.Errorf("%w: slot %q: %v", ErrInvalidSlotWindow, w.Label, err)
	}
	endAt, err := w.End.OnDate(date)
	if err != nil {
		return ResolvedSlot{}, fmt.Errorf("%w: slot %q: %v", ErrInvalidSlotWindow, w.Label, err)
	}
	return ResolvedSlot{Label: w.Label, StartAt: startAt, EndAt: endAt}, nil
}
