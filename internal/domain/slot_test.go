package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSlotCatalog_Validation(t *testing.T) {
	tests := []struct {
		name    string
		windows []SlotWindow
		wantErr bool
	}{
		{
			name: "valid catalog",
			windows: []SlotWindow{
				{Label: "8-10", Start: "08:00", End: "10:00"},
				{Label: "10-12", Start: "10:00", End: "12:00"},
			},
		},
		{
			name:    "empty catalog",
			windows: nil,
			wantErr: true,
		},
		{
			name: "empty label",
			windows: []SlotWindow{
				{Label: "", Start: "08:00", End: "10:00"},
			},
			wantErr: true,
		},
		{
			name: "invalid start time",
			windows: []SlotWindow{
				{Label: "8-10", Start: "8am", End: "10:00"},
			},
			wantErr: true,
		},
		{
			name: "start equals end",
			windows: []SlotWindow{
				{Label: "8-8", Start: "08:00", End: "08:00"},
			},
			wantErr: true,
		},
		{
			name: "start after end",
			windows: []SlotWindow{
				{Label: "10-8", Start: "10:00", End: "08:00"},
			},
			wantErr: true,
		},
		{
			name: "duplicate labels",
			windows: []SlotWindow{
				{Label: "8-10", Start: "08:00", End: "10:00"},
				{Label: "8-10", Start: "10:00", End: "12:00"},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalog, err := NewSlotCatalog(tt.windows)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidSlotWindow)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, len(tt.windows), catalog.Len())
		})
	}
}

func TestDefaultSlotCatalog(t *testing.T) {
	catalog := DefaultSlotCatalog()
	require.NotNil(t, catalog)
	assert.Equal(t, 4, catalog.Len())

	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

	for _, label := range []string{"8-10", "10-12", "13-15", "15-17"} {
		_, err := catalog.Resolve(date, label)
		assert.NoError(t, err, "label %s must resolve", label)
	}
}

func TestSlotCatalog_Resolve(t *testing.T) {
	catalog := DefaultSlotCatalog()
	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

	slot, err := catalog.Resolve(date, "8-10")
	require.NoError(t, err)

	assert.Equal(t, "8-10", slot.Label)
	assert.Equal(t, time.Date(2026, 9, 15, 8, 0, 0, 0, time.UTC), slot.StartAt)
	assert.Equal(t, time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC), slot.EndAt)
}

func TestSlotCatalog_Resolve_UnknownLabel(t *testing.T) {
	catalog := DefaultSlotCatalog()
	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

	_, err := catalog.Resolve(date, "19-21")
	assert.ErrorIs(t, err, ErrInvalidSlotLabel)

	_, err = catalog.Resolve(date, "")
	assert.ErrorIs(t, err, ErrInvalidSlotLabel)
}

func TestSlotCatalog_WindowsFor(t *testing.T) {
	catalog := DefaultSlotCatalog()
	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

	windows, err := catalog.WindowsFor(date)
	require.NoError(t, err)
	require.Len(t, windows, 4)

	// Порядок каталога сохраняется
	labels := make([]string, 0, len(windows))
	for _, w := range windows {
		labels = append(labels, w.Label)
	}
	assert.Equal(t, []string{"8-10", "10-12", "13-15", "15-17"}, labels)

	// Все окна совмещены с запрошенной датой
	for _, w := range windows {
		assert.Equal(t, date.Day(), w.StartAt.Day())
		assert.True(t, w.StartAt.Before(w.EndAt))
	}
}
