package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConsultation_StatusTransitions(t *testing.T) {
	tests := []struct {
		status       ConsultationStatus
		canConfirm   bool
		canCancel    bool
		canComplete  bool
		isTerminal   bool
		occupiesSlot bool
	}{
		{status: StatusPending, canConfirm: true, canCancel: true, canComplete: false, isTerminal: false, occupiesSlot: true},
		{status: StatusConfirmed, canConfirm: false, canCancel: true, canComplete: true, isTerminal: false, occupiesSlot: true},
		{status: StatusCanceled, canConfirm: false, canCancel: false, canComplete: false, isTerminal: true, occupiesSlot: false},
		{status: StatusCompleted, canConfirm: false, canCancel: false, canComplete: false, isTerminal: true, occupiesSlot: true},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			c := &Consultation{Status: tt.status}

			assert.Equal(t, tt.canConfirm, c.CanBeConfirmed())
			assert.Equal(t, tt.canCancel, c.CanBeCancelled())
			assert.Equal(t, tt.canComplete, c.CanBeCompleted())
			assert.Equal(t, tt.isTerminal, c.IsTerminal())
			assert.Equal(t, tt.occupiesSlot, c.IsActive())
		})
	}
}

func TestConsultation_Overlaps(t *testing.T) {
	day := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	at := func(h int) time.Time { return day.Add(time.Duration(h) * time.Hour) }

	c := &Consultation{StartAt: at(10), EndAt: at(12)}

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  bool
	}{
		{name: "identical interval", start: at(10), end: at(12), want: true},
		{name: "contained interval", start: at(10), end: at(11), want: true},
		{name: "overlapping from left", start: at(9), end: at(11), want: true},
		{name: "overlapping from right", start: at(11), end: at(13), want: true},
		{name: "covering interval", start: at(9), end: at(13), want: true},
		{name: "adjacent before", start: at(8), end: at(10), want: false},
		{name: "adjacent after", start: at(12), end: at(14), want: false},
		{name: "disjoint before", start: at(6), end: at(8), want: false},
		{name: "disjoint after", start: at(14), end: at(16), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Overlaps(tt.start, tt.end))
		})
	}
}

func TestConsultation_IsParticipant(t *testing.T) {
	c := &Consultation{CustomerID: 10, ConsultantID: 20}

	assert.True(t, c.IsParticipant(10))
	assert.True(t, c.IsParticipant(20))
	assert.False(t, c.IsParticipant(30))
	assert.False(t, c.IsParticipant(0))
}
