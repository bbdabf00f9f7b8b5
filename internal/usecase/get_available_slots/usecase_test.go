package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/HCP-ConsultationService/internal/domain"
	"github.com/m04kA/HCP-ConsultationService/internal/integrations/accountservice"
)

type fakeConsultationRepo struct {
	consultations []*domain.Consultation
	lastFilter    domain.ConsultationsFilter
}

func (r *fakeConsultationRepo) GetWithFilter(_ context.Context, filter domain.ConsultationsFilter) ([]*domain.Consultation, error) {
	r.lastFilter = filter

	var result []*domain.Consultation
	for _, c := range r.consultations {
		if filter.ConsultantID != nil && c.ConsultantID != *filter.ConsultantID {
			continue
		}
		if filter.Date != nil && !c.ScheduledDate.Equal(*filter.Date) {
			continue
		}
		if !filter.IncludeInactive && !c.IsActive() {
			continue
		}
		result = append(result, c)
	}
	return result, nil
}

type fakeAccountClient struct {
	accounts map[int64]*accountservice.Account
	calls    int
}

func (f *fakeAccountClient) GetAccount(_ context.Context, accountID int64) (*accountservice.Account, error) {
	f.calls++
	account, ok := f.accounts[accountID]
	if !ok {
		return nil, accountservice.ErrAccountNotFound
	}
	return account, nil
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time { return p.now }

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

const consultantID = int64(20)

var (
	testNow  = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	testDate = time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
)

func consultantAccounts() map[int64]*accountservice.Account {
	return map[int64]*accountservice.Account{
		consultantID: {ID: consultantID, Role: "consultant", IsActive: true, DisplayName: "Д-р Петров"},
	}
}

func newTestUseCase(repo *fakeConsultationRepo, accounts *fakeAccountClient) *UseCase {
	uc := NewUseCase(repo, accounts, domain.DefaultSlotCatalog(), noopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: testNow}
	return uc
}

// consultationAt создает консультацию консультанта на testDate в заданном окне
func consultationAt(id int64, startHour, endHour int, status domain.ConsultationStatus) *domain.Consultation {
	return &domain.Consultation{
		ID:            id,
		CustomerID:    100 + id,
		ConsultantID:  consultantID,
		ScheduledDate: testDate,
		StartAt:       testDate.Add(time.Duration(startHour) * time.Hour),
		EndAt:         testDate.Add(time.Duration(endHour) * time.Hour),
		Status:        status,
	}
}

func availabilityByLabel(resp *Response) map[string]bool {
	m := make(map[string]bool, len(resp.Slots))
	for _, s := range resp.Slots {
		m[s.Label] = s.Available
	}
	return m
}

func TestUseCase_Execute_AllSlotsFree(t *testing.T) {
	uc := newTestUseCase(&fakeConsultationRepo{}, &fakeAccountClient{accounts: consultantAccounts()})

	resp, err := uc.Execute(context.Background(), &Request{ConsultantID: consultantID, Date: testDate})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 4)

	for _, s := range resp.Slots {
		assert.True(t, s.Available, "slot %s must be free", s.Label)
	}
}

func TestUseCase_Execute_OccupiedSlots(t *testing.T) {
	tests := []struct {
		name          string
		consultations []*domain.Consultation
		want          map[string]bool
	}{
		{
			name: "pending blocks its window",
			consultations: []*domain.Consultation{
				consultationAt(1, 8, 10, domain.StatusPending),
			},
			want: map[string]bool{"8-10": false, "10-12": true, "13-15": true, "15-17": true},
		},
		{
			name: "confirmed blocks its window",
			consultations: []*domain.Consultation{
				consultationAt(1, 13, 15, domain.StatusConfirmed),
			},
			want: map[string]bool{"8-10": true, "10-12": true, "13-15": false, "15-17": true},
		},
		{
			name: "completed still occupies its window",
			consultations: []*domain.Consultation{
				consultationAt(1, 10, 12, domain.StatusCompleted),
			},
			want: map[string]bool{"8-10": true, "10-12": false, "13-15": true, "15-17": true},
		},
		{
			name: "canceled frees its window",
			consultations: []*domain.Consultation{
				consultationAt(1, 8, 10, domain.StatusCanceled),
			},
			want: map[string]bool{"8-10": true, "10-12": true, "13-15": true, "15-17": true},
		},
		{
			name: "partial overlap blocks both windows",
			consultations: []*domain.Consultation{
				// Нестандартный интервал 9:00-11:00 пересекает окна 8-10 и 10-12
				consultationAt(1, 9, 11, domain.StatusConfirmed),
			},
			want: map[string]bool{"8-10": false, "10-12": false, "13-15": true, "15-17": true},
		},
		{
			name: "adjacent interval does not block the neighbour",
			consultations: []*domain.Consultation{
				// Интервал 10:00-12:00 граничит с окном 8-10, но не пересекает его
				consultationAt(1, 10, 12, domain.StatusConfirmed),
			},
			want: map[string]bool{"8-10": true, "10-12": false, "13-15": true, "15-17": true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeConsultationRepo{consultations: tt.consultations}
			uc := newTestUseCase(repo, &fakeAccountClient{accounts: consultantAccounts()})

			resp, err := uc.Execute(context.Background(), &Request{ConsultantID: consultantID, Date: testDate})
			require.NoError(t, err)

			assert.Equal(t, tt.want, availabilityByLabel(resp))
			assert.False(t, repo.lastFilter.IncludeInactive)
		})
	}
}

func TestUseCase_Execute_PastDate(t *testing.T) {
	accounts := &fakeAccountClient{accounts: consultantAccounts()}
	uc := newTestUseCase(&fakeConsultationRepo{}, accounts)

	_, err := uc.Execute(context.Background(), &Request{
		ConsultantID: consultantID,
		Date:         testNow.AddDate(0, 0, -1),
	})
	assert.ErrorIs(t, err, ErrPastDate)

	// Дата проверяется до обращения к справочнику аккаунтов
	assert.Zero(t, accounts.calls)
}

func TestUseCase_Execute_ConsultantChecks(t *testing.T) {
	tests := []struct {
		name     string
		accounts map[int64]*accountservice.Account
		wantErr  error
	}{
		{
			name:     "consultant not found",
			accounts: map[int64]*accountservice.Account{},
			wantErr:  ErrConsultantNotFound,
		},
		{
			name: "account is not a consultant",
			accounts: map[int64]*accountservice.Account{
				consultantID: {ID: consultantID, Role: "customer", IsActive: true},
			},
			wantErr: ErrNotAConsultant,
		},
		{
			name: "consultant deactivated",
			accounts: map[int64]*accountservice.Account{
				consultantID: {ID: consultantID, Role: "consultant", IsActive: false},
			},
			wantErr: ErrConsultantUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newTestUseCase(&fakeConsultationRepo{}, &fakeAccountClient{accounts: tt.accounts})

			_, err := uc.Execute(context.Background(), &Request{ConsultantID: consultantID, Date: testDate})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestUseCase_Execute_InvalidInput(t *testing.T) {
	uc := newTestUseCase(&fakeConsultationRepo{}, &fakeAccountClient{accounts: consultantAccounts()})

	_, err := uc.Execute(context.Background(), &Request{ConsultantID: 0, Date: testDate})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{ConsultantID: consultantID})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
