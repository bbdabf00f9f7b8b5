package consultations

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/HCP-ConsultationService/internal/domain"
	consultationRepo "github.com/m04kA/HCP-ConsultationService/internal/infra/storage/consultation"
	"github.com/m04kA/HCP-ConsultationService/internal/integrations/accountservice"
	"github.com/m04kA/HCP-ConsultationService/internal/integrations/notifyservice"
	"github.com/m04kA/HCP-ConsultationService/internal/integrations/profileservice"
	"github.com/m04kA/HCP-ConsultationService/internal/service/consultations/models"
	"github.com/m04kA/HCP-ConsultationService/pkg/ptr"
)

type fakeConsultationRepo struct {
	byID map[int64]*domain.Consultation

	confirmedID  int64
	confirmedURL string
	cancelledID  int64
	cancelReason string
	completedID  int64

	lastFilter          *domain.ConsultationsFilter
	lastParticipantID   int64
	lastParticipantStat *domain.ConsultationStatus
}

func newFakeRepo(consultations ...*domain.Consultation) *fakeConsultationRepo {
	byID := make(map[int64]*domain.Consultation, len(consultations))
	for _, c := range consultations {
		byID[c.ID] = c
	}
	return &fakeConsultationRepo{byID: byID}
}

func (r *fakeConsultationRepo) GetByID(_ context.Context, id int64) (*domain.Consultation, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, consultationRepo.ErrConsultationNotFound
	}
	cc := *c
	return &cc, nil
}

func (r *fakeConsultationRepo) GetByParticipantID(_ context.Context, accountID int64, status *domain.ConsultationStatus) ([]*domain.Consultation, error) {
	r.lastParticipantID = accountID
	r.lastParticipantStat = status

	var result []*domain.Consultation
	for _, c := range r.byID {
		if !c.IsParticipant(accountID) {
			continue
		}
		if status != nil && c.Status != *status {
			continue
		}
		result = append(result, c)
	}
	return result, nil
}

func (r *fakeConsultationRepo) GetWithFilter(_ context.Context, filter domain.ConsultationsFilter) ([]*domain.Consultation, error) {
	r.lastFilter = &filter

	var result []*domain.Consultation
	for _, c := range r.byID {
		if filter.ConsultantID != nil && c.ConsultantID != *filter.ConsultantID {
			continue
		}
		if filter.Status != nil && c.Status != *filter.Status {
			continue
		}
		if !filter.IncludeInactive && filter.Status == nil && !c.IsActive() {
			continue
		}
		result = append(result, c)
	}
	return result, nil
}

func (r *fakeConsultationRepo) Confirm(_ context.Context, id int64, meetingURL string) error {
	if _, ok := r.byID[id]; !ok {
		return consultationRepo.ErrConsultationNotFound
	}
	r.confirmedID = id
	r.confirmedURL = meetingURL
	r.byID[id].Status = domain.StatusConfirmed
	r.byID[id].MeetingURL = &meetingURL
	return nil
}

func (r *fakeConsultationRepo) Cancel(_ context.Context, id int64, reason string) error {
	if _, ok := r.byID[id]; !ok {
		return consultationRepo.ErrConsultationNotFound
	}
	r.cancelledID = id
	r.cancelReason = reason
	r.byID[id].Status = domain.StatusCanceled
	return nil
}

func (r *fakeConsultationRepo) Complete(_ context.Context, id int64) error {
	if _, ok := r.byID[id]; !ok {
		return consultationRepo.ErrConsultationNotFound
	}
	r.completedID = id
	r.byID[id].Status = domain.StatusCompleted
	return nil
}

type fakeAccountClient struct {
	accounts map[int64]*accountservice.Account
}

func (f *fakeAccountClient) GetAccount(_ context.Context, accountID int64) (*accountservice.Account, error) {
	account, ok := f.accounts[accountID]
	if !ok {
		return nil, accountservice.ErrAccountNotFound
	}
	return account, nil
}

type fakeProfileClient struct {
	profiles map[int64]*profileservice.Profile
}

func (f *fakeProfileClient) GetConsultantProfileWithGracefulDegradation(_ context.Context, consultantID int64) *profileservice.Profile {
	return f.profiles[consultantID]
}

type fakeNotifyClient struct {
	sent []*notifyservice.ConfirmationNotification
	err  error
}

func (f *fakeNotifyClient) SendConfirmation(_ context.Context, n *notifyservice.ConfirmationNotification) error {
	f.sent = append(f.sent, n)
	return f.err
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time { return p.now }

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

const (
	customerID   = int64(10)
	consultantID = int64(20)
	staffID      = int64(30)
	strangerID   = int64(40)
)

var testNow = time.Date(2026, 9, 15, 18, 0, 0, 0, time.UTC)

func testAccounts() map[int64]*accountservice.Account {
	return map[int64]*accountservice.Account{
		customerID:   {ID: customerID, Role: "customer", IsActive: true, DisplayName: "Анна"},
		consultantID: {ID: consultantID, Role: "consultant", IsActive: true, DisplayName: "Д-р Петров"},
		staffID:      {ID: staffID, Role: "staff", IsActive: true, DisplayName: "Оператор"},
		strangerID:   {ID: strangerID, Role: "customer", IsActive: true, DisplayName: "Пётр"},
	}
}

func testConsultation(id int64, status domain.ConsultationStatus) *domain.Consultation {
	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	return &domain.Consultation{
		ID:            id,
		CustomerID:    customerID,
		ConsultantID:  consultantID,
		ScheduledDate: date,
		SlotLabel:     "8-10",
		StartAt:       date.Add(8 * time.Hour),
		EndAt:         date.Add(10 * time.Hour),
		Status:        status,
	}
}

type testEnv struct {
	repo     *fakeConsultationRepo
	accounts *fakeAccountClient
	profiles *fakeProfileClient
	notify   *fakeNotifyClient
	svc      *Service
}

func newTestEnv(consultations ...*domain.Consultation) *testEnv {
	env := &testEnv{
		repo:     newFakeRepo(consultations...),
		accounts: &fakeAccountClient{accounts: testAccounts()},
		profiles: &fakeProfileClient{profiles: map[int64]*profileservice.Profile{}},
		notify:   &fakeNotifyClient{},
	}
	env.svc = NewService(env.repo, env.accounts, env.profiles, env.notify, noopLogger{})
	env.svc.timeProvider = &fixedTimeProvider{now: testNow}
	return env
}

// Confirm

func TestService_Confirm_Success(t *testing.T) {
	env := newTestEnv(testConsultation(1, domain.StatusPending))

	resp, err := env.svc.Confirm(context.Background(), 1, consultantID)
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	require.NotNil(t, resp.MeetingURL)
	assert.True(t, strings.HasPrefix(*resp.MeetingURL, meetingURLBase))

	assert.Equal(t, int64(1), env.repo.confirmedID)
	assert.Equal(t, *resp.MeetingURL, env.repo.confirmedURL)

	// Уведомление отправлено с данными консультации
	require.Len(t, env.notify.sent, 1)
	n := env.notify.sent[0]
	assert.Equal(t, int64(1), n.ConsultationID)
	assert.Equal(t, customerID, n.CustomerID)
	assert.Equal(t, consultantID, n.ConsultantID)
	assert.Equal(t, "2026-09-15", n.ScheduledDate)
	assert.Equal(t, "8-10", n.SlotLabel)
	assert.Equal(t, *resp.MeetingURL, n.MeetingURL)
}

func TestService_Confirm_NotifyFailureDoesNotFail(t *testing.T) {
	env := newTestEnv(testConsultation(1, domain.StatusPending))
	env.notify.err = assert.AnError

	resp, err := env.svc.Confirm(context.Background(), 1, consultantID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
}

func TestService_Confirm_NotFound(t *testing.T) {
	env := newTestEnv()

	_, err := env.svc.Confirm(context.Background(), 99, consultantID)
	assert.ErrorIs(t, err, ErrConsultationNotFound)
}

func TestService_Confirm_WrongParty(t *testing.T) {
	for _, caller := range []int64{customerID, staffID, strangerID} {
		env := newTestEnv(testConsultation(1, domain.StatusPending))

		_, err := env.svc.Confirm(context.Background(), 1, caller)
		assert.ErrorIs(t, err, ErrNotAuthorizedToConfirm, "caller %d must not confirm", caller)
		assert.Zero(t, env.repo.confirmedID)
		assert.Empty(t, env.notify.sent)
	}
}

func TestService_Confirm_InvalidTransition(t *testing.T) {
	for _, status := range []domain.ConsultationStatus{
		domain.StatusConfirmed, domain.StatusCanceled, domain.StatusCompleted,
	} {
		env := newTestEnv(testConsultation(1, status))

		_, err := env.svc.Confirm(context.Background(), 1, consultantID)
		assert.ErrorIs(t, err, ErrInvalidTransition, "status %s must reject confirm", status)
	}
}

// Cancel

func TestService_Cancel_ByCustomer(t *testing.T) {
	env := newTestEnv(testConsultation(1, domain.StatusPending))

	err := env.svc.Cancel(context.Background(), 1, &models.CancelConsultationRequest{
		CallerID:           customerID,
		CancellationReason: "не смогу прийти",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), env.repo.cancelledID)
	assert.Equal(t, "не смогу прийти", env.repo.cancelReason)
}

func TestService_Cancel_ByConsultantFromConfirmed(t *testing.T) {
	env := newTestEnv(testConsultation(1, domain.StatusConfirmed))

	err := env.svc.Cancel(context.Background(), 1, &models.CancelConsultationRequest{CallerID: consultantID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), env.repo.cancelledID)
}

func TestService_Cancel_ThirdPartyRejected(t *testing.T) {
	// Отмена чужой консультации запрещена даже staff
	for _, caller := range []int64{staffID, strangerID} {
		env := newTestEnv(testConsultation(1, domain.StatusPending))

		err := env.svc.Cancel(context.Background(), 1, &models.CancelConsultationRequest{CallerID: caller})
		assert.ErrorIs(t, err, ErrNotAuthorizedToCancel, "caller %d must not cancel", caller)
		assert.Zero(t, env.repo.cancelledID)
	}
}

func TestService_Cancel_InvalidTransition(t *testing.T) {
	for _, status := range []domain.ConsultationStatus{domain.StatusCanceled, domain.StatusCompleted} {
		env := newTestEnv(testConsultation(1, status))

		err := env.svc.Cancel(context.Background(), 1, &models.CancelConsultationRequest{CallerID: customerID})
		assert.ErrorIs(t, err, ErrInvalidTransition, "status %s must reject cancel", status)
	}
}

func TestService_Cancel_ReasonTooLong(t *testing.T) {
	env := newTestEnv(testConsultation(1, domain.StatusPending))

	err := env.svc.Cancel(context.Background(), 1, &models.CancelConsultationRequest{
		CallerID:           customerID,
		CancellationReason: strings.Repeat("x", domain.MaxCancellationReasonLength+1),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Zero(t, env.repo.cancelledID)
}

func TestService_Cancel_NotFound(t *testing.T) {
	env := newTestEnv()

	err := env.svc.Cancel(context.Background(), 99, &models.CancelConsultationRequest{CallerID: customerID})
	assert.ErrorIs(t, err, ErrConsultationNotFound)
}

// Complete

func TestService_Complete_Success(t *testing.T) {
	env := newTestEnv(testConsultation(1, domain.StatusConfirmed))

	// testNow (18:00) позже конца окна (10:00)
	err := env.svc.Complete(context.Background(), 1, consultantID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), env.repo.completedID)
}

func TestService_Complete_TooEarly(t *testing.T) {
	env := newTestEnv(testConsultation(1, domain.StatusConfirmed))
	env.svc.timeProvider = &fixedTimeProvider{
		now: time.Date(2026, 9, 15, 9, 30, 0, 0, time.UTC),
	}

	err := env.svc.Complete(context.Background(), 1, consultantID)
	assert.ErrorIs(t, err, ErrTooEarlyToComplete)
	assert.Zero(t, env.repo.completedID)
}

func TestService_Complete_TemporalCheckBeforeAuthorization(t *testing.T) {
	env := newTestEnv(testConsultation(1, domain.StatusConfirmed))
	env.svc.timeProvider = &fixedTimeProvider{
		now: time.Date(2026, 9, 15, 9, 30, 0, 0, time.UTC),
	}

	// Чужой вызывающий до конца окна получает "рано", а не "запрещено"
	err := env.svc.Complete(context.Background(), 1, customerID)
	assert.ErrorIs(t, err, ErrTooEarlyToComplete)
}

func TestService_Complete_WrongParty(t *testing.T) {
	for _, caller := range []int64{customerID, staffID, strangerID} {
		env := newTestEnv(testConsultation(1, domain.StatusConfirmed))

		err := env.svc.Complete(context.Background(), 1, caller)
		assert.ErrorIs(t, err, ErrNotAuthorizedToComplete, "caller %d must not complete", caller)
		assert.Zero(t, env.repo.completedID)
	}
}

func TestService_Complete_InvalidTransition(t *testing.T) {
	for _, status := range []domain.ConsultationStatus{
		domain.StatusPending, domain.StatusCanceled, domain.StatusCompleted,
	} {
		env := newTestEnv(testConsultation(1, status))

		err := env.svc.Complete(context.Background(), 1, consultantID)
		assert.ErrorIs(t, err, ErrInvalidTransition, "status %s must reject complete", status)
	}
}

// GetByID

func TestService_GetByID_Participants(t *testing.T) {
	for _, caller := range []int64{customerID, consultantID} {
		env := newTestEnv(testConsultation(1, domain.StatusConfirmed))

		view, err := env.svc.GetByID(context.Background(), 1, caller)
		require.NoError(t, err, "participant %d must see the consultation", caller)
		assert.Equal(t, int64(1), view.ID)
		assert.Equal(t, "Д-р Петров", view.ConsultantName)
	}
}

func TestService_GetByID_StaffAccess(t *testing.T) {
	env := newTestEnv(testConsultation(1, domain.StatusPending))

	view, err := env.svc.GetByID(context.Background(), 1, staffID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), view.ID)
}

func TestService_GetByID_StrangerDenied(t *testing.T) {
	env := newTestEnv(testConsultation(1, domain.StatusPending))

	_, err := env.svc.GetByID(context.Background(), 1, strangerID)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestService_GetByID_UnknownCaller(t *testing.T) {
	env := newTestEnv(testConsultation(1, domain.StatusPending))

	_, err := env.svc.GetByID(context.Background(), 1, int64(999))
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestService_GetByID_WithProfile(t *testing.T) {
	env := newTestEnv(testConsultation(1, domain.StatusConfirmed))
	env.profiles.profiles[consultantID] = &profileservice.Profile{
		ConsultantID:    consultantID,
		Qualifications:  "терапевт высшей категории",
		ExperienceYears: 12,
		Bio:             "Специализируется на семейной медицине",
	}

	view, err := env.svc.GetByID(context.Background(), 1, customerID)
	require.NoError(t, err)

	require.NotNil(t, view.Qualifications)
	assert.Equal(t, "терапевт высшей категории", *view.Qualifications)
	require.NotNil(t, view.ExperienceYears)
	assert.Equal(t, 12, *view.ExperienceYears)
	require.NotNil(t, view.Bio)
}

func TestService_GetByID_ProfileMissing(t *testing.T) {
	env := newTestEnv(testConsultation(1, domain.StatusConfirmed))

	// Профиль недоступен: представление собирается без его полей
	view, err := env.svc.GetByID(context.Background(), 1, customerID)
	require.NoError(t, err)

	assert.Nil(t, view.Qualifications)
	assert.Nil(t, view.ExperienceYears)
	assert.Nil(t, view.Bio)
}

// Списки

func TestService_GetMyConsultations(t *testing.T) {
	pending := testConsultation(1, domain.StatusPending)
	confirmed := testConsultation(2, domain.StatusConfirmed)
	env := newTestEnv(pending, confirmed)

	resp, err := env.svc.GetMyConsultations(context.Background(), &models.ListRequest{CallerID: customerID})
	require.NoError(t, err)
	assert.Len(t, resp.Consultations, 2)
	assert.Equal(t, customerID, env.repo.lastParticipantID)
}

func TestService_GetMyConsultations_StatusFilter(t *testing.T) {
	env := newTestEnv(testConsultation(1, domain.StatusPending), testConsultation(2, domain.StatusConfirmed))

	status := "pending"
	resp, err := env.svc.GetMyConsultations(context.Background(), &models.ListRequest{
		CallerID: customerID,
		Status:   &status,
	})
	require.NoError(t, err)
	require.Len(t, resp.Consultations, 1)
	assert.Equal(t, "pending", resp.Consultations[0].Status)
}

func TestService_GetMyConsultations_InvalidStatus(t *testing.T) {
	env := newTestEnv()

	status := "archived"
	_, err := env.svc.GetMyConsultations(context.Background(), &models.ListRequest{
		CallerID: customerID,
		Status:   &status,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_GetMyConsultations_UnknownCaller(t *testing.T) {
	env := newTestEnv()

	_, err := env.svc.GetMyConsultations(context.Background(), &models.ListRequest{CallerID: 999})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestService_GetConsultantConsultations(t *testing.T) {
	env := newTestEnv(testConsultation(1, domain.StatusConfirmed))

	resp, err := env.svc.GetConsultantConsultations(context.Background(), &models.ListRequest{CallerID: consultantID})
	require.NoError(t, err)
	assert.Len(t, resp.Consultations, 1)

	require.NotNil(t, env.repo.lastFilter)
	assert.Equal(t, ptr.Ptr(consultantID), env.repo.lastFilter.ConsultantID)
}

func TestService_GetConsultantConsultations_NotAConsultant(t *testing.T) {
	for _, caller := range []int64{customerID, staffID} {
		env := newTestEnv()

		_, err := env.svc.GetConsultantConsultations(context.Background(), &models.ListRequest{CallerID: caller})
		assert.ErrorIs(t, err, ErrAccessDenied, "caller %d is not a consultant", caller)
	}
}

func TestService_GetByStatus_StaffOnly(t *testing.T) {
	for _, caller := range []int64{customerID, consultantID} {
		env := newTestEnv()

		_, err := env.svc.GetByStatus(context.Background(), caller, nil)
		assert.ErrorIs(t, err, ErrAccessDenied, "caller %d may not list all consultations", caller)
	}
}

func TestService_GetByStatus(t *testing.T) {
	env := newTestEnv(
		testConsultation(1, domain.StatusPending),
		testConsultation(2, domain.StatusCanceled),
	)

	status := "canceled"
	resp, err := env.svc.GetByStatus(context.Background(), staffID, &status)
	require.NoError(t, err)
	require.Len(t, resp.Consultations, 1)
	assert.Equal(t, "canceled", resp.Consultations[0].Status)
}
