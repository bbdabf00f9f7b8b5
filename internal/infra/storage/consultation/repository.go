package consultation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/HCP-ConsultationService/internal/domain"
	"github.com/m04kA/HCP-ConsultationService/pkg/dbmetrics"
	"github.com/m04kA/HCP-ConsultationService/pkg/psqlbuilder"
)

// noOverlapConstraint имя constraint, запрещающего пересечение интервалов
// одного консультанта (см. migrations/0001_init.sql). Имя зафиксировано
// в миграции явно, чтобы структурная проверка не ломалась при её изменении.
const noOverlapConstraint = "consultations_no_overlap"

// Коды ошибок PostgreSQL класса integrity_constraint_violation
const (
	pgUniqueViolation    = "23505"
	pgExclusionViolation = "23P01"
)

var consultationColumns = []string{
	"id",
	"customer_id",
	"consultant_id",
	"scheduled_date",
	"slot_label",
	"start_at",
	"end_at",
	"status",
	"meeting_url",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с консультациями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория консультаций
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую консультацию в статусе pending.
//
// Непересечение интервалов консультанта гарантирует constraint
// consultations_no_overlap: проверка доступности перед вставкой не защищает
// от конкурентной записи, арбитром выступает БД. Нарушение именно этого
// constraint транслируется в ErrSlotTaken; любое другое integrity-нарушение
// остаётся обычной ошибкой выполнения запроса.
func (r *Repository) Create(ctx context.Context, c *domain.Consultation) (*domain.Consultation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("consultations").
		Columns(
			"customer_id",
			"consultant_id",
			"scheduled_date",
			"slot_label",
			"start_at",
			"end_at",
			"status",
		).
		Values(
			c.CustomerID,
			c.ConsultantID,
			c.ScheduledDate,
			c.SlotLabel,
			c.StartAt,
			c.EndAt,
			c.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&c.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if isNoOverlapViolation(err) {
			return nil, fmt.Errorf("%w: consultant=%d, slot=%s, date=%s",
				ErrSlotTaken, c.ConsultantID, c.SlotLabel, c.ScheduledDate.Format(domain.DateFormat))
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	c.CreatedAt = createdAt.Time
	c.UpdatedAt = updatedAt.Time

	return c, nil
}

// isNoOverlapViolation проверяет, что ошибка — нарушение именно constraint
// непересечения. Сверяем и код ошибки, и имя constraint структурно,
// без разбора текста сообщения.
func isNoOverlapViolation(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	code := string(pqErr.Code)
	if code != pgExclusionViolation && code != pgUniqueViolation {
		return false
	}
	return pqErr.Constraint == noOverlapConstraint
}

// GetByID получает консультацию по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Consultation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(consultationColumns...).
		From("consultations").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	c, err := r.scanConsultation(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrConsultationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan consultation: %v", ErrScanRow, err)
	}

	return c, nil
}

// GetByParticipantID получает все консультации, в которых аккаунт участвует
// как клиент или как консультант. Опционально фильтрует по статусу.
func (r *Repository) GetByParticipantID(ctx context.Context, accountID int64, status *domain.ConsultationStatus) ([]*domain.Consultation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(consultationColumns...).
		From("consultations").
		Where(squirrel.Or{
			squirrel.Eq{"customer_id": accountID},
			squirrel.Eq{"consultant_id": accountID},
		}).
		OrderBy("start_at DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByParticipantID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByParticipantID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanConsultations(rows)
}

// GetWithFilter получает консультации с гибкой фильтрацией
// по консультанту, клиенту, дате приёма и статусу.
//
// Если в контексте активна транзакция и задана конкретная дата,
// выборка блокирует строки (FOR UPDATE) — это путь создания брони.
func (r *Repository) GetWithFilter(ctx context.Context, filter domain.ConsultationsFilter) ([]*domain.Consultation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(consultationColumns...).
		From("consultations")

	if filter.ConsultantID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"consultant_id": *filter.ConsultantID})
	}
	if filter.CustomerID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"customer_id": *filter.CustomerID})
	}
	if filter.Date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"scheduled_date": *filter.Date})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		// Если не указан конкретный статус и не нужны неактивные - исключаем их
		inactiveStatusStrings := make([]string, len(domain.InactiveStatuses))
		for i, s := range domain.InactiveStatuses {
			inactiveStatusStrings[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": inactiveStatusStrings})
	}

	if filter.Date != nil {
		selectBuilder = selectBuilder.OrderBy("start_at ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("start_at DESC")
	}

	// Блокировка строк для пути создания брони (pre-check внутри транзакции)
	if dbmetrics.IsInTransaction(ctx) && filter.Date != nil {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanConsultations(rows)
}

// Confirm переводит консультацию в confirmed и сохраняет ссылку на встречу
func (r *Repository) Confirm(ctx context.Context, id int64, meetingURL string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("consultations").
		Set("status", domain.StatusConfirmed).
		Set("meeting_url", meetingURL).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Confirm - build update query: %v", ErrBuildQuery, err)
	}

	return r.execMutation(ctx, executor, "Confirm", query, args)
}

// Cancel переводит консультацию в canceled с указанием причины
func (r *Repository) Cancel(ctx context.Context, id int64, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("consultations").
		Set("status", domain.StatusCanceled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	return r.execMutation(ctx, executor, "Cancel", query, args)
}

// Complete переводит консультацию в completed
func (r *Repository) Complete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("consultations").
		Set("status", domain.StatusCompleted).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Complete - build update query: %v", ErrBuildQuery, err)
	}

	return r.execMutation(ctx, executor, "Complete", query, args)
}

// execMutation выполняет UPDATE и проверяет, что строка существовала
func (r *Repository) execMutation(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrConsultationNotFound
	}

	return nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanConsultation сканирует одну строку в доменную модель
func (r *Repository) scanConsultation(row rowScanner) (*domain.Consultation, error) {
	var c domain.Consultation
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&c.ID,
		&c.CustomerID,
		&c.ConsultantID,
		&c.ScheduledDate,
		&c.SlotLabel,
		&c.StartAt,
		&c.EndAt,
		&c.Status,
		&c.MeetingURL,
		&c.CancellationReason,
		&c.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	c.CreatedAt = createdAt.Time
	c.UpdatedAt = updatedAt.Time

	return &c, nil
}

// scanConsultations сканирует результаты запроса в слайс консультаций
func (r *Repository) scanConsultations(rows *sql.Rows) ([]*domain.Consultation, error) {
	consultations := make([]*domain.Consultation, 0)

	for rows.Next() {
		c, err := r.scanConsultation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanConsultations - scan row: %v", ErrScanRow, err)
		}
		consultations = append(consultations, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanConsultations - rows error: %v", ErrScanRow, err)
	}

	return consultations, nil
}
