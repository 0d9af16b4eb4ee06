package sessionrequest

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/ovchr/BSM-SessionService/internal/domain"
	"github.com/ovchr/BSM-SessionService/pkg/dbmetrics"
	"github.com/ovchr/BSM-SessionService/pkg/psqlbuilder"
)

// requestColumns полный набор колонок таблицы session_requests
var requestColumns = []string{
	"id",
	"token",
	"parent_id",
	"sitter_id",
	"child_id",
	"child_ids",
	"status",
	"start_time",
	"end_time",
	"total_hours",
	"address",
	"city",
	"latitude",
	"longitude",
	"hourly_rate",
	"notes",
	"search_scope",
	"max_distance_km",
	"time_slots",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с запросами на сессии
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория запросов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый запрос на сессию
// Если в контексте передана активная транзакция (через context.Value), использует её.
// Используется внутри сериализуемой транзакции вместе с GetActiveByParentInWindow,
// чтобы исключить двойную отправку одного и того же запроса
func (r *Repository) Create(ctx context.Context, request *domain.SessionRequest) (*domain.SessionRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	timeSlots, err := marshalTimeSlots(request.TimeSlots)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - marshal time slots: %v", ErrMarshalSlots, err)
	}

	query, args, err := psqlbuilder.Insert("session_requests").
		Columns(
			"token",
			"parent_id",
			"sitter_id",
			"child_id",
			"child_ids",
			"status",
			"start_time",
			"end_time",
			"total_hours",
			"address",
			"city",
			"latitude",
			"longitude",
			"hourly_rate",
			"notes",
			"search_scope",
			"max_distance_km",
			"time_slots",
		).
		Values(
			request.Token,
			request.ParentID,
			request.SitterID,
			request.ChildID,
			pq.Array(request.ChildIDs),
			request.Status,
			request.StartTime,
			request.EndTime,
			request.TotalHours,
			request.Location.Address,
			request.Location.City,
			request.Location.Latitude,
			request.Location.Longitude,
			request.HourlyRate,
			request.Notes,
			request.SearchScope,
			request.MaxDistanceKm,
			timeSlots,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&request.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	request.CreatedAt = createdAt.Time
	request.UpdatedAt = updatedAt.Time

	return request, nil
}

// GetByID получает запрос на сессию по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.SessionRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(requestColumns...).
		From("session_requests").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)

	request, err := scanRequest(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrRequestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan request: %v", ErrScanRow, err)
	}

	return request, nil
}

// GetByParentWithFilter получает запросы родителя с фильтрацией
// Поддерживает фильтрацию по статусу и включению неактивных запросов
func (r *Repository) GetByParentWithFilter(ctx context.Context, filter domain.ParentRequestsFilter) ([]*domain.SessionRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(requestColumns...).
		From("session_requests").
		Where(squirrel.Eq{"parent_id": filter.ParentID}).
		OrderBy("start_time DESC, id DESC")

	// Фильтрация по статусу
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

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByParentWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByParentWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanRequests(rows)
}

// GetInbox получает кандидатов входящих запросов для ситтера:
// прямые приглашения плюс все открытые broadcast-запросы.
// Сопоставление broadcast-запросов с городом/координатами ситтера
// выполняется на сервисном слое
func (r *Repository) GetInbox(ctx context.Context, filter domain.SitterInboxFilter) ([]*domain.SessionRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(requestColumns...).
		From("session_requests").
		Where(squirrel.Eq{"status": domain.StatusRequested}).
		Where(squirrel.Or{
			squirrel.Eq{"sitter_id": filter.SitterID},
			squirrel.Eq{"sitter_id": nil},
		}).
		OrderBy("start_time ASC, id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetInbox - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetInbox - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanRequests(rows)
}

// GetActiveByParentInWindow получает активные запросы родителя, пересекающиеся
// с окном [start, end). Внутри транзакции добавляет FOR UPDATE для блокировки -
// используется usecase создания запроса для защиты от двойной отправки
func (r *Repository) GetActiveByParentInWindow(ctx context.Context, parentID int64, start, end time.Time) ([]*domain.SessionRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	activeStatusStrings := make([]string, len(domain.ActiveStatuses))
	for i, s := range domain.ActiveStatuses {
		activeStatusStrings[i] = string(s)
	}

	selectBuilder := psqlbuilder.Select(requestColumns...).
		From("session_requests").
		Where(squirrel.Eq{"parent_id": parentID}).
		Where(squirrel.Eq{"status": activeStatusStrings}).
		Where(squirrel.Lt{"start_time": end}).
		Where(squirrel.Gt{"end_time": start}).
		OrderBy("start_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByParentInWindow - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByParentInWindow - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanRequests(rows)
}

// UpdateStatus обновляет статус запроса.
// Если sitterID указан, привязывает ситтера к запросу (принятие broadcast-запроса)
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.RequestStatus, sitterID *int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("session_requests").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if sitterID != nil {
		updateBuilder = updateBuilder.Set("sitter_id", *sitterID)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrRequestNotFound
	}

	return nil
}

// Cancel отменяет запрос с указанием причины
func (r *Repository) Cancel(ctx context.Context, id int64, status domain.RequestStatus, reason string) error {
	if status != domain.StatusCancelledByParent && status != domain.StatusCancelledBySitter {
		return ErrInvalidStatus
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("session_requests").
		Set("status", status).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrRequestNotFound
	}

	return nil
}

// scanRequest сканирует одну строку в доменную модель
func scanRequest(scan func(dest ...interface{}) error) (*domain.SessionRequest, error) {
	var (
		request   domain.SessionRequest
		childIDs  pq.Int64Array
		timeSlots []byte
		createdAt sql.NullTime
		updatedAt sql.NullTime
	)

	err := scan(
		&request.ID,
		&request.Token,
		&request.ParentID,
		&request.SitterID,
		&request.ChildID,
		&childIDs,
		&request.Status,
		&request.StartTime,
		&request.EndTime,
		&request.TotalHours,
		&request.Location.Address,
		&request.Location.City,
		&request.Location.Latitude,
		&request.Location.Longitude,
		&request.HourlyRate,
		&request.Notes,
		&request.SearchScope,
		&request.MaxDistanceKm,
		&timeSlots,
		&request.CancellationReason,
		&request.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	request.ChildIDs = []int64(childIDs)
	request.CreatedAt = createdAt.Time
	request.UpdatedAt = updatedAt.Time

	if len(timeSlots) > 0 {
		if err := json.Unmarshal(timeSlots, &request.TimeSlots); err != nil {
			return nil, err
		}
	}

	return &request, nil
}

// scanRequests сканирует все строки результата
func scanRequests(rows *sql.Rows) ([]*domain.SessionRequest, error) {
	requests := make([]*domain.SessionRequest, 0)

	for rows.Next() {
		request, err := scanRequest(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%w: scan request: %v", ErrScanRow, err)
		}
		requests = append(requests, request)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: rows iteration: %v", ErrScanRow, err)
	}

	return requests, nil
}

// marshalTimeSlots сериализует слоты в JSONB, nil для непрерывных запросов
func marshalTimeSlots(slots []domain.RequestTimeSlot) (interface{}, error) {
	if len(slots) == 0 {
		return nil, nil
	}
	return json.Marshal(slots)
}
