package models

import (
	"errors"
	"time"

	"github.com/ovchr/BSM-SessionService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid request status")
)

// Request модели

// GetParentRequestsRequest запрос на получение запросов родителя
type GetParentRequestsRequest struct {
	ParentID        int64   `json:"parentId"`
	Status          *string `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeInactive bool    `json:"includeInactive,omitempty"` // Включить отклонённые, отменённые и истёкшие
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetParentRequestsRequest) ToDomainFilter() (domain.ParentRequestsFilter, error) {
	filter := domain.ParentRequestsFilter{
		ParentID:        r.ParentID,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainRequestStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// GetSitterInboxRequest запрос входящих для ситтера
type GetSitterInboxRequest struct {
	SitterID int64 `json:"sitterId"`
}

// RespondRequest ответ ситтера на запрос
type RespondRequest struct {
	SitterID int64 `json:"sitterId"`
	Accept   bool  `json:"accept"`
}

// CancelRequest запрос на отмену запроса на сессию
type CancelRequest struct {
	UserID             int64  `json:"userId"`
	CancellationReason string `json:"cancellationReason"`
}

// Response модели

// TimeSlotResponse окно одного дня слотового запроса
type TimeSlotResponse struct {
	Date      string    `json:"date"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Hours     float64   `json:"hours"`
}

// SessionRequestResponse ответ с данными запроса на сессию
type SessionRequestResponse struct {
	ID       int64   `json:"id"`
	Token    string  `json:"token"`
	ParentID int64   `json:"parentId"`
	SitterID *int64  `json:"sitterId,omitempty"`
	ChildIDs []int64 `json:"childIds"`
	Status   string  `json:"status"`

	StartTime  time.Time `json:"startTime"`
	EndTime    time.Time `json:"endTime"`
	TotalHours float64   `json:"totalHours"`

	Address       string   `json:"address"`
	City          *string  `json:"city,omitempty"`
	Latitude      *float64 `json:"latitude,omitempty"`
	Longitude     *float64 `json:"longitude,omitempty"`
	HourlyRate    float64  `json:"hourlyRate"`
	Notes         *string  `json:"notes,omitempty"`
	SearchScope   string   `json:"searchScope"`
	MaxDistanceKm *float64 `json:"maxDistanceKm,omitempty"`

	TimeSlots []TimeSlotResponse `json:"timeSlots,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SessionRequestListResponse ответ со списком запросов
type SessionRequestListResponse struct {
	Requests []SessionRequestResponse `json:"requests"`
}

// Методы конвертации

// FromDomainRequest конвертирует domain модель в DTO
func FromDomainRequest(r *domain.SessionRequest) *SessionRequestResponse {
	if r == nil {
		return nil
	}

	resp := &SessionRequestResponse{
		ID:                 r.ID,
		Token:              r.Token,
		ParentID:           r.ParentID,
		SitterID:           r.SitterID,
		ChildIDs:           r.ChildIDs,
		Status:             string(r.Status),
		StartTime:          r.StartTime,
		EndTime:            r.EndTime,
		TotalHours:         r.TotalHours,
		Address:            r.Location.Address,
		City:               r.Location.City,
		Latitude:           r.Location.Latitude,
		Longitude:          r.Location.Longitude,
		HourlyRate:         r.HourlyRate,
		Notes:              r.Notes,
		SearchScope:        string(r.SearchScope),
		MaxDistanceKm:      r.MaxDistanceKm,
		CancellationReason: r.CancellationReason,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}

	if r.CancelledAt != nil {
		cancelledAt := r.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledAt
	}

	if len(r.TimeSlots) > 0 {
		resp.TimeSlots = make([]TimeSlotResponse, 0, len(r.TimeSlots))
		for _, slot := range r.TimeSlots {
			resp.TimeSlots = append(resp.TimeSlots, TimeSlotResponse{
				Date:      slot.Date,
				StartTime: slot.StartTime,
				EndTime:   slot.EndTime,
				Hours:     slot.Hours,
			})
		}
	}

	return resp
}

// FromDomainRequestList конвертирует список domain моделей в DTO
func FromDomainRequestList(requests []*domain.SessionRequest) *SessionRequestListResponse {
	list := make([]SessionRequestResponse, 0, len(requests))
	for _, r := range requests {
		list = append(list, *FromDomainRequest(r))
	}
	return &SessionRequestListResponse{Requests: list}
}

// ToDomainRequestStatus конвертирует строку в domain статус
func ToDomainRequestStatus(status string) (domain.RequestStatus, error) {
	switch domain.RequestStatus(status) {
	case domain.StatusRequested,
		domain.StatusAccepted,
		domain.StatusDeclined,
		domain.StatusCancelledByParent,
		domain.StatusCancelledBySitter,
		domain.StatusCompleted,
		domain.StatusExpired:
		return domain.RequestStatus(status), nil
	default:
		return "", ErrInvalidStatus
	}
}
