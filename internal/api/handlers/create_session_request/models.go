package create_session_request

import (
	"fmt"
	"time"

	"github.com/ovchr/BSM-SessionService/internal/domain"
	createRequest "github.com/ovchr/BSM-SessionService/internal/usecase/create_session_request"
)

// SlotRequest окно одного дня слотового запроса
type SlotRequest struct {
	Date      string `json:"date"`      // "2025-10-15"
	StartTime string `json:"startTime"` // "10:00"
	EndTime   string `json:"endTime"`   // "14:00"
}

// CreateSessionRequestRequest HTTP request model
type CreateSessionRequestRequest struct {
	SitterID      *int64   `json:"sitterId,omitempty"`
	ChildIDs      []int64  `json:"childIds"`
	SearchScope   string   `json:"searchScope"` // invite | nearby | city | nationwide
	Address       string   `json:"address"`
	Notes         *string  `json:"notes,omitempty"`
	MaxDistanceKm *float64 `json:"maxDistanceKm,omitempty"`

	Mode      string        `json:"mode"`      // continuous | slotted
	StartDate string        `json:"startDate"` // "2025-10-15"
	StartTime string        `json:"startTime"` // "10:00"
	EndDate   string        `json:"endDate"`
	EndTime   string        `json:"endTime"`
	Slots     []SlotRequest `json:"slots,omitempty"`
}

// SessionRequestResponse HTTP response model
type SessionRequestResponse struct {
	ID       int64   `json:"id"`
	Token    string  `json:"token"`
	ParentID int64   `json:"parentId"`
	SitterID *int64  `json:"sitterId,omitempty"`
	ChildIDs []int64 `json:"childIds"`
	Status   string  `json:"status"`

	StartTime  string  `json:"startTime"` // ISO 8601
	EndTime    string  `json:"endTime"`
	TotalHours float64 `json:"totalHours"`

	Address       string   `json:"address"`
	City          *string  `json:"city,omitempty"`
	Latitude      *float64 `json:"latitude,omitempty"`
	Longitude     *float64 `json:"longitude,omitempty"`
	HourlyRate    float64  `json:"hourlyRate"`
	Notes         *string  `json:"notes,omitempty"`
	SearchScope   string   `json:"searchScope"`
	MaxDistanceKm *float64 `json:"maxDistanceKm,omitempty"`

	TimeSlots []SlotResponse `json:"timeSlots,omitempty"`

	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// SlotResponse окно одного дня в ответе
type SlotResponse struct {
	Date      string  `json:"date"`
	StartTime string  `json:"startTime"`
	EndTime   string  `json:"endTime"`
	Hours     float64 `json:"hours"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
// (с парсингом дат, времени и слотов)
func (r *CreateSessionRequestRequest) ToUseCaseRequest(parentID int64, idempotencyKey string) (*createRequest.Request, error) {
	timeRange, err := parseTimeRange(r.StartDate, r.StartTime, r.EndDate, r.EndTime)
	if err != nil {
		return nil, err
	}

	slots := make([]createRequest.SlotInput, 0, len(r.Slots))
	for _, slot := range r.Slots {
		parsed, err := parseSlot(slot)
		if err != nil {
			return nil, err
		}
		slots = append(slots, parsed)
	}

	return &createRequest.Request{
		ParentID:       parentID,
		IdempotencyKey: idempotencyKey,
		SitterID:       r.SitterID,
		ChildIDs:       r.ChildIDs,
		Scope:          domain.SearchScope(r.SearchScope),
		Address:        r.Address,
		Notes:          r.Notes,
		MaxDistanceKm:  r.MaxDistanceKm,
		Mode:           domain.ScheduleMode(r.Mode),
		Range:          timeRange,
		Slots:          slots,
	}, nil
}

// parseTimeRange парсит границы периода из полей формы
func parseTimeRange(startDate, startTime, endDate, endTime string) (domain.TimeRange, error) {
	parse := func(value, layout, field string) (time.Time, error) {
		parsed, err := time.Parse(layout, value)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid %s %q: %w", field, value, err)
		}
		return parsed, nil
	}

	var (
		timeRange domain.TimeRange
		err       error
	)

	if timeRange.StartDate, err = parse(startDate, domain.DateFormat, "startDate"); err != nil {
		return timeRange, err
	}
	if timeRange.StartTime, err = parse(startTime, domain.TimeFormat, "startTime"); err != nil {
		return timeRange, err
	}
	if timeRange.EndDate, err = parse(endDate, domain.DateFormat, "endDate"); err != nil {
		return timeRange, err
	}
	if timeRange.EndTime, err = parse(endTime, domain.TimeFormat, "endTime"); err != nil {
		return timeRange, err
	}

	return timeRange, nil
}

// parseSlot парсит окно одного дня, собирая абсолютные моменты
// из даты дня и времени краёв. Ключ дня приводится к формату раскладки
func parseSlot(slot SlotRequest) (createRequest.SlotInput, error) {
	day, err := time.Parse(domain.DateFormat, slot.Date)
	if err != nil {
		return createRequest.SlotInput{}, fmt.Errorf("invalid slot date %q: %w", slot.Date, err)
	}

	start, err := time.Parse(domain.TimeFormat, slot.StartTime)
	if err != nil {
		return createRequest.SlotInput{}, fmt.Errorf("invalid slot startTime %q: %w", slot.StartTime, err)
	}

	end, err := time.Parse(domain.TimeFormat, slot.EndTime)
	if err != nil {
		return createRequest.SlotInput{}, fmt.Errorf("invalid slot endTime %q: %w", slot.EndTime, err)
	}

	at := func(clock time.Time) time.Time {
		return time.Date(day.Year(), day.Month(), day.Day(), clock.Hour(), clock.Minute(), 0, 0, day.Location())
	}

	return createRequest.SlotInput{
		Date:      day.Format(domain.DayKeyFormat),
		StartTime: at(start),
		EndTime:   at(end),
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createRequest.Response) *SessionRequestResponse {
	result := &SessionRequestResponse{
		ID:            resp.ID,
		Token:         resp.Token,
		ParentID:      resp.ParentID,
		SitterID:      resp.SitterID,
		ChildIDs:      resp.ChildIDs,
		Status:        resp.Status,
		StartTime:     resp.StartTime.Format(time.RFC3339),
		EndTime:       resp.EndTime.Format(time.RFC3339),
		TotalHours:    resp.TotalHours,
		Address:       resp.Address,
		City:          resp.City,
		Latitude:      resp.Latitude,
		Longitude:     resp.Longitude,
		HourlyRate:    resp.HourlyRate,
		Notes:         resp.Notes,
		SearchScope:   resp.SearchScope,
		MaxDistanceKm: resp.MaxDistanceKm,
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     resp.UpdatedAt.Format(time.RFC3339),
	}

	for _, slot := range resp.TimeSlots {
		result.TimeSlots = append(result.TimeSlots, SlotResponse{
			Date:      slot.Date,
			StartTime: slot.StartTime.Format(time.RFC3339),
			EndTime:   slot.EndTime.Format(time.RFC3339),
			Hours:     slot.Hours,
		})
	}

	return result
}
