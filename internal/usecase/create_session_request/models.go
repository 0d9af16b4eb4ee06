package create_session_request

import (
	"time"

	"github.com/ovchr/BSM-SessionService/internal/domain"
)

// SlotInput пользовательская настройка окна одного дня слотового запроса.
// Date использует формат ключа дня из раскладки (domain.DayKeyFormat)
type SlotInput struct {
	Date      string
	StartTime time.Time
	EndTime   time.Time
}

// Request модель запроса на создание запроса на сессию
type Request struct {
	ParentID       int64   // ID родителя
	IdempotencyKey string  // Клиентский ключ идемпотентности (опционально)
	SitterID       *int64  // ID ситтера для приглашения (обязателен при scope=invite)
	ChildIDs       []int64 // Дети, которых нужно посидеть

	Scope         domain.SearchScope // Кому виден запрос
	Address       string             // Адрес в свободной форме
	Notes         *string            // Пожелания родителя (опционально)
	MaxDistanceKm *float64           // Радиус поиска (обязателен при scope=nearby)

	Mode  domain.ScheduleMode // Непрерывный период или слоты по дням
	Range domain.TimeRange    // Границы периода
	Slots []SlotInput         // Настроенные слоты (только для mode=slotted)
}

// Response модель ответа с созданным запросом на сессию
type Response struct {
	ID       int64
	Token    string
	ParentID int64
	SitterID *int64
	ChildIDs []int64
	Status   string

	StartTime  time.Time
	EndTime    time.Time
	TotalHours float64

	Address       string
	City          *string
	Latitude      *float64
	Longitude     *float64
	HourlyRate    float64
	Notes         *string
	SearchScope   string
	MaxDistanceKm *float64

	TimeSlots []domain.RequestTimeSlot

	CreatedAt time.Time
	UpdatedAt time.Time
}

// newResponse конвертирует доменную модель в response
func newResponse(r *domain.SessionRequest) *Response {
	return &Response{
		ID:            r.ID,
		Token:         r.Token,
		ParentID:      r.ParentID,
		SitterID:      r.SitterID,
		ChildIDs:      r.ChildIDs,
		Status:        string(r.Status),
		StartTime:     r.StartTime,
		EndTime:       r.EndTime,
		TotalHours:    r.TotalHours,
		Address:       r.Location.Address,
		City:          r.Location.City,
		Latitude:      r.Location.Latitude,
		Longitude:     r.Location.Longitude,
		HourlyRate:    r.HourlyRate,
		Notes:         r.Notes,
		SearchScope:   string(r.SearchScope),
		MaxDistanceKm: r.MaxDistanceKm,
		TimeSlots:     r.TimeSlots,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}
