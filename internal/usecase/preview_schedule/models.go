package preview_schedule

import (
	"time"

	"github.com/ovchr/BSM-SessionService/internal/domain"
)

// SlotInput пользовательская настройка окна одного дня
type SlotInput struct {
	Date      string
	StartTime time.Time
	EndTime   time.Time
}

// Request модель запроса на предпросмотр расписания
type Request struct {
	ParentID int64               // Только для логирования
	Mode     domain.ScheduleMode // Режим расписания
	Range    domain.TimeRange    // Границы периода
	Slots    []SlotInput         // Правки слотов (только для mode=slotted)
}

// DayPreview раскладка одного дня с учётом настроенного слота
type DayPreview struct {
	Date  string
	Hours float64

	// Окно дня для слотового режима; nil для непрерывного
	StartTime *time.Time
	EndTime   *time.Time
}

// Response модель ответа с построчной раскладкой и итогом.
// Итог всегда равен сумме часов по дням
type Response struct {
	Mode       string
	Days       []DayPreview
	TotalHours float64
}
