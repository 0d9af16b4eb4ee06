package preview_schedule

import (
	"context"

	"github.com/ovchr/BSM-SessionService/internal/domain"
)

// UseCase use case предпросмотра расписания: родитель правит форму,
// сервис пересчитывает раскладку по дням и итоговые часы без отправки
type UseCase struct {
	logger Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(logger Logger) *UseCase {
	return &UseCase{logger: logger}
}

// Execute выполняет use case предпросмотра расписания.
// Некорректный период - нормальное промежуточное состояние формы,
// поэтому он даёт пустую раскладку, а не ошибку
func (uc *UseCase) Execute(_ context.Context, req *Request) (*Response, error) {
	uc.logger.Info("PreviewSchedule: parent=%d, mode=%s", req.ParentID, req.Mode)

	if !req.Mode.IsValid() {
		uc.logger.Warn("PreviewSchedule: invalid mode %q", req.Mode)
		return nil, ErrInvalidMode
	}

	breakdown := req.Range.Breakdown(req.Mode)

	if req.Mode == domain.ModeContinuous {
		days := make([]DayPreview, 0, len(breakdown))
		total := 0.0
		for _, entry := range breakdown {
			days = append(days, DayPreview{Date: entry.Date, Hours: entry.Hours})
			total += entry.Hours
		}
		return &Response{Mode: string(req.Mode), Days: days, TotalHours: total}, nil
	}

	// Слотовый режим: каждый день получает дефолтное окно,
	// поверх которого применяются правки пользователя
	table := domain.NewSlotTable()
	table.EnsureDays(breakdown)
	for _, slot := range req.Slots {
		if !slot.StartTime.IsZero() {
			table.SetSlotTime(slot.Date, domain.SlotEdgeStart, slot.StartTime)
		}
		if !slot.EndTime.IsZero() {
			table.SetSlotTime(slot.Date, domain.SlotEdgeEnd, slot.EndTime)
		}
	}

	days := make([]DayPreview, 0, table.Len())
	for _, date := range table.Days() {
		slot, _ := table.Slot(date)
		start, end := slot.StartTime, slot.EndTime
		days = append(days, DayPreview{
			Date:      date,
			Hours:     slot.Hours,
			StartTime: &start,
			EndTime:   &end,
		})
	}

	return &Response{
		Mode:       string(req.Mode),
		Days:       days,
		TotalHours: table.TotalHours(),
	}, nil
}
