package preview_schedule

import (
	"fmt"
	"time"

	"github.com/ovchr/BSM-SessionService/internal/domain"
	previewSchedule "github.com/ovchr/BSM-SessionService/internal/usecase/preview_schedule"
)

// SlotRequest правка окна одного дня
type SlotRequest struct {
	Date      string `json:"date"`                // "2025-10-15"
	StartTime string `json:"startTime,omitempty"` // "10:00"
	EndTime   string `json:"endTime,omitempty"`   // "14:00"
}

// PreviewScheduleRequest HTTP request model
type PreviewScheduleRequest struct {
	Mode      string        `json:"mode"` // continuous | slotted
	StartDate string        `json:"startDate"`
	StartTime string        `json:"startTime"`
	EndDate   string        `json:"endDate"`
	EndTime   string        `json:"endTime"`
	Slots     []SlotRequest `json:"slots,omitempty"`
}

// DayResponse раскладка одного дня
type DayResponse struct {
	Date      string  `json:"date"`
	Hours     float64 `json:"hours"`
	StartTime *string `json:"startTime,omitempty"` // только для слотового режима
	EndTime   *string `json:"endTime,omitempty"`
}

// PreviewScheduleResponse HTTP response model
type PreviewScheduleResponse struct {
	Mode       string        `json:"mode"`
	Days       []DayResponse `json:"days"`
	TotalHours float64       `json:"totalHours"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *PreviewScheduleRequest) ToUseCaseRequest(parentID int64) (*previewSchedule.Request, error) {
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
	if timeRange.StartDate, err = parse(r.StartDate, domain.DateFormat, "startDate"); err != nil {
		return nil, err
	}
	if timeRange.StartTime, err = parse(r.StartTime, domain.TimeFormat, "startTime"); err != nil {
		return nil, err
	}
	if timeRange.EndDate, err = parse(r.EndDate, domain.DateFormat, "endDate"); err != nil {
		return nil, err
	}
	if timeRange.EndTime, err = parse(r.EndTime, domain.TimeFormat, "endTime"); err != nil {
		return nil, err
	}

	slots := make([]previewSchedule.SlotInput, 0, len(r.Slots))
	for _, slot := range r.Slots {
		day, err := time.Parse(domain.DateFormat, slot.Date)
		if err != nil {
			return nil, fmt.Errorf("invalid slot date %q: %w", slot.Date, err)
		}

		input := previewSchedule.SlotInput{Date: day.Format(domain.DayKeyFormat)}

		at := func(clock time.Time) time.Time {
			return time.Date(day.Year(), day.Month(), day.Day(), clock.Hour(), clock.Minute(), 0, 0, day.Location())
		}

		if slot.StartTime != "" {
			start, err := parse(slot.StartTime, domain.TimeFormat, "slot startTime")
			if err != nil {
				return nil, err
			}
			input.StartTime = at(start)
		}
		if slot.EndTime != "" {
			end, err := parse(slot.EndTime, domain.TimeFormat, "slot endTime")
			if err != nil {
				return nil, err
			}
			input.EndTime = at(end)
		}

		slots = append(slots, input)
	}

	return &previewSchedule.Request{
		ParentID: parentID,
		Mode:     domain.ScheduleMode(r.Mode),
		Range:    timeRange,
		Slots:    slots,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *previewSchedule.Response) *PreviewScheduleResponse {
	days := make([]DayResponse, 0, len(resp.Days))
	for _, day := range resp.Days {
		entry := DayResponse{Date: day.Date, Hours: day.Hours}
		if day.StartTime != nil {
			start := day.StartTime.Format(domain.TimeFormat)
			entry.StartTime = &start
		}
		if day.EndTime != nil {
			end := day.EndTime.Format(domain.TimeFormat)
			entry.EndTime = &end
		}
		days = append(days, entry)
	}

	return &PreviewScheduleResponse{
		Mode:       resp.Mode,
		Days:       days,
		TotalHours: resp.TotalHours,
	}
}
