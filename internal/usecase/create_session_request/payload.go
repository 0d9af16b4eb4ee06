package create_session_request

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/ovchr/BSM-SessionService/internal/domain"
)

// buildSessionRequests составляет исходящие запросы из проверенной формы.
// Корректная композиция всегда даёт ровно один запрос независимо от режима:
// возврат среза оставлен намеренно, чтобы вызывающая сторона могла поймать
// дефект разветвления и прервать отправку целиком
func buildSessionRequests(
	req *Request,
	location domain.Location,
	hourlyRate float64,
	table *domain.SlotTable,
) ([]*domain.SessionRequest, error) {
	start := req.Range.Start()
	end := req.Range.End()

	var slots []domain.RequestTimeSlot
	var totalHours float64

	switch req.Mode {
	case domain.ModeContinuous:
		totalHours = req.Range.TotalHours()
	case domain.ModeSlotted:
		// Границы запроса - огибающая настроенных слотов: от самого
		// раннего начала до самого позднего окончания
		slots = table.Configured()
		if len(slots) == 0 {
			return nil, fmt.Errorf("%w: slotted request without configured slots", ErrInternal)
		}

		start, end = slots[0].StartTime, slots[0].EndTime
		for _, slot := range slots {
			if slot.StartTime.Before(start) {
				start = slot.StartTime
			}
			if slot.EndTime.After(end) {
				end = slot.EndTime
			}
			totalHours += slot.Hours
		}
	default:
		return nil, fmt.Errorf("%w: unknown schedule mode %q", ErrInternal, req.Mode)
	}

	city := location.City
	if city == nil {
		if guessed, ok := extractCityFromAddress(location.Address); ok {
			city = &guessed
		}
	}

	request := &domain.SessionRequest{
		Token:    uuid.NewString(),
		ParentID: req.ParentID,
		SitterID: req.SitterID,
		ChildID:  req.ChildIDs[0],
		ChildIDs: req.ChildIDs,
		Status:   domain.StatusRequested,

		StartTime:  start,
		EndTime:    end,
		TotalHours: totalHours,

		Location: domain.Location{
			Address:   location.Address,
			City:      city,
			Latitude:  location.Latitude,
			Longitude: location.Longitude,
		},
		HourlyRate:    hourlyRate,
		Notes:         req.Notes,
		SearchScope:   req.Scope,
		MaxDistanceKm: req.MaxDistanceKm,

		TimeSlots: slots,
	}

	return []*domain.SessionRequest{request}, nil
}

// extractCityFromAddress угадывает город по позиции запятых в свободном
// тексте адреса: предпоследняя часть, если частей больше одной, иначе вся
// строка. Эвристика заведомо неточна для адресов с квартирой или страной
// в конце и сознательно оставлена как best-effort на случай, когда
// геокодер города не вернул
func extractCityFromAddress(address string) (string, bool) {
	parts := strings.Split(address, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	cleaned := parts[:0]
	for _, part := range parts {
		if part != "" {
			cleaned = append(cleaned, part)
		}
	}

	switch len(cleaned) {
	case 0:
		return "", false
	case 1:
		return cleaned[0], true
	default:
		return cleaned[len(cleaned)-2], true
	}
}

// dedupeChildIDs убирает повторные выборы одного ребёнка, сохраняя
// порядок первого появления
func dedupeChildIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	deduped := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		deduped = append(deduped, id)
	}
	return deduped
}

// isSameSubmission проверяет, что существующий активный запрос совпадает
// с составленным по окну, типу поиска и набору детей - признак повторной
// отправки той же формы
func isSameSubmission(existing, composed *domain.SessionRequest) bool {
	if !existing.StartTime.Equal(composed.StartTime) || !existing.EndTime.Equal(composed.EndTime) {
		return false
	}
	if existing.SearchScope != composed.SearchScope {
		return false
	}
	if len(existing.ChildIDs) != len(composed.ChildIDs) {
		return false
	}

	ids := make(map[int64]struct{}, len(existing.ChildIDs))
	for _, id := range existing.ChildIDs {
		ids[id] = struct{}{}
	}
	for _, id := range composed.ChildIDs {
		if _, ok := ids[id]; !ok {
			return false
		}
	}

	return true
}
