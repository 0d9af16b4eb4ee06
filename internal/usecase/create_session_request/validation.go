package create_session_request

import (
	"fmt"
	"strings"

	"github.com/ovchr/BSM-SessionService/internal/domain"
)

// Пользовательские сообщения валидации. Ворота собирают все проблемы
// формы за один проход и отдают их списком
const (
	msgParentRequired    = "не удалось определить пользователя, войдите заново"
	msgNoChildren        = "выберите хотя бы одного ребёнка"
	msgTooManyChildren   = "слишком много детей в одном запросе (максимум %d)"
	msgInvalidScope      = "некорректный тип поиска ситтера"
	msgInvalidMode       = "некорректный режим расписания"
	msgSitterRequired    = "выберите ситтера для приглашения"
	msgDistanceRequired  = "укажите радиус поиска рядом с вами"
	msgDistanceRange     = "радиус поиска должен быть от %d до %d км"
	msgCoordsRequired    = "не удалось определить координаты адреса для поиска поблизости"
	msgAddressRequired   = "укажите адрес, где нужно посидеть с детьми"
	msgNotesTooLong      = "пожелания слишком длинные (максимум %d символов)"
	msgInvalidPeriod     = "выберите корректный период: окончание должно быть позже начала"
	msgPeriodTooLong     = "период слишком длинный (максимум %d дней)"
	msgZeroHours         = "продолжительность сессии должна быть больше нуля"
	msgNoConfiguredSlots = "настройте время хотя бы на один день"
	msgInvalidSlot       = "в одном из дней указано некорректное время"
)

// validateRequest проверяет форму целиком и возвращает полный список проблем.
// Ворота не останавливаются на первой ошибке: пользователь чинит форму один
// раз, а не по одному полю за отправку.
//
// totalHours и table - уже составленная раскладка формы, location - адрес
// после геокодирования (координаты нужны только для scope=nearby)
func validateRequest(req *Request, totalHours float64, table *domain.SlotTable, location domain.Location) ValidationErrors {
	problems := make(ValidationErrors, 0)

	if req.ParentID <= 0 {
		problems = append(problems, msgParentRequired)
	}

	if len(req.ChildIDs) == 0 {
		problems = append(problems, msgNoChildren)
	}
	if len(req.ChildIDs) > domain.MaxChildrenPerRequest {
		problems = append(problems, fmt.Sprintf(msgTooManyChildren, domain.MaxChildrenPerRequest))
	}

	if !req.Scope.IsValid() {
		problems = append(problems, msgInvalidScope)
	}
	if !req.Mode.IsValid() {
		problems = append(problems, msgInvalidMode)
	}

	if req.Scope == domain.ScopeInvite && req.SitterID == nil {
		problems = append(problems, msgSitterRequired)
	}

	if req.Scope == domain.ScopeNearby {
		switch {
		case req.MaxDistanceKm == nil:
			problems = append(problems, msgDistanceRequired)
		case *req.MaxDistanceKm < domain.MinDistanceKm || *req.MaxDistanceKm > domain.MaxDistanceKm:
			problems = append(problems, fmt.Sprintf(msgDistanceRange, domain.MinDistanceKm, domain.MaxDistanceKm))
		}

		if !location.HasCoordinates() {
			problems = append(problems, msgCoordsRequired)
		}
	}

	if strings.TrimSpace(req.Address) == "" {
		problems = append(problems, msgAddressRequired)
	}

	if req.Notes != nil && len([]rune(*req.Notes)) > domain.MaxNotesLength {
		problems = append(problems, fmt.Sprintf(msgNotesTooLong, domain.MaxNotesLength))
	}

	problems = append(problems, validateSchedule(req, totalHours, table)...)

	return problems
}

// validateSchedule проверяет временную часть формы с учётом режима
func validateSchedule(req *Request, totalHours float64, table *domain.SlotTable) ValidationErrors {
	problems := make(ValidationErrors, 0)

	if !req.Range.IsValid() {
		problems = append(problems, msgInvalidPeriod)
		return problems
	}

	days := int(req.Range.End().Sub(req.Range.Start()).Hours()/24) + 1
	if days > domain.MaxRequestDays {
		problems = append(problems, fmt.Sprintf(msgPeriodTooLong, domain.MaxRequestDays))
	}

	switch req.Mode {
	case domain.ModeContinuous:
		if totalHours <= 0 {
			problems = append(problems, msgZeroHours)
		}
	case domain.ModeSlotted:
		if table == nil || table.TotalHours() <= 0 {
			problems = append(problems, msgNoConfiguredSlots)
		}
		for _, slot := range req.Slots {
			if slot.StartTime.IsZero() || slot.EndTime.IsZero() {
				problems = append(problems, msgInvalidSlot)
				break
			}
		}
	}

	return problems
}
