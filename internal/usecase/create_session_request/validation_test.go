package create_session_request

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ovchr/BSM-SessionService/internal/domain"
	"github.com/ovchr/BSM-SessionService/pkg/ptr"
)

func validContinuousRequest() *Request {
	return &Request{
		ParentID: 7,
		ChildIDs: []int64{1},
		Scope:    domain.ScopeCity,
		Address:  "ул. Ленина 5, Москва",
		Mode:     domain.ModeContinuous,
		Range: domain.TimeRange{
			StartDate: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			StartTime: time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			EndTime:   time.Date(2024, 1, 15, 18, 0, 0, 0, time.UTC),
		},
	}
}

func TestValidateRequest_ValidForm(t *testing.T) {
	req := validContinuousRequest()

	problems := validateRequest(req, req.Range.TotalHours(), nil, domain.Location{Address: req.Address})

	assert.Empty(t, problems)
}

func TestValidateRequest_CollectsAllProblemsAtOnce(t *testing.T) {
	// Пустая форма: ни детей, ни адреса - оба сообщения приходят разом
	req := validContinuousRequest()
	req.ChildIDs = nil
	req.Address = "   "

	problems := validateRequest(req, req.Range.TotalHours(), nil, domain.Location{})

	require.Len(t, problems, 2)
	assert.Contains(t, problems.Messages(), msgNoChildren)
	assert.Contains(t, problems.Messages(), msgAddressRequired)
}

func TestValidateRequest_SameDayReversedRange(t *testing.T) {
	// Окончание раньше начала в тот же день - период некорректен,
	// на следующий день ничего не переносится
	req := validContinuousRequest()
	req.Range.StartTime = time.Date(2024, 1, 15, 18, 0, 0, 0, time.UTC)
	req.Range.EndTime = time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

	problems := validateRequest(req, req.Range.TotalHours(), nil, domain.Location{Address: req.Address})

	require.NotEmpty(t, problems)
	assert.Contains(t, problems.Messages(), msgInvalidPeriod)
}

func TestValidateRequest_ZeroLengthRange(t *testing.T) {
	req := validContinuousRequest()
	req.Range.EndTime = req.Range.StartTime

	problems := validateRequest(req, req.Range.TotalHours(), nil, domain.Location{Address: req.Address})

	assert.Contains(t, problems.Messages(), msgInvalidPeriod)
}

func TestValidateRequest_InviteRequiresSitter(t *testing.T) {
	req := validContinuousRequest()
	req.Scope = domain.ScopeInvite
	req.SitterID = nil

	problems := validateRequest(req, req.Range.TotalHours(), nil, domain.Location{Address: req.Address})

	assert.Contains(t, problems.Messages(), msgSitterRequired)
}

func TestValidateRequest_NearbyRequiresDistanceAndCoordinates(t *testing.T) {
	req := validContinuousRequest()
	req.Scope = domain.ScopeNearby
	req.MaxDistanceKm = nil

	// Геокодер не вернул координаты - обе проблемы в одном списке
	problems := validateRequest(req, req.Range.TotalHours(), nil, domain.Location{Address: req.Address})

	assert.Contains(t, problems.Messages(), msgDistanceRequired)
	assert.Contains(t, problems.Messages(), msgCoordsRequired)
}

func TestValidateRequest_NearbyDistanceOutOfRange(t *testing.T) {
	req := validContinuousRequest()
	req.Scope = domain.ScopeNearby
	req.MaxDistanceKm = ptr.Ptr(500.0)

	location := domain.Location{
		Address:   req.Address,
		Latitude:  ptr.Ptr(55.75),
		Longitude: ptr.Ptr(37.61),
	}

	problems := validateRequest(req, req.Range.TotalHours(), nil, location)

	require.Len(t, problems, 1)
	assert.Contains(t, problems[0], "радиус")
}

func TestValidateRequest_TooManyChildren(t *testing.T) {
	req := validContinuousRequest()
	for i := int64(1); i <= domain.MaxChildrenPerRequest+1; i++ {
		req.ChildIDs = append(req.ChildIDs, 100+i)
	}

	problems := validateRequest(req, req.Range.TotalHours(), nil, domain.Location{Address: req.Address})

	require.Len(t, problems, 1)
	assert.Contains(t, problems[0], "много детей")
}

func TestValidateRequest_NotesTooLong(t *testing.T) {
	req := validContinuousRequest()
	long := make([]rune, domain.MaxNotesLength+1)
	for i := range long {
		long[i] = 'а'
	}
	req.Notes = ptr.Ptr(string(long))

	problems := validateRequest(req, req.Range.TotalHours(), nil, domain.Location{Address: req.Address})

	require.Len(t, problems, 1)
	assert.Contains(t, problems[0], "пожелания")
}

func TestValidateRequest_SlottedWithoutConfiguredSlots(t *testing.T) {
	req := validContinuousRequest()
	req.Mode = domain.ModeSlotted

	table := domain.NewSlotTable()
	table.SetSlotTime("Jan 15, 2024", domain.SlotEdgeEnd, time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC))

	// Единственный слот схлопнут в ноль часов
	problems := validateRequest(req, table.TotalHours(), table, domain.Location{Address: req.Address})

	assert.Contains(t, problems.Messages(), msgNoConfiguredSlots)
}

func TestValidateRequest_SlottedWithZeroSlotTimes(t *testing.T) {
	req := validContinuousRequest()
	req.Mode = domain.ModeSlotted
	req.Slots = []SlotInput{{Date: "Jan 15, 2024"}}

	table := domain.NewSlotTable()
	table.EnsureDays(req.Range.Breakdown(domain.ModeSlotted))

	problems := validateRequest(req, table.TotalHours(), table, domain.Location{Address: req.Address})

	assert.Contains(t, problems.Messages(), msgInvalidSlot)
}

func TestValidateRequest_PeriodTooLong(t *testing.T) {
	req := validContinuousRequest()
	req.Range.EndDate = req.Range.StartDate.AddDate(0, 0, domain.MaxRequestDays+5)
	req.Range.EndTime = time.Date(2024, 1, 15, 18, 0, 0, 0, time.UTC)

	problems := validateRequest(req, req.Range.TotalHours(), nil, domain.Location{Address: req.Address})

	require.NotEmpty(t, problems)
	assert.Contains(t, problems[0], "период")
}
