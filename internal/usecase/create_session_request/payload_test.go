package create_session_request

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ovchr/BSM-SessionService/internal/domain"
	"github.com/ovchr/BSM-SessionService/pkg/ptr"
)

func TestBuildSessionRequests_ContinuousComposesExactlyOne(t *testing.T) {
	req := validContinuousRequest()
	req.ChildIDs = []int64{1, 2, 3}

	composed, err := buildSessionRequests(req, domain.Location{Address: req.Address}, 0, nil)
	require.NoError(t, err)

	// Непрерывный режим: одна форма - ровно один исходящий запрос,
	// без разветвления по детям или дням
	require.Len(t, composed, 1)

	request := composed[0]
	assert.Equal(t, req.ChildIDs, request.ChildIDs)
	assert.Equal(t, int64(1), request.ChildID)
	assert.Equal(t, domain.StatusRequested, request.Status)
	assert.NotEmpty(t, request.Token)
	assert.Equal(t, req.Range.Start(), request.StartTime)
	assert.Equal(t, req.Range.End(), request.EndTime)
	assert.InDelta(t, 8.0, request.TotalHours, 1e-9)
	assert.Nil(t, request.TimeSlots)
}

func TestBuildSessionRequests_SlottedEnvelopeAndTotal(t *testing.T) {
	req := validContinuousRequest()
	req.Mode = domain.ModeSlotted
	req.Range.EndDate = time.Date(2024, 1, 17, 0, 0, 0, 0, time.UTC)

	table := domain.NewSlotTable()
	table.EnsureDays(req.Range.Breakdown(domain.ModeSlotted))

	// 15-е: 08:00-11:00, 17-е: 14:00-20:00, 16-е остаётся дефолтным 09:00-12:00
	table.SetSlotTime("Jan 15, 2024", domain.SlotEdgeStart, time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC))
	table.SetSlotTime("Jan 15, 2024", domain.SlotEdgeEnd, time.Date(2024, 1, 15, 11, 0, 0, 0, time.UTC))
	table.SetSlotTime("Jan 17, 2024", domain.SlotEdgeStart, time.Date(2024, 1, 17, 14, 0, 0, 0, time.UTC))
	table.SetSlotTime("Jan 17, 2024", domain.SlotEdgeEnd, time.Date(2024, 1, 17, 20, 0, 0, 0, time.UTC))

	composed, err := buildSessionRequests(req, domain.Location{Address: req.Address}, 0, table)
	require.NoError(t, err)
	require.Len(t, composed, 1)

	request := composed[0]
	require.Len(t, request.TimeSlots, 3)

	// Границы запроса - огибающая слотов
	assert.Equal(t, time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC), request.StartTime)
	assert.Equal(t, time.Date(2024, 1, 17, 20, 0, 0, 0, time.UTC), request.EndTime)
	assert.InDelta(t, 3.0+3.0+6.0, request.TotalHours, 1e-9)
}

func TestBuildSessionRequests_GeocodedCityWins(t *testing.T) {
	req := validContinuousRequest()

	location := domain.Location{
		Address: "ул. Ленина 5, Казань",
		City:    ptr.Ptr("Казань"),
	}

	composed, err := buildSessionRequests(req, location, 0, nil)
	require.NoError(t, err)

	require.NotNil(t, composed[0].Location.City)
	assert.Equal(t, "Казань", *composed[0].Location.City)
}

func TestBuildSessionRequests_InviteCarriesHourlyRate(t *testing.T) {
	req := validContinuousRequest()
	req.Scope = domain.ScopeInvite
	req.SitterID = ptr.Ptr(int64(42))

	composed, err := buildSessionRequests(req, domain.Location{Address: req.Address}, 650, nil)
	require.NoError(t, err)

	assert.Equal(t, 650.0, composed[0].HourlyRate)
	require.NotNil(t, composed[0].SitterID)
	assert.Equal(t, int64(42), *composed[0].SitterID)
}

func TestExtractCityFromAddress(t *testing.T) {
	tests := []struct {
		name    string
		address string
		city    string
		ok      bool
	}{
		{
			name:    "street then city",
			address: "ул. Ленина 5, Москва",
			city:    "ул. Ленина 5",
			ok:      true,
		},
		{
			name:    "city then country",
			address: "Москва, Россия",
			city:    "Москва",
			ok:      true,
		},
		{
			name:    "single part",
			address: "Москва",
			city:    "Москва",
			ok:      true,
		},
		{
			name:    "trailing comma ignored",
			address: "ул. Мира 3, Тверь, ",
			city:    "ул. Мира 3",
			ok:      true,
		},
		{
			name:    "empty",
			address: "   ",
			ok:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			city, ok := extractCityFromAddress(tt.address)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.city, city)
		})
	}
}

func TestDedupeChildIDs(t *testing.T) {
	assert.Equal(t, []int64{3, 1, 2}, dedupeChildIDs([]int64{3, 1, 3, 2, 1}))
	assert.Empty(t, dedupeChildIDs(nil))
}

func TestIsSameSubmission(t *testing.T) {
	base := &domain.SessionRequest{
		StartTime:   time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC),
		EndTime:     time.Date(2024, 1, 15, 18, 0, 0, 0, time.UTC),
		SearchScope: domain.ScopeCity,
		ChildIDs:    []int64{1, 2},
	}

	same := *base
	same.ChildIDs = []int64{2, 1} // порядок детей не важен
	assert.True(t, isSameSubmission(base, &same))

	otherWindow := *base
	otherWindow.EndTime = base.EndTime.Add(time.Hour)
	assert.False(t, isSameSubmission(base, &otherWindow))

	otherScope := *base
	otherScope.SearchScope = domain.ScopeNationwide
	assert.False(t, isSameSubmission(base, &otherScope))

	otherChildren := *base
	otherChildren.ChildIDs = []int64{1, 3}
	assert.False(t, isSameSubmission(base, &otherChildren))
}
