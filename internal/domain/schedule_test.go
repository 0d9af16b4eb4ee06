package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func clock(hour, minute int) time.Time {
	return time.Date(0, 1, 1, hour, minute, 0, 0, time.UTC)
}

func TestTimeRange_Combine(t *testing.T) {
	r := TimeRange{
		StartDate: day(2024, time.January, 15),
		StartTime: clock(9, 30),
		EndDate:   day(2024, time.January, 15),
		EndTime:   clock(17, 0),
	}

	assert.Equal(t, time.Date(2024, time.January, 15, 9, 30, 0, 0, time.UTC), r.Start())
	assert.Equal(t, time.Date(2024, time.January, 15, 17, 0, 0, 0, time.UTC), r.End())
	assert.True(t, r.IsValid())

	// Секунды из компоненты времени отбрасываются
	r.StartTime = time.Date(0, 1, 1, 9, 30, 45, 0, time.UTC)
	assert.Equal(t, time.Date(2024, time.January, 15, 9, 30, 0, 0, time.UTC), r.Start())
}

func TestTimeRange_Breakdown_Continuous(t *testing.T) {
	t.Run("same day", func(t *testing.T) {
		r := TimeRange{
			StartDate: day(2024, time.January, 15),
			StartTime: clock(9, 0),
			EndDate:   day(2024, time.January, 15),
			EndTime:   clock(17, 0),
		}

		breakdown := r.Breakdown(ModeContinuous)

		require.Len(t, breakdown, 1)
		assert.Equal(t, "Jan 15, 2024", breakdown[0].Date)
		assert.InDelta(t, 8.0, breakdown[0].Hours, 1e-9)
		assert.InDelta(t, 8.0, r.TotalHours(), 1e-9)
	})

	t.Run("multi day", func(t *testing.T) {
		r := TimeRange{
			StartDate: day(2024, time.January, 15),
			StartTime: clock(20, 0),
			EndDate:   day(2024, time.January, 17),
			EndTime:   clock(6, 0),
		}

		breakdown := r.Breakdown(ModeContinuous)

		require.Len(t, breakdown, 3)
		assert.Equal(t, "Jan 15, 2024", breakdown[0].Date)
		assert.InDelta(t, 4.0, breakdown[0].Hours, 1e-9)
		assert.Equal(t, "Jan 16, 2024", breakdown[1].Date)
		assert.InDelta(t, 24.0, breakdown[1].Hours, 1e-9)
		assert.Equal(t, "Jan 17, 2024", breakdown[2].Date)
		assert.InDelta(t, 6.0, breakdown[2].Hours, 1e-9)

		sum := 0.0
		for _, entry := range breakdown {
			sum += entry.Hours
		}
		assert.InDelta(t, r.TotalHours(), sum, 1e-9)
		assert.InDelta(t, 34.0, sum, 1e-9)
	})

	t.Run("midnight boundary day contributes nothing", func(t *testing.T) {
		// Окно заканчивается ровно в полночь: последний календарный день
		// вносит 0 часов и не попадает в раскладку
		r := TimeRange{
			StartDate: day(2024, time.January, 15),
			StartTime: clock(20, 0),
			EndDate:   day(2024, time.January, 16),
			EndTime:   clock(0, 0),
		}

		breakdown := r.Breakdown(ModeContinuous)

		require.Len(t, breakdown, 1)
		assert.Equal(t, "Jan 15, 2024", breakdown[0].Date)
		assert.InDelta(t, 4.0, breakdown[0].Hours, 1e-9)
	})
}

func TestTimeRange_Breakdown_Invalid(t *testing.T) {
	t.Run("end before start", func(t *testing.T) {
		r := TimeRange{
			StartDate: day(2024, time.January, 15),
			StartTime: clock(17, 0),
			EndDate:   day(2024, time.January, 15),
			EndTime:   clock(9, 0),
		}

		// Диапазон не переносится на следующий день, он просто пуст
		assert.False(t, r.IsValid())
		assert.Zero(t, r.TotalHours())
		assert.Empty(t, r.Breakdown(ModeContinuous))
		assert.Empty(t, r.Breakdown(ModeSlotted))
	})

	t.Run("zero length", func(t *testing.T) {
		r := TimeRange{
			StartDate: day(2024, time.January, 15),
			StartTime: clock(9, 0),
			EndDate:   day(2024, time.January, 15),
			EndTime:   clock(9, 0),
		}

		assert.False(t, r.IsValid())
		assert.Empty(t, r.Breakdown(ModeContinuous))
	})
}

func TestTimeRange_Breakdown_Slotted(t *testing.T) {
	r := TimeRange{
		StartDate: day(2024, time.January, 15),
		StartTime: clock(23, 0),
		EndDate:   day(2024, time.January, 17),
		EndTime:   clock(0, 30),
	}

	breakdown := r.Breakdown(ModeSlotted)

	// Граничные дни включаются всегда, даже с нулевым непрерывным вкладом
	require.Len(t, breakdown, 3)
	for i, expected := range []string{"Jan 15, 2024", "Jan 16, 2024", "Jan 17, 2024"} {
		assert.Equal(t, expected, breakdown[i].Date)
		assert.Zero(t, breakdown[i].Hours)
	}
}

func TestSlotTable_EnsureDays(t *testing.T) {
	table := NewSlotTable()
	table.EnsureDays([]DayBreakdown{
		{Date: "Jan 15, 2024"},
		{Date: "Jan 16, 2024"},
	})

	require.Equal(t, 2, table.Len())

	slot, ok := table.Slot("Jan 15, 2024")
	require.True(t, ok)
	assert.Equal(t, DefaultSlotStartHour, slot.StartTime.Hour())
	assert.Equal(t, DefaultSlotEndHour, slot.EndTime.Hour())
	assert.Equal(t, 15, slot.StartTime.Day())
	assert.InDelta(t, 3.0, slot.Hours, 1e-9)

	// Повторный вызов не перезаписывает уже существующие слоты
	table.SetSlotTime("Jan 15, 2024", SlotEdgeEnd, time.Date(2024, time.January, 15, 18, 0, 0, 0, time.UTC))
	table.EnsureDays([]DayBreakdown{{Date: "Jan 15, 2024"}})

	slot, _ = table.Slot("Jan 15, 2024")
	assert.InDelta(t, 9.0, slot.Hours, 1e-9)
}

func TestSlotTable_EnsureDays_UnparseableKey(t *testing.T) {
	table := NewSlotTable()
	table.EnsureDays([]DayBreakdown{{Date: "not a date"}})

	// Деградация round-trip: слот садится на сегодняшний день
	slot, ok := table.Slot("not a date")
	require.True(t, ok)
	assert.Equal(t, time.Now().Day(), slot.StartTime.Day())
	assert.InDelta(t, 3.0, slot.Hours, 1e-9)
}

func TestSlotTable_SetSlotTime_Independence(t *testing.T) {
	table := NewSlotTable()
	table.EnsureDays([]DayBreakdown{
		{Date: "Jan 15, 2024"},
		{Date: "Jan 16, 2024"},
	})

	// День A: 3 часа по умолчанию, день B настраиваем на 5 часов
	table.SetSlotTime("Jan 16, 2024", SlotEdgeEnd, time.Date(2024, time.January, 16, 14, 0, 0, 0, time.UTC))
	require.InDelta(t, 8.0, table.TotalHours(), 1e-9)

	// Редактирование дня A добавляет час и не трогает день B
	table.SetSlotTime("Jan 15, 2024", SlotEdgeEnd, time.Date(2024, time.January, 15, 13, 0, 0, 0, time.UTC))

	assert.InDelta(t, 9.0, table.TotalHours(), 1e-9)

	slotB, _ := table.Slot("Jan 16, 2024")
	assert.InDelta(t, 5.0, slotB.Hours, 1e-9)
}

func TestSlotTable_NegativeSlotCollapsesToZero(t *testing.T) {
	table := NewSlotTable()
	table.EnsureDays([]DayBreakdown{{Date: "Jan 15, 2024"}})

	// Конец раньше начала: слот даёт 0 часов и выпадает из Configured
	table.SetSlotTime("Jan 15, 2024", SlotEdgeEnd, time.Date(2024, time.January, 15, 7, 0, 0, 0, time.UTC))

	slot, _ := table.Slot("Jan 15, 2024")
	assert.Zero(t, slot.Hours)
	assert.Zero(t, table.TotalHours())
	assert.Empty(t, table.Configured())
}

func TestSlotTable_Configured(t *testing.T) {
	table := NewSlotTable()
	table.EnsureDays([]DayBreakdown{
		{Date: "Jan 15, 2024"},
		{Date: "Jan 16, 2024"},
		{Date: "Jan 17, 2024"},
	})

	// Средний день обнуляем
	table.SetSlotTime("Jan 16, 2024", SlotEdgeEnd, time.Date(2024, time.January, 16, 9, 0, 0, 0, time.UTC))

	configured := table.Configured()

	require.Len(t, configured, 2)
	assert.Equal(t, "Jan 15, 2024", configured[0].Date)
	assert.Equal(t, "Jan 17, 2024", configured[1].Date)
	assert.InDelta(t, 3.0, configured[0].Hours, 1e-9)
}

func TestChild_Age(t *testing.T) {
	now := time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)

	t.Run("birthday passed", func(t *testing.T) {
		dob := time.Date(2019, time.March, 10, 0, 0, 0, 0, time.UTC)
		c := Child{DateOfBirth: &dob}
		require.NotNil(t, c.Age(now))
		assert.Equal(t, 5, *c.Age(now))
	})

	t.Run("birthday not yet reached", func(t *testing.T) {
		dob := time.Date(2019, time.September, 1, 0, 0, 0, 0, time.UTC)
		c := Child{DateOfBirth: &dob}
		assert.Equal(t, 4, *c.Age(now))
	})

	t.Run("unknown date of birth", func(t *testing.T) {
		c := Child{}
		assert.Nil(t, c.Age(now))
	})
}
