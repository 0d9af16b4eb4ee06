package preview_schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ovchr/BSM-SessionService/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{}) {}
func (nopLogger) Warn(string, ...interface{}) {}

func day(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}

func clock(d, h int) time.Time {
	return time.Date(2024, 1, d, h, 0, 0, 0, time.UTC)
}

func TestExecute_ContinuousMultiDay(t *testing.T) {
	uc := NewUseCase(nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		ParentID: 7,
		Mode:     domain.ModeContinuous,
		Range: domain.TimeRange{
			StartDate: day(15), StartTime: clock(15, 20),
			EndDate: day(17), EndTime: clock(17, 6),
		},
	})
	require.NoError(t, err)

	// 20:00->полночь = 4ч, полные сутки 16-го, 6ч утром 17-го
	require.Len(t, resp.Days, 3)
	assert.Equal(t, "Jan 15, 2024", resp.Days[0].Date)
	assert.InDelta(t, 4.0, resp.Days[0].Hours, 1e-9)
	assert.InDelta(t, 24.0, resp.Days[1].Hours, 1e-9)
	assert.InDelta(t, 6.0, resp.Days[2].Hours, 1e-9)
	assert.InDelta(t, 34.0, resp.TotalHours, 1e-9)
	assert.Nil(t, resp.Days[0].StartTime)
}

func TestExecute_InvalidRangeYieldsEmptyPreview(t *testing.T) {
	uc := NewUseCase(nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		Mode: domain.ModeContinuous,
		Range: domain.TimeRange{
			StartDate: day(15), StartTime: clock(15, 18),
			EndDate: day(15), EndTime: clock(15, 10),
		},
	})
	require.NoError(t, err)

	assert.Empty(t, resp.Days)
	assert.Zero(t, resp.TotalHours)
}

func TestExecute_SlottedDefaultsAndEdits(t *testing.T) {
	uc := NewUseCase(nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		Mode: domain.ModeSlotted,
		Range: domain.TimeRange{
			StartDate: day(15), StartTime: clock(15, 10),
			EndDate: day(16), EndTime: clock(16, 18),
		},
		Slots: []SlotInput{
			{Date: "Jan 16, 2024", StartTime: clock(16, 8), EndTime: clock(16, 13)},
		},
	})
	require.NoError(t, err)

	require.Len(t, resp.Days, 2)

	// 15-е остаётся с дефолтным окном 09:00-12:00
	assert.InDelta(t, 3.0, resp.Days[0].Hours, 1e-9)
	require.NotNil(t, resp.Days[0].StartTime)
	assert.Equal(t, 9, resp.Days[0].StartTime.Hour())

	// Правка 16-го не трогает 15-е
	assert.InDelta(t, 5.0, resp.Days[1].Hours, 1e-9)
	assert.InDelta(t, 8.0, resp.TotalHours, 1e-9)
}

func TestExecute_SlottedNegativeEditCollapsesToZero(t *testing.T) {
	uc := NewUseCase(nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		Mode: domain.ModeSlotted,
		Range: domain.TimeRange{
			StartDate: day(15), StartTime: clock(15, 10),
			EndDate: day(15), EndTime: clock(15, 18),
		},
		Slots: []SlotInput{
			{Date: "Jan 15, 2024", StartTime: clock(15, 14), EndTime: clock(15, 9)},
		},
	})
	require.NoError(t, err)

	require.Len(t, resp.Days, 1)
	assert.Zero(t, resp.Days[0].Hours)
	assert.Zero(t, resp.TotalHours)
}

func TestExecute_InvalidMode(t *testing.T) {
	uc := NewUseCase(nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{Mode: "hourly"})

	assert.ErrorIs(t, err, ErrInvalidMode)
}
