package domain

import "time"

// ScheduleMode determines how the requested time window is expressed
type ScheduleMode string

const (
	// ModeContinuous is a single start/end range, possibly spanning days
	ModeContinuous ScheduleMode = "continuous"
	// ModeSlotted is a per-day set of manually configured time windows
	ModeSlotted ScheduleMode = "slotted"
)

// IsValid returns true if the mode is one of the known values
func (m ScheduleMode) IsValid() bool {
	return m == ModeContinuous || m == ModeSlotted
}

// TimeRange is a date/time range as entered on the booking form:
// calendar dates and clock times are picked separately and combined
// at use time into absolute instants
type TimeRange struct {
	StartDate time.Time
	StartTime time.Time
	EndDate   time.Time
	EndTime   time.Time
}

// Start combines the start date's calendar components with the start
// time's clock components. Seconds and below are zeroed
func (r TimeRange) Start() time.Time {
	return combineDateTime(r.StartDate, r.StartTime)
}

// End combines the end date's calendar components with the end time's
// clock components. Seconds and below are zeroed
func (r TimeRange) End() time.Time {
	return combineDateTime(r.EndDate, r.EndTime)
}

// IsValid returns true if the combined range has positive length.
// A same-day range whose end clock is before its start clock is simply
// invalid, it is never wrapped onto the next day
func (r TimeRange) IsValid() bool {
	return r.End().After(r.Start())
}

// TotalHours returns the length of the range in hours, 0 for invalid ranges
func (r TimeRange) TotalHours() float64 {
	if !r.IsValid() {
		return 0
	}
	return r.End().Sub(r.Start()).Hours()
}

// DayBreakdown is the contribution of one calendar day to the requested window
type DayBreakdown struct {
	Date  string // formatted with DayKeyFormat
	Hours float64
}

// Breakdown derives the per-day composition of the range.
//
// Continuous mode: each touched calendar day carries the actual overlap of
// the range with that day (first and last day partial, interior days a full
// 24h); days contributing zero hours are skipped.
//
// Slotted mode: every calendar day from the start day through the end day
// inclusive is emitted with zero hours - placeholders to be filled in by a
// SlotTable. Boundary days are always included even when their continuous
// contribution would be zero.
//
// An invalid range produces an empty breakdown in both modes
func (r TimeRange) Breakdown(mode ScheduleMode) []DayBreakdown {
	start, end := r.Start(), r.End()
	if !end.After(start) {
		return []DayBreakdown{}
	}

	firstDay := startOfDay(start)
	lastDay := startOfDay(end)

	if mode == ModeSlotted {
		entries := make([]DayBreakdown, 0)
		for day := firstDay; !day.After(lastDay); day = day.AddDate(0, 0, 1) {
			entries = append(entries, DayBreakdown{Date: day.Format(DayKeyFormat), Hours: 0})
		}
		return entries
	}

	if firstDay.Equal(lastDay) {
		return []DayBreakdown{{Date: firstDay.Format(DayKeyFormat), Hours: end.Sub(start).Hours()}}
	}

	entries := make([]DayBreakdown, 0)
	for day := firstDay; !day.After(lastDay); day = day.AddDate(0, 0, 1) {
		windowStart := day
		if start.After(windowStart) {
			windowStart = start
		}

		windowEnd := day.AddDate(0, 0, 1)
		if end.Before(windowEnd) {
			windowEnd = end
		}

		hours := windowEnd.Sub(windowStart).Hours()
		if hours <= 0 {
			continue
		}

		entries = append(entries, DayBreakdown{Date: day.Format(DayKeyFormat), Hours: hours})
	}

	return entries
}

// SlotEdge identifies which edge of a time slot is being edited
type SlotEdge string

const (
	SlotEdgeStart SlotEdge = "start"
	SlotEdgeEnd   SlotEdge = "end"
)

// TimeSlot is one per-day window of a slotted request.
// Hours is always max(0, end-start) and is recomputed on every edit
type TimeSlot struct {
	StartTime time.Time
	EndTime   time.Time
	Hours     float64
}

// SlotTable holds the per-day time windows of a slotted request, keyed by
// the DayBreakdown date string. Editing one day's slot never touches
// another day's slot, and the total is always the live sum over all slots
type SlotTable struct {
	slots map[string]TimeSlot
	days  []string // key insertion order, keeps output deterministic
}

// NewSlotTable creates an empty slot table
func NewSlotTable() *SlotTable {
	return &SlotTable{slots: make(map[string]TimeSlot)}
}

// EnsureDays seeds a default slot for every breakdown day that has no slot
// yet. The default window is DefaultSlotStartHour-DefaultSlotEndHour on the
// day parsed back from the formatted key; if the key does not parse, the
// current day is used as a degraded fallback
func (t *SlotTable) EnsureDays(breakdown []DayBreakdown) {
	for _, entry := range breakdown {
		if _, ok := t.slots[entry.Date]; ok {
			continue
		}
		t.put(entry.Date, defaultSlotForDay(entry.Date))
	}
}

// SetSlotTime updates one edge of the slot for the given day and recomputes
// that slot's hours from the other (possibly still default) edge. A day
// without a slot is seeded with the default window first
func (t *SlotTable) SetSlotTime(date string, edge SlotEdge, at time.Time) {
	slot, ok := t.slots[date]
	if !ok {
		slot = defaultSlotForDay(date)
	}

	switch edge {
	case SlotEdgeStart:
		slot.StartTime = at
	case SlotEdgeEnd:
		slot.EndTime = at
	}

	slot.Hours = slotHours(slot.StartTime, slot.EndTime)
	t.put(date, slot)
}

// Slot returns the slot configured for the given day
func (t *SlotTable) Slot(date string) (TimeSlot, bool) {
	slot, ok := t.slots[date]
	return slot, ok
}

// Days returns the day keys in insertion order
func (t *SlotTable) Days() []string {
	return t.days
}

// Len returns the number of days in the table
func (t *SlotTable) Len() int {
	return len(t.days)
}

// TotalHours returns the sum of all slot hours. Slots with zero or negative
// length contribute nothing. The value is computed at read time, never cached
func (t *SlotTable) TotalHours() float64 {
	total := 0.0
	for _, slot := range t.slots {
		if slot.Hours > 0 {
			total += slot.Hours
		}
	}
	return total
}

// Configured returns the slots with positive hours, in day order,
// as request time slots ready to be attached to a session request
func (t *SlotTable) Configured() []RequestTimeSlot {
	configured := make([]RequestTimeSlot, 0, len(t.days))
	for _, day := range t.days {
		slot := t.slots[day]
		if slot.Hours <= 0 {
			continue
		}
		configured = append(configured, RequestTimeSlot{
			Date:      day,
			StartTime: slot.StartTime,
			EndTime:   slot.EndTime,
			Hours:     slot.Hours,
		})
	}
	return configured
}

func (t *SlotTable) put(date string, slot TimeSlot) {
	if _, ok := t.slots[date]; !ok {
		t.days = append(t.days, date)
	}
	t.slots[date] = slot
}

// defaultSlotForDay builds the default window for a formatted day key.
// The formatted-string round trip is an accepted inexactness: on parse
// failure the slot degrades to today's date
func defaultSlotForDay(date string) TimeSlot {
	day, err := time.Parse(DayKeyFormat, date)
	if err != nil {
		day = startOfDay(time.Now())
	}

	start := time.Date(day.Year(), day.Month(), day.Day(), DefaultSlotStartHour, 0, 0, 0, day.Location())
	end := time.Date(day.Year(), day.Month(), day.Day(), DefaultSlotEndHour, 0, 0, 0, day.Location())

	return TimeSlot{StartTime: start, EndTime: end, Hours: slotHours(start, end)}
}

// slotHours вычисляет длительность слота в часах, отрицательная длина схлопывается в 0
func slotHours(start, end time.Time) float64 {
	hours := end.Sub(start).Hours()
	if hours < 0 {
		return 0
	}
	return hours
}

// combineDateTime собирает абсолютный момент из календарной даты одного
// значения и времени суток другого, обнуляя секунды
func combineDateTime(date, clock time.Time) time.Time {
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		clock.Hour(), clock.Minute(), 0, 0,
		date.Location(),
	)
}

// startOfDay обнуляет время, оставляя только дату
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
