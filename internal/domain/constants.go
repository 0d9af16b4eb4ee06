package domain

// Time format constants
const (
	DayKeyFormat = "Jan 02, 2006" // breakdown/slot-table day key
	DateFormat   = "2006-01-02"   // YYYY-MM-DD
	TimeFormat   = "15:04"        // HH:MM
)

// Default slot window seeded for unconfigured days of a slotted request
const (
	DefaultSlotStartHour = 9
	DefaultSlotEndHour   = 12
)

// Business validation constants
const (
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MaxChildNameLength          = 100
	MaxChildrenPerRequest       = 10
	MaxRequestDays              = 62 // longest window one request may span
	MinDistanceKm               = 1
	MaxDistanceKm               = 100
)

// InactiveStatuses список статусов неактивных запросов
// Используется для фильтрации при выборке истории запросов
var InactiveStatuses = []RequestStatus{
	StatusDeclined,
	StatusCancelledByParent,
	StatusCancelledBySitter,
	StatusExpired,
}

// ActiveStatuses список статусов активных запросов
var ActiveStatuses = []RequestStatus{
	StatusRequested,
	StatusAccepted,
	StatusCompleted,
}
